package section

import "github.com/arloliu/hap/endian"

// Type identifies a section inside a complex frame.
type Type uint8

const (
	TypeDecodeInstructions Type = 0x01 // Decode Instructions Container.
	TypeCompressorTable    Type = 0x02 // Chunk Second-Stage Compressor Table.
	TypeSizeTable          Type = 0x03 // Chunk Size Table.
	TypeOffsetTable        Type = 0x04 // Chunk Offset Table.
)

const (
	ShortHeaderSize = 4 // header size when the body length fits in 24 bits
	LongHeaderSize  = 8 // header size when the body length needs 32 bits

	// MaxShortLength is the largest body length a 4-byte header can carry.
	MaxShortLength = endian.MaxUint24

	// MaxBodyLength is the largest body length any section can carry.
	MaxBodyLength = 0xFFFFFFFF

	tableEntrySize = 4 // size of one size-table or offset-table entry
)

func (t Type) String() string {
	switch t {
	case TypeDecodeInstructions:
		return "DecodeInstructions"
	case TypeCompressorTable:
		return "CompressorTable"
	case TypeSizeTable:
		return "SizeTable"
	case TypeOffsetTable:
		return "OffsetTable"
	default:
		return "Unknown"
	}
}
