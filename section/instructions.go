package section

import (
	"fmt"
	"iter"

	"github.com/arloliu/hap/endian"
	"github.com/arloliu/hap/errs"
	"github.com/arloliu/hap/format"
)

// Placement describes how compressed chunks are located in the frame data region.
type Placement uint8

const (
	// PlacementCumulative places each chunk right after the previous one.
	PlacementCumulative Placement = iota + 1
	// PlacementExplicit reads each chunk's offset from the Chunk Offset Table.
	PlacementExplicit
)

func (p Placement) String() string {
	switch p {
	case PlacementCumulative:
		return "Cumulative"
	case PlacementExplicit:
		return "Explicit"
	default:
		return "Unknown"
	}
}

// Instructions is a parsed Decode Instructions Container.
//
// The table fields alias the frame buffer.
type Instructions struct {
	// ChunkCount is the reconciled number of chunks.
	ChunkCount int
	// Placement is resolved once while parsing.
	Placement Placement

	compressors []byte
	sizes       []byte
	offsets     []byte
}

// Chunk locates one compressed chunk relative to the start of the frame data region.
type Chunk struct {
	Compressor format.Compressor
	Offset     uint64
	Length     uint64
}

// End returns the offset one past the chunk's last compressed byte.
func (c Chunk) End() uint64 {
	return c.Offset + c.Length
}

// ReadComplexBody splits the body of a Complex frame into its decode instructions and
// the frame data region that follows them.
//
// Parameters:
//   - body: Top-level section body of a Complex frame
//
// Returns:
//   - Instructions: Parsed and reconciled chunk tables
//   - []byte: Frame data region (chunk payloads)
//   - error: ErrBadFrame if the container is missing, malformed or inconsistent
func ReadComplexBody(body []byte) (Instructions, []byte, error) {
	h, err := ReadHeader(body)
	if err != nil {
		return Instructions{}, nil, err
	}

	if Type(h.Type) != TypeDecodeInstructions {
		return Instructions{}, nil, fmt.Errorf("%w: expected decode instructions container, found section type 0x%02X", errs.ErrBadFrame, h.Type)
	}

	inst, err := ParseInstructions(h.Body(body))
	if err != nil {
		return Instructions{}, nil, err
	}

	return inst, body[h.Size():], nil
}

// ParseInstructions parses the body of a Decode Instructions Container.
//
// Chunk counts implied by the compressor table (one byte per chunk), the size table and
// the offset table (four bytes per chunk) must agree whenever a table is non-empty.
// Unrecognized child sections are ignored.
//
// Returns:
//   - Instructions: Parsed tables with ChunkCount and Placement resolved
//   - error: ErrBadFrame on malformed children, count mismatches or missing required tables
func ParseInstructions(container []byte) (Instructions, error) {
	var inst Instructions
	var haveCompressors, haveSizes, haveOffsets bool

	remaining := container
	for len(remaining) > 0 {
		h, err := ReadHeader(remaining)
		if err != nil {
			return Instructions{}, err
		}
		body := h.Body(remaining)

		count := 0
		switch Type(h.Type) {
		case TypeCompressorTable:
			inst.compressors = body
			haveCompressors = true
			count = len(body)
		case TypeSizeTable:
			inst.sizes = body
			haveSizes = true
			count = len(body) / tableEntrySize
		case TypeOffsetTable:
			inst.offsets = body
			haveOffsets = true
			count = len(body) / tableEntrySize
		default:
			// unknown tables are skipped
		}

		if count != 0 {
			if inst.ChunkCount != 0 && count != inst.ChunkCount {
				return Instructions{}, fmt.Errorf("%w: %s implies %d chunks, previous tables imply %d", errs.ErrBadFrame, Type(h.Type), count, inst.ChunkCount)
			}
			inst.ChunkCount = count
		}

		remaining = remaining[h.Size():]
	}

	if !haveCompressors || !haveSizes {
		return Instructions{}, fmt.Errorf("%w: decode instructions lack a compressor table or size table", errs.ErrBadFrame)
	}

	// An empty table next to a non-empty one cannot describe every chunk.
	if len(inst.compressors) < inst.ChunkCount || len(inst.sizes)/tableEntrySize < inst.ChunkCount {
		return Instructions{}, fmt.Errorf("%w: chunk tables are shorter than %d chunks", errs.ErrBadFrame, inst.ChunkCount)
	}

	inst.Placement = PlacementCumulative
	if haveOffsets {
		if len(inst.offsets)/tableEntrySize < inst.ChunkCount {
			return Instructions{}, fmt.Errorf("%w: offset table is shorter than %d chunks", errs.ErrBadFrame, inst.ChunkCount)
		}
		inst.Placement = PlacementExplicit
	}

	return inst, nil
}

// Compressor returns the second-stage compressor code of chunk i.
func (in Instructions) Compressor(i int) format.Compressor {
	return format.Compressor(in.compressors[i])
}

// Size returns the compressed size of chunk i.
func (in Instructions) Size(i int) uint32 {
	return endian.GetLittleEndianEngine().Uint32(in.sizes[i*tableEntrySize:])
}

// Chunks iterates over the chunk table in order, locating every chunk according to the
// resolved placement.
//
// Example:
//
//	for i, c := range inst.Chunks() {
//	    if c.End() > uint64(len(data)) {
//	        return errs.ErrBadFrame
//	    }
//	    ...
//	}
func (in Instructions) Chunks() iter.Seq2[int, Chunk] {
	if in.Placement == PlacementExplicit {
		return in.explicitChunks
	}

	return in.cumulativeChunks
}

func (in Instructions) cumulativeChunks(yield func(int, Chunk) bool) {
	var running uint64
	for i := range in.ChunkCount {
		c := Chunk{Compressor: in.Compressor(i), Offset: running, Length: uint64(in.Size(i))}
		running += c.Length
		if !yield(i, c) {
			return
		}
	}
}

func (in Instructions) explicitChunks(yield func(int, Chunk) bool) {
	engine := endian.GetLittleEndianEngine()
	for i := range in.ChunkCount {
		c := Chunk{
			Compressor: in.Compressor(i),
			Offset:     uint64(engine.Uint32(in.offsets[i*tableEntrySize:])),
			Length:     uint64(in.Size(i)),
		}
		if !yield(i, c) {
			return
		}
	}
}
