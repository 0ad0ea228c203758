// Package endian provides the byte order helpers used by the Hap wire format.
//
// Every multi-byte integer stored in a Hap frame is little-endian, independent of the host
// architecture. Besides the usual 16/32/64-bit accessors inherited from encoding/binary,
// section headers carry a 24-bit length field, so this package adds Uint24, PutUint24 and
// AppendUint24.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	size := engine.Uint32(table[i*4:])
//
//	length := endian.Uint24(header)
//	endian.PutUint24(header, uint32(len(body)))
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned EndianEngine
// instances are immutable and stateless.
package endian

import "encoding/binary"

// MaxUint24 is the largest value representable in a 24-bit field.
const MaxUint24 = 0x00FFFFFF

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used for all Hap integers.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Uint24 reads a little-endian 24-bit unsigned integer from the first three bytes of b.
// It panics if len(b) < 3.
func Uint24(b []byte) uint32 {
	_ = b[2] // bounds check hint to compiler
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

// PutUint24 writes the low 24 bits of v into the first three bytes of b, little-endian.
// Bits above 24 are discarded. It panics if len(b) < 3.
func PutUint24(b []byte, v uint32) {
	_ = b[2]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

// AppendUint24 appends the low 24 bits of v to b, little-endian.
func AppendUint24(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16))
}
