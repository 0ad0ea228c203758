package compress

import (
	"fmt"

	"github.com/arloliu/hap/errs"
	"github.com/arloliu/hap/format"
)

// NoOpCodec stores data verbatim (compressor code 0xA).
type NoOpCodec struct{}

var _ SecondStage = (*NoOpCodec)(nil)

// NewNoOpCodec creates a new no-operation codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compressor returns format.CompressorNone.
func (c NoOpCodec) Compressor() format.Compressor {
	return format.CompressorNone
}

// MaxEncodedLen returns n.
func (c NoOpCodec) MaxEncodedLen(n int) int {
	return n
}

// EncodeTo copies src into dst, growing it when too small.
func (c NoOpCodec) EncodeTo(dst, src []byte) ([]byte, error) {
	if cap(dst) < len(src) {
		dst = make([]byte, len(src))
	}
	dst = dst[:len(src)]
	copy(dst, src)

	return dst, nil
}

// DecodedLen returns len(src).
func (c NoOpCodec) DecodedLen(src []byte) (int, error) {
	return len(src), nil
}

// DecodeTo copies src into dst.
func (c NoOpCodec) DecodeTo(dst, src []byte) (int, error) {
	if len(src) > len(dst) {
		return 0, fmt.Errorf("%w: block holds %d bytes, destination holds %d", errs.ErrBufferTooSmall, len(src), len(dst))
	}

	return copy(dst, src), nil
}
