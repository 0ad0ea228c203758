package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/hap/errs"
)

// S2Codec compresses with the native S2 block format.
//
// S2 blocks are not valid Snappy blocks, so this codec never appears in a frame. It is
// one of the candidates Analyze measures against the Snappy second stage.
type S2Codec struct{}

var _ BlockCodec = (*S2Codec)(nil)

// NewS2Codec creates a new S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// MaxEncodedLen returns the worst-case S2 block size for n input bytes.
func (c S2Codec) MaxEncodedLen(n int) int {
	return s2.MaxEncodedLen(n)
}

// EncodeTo encodes src as a single S2 block.
func (c S2Codec) EncodeTo(dst, src []byte) ([]byte, error) {
	if c.MaxEncodedLen(len(src)) < 0 {
		return nil, fmt.Errorf("%w: %d bytes exceed the s2 block limit", errs.ErrInternal, len(src))
	}

	return s2.Encode(dst, src), nil
}

// DecodeTo decodes an S2 block into dst.
func (c S2Codec) DecodeTo(dst, src []byte) (int, error) {
	n, err := s2.DecodedLen(src)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrBadFrame, err)
	}

	if n > len(dst) {
		return 0, fmt.Errorf("%w: block decodes to %d bytes, destination holds %d", errs.ErrBufferTooSmall, n, len(dst))
	}

	if _, err := s2.Decode(dst[:n:n], src); err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrBadFrame, err)
	}

	return n, nil
}
