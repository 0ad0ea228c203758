package compress

import (
	"errors"
	"fmt"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/s2"

	"github.com/arloliu/hap/errs"
	"github.com/arloliu/hap/format"
)

// SnappyCodec is the Hap second-stage codec (compressor code 0xB).
//
// Blocks use the Snappy block format: a varint-encoded decoded length followed by
// literal and copy elements. Every level runs the S2 encoder in Snappy compatible mode,
// so the output decodes with any Snappy decoder.
//
// Decoding is strict. Blocks using S2 extensions, such as a zero-offset repeat copy,
// are rejected with ErrBadFrame even though an S2 decoder would accept them.
type SnappyCodec struct {
	level Level
}

var _ SecondStage = (*SnappyCodec)(nil)

// NewSnappyCodec creates a Snappy codec with the given encoder level.
// Unknown levels fall back to LevelDefault.
func NewSnappyCodec(level Level) SnappyCodec {
	if !level.IsValid() {
		level = LevelDefault
	}

	return SnappyCodec{level: level}
}

// Level returns the encoder level.
func (c SnappyCodec) Level() Level {
	return c.level
}

// Compressor returns format.CompressorSnappy.
func (c SnappyCodec) Compressor() format.Compressor {
	return format.CompressorSnappy
}

// MaxEncodedLen returns the worst-case Snappy block size for n input bytes.
func (c SnappyCodec) MaxEncodedLen(n int) int {
	return s2.MaxEncodedLen(n)
}

// EncodeTo encodes src as a single Snappy block.
func (c SnappyCodec) EncodeTo(dst, src []byte) ([]byte, error) {
	if c.MaxEncodedLen(len(src)) < 0 {
		return nil, fmt.Errorf("%w: %d bytes exceed the snappy block limit", errs.ErrInternal, len(src))
	}

	switch c.level {
	case LevelBetter:
		return s2.EncodeSnappyBetter(dst, src), nil
	case LevelBest:
		return s2.EncodeSnappyBest(dst, src), nil
	default:
		return s2.EncodeSnappy(dst, src), nil
	}
}

// DecodedLen reads the decoded length prefix of a Snappy block.
func (c SnappyCodec) DecodedLen(src []byte) (int, error) {
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return 0, classify(err)
	}

	return n, nil
}

// DecodeTo decodes a Snappy block into dst.
func (c SnappyCodec) DecodeTo(dst, src []byte) (int, error) {
	n, err := c.DecodedLen(src)
	if err != nil {
		return 0, err
	}

	if n > len(dst) {
		return 0, fmt.Errorf("%w: block decodes to %d bytes, destination holds %d", errs.ErrBufferTooSmall, n, len(dst))
	}

	// Capping the capacity keeps the decoder inside dst[:n].
	out, err := snappy.Decode(dst[:n:n], src)
	if err != nil {
		return 0, classify(err)
	}

	if len(out) != n {
		return 0, fmt.Errorf("%w: snappy decoded %d bytes, expected %d", errs.ErrInternal, len(out), n)
	}

	return n, nil
}

// classify maps Snappy library errors onto the codec's sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, snappy.ErrCorrupt),
		errors.Is(err, snappy.ErrUnsupported),
		errors.Is(err, snappy.ErrTooLarge):
		return fmt.Errorf("%w: %w", errs.ErrBadFrame, err)
	default:
		return fmt.Errorf("%w: %w", errs.ErrInternal, err)
	}
}
