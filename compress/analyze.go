package compress

import (
	"bytes"
	"fmt"

	"github.com/arloliu/hap/errs"
)

// Estimate reports how one candidate codec compresses a payload.
type Estimate struct {
	// Name identifies the candidate, for example "snappy" or "zstd".
	Name string
	// Frameable is true when the candidate's output can be stored in a Hap frame.
	Frameable bool
	// OriginalSize is the size of input data before compression.
	OriginalSize int64
	// CompressedSize is the size of data after compression.
	CompressedSize int64
	// Verified is true when the compressed block decoded back to the original payload.
	Verified bool
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression. Returns 0.0 if the original size is zero.
func (e Estimate) CompressionRatio() float64 {
	if e.OriginalSize == 0 {
		return 0.0
	}

	return float64(e.CompressedSize) / float64(e.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage. Negative values mean the
// candidate expanded the payload.
func (e Estimate) SpaceSavings() float64 {
	return (1.0 - e.CompressionRatio()) * 100.0
}

type candidate struct {
	name      string
	frameable bool
	codec     BlockCodec
}

var candidates = []candidate{
	{"snappy", true, NewSnappyCodec(LevelDefault)},
	{"snappy-better", true, NewSnappyCodec(LevelBetter)},
	{"snappy-best", true, NewSnappyCodec(LevelBest)},
	{"s2", false, NewS2Codec()},
	{"zstd", false, NewZstdCodec()},
	{"lz4", false, NewLZ4Codec()},
}

// Analyze compresses payload with every known candidate codec and reports the sizes.
//
// The result helps pick a Snappy level for a stream of texture payloads and shows how
// far the frameable candidates are from general purpose codecs. Each compressed block
// is decoded again and compared with payload before its size is reported. An empty
// payload has nothing to compare, so its estimates are not marked verified.
//
// Returns:
//   - []Estimate: One estimate per candidate, in a fixed order
//   - error: First encode or decode failure, or ErrInternal if a round trip differs
func Analyze(payload []byte) ([]Estimate, error) {
	estimates := make([]Estimate, 0, len(candidates))
	decoded := make([]byte, len(payload))

	var scratch []byte
	for _, c := range candidates {
		bound := c.codec.MaxEncodedLen(len(payload))
		if bound < 0 {
			return nil, fmt.Errorf("%w: analyze %s: %d bytes exceed the block limit", errs.ErrInternal, c.name, len(payload))
		}
		if cap(scratch) < bound {
			scratch = make([]byte, bound)
		}

		encoded, err := c.codec.EncodeTo(scratch[:bound], payload)
		if err != nil {
			return nil, fmt.Errorf("analyze %s: %w", c.name, err)
		}

		verified := false
		if len(payload) > 0 {
			if err := verifyRoundTrip(c.codec, decoded, encoded, payload); err != nil {
				return nil, fmt.Errorf("analyze %s: %w", c.name, err)
			}
			verified = true
		}

		estimates = append(estimates, Estimate{
			Name:           c.name,
			Frameable:      c.frameable,
			OriginalSize:   int64(len(payload)),
			CompressedSize: int64(len(encoded)),
			Verified:       verified,
		})
	}

	return estimates, nil
}

// verifyRoundTrip decodes encoded into decoded and compares it with want.
// decoded must be len(want) bytes.
func verifyRoundTrip(codec BlockCodec, decoded, encoded, want []byte) error {
	clear(decoded)

	n, err := codec.DecodeTo(decoded, encoded)
	if err != nil {
		return err
	}

	if n != len(want) || !bytes.Equal(decoded[:n], want) {
		return fmt.Errorf("%w: round trip produced %d bytes that differ from the %d byte payload", errs.ErrInternal, n, len(want))
	}

	return nil
}
