package frame

import (
	"fmt"

	"github.com/arloliu/hap/compress"
	"github.com/arloliu/hap/errs"
	"github.com/arloliu/hap/format"
	"github.com/arloliu/hap/internal/logging"
	"github.com/arloliu/hap/internal/options"
	"github.com/arloliu/hap/section"
)

// MaxEncodedLength returns the output buffer size that Encode needs to encode n bytes with
// any compressor: the larger of the Snappy bound and n, plus the longest section header.
func MaxEncodedLength(n int) int {
	bound := compress.NewSnappyCodec(compress.LevelDefault).MaxEncodedLen(n)
	return max(bound, n) + section.LongHeaderSize
}

// Encode encodes input as a single-block frame into output using the default Snappy level.
//
// When compression does not shrink the payload, the frame stores input verbatim and its
// type byte names the None compressor.
//
// Parameters:
//   - input: Block-compressed texture payload, non-empty and shorter than 4 GiB
//   - tf: Texture format of the payload
//   - c: format.CompressorNone or format.CompressorSnappy
//   - output: Destination; MaxEncodedLength(len(input)) bytes always suffice
//
// Returns:
//   - int: Number of frame bytes written to the start of output
//   - error: ErrBadArguments for invalid input, format or compressor; ErrBufferTooSmall
//     if output is shorter than the worst case; ErrInternal if compression fails
func Encode(input []byte, tf format.TextureFormat, c format.Compressor, output []byte) (int, error) {
	return encode(input, tf, c, compress.LevelDefault, output)
}

func encode(input []byte, tf format.TextureFormat, c format.Compressor, level compress.Level, output []byte) (int, error) {
	if len(input) == 0 {
		return 0, fmt.Errorf("%w: empty input", errs.ErrBadArguments)
	}
	if uint64(len(input)) > section.MaxBodyLength {
		return 0, fmt.Errorf("%w: input of %d bytes exceeds the %d byte frame limit", errs.ErrBadArguments, len(input), uint64(section.MaxBodyLength))
	}

	id, ok := format.IDForTextureFormat(tf)
	if !ok {
		return 0, fmt.Errorf("%w: unsupported texture format 0x%X", errs.ErrBadArguments, uint32(tf))
	}

	var codec compress.SecondStage
	switch c {
	case format.CompressorNone:
		codec = compress.NewNoOpCodec()
	case format.CompressorSnappy:
		codec = compress.NewSnappyCodec(level)
	default:
		return 0, fmt.Errorf("%w: unsupported compressor %s", errs.ErrBadArguments, c)
	}

	worst := max(codec.MaxEncodedLen(len(input)), len(input))
	headerLength := section.HeaderLengthFor(uint64(len(input)))

	if len(output) < worst+headerLength {
		return 0, fmt.Errorf("%w: encoding %d bytes needs %d bytes of output, have %d", errs.ErrBufferTooSmall, len(input), worst+headerLength, len(output))
	}

	dst := output[headerLength:]
	stored := format.CompressorNone
	n := 0

	if c == format.CompressorSnappy {
		encoded, err := codec.EncodeTo(dst, input)
		if err != nil {
			return 0, err
		}

		if len(encoded) > 0 && len(encoded) < len(input) {
			stored = format.CompressorSnappy
			n = len(encoded)
			if &encoded[0] != &dst[0] {
				copy(dst, encoded)
			}
		} else {
			logging.Logger().Debug("storing frame uncompressed",
				"input", len(input),
				"compressed", len(encoded),
			)
		}
	}

	if stored == format.CompressorNone {
		n = copy(dst, input)
	}

	section.PutHeader(output, headerLength, uint32(n), format.PackType(stored, id)) //nolint: gosec

	return headerLength + n, nil
}

// Encoder encodes frames with a fixed compressor and compression level.
//
// An Encoder holds no per-frame state and is safe for concurrent use.
type Encoder struct {
	compressor format.Compressor
	level      compress.Level
}

// NewEncoder creates an Encoder. By default it compresses with Snappy at
// compress.LevelDefault.
//
// Returns ErrBadArguments if an option value is invalid.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		compressor: format.CompressorSnappy,
		level:      compress.LevelDefault,
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Compressor returns the configured second-stage compressor.
func (e *Encoder) Compressor() format.Compressor {
	return e.compressor
}

// Level returns the configured compression level.
func (e *Encoder) Level() compress.Level {
	return e.level
}

// Encode encodes input as a single-block frame into output. See the package level Encode.
func (e *Encoder) Encode(input []byte, tf format.TextureFormat, output []byte) (int, error) {
	return encode(input, tf, e.compressor, e.level, output)
}

// Append encodes input and appends the frame to dst, growing it as needed.
func (e *Encoder) Append(dst []byte, input []byte, tf format.TextureFormat) ([]byte, error) {
	start := len(dst)
	dst = growLen(dst, MaxEncodedLength(len(input)))

	n, err := e.Encode(input, tf, dst[start:])
	if err != nil {
		return dst[:start], err
	}

	return dst[:start+n], nil
}

// growLen extends dst by n bytes, reallocating when its capacity is too small.
func growLen(dst []byte, n int) []byte {
	if cap(dst)-len(dst) < n {
		grown := make([]byte, len(dst), len(dst)+n)
		copy(grown, dst)
		dst = grown
	}

	return dst[:len(dst)+n]
}
