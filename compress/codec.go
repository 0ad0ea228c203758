package compress

import (
	"fmt"

	"github.com/arloliu/hap/errs"
	"github.com/arloliu/hap/format"
)

// BlockCodec encodes and decodes single blocks on caller-provided buffers.
//
// Thread Safety: implementations are safe for concurrent use.
type BlockCodec interface {
	// MaxEncodedLen returns the worst-case encoded size of an n-byte block, or a
	// negative value if n is too large to encode.
	MaxEncodedLen(n int) int

	// EncodeTo encodes src into dst and returns the encoded block.
	//
	// When cap(dst) >= MaxEncodedLen(len(src)) the result is a prefix of dst; otherwise
	// a new slice may be allocated. dst and src must not overlap.
	//
	// Returns ErrInternal if the block cannot be encoded.
	EncodeTo(dst, src []byte) ([]byte, error)

	// DecodeTo decodes src into dst and returns the number of bytes written.
	//
	// Nothing past the decoded length is written.
	// Returns ErrBufferTooSmall, ErrBadFrame for corrupt input, or ErrInternal.
	DecodeTo(dst, src []byte) (int, error)
}

// SecondStage is a BlockCodec bound to a Hap second-stage compressor code.
//
// Frames are encoded in place and chunks decoded straight into their slot of the
// output buffer, so a SecondStage also reports the decoded size of a block up front.
//
// Thread Safety: implementations are stateless and safe for concurrent use.
type SecondStage interface {
	BlockCodec

	// Compressor returns the wire code this codec handles.
	Compressor() format.Compressor

	// DecodedLen returns the decoded size of the block src.
	//
	// Returns ErrBadFrame if src is malformed, ErrInternal on other failures.
	DecodedLen(src []byte) (int, error)
}

// Level selects the encoder effort of the Snappy second stage. All levels produce
// standard Snappy blocks.
type Level uint8

const (
	LevelDefault Level = iota // LevelDefault favors speed.
	LevelBetter               // LevelBetter trades some speed for ratio.
	LevelBest                 // LevelBest spends the most effort.
)

func (l Level) String() string {
	switch l {
	case LevelDefault:
		return "Default"
	case LevelBetter:
		return "Better"
	case LevelBest:
		return "Best"
	default:
		return "Unknown"
	}
}

// IsValid reports whether l is a known level.
func (l Level) IsValid() bool {
	return l <= LevelBest
}

var builtinSecondStages = map[format.Compressor]SecondStage{
	format.CompressorNone:   NewNoOpCodec(),
	format.CompressorSnappy: NewSnappyCodec(LevelDefault),
}

// GetSecondStage retrieves the built-in SecondStage codec for a compressor code.
//
// Returns:
//   - SecondStage: Codec for the code
//   - error: ErrBadFrame if the code names no second-stage codec (Complex included)
func GetSecondStage(c format.Compressor) (SecondStage, error) {
	if codec, ok := builtinSecondStages[c]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: unsupported second-stage compressor 0x%X", errs.ErrBadFrame, uint8(c))
}
