package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/hap/errs"
)

// zstdDecoderPool pools zstd decoders; klauspost decoders run allocation free after warmup.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}

		return encoder
	},
}

// ZstdCodec encodes blocks as single Zstandard frames.
//
// Hap frames cannot carry zstd blocks; the codec serves Analyze as a high-ratio reference
// point when judging how much a texture payload could still shrink.
type ZstdCodec struct{}

var _ BlockCodec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// MaxEncodedLen returns the worst-case zstd frame size for n input bytes.
func (c ZstdCodec) MaxEncodedLen(n int) int {
	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.MaxEncodedSize(n)
}

// EncodeTo encodes src as one zstd frame using a pooled encoder.
func (c ZstdCodec) EncodeTo(dst, src []byte) ([]byte, error) {
	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(src, dst[:0]), nil
}

// DecodeTo decodes a zstd frame into dst using a pooled decoder.
func (c ZstdCodec) DecodeTo(dst, src []byte) (int, error) {
	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	// The capacity cap makes any growth past dst visible as a reallocation.
	out, err := decoder.DecodeAll(src, dst[:0:len(dst)])
	if err != nil {
		return 0, fmt.Errorf("%w: zstd: %w", errs.ErrBadFrame, err)
	}

	if len(out) > len(dst) {
		return 0, fmt.Errorf("%w: block decodes to %d bytes, destination holds %d", errs.ErrBufferTooSmall, len(out), len(dst))
	}

	if len(out) > 0 && &out[0] != &dst[0] {
		copy(dst, out)
	}

	return len(out), nil
}
