package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/hap/errs"
)

// lz4CompressorPool pools lz4.Compressor instances, which keep a reusable hash table.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec compresses with the LZ4 block format.
//
// Like ZstdCodec it exists for Analyze; Hap frames only carry Snappy blocks.
type LZ4Codec struct{}

var _ BlockCodec = (*LZ4Codec)(nil)

// NewLZ4Codec creates a new LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// MaxEncodedLen returns lz4.CompressBlockBound(n).
func (c LZ4Codec) MaxEncodedLen(n int) int {
	return lz4.CompressBlockBound(n)
}

// EncodeTo compresses src into one LZ4 block using a pooled lz4.Compressor.
//
// The block is always written against a full CompressBlockBound buffer, so
// incompressible input is stored as literals rather than reported as empty.
func (c LZ4Codec) EncodeTo(dst, src []byte) ([]byte, error) {
	bound := c.MaxEncodedLen(len(src))
	if cap(dst) < bound {
		dst = make([]byte, bound)
	}
	dst = dst[:bound]

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %w", errs.ErrInternal, err)
	}

	return dst[:n], nil
}

// DecodeTo decodes an LZ4 block into dst.
//
// LZ4 blocks do not record their decoded size; dst must hold the whole block.
// A block that overruns dst is indistinguishable from a corrupt one and both
// report ErrBadFrame.
func (c LZ4Codec) DecodeTo(dst, src []byte) (int, error) {
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return 0, fmt.Errorf("%w: lz4: %w", errs.ErrBadFrame, err)
	}

	return n, nil
}
