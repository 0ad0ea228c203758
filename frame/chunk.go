package frame

import (
	"fmt"

	"github.com/arloliu/hap/compress"
	"github.com/arloliu/hap/errs"
	"github.com/arloliu/hap/format"
	"github.com/arloliu/hap/internal/pool"
	"github.com/arloliu/hap/section"
)

// chunk is the unit of work of a complex frame decode.
//
// Each chunk owns its slot in the descriptor table and its span of the output buffer, so
// chunks with distinct indices can be decoded concurrently.
type chunk struct {
	compressor format.Compressor
	src        []byte // compressed span within the frame data region
	size       int
	dst        []byte // output span of exactly size bytes
	done       bool
	err        error
}

var chunkPool = pool.NewSlicePool[chunk]()

// decode inflates the chunk into its output span and records the outcome.
func (c *chunk) decode() {
	c.done = true

	codec, err := compress.GetSecondStage(c.compressor)
	if err != nil {
		c.err = err
		return
	}

	n, err := codec.DecodeTo(c.dst, c.src)
	if err != nil {
		c.err = err
		return
	}

	if n != len(c.dst) {
		c.err = fmt.Errorf("%w: decoded %d bytes, expected %d", errs.ErrBadFrame, n, len(c.dst))
	}
}

// resolveChunk locates chunk c inside the frame data region and reports the size it
// inflates to. Chunks with a compressor other than Snappy inflate to their stored size.
func resolveChunk(i int, c section.Chunk, data []byte) ([]byte, int, error) {
	if c.End() > uint64(len(data)) {
		return nil, 0, fmt.Errorf("%w: chunk %d spans [%d, %d) beyond %d bytes of frame data", errs.ErrBadFrame, i, c.Offset, c.End(), len(data))
	}

	src := data[c.Offset:c.End():c.End()]
	if c.Compressor != format.CompressorSnappy {
		return src, len(src), nil
	}

	codec, err := compress.GetSecondStage(format.CompressorSnappy)
	if err != nil {
		return nil, 0, err
	}

	n, err := codec.DecodedLen(src)
	if err != nil {
		return nil, 0, fmt.Errorf("chunk %d: %w", i, err)
	}

	return src, n, nil
}
