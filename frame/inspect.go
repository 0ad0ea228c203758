package frame

import (
	"fmt"

	"github.com/arloliu/hap/compress"
	"github.com/arloliu/hap/errs"
	"github.com/arloliu/hap/format"
	"github.com/arloliu/hap/internal/hash"
	"github.com/arloliu/hap/section"
)

// ChunkInfo describes one chunk of a complex frame.
type ChunkInfo struct {
	Compressor format.Compressor
	// Offset is relative to the start of the frame data region.
	Offset uint64
	// Length is the stored (compressed) size.
	Length uint64
	// DecodedLength is the size the chunk inflates to.
	DecodedLength int
}

// Info is a structural report of a frame.
type Info struct {
	HeaderLength  int
	BodyLength    uint32
	Compressor    format.Compressor
	Format        format.TextureFormat
	DecodedLength int
	// Digest is the xxHash64 of the frame body.
	Digest uint64
	// Placement and Chunks are set for complex frames only.
	Placement section.Placement
	Chunks    []ChunkInfo
}

// Inspect parses a frame without decompressing it.
//
// The report covers the top-level header, the decoded size and, for complex frames, the
// chunk table. Only size prefixes of Snappy blocks are read, so Inspect is cheap enough to
// size output buffers ahead of Decode.
//
// Returns:
//   - Info: Frame structure
//   - error: ErrBadArguments for empty input, ErrBadFrame for malformed frames
func Inspect(input []byte) (Info, error) {
	if len(input) == 0 {
		return Info{}, fmt.Errorf("%w: empty input", errs.ErrBadArguments)
	}

	h, tf, err := readFrameHeader(input)
	if err != nil {
		return Info{}, err
	}

	c, _ := format.UnpackType(h.Type)
	body := h.Body(input)
	info := Info{
		HeaderLength: h.HeaderLength,
		BodyLength:   h.BodyLength,
		Compressor:   c,
		Format:       tf,
		Digest:       hash.Digest(body),
	}

	switch c {
	case format.CompressorNone, format.CompressorSnappy:
		codec, err := compress.GetSecondStage(c)
		if err != nil {
			return Info{}, err
		}
		if info.DecodedLength, err = codec.DecodedLen(body); err != nil {
			return Info{}, err
		}
	case format.CompressorComplex:
		inst, data, err := section.ReadComplexBody(body)
		if err != nil {
			return Info{}, err
		}

		info.Placement = inst.Placement
		info.Chunks = make([]ChunkInfo, 0, inst.ChunkCount)
		for i, chunk := range inst.Chunks() {
			_, n, err := resolveChunk(i, chunk, data)
			if err != nil {
				return Info{}, err
			}

			info.Chunks = append(info.Chunks, ChunkInfo{
				Compressor:    chunk.Compressor,
				Offset:        chunk.Offset,
				Length:        chunk.Length,
				DecodedLength: n,
			})
			info.DecodedLength += n
		}
	default:
		return Info{}, fmt.Errorf("%w: unknown frame compressor 0x%X", errs.ErrBadFrame, uint8(c))
	}

	return info, nil
}
