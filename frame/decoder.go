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

// Result describes a successfully decoded frame.
type Result struct {
	// Format is the texture format of the decoded payload.
	Format format.TextureFormat
	// BytesUsed is the number of bytes written to the start of the output buffer.
	BytesUsed int
}

// Decode decodes one Hap frame into output.
//
// Simple frames (None or Snappy) are decoded on the calling goroutine. Complex frames are
// split into chunks whose output spans are laid out back to back in table order; exec is
// called once with one work item per chunk and the first failing chunk, by index,
// determines the error. Frames with zero chunks decode to zero bytes without calling exec.
//
// Parameters:
//   - input: Bytes of exactly one frame
//   - exec: Executor for complex frame chunks
//   - output: Destination for the decoded payload
//
// Returns:
//   - Result: Texture format and number of bytes written to output
//   - error: ErrBadArguments for empty input, nil exec or nil output; ErrBadFrame for
//     malformed frames; ErrBufferTooSmall if output cannot hold the payload, in which case
//     output is untouched; ErrInternal for second-stage library failures
func Decode(input []byte, exec Executor, output []byte) (Result, error) {
	if len(input) == 0 {
		return Result{}, fmt.Errorf("%w: empty input", errs.ErrBadArguments)
	}
	if exec == nil {
		return Result{}, fmt.Errorf("%w: nil executor", errs.ErrBadArguments)
	}
	if output == nil {
		return Result{}, fmt.Errorf("%w: nil output buffer", errs.ErrBadArguments)
	}

	h, tf, err := readFrameHeader(input)
	if err != nil {
		return Result{}, err
	}

	c, _ := format.UnpackType(h.Type)
	body := h.Body(input)

	var n int
	switch c {
	case format.CompressorNone, format.CompressorSnappy:
		n, err = decodeBlock(c, body, output)
	case format.CompressorComplex:
		n, err = decodeComplex(body, exec, output)
	default:
		err = fmt.Errorf("%w: unknown frame compressor 0x%X", errs.ErrBadFrame, uint8(c))
	}

	if err != nil {
		return Result{}, err
	}

	return Result{Format: tf, BytesUsed: n}, nil
}

// TextureFormat reads the top-level header of a frame and returns its texture format
// without decoding anything.
//
// Returns:
//   - format.TextureFormat: Texture format of the frame
//   - error: ErrBadArguments for empty input, ErrBadFrame for malformed headers or
//     unknown formats
func TextureFormat(input []byte) (format.TextureFormat, error) {
	if len(input) == 0 {
		return 0, fmt.Errorf("%w: empty input", errs.ErrBadArguments)
	}

	_, tf, err := readFrameHeader(input)

	return tf, err
}

func readFrameHeader(input []byte) (section.Header, format.TextureFormat, error) {
	h, err := section.ReadHeader(input)
	if err != nil {
		return section.Header{}, 0, err
	}

	_, id := format.UnpackType(h.Type)
	tf, ok := format.TextureFormatForID(id)
	if !ok {
		return section.Header{}, 0, fmt.Errorf("%w: unknown texture format id 0x%X", errs.ErrBadFrame, uint8(id))
	}

	return h, tf, nil
}

func decodeBlock(c format.Compressor, body []byte, output []byte) (int, error) {
	codec, err := compress.GetSecondStage(c)
	if err != nil {
		return 0, err
	}

	n, err := codec.DecodedLen(body)
	if err != nil {
		return 0, err
	}

	if n > len(output) {
		return 0, fmt.Errorf("%w: frame decodes to %d bytes, output holds %d", errs.ErrBufferTooSmall, n, len(output))
	}

	return codec.DecodeTo(output[:n], body)
}

func decodeComplex(body []byte, exec Executor, output []byte) (int, error) {
	inst, data, err := section.ReadComplexBody(body)
	if err != nil {
		return 0, err
	}

	if inst.ChunkCount == 0 {
		return 0, nil
	}

	chunks, release := chunkPool.Get(inst.ChunkCount)
	defer func() {
		clear(chunks)
		release()
	}()

	total := 0
	for i, c := range inst.Chunks() {
		src, n, err := resolveChunk(i, c, data)
		if err != nil {
			return 0, err
		}

		chunks[i].compressor = c.Compressor
		chunks[i].src = src
		chunks[i].size = n
		total += n
	}

	if total > len(output) {
		return 0, fmt.Errorf("%w: frame decodes to %d bytes, output holds %d", errs.ErrBufferTooSmall, total, len(output))
	}

	offset := 0
	for i := range chunks {
		end := offset + chunks[i].size
		chunks[i].dst = output[offset:end:end]
		offset = end
	}

	logging.Logger().Debug("decoding complex frame",
		"chunks", inst.ChunkCount,
		"placement", inst.Placement,
		"bytes", total,
	)

	exec(func(i int) { chunks[i].decode() }, len(chunks))

	for i := range chunks {
		if !chunks[i].done {
			return 0, fmt.Errorf("%w: executor skipped chunk %d", errs.ErrInternal, i)
		}
		if chunks[i].err != nil {
			return 0, fmt.Errorf("chunk %d: %w", i, chunks[i].err)
		}
	}

	return total, nil
}

// Decoder decodes frames with a configured Executor.
//
// A Decoder holds no per-frame state; it is safe for concurrent use when its executor is.
type Decoder struct {
	exec Executor
}

// NewDecoder creates a Decoder. By default complex frame chunks run on the calling
// goroutine.
//
// Returns ErrBadArguments if an option value is invalid.
func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	d := &Decoder{exec: SerialExecutor}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Decode decodes one frame into output. See the package level Decode.
func (d *Decoder) Decode(input []byte, output []byte) (Result, error) {
	return Decode(input, d.exec, output)
}

// DecodeAlloc decodes one frame into a newly allocated buffer of exactly the decoded size.
func (d *Decoder) DecodeAlloc(input []byte) ([]byte, format.TextureFormat, error) {
	info, err := Inspect(input)
	if err != nil {
		return nil, 0, err
	}

	out := make([]byte, info.DecodedLength)
	res, err := d.Decode(input, out)
	if err != nil {
		return nil, 0, err
	}

	return out[:res.BytesUsed], res.Format, nil
}
