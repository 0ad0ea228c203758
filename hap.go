// Package hap encodes and decodes Hap frames, a container for GPU block-compressed
// textures built so that a player hands decoded bytes almost directly to the graphics card.
//
// A frame stores one DXT1 or DXT5 texture. The texture data is compressed a second time
// with Snappy, either as a single block or as independently compressed chunks that can be
// decoded in parallel. Decoding never touches pixels: the result is GPU-ready block data
// plus a texture format tag.
//
// # Core Features
//
//   - Single-block encoding with automatic fallback to uncompressed storage
//   - Chunked (complex) frame decoding with a pluggable Executor
//   - Cumulative and explicit chunk placement
//   - Caller-owned buffers; no allocation on the decode path
//   - Three Snappy-compatible compression levels
//
// # Basic Usage
//
// Encoding a texture:
//
//	import "github.com/arloliu/hap"
//
//	out := make([]byte, hap.MaxEncodedLength(len(dxt)))
//	n, err := hap.Encode(dxt, hap.TextureFormatRGBDXT1, hap.CompressorSnappy, out)
//	if err != nil {
//	    return err
//	}
//	frame := out[:n]
//
// Decoding a frame with a goroutine pool:
//
//	exec := hap.NewParallelExecutor(runtime.NumCPU())
//	res, err := hap.Decode(frame, exec, buf)
//	if err != nil {
//	    return err
//	}
//	upload(buf[:res.BytesUsed], res.Format.GPUFormat())
//
// # Package Structure
//
// This package provides top-level wrappers around the frame package for the most common
// calls. The frame package adds Decoder and Encoder with options and Inspect; section,
// format and compress expose the wire format pieces. Errors wrap the sentinels of the
// errs package.
package hap

import (
	"log/slog"

	"github.com/arloliu/hap/format"
	"github.com/arloliu/hap/frame"
	"github.com/arloliu/hap/internal/logging"
)

// Texture formats reported by Decode and accepted by Encode.
const (
	TextureFormatRGBDXT1   = format.TextureFormatRGBDXT1
	TextureFormatRGBADXT5  = format.TextureFormatRGBADXT5
	TextureFormatYCoCgDXT5 = format.TextureFormatYCoCgDXT5
)

// Second-stage compressors accepted by Encode.
const (
	CompressorNone   = format.CompressorNone
	CompressorSnappy = format.CompressorSnappy
)

// Executor runs the chunk work of complex frames. See frame.Executor.
type Executor = frame.Executor

// Result describes a decoded frame. See frame.Result.
type Result = frame.Result

// SerialExecutor runs every chunk on the calling goroutine.
func SerialExecutor(work func(index int), count int) {
	frame.SerialExecutor(work, count)
}

// NewParallelExecutor returns an Executor that decodes chunks on up to workers goroutines.
// A workers value below 1 uses runtime.GOMAXPROCS(0).
func NewParallelExecutor(workers int) Executor {
	return frame.NewParallelExecutor(workers)
}

// MaxEncodedLength returns the output size that always suffices to encode n bytes.
//
// Example:
//
//	out := make([]byte, hap.MaxEncodedLength(len(dxt)))
func MaxEncodedLength(n int) int {
	return frame.MaxEncodedLength(n)
}

// Encode encodes a block-compressed texture as a single-block frame.
//
// Parameters:
//   - input: DXT texture data, non-empty
//   - tf: Texture format of input
//   - c: CompressorSnappy, or CompressorNone to store input verbatim
//   - output: Destination of at least MaxEncodedLength(len(input)) bytes
//
// Returns:
//   - int: Number of frame bytes written to output
//   - error: errs.ErrBadArguments, errs.ErrBufferTooSmall or errs.ErrInternal
func Encode(input []byte, tf format.TextureFormat, c format.Compressor, output []byte) (int, error) {
	return frame.Encode(input, tf, c, output)
}

// Decode decodes one frame into output.
//
// Complex frames call exec exactly once with one work item per chunk; pass SerialExecutor
// to decode on the calling goroutine.
//
// Returns:
//   - Result: Texture format and number of bytes written to output
//   - error: errs.ErrBadArguments, errs.ErrBadFrame, errs.ErrBufferTooSmall or
//     errs.ErrInternal
func Decode(input []byte, exec Executor, output []byte) (Result, error) {
	return frame.Decode(input, exec, output)
}

// FrameTextureFormat returns the texture format of a frame by reading its header only.
//
// Example:
//
//	tf, err := hap.FrameTextureFormat(frame)
//	if err == nil && tf.IsYCoCg() {
//	    // bind the YCoCg conversion shader
//	}
func FrameTextureFormat(input []byte) (format.TextureFormat, error) {
	return frame.TextureFormat(input)
}

// SetLogger configures the logger for hap and all its sub-packages.
// By default, hap produces no log output. Pass nil to restore the silent default.
//
// Log levels used by hap:
//   - [slog.LevelDebug]: chunk tables of complex frames, uncompressed fallback while encoding
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}

// Logger returns the current logger used by hap.
func Logger() *slog.Logger {
	return logging.Logger()
}
