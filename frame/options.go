package frame

import (
	"fmt"

	"github.com/arloliu/hap/compress"
	"github.com/arloliu/hap/errs"
	"github.com/arloliu/hap/format"
	"github.com/arloliu/hap/internal/options"
)

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*Decoder]

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithExecutor runs complex frame chunks on exec.
func WithExecutor(exec Executor) DecoderOption {
	return options.New(func(d *Decoder) error {
		if exec == nil {
			return fmt.Errorf("%w: nil executor", errs.ErrBadArguments)
		}
		d.exec = exec

		return nil
	})
}

// WithWorkers decodes complex frame chunks on up to n goroutines.
func WithWorkers(n int) DecoderOption {
	return options.New(func(d *Decoder) error {
		if n < 1 {
			return fmt.Errorf("%w: worker count must be positive, got %d", errs.ErrBadArguments, n)
		}
		d.exec = NewParallelExecutor(n)

		return nil
	})
}

// WithSerial decodes complex frame chunks on the calling goroutine. It is the default.
func WithSerial() DecoderOption {
	return options.NoError(func(d *Decoder) {
		d.exec = SerialExecutor
	})
}

// WithCompressor selects the second-stage compressor: format.CompressorSnappy (default)
// or format.CompressorNone.
func WithCompressor(c format.Compressor) EncoderOption {
	return options.New(func(e *Encoder) error {
		switch c {
		case format.CompressorNone, format.CompressorSnappy:
			e.compressor = c
			return nil
		default:
			return fmt.Errorf("%w: unsupported compressor %s", errs.ErrBadArguments, c)
		}
	})
}

// WithCompressionLevel selects the Snappy encoder effort. Every level emits standard
// Snappy blocks.
func WithCompressionLevel(level compress.Level) EncoderOption {
	return options.New(func(e *Encoder) error {
		if !level.IsValid() {
			return fmt.Errorf("%w: invalid compression level %d", errs.ErrBadArguments, uint8(level))
		}
		e.level = level

		return nil
	})
}
