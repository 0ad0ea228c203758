// Package errs defines the sentinel errors returned by the hap codec.
//
// Every error produced by the codec wraps exactly one of the sentinels below, so callers
// can classify failures with errors.Is regardless of the context attached at the call site:
//
//	res, err := hap.Decode(frame, hap.SerialExecutor, out)
//	if errors.Is(err, errs.ErrBufferTooSmall) {
//	    // grow out and retry
//	}
package errs

import "errors"

var (
	// ErrBadArguments indicates a missing or invalid argument passed to an encode or decode call.
	ErrBadArguments = errors.New("hap: bad arguments")
	// ErrBadFrame indicates malformed or inconsistent frame structure.
	ErrBadFrame = errors.New("hap: bad frame")
	// ErrBufferTooSmall indicates the caller supplied output buffer cannot hold the result.
	ErrBufferTooSmall = errors.New("hap: buffer too small")
	// ErrInternal indicates a second-stage compression library failure not caused by the input.
	ErrInternal = errors.New("hap: internal error")
)

// Result codes, matching the numeric results of the reference Hap library.
const (
	CodeNoError        = 0
	CodeBadArguments   = 1
	CodeBufferTooSmall = 2
	CodeBadFrame       = 3
	CodeInternalError  = 4
)

// Code maps err to its numeric Hap result code.
//
// A nil error maps to CodeNoError. Errors that wrap none of the package sentinels are
// reported as CodeInternalError.
func Code(err error) int {
	switch {
	case err == nil:
		return CodeNoError
	case errors.Is(err, ErrBadArguments):
		return CodeBadArguments
	case errors.Is(err, ErrBufferTooSmall):
		return CodeBufferTooSmall
	case errors.Is(err, ErrBadFrame):
		return CodeBadFrame
	default:
		return CodeInternalError
	}
}
