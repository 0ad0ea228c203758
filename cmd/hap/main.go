// Command hap encodes, decodes and inspects Hap frames stored as files.
//
// Usage:
//
//	hap encode --format dxt5 --level best texture.dds.raw frame.hap
//	hap decode --workers 8 frame.hap texture.raw
//	hap inspect frame.hap
//	hap analyze texture.raw
//
// The exit status is the Hap result code of the failure: 1 bad arguments, 2 buffer too
// small, 3 bad frame, 4 internal error.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/hap/errs"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "hap:", err)
		os.Exit(exitCode(err))
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "hap",
		Usage:     "encode, decode and inspect Hap texture frames",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log codec diagnostics to stderr",
			},
		},
		Commands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
			inspectCommand(),
			analyzeCommand(),
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// exitCode maps an error to the process exit status. Failures outside the codec, such as
// unreadable files or unknown flags, count as bad arguments.
func exitCode(err error) int {
	code := errs.Code(err)
	if code == errs.CodeInternalError && !errors.Is(err, errs.ErrInternal) {
		return errs.CodeBadArguments
	}

	return code
}
