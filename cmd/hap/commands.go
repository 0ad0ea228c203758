package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/arloliu/hap"
	"github.com/arloliu/hap/compress"
	"github.com/arloliu/hap/errs"
	"github.com/arloliu/hap/format"
	"github.com/arloliu/hap/frame"
	"github.com/arloliu/hap/internal/hash"
)

var textureFormats = map[string]format.TextureFormat{
	"dxt1":  format.TextureFormatRGBDXT1,
	"dxt5":  format.TextureFormatRGBADXT5,
	"ycocg": format.TextureFormatYCoCgDXT5,
}

var compressors = map[string]format.Compressor{
	"snappy": format.CompressorSnappy,
	"none":   format.CompressorNone,
}

var levels = map[string]compress.Level{
	"default": compress.LevelDefault,
	"better":  compress.LevelBetter,
	"best":    compress.LevelBest,
}

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "wrap a DXT texture payload in a single-block frame",
		ArgsUsage: "<texture> <frame>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "dxt1", Usage: "texture format: dxt1, dxt5 or ycocg"},
			&cli.StringFlag{Name: "compressor", Aliases: []string{"c"}, Value: "snappy", Usage: "second-stage compressor: snappy or none"},
			&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Value: "default", Usage: "snappy level: default, better or best"},
		},
		Action: runEncode,
	}
}

func runEncode(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	src, dst, err := twoArgs(cmd)
	if err != nil {
		return err
	}

	tf, err := lookup(textureFormats, "format", cmd.String("format"))
	if err != nil {
		return err
	}
	c, err := lookup(compressors, "compressor", cmd.String("compressor"))
	if err != nil {
		return err
	}
	level, err := lookup(levels, "level", cmd.String("level"))
	if err != nil {
		return err
	}

	encoder, err := frame.NewEncoder(frame.WithCompressor(c), frame.WithCompressionLevel(level))
	if err != nil {
		return err
	}

	texture, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	encoded, err := encoder.Append(nil, texture, tf)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, encoded, 0o644); err != nil { //nolint: gosec
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "%s: %s -> %s (%s, %s)\n", dst,
		humanize.Bytes(uint64(len(texture))), humanize.Bytes(uint64(len(encoded))), tf, c)

	return nil
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "decode a frame into its GPU-ready texture payload",
		ArgsUsage: "<frame> <texture>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: 0, Usage: "goroutines for chunked frames (0 uses GOMAXPROCS)"},
		},
		Action: runDecode,
	}
}

func runDecode(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	src, dst, err := twoArgs(cmd)
	if err != nil {
		return err
	}

	if cmd.Int("workers") < 0 {
		return fmt.Errorf("%w: --workers must not be negative", errs.ErrBadArguments)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	decoder, err := frame.NewDecoder(frame.WithExecutor(hap.NewParallelExecutor(int(cmd.Int("workers")))))
	if err != nil {
		return err
	}

	texture, tf, err := decoder.DecodeAlloc(data)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, texture, 0o644); err != nil { //nolint: gosec
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "%s: %s %s, digest %016x\n", dst, humanize.Bytes(uint64(len(texture))), tf, hash.Digest(texture))

	return nil
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print the structure of a frame without decoding it",
		ArgsUsage: "<frame>",
		Action:    runInspect,
	}
}

func runInspect(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	if cmd.Args().Len() != 1 {
		return fmt.Errorf("%w: expected <frame>", errs.ErrBadArguments)
	}

	data, err := os.ReadFile(cmd.Args().First())
	if err != nil {
		return err
	}

	info, err := frame.Inspect(data)
	if err != nil {
		return err
	}

	printInfo(cmd.Root().Writer, info)

	return nil
}

func printInfo(w io.Writer, info frame.Info) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "format:\t%s (%s)\n", info.Format, info.Format.GPUFormat())
	fmt.Fprintf(tw, "compressor:\t%s\n", info.Compressor)
	fmt.Fprintf(tw, "header:\t%d bytes\n", info.HeaderLength)
	fmt.Fprintf(tw, "body:\t%s\n", humanize.Bytes(uint64(info.BodyLength)))
	fmt.Fprintf(tw, "decoded:\t%s\n", humanize.Bytes(uint64(info.DecodedLength)))
	fmt.Fprintf(tw, "digest:\t%016x\n", info.Digest)

	if info.Compressor != format.CompressorComplex {
		return
	}

	fmt.Fprintf(tw, "placement:\t%s\n", info.Placement)
	fmt.Fprintf(tw, "chunks:\t%d\n", len(info.Chunks))
	fmt.Fprintln(tw, "\nchunk\tcompressor\toffset\tstored\tdecoded")
	for i, c := range info.Chunks {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", i, c.Compressor, c.Offset, c.Length, c.DecodedLength)
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "compare second-stage compressors on a texture payload",
		ArgsUsage: "<texture>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "frame", Usage: "the input is a frame; analyze its decoded payload"},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	if cmd.Args().Len() != 1 {
		return fmt.Errorf("%w: expected <texture>", errs.ErrBadArguments)
	}

	payload, err := os.ReadFile(cmd.Args().First())
	if err != nil {
		return err
	}

	if cmd.Bool("frame") {
		decoder, err := frame.NewDecoder()
		if err != nil {
			return err
		}
		if payload, _, err = decoder.DecodeAlloc(payload); err != nil {
			return err
		}
	}

	estimates, err := compress.Analyze(payload)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "codec\tframeable\tsize\tsavings\tverified")
	for _, e := range estimates {
		fmt.Fprintf(tw, "%s\t%t\t%s\t%.1f%%\t%t\n", e.Name, e.Frameable, humanize.Bytes(uint64(e.CompressedSize)), e.SpaceSavings(), e.Verified) //nolint: gosec
	}

	return nil
}

func setupLogging(cmd *cli.Command) {
	if !cmd.Bool("verbose") {
		return
	}

	hap.SetLogger(slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func twoArgs(cmd *cli.Command) (string, string, error) {
	if cmd.Args().Len() != 2 {
		return "", "", fmt.Errorf("%w: expected %s", errs.ErrBadArguments, cmd.ArgsUsage)
	}

	return cmd.Args().Get(0), cmd.Args().Get(1), nil
}

func lookup[T any](table map[string]T, flag, value string) (T, error) {
	v, ok := table[strings.ToLower(value)]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: unknown --%s %q", errs.ErrBadArguments, flag, value)
	}

	return v, nil
}
