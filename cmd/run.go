// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	sixpack "github.com/hashicorp/go-sixpack"
	"github.com/hashicorp/go-sixpack/internal/fastlz"
)

// CLI are the cli parameters for the 6unpack binary
type CLI struct {
	Archive           string           `arg:"" name:"archive-file" optional:"" help:"Path to archive. (\"-\" for STDIN)"`
	BlockSize         int              `optional:"" default:"65536" help:"Block size the archive has been created with."`
	CacheInMemory     bool             `optional:"" help:"Cache STDIN in memory instead of a temporary file."`
	CreateDestination bool             `short:"c" help:"Create destination directory if it does not exist."`
	Decompressor      string           `optional:"" default:"fastlz" enum:"brotli,bzip2,fastlz,gzip,lz4,snappy,xz,zlib,zstd" help:"Decompressor for compressed chunks. (${enum})"`
	Destination       string           `short:"d" name:"dest" default:"." help:"Output directory."`
	MaxExtractionSize int64            `optional:"" default:"-1" help:"Maximum extraction size that allowed is (in bytes). (disable check: -1)"`
	MaxFiles          int64            `optional:"" default:"-1" help:"Maximum files that are extracted before stop. (disable check: -1)"`
	MaxInputSize      int64            `optional:"" default:"-1" help:"Maximum input size that allowed is (in bytes). (disable check: -1)"`
	Overwrite         bool             `short:"O" help:"Overwrite if exist."`
	Quiet             bool             `short:"q" help:"Do not print progress."`
	Telemetry         bool             `short:"T" optional:"" default:"false" help:"Print telemetry data to log after extraction."`
	Verbose           bool             `optional:"" help:"Verbose logging."`
	Version           kong.VersionFlag `short:"v" optional:"" help:"Print release version information."`
}

// exitCode is raised by the kong exit handler to leave parsing early
type exitCode int

// Run the entrypoint into 6unpack as a cli tool
func Run(version, commit, date string) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, version, commit, date)
	cancel()
	os.Exit(code)
}

// run parses args, extracts the archive and returns the exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, version, commit, date string) (code int) {
	// kong exits on --help and --version
	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("6unpack"),
		kong.Description("Uncompress 6pack archive"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
		kong.Vars{
			"version": fmt.Sprintf("6unpack %s (sixpack %s, FastLZ %s), commit %s, built at %s", version, sixpack.Version, fastlz.Version, commit, date),
		},
	)
	if err != nil {
		fmt.Fprintf(stderr, "6unpack: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "6unpack: error: %v\n", err)
		return 1
	}

	// no archive, print help
	if cli.Archive == "" {
		if err := kctx.PrintUsage(false); err != nil {
			return 1
		}
		return 0
	}

	// Check for verbose output
	logLevel := slog.LevelError
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// setup telemetry hook
	telemetryToLog := func(ctx context.Context, td *sixpack.TelemetryData) {
		if cli.Telemetry {
			logger.Error("extraction finished", "telemetry", td)
		}
	}

	// setup progress
	progress := func(string, int64, int64) {}
	bar := newProgressBar(stdout)
	if !cli.Quiet {
		progress = bar.update
	}

	decompressor, err := sixpack.DecompressorByName(cli.Decompressor)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// process cli params
	cfg := sixpack.NewConfig(
		sixpack.WithBlockSize(cli.BlockSize),
		sixpack.WithCacheInMemory(cli.CacheInMemory),
		sixpack.WithCreateDestination(cli.CreateDestination),
		sixpack.WithDecompressor(decompressor),
		sixpack.WithLogger(logger),
		sixpack.WithMaxExtractionSize(cli.MaxExtractionSize),
		sixpack.WithMaxFiles(cli.MaxFiles),
		sixpack.WithMaxInputSize(cli.MaxInputSize),
		sixpack.WithOverwrite(cli.Overwrite),
		sixpack.WithProgressHook(progress),
		sixpack.WithTelemetryHook(telemetryToLog),
	)

	// open archive
	var archive io.Reader
	if cli.Archive == "-" {
		archive = bufio.NewReader(stdin)
	} else {
		f, err := os.Open(cli.Archive)
		if err != nil {
			logger.Error("opening archive failed", "err", err)
			fmt.Fprintf(stderr, "Error: could not open %s\n", cli.Archive)
			return 1
		}
		defer f.Close()
		archive = f
	}

	if !cli.Quiet {
		fmt.Fprintf(stdout, "Archive: %s", cli.Archive)
	}

	// extract archive
	err = sixpack.Unpack(ctx, cli.Destination, archive, cfg)
	if !cli.Quiet {
		bar.finish()
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
