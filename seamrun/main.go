// seamrun runs the registered seam cases (direct, linked and mocked) and exits non-zero if any
// of them failed.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"

	flags "github.com/jessevdk/go-flags"
	"github.com/toejough/seam/internal/harness"
	"github.com/toejough/seam/internal/suite"
)

type options struct {
	Verbosity int    `short:"v" long:"verbosity" description:"log verbosity, 0 (errors only) to 4 (debug)" default:"1"`
	Run       string `short:"r" long:"run"       description:"only run cases whose name matches this regexp"`
	Count     int    `short:"c" long:"count"     description:"run every case this many times" default:"1"`
	List      bool   `short:"l" long:"list"      description:"list the selected cases instead of running them"`
	LogFile   string `long:"log-file"            description:"also write debug logs to this file"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)

	_, err := parser.ParseArgs(args)

	var flagErr *flags.Error
	if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
		_, _ = fmt.Fprint(stdout, flagErr.Message)

		return 0
	}

	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)

		return 2 //nolint:mnd
	}

	runnerOpts := []harness.Option{harness.WithCount(opts.Count)}

	if opts.Run != "" {
		filter, err := regexp.Compile(opts.Run)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: bad --run pattern: %v\n", err)

			return 2 //nolint:mnd
		}

		runnerOpts = append(runnerOpts, harness.WithFilter(filter))
	}

	var logFile io.Writer

	if opts.LogFile != "" {
		file, err := os.Create(opts.LogFile)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: opening log file: %v\n", err)

			return 1
		}
		defer file.Close()

		logFile = file
	}

	harness.InitLogging(opts.Verbosity, logFile)

	runner := harness.NewRunner(stdout, runnerOpts...)
	runner.Register(suite.Cases()...)

	if opts.List {
		for _, c := range runner.Cases() {
			_, _ = fmt.Fprintln(stdout, c.Name)
		}

		return 0
	}

	return runner.Run(ctx).ExitCode()
}
