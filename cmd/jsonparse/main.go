// Command jsonparse parses a JSON document and either re-serializes it or
// resolves a JSON Pointer against it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kvnloo/streamjson"
)

var (
	flagOutput  string
	flagMinify  bool
	flagPointer string
	flagDupKey  string
	flagStats   bool
	flagVerbose bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "jsonparse [input]",
		Short:         "Parse and re-emit a JSON document",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runParse,
	}

	cmd.Flags().AddFlagSet(parseFlagSet())
	return cmd
}

// parseFlagSet builds the jsonparse flag set separately from the cobra
// command, in the pack's style of a standalone *pflag.FlagSet constructor.
func parseFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("jsonparse", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.StringVarP(&flagOutput, "output", "o", "-", "output `path` (\"-\" for stdout)")
	flags.BoolVarP(&flagMinify, "minimize", "m", false, "emit minimized JSON (no whitespace)")
	flags.StringVar(&flagPointer, "pointer", "", "resolve and print a JSON Pointer instead of the whole document")
	flags.StringVar(&flagDupKey, "dup-key", "last", "duplicate object key policy: first, last, abort")
	flags.BoolVar(&flagStats, "stats", false, "print parser statistics to stderr")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	return flags
}

func runParse(cmd *cobra.Command, args []string) error {
	logger := newCLILogger(flagVerbose)

	dup, err := parseDupKeyPolicy(flagDupKey)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(args)
	if err != nil {
		return err
	}
	defer closeIn()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	cfg, err := streamjson.LoadConfigFromEnv(streamjson.NewConfig(streamjson.WithLogger(logger)))
	if err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	builder := streamjson.NewBuilder(true, dup)
	p := streamjson.NewParser(cfg, builder.Callback())

	if err := p.Feed(data); err != nil {
		return formatParseErr(err)
	}
	pos, err := p.Finish()
	if err != nil {
		return formatParseErr(err)
	}

	root := builder.Root()
	if flagPointer != "" {
		root = streamjson.PointerGet(builder.Root(), flagPointer)
		if root == nil {
			return fmt.Errorf("pointer %q did not resolve", flagPointer)
		}
	}

	out, closeOut, err := openOutput(flagOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	mode := streamjson.SerializePretty
	if flagMinify {
		mode = streamjson.SerializeMinimize
	}
	if err := streamjson.Serialize(out, root, streamjson.SerializeOptions{Mode: mode, PreferDictOrder: true}); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if flagStats {
		stats := p.Stats()
		logger.Infof("values=%d max_depth=%d bytes=%d end_line=%d end_column=%d",
			stats.TotalValues, stats.MaxDepthSeen, stats.BytesConsumed, pos.Line, pos.Column)
	}
	return nil
}

func parseDupKeyPolicy(s string) (streamjson.DupKeyPolicy, error) {
	switch s {
	case "first":
		return streamjson.DupKeyUseFirst, nil
	case "last":
		return streamjson.DupKeyUseLast, nil
	case "abort":
		return streamjson.DupKeyAbort, nil
	default:
		return 0, fmt.Errorf("invalid --dup-key %q: want first, last, or abort", s)
	}
}

func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening output: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func formatParseErr(err error) error {
	if pe, ok := err.(*streamjson.ParseError); ok {
		return fmt.Errorf("%s (Offset: %d, Line: %d, Column: %d)", pe.Kind, pe.Pos.Offset, pe.Pos.Line, pe.Pos.Column)
	}
	return err
}

func newCLILogger(verbose bool) streamjson.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return streamjson.NewLogrusLogger(l)
}
