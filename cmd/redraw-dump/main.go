// Command redraw-dump decodes a recorded msgpack-RPC stream from an editor
// host and prints every UI event it contains.
//
//	redraw-dump [flags] [file|-]
//
// Configuration defaults come from the environment (see internal/config) and
// a .env file in the working directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/casualjim/redraw"
	"github.com/casualjim/redraw/broker"
	"github.com/casualjim/redraw/events"
	"github.com/casualjim/redraw/internal/config"
	"github.com/casualjim/redraw/internal/msgfmt"
	"github.com/casualjim/redraw/pkg/natsx"
	"github.com/casualjim/redraw/pkg/slogx"
	"github.com/casualjim/redraw/session"
	json "github.com/goccy/go-json"
	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
)

func setupLogging(level slog.Level) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}
	log := zerolog.New(output).With().Timestamp().Logger()
	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: level}),
	))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("redraw-dump failed", slogx.Error(err))
		os.Exit(1)
	}
}

type options struct {
	format        msgfmt.Format
	width         redraw.FieldWidth
	strict        bool
	reportUnknown bool
	publish       bool
	schema        bool
	subject       string
	input         string
}

func parseFlags(cfg config.Config, args []string) (options, error) {
	fs := flag.NewFlagSet("redraw-dump", flag.ContinueOnError)
	format := fs.String("format", string(msgfmt.FormatConsole), "output format: console, json or pp")
	asJSON := fs.Bool("json", false, "shorthand for -format json")
	asPP := fs.Bool("pp", false, "shorthand for -format pp")
	width := fs.String("width", cfg.FieldWidth.String(), "unsigned field width: 32 or 64")
	strict := fs.Bool("strict", cfg.StrictArity, "reject occurrences with trailing fields")
	unknown := fs.Bool("report-unknown", cfg.ReportUnknown, "report events this decoder does not know")
	publish := fs.Bool("publish", false, "also publish every message to NATS")
	subject := fs.String("subject", cfg.Subject, "NATS subject used with -publish")
	schema := fs.Bool("schema", false, "print the JSON schema of every event and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: redraw-dump [flags] [file|-]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 1 {
		return options{}, fmt.Errorf("expected at most one input, got %d", fs.NArg())
	}

	opts := options{
		strict:        *strict,
		reportUnknown: *unknown,
		publish:       *publish,
		schema:        *schema,
		subject:       *subject,
		input:         fs.Arg(0),
	}

	var err error
	switch {
	case *asJSON && *asPP:
		return options{}, errors.New("-json and -pp are mutually exclusive")
	case *asJSON:
		opts.format = msgfmt.FormatJSON
	case *asPP:
		opts.format = msgfmt.FormatPretty
	default:
		if opts.format, err = msgfmt.ParseFormat(*format); err != nil {
			return options{}, err
		}
	}
	if opts.width, err = redraw.ParseFieldWidth(*width); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel)

	opts, err := parseFlags(cfg, args)
	if err != nil {
		return err
	}

	if opts.schema {
		return printSchemas(stdout)
	}

	in := stdin
	if opts.input != "" && opts.input != "-" {
		f, err := os.Open(opts.input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	hook, err := msgfmt.New(opts.format, stdout)
	if err != nil {
		return err
	}
	sink := session.HookSink(hook)

	if opts.publish {
		nc, err := natsx.NewClient(cfg.NATSURL)
		if err != nil {
			return fmt.Errorf("connect to nats: %w", err)
		}
		defer nc.Close()
		topic := broker.NATS(nc).Topic(ctx, opts.subject)
		sink = session.MultiSink(sink, topic)
		defer func() {
			if err := nc.Flush(); err != nil {
				slog.Warn("failed to flush nats connection", slogx.Error(err))
			}
		}()
	}

	d := redraw.New(
		redraw.WithFieldWidth(opts.width),
		redraw.StrictArity(opts.strict),
		redraw.ReportUnknown(opts.reportUnknown),
	)
	s := session.New(d, sink)
	runErr := s.Run(ctx, in)

	stats := s.Stats()
	slog.Info("stream done",
		slog.Uint64("frames", stats.Frames),
		slog.Uint64("notifications", stats.Notifications),
		slog.Uint64("events", stats.Events),
		slog.Uint64("failures", stats.Failures),
		slog.Uint64("skipped", stats.Skipped),
	)
	return runErr
}

func printSchemas(w io.Writer) error {
	data, err := json.MarshalIndent(events.Schemas(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
