// Package msgfmt renders decoded UI messages for terminals.
package msgfmt

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/casualjim/redraw/events"
	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/k0kubun/pp/v3"
)

type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
	FormatPretty  Format = "pp"
)

// ParseFormat accepts console, json and pp.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatConsole, FormatJSON, FormatPretty:
		return f, nil
	case "":
		return FormatConsole, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// New returns a hook writing every message to w in the given format.
func New(f Format, w io.Writer) (events.Hook, error) {
	switch f {
	case FormatConsole, "":
		return &consoleHook{w: w}, nil
	case FormatJSON:
		return &jsonHook{w: w}, nil
	case FormatPretty:
		printer := pp.New()
		printer.SetOutput(w)
		printer.SetColoringEnabled(!color.NoColor)
		return &ppHook{w: w, printer: printer}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
}

type consoleHook struct {
	mu sync.Mutex
	w  io.Writer
}

func (h *consoleHook) OnEvent(_ context.Context, env events.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintf(h.w, "%s %s %s\n",
		color.HiBlackString("%6d", env.Seq),
		color.CyanString(env.Event.Name()),
		Summary(env.Event),
	)
}

func (h *consoleHook) OnFailure(_ context.Context, f events.Failure) {
	h.mu.Lock()
	defer h.mu.Unlock()
	name := f.Event
	if name == "" {
		name = "?"
	}
	fmt.Fprintf(h.w, "%s %s %s", color.HiBlackString("%6d", f.Seq), color.RedString(name), color.YellowString("%v", f.Err))
	if f.Args.Exists() {
		fmt.Fprintf(h.w, " args=%s", f.Args.Raw)
	}
	fmt.Fprintln(h.w)
}

type jsonHook struct {
	mu sync.Mutex
	w  io.Writer
}

func (h *jsonHook) write(m events.Message) {
	data, err := events.ToJSON(m)
	if err != nil {
		data = fmt.Appendf(nil, `{"type":"error","error":%q}`, err.Error())
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, _ = h.w.Write(append(data, '\n'))
}

func (h *jsonHook) OnEvent(_ context.Context, env events.Envelope) { h.write(env) }

func (h *jsonHook) OnFailure(_ context.Context, f events.Failure) { h.write(f) }

type ppHook struct {
	mu      sync.Mutex
	w       io.Writer
	printer *pp.PrettyPrinter
}

func (h *ppHook) OnEvent(_ context.Context, env events.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.printer.Println(env.Event)
}

func (h *ppHook) OnFailure(_ context.Context, f events.Failure) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.printer.Println(f.Error())
}

// Summary renders the payload of e on one line.
func Summary(e events.Event) string {
	switch e := e.(type) {
	case events.CmdlineBlockAppend:
		return quote(e.Line.String())
	case events.CmdlineBlockShow:
		lines := make([]string, len(e.Lines))
		for i, l := range e.Lines {
			lines[i] = quote(l.String())
		}
		return "[" + strings.Join(lines, ", ") + "]"
	case events.MsgHistoryShow:
		kind := string(e.Kind)
		if e.Kind.IsError() {
			kind = color.RedString(kind)
		}
		return kind + " " + quote(e.Content.String())
	case events.MsgShowcmd:
		return quote(e.Content.String())
	case events.MsgRuler:
		return quote(e.Content.String())
	case events.PopupmenuSelect:
		if v, ok := e.Selected.Get(); ok {
			return fmt.Sprintf("selected=%d", v)
		}
		return "selected=none"
	}

	data, err := json.Marshal(e)
	if err != nil || string(data) == "{}" {
		return ""
	}
	return string(data)
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
