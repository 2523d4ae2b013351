package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/csso/internal/ui/output"
	"go.trai.ch/csso/internal/ui/style"
)

// levelStyles maps a level to its icon and color. Info has no icon.
var levelStyles = map[slog.Level]struct {
	icon  string
	color func() termenv.Color
}{
	slog.LevelDebug: {style.Tilde, func() termenv.Color { return style.Term(style.Iris) }},
	slog.LevelInfo:  {"", func() termenv.Color { return style.Term(style.Slate) }},
	slog.LevelWarn:  {style.Warning, func() termenv.Color { return style.Term(style.Yellow) }},
	slog.LevelError: {style.Cross, func() termenv.Color { return style.Term(style.Red) }},
}

// PrettyHandler is a slog.Handler for a human reading stderr. The message goes
// on the first line with a level icon; attributes follow as indented
// "key: value" lines in a muted color.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

// NewPrettyHandler creates a new PrettyHandler writing to w, stderr if nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	// A shared *slog.LevelVar lets the caller change the level later.
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{out: output.New(w), level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	ls, ok := levelStyles[r.Level]
	if !ok {
		ls = levelStyles[slog.LevelInfo]
	}

	msg := r.Message
	if ls.icon != "" {
		msg = ls.icon + " " + msg
	}

	var b strings.Builder
	b.WriteString(output.Paint(h.out, msg, ls.color()))
	b.WriteByte('\n')

	details := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		details = append(details, h.detail(attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		details = append(details, h.detail(attr))
		return true
	})
	if len(details) > 0 {
		b.WriteByte('\n')
		for _, d := range details {
			b.WriteString(output.Paint(h.out, d, style.Term(style.Slate)))
			b.WriteByte('\n')
		}
	}

	_, err := h.out.WriteString(b.String())
	return err
}

func (h *PrettyHandler) detail(attr slog.Attr) string {
	return fmt.Sprintf("  %s%s: %s", h.prefix, attr.Key, attr.Value.String())
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &c
}

// WithGroup returns a new Handler that prefixes attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.prefix = h.prefix + name + "."
	return &c
}
