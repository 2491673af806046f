package main

import (
	"context"
	"io"
	"strings"
	"sync"

	"golang.org/x/exp/slog"
)

func SetupLogging(out io.Writer, level string) error {
	lvl, err := LogLevelFromString(level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(NewLogHandler(out, &slog.HandlerOptions{Level: lvl})))
	return nil
}

type LogHandler struct {
	h   slog.Handler
	mu  *sync.Mutex
	out io.Writer
	// attributes from With, keys already carry the group prefix
	attrs []string
	group string
}

func NewLogHandler(o io.Writer, opts *slog.HandlerOptions) *LogHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &LogHandler{
		out: o,
		h: slog.NewTextHandler(o, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: nil,
		}),
		mu: &sync.Mutex{},
	}
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	strs := make([]string, 0, len(h.attrs)+len(attrs))
	strs = append(strs, h.attrs...)
	for _, a := range attrs {
		strs = append(strs, h.group+a.Key+"="+a.Value.String())
	}
	return &LogHandler{h: h.h, out: h.out, mu: h.mu, attrs: strs, group: h.group}
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &LogHandler{h: h.h, out: h.out, mu: h.mu, attrs: h.attrs, group: h.group + name + "."}
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	formattedTime := r.Time.Format("2006/01/02 15:04:05")

	strs := []string{formattedTime, r.Level.String(), r.Message}
	strs = append(strs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		strs = append(strs, h.group+a.Key+"="+a.Value.String())
		return true
	})

	result := strings.Join(strs, " ") + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.out.Write([]byte(result))
	return err
}
