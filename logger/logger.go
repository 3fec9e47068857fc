// Package logger wires log/slog for the comparison engine: context-scoped
// logger lookup, muting, and handlers that expand annotated errors.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type contextKey string

// Options is used to configure logging.
type Options struct {
	JSON     bool
	MinLevel slog.Level
	Output   io.Writer
}

// New builds a text or JSON slog logger. Annotated errors (see AnnotateError)
// logged through it are expanded into their attributes. Output defaults to
// stderr.
func New(opts Options) *slog.Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.MinLevel}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(opts.Output, handlerOpts)
	}

	return slog.New(NewErrorHandler(handler))
}

// WithMuted adds a muted flag to the context. When muted is true, loggers
// obtained from the context discard everything.
func WithMuted(ctx context.Context, muted bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, contextKey("mute"), muted)
}

func isMuted(ctx context.Context) bool {
	if ctx == nil {
		return false
	}

	muted, _ := ctx.Value(contextKey("mute")).(bool)

	return muted
}

// With returns a new context with the given key-value pairs added.
// Loggers obtained from the context carry them.
func With(ctx context.Context, values ...any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	if len(values) == 0 {
		return ctx
	}

	existing := getValues(ctx)
	vals := make([]any, 0, len(existing)+len(values))
	vals = append(vals, existing...)
	vals = append(vals, values...)

	return context.WithValue(ctx, contextKey("loggerValues"), vals)
}

func getValues(ctx context.Context) []any {
	vals, _ := ctx.Value(contextKey("loggerValues")).([]any)

	return vals
}

type nullHandler struct{}

func (n *nullHandler) Enabled(_ context.Context, _ slog.Level) bool { return false }

func (n *nullHandler) Handle(_ context.Context, _ slog.Record) error { return nil }

func (n *nullHandler) WithAttrs(_ []slog.Attr) slog.Handler { return n }

func (n *nullHandler) WithGroup(_ string) slog.Handler { return n }

// Discard is a logger that drops every record.
var Discard = slog.New(&nullHandler{}) //nolint:gochecknoglobals

// Get returns the default slog logger decorated with the values stored in the
// first non-nil context, or Discard when that context is muted.
//
//nolint:contextcheck
func Get(ctx ...context.Context) *slog.Logger {
	for _, c := range ctx {
		if c != nil {
			return For(c, nil)
		}
	}

	return For(context.Background(), nil)
}

// For decorates base with the values stored in ctx, or returns Discard when
// ctx is muted. A nil base stands for the default slog logger.
func For(ctx context.Context, base *slog.Logger) *slog.Logger {
	if isMuted(ctx) {
		return Discard
	}

	if base == nil {
		base = slog.Default()
	}

	if ctx == nil {
		return base
	}

	if vals := getValues(ctx); len(vals) > 0 {
		return base.With(vals...)
	}

	return base
}
