package logger

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"
)

// AnnotateError attaches slog key-value pairs to an error. A handler built
// with NewErrorHandler logs the pairs next to the error, for example the type
// and property a comparison failed on:
//
//	return AnnotateError(err, "type", "Person", "property", "name")
//
// The annotation survives wrapping. Returns nil if err is nil.
func AnnotateError(err error, args ...any) error {
	if err == nil {
		return nil
	}

	r := slog.NewRecord(time.Now(), slog.LevelDebug, "", 0)
	r.Add(args...)

	var errAttrs []slog.Attr

	r.Attrs(func(attr slog.Attr) bool {
		errAttrs = append(errAttrs, attr)

		return true
	})

	return &slogError{
		err:   err,
		attrs: errAttrs,
	}
}

type slogError struct {
	err   error
	attrs []slog.Attr
}

func (s *slogError) Error() string {
	return s.err.Error()
}

func (s *slogError) Unwrap() error {
	return s.err
}

var _ error = (*slogError)(nil)

// Attrs returns the attributes attached to err by AnnotateError, outermost
// annotation first. It returns nil when err carries none.
func Attrs(err error) []slog.Attr {
	var se *slogError
	if !errors.As(err, &se) {
		return nil
	}

	return append(slices.Clone(se.attrs), Attrs(se.err)...)
}

// NewErrorHandler wraps inner so that annotated errors logged through it are
// replaced by the underlying error and their attributes are added to the record.
func NewErrorHandler(inner slog.Handler) slog.Handler {
	if h, ok := inner.(*slogErrorLogger); ok {
		return h
	}

	return &slogErrorLogger{inner: inner}
}

type slogErrorLogger struct {
	inner slog.Handler
}

var _ slog.Handler = (*slogErrorLogger)(nil)

func (s *slogErrorLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return s.inner.Enabled(ctx, level)
}

// Handle rewrites error attributes carrying annotations: the attribute keeps
// the underlying error and the annotations are appended to the record.
func (s *slogErrorLogger) Handle(ctx context.Context, record slog.Record) error {
	var (
		baseAttrs []slog.Attr
		errAttrs  []slog.Attr
	)

	record.Attrs(func(attr slog.Attr) bool {
		val := attr.Value.Any()

		err, isErr := val.(error)
		if !isErr {
			baseAttrs = append(baseAttrs, attr)

			return true
		}

		annotations := Attrs(err)
		if len(annotations) == 0 {
			baseAttrs = append(baseAttrs, attr)

			return true
		}

		baseAttrs = append(baseAttrs, slog.Attr{Key: attr.Key, Value: slog.AnyValue(unannotated(err))})
		errAttrs = append(errAttrs, annotations...)

		return true
	})

	if len(errAttrs) > 0 {
		r := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
		r.AddAttrs(baseAttrs...)
		r.AddAttrs(errAttrs...)

		return s.inner.Handle(ctx, r)
	}

	return s.inner.Handle(ctx, record)
}

func (s *slogErrorLogger) WithAttrs(attrs []slog.Attr) slog.Handler {
	handler := s.inner.WithAttrs(attrs)

	return &slogErrorLogger{
		inner: handler,
	}
}

func (s *slogErrorLogger) WithGroup(name string) slog.Handler {
	handler := s.inner.WithGroup(name)

	return &slogErrorLogger{
		inner: handler,
	}
}

// unannotated strips a leading annotation layer so the logged error reads the
// same as the one returned to the caller.
func unannotated(err error) error {
	for {
		se, ok := err.(*slogError) //nolint:errorlint
		if !ok {
			return err
		}

		err = se.err
	}
}
