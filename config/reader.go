package config

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/astrapi69/jobj-compare/errors"
)

// reader is a value read from one environment variable. It is either absent,
// present and parsed, or present with a parse error.
type reader[A any] struct {
	key     string
	present bool
	err     error

	value A
}

// lookupFunc has the signature of os.LookupEnv.
type lookupFunc func(key string) (string, bool)

func readString(lookup lookupFunc, key string) reader[string] {
	value, ok := lookup(key)

	return reader[string]{
		key:     key,
		present: ok,
		value:   value,
	}
}

func readBool(lookup lookupFunc, key string) reader[bool] {
	return mapReader(readString(lookup, key), strconv.ParseBool)
}

func readInt(lookup lookupFunc, key string) reader[int] {
	return mapReader(readString(lookup, key), strconv.Atoi)
}

// mapReader transforms the value of a present reader. Absent readers and
// readers that already failed pass through.
func mapReader[A, B any](r reader[A], f func(A) (B, error)) reader[B] {
	if !r.present || r.err != nil {
		return reader[B]{
			key:     r.key,
			present: r.present,
			err:     r.err,
		}
	}

	value, err := f(r.value)

	return reader[B]{
		key:     r.key,
		present: true,
		err:     err,
		value:   value,
	}
}

// doWithValue calls f with the value if the variable was set and parsed.
func (r reader[A]) doWithValue(f func(A)) {
	if r.present && r.err == nil {
		f(r.value)
	}
}

// problem returns the parse error, if any, naming the variable.
func (r reader[A]) problem() error {
	if r.err == nil {
		return nil
	}

	return fmt.Errorf("%w: %s: %w", errors.ErrInvalidArgument, r.key, r.err)
}

// parseLevel accepts the lower-case slog level names.
func parseLevel(value string) (slog.Level, error) {
	switch value {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: unknown log level %q", errors.ErrInvalidArgument, value)
	}
}
