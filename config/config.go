// Package config describes how a structural comparison engine is assembled:
// which struct tag names properties, whether getters count, how deep nested
// records are compared and how strings are ordered. A Config can be loaded
// from YAML and overridden from the environment.
package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/astrapi69/jobj-compare/compare"
	"github.com/astrapi69/jobj-compare/errors"
	"github.com/astrapi69/jobj-compare/logger"
	"github.com/astrapi69/jobj-compare/property"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// String orderings selectable through Config.Strings.
const (
	// StringsLexical orders strings by code point, reporting the distance at
	// the first difference (compare.Strings).
	StringsLexical = "lexical"
	// StringsNatural orders digit runs numerically (compare.NaturalStrings).
	StringsNatural = "natural"
	// StringsCollate orders strings by the rules of Config.Collation (compare.Collated).
	StringsCollate = "collate"
)

// Log formats selectable through Log.Format.
const (
	LogText = "text"
	LogJSON = "json"
)

// DefaultMaxDepth bounds how deeply nested records are compared.
const DefaultMaxDepth = 32

// Config is the engine configuration.
type Config struct {
	// TagName is the struct tag key naming properties.
	TagName string `yaml:"tagName"`
	// Getters enables GetX/IsX methods as properties.
	Getters bool `yaml:"getters"`
	// Deep compares nested records property by property.
	Deep bool `yaml:"deep"`
	// MaxDepth bounds deep comparison.
	MaxDepth int `yaml:"maxDepth"`
	// Strings is one of StringsLexical, StringsNatural or StringsCollate.
	Strings string `yaml:"strings"`
	// Collation is a BCP 47 language tag, used when Strings is StringsCollate.
	Collation string `yaml:"collation"`
	// Log configures a logger of the engine's own.
	Log Log `yaml:"log"`
}

// Log describes the engine logger. An empty Format keeps the slog default
// logger.
type Log struct {
	// Format is LogText, LogJSON or empty.
	Format string `yaml:"format"`
	// Level is one of debug, info, warn or error. Property failures are
	// logged at debug.
	Level string `yaml:"level"`
}

// Default returns the configuration engines use when none is given.
func Default() Config {
	return Config{
		TagName:   property.DefaultTag,
		Getters:   true,
		Deep:      true,
		MaxDepth:  DefaultMaxDepth,
		Strings:   StringsLexical,
		Collation: language.Und.String(),
		Log:       Log{Level: "debug"},
	}
}

// Parse reads a YAML document over the defaults. Unknown keys are rejected
// and the result is validated.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && err != io.EOF { //nolint:errorlint
		return Config{}, fmt.Errorf("%w: parsing config: %w", errors.ErrInvalidArgument, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	return Parse(data)
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var problems errors.Collection

	if c.TagName == "" {
		problems.Add(fmt.Errorf("%w: tagName must not be empty", errors.ErrInvalidArgument))
	}

	if c.MaxDepth < 1 {
		problems.Add(fmt.Errorf("%w: maxDepth must be positive, got %d", errors.ErrInvalidArgument, c.MaxDepth))
	}

	if !slices.Contains([]string{StringsLexical, StringsNatural, StringsCollate}, c.Strings) {
		problems.Add(fmt.Errorf("%w: unknown strings ordering %q", errors.ErrInvalidArgument, c.Strings))
	}

	if _, err := language.Parse(c.Collation); err != nil {
		problems.Add(fmt.Errorf("%w: collation %q: %w", errors.ErrInvalidArgument, c.Collation, err))
	}

	if !slices.Contains([]string{"", LogText, LogJSON}, c.Log.Format) {
		problems.Add(fmt.Errorf("%w: unknown log format %q", errors.ErrInvalidArgument, c.Log.Format))
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		problems.Add(err)
	}

	return problems.GetError()
}

// Logger returns the logger described by Log, writing to output (stderr when
// nil), or nil when Log.Format is empty.
func (c Config) Logger(output io.Writer) (*slog.Logger, error) {
	if c.Log.Format == "" {
		return nil, nil //nolint:nilnil
	}

	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	return logger.New(logger.Options{
		JSON:     c.Log.Format == LogJSON,
		MinLevel: level,
		Output:   output,
	}), nil
}

// Accessor returns the reflective accessor described by the configuration.
func (c Config) Accessor() *property.Reflector {
	return property.NewReflector(property.WithTag(c.TagName), property.WithGetters(c.Getters))
}

// Ordering returns the natural ordering with the configured string ordering.
func (c Config) Ordering() (compare.Ordering, error) { //nolint:ireturn
	switch c.Strings {
	case StringsLexical:
		return compare.NaturalOrder, nil
	case StringsNatural:
		return compare.NaturalWith("natural-strings", compare.NaturalStrings), nil
	case StringsCollate:
		tag, err := language.Parse(c.Collation)
		if err != nil {
			return nil, fmt.Errorf("%w: collation %q: %w", errors.ErrInvalidArgument, c.Collation, err)
		}

		return compare.NaturalWith("collate:"+tag.String(), compare.Collated(tag)), nil
	default:
		return nil, fmt.Errorf("%w: unknown strings ordering %q", errors.ErrInvalidArgument, c.Strings)
	}
}
