//nolint:err113 // getters return ad hoc errors
package structural_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/astrapi69/jobj-compare/compare"
	"github.com/astrapi69/jobj-compare/config"
	commonerrors "github.com/astrapi69/jobj-compare/errors"
	"github.com/astrapi69/jobj-compare/logger"
	"github.com/astrapi69/jobj-compare/property"
	"github.com/astrapi69/jobj-compare/structural"
	"github.com/google/uuid"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquals(t *testing.T) {
	t.Parallel()

	src := person(Male, "obelix")
	tgt := person(Male, "obelix")

	equal, err := structural.Equals(src, tgt)
	require.NoError(t, err)
	assert.True(t, equal)

	tgt.Gender = Female

	equal, err = structural.Equals(src, tgt)
	require.NoError(t, err)
	assert.False(t, equal)

	equal, err = structural.Equals(&src, &src)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestEquals_InvalidUTF8(t *testing.T) {
	t.Parallel()

	equal, err := structural.Equals(Permission{Name: "\xff"}, Permission{Name: "\xfe"})
	require.NoError(t, err)
	assert.False(t, equal)

	result, err := structural.CompareOnProperty(Permission{Name: "\xff"}, Permission{Name: "\xfe"}, "name")
	require.NoError(t, err)
	assert.Equal(t, 1, result)

	equal, err = structural.Equals(Permission{Name: "\xff"}, Permission{Name: "\xff"})
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestEquals_InvalidArguments(t *testing.T) {
	t.Parallel()

	obelix := person(Male, "obelix")

	tests := []struct {
		name     string
		src, tgt any
	}{
		{name: "absent source", src: nil, tgt: obelix},
		{name: "absent target", src: obelix, tgt: nil},
		{name: "nil pointer", src: (*Person)(nil), tgt: &obelix},
		{name: "different types", src: obelix, tgt: "foo"},
		{name: "value and pointer", src: obelix, tgt: &obelix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			equal, err := structural.Equals(tt.src, tt.tgt)
			require.ErrorIs(t, err, commonerrors.ErrInvalidArgument)
			assert.Contains(t, err.Error(), "must be non-null and the same type")
			assert.False(t, equal)

			results, err := structural.GetCompareToResult(tt.src, tt.tgt)
			require.ErrorIs(t, err, commonerrors.ErrInvalidArgument)
			assert.Nil(t, results)
		})
	}
}

func TestEquals_OrderedValues(t *testing.T) {
	t.Parallel()

	now := time.Now()

	equal, err := structural.Equals(now, now.UTC())
	require.NoError(t, err)
	assert.True(t, equal, "time.Time compares by instant")

	equal, err = structural.Equals(now, now.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, equal)

	equal, err = structural.Equals("read", "write")
	require.NoError(t, err)
	assert.False(t, equal)

	_, err = structural.Equals(make(chan int), make(chan int))
	require.ErrorIs(t, err, commonerrors.ErrNotOrderable)
}

func TestCompareTo(t *testing.T) {
	t.Parallel()

	src := readPermission()
	tgt := readPermission()

	result, err := structural.CompareTo(src, tgt)
	require.NoError(t, err)
	assert.Equal(t, 0, result)

	src.Name = "write"

	result, err = structural.CompareTo(src, tgt)
	require.NoError(t, err)
	assert.Equal(t, 5, result)
}

func TestCompareTo_Persons(t *testing.T) {
	t.Parallel()

	result, err := structural.CompareTo(person(Male, "obelix"), person(Male, "obelix"))
	require.NoError(t, err)
	assert.Equal(t, 0, result)

	result, err = structural.CompareTo(person(Male, "asterix"), person(Male, "obelix"))
	require.NoError(t, err)
	assert.Equal(t, -14, result)
}

func TestCompareTo_NullRule(t *testing.T) {
	t.Parallel()

	obelix := &Person{Gender: Male, Name: "obelix"}

	tests := []struct {
		name     string
		src, tgt any
		expected int
	}{
		{name: "absent target", src: obelix, tgt: (*Person)(nil), expected: 1},
		{name: "absent source", src: (*Person)(nil), tgt: obelix, expected: -1},
		{name: "both absent", src: nil, tgt: nil, expected: 0},
		{name: "absent string", src: nil, tgt: "foo", expected: -1},
		{name: "equal strings", src: "foo", tgt: "foo", expected: 0},
		{name: "string distance", src: "bar", tgt: "foo", expected: -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := structural.CompareTo(tt.src, tt.tgt)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCompareTo_DifferentTypes(t *testing.T) {
	t.Parallel()

	_, err := structural.CompareTo(person(Male, "obelix"), "")
	require.ErrorIs(t, err, commonerrors.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "must be the same type")
}

func TestCompareTo_Maps(t *testing.T) {
	t.Parallel()

	result, err := structural.CompareTo(
		map[string]any{"level": 1, "name": "read"},
		map[string]any{"level": 2, "name": "read"},
	)
	require.NoError(t, err)
	assert.Equal(t, -1, result)

	_, err = structural.CompareTo(map[string]any{"level": 1}, map[string]any{"name": "read"})
	require.ErrorIs(t, err, commonerrors.ErrNoSuchProperty)
}

func TestCompareOnProperties(t *testing.T) {
	t.Parallel()

	src := readPermission()
	tgt := readPermission()
	tgt.Shortcut = ptr("R")

	tests := []struct {
		name     string
		rename   string
		names    []string
		expected int
	}{
		{name: "name and description", names: []string{"name", "description"}, expected: 0},
		{name: "all", names: []string{"name", "description", "shortcut"}, expected: -1},
		{name: "renamed source", rename: "write", names: []string{"name", "description"}, expected: 5},
		{name: "description only", rename: "write", names: []string{"description"}, expected: 0},
		{name: "repeated names", rename: "write", names: []string{"name", "name"}, expected: 5},
		{name: "no names", names: nil, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			source := *src
			if tt.rename != "" {
				source.Name = tt.rename
			}

			result, err := structural.CompareOnProperties(&source, tgt, property.NewNames(tt.names...))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)

			result, err = structural.Compare(&source, tgt, tt.names...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCompareOnProperties_Persons(t *testing.T) {
	t.Parallel()

	names := property.NewNames("gender", "name")

	result, err := structural.CompareOnProperties(person(Male, "obelix"), person(Male, "obelix"), names)
	require.NoError(t, err)
	assert.Equal(t, 0, result)

	result, err = structural.CompareOnProperties(person(Male, "asterix"), person(Male, "obelix"), names)
	require.NoError(t, err)
	assert.Equal(t, -14, result)
}

func TestCompareOnProperties_Errors(t *testing.T) {
	t.Parallel()

	_, err := structural.Compare(readPermission(), readPermission(), "name", "salary")
	require.ErrorIs(t, err, commonerrors.ErrNoSuchProperty)

	_, err = structural.Compare(nil, readPermission(), "name")
	require.ErrorIs(t, err, commonerrors.ErrInvalidArgument)

	_, err = structural.Compare(readPermission(), person(Male, "obelix"), "name")
	require.ErrorIs(t, err, commonerrors.ErrInvalidArgument)
}

func TestCompareOnProperty(t *testing.T) {
	t.Parallel()

	asterix := person(Male, "asterix")
	obelix := person(Male, "obelix")

	result, err := structural.CompareOnProperty(asterix, obelix, "name")
	require.NoError(t, err)
	assert.Equal(t, compare.Natural(asterix.Name, obelix.Name), result)
	assert.Equal(t, -14, result)

	obelix.Nickname = ptr("the fat one")

	result, err = structural.CompareOnProperty(asterix, obelix, "nickname")
	require.NoError(t, err)
	assert.Equal(t, -1, result)

	result, err = structural.CompareOnProperty(obelix, asterix, "nickname")
	require.NoError(t, err)
	assert.Equal(t, 1, result)

	result, err = structural.CompareOnProperty(asterix, asterix, "about")
	require.NoError(t, err)
	assert.Equal(t, 0, result)

	_, err = structural.CompareOnProperty(asterix, obelix, property.TypeProperty)
	require.NoError(t, err)
}

func TestGetCompareToResult(t *testing.T) {
	t.Parallel()

	results, err := structural.GetCompareToResult(person(Male, "asterix"), person(Male, "obelix"))
	require.NoError(t, err)

	assert.Len(t, results, 5)
	assert.Equal(t, map[string]int{
		"about":    0,
		"gender":   0,
		"married":  0,
		"name":     -14,
		"nickname": 0,
	}, results)
}

func TestDeep(t *testing.T) {
	t.Parallel()

	berlin := Employee{Name: "al", Address: &Address{City: "Berlin", Street: "Main"}}
	bonn := Employee{Name: "al", Address: &Address{City: "Bonn", Street: "Main"}}

	result, err := structural.CompareTo(berlin, bonn)
	require.NoError(t, err)
	assert.Equal(t, -10, result)

	equal, err := structural.Equals(berlin, bonn)
	require.NoError(t, err)
	assert.False(t, equal)

	homeless := Employee{Name: "al"}

	result, err = structural.CompareTo(homeless, bonn)
	require.NoError(t, err)
	assert.Equal(t, -1, result)
}

func TestDeep_Disabled(t *testing.T) {
	t.Parallel()

	engine := structural.New(structural.WithDeep(false), structural.WithLogger(slogt.New(t)))

	berlin := Employee{Name: "al", Address: &Address{City: "Berlin"}}
	bonn := Employee{Name: "al", Address: &Address{City: "Bonn"}}

	_, err := engine.CompareTo(berlin, bonn)
	require.ErrorIs(t, err, commonerrors.ErrNotOrderable)

	attrs := logger.Attrs(err)
	require.Len(t, attrs, 2)
	assert.Equal(t, "address", attrs[1].Value.String())
}

func TestDeep_Cycle(t *testing.T) {
	t.Parallel()

	first := &Node{Name: "loop"}
	first.Next = first

	second := &Node{Name: "loop"}
	second.Next = second

	engine := structural.New(structural.WithMaxDepth(3), structural.WithLogger(slogt.New(t)))

	_, err := engine.CompareTo(first, second)
	require.ErrorIs(t, err, commonerrors.ErrDepthExceeded)

	_, err = engine.Equals(first, second)
	require.ErrorIs(t, err, commonerrors.ErrDepthExceeded)

	chain := &Node{Name: "a", Next: &Node{Name: "b", Next: &Node{Name: "c"}}}
	other := &Node{Name: "a", Next: &Node{Name: "b", Next: &Node{Name: "d"}}}

	result, err := engine.CompareTo(chain, other)
	require.NoError(t, err)
	assert.Equal(t, -1, result)
}

type Account struct {
	Owner string
	ID    uuid.UUID
}

func (a Account) GetBalance() (int, error) {
	if a.Owner == "" {
		return 0, errors.New("account has no owner")
	}

	return len(a.Owner) * 100, nil
}

func TestPropertyErrors_AreLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log := slog.New(logger.NewErrorHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	engine := structural.New(structural.WithLogger(log))

	_, err := engine.CompareOnProperty(Account{}, Account{Owner: "al"}, "balance")
	require.ErrorIs(t, err, commonerrors.ErrInvocation)
	assert.Contains(t, err.Error(), "account has no owner")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "property comparison failed", entry["msg"])
	assert.Equal(t, "structural_test.Account", entry["type"])
	assert.Equal(t, "balance", entry["property"])
}

func TestContextLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	engine := structural.New(structural.WithLogger(logger.New(logger.Options{
		JSON:     true,
		MinLevel: slog.LevelDebug,
		Output:   &buf,
	})))

	ctx := logger.With(t.Context(), "request", "audit-42")

	_, err := engine.CompareContext(ctx, readPermission(), readPermission(), "salary")
	require.ErrorIs(t, err, commonerrors.ErrNoSuchProperty)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "audit-42", entry["request"])
	assert.Equal(t, "salary", entry["property"])

	buf.Reset()

	muted := logger.WithMuted(ctx, true)

	_, err = engine.CompareOnPropertyContext(muted, readPermission(), readPermission(), "salary")
	require.ErrorIs(t, err, commonerrors.ErrNoSuchProperty)

	_, err = engine.GetCompareToResultContext(muted, Account{}, Account{})
	require.ErrorIs(t, err, commonerrors.ErrInvocation)
	assert.Empty(t, buf.String())

	equal, err := engine.EqualsContext(muted, readPermission(), readPermission())
	require.NoError(t, err)
	assert.True(t, equal)

	result, err := engine.CompareToContext(muted, person(Male, "asterix"), person(Male, "obelix"))
	require.NoError(t, err)
	assert.Equal(t, -14, result)

	result, err = engine.CompareOnPropertiesContext(muted, readPermission(), readPermission(), property.NewNames("name"))
	require.NoError(t, err)
	assert.Equal(t, 0, result)
}

func TestByteArrayProperties(t *testing.T) {
	t.Parallel()

	low := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	high := uuid.MustParse("ffffffff-0000-0000-0000-000000000000")

	result, err := structural.CompareOnProperty(Account{Owner: "al", ID: low}, Account{Owner: "al", ID: high}, "ID")
	require.NoError(t, err)
	assert.Equal(t, -1, result)

	equal, err := structural.Equals(Account{Owner: "al", ID: low}, Account{Owner: "al", ID: low})
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestWithAccessor(t *testing.T) {
	t.Parallel()

	table := property.NewTable[Permission]().With("name", func(p Permission) any { return p.Name })
	engine := structural.New(structural.WithAccessor(table))

	write := Permission{Name: "write", Shortcut: ptr("W")}
	read := Permission{Name: "read"}

	results, err := engine.GetCompareToResult(write, read)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"name": 5}, results)
}

func TestWithOrdering(t *testing.T) {
	t.Parallel()

	reversed := compare.OrderingOf("reversed", func(a, b any) int { return compare.Natural(b, a) })
	engine := structural.New(structural.WithOrdering(reversed))

	result, err := engine.CompareTo(person(Male, "asterix"), person(Male, "obelix"))
	require.NoError(t, err)
	assert.Equal(t, 14, result)

	// The null rule still decides for absent property values.
	result, err = engine.CompareOnProperty(Permission{}, Permission{Shortcut: ptr("R")}, "shortcut")
	require.NoError(t, err)
	assert.Equal(t, -1, result)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Strings = config.StringsNatural

	engine, err := structural.NewFromConfig(cfg)
	require.NoError(t, err)

	result, err := engine.CompareOnProperty(Permission{Name: "file2"}, Permission{Name: "file10"}, "name")
	require.NoError(t, err)
	assert.Negative(t, result)

	result, err = structural.CompareOnProperty(Permission{Name: "file2"}, Permission{Name: "file10"}, "name")
	require.NoError(t, err)
	assert.Positive(t, result)

	cfg.Deep = true
	shallow, err := structural.NewFromConfig(cfg, structural.WithDeep(false))
	require.NoError(t, err)

	_, err = shallow.CompareTo(Employee{Address: &Address{}}, Employee{Address: &Address{}})
	require.ErrorIs(t, err, commonerrors.ErrNotOrderable)

	cfg.Log = config.Log{Format: config.LogText, Level: "error"}
	quiet, err := structural.NewFromConfig(cfg)
	require.NoError(t, err)

	_, err = quiet.CompareOnProperty(Permission{}, Permission{}, "salary")
	require.ErrorIs(t, err, commonerrors.ErrNoSuchProperty)

	cfg.Log.Format = "xml"
	_, err = structural.NewFromConfig(cfg)
	require.ErrorIs(t, err, commonerrors.ErrInvalidArgument)

	cfg.Log.Format = ""
	cfg.MaxDepth = 0
	_, err = structural.NewFromConfig(cfg)
	require.ErrorIs(t, err, commonerrors.ErrInvalidArgument)
}

func TestEngine_Concurrent(t *testing.T) {
	t.Parallel()

	engine := structural.New(structural.WithLogger(logger.Discard))

	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			result, err := engine.CompareTo(person(Male, "asterix"), person(Male, "obelix"))
			assert.NoError(t, err)
			assert.Equal(t, -14, result)
		}()
	}

	wg.Wait()
}
