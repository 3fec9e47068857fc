package property_test

import (
	"testing"

	"github.com/astrapi69/jobj-compare/property"
	"github.com/stretchr/testify/assert"
)

type Employee struct {
	Name string
}

func TestNames(t *testing.T) {
	t.Parallel()

	names := property.NewNames("shortcut", "name", "description", "name")

	assert.Len(t, names, 3)
	assert.True(t, names.Contains("name"))
	assert.False(t, names.Contains("class"))
	assert.Equal(t, []string{"description", "name", "shortcut"}, names.Sorted())

	names.Add("active")
	assert.Equal(t, "active", names.Sorted()[0])
	assert.Empty(t, property.NewNames().Sorted())
}

func TestTypeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "struct", input: Employee{}, expected: "property_test.Employee"},
		{name: "pointer", input: &Employee{}, expected: "property_test.Employee"},
		{name: "builtin", input: 42, expected: "int"},
		{name: "map", input: map[string]any{}, expected: "map[string]interface {}"},
		{name: "nil", input: nil, expected: "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, property.TypeName(tt.input))
		})
	}
}
