package metadata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/symdef/metadata"
	"github.com/viant/symdef/symbol"
)

func TestParse(t *testing.T) {
	tests := []struct {
		description string
		input       string
		expected    metadata.Name
		expectErr   bool
	}{
		{
			description: "namespace qualified type",
			input:       "System.Collections.Generic.List`1",
			expected:    metadata.Name{Namespaces: []string{"System", "Collections", "Generic"}, Name: "List`1"},
		},
		{
			description: "nested type",
			input:       "A.B.Outer+Inner`2",
			expected:    metadata.Name{Namespaces: []string{"A", "B"}, ContainingTypes: []string{"Outer"}, Name: "Inner`2"},
		},
		{
			description: "simple name",
			input:       "Foo",
			expected:    metadata.Name{Namespaces: []string{}, Name: "Foo"},
		},
		{description: "empty", input: "", expectErr: true},
		{description: "empty segment", input: "A..B", expectErr: true},
		{description: "trailing dot", input: "A.B.", expectErr: true},
		{description: "leading plus", input: "+A", expectErr: true},
		{description: "whitespace", input: "A B", expectErr: true},
		{description: "missing arity", input: "List`", expectErr: true},
		{description: "digit first", input: "A.1B", expectErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := metadata.Parse(tc.input)
			if tc.expectErr {
				assert.ErrorIs(t, err, metadata.ErrMalformedName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
			assert.Equal(t, tc.input, actual.String())
		})
	}
}

func TestParseSet(t *testing.T) {
	_, err := metadata.ParseSet([]string{"A..B", "Good", "C D"})
	require.Error(t, err)
	assert.ErrorIs(t, err, metadata.ErrMalformedName)
	assert.Contains(t, err.Error(), "2 errors occurred")
}

func TestSet_Covers(t *testing.T) {
	assembly := symbol.NewAssembly("Lib")
	system := assembly.Namespace("System")
	collections := assembly.Namespace("System.Collections")
	list := collections.AddMember(symbol.NewType("List", symbol.TypeKindClass, symbol.AccessibilityPublic))
	list.TypeParameters = []*symbol.TypeParameter{{Name: "T"}}
	enumerator := list.AddMember(symbol.NewType("Enumerator", symbol.TypeKindStruct, symbol.AccessibilityPublic))
	other := assembly.Namespace("SystemX").AddMember(symbol.NewType("Y", symbol.TypeKindClass, symbol.AccessibilityPublic))

	tests := []struct {
		description string
		names       []string
		input       *symbol.Symbol
		contains    bool
		covers      bool
	}{
		{description: "exact namespace", names: []string{"System"}, input: system, contains: true, covers: true},
		{description: "nested namespace by prefix", names: []string{"System"}, input: collections, covers: true},
		{description: "type by namespace", names: []string{"System.Collections"}, input: list, covers: true},
		{description: "nested type by containing type", names: []string{"System.Collections.List`1"}, input: enumerator, covers: true},
		{description: "nested type exact", names: []string{"System.Collections.List`1+Enumerator"}, input: enumerator, contains: true, covers: true},
		{description: "arity mismatch", names: []string{"System.Collections.List"}, input: list},
		{description: "sibling namespace text prefix", names: []string{"System"}, input: other},
		{description: "global namespace", names: []string{"System"}, input: assembly.Global},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			set, err := metadata.ParseSet(tc.names)
			require.NoError(t, err)
			assert.Equal(t, tc.contains, set.Contains(tc.input))
			assert.Equal(t, tc.covers, set.Covers(tc.input))
		})
	}
}
