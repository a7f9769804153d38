package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/symdef/symbol"
)

func TestSymbol_FullMetadataName(t *testing.T) {
	assembly := symbol.NewAssembly("Lib")
	outer := assembly.Namespace("A.B").AddMember(symbol.NewType("Outer", symbol.TypeKindClass, symbol.AccessibilityPublic))
	inner := outer.AddMember(symbol.NewType("Inner", symbol.TypeKindClass, symbol.AccessibilityPrivate))
	inner.TypeParameters = []*symbol.TypeParameter{{Name: "T"}}
	global := assembly.Global.AddMember(symbol.NewType("Root", symbol.TypeKindStruct, symbol.AccessibilityInternal))

	tests := []struct {
		description string
		input       *symbol.Symbol
		expected    string
		qualified   string
	}{
		{description: "namespace", input: assembly.Namespace("A.B"), expected: "A.B", qualified: "A.B"},
		{description: "type", input: outer, expected: "A.B.Outer", qualified: "A.B.Outer"},
		{description: "nested generic type", input: inner, expected: "A.B.Outer+Inner`1", qualified: "A.B.Outer.Inner"},
		{description: "global namespace type", input: global, expected: "Root", qualified: "Root"},
		{description: "global namespace", input: assembly.Global, expected: "", qualified: ""},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.input.FullMetadataName())
			assert.Equal(t, tc.qualified, tc.input.QualifiedName())
		})
	}
	assert.Equal(t, assembly, inner.Assembly)
	assert.Equal(t, []*symbol.Symbol{outer, inner}, assembly.Types(nil)[:2])
	assert.Equal(t, inner, assembly.FindType("A.B.Outer+Inner`1"))
}

func TestSymbol_Visibility(t *testing.T) {
	assembly := symbol.NewAssembly("Lib")
	ns := assembly.Namespace("N")
	public := ns.AddMember(symbol.NewType("Public", symbol.TypeKindClass, symbol.AccessibilityPublic))
	internal := ns.AddMember(symbol.NewType("Internal", symbol.TypeKindClass, symbol.AccessibilityInternal))

	tests := []struct {
		description string
		container   *symbol.Symbol
		access      symbol.Accessibility
		expected    symbol.Visibility
	}{
		{description: "public in public", container: public, access: symbol.AccessibilityPublic, expected: symbol.VisibilityPublic},
		{description: "protected in public", container: public, access: symbol.AccessibilityProtected, expected: symbol.VisibilityPublic},
		{description: "private protected in public", container: public, access: symbol.AccessibilityProtectedAndInternal, expected: symbol.VisibilityInternal},
		{description: "public in internal", container: internal, access: symbol.AccessibilityPublic, expected: symbol.VisibilityInternal},
		{description: "private in internal", container: internal, access: symbol.AccessibilityPrivate, expected: symbol.VisibilityPrivate},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			member := &symbol.Symbol{Name: "F", Kind: symbol.KindField, Accessibility: tc.access, Field: &symbol.FieldInfo{}}
			tc.container.AddMember(member)
			assert.Equal(t, tc.expected, member.Visibility())
		})
	}
}

func TestSymbol_LookupMembers(t *testing.T) {
	typ := symbol.NewType("C", symbol.TypeKindClass, symbol.AccessibilityPublic)
	m1 := typ.AddMember(&symbol.Symbol{Name: "M", Kind: symbol.KindMethod, Method: &symbol.MethodInfo{}})
	typ.AddMember(&symbol.Symbol{Name: "P", Kind: symbol.KindProperty, Property: &symbol.PropertyInfo{}})
	m2 := typ.AddMember(&symbol.Symbol{Name: "M", Kind: symbol.KindMethod, Method: &symbol.MethodInfo{}})
	assert.Equal(t, []*symbol.Symbol{m1, m2}, typ.LookupMembers("M"))
	require.True(t, typ.RemoveMember(m1))
	assert.Equal(t, []*symbol.Symbol{m2}, typ.LookupMembers("M"))
	assert.Empty(t, typ.LookupMembers("X"))
}

func TestSymbol_DeclarationKind(t *testing.T) {
	iface := symbol.Named(symbol.NewType("I", symbol.TypeKindInterface, symbol.AccessibilityPublic))
	tests := []struct {
		description string
		input       *symbol.Symbol
		expected    symbol.DeclarationKind
	}{
		{description: "const", input: &symbol.Symbol{Kind: symbol.KindField, Modifiers: symbol.ModifierConst}, expected: symbol.DeclarationConst},
		{description: "field", input: &symbol.Symbol{Kind: symbol.KindField}, expected: symbol.DeclarationField},
		{description: "ctor", input: &symbol.Symbol{Kind: symbol.KindMethod, Method: &symbol.MethodInfo{MethodKind: symbol.MethodConstructor}}, expected: symbol.DeclarationConstructor},
		{description: "indexer", input: &symbol.Symbol{Kind: symbol.KindProperty, Property: &symbol.PropertyInfo{Parameters: []*symbol.Parameter{{Name: "i"}}}}, expected: symbol.DeclarationIndexer},
		{description: "explicit property", input: &symbol.Symbol{Kind: symbol.KindProperty, Property: &symbol.PropertyInfo{ExplicitInterface: iface}}, expected: symbol.DeclarationExplicitProperty},
		{description: "explicit method", input: &symbol.Symbol{Kind: symbol.KindMethod, Method: &symbol.MethodInfo{MethodKind: symbol.MethodExplicitInterfaceImplementation, ExplicitInterface: iface}}, expected: symbol.DeclarationExplicitMethod},
		{description: "operator", input: &symbol.Symbol{Kind: symbol.KindMethod, Method: &symbol.MethodInfo{MethodKind: symbol.MethodUserDefinedOperator}}, expected: symbol.DeclarationOperator},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.input.DeclarationKind())
		})
	}
}

func TestAssembly_Identity(t *testing.T) {
	assembly := symbol.NewAssembly("Lib")
	assert.Equal(t, "Lib, Version=0.0.0.0, Culture=neutral, PublicKeyToken=null", assembly.Identity())
	corlib := symbol.NewCorlib()
	assert.Equal(t, "mscorlib, Version=4.0.0.0, Culture=neutral, PublicKeyToken=b77a5c561934e089", corlib.Assembly.Identity())
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		description string
		x, y        string
		expected    int
	}{
		{description: "equal", x: "1.0.0.0", y: "1.0.0.0", expected: 0},
		{description: "numeric minor", x: "1.2.0.0", y: "1.10.0.0", expected: -1},
		{description: "major", x: "2.0.0.0", y: "1.9.9.9", expected: 1},
		{description: "empty is lowest", x: "", y: "0.0.1.0", expected: -1},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, symbol.CompareVersions(tc.x, tc.y))
		})
	}
}

func TestCorlib(t *testing.T) {
	corlib := symbol.NewCorlib()
	tests := []struct {
		description string
		keyword     string
		expected    symbol.SpecialType
	}{
		{description: "int", keyword: "int", expected: symbol.SpecialInt32},
		{description: "string", keyword: "string", expected: symbol.SpecialString},
		{description: "object", keyword: "object", expected: symbol.SpecialObject},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			ref := corlib.Keyword(tc.keyword)
			require.NotNil(t, ref)
			assert.Equal(t, tc.expected, ref.SpecialType())
			assert.Equal(t, tc.keyword, ref.SpecialType().Keyword())
		})
	}
	enumerable := corlib.Type("System.Collections.Generic.IEnumerable`1")
	require.NotNil(t, enumerable)
	assert.Equal(t, symbol.SpecialIEnumerableT, symbol.SpecialTypeOf(enumerable))
	assert.True(t, corlib.Type("System.Enum").Type.BaseType.Is(corlib.Type("System.ValueType")))
	assert.Nil(t, corlib.Object().Type.BaseType)
}

func TestHash(t *testing.T) {
	first, err := symbol.Hash([]byte("public class Foo"))
	require.NoError(t, err)
	second, err := symbol.Hash([]byte("public class Foo"))
	require.NoError(t, err)
	other, err := symbol.Hash([]byte("public class Bar"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestParseAccessibility(t *testing.T) {
	tests := []struct {
		description string
		input       string
		expected    symbol.Accessibility
		expectErr   bool
	}{
		{description: "public", input: "public", expected: symbol.AccessibilityPublic},
		{description: "internal protected", input: "internal  protected", expected: symbol.AccessibilityProtectedOrInternal},
		{description: "private protected", input: "private protected", expected: symbol.AccessibilityProtectedAndInternal},
		{description: "unknown", input: "friend", expectErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := symbol.ParseAccessibility(tc.input)
			if tc.expectErr {
				assert.ErrorIs(t, err, symbol.ErrUnknownValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestDocumentation_Lines(t *testing.T) {
	tests := []struct {
		description string
		input       *symbol.Documentation
		expected    []string
	}{
		{description: "nil"},
		{
			description: "elements",
			input: &symbol.Documentation{Elements: []*symbol.DocElement{
				{Name: "summary", Text: "Compares a < b."},
				{Name: "param", Attributes: []symbol.DocAttribute{{Name: "name", Value: "a"}}, Text: "Left."},
				{Name: "inheritdoc"},
			}},
			expected: []string{
				"<summary>Compares a &lt; b.</summary>",
				`<param name="a">Left.</param>`,
				"<inheritdoc />",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.input.Lines())
		})
	}
}
