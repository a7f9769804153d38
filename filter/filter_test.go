package filter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/symdef/filter"
	"github.com/viant/symdef/metadata"
	"github.com/viant/symdef/symbol"
)

// knownVisibleAttributes lists framework attributes that documentation output is expected to keep
var knownVisibleAttributes = []string{
	"Microsoft.CodeAnalysis.CommitHashAttribute",
	"System.AttributeUsageAttribute",
	"System.CLSCompliantAttribute",
	"System.ComVisibleAttribute",
	"System.FlagsAttribute",
	"System.ObsoleteAttribute",
	"System.ComponentModel.DefaultValueAttribute",
	"System.ComponentModel.EditorBrowsableAttribute",
	"System.Composition.MetadataAttributeAttribute",
	"System.Reflection.AssemblyCompanyAttribute",
	"System.Reflection.AssemblyCopyrightAttribute",
	"System.Reflection.AssemblyDescriptionAttribute",
	"System.Reflection.AssemblyFileVersionAttribute",
	"System.Reflection.AssemblyInformationalVersionAttribute",
	"System.Reflection.AssemblyMetadataAttribute",
	"System.Reflection.AssemblyProductAttribute",
	"System.Reflection.AssemblyTitleAttribute",
	"System.Reflection.AssemblyTrademarkAttribute",
	"System.Runtime.CompilerServices.InternalImplementationOnlyAttribute",
	"System.Runtime.InteropServices.GuidAttribute",
	"System.Runtime.Versioning.TargetFrameworkAttribute",
	"System.Xml.Serialization.XmlArrayItemAttribute",
	"System.Xml.Serialization.XmlAttributeAttribute",
	"System.Xml.Serialization.XmlElementAttribute",
	"System.Xml.Serialization.XmlRootAttribute",
}

func attributeClass(assembly *symbol.Assembly, fullName string) *symbol.Symbol {
	idx := strings.LastIndexByte(fullName, '.')
	return assembly.Namespace(fullName[:idx]).AddMember(symbol.NewType(fullName[idx+1:], symbol.TypeKindClass, symbol.AccessibilityPublic))
}

func TestDocumentation_Attributes(t *testing.T) {
	assembly := symbol.NewAssembly("Framework")
	options := filter.Documentation()
	for _, name := range knownVisibleAttributes {
		t.Run("visible "+name, func(t *testing.T) {
			attribute := &symbol.Attribute{Class: attributeClass(assembly, name)}
			assert.Equal(t, filter.Success, options.EvaluateAttribute(attribute))
		})
	}
	for _, name := range filter.DocumentationIgnoredAttributes {
		t.Run("ignored "+name, func(t *testing.T) {
			attribute := &symbol.Attribute{Class: attributeClass(assembly, name)}
			assert.Equal(t, filter.Ignored, options.EvaluateAttribute(attribute))
		})
	}
}

type countingRule struct {
	matches bool
	outcome filter.Outcome
	calls   int
}

func (r *countingRule) Outcome() filter.Outcome { return r.outcome }

func (r *countingRule) Matches(*symbol.Symbol) bool {
	r.calls++
	return r.matches
}

func TestEvaluate_ShortCircuit(t *testing.T) {
	tests := []struct {
		description string
		matches     []bool
		expected    filter.Outcome
		calls       []int
	}{
		{description: "all match", matches: []bool{true, true, true}, expected: filter.Success, calls: []int{1, 1, 1}},
		{description: "first fails", matches: []bool{false, false, true}, expected: filter.Ignored, calls: []int{1, 0, 0}},
		{description: "middle fails", matches: []bool{true, false, false}, expected: filter.HasAttribute, calls: []int{1, 1, 0}},
		{description: "last fails", matches: []bool{true, true, false}, expected: filter.HasNotAttribute, calls: []int{1, 1, 1}},
		{description: "no rules", expected: filter.Success},
	}
	outcomes := []filter.Outcome{filter.Ignored, filter.HasAttribute, filter.HasNotAttribute}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			var rules []filter.SymbolRule
			var counting []*countingRule
			for i, match := range tc.matches {
				rule := &countingRule{matches: match, outcome: outcomes[i]}
				counting = append(counting, rule)
				rules = append(rules, rule)
			}
			actual := filter.Evaluate(symbol.NewType("C", symbol.TypeKindClass, symbol.AccessibilityPublic), rules)
			assert.Equal(t, tc.expected, actual)
			for i, rule := range counting {
				assert.Equal(t, tc.calls[i], rule.calls, "rule %d", i)
			}
		})
	}
}

func TestPredicate_Invert(t *testing.T) {
	isStatic := filter.NewPredicate(func(s *symbol.Symbol) bool { return s.IsStatic() }, filter.Other)
	typ := symbol.NewType("C", symbol.TypeKindClass, symbol.AccessibilityPublic)
	typ.Modifiers = symbol.ModifierStatic
	assert.True(t, isStatic.Matches(typ))
	assert.False(t, isStatic.Invert().Matches(typ))
	assert.Equal(t, filter.Other, isStatic.Invert().Outcome())
}

func TestOptions_Evaluate(t *testing.T) {
	assembly := symbol.NewAssembly("Lib")
	ns := assembly.Namespace("N")
	public := ns.AddMember(symbol.NewType("Public", symbol.TypeKindClass, symbol.AccessibilityPublic))
	internal := ns.AddMember(symbol.NewType("Internal", symbol.TypeKindClass, symbol.AccessibilityInternal))
	value := ns.AddMember(symbol.NewType("Value", symbol.TypeKindStruct, symbol.AccessibilityPublic))
	colors := ns.AddMember(symbol.NewType("Colors", symbol.TypeKindEnum, symbol.AccessibilityPublic))
	implicitType := ns.AddMember(symbol.NewType("<>c", symbol.TypeKindClass, symbol.AccessibilityPrivate))
	implicitType.Implicit = true
	obsolete := attributeClass(assembly, "System.ObsoleteAttribute")
	marked := ns.AddMember(symbol.NewType("Marked", symbol.TypeKindClass, symbol.AccessibilityPublic))
	marked.Attributes = []*symbol.Attribute{{Class: obsolete}}

	method := func(container *symbol.Symbol, name string, kind symbol.MethodKind, access symbol.Accessibility, implicit bool, params ...*symbol.Parameter) *symbol.Symbol {
		return container.AddMember(&symbol.Symbol{Name: name, Kind: symbol.KindMethod, Accessibility: access, Implicit: implicit,
			Method: &symbol.MethodInfo{MethodKind: kind, Parameters: params}})
	}
	field := func(container *symbol.Symbol, name string, modifiers symbol.Modifiers, implicit bool) *symbol.Symbol {
		return container.AddMember(&symbol.Symbol{Name: name, Kind: symbol.KindField, Accessibility: symbol.AccessibilityPublic,
			Modifiers: modifiers, Implicit: implicit, Field: &symbol.FieldInfo{}})
	}
	param := &symbol.Parameter{Name: "x"}

	tests := []struct {
		description string
		options     *filter.Options
		input       *symbol.Symbol
		expected    filter.Outcome
	}{
		{description: "public type", options: filter.New(), input: public, expected: filter.Success},
		{description: "implicit type before group", options: filter.New(filter.WithGroups(filter.GroupMember)), input: implicitType, expected: filter.ImplicitlyDeclared},
		{description: "type group before visibility", options: filter.New(filter.WithGroups(filter.GroupStruct), filter.WithVisibility(filter.VisibilityPublic)), input: internal, expected: filter.UnsupportedGroup},
		{description: "type not visible", options: filter.New(filter.WithVisibility(filter.VisibilityPublic)), input: internal, expected: filter.NotVisible},
		{description: "visibility before rules", options: filter.New(filter.WithVisibility(filter.VisibilityPublic), filter.WithRules(filter.NewPredicate(func(*symbol.Symbol) bool { return false }, filter.Other))), input: internal, expected: filter.NotVisible},
		{description: "without attribute", options: filter.New(filter.WithRules(&filter.WithoutAttribute{Names: metadata.NewSet(metadata.MustParse("System.ObsoleteAttribute"))})), input: marked, expected: filter.HasAttribute},
		{description: "with attribute", options: filter.New(filter.WithRules(&filter.WithAttribute{Names: metadata.NewSet(metadata.MustParse("System.ObsoleteAttribute"))})), input: public, expected: filter.HasNotAttribute},
		{description: "ignored type", options: filter.New(filter.WithRules(&filter.IgnoredName{Names: metadata.NewSet(metadata.MustParse("N.Public"))})), input: public, expected: filter.Ignored},
		{description: "type in ignored namespace", options: filter.New(filter.WithRules(&filter.IgnoredName{Names: metadata.NewSet(metadata.MustParse("N"))})), input: public, expected: filter.Ignored},
		{description: "namespace rules only", options: filter.New(filter.WithGroups(filter.GroupNone), filter.WithVisibility(filter.VisibilityNone)), input: ns, expected: filter.Success},
		{description: "ignored namespace", options: filter.New(filter.WithRules(&filter.IgnoredName{Names: metadata.NewSet(metadata.MustParse("N"))})), input: ns, expected: filter.Ignored},
		{description: "method group first", options: filter.New(filter.WithGroups(filter.GroupType)), input: method(public, "get_P", symbol.MethodPropertyGet, symbol.AccessibilityPublic, true), expected: filter.UnsupportedGroup},
		{description: "accessor is other", options: filter.New(), input: method(public, "get_P", symbol.MethodPropertyGet, symbol.AccessibilityPublic, true), expected: filter.Other},
		{description: "event accessor is other", options: filter.New(), input: method(public, "add_E", symbol.MethodEventAdd, symbol.AccessibilityPublic, false), expected: filter.Other},
		{description: "implicit class ctor", options: filter.New(), input: method(public, ".ctor", symbol.MethodConstructor, symbol.AccessibilityPublic, true), expected: filter.Success},
		{description: "implicit class ctor with params", options: filter.New(), input: method(public, ".ctor", symbol.MethodConstructor, symbol.AccessibilityPublic, true, param), expected: filter.ImplicitlyDeclared},
		{description: "struct parameterless ctor", options: filter.New(), input: method(value, ".ctor", symbol.MethodConstructor, symbol.AccessibilityPublic, false), expected: filter.ImplicitlyDeclared},
		{description: "struct ctor with params", options: filter.New(), input: method(value, ".ctor", symbol.MethodConstructor, symbol.AccessibilityPublic, false, param), expected: filter.Success},
		{description: "enum ctor", options: filter.New(), input: method(colors, ".ctor", symbol.MethodConstructor, symbol.AccessibilityPublic, false, param), expected: filter.ImplicitlyDeclared},
		{description: "private method", options: filter.New(filter.WithVisibility(filter.VisibilityPublic | filter.VisibilityInternal)), input: method(public, "M", symbol.MethodOrdinary, symbol.AccessibilityPrivate, false), expected: filter.NotVisible},
		{description: "method of internal type", options: filter.New(filter.WithVisibility(filter.VisibilityPublic)), input: method(internal, "M", symbol.MethodOrdinary, symbol.AccessibilityPublic, false), expected: filter.NotVisible},
		{description: "method in ignored type", options: filter.New(filter.WithRules(&filter.IgnoredName{Names: metadata.NewSet(metadata.MustParse("N.Public"))})), input: method(public, "M", symbol.MethodOrdinary, symbol.AccessibilityPublic, false), expected: filter.Ignored},
		{description: "implicit field before group", options: filter.New(filter.WithGroups(filter.GroupType)), input: field(public, "f", 0, true), expected: filter.ImplicitlyDeclared},
		{description: "enum field group", options: filter.New(filter.WithGroups(filter.GroupConst)), input: field(colors, "Red", symbol.ModifierConst, false), expected: filter.UnsupportedGroup},
		{description: "const group", options: filter.New(filter.WithGroups(filter.GroupConst)), input: field(public, "Max", symbol.ModifierConst, false), expected: filter.Success},
		{description: "field group", options: filter.New(filter.WithGroups(filter.GroupConst | filter.GroupEnumField)), input: field(public, "f", 0, false), expected: filter.UnsupportedGroup},
		{description: "indexer group", options: filter.New(filter.WithGroups(filter.GroupProperty)), input: public.AddMember(&symbol.Symbol{Name: "Item", Kind: symbol.KindProperty, Accessibility: symbol.AccessibilityPublic, Property: &symbol.PropertyInfo{Parameters: []*symbol.Parameter{param}}}), expected: filter.UnsupportedGroup},
		{description: "event", options: filter.New(filter.WithGroups(filter.GroupEvent)), input: public.AddMember(&symbol.Symbol{Name: "Changed", Kind: symbol.KindEvent, Accessibility: symbol.AccessibilityPublic, Event: &symbol.EventInfo{}}), expected: filter.Success},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.options.Evaluate(tc.input))
		})
	}
}

func TestNames_Options(t *testing.T) {
	names := &filter.Names{
		Ignored:           []string{"A..B", "N"},
		IgnoredAttributes: []string{"System.ObsoleteAttribute"},
		WithAttributes:    []string{"Bad Name"},
	}
	_, err := names.Options()
	require.Error(t, err)
	assert.ErrorIs(t, err, metadata.ErrMalformedName)
	assert.Contains(t, err.Error(), "A..B")
	assert.Contains(t, err.Error(), "Bad Name")

	names = &filter.Names{Ignored: []string{"N"}, IgnoredAttributes: []string{"System.ObsoleteAttribute"}}
	opts, err := names.Options()
	require.NoError(t, err)
	options := filter.New(opts...)
	assert.Len(t, options.Rules, 1)
	assert.Len(t, options.AttributeRules, 1)
}

func TestParseGroup(t *testing.T) {
	tests := []struct {
		description string
		input       string
		expected    filter.Group
		expectErr   bool
	}{
		{description: "single", input: "class", expected: filter.GroupClass},
		{description: "composite", input: "Type", expected: filter.GroupType},
		{description: "enum field", input: "enum-field", expected: filter.GroupEnumField},
		{description: "unknown", input: "module", expectErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := filter.ParseGroup(tc.input)
			if tc.expectErr {
				assert.ErrorIs(t, err, filter.ErrUnknownGroup)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
	assert.Equal(t, "classes", filter.GroupClass.Plural())
	assert.Equal(t, "class,struct", (filter.GroupClass | filter.GroupStruct).String())
}
