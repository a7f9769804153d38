package manifest_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/symdef/source/manifest"
	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

const document = `
assemblies:
  - name: Acme.Core
    version: 2.1.0.0
    attributes:
      - type: System.CLSCompliantAttribute
        arguments:
          - value: true
    namespaces:
      - name: Acme.Core
        types:
          - name: Color
            kind: enum
            underlying: byte
            attributes:
              - type: System.FlagsAttribute
            members:
              - {name: None, kind: field}
              - {name: Red, kind: field}
              - {name: Green, kind: field, value: {value: 4}}
              - {name: Blue, kind: field}
          - name: Repository
            typeParameters:
              - {name: T, variance: "", constraints: [class, "new()"]}
            interfaces: ["System.Collections.Generic.IEnumerable<T>", System.IDisposable]
            summary: Stores items.
            doc:
              - {name: typeparam, attributes: {name: T}, text: Item type.}
            members:
              - {kind: constructor}
              - {name: MaxCount, kind: field, modifiers: [const], type: int, value: {value: 100}}
              - name: Count
                kind: property
                type: int
                getter: public
                setter: protected
              - {name: Capacity, kind: property, type: int, getter: public, setter: public, initOnly: true}
              - {kind: indexer, type: T, getter: public, parameters: [{name: index, type: int}]}
              - name: Find
                kind: method
                returns: "T[]"
                typeParameters: [{name: TKey}]
                parameters:
                  - {name: key, type: TKey}
                  - {name: color, type: Acme.Core.Color, default: {value: 5}}
                  - {name: label, type: string, default: {}}
                attributes:
                  - type: System.ObsoleteAttribute
                    arguments: [{value: Use Get}]
              - {name: Changed, kind: event, type: System.EventArgs}
              - {name: op_Addition, kind: method, methodKind: operator, modifiers: [static], returns: "Acme.Core.Repository<T>", parameters: [{name: x, type: "Acme.Core.Repository<T>"}, {name: y, type: "Acme.Core.Repository<T>"}]}
            types:
              - name: Entry
                kind: struct
                accessibility: protected
  - name: Acme.Extensions
    namespaces:
      - name: Acme.Extensions
        types:
          - name: Helpers
            modifiers: [static]
            members:
              - name: Wrap
                kind: method
                modifiers: [static]
                extension: true
                returns: "Acme.Core.Repository<string>"
                parameters: [{name: source, type: "Acme.Core.Repository<string>", this: true}]
`

func parse(t *testing.T) []*symbol.Assembly {
	assemblies, err := manifest.Parse([]byte(document))
	require.NoError(t, err)
	require.Len(t, assemblies, 2)
	return assemblies
}

func TestParse_Assemblies(t *testing.T) {
	assemblies := parse(t)
	core := assemblies[0]
	assert.Equal(t, "Acme.Core, Version=2.1.0.0, Culture=neutral, PublicKeyToken=null", core.Identity())
	require.Len(t, core.Attributes, 1)
	assert.Equal(t, "CLSCompliant", core.Attributes[0].Name())
	assert.Equal(t, true, core.Attributes[0].Arguments[0].Value)

	var names []string
	for _, typ := range core.Types(nil) {
		names = append(names, typ.FullMetadataName())
	}
	assert.Equal(t, []string{"Acme.Core.Color", "Acme.Core.Repository`1", "Acme.Core.Repository`1+Entry"}, names)
}

func TestParse_Enum(t *testing.T) {
	color := parse(t)[0].FindType("Acme.Core.Color")
	require.NotNil(t, color)
	assert.True(t, color.HasAttribute("System.FlagsAttribute"))
	assert.Equal(t, "System.Byte", color.Type.Underlying.Def.FullMetadataName())
	assert.Equal(t, "System.Enum", color.Type.BaseType.Def.FullMetadataName())

	tests := []struct {
		description string
		name        string
		expected    int64
	}{
		{description: "first implicit", name: "None", expected: 0},
		{description: "next implicit", name: "Red", expected: 1},
		{description: "explicit", name: "Green", expected: 4},
		{description: "after explicit", name: "Blue", expected: 5},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			field := color.LookupMembers(tc.name)[0]
			assert.True(t, field.IsConst())
			assert.Equal(t, symbol.ConstantEnum, field.Field.Constant.Kind)
			value, ok := field.Field.Constant.Int64()
			require.True(t, ok)
			assert.Equal(t, tc.expected, value)
		})
	}
}

func TestParse_Type(t *testing.T) {
	repository := parse(t)[0].FindType("Acme.Core.Repository`1")
	require.NotNil(t, repository)
	assert.Equal(t, "System.Object", repository.Type.BaseType.Def.FullMetadataName())
	require.Len(t, repository.TypeParameters, 1)
	assert.True(t, repository.TypeParameters[0].ReferenceType)
	assert.True(t, repository.TypeParameters[0].Constructor)

	require.Len(t, repository.Type.Interfaces, 2)
	enumerable := repository.Type.Interfaces[0]
	assert.Equal(t, "System.Collections.Generic.IEnumerable`1", enumerable.Def.FullMetadataName())
	require.Len(t, enumerable.Arguments, 1)
	assert.Equal(t, symbol.TypeRefTypeParameter, enumerable.Arguments[0].Kind)

	require.NotNil(t, repository.Documentation)
	assert.Equal(t, "Stores items.", repository.Documentation.Summary())
	typeParam := repository.Documentation.Element("typeparam")
	require.NotNil(t, typeParam)
	assert.Equal(t, "T", typeParam.Attribute("name"))

	entry := parse(t)[0].FindType("Acme.Core.Repository`1+Entry")
	require.NotNil(t, entry)
	assert.Equal(t, symbol.AccessibilityProtected, entry.Accessibility)
	assert.Equal(t, "System.ValueType", entry.Type.BaseType.Def.FullMetadataName())
}

func TestParse_Members(t *testing.T) {
	repository := parse(t)[0].FindType("Acme.Core.Repository`1")
	require.NotNil(t, repository)
	tests := []struct {
		description string
		name        string
		kind        symbol.Kind
		methodKind  symbol.MethodKind
	}{
		{description: "constructor", name: ".ctor", kind: symbol.KindMethod, methodKind: symbol.MethodConstructor},
		{description: "const", name: "MaxCount", kind: symbol.KindField},
		{description: "property", name: "Count", kind: symbol.KindProperty},
		{description: "indexer", name: "Item", kind: symbol.KindProperty},
		{description: "generic method", name: "Find", kind: symbol.KindMethod, methodKind: symbol.MethodOrdinary},
		{description: "event", name: "Changed", kind: symbol.KindEvent},
		{description: "operator", name: "op_Addition", kind: symbol.KindMethod, methodKind: symbol.MethodUserDefinedOperator},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			members := repository.LookupMembers(tc.name)
			require.Len(t, members, 1)
			assert.Equal(t, tc.kind, members[0].Kind)
			assert.Equal(t, symbol.AccessibilityPublic, members[0].Accessibility)
			if tc.kind == symbol.KindMethod {
				assert.Equal(t, tc.methodKind, members[0].MethodKind())
			}
		})
	}

	maxCount := repository.LookupMembers("MaxCount")[0]
	assert.True(t, maxCount.Modifiers.Has(symbol.ModifierStatic))
	assert.Equal(t, int32(100), maxCount.Field.Constant.Value)

	count := repository.LookupMembers("Count")[0]
	require.NotNil(t, count.Property.Setter)
	assert.Equal(t, "set_Count", count.Property.Setter.Name)
	assert.Equal(t, symbol.AccessibilityProtected, count.Property.Setter.Accessibility)
	assert.Equal(t, "set", count.Property.SetterKeyword())

	capacity := repository.LookupMembers("Capacity")[0]
	require.NotNil(t, capacity.Property.Setter)
	assert.True(t, capacity.Property.Setter.Method.IsInitOnly)
	assert.Equal(t, "init", capacity.Property.SetterKeyword())

	indexer := repository.LookupMembers("Item")[0]
	assert.True(t, indexer.IsIndexer())
	assert.Nil(t, indexer.Property.Setter)

	find := repository.LookupMembers("Find")[0]
	assert.Equal(t, symbol.TypeRefArray, find.Method.ReturnType.Kind)
	params := find.Parameters()
	require.Len(t, params, 3)
	assert.Equal(t, symbol.TypeRefTypeParameter, params[0].Type.Kind)
	assert.Equal(t, symbol.ConstantEnum, params[1].Default.Kind)
	assert.True(t, params[2].Default.IsNull())
	assert.True(t, find.HasAttribute("System.ObsoleteAttribute"))

	changed := repository.LookupMembers("Changed")[0]
	require.NotNil(t, changed.Event.Adder)
	assert.True(t, changed.Event.Adder.Implicit)
	assert.Equal(t, "remove_Changed", changed.Event.Remover.Name)
}

func TestParse_CrossAssembly(t *testing.T) {
	assemblies := parse(t)
	helpers := assemblies[1].FindType("Acme.Extensions.Helpers")
	require.NotNil(t, helpers)
	wrap := helpers.LookupMembers("Wrap")[0]
	assert.True(t, wrap.Method.IsExtension)
	require.NotNil(t, wrap.Method.ReturnType.Def)
	assert.Equal(t, assemblies[0], wrap.Method.ReturnType.Def.Assembly)
	require.Len(t, wrap.Method.ReturnType.Arguments, 1)
	assert.Equal(t, "System.String", wrap.Method.ReturnType.Arguments[0].Def.FullMetadataName())
	assert.True(t, wrap.Parameters()[0].IsThis)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		description string
		document    string
		unresolved  bool
	}{
		{description: "empty", document: "assemblies: []"},
		{description: "unknown field", document: "assemblies:\n  - name: A\n    color: red\n"},
		{description: "unknown kind", document: "assemblies:\n  - name: A\n    namespaces:\n      - name: N\n        types:\n          - {name: T, kind: union}\n"},
		{description: "unresolved base", document: "assemblies:\n  - name: A\n    namespaces:\n      - name: N\n        types:\n          - {name: T, base: N.Missing}\n", unresolved: true},
		{description: "unresolved member type", document: "assemblies:\n  - name: A\n    namespaces:\n      - name: N\n        types:\n          - name: T\n            members: [{name: F, kind: field, type: Missing}]\n", unresolved: true},
		{description: "duplicate type", document: "assemblies:\n  - name: A\n    namespaces:\n      - name: N\n        types: [{name: T}, {name: T}]\n"},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			_, err := manifest.Parse([]byte(tc.document))
			require.Error(t, err)
			assert.Equal(t, tc.unresolved, errors.Is(err, manifest.ErrUnresolvedReference))
		})
	}
}

func TestSource_Load(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/manifest/acme.yaml"
	require.NoError(t, fs.Upload(ctx, URL, 0o644, strings.NewReader(document)))
	assemblies, err := manifest.New(manifest.WithFS(fs)).Load(ctx, URL)
	require.NoError(t, err)
	assert.Len(t, assemblies, 2)

	_, err = manifest.New(manifest.WithFS(fs)).Load(ctx, "mem://localhost/manifest/missing.yaml")
	assert.Error(t, err)
}
