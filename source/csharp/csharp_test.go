package csharp_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/symdef/source/csharp"
	"github.com/viant/symdef/symbol"
)

const library = `-- Shapes.cs --
using System;
using Col = System.Collections.Generic;

namespace Acme.Shapes
{
    /// <summary>Represents a shape.</summary>
    public interface IShape
    {
        double Area { get; }
    }

    [Flags]
    public enum Sides : byte
    {
        None,
        Top = 1,
        Bottom = 1 << 1,
        Both = Top | Bottom,
        After,
    }

    public abstract partial class Shape : IShape, IDisposable
    {
        public const int MaxSides = 10;
        public const string Prefix = "shape";
        public abstract double Area { get; }
        public void Dispose() { }
    }

    [Obsolete("Use Square", false)]
    public partial class Shape
    {
        internal Shape(int sides) { }
        public event EventHandler Changed;
        public Col.IEnumerable<Shape> Children() { return null; }
    }
}
-- Square.cs --
namespace Acme.Shapes.Quads;

public sealed class Square : Shape, IComparable<Square>
{
    public Square() : base(4) { }
    public override double Area => Side * Side;
    public double Side { get; private set; }
    public int this[int index] { get { return 0; } }
    public static Square operator +(Square x, Square y) => x;
    public static implicit operator double(Square square) => square.Side;
    public T Scale<T>(T factor, int times = 2, string unit = null) where T : struct => factor;
    ~Square() { }
}

public struct Point
{
    public int X;
    public int Y;
}

public static class Extensions
{
    public static int Count(this Square square, params int[] values) => 0;
}

public delegate void Resized(object sender, double previous);
-- bin/Generated.cs --
namespace Acme.Generated { public class Skipped { } }
`

func load(t *testing.T) *symbol.Assembly {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/csharp/Acme.Shapes.txtar"
	require.NoError(t, fs.Upload(ctx, URL, 0o644, strings.NewReader(library)))
	assemblies, err := csharp.New(csharp.WithFS(fs), csharp.WithAssemblyVersion("1.0.0.0")).Load(ctx, URL)
	require.NoError(t, err)
	require.Len(t, assemblies, 1)
	return assemblies[0]
}

func findType(t *testing.T, assembly *symbol.Assembly, name string) *symbol.Symbol {
	typ := assembly.FindType(name)
	require.NotNil(t, typ, name)
	return typ
}

func TestSource_Load(t *testing.T) {
	assembly := load(t)
	assert.Equal(t, "Acme.Shapes", assembly.Name)
	assert.Equal(t, "1.0.0.0", assembly.Version)
	assert.Nil(t, assembly.FindType("Acme.Generated.Skipped"))

	var names []string
	for _, ns := range assembly.Namespaces() {
		names = append(names, ns.QualifiedName())
	}
	assert.Contains(t, names, "Acme.Shapes")
	assert.Contains(t, names, "Acme.Shapes.Quads")
}

func TestSource_Types(t *testing.T) {
	assembly := load(t)
	tests := []struct {
		description   string
		name          string
		kind          symbol.TypeKind
		accessibility symbol.Accessibility
		modifiers     symbol.Modifiers
		base          string
	}{
		{description: "interface", name: "Acme.Shapes.IShape", kind: symbol.TypeKindInterface, accessibility: symbol.AccessibilityPublic},
		{description: "enum", name: "Acme.Shapes.Sides", kind: symbol.TypeKindEnum, accessibility: symbol.AccessibilityPublic, base: "System.Enum"},
		{description: "partial class", name: "Acme.Shapes.Shape", kind: symbol.TypeKindClass, accessibility: symbol.AccessibilityPublic, modifiers: symbol.ModifierAbstract | symbol.ModifierPartial, base: "System.Object"},
		{description: "file scoped namespace", name: "Acme.Shapes.Quads.Square", kind: symbol.TypeKindClass, accessibility: symbol.AccessibilityPublic, modifiers: symbol.ModifierSealed, base: "Acme.Shapes.Shape"},
		{description: "struct", name: "Acme.Shapes.Quads.Point", kind: symbol.TypeKindStruct, accessibility: symbol.AccessibilityPublic, base: "System.ValueType"},
		{description: "static class", name: "Acme.Shapes.Quads.Extensions", kind: symbol.TypeKindClass, accessibility: symbol.AccessibilityPublic, modifiers: symbol.ModifierStatic, base: "System.Object"},
		{description: "delegate", name: "Acme.Shapes.Quads.Resized", kind: symbol.TypeKindDelegate, accessibility: symbol.AccessibilityPublic, base: "System.MulticastDelegate"},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			typ := findType(t, assembly, tc.name)
			assert.Equal(t, tc.kind, typ.TypeKind())
			assert.Equal(t, tc.accessibility, typ.Accessibility)
			assert.Equal(t, tc.modifiers, typ.Modifiers)
			if tc.base == "" {
				assert.Nil(t, typ.Type.BaseType)
				return
			}
			require.NotNil(t, typ.Type.BaseType)
			require.NotNil(t, typ.Type.BaseType.Def)
			assert.Equal(t, tc.base, typ.Type.BaseType.Def.FullMetadataName())
		})
	}
}

func TestSource_PartialMerge(t *testing.T) {
	assembly := load(t)
	shape := findType(t, assembly, "Acme.Shapes.Shape")
	assert.NotNil(t, shape.LookupMembers("Dispose"))
	assert.NotNil(t, shape.LookupMembers("Changed"))
	assert.Len(t, shape.LookupMembers(".ctor"), 1)
	assert.True(t, shape.HasAttribute("System.ObsoleteAttribute"))

	var interfaces []string
	for _, iface := range shape.Type.Interfaces {
		require.NotNil(t, iface.Def)
		interfaces = append(interfaces, iface.Def.FullMetadataName())
	}
	assert.Equal(t, []string{"Acme.Shapes.IShape", "System.IDisposable"}, interfaces)

	obsolete := shape.Attributes[0]
	require.Len(t, obsolete.Arguments, 2)
	assert.Equal(t, "Use Square", obsolete.Arguments[0].Value)
	assert.Equal(t, false, obsolete.Arguments[1].Value)
}

func TestSource_Enum(t *testing.T) {
	assembly := load(t)
	sides := findType(t, assembly, "Acme.Shapes.Sides")
	assert.True(t, sides.HasAttribute("System.FlagsAttribute"))
	require.NotNil(t, sides.Type.Underlying)
	require.NotNil(t, sides.Type.Underlying.Def)
	assert.Equal(t, "System.Byte", sides.Type.Underlying.Def.FullMetadataName())

	tests := []struct {
		description string
		name        string
		expected    int64
	}{
		{description: "implicit first value", name: "None", expected: 0},
		{description: "literal", name: "Top", expected: 1},
		{description: "shift", name: "Bottom", expected: 2},
		{description: "member reference", name: "Both", expected: 3},
		{description: "implicit next value", name: "After", expected: 4},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			members := sides.LookupMembers(tc.name)
			require.Len(t, members, 1)
			field := members[0]
			assert.True(t, field.Modifiers.Has(symbol.ModifierConst|symbol.ModifierStatic))
			require.NotNil(t, field.Field.Constant)
			assert.Equal(t, symbol.ConstantEnum, field.Field.Constant.Kind)
			value, ok := field.Field.Constant.Int64()
			require.True(t, ok)
			assert.Equal(t, tc.expected, value)
		})
	}

	ctors := sides.LookupMembers(".ctor")
	require.Len(t, ctors, 1)
	assert.True(t, ctors[0].Implicit)
}

func TestSource_Members(t *testing.T) {
	assembly := load(t)
	square := findType(t, assembly, "Acme.Shapes.Quads.Square")
	tests := []struct {
		description   string
		name          string
		kind          symbol.Kind
		methodKind    symbol.MethodKind
		accessibility symbol.Accessibility
		parameters    int
	}{
		{description: "constructor", name: ".ctor", kind: symbol.KindMethod, methodKind: symbol.MethodConstructor, accessibility: symbol.AccessibilityPublic},
		{description: "expression bodied property", name: "Area", kind: symbol.KindProperty, accessibility: symbol.AccessibilityPublic},
		{description: "indexer", name: "Item", kind: symbol.KindProperty, accessibility: symbol.AccessibilityPublic, parameters: 1},
		{description: "operator", name: "op_Addition", kind: symbol.KindMethod, methodKind: symbol.MethodUserDefinedOperator, accessibility: symbol.AccessibilityPublic, parameters: 2},
		{description: "conversion", name: symbol.ImplicitConversionName, kind: symbol.KindMethod, methodKind: symbol.MethodConversion, accessibility: symbol.AccessibilityPublic, parameters: 1},
		{description: "generic method", name: "Scale", kind: symbol.KindMethod, methodKind: symbol.MethodOrdinary, accessibility: symbol.AccessibilityPublic, parameters: 3},
		{description: "destructor", name: "Finalize", kind: symbol.KindMethod, methodKind: symbol.MethodDestructor, accessibility: symbol.AccessibilityProtected},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			members := square.LookupMembers(tc.name)
			require.Len(t, members, 1)
			member := members[0]
			assert.Equal(t, tc.kind, member.Kind)
			assert.Equal(t, tc.accessibility, member.Accessibility)
			assert.Len(t, member.Parameters(), tc.parameters)
			if tc.kind == symbol.KindMethod {
				assert.Equal(t, tc.methodKind, member.MethodKind())
			}
		})
	}

	area := square.LookupMembers("Area")[0]
	assert.True(t, area.Modifiers.Has(symbol.ModifierOverride))
	assert.NotNil(t, area.Property.Getter)
	assert.Nil(t, area.Property.Setter)

	side := square.LookupMembers("Side")[0]
	require.NotNil(t, side.Property.Setter)
	assert.Equal(t, "set_Side", side.Property.Setter.Name)
	assert.Equal(t, symbol.AccessibilityPrivate, side.Property.Setter.Accessibility)
	assert.Equal(t, symbol.AccessibilityPublic, side.Property.Getter.Accessibility)
}

func TestSource_Parameters(t *testing.T) {
	assembly := load(t)
	square := findType(t, assembly, "Acme.Shapes.Quads.Square")
	scale := square.LookupMembers("Scale")[0]
	require.Len(t, scale.TypeParameters, 1)
	assert.True(t, scale.TypeParameters[0].ValueType)
	assert.Equal(t, symbol.TypeRefTypeParameter, scale.Method.ReturnType.Kind)

	params := scale.Parameters()
	require.Len(t, params, 3)
	assert.Equal(t, symbol.TypeRefTypeParameter, params[0].Type.Kind)
	assert.False(t, params[0].HasExplicitDefaultValue())
	require.NotNil(t, params[1].Default)
	assert.Equal(t, int32(2), params[1].Default.Value)
	require.NotNil(t, params[2].Default)
	assert.True(t, params[2].Default.IsNull())

	extensions := findType(t, assembly, "Acme.Shapes.Quads.Extensions")
	count := extensions.LookupMembers("Count")[0]
	assert.True(t, count.Method.IsExtension)
	params = count.Parameters()
	require.Len(t, params, 2)
	assert.True(t, params[0].IsThis)
	assert.True(t, params[1].IsParams)
	assert.Equal(t, symbol.TypeRefArray, params[1].Type.Kind)
	assert.Empty(t, extensions.LookupMembers(".ctor"))
}

func TestSource_ParameterLists(t *testing.T) {
	assembly, err := csharp.New().LoadSource(context.Background(), "Lib", []byte(`
using System;

namespace Lib
{
    public class Calls
    {
        public void Trailing(int x, params string[] rest) { }
        public void Attributed(int x, [Obsolete] params int[] values) { }
        public void Only(params object[] items) { }
    }
}
`))
	require.NoError(t, err)
	calls := findType(t, assembly, "Lib.Calls")

	tests := []struct {
		description string
		method      string
		names       []string
		attributes  int
	}{
		{description: "params after parameter", method: "Trailing", names: []string{"x", "rest"}},
		{description: "attributed params", method: "Attributed", names: []string{"x", "values"}, attributes: 1},
		{description: "params only", method: "Only", names: []string{"items"}},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			params := calls.LookupMembers(tc.method)[0].Parameters()
			require.Len(t, params, len(tc.names))
			for i, name := range tc.names {
				assert.Equal(t, name, params[i].Name)
			}
			last := params[len(params)-1]
			assert.True(t, last.IsParams)
			require.NotNil(t, last.Type)
			assert.Equal(t, symbol.TypeRefArray, last.Type.Kind)
			assert.Len(t, last.Attributes, tc.attributes)
			for _, param := range params[:len(params)-1] {
				assert.False(t, param.IsParams)
			}
		})
	}
}

func TestSource_DocumentationElements(t *testing.T) {
	assembly, err := csharp.New().LoadSource(context.Background(), "Lib", []byte(`
namespace Lib
{
    public class Docs
    {
        /// <summary>Does it.</summary>
        /// <param name="x">The x value.</param>
        /// <param name="y">The y value.</param>
        /// <returns>Nothing.</returns>
        public int Do(int x, int y) => 0;

        /// <summary>Kept.</summary>
        /// <remarks>a < b</remarks>
        public void Broken() { }
    }
}
`))
	require.NoError(t, err)
	docs := findType(t, assembly, "Lib.Docs")

	doc := docs.LookupMembers("Do")[0].Documentation
	require.NotNil(t, doc)
	assert.Equal(t, "Does it.", doc.Summary())
	var params []string
	for _, element := range doc.Elements {
		if element.Name == "param" {
			params = append(params, element.Attribute("name")+"="+element.Text)
		}
	}
	assert.Equal(t, []string{"x=The x value.", "y=The y value."}, params)
	returns := doc.Element("returns")
	require.NotNil(t, returns)
	assert.Equal(t, "Nothing.", returns.Text)

	broken := docs.LookupMembers("Broken")[0].Documentation
	require.NotNil(t, broken)
	assert.Equal(t, "Kept.", broken.Summary())
	assert.Nil(t, broken.Element("remarks"))
}

func TestSource_InitAccessors(t *testing.T) {
	assembly, err := csharp.New().LoadSource(context.Background(), "Lib", []byte(`
namespace Lib
{
    public class Box
    {
        public int Size { get; init; }
        public int Weight { get; set; }
    }

    public record Pair(int Left, int Right);
}
`))
	require.NoError(t, err)

	tests := []struct {
		description string
		typeName    string
		property    string
		initOnly    bool
	}{
		{description: "init accessor", typeName: "Lib.Box", property: "Size", initOnly: true},
		{description: "set accessor", typeName: "Lib.Box", property: "Weight"},
		{description: "positional record property", typeName: "Lib.Pair", property: "Left", initOnly: true},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			property := findType(t, assembly, tc.typeName).LookupMembers(tc.property)[0]
			require.NotNil(t, property.Property.Setter)
			require.NotNil(t, property.Property.Setter.Method)
			assert.Equal(t, tc.initOnly, property.Property.Setter.Method.IsInitOnly)
			expected := "set"
			if tc.initOnly {
				expected = "init"
			}
			assert.Equal(t, expected, property.Property.SetterKeyword())
		})
	}
}

func TestSource_Constants(t *testing.T) {
	assembly := load(t)
	shape := findType(t, assembly, "Acme.Shapes.Shape")
	tests := []struct {
		description string
		name        string
		expected    interface{}
	}{
		{description: "int", name: "MaxSides", expected: int32(10)},
		{description: "string", name: "Prefix", expected: "shape"},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			field := shape.LookupMembers(tc.name)[0]
			assert.True(t, field.IsConst())
			assert.True(t, field.Modifiers.Has(symbol.ModifierStatic))
			require.NotNil(t, field.Field.Constant)
			assert.Equal(t, tc.expected, field.Field.Constant.Value)
		})
	}
}

func TestSource_ImplicitMembers(t *testing.T) {
	assembly := load(t)
	point := findType(t, assembly, "Acme.Shapes.Quads.Point")
	ctors := point.LookupMembers(".ctor")
	require.Len(t, ctors, 1)
	assert.True(t, ctors[0].Implicit)

	shape := findType(t, assembly, "Acme.Shapes.Shape")
	for _, ctor := range shape.LookupMembers(".ctor") {
		assert.False(t, ctor.Implicit)
	}

	changed := shape.LookupMembers("Changed")[0]
	require.NotNil(t, changed.Event.Adder)
	assert.Equal(t, "add_Changed", changed.Event.Adder.Name)
	assert.True(t, changed.Event.Adder.Implicit)
}

func TestSource_Documentation(t *testing.T) {
	assembly := load(t)
	shape := findType(t, assembly, "Acme.Shapes.IShape")
	require.NotNil(t, shape.Documentation)
	assert.Equal(t, "Represents a shape.", shape.Documentation.Summary())
	assert.Nil(t, findType(t, assembly, "Acme.Shapes.Quads.Point").Documentation)
}

func TestSource_LoadSource(t *testing.T) {
	source := csharp.New()
	assembly, err := source.LoadSource(context.Background(), "Lib", []byte(`
namespace Lib
{
    public class Outer
    {
        public class Inner { }
        public Inner Create() => null;
        protected abstract class Hidden { }
    }
}
`))
	require.NoError(t, err)
	outer := findType(t, assembly, "Lib.Outer")
	ctors := outer.LookupMembers(".ctor")
	require.Len(t, ctors, 1)
	assert.True(t, ctors[0].Implicit)
	assert.Equal(t, symbol.AccessibilityPublic, ctors[0].Accessibility)

	create := outer.LookupMembers("Create")[0]
	require.NotNil(t, create.Method.ReturnType.Def)
	assert.Equal(t, "Lib.Outer+Inner", create.Method.ReturnType.Def.FullMetadataName())

	hidden := findType(t, assembly, "Lib.Outer+Hidden")
	assert.Equal(t, symbol.AccessibilityProtected, hidden.Accessibility)
	hiddenCtor := hidden.LookupMembers(".ctor")
	require.Len(t, hiddenCtor, 1)
	assert.Equal(t, symbol.AccessibilityProtected, hiddenCtor[0].Accessibility)
}

func TestSource_LoadDirectory(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	files := map[string]string{
		"mem://localhost/project/src/A.cs":         "namespace P { public class A { } }",
		"mem://localhost/project/src/nested/B.cs":  "namespace P { public class B : A { } }",
		"mem://localhost/project/obj/Generated.cs": "namespace P { public class Generated { } }",
		"mem://localhost/project/README.md":        "# P",
	}
	for URL, content := range files {
		require.NoError(t, fs.Upload(ctx, URL, 0o644, strings.NewReader(content)))
	}
	assemblies, err := csharp.New(csharp.WithFS(fs), csharp.WithAssemblyName("P")).Load(ctx, "mem://localhost/project")
	require.NoError(t, err)
	require.Len(t, assemblies, 1)
	assembly := assemblies[0]
	assert.Equal(t, "P", assembly.Name)
	assert.Nil(t, assembly.FindType("P.Generated"))
	b := findType(t, assembly, "P.B")
	require.NotNil(t, b.Type.BaseType.Def)
	assert.Equal(t, "P.A", b.Type.BaseType.Def.FullMetadataName())
}

func TestSource_LoadErrors(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	require.NoError(t, fs.Upload(ctx, "mem://localhost/empty/notes.txtar", 0o644, strings.NewReader("-- notes.txt --\nnothing\n")))
	tests := []struct {
		description string
		URL         string
	}{
		{description: "no sources in archive", URL: "mem://localhost/empty/notes.txtar"},
		{description: "missing file", URL: "mem://localhost/missing/File.cs"},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			_, err := csharp.New(csharp.WithFS(fs)).Load(ctx, tc.URL)
			assert.Error(t, err)
		})
	}
}
