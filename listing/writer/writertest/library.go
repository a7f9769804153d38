// Package writertest provides a symbol graph shared by definition writer and backend tests
package writertest

import "github.com/viant/symdef/symbol"

// Library represents a sample assembly:
//
//	namespace Acme
//	  public interface IRunner
//	  [Obsolete("legacy"), Serializable] public class Widget : IRunner
//	    public const int Max = 10
//	    public int Count { get; }
//	    public void Run()
//	    public class Part
//	namespace Acme.Data
//	  public enum Level { Low = 0, High = 1 }
//	namespace Acme.Data.Sql
//	  public class Query
type Library struct {
	Corlib   *symbol.Corlib
	Assembly *symbol.Assembly
	Acme     *symbol.Symbol
	Data     *symbol.Symbol
	Sql      *symbol.Symbol
	Runner   *symbol.Symbol
	Widget   *symbol.Symbol
	Max      *symbol.Symbol
	Count    *symbol.Symbol
	Run      *symbol.Symbol
	Part     *symbol.Symbol
	Level    *symbol.Symbol
	Query    *symbol.Symbol
}

// NewLibrary creates the sample assembly
func NewLibrary() *Library {
	corlib := symbol.NewCorlib()
	assembly := symbol.NewAssembly("Acme.Lib")
	assembly.Version = "1.2.0.0"
	assembly.Attributes = []*symbol.Attribute{
		{Class: corlib.Type("System.CLSCompliantAttribute"), Arguments: []*symbol.Constant{symbol.Primitive(corlib.Keyword("bool"), true)}},
	}
	ret := &Library{Corlib: corlib, Assembly: assembly}
	ret.Acme = assembly.Namespace("Acme")
	ret.Data = assembly.Namespace("Acme.Data")
	ret.Sql = assembly.Namespace("Acme.Data.Sql")

	ret.Runner = ret.Acme.AddMember(symbol.NewType("IRunner", symbol.TypeKindInterface, symbol.AccessibilityPublic))

	ret.Widget = ret.Class(ret.Acme, "Widget")
	ret.Widget.Type.Interfaces = []*symbol.TypeRef{symbol.Named(ret.Runner)}
	ret.Widget.Attributes = []*symbol.Attribute{
		{Class: corlib.Type("System.SerializableAttribute")},
		{Class: corlib.Type("System.ObsoleteAttribute"), Arguments: []*symbol.Constant{symbol.Primitive(corlib.Keyword("string"), "legacy")}},
	}
	ret.Widget.Documentation = &symbol.Documentation{Elements: []*symbol.DocElement{{Name: "summary", Text: "Reusable widget."}}}
	ret.Max = ret.Widget.AddMember(&symbol.Symbol{
		Name:          "Max",
		Kind:          symbol.KindField,
		Accessibility: symbol.AccessibilityPublic,
		Modifiers:     symbol.ModifierConst | symbol.ModifierStatic,
		Field:         &symbol.FieldInfo{Type: corlib.Keyword("int"), Constant: symbol.Primitive(corlib.Keyword("int"), 10)},
	})
	ret.Count = ret.Widget.AddMember(&symbol.Symbol{Name: "Count", Kind: symbol.KindProperty, Accessibility: symbol.AccessibilityPublic})
	ret.Count.Property = &symbol.PropertyInfo{
		Type:   corlib.Keyword("int"),
		Getter: &symbol.Symbol{Name: "get_Count", Kind: symbol.KindMethod, Accessibility: symbol.AccessibilityPublic},
	}
	ret.Run = ret.Widget.AddMember(&symbol.Symbol{
		Name:          "Run",
		Kind:          symbol.KindMethod,
		Accessibility: symbol.AccessibilityPublic,
		Method:        &symbol.MethodInfo{MethodKind: symbol.MethodOrdinary},
	})
	ret.Part = ret.Class(ret.Widget, "Part")

	ret.Level = ret.Data.AddMember(symbol.NewType("Level", symbol.TypeKindEnum, symbol.AccessibilityPublic))
	ret.Level.Type.BaseType = corlib.Ref("System.Enum")
	ret.Level.Type.Underlying = corlib.Keyword("int")
	for i, name := range []string{"Low", "High"} {
		ret.Level.AddMember(&symbol.Symbol{
			Name:          name,
			Kind:          symbol.KindField,
			Accessibility: symbol.AccessibilityPublic,
			Modifiers:     symbol.ModifierConst | symbol.ModifierStatic,
			Field:         &symbol.FieldInfo{Type: symbol.Named(ret.Level), Constant: symbol.EnumValue(symbol.Named(ret.Level), int64(i))},
		})
	}

	ret.Query = ret.Class(ret.Sql, "Query")
	return ret
}

// Class adds a public class deriving from System.Object
func (l *Library) Class(container *symbol.Symbol, name string) *symbol.Symbol {
	ret := container.AddMember(symbol.NewType(name, symbol.TypeKindClass, symbol.AccessibilityPublic))
	ret.Type.BaseType = l.Corlib.Ref("System.Object")
	return ret
}
