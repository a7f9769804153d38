package symbol

import "strings"

// CorlibName is the name of the synthesized framework assembly
const CorlibName = "mscorlib"

// Corlib represents a synthesized framework assembly exposing well known System types
type Corlib struct {
	Assembly *Assembly
	types    map[string]*Symbol
}

type corlibType struct {
	name       string
	kind       TypeKind
	base       string
	modifiers  Modifiers
	typeParams []string
	interfaces []string
}

var corlibTypes = []corlibType{
	{name: "System.Object"},
	{name: "System.ValueType", base: "System.Object", modifiers: ModifierAbstract},
	{name: "System.Enum", base: "System.ValueType", modifiers: ModifierAbstract},
	{name: "System.Delegate", base: "System.Object", modifiers: ModifierAbstract},
	{name: "System.MulticastDelegate", base: "System.Delegate", modifiers: ModifierAbstract},
	{name: "System.Attribute", base: "System.Object", modifiers: ModifierAbstract},
	{name: "System.Type", base: "System.Object", modifiers: ModifierAbstract},
	{name: "System.String", base: "System.Object", modifiers: ModifierSealed},
	{name: "System.Exception", base: "System.Object"},
	{name: "System.EventArgs", base: "System.Object"},
	{name: "System.Void", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.Boolean", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.Char", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.SByte", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.Byte", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.Int16", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.UInt16", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.Int32", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.UInt32", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.Int64", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.UInt64", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.Decimal", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.Single", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.Double", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.IntPtr", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.UIntPtr", kind: TypeKindStruct, base: "System.ValueType"},
	{name: "System.IDisposable", kind: TypeKindInterface},
	{name: "System.ICloneable", kind: TypeKindInterface},
	{name: "System.Collections.IEnumerable", kind: TypeKindInterface},
	{name: "System.Collections.Generic.IEnumerable`1", kind: TypeKindInterface, typeParams: []string{"T"}, interfaces: []string{"System.Collections.IEnumerable"}},
	{name: "System.FlagsAttribute", base: "System.Attribute", modifiers: ModifierSealed},
	{name: "System.ObsoleteAttribute", base: "System.Attribute", modifiers: ModifierSealed},
	{name: "System.SerializableAttribute", base: "System.Attribute", modifiers: ModifierSealed},
	{name: "System.AttributeUsageAttribute", base: "System.Attribute", modifiers: ModifierSealed},
	{name: "System.CLSCompliantAttribute", base: "System.Attribute", modifiers: ModifierSealed},
	{name: "System.Runtime.CompilerServices.ExtensionAttribute", base: "System.Attribute", modifiers: ModifierSealed},
	{name: "System.Diagnostics.DebuggerDisplayAttribute", base: "System.Attribute", modifiers: ModifierSealed},
	{name: "System.Diagnostics.CodeAnalysis.SuppressMessageAttribute", base: "System.Attribute", modifiers: ModifierSealed},
}

// NewCorlib creates the framework assembly
func NewCorlib() *Corlib {
	ret := &Corlib{Assembly: NewAssembly(CorlibName), types: make(map[string]*Symbol, len(corlibTypes))}
	ret.Assembly.Version = "4.0.0.0"
	ret.Assembly.PublicKeyToken = "b77a5c561934e089"
	for _, item := range corlibTypes {
		idx := strings.LastIndexByte(item.name, '.')
		name := item.name[idx+1:]
		if tick := strings.IndexByte(name, '`'); tick != -1 {
			name = name[:tick]
		}
		typ := NewType(name, item.kind, AccessibilityPublic)
		typ.Modifiers = item.modifiers
		for _, param := range item.typeParams {
			typ.TypeParameters = append(typ.TypeParameters, &TypeParameter{Name: param, Variance: VarianceOut})
		}
		ret.Assembly.Namespace(item.name[:idx]).AddMember(typ)
		ret.types[item.name] = typ
	}
	for _, item := range corlibTypes {
		typ := ret.types[item.name]
		if item.base != "" {
			typ.Type.BaseType = Named(ret.types[item.base])
		}
		for _, iface := range item.interfaces {
			typ.Type.Interfaces = append(typ.Type.Interfaces, Named(ret.types[iface]))
		}
	}
	return ret
}

// Type returns a framework type by full metadata name or nil
func (c *Corlib) Type(fullMetadataName string) *Symbol {
	return c.types[fullMetadataName]
}

// Ref returns a reference to a framework type or nil
func (c *Corlib) Ref(fullMetadataName string, arguments ...*TypeRef) *TypeRef {
	if typ := c.types[fullMetadataName]; typ != nil {
		return Named(typ, arguments...)
	}
	return nil
}

// Keyword returns a reference to a keyword type, i.e. int, string or nil
func (c *Corlib) Keyword(keyword string) *TypeRef {
	if name, ok := KeywordTypes[keyword]; ok {
		return c.Ref(name)
	}
	return nil
}

// Object returns System.Object
func (c *Corlib) Object() *Symbol {
	return c.types["System.Object"]
}
