package manifest

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

// ErrUnresolvedReference is returned when a manifest references an unknown type
var ErrUnresolvedReference = errors.New("unresolved reference")

// declaration represents a type declared in the first pass
type declaration struct {
	spec *Type
	typ  *symbol.Symbol
}

// builder converts a manifest into assemblies, type references are resolved once every type is declared
type builder struct {
	corlib       *symbol.Corlib
	types        map[string]*symbol.Symbol
	declarations []*declaration
	errs         *multierror.Error
}

func newBuilder() *builder {
	ret := &builder{corlib: symbol.NewCorlib(), types: map[string]*symbol.Symbol{}}
	for _, typ := range ret.corlib.Assembly.Types(nil) {
		ret.types[typ.FullMetadataName()] = typ
	}
	return ret
}

func (b *builder) fail(err error) {
	b.errs = multierror.Append(b.errs, err)
}

func (b *builder) build(doc *Document) ([]*symbol.Assembly, error) {
	var assemblies []*symbol.Assembly
	for _, spec := range doc.Assemblies {
		if spec.Name == "" {
			b.fail(errors.New("assembly name is required"))
			continue
		}
		assembly := symbol.NewAssembly(spec.Name)
		assembly.Version = spec.Version
		assembly.Culture = spec.Culture
		assembly.PublicKeyToken = spec.PublicKeyToken
		for _, ns := range spec.Namespaces {
			container := assembly.Namespace(ns.Name)
			for _, typ := range ns.Types {
				b.declare(container, typ)
			}
		}
		assemblies = append(assemblies, assembly)
	}
	if err := b.errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	for i, spec := range doc.Assemblies {
		if i < len(assemblies) {
			assemblies[i].Attributes = b.attributes(spec.Attributes, &scope{})
		}
	}
	for _, item := range b.declarations {
		b.define(item)
	}
	if err := b.errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return assemblies, nil
}

func (b *builder) accessibility(text string) symbol.Accessibility {
	if text == "" {
		return symbol.AccessibilityPublic
	}
	ret, err := symbol.ParseAccessibility(text)
	if err != nil {
		b.fail(err)
	}
	return ret
}

func (b *builder) modifiers(keywords []string) symbol.Modifiers {
	var ret symbol.Modifiers
	for _, keyword := range keywords {
		modifier, err := symbol.ParseModifier(keyword)
		if err != nil {
			b.fail(err)
			continue
		}
		ret |= modifier
	}
	return ret
}

func (b *builder) typeParameters(specs []*TypeParameter) []*symbol.TypeParameter {
	var ret []*symbol.TypeParameter
	for _, spec := range specs {
		param := &symbol.TypeParameter{Name: spec.Name}
		switch spec.Variance {
		case "":
		case "in":
			param.Variance = symbol.VarianceIn
		case "out":
			param.Variance = symbol.VarianceOut
		default:
			b.fail(errors.Errorf("variance %q: %w", spec.Variance, symbol.ErrUnknownValue))
		}
		ret = append(ret, param)
	}
	return ret
}

// declare creates a type and its nested types
func (b *builder) declare(container *symbol.Symbol, spec *Type) {
	kind, err := symbol.ParseTypeKind(spec.Kind)
	if spec.Kind == "" {
		kind, err = symbol.TypeKindClass, nil
	}
	if err != nil {
		b.fail(errors.Errorf("type %v: %w", spec.Name, err))
		return
	}
	typ := symbol.NewType(spec.Name, kind, b.accessibility(spec.Accessibility))
	typ.Modifiers = b.modifiers(spec.Modifiers)
	typ.TypeParameters = b.typeParameters(spec.TypeParameters)
	container.AddMember(typ)
	name := typ.FullMetadataName()
	if _, ok := b.types[name]; ok {
		b.fail(errors.Errorf("type %v is declared more than once", name))
	}
	b.types[name] = typ
	b.declarations = append(b.declarations, &declaration{spec: spec, typ: typ})
	for _, nested := range spec.Types {
		b.declare(typ, nested)
	}
}

// define fills base types, signatures and members of a declared type
func (b *builder) define(item *declaration) {
	spec, typ := item.spec, item.typ
	sc := newScope(typ)
	switch {
	case spec.Base != "":
		typ.Type.BaseType = b.typeRef(spec.Base, sc)
	case typ.Is(symbol.TypeKindClass):
		typ.Type.BaseType = b.corlib.Ref("System.Object")
	case typ.Is(symbol.TypeKindStruct):
		typ.Type.BaseType = b.corlib.Ref("System.ValueType")
	case typ.Is(symbol.TypeKindEnum):
		typ.Type.BaseType = b.corlib.Ref("System.Enum")
	case typ.Is(symbol.TypeKindDelegate):
		typ.Type.BaseType = b.corlib.Ref("System.MulticastDelegate")
	}
	for _, iface := range spec.Interfaces {
		typ.Type.Interfaces = append(typ.Type.Interfaces, b.typeRef(iface, sc))
	}
	if typ.Is(symbol.TypeKindEnum) {
		typ.Type.Underlying = b.corlib.Keyword("int")
		if spec.Underlying != "" {
			typ.Type.Underlying = b.typeRef(spec.Underlying, sc)
		}
	}
	if typ.Is(symbol.TypeKindDelegate) {
		typ.Type.Delegate = &symbol.MethodInfo{
			MethodKind: symbol.MethodDelegateInvoke,
			ReturnType: b.returnType(spec.Returns, sc),
			Parameters: b.parameters(spec.Parameters, sc),
		}
	}
	b.constraints(typ.TypeParameters, spec.TypeParameters, sc)
	typ.Attributes = b.attributes(spec.Attributes, sc)
	typ.Documentation = documentation(spec.Summary, spec.Doc)
	var previous *symbol.Symbol
	for _, member := range spec.Members {
		if ret := b.member(typ, member, sc, previous); ret != nil && ret.Kind == symbol.KindField {
			previous = ret
		}
	}
}

func (b *builder) constraints(params []*symbol.TypeParameter, specs []*TypeParameter, sc *scope) {
	for i, spec := range specs {
		param := params[i]
		for _, constraint := range spec.Constraints {
			switch strings.Join(strings.Fields(constraint), "") {
			case "class":
				param.ReferenceType = true
			case "class?":
				param.ReferenceType = true
				param.HasReferenceTypeQMark = true
			case "struct":
				param.ValueType = true
			case "unmanaged":
				param.Unmanaged = true
			case "notnull":
				param.NotNull = true
			case "new()":
				param.Constructor = true
			default:
				param.ConstraintTypes = append(param.ConstraintTypes, b.typeRef(constraint, sc))
			}
		}
	}
}

func (b *builder) returnType(text string, sc *scope) *symbol.TypeRef {
	if text == "" || text == "void" || text == "System.Void" {
		return nil
	}
	return b.typeRef(text, sc)
}

func (b *builder) parameters(specs []*Parameter, sc *scope) []*symbol.Parameter {
	var ret []*symbol.Parameter
	for _, spec := range specs {
		param := &symbol.Parameter{
			Name:       spec.Name,
			Type:       b.typeRef(spec.Type, sc),
			IsParams:   spec.Params,
			IsThis:     spec.This,
			Attributes: b.attributes(spec.Attributes, sc),
		}
		refKind, err := symbol.ParseRefKind(spec.RefKind)
		if err != nil {
			b.fail(err)
		}
		param.RefKind = refKind
		if spec.Default != nil {
			param.Default = b.constant(spec.Default, param.Type, sc)
		}
		ret = append(ret, param)
	}
	return ret
}

func (b *builder) member(typ *symbol.Symbol, spec *Member, sc *scope, previous *symbol.Symbol) *symbol.Symbol {
	ret := &symbol.Symbol{
		Name:          spec.Name,
		Accessibility: b.accessibility(spec.Accessibility),
		Modifiers:     b.modifiers(spec.Modifiers),
		Implicit:      spec.Implicit,
		Documentation: documentation(spec.Summary, spec.Doc),
	}
	switch spec.Kind {
	case "field":
		ret.Kind = symbol.KindField
		b.field(typ, ret, spec, sc, previous)
	case "property", "indexer":
		ret.Kind = symbol.KindProperty
		if spec.Kind == "indexer" && ret.Name == "" {
			ret.Name = "Item"
		}
		ret.Property = &symbol.PropertyInfo{Type: b.typeRef(spec.Type, sc), Parameters: b.parameters(spec.Parameters, sc)}
		if spec.ExplicitInterface != "" {
			ret.Property.ExplicitInterface = b.typeRef(spec.ExplicitInterface, sc)
		}
	case "method", "constructor":
		ret.Kind = symbol.KindMethod
		b.method(ret, spec, sc)
	case "event":
		ret.Kind = symbol.KindEvent
		ret.Event = &symbol.EventInfo{Type: b.typeRef(spec.Type, sc)}
		if spec.ExplicitInterface != "" {
			ret.Event.ExplicitInterface = b.typeRef(spec.ExplicitInterface, sc)
		}
	default:
		b.fail(errors.Errorf("member %v.%v kind %q: %w", typ.FullMetadataName(), spec.Name, spec.Kind, symbol.ErrUnknownValue))
		return nil
	}
	if ret.Name == "" {
		b.fail(errors.Errorf("member of %v has no name", typ.FullMetadataName()))
		return nil
	}
	typ.AddMember(ret)
	ret.Attributes = b.attributes(spec.Attributes, sc)
	switch ret.Kind {
	case symbol.KindProperty:
		if spec.Getter != "" {
			ret.Property.Getter = b.accessor(ret, "get_", symbol.MethodPropertyGet, spec.Getter)
			ret.Property.Getter.Method.ReturnType = ret.Property.Type
			ret.Property.Getter.Method.Parameters = ret.Property.Parameters
		}
		if spec.Setter != "" {
			ret.Property.Setter = b.accessor(ret, "set_", symbol.MethodPropertySet, spec.Setter)
			ret.Property.Setter.Method.Parameters = append(append([]*symbol.Parameter{}, ret.Property.Parameters...), &symbol.Parameter{Name: "value", Type: ret.Property.Type})
			ret.Property.Setter.Method.IsInitOnly = spec.InitOnly
		}
	case symbol.KindEvent:
		ret.Event.Adder = b.accessor(ret, "add_", symbol.MethodEventAdd, spec.Accessibility)
		ret.Event.Remover = b.accessor(ret, "remove_", symbol.MethodEventRemove, spec.Accessibility)
		for _, accessor := range []*symbol.Symbol{ret.Event.Adder, ret.Event.Remover} {
			accessor.Implicit = true
			accessor.Method.Parameters = []*symbol.Parameter{{Name: "value", Type: ret.Event.Type}}
		}
	}
	return ret
}

// field fills a field payload, enum fields are constants of the enum type numbered after the previous field
func (b *builder) field(typ, ret *symbol.Symbol, spec *Member, sc *scope, previous *symbol.Symbol) {
	ret.Field = &symbol.FieldInfo{}
	if !typ.Is(symbol.TypeKindEnum) {
		ret.Field.Type = b.typeRef(spec.Type, sc)
		if ret.Modifiers.Has(symbol.ModifierConst) {
			ret.Modifiers |= symbol.ModifierStatic
			if spec.Value != nil {
				ret.Field.Constant = b.constant(spec.Value, ret.Field.Type, sc)
			}
		}
		return
	}
	ret.Field.Type = symbol.Named(typ)
	ret.Modifiers |= symbol.ModifierConst | symbol.ModifierStatic
	if spec.Value != nil {
		ret.Field.Constant = b.constant(spec.Value, ret.Field.Type, sc)
		return
	}
	value := int64(0)
	if previous != nil && previous.Field.Constant != nil {
		if v, ok := previous.Field.Constant.Int64(); ok {
			value = v + 1
		}
	}
	ret.Field.Constant = symbol.EnumValue(ret.Field.Type, value)
}

func (b *builder) method(ret *symbol.Symbol, spec *Member, sc *scope) {
	kind, err := symbol.ParseMethodKind(spec.MethodKind)
	if err != nil {
		b.fail(err)
	}
	if spec.Kind == "constructor" {
		kind = symbol.MethodConstructor
		ret.Name = ".ctor"
		if ret.Modifiers.Has(symbol.ModifierStatic) {
			kind = symbol.MethodStaticConstructor
			ret.Name = ".cctor"
		}
	}
	ret.TypeParameters = b.typeParameters(spec.TypeParameters)
	inner := sc.withTypeParameters(ret.TypeParameters)
	ret.Method = &symbol.MethodInfo{
		MethodKind:  kind,
		ReturnType:  b.returnType(spec.Returns, inner),
		Parameters:  b.parameters(spec.Parameters, inner),
		IsExtension: spec.Extension,
	}
	if spec.ExplicitInterface != "" {
		ret.Method.ExplicitInterface = b.typeRef(spec.ExplicitInterface, inner)
		if spec.MethodKind == "" {
			ret.Method.MethodKind = symbol.MethodExplicitInterfaceImplementation
		}
	}
	b.constraints(ret.TypeParameters, spec.TypeParameters, inner)
}

func (b *builder) accessor(owner *symbol.Symbol, prefix string, kind symbol.MethodKind, accessibility string) *symbol.Symbol {
	return &symbol.Symbol{
		Name:          prefix + owner.Name,
		Kind:          symbol.KindMethod,
		Accessibility: b.accessibility(accessibility),
		Modifiers:     owner.Modifiers,
		Containing:    owner.Containing,
		Assembly:      owner.Assembly,
		Method:        &symbol.MethodInfo{MethodKind: kind},
	}
}

func (b *builder) attributes(specs []*Attribute, sc *scope) []*symbol.Attribute {
	var ret []*symbol.Attribute
	for _, spec := range specs {
		class := b.typeRef(spec.Type, sc)
		if class.Def == nil {
			continue
		}
		attribute := &symbol.Attribute{Class: class.Def}
		for _, argument := range spec.Arguments {
			attribute.Arguments = append(attribute.Arguments, b.constant(argument, nil, sc))
		}
		for _, named := range spec.Named {
			value := named.Constant
			attribute.NamedArguments = append(attribute.NamedArguments, symbol.NamedArgument{
				Name:  named.Name,
				Value: b.constant(&value, memberType(class.Def, named.Name), sc),
			})
		}
		ret = append(ret, attribute)
	}
	return ret
}

// memberType returns the type of a property or field of typ or its base types
func memberType(typ *symbol.Symbol, name string) *symbol.TypeRef {
	for depth := 0; typ != nil && depth < 32; depth++ {
		for _, member := range typ.LookupMembers(name) {
			switch {
			case member.Property != nil:
				return member.Property.Type
			case member.Field != nil:
				return member.Field.Type
			}
		}
		if typ.Type == nil || typ.Type.BaseType == nil {
			return nil
		}
		typ = typ.Type.BaseType.Def
	}
	return nil
}

func documentation(summary string, elements []*DocElement) *symbol.Documentation {
	ret := &symbol.Documentation{}
	if summary != "" {
		ret.Elements = append(ret.Elements, &symbol.DocElement{Name: "summary", Text: symbol.NormalizeDocText(summary)})
	}
	for _, element := range elements {
		item := &symbol.DocElement{Name: element.Name, Text: symbol.NormalizeDocText(element.Text)}
		names := make([]string, 0, len(element.Attributes))
		for name := range element.Attributes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			item.Attributes = append(item.Attributes, symbol.DocAttribute{Name: name, Value: element.Attributes[name]})
		}
		ret.Elements = append(ret.Elements, item)
	}
	if ret.IsEmpty() {
		return nil
	}
	return ret
}
