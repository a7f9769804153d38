package csharp

import (
	"strings"

	"github.com/viant/symdef/symbol"
)

// unresolvedAssembly holds placeholder classes of attributes that cannot be found
const unresolvedAssembly = "unresolved"

// reference represents a type reference awaiting resolution
type reference struct {
	ref   *symbol.TypeRef
	text  string
	scope *scope
}

// resolver finds types of the parsed assembly and the framework assembly
type resolver struct {
	corlib     *symbol.Corlib
	assembly   *symbol.Assembly
	unresolved *symbol.Assembly
	references []*reference
}

func newResolver(corlib *symbol.Corlib, assembly *symbol.Assembly) *resolver {
	return &resolver{corlib: corlib, assembly: assembly, unresolved: symbol.NewAssembly(unresolvedAssembly)}
}

// typeRef returns a reference that is filled in once all declarations are known
func (r *resolver) typeRef(text string, sc *scope) *symbol.TypeRef {
	text = strings.TrimSpace(text)
	ret := symbol.Unresolved(text)
	r.references = append(r.references, &reference{ref: ret, text: text, scope: sc})
	return ret
}

func (r *resolver) resolveReferences() {
	for _, item := range r.references {
		if resolved := r.resolve(item.text, item.scope); resolved != nil {
			*item.ref = *resolved
		}
	}
	r.references = nil
}

// resolve returns a reference for type syntax, unknown names keep their source text
func (r *resolver) resolve(text string, sc *scope) *symbol.TypeRef {
	name, err := parseTypeName(text)
	if err != nil {
		return symbol.Unresolved(text)
	}
	return r.resolveName(name, text, sc)
}

func (r *resolver) resolveName(name *typeName, text string, sc *scope) *symbol.TypeRef {
	switch name.shape {
	case shapeArray:
		return symbol.ArrayOf(r.resolveName(name.element, "", sc), name.rank)
	case shapePointer:
		return symbol.PointerTo(r.resolveName(name.element, "", sc))
	case shapeNullable:
		ret := r.resolveName(name.element, "", sc)
		ret.Nullable = true
		return ret
	case shapeTuple:
		if text == "" {
			text = name.String()
		}
		return symbol.Unresolved(text)
	}
	if name.simple() {
		single := name.segments[0].name
		if ref := r.corlib.Keyword(single); ref != nil {
			return ref
		}
		if sc.isTypeParam(single) {
			return symbol.TypeParameterRef(single)
		}
	}
	def := r.lookup(name, sc)
	if def == nil {
		if text == "" {
			text = name.String()
		}
		return symbol.Unresolved(text)
	}
	last := name.segments[len(name.segments)-1]
	var arguments []*symbol.TypeRef
	for _, argument := range last.arguments {
		if argument == nil {
			continue
		}
		arguments = append(arguments, r.resolveName(argument, "", sc))
	}
	return symbol.Named(def, arguments...)
}

// lookup finds the type named by qualified syntax, searching containing types, namespaces, aliases and usings
func (r *resolver) lookup(name *typeName, sc *scope) *symbol.Symbol {
	first := name.segments[0]
	rest := name.segments[1:]
	if name.alias != "" && name.alias != "global" {
		if target, ok := sc.aliases[name.alias]; ok {
			return r.lookupIn(r.namespaces(target), name.segments)
		}
		return nil
	}
	if name.alias == "global" {
		return r.lookupIn([]*symbol.Symbol{r.assembly.Global, r.corlib.Assembly.Global}, name.segments)
	}
	for i := len(sc.types) - 1; i >= 0; i-- {
		if typ := r.nested(sc.types[i], first); typ != nil {
			return r.lookupIn([]*symbol.Symbol{typ}, rest)
		}
	}
	for ns := sc.namespace; ns != nil; ns = ns.Containing {
		if ret := r.lookupIn(r.namespaces(ns.QualifiedName()), name.segments); ret != nil {
			return ret
		}
	}
	if sc.namespace == nil {
		if ret := r.lookupIn(r.namespaces(""), name.segments); ret != nil {
			return ret
		}
	}
	if target, ok := sc.aliases[first.name]; ok {
		if alias := r.resolve(target, &scope{}); alias.Def != nil && len(rest) == 0 {
			return alias.Def
		}
		if ret := r.lookupIn(r.namespaces(target), rest); ret != nil {
			return ret
		}
	}
	for _, using := range sc.usings {
		if ret := r.lookupIn(r.namespaces(using), name.segments); ret != nil {
			return ret
		}
	}
	return nil
}

// nested returns a nested type of typ or of its base types
func (r *resolver) nested(typ *symbol.Symbol, seg *segment) *symbol.Symbol {
	for depth := 0; typ != nil && depth < 32; depth++ {
		if ret := typ.LookupType(seg.name, len(seg.arguments)); ret != nil {
			return ret
		}
		if typ.Type == nil || typ.Type.BaseType == nil {
			return nil
		}
		typ = typ.Type.BaseType.Def
	}
	return nil
}

// lookupIn resolves segments against candidate containers, a leading namespace segment descends into the namespace
func (r *resolver) lookupIn(containers []*symbol.Symbol, segments []*segment) *symbol.Symbol {
	if len(segments) == 0 {
		for _, container := range containers {
			if container.Kind == symbol.KindType {
				return container
			}
		}
		return nil
	}
	seg := segments[0]
	for _, container := range containers {
		if typ := container.LookupType(seg.name, len(seg.arguments)); typ != nil {
			if ret := r.lookupIn([]*symbol.Symbol{typ}, segments[1:]); ret != nil {
				return ret
			}
		}
		if container.Kind != symbol.KindNamespace || len(seg.arguments) > 0 {
			continue
		}
		if ns := container.LookupNamespace(seg.name); ns != nil {
			if ret := r.lookupIn([]*symbol.Symbol{ns}, segments[1:]); ret != nil {
				return ret
			}
		}
	}
	return nil
}

// namespaces returns namespaces of the given dotted name in the parsed and the framework assembly
func (r *resolver) namespaces(dotted string) []*symbol.Symbol {
	var ret []*symbol.Symbol
	for _, global := range []*symbol.Symbol{r.assembly.Global, r.corlib.Assembly.Global} {
		if ns := findNamespace(global, dotted); ns != nil {
			ret = append(ret, ns)
		}
	}
	return ret
}

func findNamespace(global *symbol.Symbol, dotted string) *symbol.Symbol {
	ns := global
	if dotted == "" {
		return ns
	}
	for _, name := range strings.Split(dotted, ".") {
		if ns = ns.LookupNamespace(name); ns == nil {
			return nil
		}
	}
	return ns
}

// attributeClass resolves an attribute name trying the Attribute suffix first, unknown classes get a placeholder
func (r *resolver) attributeClass(text string, sc *scope) *symbol.Symbol {
	text = strings.Join(strings.Fields(text), "")
	candidates := []string{text}
	if !strings.HasSuffix(text, "Attribute") {
		candidates = []string{text + "Attribute", text}
	}
	for _, candidate := range candidates {
		if ref := r.resolve(candidate, sc); ref.Kind == symbol.TypeRefNamed && ref.Def != nil {
			return ref.Def
		}
	}
	return r.placeholder(candidates[0])
}

func (r *resolver) placeholder(text string) *symbol.Symbol {
	text = strings.TrimPrefix(text, "global::")
	idx := strings.LastIndexByte(text, '.')
	ns := r.unresolved.Global
	if idx != -1 {
		ns = r.unresolved.Namespace(text[:idx])
	}
	name := text[idx+1:]
	if ret := ns.LookupType(name, 0); ret != nil {
		return ret
	}
	ret := ns.AddMember(symbol.NewType(name, symbol.TypeKindClass, symbol.AccessibilityPublic))
	ret.Type.BaseType = r.corlib.Ref("System.Attribute")
	return ret
}

// String returns normalized type syntax
func (t *typeName) String() string {
	builder := strings.Builder{}
	t.write(&builder)
	return builder.String()
}

func (t *typeName) write(builder *strings.Builder) {
	switch t.shape {
	case shapeArray:
		t.element.write(builder)
		builder.WriteString("[" + strings.Repeat(",", t.rank-1) + "]")
		return
	case shapePointer:
		t.element.write(builder)
		builder.WriteString("*")
		return
	case shapeNullable:
		t.element.write(builder)
		builder.WriteString("?")
		return
	case shapeTuple:
		builder.WriteString("(")
		for i, element := range t.elements {
			if i > 0 {
				builder.WriteString(", ")
			}
			element.write(builder)
		}
		builder.WriteString(")")
		return
	}
	if t.alias != "" {
		builder.WriteString(t.alias + "::")
	}
	for i, seg := range t.segments {
		if i > 0 {
			builder.WriteString(".")
		}
		builder.WriteString(seg.name)
		if len(seg.arguments) == 0 {
			continue
		}
		builder.WriteString("<")
		for j, argument := range seg.arguments {
			if j > 0 {
				builder.WriteString(", ")
			}
			if argument != nil {
				argument.write(builder)
			}
		}
		builder.WriteString(">")
	}
}
