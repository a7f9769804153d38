package display

import (
	"slices"
	"strings"

	"github.com/viant/symdef/compare"
	"github.com/viant/symdef/symbol"
)

// DefinitionParts renders a symbol definition: attributes, signature, base list, constraints,
// accessor and parameter attributes, one parameter per line and default literals as configured by format
func DefinitionParts(s *symbol.Symbol, format *Format) (Parts, error) {
	r := newRenderer(format, s)
	if err := r.signature(s); err != nil {
		return nil, err
	}
	f := r.format
	parts := r.parts

	var attributes []*symbol.Attribute
	if f.Options.Has(OptionIncludeAttributes) {
		attributes = f.visibleAttributes(s.Attributes)
	}
	baseType, interfaces := baseList(s, f)
	baseListCount := len(interfaces)
	if baseType != nil {
		baseListCount++
	}
	whereIndex, constraintCount := -1, 0
	for i, part := range parts {
		if part.IsKeyword("where") {
			if whereIndex == -1 {
				whereIndex = i
			}
			constraintCount++
		}
	}
	params := s.Parameters()
	if len(attributes) == 0 && baseListCount == 0 && constraintCount == 0 &&
		(!f.Options.Has(OptionFormatParameters) || len(params) <= 1) &&
		(!f.Options.Has(OptionPreferDefaultLiteral) || !hasDefaultValue(params)) &&
		(!f.Options.Has(OptionIncludeAccessorAttributes) || s.Kind != symbol.KindProperty && s.Kind != symbol.KindEvent) &&
		(!f.Options.Has(OptionIncludeParameterAttributes) || len(params) == 0) {
		return parts, nil
	}

	b := &renderer{format: f, context: s}
	formatConstraints := f.Options.Has(OptionFormatConstraints) && (baseListCount > 1 || constraintCount > 1)
	switch {
	case baseListCount > 0:
		if whereIndex != -1 {
			b.add(parts[:whereIndex]...)
		} else {
			b.add(parts...)
			b.space()
		}
		b.punctuation(":")
		b.space()
		refs := interfaces
		if baseType != nil {
			refs = append([]*symbol.TypeRef{baseType}, interfaces...)
		}
		for i, ref := range refs {
			if i > 0 {
				b.punctuation(",")
				if f.Options.Has(OptionFormatBaseList) {
					b.lineBreak()
					b.indentation(f.indentChars())
				} else {
					b.space()
				}
			}
			b.typeRef(ref)
		}
		if whereIndex != -1 && !formatConstraints {
			b.space()
		}
	case whereIndex != -1:
		b.add(parts[:whereIndex]...)
	default:
		b.add(parts...)
	}
	if whereIndex != -1 {
		for _, part := range parts[whereIndex:] {
			if part.IsKeyword("where") && formatConstraints {
				b.lineBreak()
				b.indentation(f.indentChars())
			}
			b.add(part)
		}
	}
	parts = b.parts

	var err error
	if f.Options.Has(OptionIncludeAccessorAttributes) {
		switch s.Kind {
		case symbol.KindProperty:
			if parts, err = addAccessorAttributes(parts, s.Property.Getter, "get", f, s); err != nil {
				return nil, err
			}
			if parts, err = addAccessorAttributes(parts, s.Property.Setter, s.Property.SetterKeyword(), f, s); err != nil {
				return nil, err
			}
		case symbol.KindEvent:
			if parts, err = addEventAccessorAttributes(parts, s, f); err != nil {
				return nil, err
			}
		}
	}
	if f.Options.Has(OptionIncludeParameterAttributes) && len(params) > 0 {
		if parts, err = addParameterAttributes(parts, s, params, f); err != nil {
			return nil, err
		}
	}
	if f.Options.Has(OptionFormatParameters) && len(params) > 1 {
		parts = FormatParameters(s, parts, f.indentChars())
	}
	if f.Options.Has(OptionPreferDefaultLiteral) && hasDefaultValue(params) {
		parts = ReplaceDefaultExpression(s, parts)
	}
	if len(attributes) > 0 {
		prefix, err := attributeList(attributes, f, s, true, f.Options.Has(OptionFormatAttributes))
		if err != nil {
			return nil, err
		}
		parts = append(prefix, parts...)
	}
	return parts, nil
}

func hasDefaultValue(params []*symbol.Parameter) bool {
	for _, param := range params {
		if param.HasExplicitDefaultValue() {
			return true
		}
	}
	return false
}

// baseList returns base type and interfaces written in a type definition
func baseList(s *symbol.Symbol, f *Format) (*symbol.TypeRef, []*symbol.TypeRef) {
	if s.Kind != symbol.KindType || s.Type == nil || f.Declaration&DeclarationBaseList == 0 {
		return nil, nil
	}
	var baseType *symbol.TypeRef
	if f.Declaration&DeclarationBaseType != 0 && s.Is(symbol.TypeKindClass, symbol.TypeKindInterface) {
		baseType = s.Type.BaseType
		if baseType != nil && baseType.SpecialType() == symbol.SpecialObject {
			baseType = nil
		}
	}
	if f.Declaration&DeclarationInterfaces == 0 {
		return baseType, nil
	}
	interfaces := slices.Clone(s.Type.Interfaces)
	if f.Options.Has(OptionOmitIEnumerable) && slices.ContainsFunc(interfaces, func(ref *symbol.TypeRef) bool {
		return ref.SpecialType() == symbol.SpecialIEnumerableT
	}) {
		interfaces = slices.DeleteFunc(interfaces, func(ref *symbol.TypeRef) bool {
			return ref.SpecialType() == symbol.SpecialIEnumerable
		})
	}
	omitNamespaces := f.Namespaces == NamespaceOmitted
	slices.SortStableFunc(interfaces, func(x, y *symbol.TypeRef) int {
		if omitNamespaces {
			if ret := strings.Compare(nameWithoutNamespace(x), nameWithoutNamespace(y)); ret != 0 {
				return ret
			}
		}
		return compare.SystemNamespaceFirst.CompareTypeRefs(x, y)
	})
	return baseType, interfaces
}

func nameWithoutNamespace(ref *symbol.TypeRef) string {
	if ref == nil || ref.Def == nil {
		if ref == nil {
			return ""
		}
		return ref.Name
	}
	var names []string
	for _, containing := range ref.Def.ContainingTypes() {
		names = append(names, containing.Name)
	}
	return strings.Join(append(names, ref.Def.Name), ".")
}

// sortedAttributes orders attributes by class, System namespace first or by name when namespaces are omitted
func sortedAttributes(attributes []*symbol.Attribute, f *Format) []*symbol.Attribute {
	ret := slices.Clone(attributes)
	omitNamespaces := f.Namespaces == NamespaceOmitted
	slices.SortStableFunc(ret, func(x, y *symbol.Attribute) int {
		if omitNamespaces {
			if c := strings.Compare(nameWithoutNamespace(symbol.Named(x.Class)), nameWithoutNamespace(symbol.Named(y.Class))); c != 0 {
				return c
			}
		}
		return compare.SystemNamespaceFirst.Compare(x.Class, y.Class)
	})
	return ret
}

// Attributes renders visible attributes of s as [A, B], or one bracket per attribute when split is set
func Attributes(attributes []*symbol.Attribute, format *Format, context *symbol.Symbol, trailingLineBreak, split bool) (Parts, error) {
	if format == nil {
		format = Definition(NameOnly)
	}
	return attributeList(format.visibleAttributes(attributes), format, context, trailingLineBreak, split)
}

func attributeList(attributes []*symbol.Attribute, f *Format, context *symbol.Symbol, trailingLineBreak, split bool) (Parts, error) {
	if len(attributes) == 0 {
		return nil, nil
	}
	r := &renderer{format: f, context: context}
	r.punctuation("[")
	for i, attribute := range sortedAttributes(attributes, f) {
		if i > 0 {
			if split {
				r.punctuation("]")
				if trailingLineBreak {
					r.lineBreak()
				} else {
					r.space()
				}
				r.punctuation("[")
			} else {
				r.punctuation(",")
				r.space()
			}
		}
		if err := r.attribute(attribute); err != nil {
			return nil, err
		}
	}
	r.punctuation("]")
	if trailingLineBreak {
		r.lineBreak()
	}
	return r.parts, nil
}

// Attribute renders an attribute without brackets: (qualified) name without the Attribute suffix and its arguments
func Attribute(attribute *symbol.Attribute, format *Format, context *symbol.Symbol) (Parts, error) {
	r := newRenderer(format, context)
	if err := r.attribute(attribute); err != nil {
		return nil, err
	}
	return r.parts, nil
}

func (r *renderer) attribute(attribute *symbol.Attribute) error {
	r.typeRef(symbol.Named(attribute.Class))
	if last := r.last(); last != nil && last.Symbol == attribute.Class {
		last.Text = symbol.TrimAttributeSuffix(last.Text)
	}
	if !r.format.Options.Has(OptionIncludeAttributeArguments) || !attribute.HasArguments() {
		return nil
	}
	r.punctuation("(")
	for i, argument := range attribute.Arguments {
		if i > 0 {
			r.punctuation(",")
			r.space()
		}
		if err := r.constant(argument, nil); err != nil {
			return err
		}
	}
	for i, argument := range attribute.NamedArguments {
		if i > 0 || len(attribute.Arguments) > 0 {
			r.punctuation(",")
			r.space()
		}
		r.name(PartPropertyName, argument.Name, nil)
		r.space()
		r.punctuation("=")
		r.space()
		if err := r.constant(argument.Value, nil); err != nil {
			return err
		}
	}
	r.punctuation(")")
	return nil
}

// addAccessorAttributes inserts accessor attributes before the accessor keyword
func addAccessorAttributes(parts Parts, accessor *symbol.Symbol, keyword string, f *Format, context *symbol.Symbol) (Parts, error) {
	if accessor == nil {
		return parts, nil
	}
	attributes, err := attributeList(f.visibleAttributes(accessor.Attributes), f, context, false, false)
	if err != nil || len(attributes) == 0 {
		return parts, err
	}
	index := parts.IndexOfKeyword(keyword)
	if index == -1 {
		return parts, nil
	}
	return parts.Insert(index, append(attributes, spacePart)...), nil
}

// addEventAccessorAttributes appends an accessor list when add or remove accessors carry visible attributes
func addEventAccessorAttributes(parts Parts, s *symbol.Symbol, f *Format) (Parts, error) {
	var adder, remover Parts
	var err error
	if s.Event.Adder != nil {
		if adder, err = attributeList(f.visibleAttributes(s.Event.Adder.Attributes), f, s, false, false); err != nil {
			return nil, err
		}
	}
	if s.Event.Remover != nil {
		if remover, err = attributeList(f.visibleAttributes(s.Event.Remover.Attributes), f, s, false, false); err != nil {
			return nil, err
		}
	}
	if len(adder) == 0 && len(remover) == 0 {
		return parts, nil
	}
	b := &renderer{format: f, context: s}
	b.add(parts...)
	b.space()
	b.punctuation("{")
	b.space()
	for _, accessor := range []struct {
		attributes Parts
		keyword    string
	}{{adder, "add"}, {remover, "remove"}} {
		if len(accessor.attributes) > 0 {
			b.add(accessor.attributes...)
			b.space()
		}
		b.keyword(accessor.keyword)
		b.punctuation(";")
		b.space()
	}
	b.punctuation("}")
	return b.parts, nil
}
