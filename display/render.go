package display

import (
	"strings"

	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

// ErrUnsupportedSymbol is returned for symbols without a renderable payload
var ErrUnsupportedSymbol = errors.New("unsupported symbol")

type renderer struct {
	builder
	format  *Format
	context *symbol.Symbol // Symbol being rendered
}

func newRenderer(format *Format, context *symbol.Symbol) *renderer {
	if format == nil {
		format = Definition(NameOnly)
	}
	return &renderer{format: format, context: context}
}

// Signature renders a symbol declaration without attributes and base list
func Signature(s *symbol.Symbol, format *Format) (Parts, error) {
	r := newRenderer(format, s)
	if err := r.signature(s); err != nil {
		return nil, err
	}
	return r.parts, nil
}

// TypeName renders a reference to a named type the way type references are written in definitions of context
func TypeName(ref *symbol.TypeRef, format *Format, context *symbol.Symbol) Parts {
	r := newRenderer(format, context)
	r.typeRef(ref)
	return r.parts
}

func (r *renderer) signature(s *symbol.Symbol) error {
	switch s.Kind {
	case symbol.KindNamespace:
		r.namespace(s)
		return nil
	case symbol.KindType:
		if s.Type == nil {
			return errors.Errorf("type %v: %w", s.Name, ErrUnsupportedSymbol)
		}
		return r.typeDeclaration(s)
	case symbol.KindMethod:
		if s.Method == nil {
			return errors.Errorf("method %v: %w", s.Name, ErrUnsupportedSymbol)
		}
		return r.method(s)
	case symbol.KindProperty:
		if s.Property == nil {
			return errors.Errorf("property %v: %w", s.Name, ErrUnsupportedSymbol)
		}
		return r.property(s)
	case symbol.KindField:
		if s.Field == nil {
			return errors.Errorf("field %v: %w", s.Name, ErrUnsupportedSymbol)
		}
		return r.field(s)
	case symbol.KindEvent:
		if s.Event == nil {
			return errors.Errorf("event %v: %w", s.Name, ErrUnsupportedSymbol)
		}
		r.event(s)
		return nil
	}
	return errors.Errorf("symbol kind %v: %w", s.Kind, ErrUnsupportedSymbol)
}

func (r *renderer) namespace(s *symbol.Symbol) {
	if s.IsGlobalNamespace() {
		return
	}
	if r.format.NamespaceKeyword {
		r.keyword("namespace")
		r.space()
	}
	r.namespaceNames(s)
}

func (r *renderer) namespaceNames(s *symbol.Symbol) {
	var chain []*symbol.Symbol
	for ns := s; ns != nil && !ns.IsGlobalNamespace(); ns = ns.Containing {
		chain = append(chain, ns)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		r.name(PartNamespaceName, chain[i].Name, chain[i])
		if i > 0 {
			r.punctuation(".")
		}
	}
}

func (r *renderer) accessibility(a symbol.Accessibility) {
	keyword := a.Keyword()
	if keyword == "" {
		return
	}
	for _, item := range strings.Fields(keyword) {
		r.keyword(item)
		r.space()
	}
}

func (r *renderer) typeModifiers(s *symbol.Symbol) {
	var keywords []string
	switch s.TypeKind() {
	case symbol.TypeKindClass:
		switch {
		case s.IsStatic():
			keywords = append(keywords, "static")
		case s.Modifiers.Has(symbol.ModifierAbstract):
			keywords = append(keywords, "abstract")
		case s.Modifiers.Has(symbol.ModifierSealed):
			keywords = append(keywords, "sealed")
		}
	case symbol.TypeKindStruct:
		if s.Modifiers.Has(symbol.ModifierReadOnly) {
			keywords = append(keywords, "readonly")
		}
	}
	for _, keyword := range keywords {
		r.keyword(keyword)
		r.space()
	}
}

var hiddenMemberModifiers = symbol.ModifierNew | symbol.ModifierPartial | symbol.ModifierAsync | symbol.ModifierUnsafe

func (r *renderer) memberModifiers(s *symbol.Symbol) {
	modifiers := s.Modifiers &^ hiddenMemberModifiers
	if containing := s.ContainingType(); containing != nil && containing.Is(symbol.TypeKindInterface) {
		modifiers &^= symbol.ModifierAbstract | symbol.ModifierVirtual
	}
	if modifiers.Has(symbol.ModifierConst) {
		modifiers &^= symbol.ModifierStatic
	}
	for _, keyword := range modifiers.Keywords() {
		r.keyword(keyword)
		r.space()
	}
}

func (r *renderer) typeDeclaration(s *symbol.Symbol) error {
	f := r.format
	if f.Declaration&DeclarationAccessibility != 0 {
		r.accessibility(s.Accessibility)
	}
	if f.Declaration&DeclarationModifiers != 0 {
		r.typeModifiers(s)
	}
	r.keyword(s.TypeKind().String())
	r.space()
	if s.Is(symbol.TypeKindDelegate) {
		invoke := s.Type.Delegate
		if invoke == nil {
			invoke = &symbol.MethodInfo{MethodKind: symbol.MethodDelegateInvoke}
		}
		r.returnType(invoke.ReturnType)
		r.space()
		r.ownTypeName(s)
		r.punctuation("(")
		if err := r.parameters(invoke.Parameters); err != nil {
			return err
		}
		r.punctuation(")")
		r.constraints(s.TypeParameters)
		return nil
	}
	r.ownTypeName(s)
	r.constraints(s.TypeParameters)
	return nil
}

// ownTypeName writes the name of the rendered type following the format qualification
func (r *renderer) ownTypeName(s *symbol.Symbol) {
	switch r.format.Qualification {
	case NameAndContainingTypesAndNamespaces:
		if ns := s.ContainingNamespace(); ns != nil && !ns.IsGlobalNamespace() {
			r.namespaceNames(ns)
			r.punctuation(".")
		}
		fallthrough
	case NameAndContainingTypes:
		for _, containing := range s.ContainingTypes() {
			r.name(typeNameKind(containing), containing.Name, containing)
			r.typeParameters(containing.TypeParameters, false)
			r.punctuation(".")
		}
	}
	r.name(typeNameKind(s), s.Name, s)
	r.typeParameters(s.TypeParameters, r.format.Generics&GenericsVariance != 0)
}

func (r *renderer) typeParameters(params []*symbol.TypeParameter, variance bool) {
	if len(params) == 0 || r.format.Generics&GenericsTypeParameters == 0 {
		return
	}
	r.punctuation("<")
	for i, param := range params {
		if i > 0 {
			r.punctuation(",")
			r.space()
		}
		if variance {
			switch param.Variance {
			case symbol.VarianceIn:
				r.keyword("in")
				r.space()
			case symbol.VarianceOut:
				r.keyword("out")
				r.space()
			}
		}
		r.name(PartTypeParameterName, param.Name, nil)
	}
	r.punctuation(">")
}

func (r *renderer) constraints(params []*symbol.TypeParameter) {
	if r.format.Generics&GenericsConstraints == 0 {
		return
	}
	for _, param := range params {
		if !param.HasConstraints() {
			continue
		}
		r.space()
		r.keyword("where")
		r.space()
		r.name(PartTypeParameterName, param.Name, nil)
		r.space()
		r.punctuation(":")
		r.space()
		count := 0
		next := func() {
			if count > 0 {
				r.punctuation(",")
				r.space()
			}
			count++
		}
		switch {
		case param.ReferenceType:
			next()
			r.keyword("class")
			if param.HasReferenceTypeQMark {
				r.punctuation("?")
			}
		case param.Unmanaged:
			next()
			r.keyword("unmanaged")
		case param.ValueType:
			next()
			r.keyword("struct")
		case param.NotNull:
			next()
			r.keyword("notnull")
		}
		for _, constraint := range param.ConstraintTypes {
			next()
			r.typeRef(constraint)
		}
		if param.Constructor {
			next()
			r.keyword("new")
			r.punctuation("(")
			r.punctuation(")")
		}
	}
}

func (r *renderer) returnType(ref *symbol.TypeRef) {
	if ref == nil || ref.SpecialType() == symbol.SpecialVoid {
		r.keyword("void")
		return
	}
	r.typeRef(ref)
}

// includesNamespace returns true if a reference to a type in ns is written with its namespace
func (r *renderer) includesNamespace(ns *symbol.Symbol) bool {
	if ns == nil || ns.IsGlobalNamespace() {
		return false
	}
	switch r.format.Namespaces {
	case NamespaceOmitted:
		return false
	case NamespaceOmittedAsContaining:
		if r.context == nil {
			return true
		}
		name := ns.FullMetadataName()
		for c := r.context.ContainingNamespace(); c != nil && !c.IsGlobalNamespace(); c = c.ContainingNamespace() {
			if c.FullMetadataName() == name {
				return false
			}
		}
	}
	return true
}

func (r *renderer) typeRef(ref *symbol.TypeRef) {
	if ref == nil {
		r.name(PartErrorTypeName, "?", nil)
		return
	}
	switch ref.Kind {
	case symbol.TypeRefArray:
		r.typeRef(ref.Element)
		r.punctuation("[")
		for i := 1; i < ref.Rank; i++ {
			r.punctuation(",")
		}
		r.punctuation("]")
	case symbol.TypeRefPointer:
		r.typeRef(ref.Element)
		r.punctuation("*")
	case symbol.TypeRefTypeParameter:
		r.name(PartTypeParameterName, ref.Name, nil)
	default:
		r.namedTypeRef(ref)
	}
	if ref.Nullable {
		r.punctuation("?")
	}
}

func (r *renderer) namedTypeRef(ref *symbol.TypeRef) {
	def := ref.Def
	if def == nil {
		r.name(PartErrorTypeName, ref.Name, nil)
		r.typeArguments(ref.Arguments)
		return
	}
	if keyword := symbol.SpecialTypeOf(def).Keyword(); keyword != "" {
		r.parts = append(r.parts, Part{Kind: PartKeyword, Text: keyword, Symbol: def})
		return
	}
	if r.includesNamespace(def.ContainingNamespace()) {
		r.namespaceNames(def.ContainingNamespace())
		r.punctuation(".")
	}
	containing := def.ContainingTypes()
	arguments := ref.Arguments
	total := def.Arity()
	for _, c := range containing {
		total += c.Arity()
	}
	distribute := len(arguments) == total && total > def.Arity()
	for _, c := range containing {
		r.name(typeNameKind(c), c.Name, c)
		if distribute {
			r.typeArguments(arguments[:c.Arity()])
			arguments = arguments[c.Arity():]
		} else {
			r.typeParameters(c.TypeParameters, false)
		}
		r.punctuation(".")
	}
	r.name(typeNameKind(def), def.Name, def)
	switch {
	case len(arguments) > 0:
		r.typeArguments(arguments)
	case def.Arity() > 0:
		r.typeParameters(def.TypeParameters, false)
	}
}

func (r *renderer) typeArguments(arguments []*symbol.TypeRef) {
	if len(arguments) == 0 {
		return
	}
	r.punctuation("<")
	for i, argument := range arguments {
		if i > 0 {
			r.punctuation(",")
			r.space()
		}
		r.typeRef(argument)
	}
	r.punctuation(">")
}

func (r *renderer) explicitInterface(ref *symbol.TypeRef) {
	if ref == nil || r.format.Members&MembersExplicitInterface == 0 {
		return
	}
	r.typeRef(ref)
	r.punctuation(".")
}

func (r *renderer) memberPrefix(s *symbol.Symbol) {
	f := r.format
	if f.Members&MembersAccessibility != 0 && !s.IsExplicitImplementation() && s.MethodKind() != symbol.MethodStaticConstructor && s.MethodKind() != symbol.MethodDestructor {
		r.accessibility(s.Accessibility)
	}
	if f.Members&MembersModifiers != 0 {
		r.memberModifiers(s)
	}
}

func (r *renderer) method(s *symbol.Symbol) error {
	f := r.format
	info := s.Method
	r.memberPrefix(s)
	containing := s.ContainingType()
	containingName := s.Name
	if containing != nil {
		containingName = containing.Name
	}
	switch info.MethodKind {
	case symbol.MethodConstructor, symbol.MethodStaticConstructor:
		r.name(PartMethodName, containingName, s)
	case symbol.MethodDestructor:
		r.punctuation("~")
		r.name(PartMethodName, containingName, s)
	case symbol.MethodConversion:
		if s.Name == symbol.ExplicitConversionName {
			r.keyword("explicit")
		} else {
			r.keyword("implicit")
		}
		r.space()
		r.explicitInterface(info.ExplicitInterface)
		r.keyword("operator")
		r.space()
		r.returnType(info.ReturnType)
	case symbol.MethodUserDefinedOperator:
		if f.Members&MembersType != 0 {
			r.returnType(info.ReturnType)
			r.space()
		}
		r.explicitInterface(info.ExplicitInterface)
		r.keyword("operator")
		r.space()
		token, ok := symbol.OperatorToken(s.Name)
		if !ok {
			token = s.Name
		}
		r.operator(token)
	default:
		if f.Members&MembersType != 0 {
			r.returnType(info.ReturnType)
			r.space()
		}
		r.explicitInterface(info.ExplicitInterface)
		r.name(PartMethodName, s.Name, s)
	}
	r.typeParameters(s.TypeParameters, false)
	if f.Members&MembersParameters != 0 {
		r.punctuation("(")
		if err := r.parameters(info.Parameters); err != nil {
			return err
		}
		r.punctuation(")")
	}
	r.constraints(s.TypeParameters)
	return nil
}

func (r *renderer) parameters(params []*symbol.Parameter) error {
	f := r.format
	for i, param := range params {
		if i > 0 {
			r.punctuation(",")
			r.space()
		}
		if f.Parameters&ParametersExtensionThis != 0 && param.IsThis {
			r.keyword("this")
			r.space()
		}
		if f.Parameters&ParametersParamsRefOut != 0 {
			if param.IsParams {
				r.keyword("params")
				r.space()
			}
			if keyword := param.RefKind.Keyword(); keyword != "" {
				r.keyword(keyword)
				r.space()
			}
		}
		typed := f.Parameters&ParametersType != 0
		if typed {
			r.typeRef(param.Type)
		}
		if f.Parameters&ParametersName != 0 && param.Name != "" {
			if typed {
				r.space()
			}
			r.name(PartParameterName, param.Name, nil)
		}
		if f.Parameters&ParametersDefaultValue != 0 && param.HasExplicitDefaultValue() {
			r.space()
			r.punctuation("=")
			r.space()
			if err := r.constant(param.Default, param.Type); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *renderer) property(s *symbol.Symbol) error {
	f := r.format
	info := s.Property
	r.memberPrefix(s)
	if f.Members&MembersType != 0 {
		r.typeRef(info.Type)
		r.space()
	}
	r.explicitInterface(info.ExplicitInterface)
	if s.IsIndexer() {
		r.parts = append(r.parts, Part{Kind: PartKeyword, Text: "this", Symbol: s})
		if f.Members&MembersParameters != 0 {
			r.punctuation("[")
			if err := r.parameters(info.Parameters); err != nil {
				return err
			}
			r.punctuation("]")
		}
	} else {
		r.name(PartPropertyName, s.Name, s)
	}
	r.space()
	r.punctuation("{")
	r.space()
	r.accessor(s, info.Getter, "get")
	r.accessor(s, info.Setter, info.SetterKeyword())
	r.punctuation("}")
	return nil
}

func (r *renderer) accessor(owner, accessor *symbol.Symbol, keyword string) {
	if accessor == nil {
		return
	}
	if r.format.Members&MembersAccessibility != 0 && accessor.Accessibility != symbol.AccessibilityNotApplicable && accessor.Accessibility != owner.Accessibility && !owner.IsExplicitImplementation() {
		r.accessibility(accessor.Accessibility)
	}
	r.keyword(keyword)
	r.punctuation(";")
	r.space()
}

func (r *renderer) field(s *symbol.Symbol) error {
	f := r.format
	info := s.Field
	if containing := s.ContainingType(); containing != nil && containing.Is(symbol.TypeKindEnum) {
		r.name(PartEnumMemberName, s.Name, s)
		if f.Members&MembersConstantValue != 0 && info.Constant != nil {
			r.space()
			r.punctuation("=")
			r.space()
			raw := *info.Constant
			raw.Kind = symbol.ConstantPrimitive
			raw.Type = containing.Type.Underlying
			return r.primitive(&raw, raw.Type)
		}
		return nil
	}
	r.memberPrefix(s)
	if f.Members&MembersType != 0 {
		r.typeRef(info.Type)
		r.space()
	}
	kind := PartFieldName
	if s.IsConst() {
		kind = PartConstantName
	}
	r.name(kind, s.Name, s)
	if f.Members&MembersConstantValue != 0 && s.IsConst() && info.Constant != nil {
		r.space()
		r.punctuation("=")
		r.space()
		return r.constant(info.Constant, info.Type)
	}
	return nil
}

func (r *renderer) event(s *symbol.Symbol) {
	f := r.format
	info := s.Event
	r.memberPrefix(s)
	r.keyword("event")
	r.space()
	if f.Members&MembersType != 0 {
		r.typeRef(info.Type)
		r.space()
	}
	r.explicitInterface(info.ExplicitInterface)
	r.name(PartEventName, s.Name, s)
}
