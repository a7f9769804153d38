package csharp

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tscsharp "github.com/smacker/go-tree-sitter/csharp"
	slogctx "github.com/veqryn/slog-context"
	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

// pendingBase represents a base list resolved once every declaration is known
type pendingBase struct {
	typ   *symbol.Symbol
	texts []string
	scope *scope
}

// pendingAttribute represents an attribute resolved once every declaration is known
type pendingAttribute struct {
	target *[]*symbol.Attribute
	syntax *attributeSyntax
	scope  *scope
}

type pendingDefault struct {
	parameter *symbol.Parameter
	text      string
	scope     *scope
}

// attributeSyntax represents an attribute as written
type attributeSyntax struct {
	name      string
	arguments []string
}

// loader builds an assembly from C# compilation units
type loader struct {
	corlib     *symbol.Corlib
	assembly   *symbol.Assembly
	resolver   *resolver
	evaluator  *evaluator
	source     []byte
	bases      []*pendingBase
	attributes []*pendingAttribute
	defaults   []*pendingDefault
	constants  []*symbol.Symbol
	types      []*symbol.Symbol
	docErrors  []error // Documentation errors of the current compilation unit
}

func newLoader(corlib *symbol.Corlib, assembly *symbol.Assembly) *loader {
	resolver := newResolver(corlib, assembly)
	return &loader{corlib: corlib, assembly: assembly, resolver: resolver, evaluator: newEvaluator(resolver)}
}

// parse adds declarations of one compilation unit
func (l *loader) parse(ctx context.Context, URL string, source []byte) error {
	parser := sitter.NewParser()
	parser.SetLanguage(tscsharp.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return errors.Errorf("failed to parse %v: %w", URL, err)
	}
	defer tree.Close()
	root := tree.RootNode()
	if root.HasError() {
		slogctx.Warn(ctx, "source contains syntax errors", "url", URL)
	}
	l.source = source
	global := l.assembly.Global
	l.declarations(root, &scope{namespace: global, container: global, aliases: map[string]string{}})
	for _, docErr := range l.docErrors {
		slogctx.Warn(ctx, "documentation comment truncated", "url", URL, "error", docErr)
	}
	l.source = nil
	l.docErrors = nil
	return nil
}

// documentation returns the documentation comment of a declaration, decode errors are reported by parse
func (l *loader) documentation(node *sitter.Node) *symbol.Documentation {
	ret, err := parseDocumentation(documentationLines(node, l.source))
	if err != nil {
		l.docErrors = append(l.docErrors, err)
	}
	return ret
}

// resolve binds base lists, type references, attributes and constants once every compilation unit is parsed
func (l *loader) resolve() {
	for _, item := range l.bases {
		l.resolveBases(item)
	}
	l.resolver.resolveReferences()
	for _, item := range l.attributes {
		*item.target = append(*item.target, l.attribute(item))
	}
	l.evaluator.resolveConstants(l.constants)
	for _, item := range l.defaults {
		item.parameter.Default = l.evaluator.evaluate(item.text, item.scope, item.parameter.Type)
	}
	for _, typ := range l.types {
		l.implicitMembers(typ)
	}
}

func (l *loader) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(l.source)
}

func (l *loader) declarations(node *sitter.Node, sc *scope) {
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(int(i))
		switch child.Type() {
		case "using_directive":
			sc.addUsing(l.text(child))
		case "global_attribute_list", "global_attribute":
			l.assemblyAttributes(child, sc)
		case "attribute_list":
			if node.Type() == "compilation_unit" {
				l.assemblyAttributes(child, sc)
			}
		case "namespace_declaration":
			inner := sc.withNamespace(l.namespace(sc.namespace, l.text(fieldNode(child, "name"))))
			body := fieldNode(child, "body")
			if body == nil {
				body = childOfType(child, "declaration_list")
			}
			if body != nil {
				l.declarations(body, inner)
			}
		case "file_scoped_namespace_declaration":
			// following siblings belong to the namespace when the grammar does not nest them
			sc = sc.withNamespace(l.namespace(sc.namespace, l.text(fieldNode(child, "name"))))
			l.declarations(child, sc)
		case "class_declaration", "struct_declaration", "interface_declaration", "record_declaration",
			"record_struct_declaration", "enum_declaration", "delegate_declaration":
			l.typeDeclaration(child, sc)
		default:
			if sc.container.Kind == symbol.KindType {
				l.memberDeclaration(child, sc)
			}
		}
	}
}

func (l *loader) memberDeclaration(node *sitter.Node, sc *scope) {
	switch node.Type() {
	case "field_declaration":
		l.fields(node, sc)
	case "event_field_declaration":
		l.eventFields(node, sc)
	case "event_declaration":
		l.event(node, sc)
	case "property_declaration":
		l.property(node, sc)
	case "indexer_declaration":
		l.indexer(node, sc)
	case "method_declaration":
		l.method(node, sc)
	case "constructor_declaration":
		l.constructor(node, sc)
	case "destructor_declaration":
		l.destructor(node, sc)
	case "operator_declaration":
		l.operator(node, sc)
	case "conversion_operator_declaration":
		l.conversion(node, sc)
	}
}

func (l *loader) namespace(parent *symbol.Symbol, dotted string) *symbol.Symbol {
	ns := parent
	for _, name := range strings.Split(strings.Join(strings.Fields(dotted), ""), ".") {
		if name = strings.TrimPrefix(name, "@"); name != "" {
			ns = ns.EnsureNamespace(name)
		}
	}
	return ns
}

func defaultAccessibility(container *symbol.Symbol) symbol.Accessibility {
	switch {
	case container.Kind == symbol.KindNamespace:
		return symbol.AccessibilityInternal
	case container.Is(symbol.TypeKindInterface):
		return symbol.AccessibilityPublic
	}
	return symbol.AccessibilityPrivate
}

func declaredTypeKind(nodeType string, h *header) symbol.TypeKind {
	switch nodeType {
	case "struct_declaration", "record_struct_declaration":
		return symbol.TypeKindStruct
	case "interface_declaration":
		return symbol.TypeKindInterface
	case "enum_declaration":
		return symbol.TypeKindEnum
	case "delegate_declaration":
		return symbol.TypeKindDelegate
	case "record_declaration":
		if h.keywords["struct"] {
			return symbol.TypeKindStruct
		}
	}
	return symbol.TypeKindClass
}

func (l *loader) typeDeclaration(node *sitter.Node, sc *scope) {
	nameNode := fieldNode(node, "name")
	if nameNode == nil {
		return
	}
	h := parseHeader(node, l.source)
	kind := declaredTypeKind(node.Type(), h)
	typeParameters := l.typeParameters(node)
	name := strings.TrimPrefix(l.text(nameNode), "@")
	typ := sc.container.LookupType(name, len(typeParameters))
	if typ == nil || typ.TypeKind() != kind {
		typ = symbol.NewType(name, kind, h.accessibility(defaultAccessibility(sc.container)))
		typ.TypeParameters = typeParameters
		sc.container.AddMember(typ)
		l.types = append(l.types, typ)
		l.defaultBase(typ)
	} else if len(h.access) > 0 {
		// another part of a partial type
		typ.Accessibility = h.accessibility(typ.Accessibility)
	}
	typ.Modifiers |= h.modifiers
	if typ.Documentation == nil {
		typ.Documentation = l.documentation(node)
	}
	inner := sc.withType(typ)
	l.attributeLists(h.attributes, &typ.Attributes, inner)
	l.constraints(node, typ.TypeParameters, inner)
	switch kind {
	case symbol.TypeKindEnum:
		l.enumDeclaration(node, typ, inner)
		return
	case symbol.TypeKindDelegate:
		typ.Type.Delegate = &symbol.MethodInfo{
			MethodKind: symbol.MethodDelegateInvoke,
			ReturnType: l.returnType(node, inner),
			Parameters: l.parameters(parameterList(node), inner),
		}
		return
	}
	if bases := childOfType(node, "base_list"); bases != nil {
		texts := splitTopLevel(strings.TrimPrefix(strings.TrimSpace(l.text(bases)), ":"), ',')
		l.bases = append(l.bases, &pendingBase{typ: typ, texts: texts, scope: inner})
	}
	if list := childOfType(node, "parameter_list"); list != nil {
		l.primaryConstructor(typ, list, inner, strings.HasPrefix(node.Type(), "record"))
	}
	body := fieldNode(node, "body")
	if body == nil {
		body = childOfType(node, "declaration_list")
	}
	if body != nil {
		l.declarations(body, inner)
	}
}

func (l *loader) defaultBase(typ *symbol.Symbol) {
	switch typ.TypeKind() {
	case symbol.TypeKindClass:
		typ.Type.BaseType = l.corlib.Ref("System.Object")
	case symbol.TypeKindStruct:
		typ.Type.BaseType = l.corlib.Ref("System.ValueType")
	case symbol.TypeKindEnum:
		typ.Type.BaseType = l.corlib.Ref("System.Enum")
		typ.Type.Underlying = l.corlib.Keyword("int")
	case symbol.TypeKindDelegate:
		typ.Type.BaseType = l.corlib.Ref("System.MulticastDelegate")
	}
}

func (l *loader) resolveBases(item *pendingBase) {
	typ := item.typ
	for i, text := range item.texts {
		if idx := strings.IndexByte(text, '('); idx != -1 {
			// primary constructor arguments of the base class
			text = text[:idx]
		}
		ref := l.resolver.resolve(text, item.scope)
		isClass := ref.Kind == symbol.TypeRefNamed && (ref.Def != nil && ref.Def.Is(symbol.TypeKindClass) || ref.Def == nil && !looksLikeInterface(ref.Name))
		if i == 0 && typ.Is(symbol.TypeKindClass) && isClass {
			typ.Type.BaseType = ref
			continue
		}
		exists := false
		for _, candidate := range typ.Type.Interfaces {
			exists = exists || candidate.Equal(ref)
		}
		if !exists {
			typ.Type.Interfaces = append(typ.Type.Interfaces, ref)
		}
	}
}

// looksLikeInterface returns true for unresolved names following the I prefix convention
func looksLikeInterface(name string) bool {
	if idx := strings.LastIndexByte(name, '.'); idx != -1 {
		name = name[idx+1:]
	}
	return len(name) > 1 && name[0] == 'I' && name[1] >= 'A' && name[1] <= 'Z'
}

func (l *loader) typeParameters(node *sitter.Node) []*symbol.TypeParameter {
	list := childOfType(node, "type_parameter_list")
	if list == nil {
		return nil
	}
	var ret []*symbol.TypeParameter
	for _, item := range childrenOfType(list, "type_parameter", "identifier") {
		nameNode := item
		if item.Type() == "type_parameter" {
			if nameNode = fieldNode(item, "name"); nameNode == nil {
				nameNode = childOfType(item, "identifier")
			}
		}
		if nameNode == nil {
			continue
		}
		param := &symbol.TypeParameter{Name: strings.TrimPrefix(l.text(nameNode), "@")}
		h := parseHeader(item, l.source)
		switch {
		case h.keywords["in"]:
			param.Variance = symbol.VarianceIn
		case h.keywords["out"]:
			param.Variance = symbol.VarianceOut
		}
		ret = append(ret, param)
	}
	return ret
}

func (l *loader) constraints(node *sitter.Node, params []*symbol.TypeParameter, sc *scope) {
	for _, clause := range childrenOfType(node, "type_parameter_constraints_clause") {
		text := strings.TrimPrefix(strings.TrimSpace(l.text(clause)), "where")
		idx := colon(text)
		if idx == -1 {
			continue
		}
		target := strings.TrimSpace(text[:idx])
		var param *symbol.TypeParameter
		for _, candidate := range params {
			if candidate.Name == target {
				param = candidate
			}
		}
		if param == nil {
			continue
		}
		for _, constraint := range splitTopLevel(text[idx+1:], ',') {
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
			case "default", "":
			default:
				param.ConstraintTypes = append(param.ConstraintTypes, l.resolver.typeRef(typeText(constraint), sc))
			}
		}
	}
}

func (l *loader) enumDeclaration(node *sitter.Node, typ *symbol.Symbol, sc *scope) {
	if bases := childOfType(node, "base_list"); bases != nil {
		typ.Type.Underlying = l.resolver.typeRef(strings.TrimPrefix(strings.TrimSpace(l.text(bases)), ":"), sc)
	}
	body := fieldNode(node, "body")
	if body == nil {
		body = childOfType(node, "enum_member_declaration_list")
	}
	if body == nil {
		return
	}
	var previous *symbol.Symbol
	for _, item := range childrenOfType(body, "enum_member_declaration") {
		nameNode := fieldNode(item, "name")
		if nameNode == nil {
			nameNode = childOfType(item, "identifier")
		}
		if nameNode == nil {
			continue
		}
		h := parseHeader(item, l.source)
		field := &symbol.Symbol{
			Name:          strings.TrimPrefix(l.text(nameNode), "@"),
			Kind:          symbol.KindField,
			Accessibility: symbol.AccessibilityPublic,
			Modifiers:     symbol.ModifierConst | symbol.ModifierStatic,
			Documentation: l.documentation(item),
			Field:         &symbol.FieldInfo{Type: symbol.Named(typ)},
		}
		typ.AddMember(field)
		l.attributeLists(h.attributes, &field.Attributes, sc)
		value := l.text(fieldNode(item, "value"))
		if value == "" {
			value = initializer(item, l.source)
		}
		l.evaluator.postpone(field, value, sc, previous)
		l.constants = append(l.constants, field)
		previous = field
	}
}

// member creates a member symbol of the scope container
func (l *loader) member(node *sitter.Node, sc *scope, h *header, name string, kind symbol.Kind) *symbol.Symbol {
	ret := &symbol.Symbol{
		Name:          strings.TrimPrefix(name, "@"),
		Kind:          kind,
		Accessibility: h.accessibility(defaultAccessibility(sc.container)),
		Modifiers:     h.modifiers,
		Documentation: l.documentation(node),
	}
	sc.container.AddMember(ret)
	l.attributeLists(h.attributes, &ret.Attributes, sc)
	return ret
}

func parameterList(node *sitter.Node) *sitter.Node {
	if ret := fieldNode(node, "parameters"); ret != nil {
		return ret
	}
	return childOfType(node, "parameter_list", "bracketed_parameter_list")
}

// returnType returns nil for void
func (l *loader) returnType(node *sitter.Node, sc *scope) *symbol.TypeRef {
	text := typeText(l.text(fieldNode(node, "returns", "type")))
	if text == "" || text == "void" {
		return nil
	}
	return l.resolver.typeRef(text, sc)
}

func (l *loader) typeRef(node *sitter.Node, sc *scope) *symbol.TypeRef {
	return l.resolver.typeRef(typeText(l.text(node)), sc)
}

func (l *loader) explicitInterface(node *sitter.Node, sc *scope) *symbol.TypeRef {
	specifier := childOfType(node, "explicit_interface_specifier")
	if specifier == nil {
		return nil
	}
	return l.resolver.typeRef(strings.TrimSuffix(strings.TrimSpace(l.text(specifier)), "."), sc)
}

func (l *loader) parameters(list *sitter.Node, sc *scope) []*symbol.Parameter {
	if list == nil {
		return nil
	}
	var ret []*symbol.Parameter
	var attributes []*sitter.Node
	for i := 0; i < int(list.ChildCount()); i++ {
		child := list.Child(i)
		switch child.Type() {
		case "parameter", "parameter_array":
			ret = append(ret, l.parameter(child, sc))
			attributes = nil
		case "attribute_list":
			attributes = append(attributes, child)
		case ",":
			attributes = nil
		case "params":
			// the grammar can leave params T[] name unwrapped within the list
			if param := l.paramsParameter(list, i+1, attributes, sc); param != nil {
				ret = append(ret, param)
			}
			attributes = nil
		}
	}
	return ret
}

// paramsParameter builds a params parameter from the list children following the params keyword
func (l *loader) paramsParameter(list *sitter.Node, from int, attributes []*sitter.Node, sc *scope) *symbol.Parameter {
	var typeNode, nameNode *sitter.Node
	for i := from; i < int(list.ChildCount()) && nameNode == nil; i++ {
		child := list.Child(i)
		switch {
		case child.Type() == "," || child.Type() == ")":
			i = int(list.ChildCount())
		case !child.IsNamed():
		case typeNode == nil:
			typeNode = child
		case child.Type() == "identifier":
			nameNode = child
		}
	}
	if typeNode == nil || nameNode == nil {
		return nil
	}
	ret := &symbol.Parameter{
		Name:     strings.TrimPrefix(l.text(nameNode), "@"),
		Type:     l.typeRef(typeNode, sc),
		IsParams: true,
	}
	l.attributeLists(attributes, &ret.Attributes, sc)
	return ret
}

func (l *loader) parameter(node *sitter.Node, sc *scope) *symbol.Parameter {
	h := parseHeader(node, l.source)
	ret := &symbol.Parameter{}
	nameNode := fieldNode(node, "name")
	if nameNode == nil {
		identifiers := childrenOfType(node, "identifier")
		if len(identifiers) > 0 {
			nameNode = identifiers[len(identifiers)-1]
		}
	}
	if nameNode != nil {
		ret.Name = strings.TrimPrefix(l.text(nameNode), "@")
	}
	typeNode := fieldNode(node, "type")
	if typeNode == nil && nameNode != nil {
		for i := uint32(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(int(i))
			if child.StartByte() >= nameNode.StartByte() {
				break
			}
			switch child.Type() {
			case "attribute_list", "modifier", "parameter_modifier":
			default:
				typeNode = child
			}
		}
	}
	if typeNode != nil {
		ret.Type = l.typeRef(typeNode, sc)
	}
	switch {
	case h.keywords["ref"]:
		ret.RefKind = symbol.RefRef
	case h.keywords["out"]:
		ret.RefKind = symbol.RefOut
	case h.keywords["in"]:
		ret.RefKind = symbol.RefIn
	}
	ret.IsParams = h.keywords["params"] || node.Type() == "parameter_array"
	ret.IsThis = h.keywords["this"]
	l.attributeLists(h.attributes, &ret.Attributes, sc)
	if text := initializer(node, l.source); text != "" {
		l.defaults = append(l.defaults, &pendingDefault{parameter: ret, text: text, scope: sc})
	}
	return ret
}

func typeParameterNames(params []*symbol.TypeParameter) []string {
	ret := make([]string, 0, len(params))
	for _, param := range params {
		ret = append(ret, param.Name)
	}
	return ret
}

func (l *loader) method(node *sitter.Node, sc *scope) {
	nameNode := fieldNode(node, "name")
	if nameNode == nil {
		return
	}
	h := parseHeader(node, l.source)
	typeParameters := l.typeParameters(node)
	inner := sc.withTypeParams(typeParameterNames(typeParameters))
	ret := l.member(node, sc, h, l.text(nameNode), symbol.KindMethod)
	ret.TypeParameters = typeParameters
	ret.Method = &symbol.MethodInfo{
		MethodKind: symbol.MethodOrdinary,
		ReturnType: l.returnType(node, inner),
		Parameters: l.parameters(parameterList(node), inner),
	}
	if explicit := l.explicitInterface(node, inner); explicit != nil {
		ret.Method.ExplicitInterface = explicit
		ret.Method.MethodKind = symbol.MethodExplicitInterfaceImplementation
		ret.Accessibility = symbol.AccessibilityPrivate
	}
	if params := ret.Method.Parameters; len(params) > 0 && params[0].IsThis {
		ret.Method.IsExtension = true
	}
	l.constraints(node, ret.TypeParameters, inner)
}

func (l *loader) constructor(node *sitter.Node, sc *scope) {
	h := parseHeader(node, l.source)
	name, kind := ".ctor", symbol.MethodConstructor
	if h.modifiers.Has(symbol.ModifierStatic) {
		name, kind = ".cctor", symbol.MethodStaticConstructor
	}
	ret := l.member(node, sc, h, name, symbol.KindMethod)
	if kind == symbol.MethodStaticConstructor {
		ret.Accessibility = symbol.AccessibilityPrivate
	}
	ret.Method = &symbol.MethodInfo{MethodKind: kind, Parameters: l.parameters(parameterList(node), sc)}
}

func (l *loader) destructor(node *sitter.Node, sc *scope) {
	ret := l.member(node, sc, parseHeader(node, l.source), "Finalize", symbol.KindMethod)
	ret.Accessibility = symbol.AccessibilityProtected
	ret.Method = &symbol.MethodInfo{MethodKind: symbol.MethodDestructor}
}

// operatorToken returns the overloaded operator token
func (l *loader) operatorToken(node *sitter.Node) string {
	if token := fieldNode(node, "operator"); token != nil {
		return strings.TrimSpace(l.text(token))
	}
	seen := false
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch {
		case !seen:
			seen = child.Type() == "operator"
		case child.Type() == "checked":
		default:
			return strings.TrimSpace(l.text(child))
		}
	}
	return ""
}

func (l *loader) operator(node *sitter.Node, sc *scope) {
	h := parseHeader(node, l.source)
	params := l.parameters(parameterList(node), sc)
	name, ok := symbol.OperatorName(l.operatorToken(node), len(params) == 1)
	if !ok {
		return
	}
	ret := l.member(node, sc, h, name, symbol.KindMethod)
	ret.Method = &symbol.MethodInfo{MethodKind: symbol.MethodUserDefinedOperator, ReturnType: l.returnType(node, sc), Parameters: params}
}

func (l *loader) conversion(node *sitter.Node, sc *scope) {
	h := parseHeader(node, l.source)
	name := symbol.ExplicitConversionName
	if h.keywords["implicit"] {
		name = symbol.ImplicitConversionName
	}
	ret := l.member(node, sc, h, name, symbol.KindMethod)
	ret.Method = &symbol.MethodInfo{
		MethodKind: symbol.MethodConversion,
		ReturnType: l.returnType(node, sc),
		Parameters: l.parameters(parameterList(node), sc),
	}
}

func (l *loader) fields(node *sitter.Node, sc *scope) {
	h := parseHeader(node, l.source)
	declaration := childOfType(node, "variable_declaration")
	if declaration == nil {
		return
	}
	typeNode := fieldNode(declaration, "type")
	for _, declarator := range childrenOfType(declaration, "variable_declarator") {
		nameNode := fieldNode(declarator, "name")
		if nameNode == nil {
			nameNode = childOfType(declarator, "identifier")
		}
		if nameNode == nil {
			continue
		}
		field := l.member(node, sc, h, l.text(nameNode), symbol.KindField)
		field.Field = &symbol.FieldInfo{Type: l.typeRef(typeNode, sc)}
		if !field.Modifiers.Has(symbol.ModifierConst) {
			continue
		}
		field.Modifiers |= symbol.ModifierStatic
		if value := initializer(declarator, l.source); value != "" {
			l.evaluator.postpone(field, value, sc, nil)
			l.constants = append(l.constants, field)
		}
	}
}

func (l *loader) eventFields(node *sitter.Node, sc *scope) {
	h := parseHeader(node, l.source)
	declaration := childOfType(node, "variable_declaration")
	if declaration == nil {
		return
	}
	typeNode := fieldNode(declaration, "type")
	for _, declarator := range childrenOfType(declaration, "variable_declarator") {
		nameNode := fieldNode(declarator, "name")
		if nameNode == nil {
			nameNode = childOfType(declarator, "identifier")
		}
		if nameNode == nil {
			continue
		}
		event := l.member(node, sc, h, l.text(nameNode), symbol.KindEvent)
		event.Event = &symbol.EventInfo{Type: l.typeRef(typeNode, sc)}
		event.Event.Adder = l.accessor(event, "add", event.Accessibility)
		event.Event.Remover = l.accessor(event, "remove", event.Accessibility)
		event.Event.Adder.Implicit = true
		event.Event.Remover.Implicit = true
	}
}

func (l *loader) event(node *sitter.Node, sc *scope) {
	nameNode := fieldNode(node, "name")
	if nameNode == nil {
		return
	}
	ret := l.member(node, sc, parseHeader(node, l.source), l.text(nameNode), symbol.KindEvent)
	ret.Event = &symbol.EventInfo{Type: l.typeRef(fieldNode(node, "type"), sc)}
	if explicit := l.explicitInterface(node, sc); explicit != nil {
		ret.Event.ExplicitInterface = explicit
		ret.Accessibility = symbol.AccessibilityPrivate
	}
	l.accessors(node, ret, sc)
}

func (l *loader) property(node *sitter.Node, sc *scope) {
	nameNode := fieldNode(node, "name")
	if nameNode == nil {
		return
	}
	ret := l.member(node, sc, parseHeader(node, l.source), l.text(nameNode), symbol.KindProperty)
	ret.Property = &symbol.PropertyInfo{Type: l.typeRef(fieldNode(node, "type"), sc)}
	if explicit := l.explicitInterface(node, sc); explicit != nil {
		ret.Property.ExplicitInterface = explicit
		ret.Accessibility = symbol.AccessibilityPrivate
	}
	l.accessors(node, ret, sc)
}

func (l *loader) indexer(node *sitter.Node, sc *scope) {
	ret := l.member(node, sc, parseHeader(node, l.source), "Item", symbol.KindProperty)
	ret.Property = &symbol.PropertyInfo{
		Type:       l.typeRef(fieldNode(node, "type"), sc),
		Parameters: l.parameters(parameterList(node), sc),
	}
	if explicit := l.explicitInterface(node, sc); explicit != nil {
		ret.Property.ExplicitInterface = explicit
		ret.Accessibility = symbol.AccessibilityPrivate
	}
	l.accessors(node, ret, sc)
}

// accessor creates a property or event accessor of owner
func (l *loader) accessor(owner *symbol.Symbol, keyword string, accessibility symbol.Accessibility) *symbol.Symbol {
	ret := &symbol.Symbol{
		Kind:          symbol.KindMethod,
		Accessibility: accessibility,
		Modifiers:     owner.Modifiers,
		Containing:    owner.Containing,
		Assembly:      owner.Assembly,
		Method:        &symbol.MethodInfo{},
	}
	switch keyword {
	case "get", "set", "init":
		if owner.Property == nil {
			return nil
		}
	case "add", "remove":
		if owner.Event == nil {
			return nil
		}
	}
	switch keyword {
	case "get":
		ret.Name = "get_" + owner.Name
		ret.Method.MethodKind = symbol.MethodPropertyGet
		ret.Method.ReturnType = owner.Property.Type
		ret.Method.Parameters = owner.Property.Parameters
		owner.Property.Getter = ret
	case "set", "init":
		ret.Name = "set_" + owner.Name
		ret.Method.MethodKind = symbol.MethodPropertySet
		ret.Method.IsInitOnly = keyword == "init"
		ret.Method.Parameters = append(append([]*symbol.Parameter{}, owner.Property.Parameters...), &symbol.Parameter{Name: "value", Type: owner.Property.Type})
		owner.Property.Setter = ret
	case "add", "remove":
		ret.Name = keyword + "_" + owner.Name
		ret.Method.MethodKind = symbol.MethodEventAdd
		if keyword == "remove" {
			ret.Method.MethodKind = symbol.MethodEventRemove
		}
		ret.Method.Parameters = []*symbol.Parameter{{Name: "value", Type: owner.Event.Type}}
	default:
		return nil
	}
	return ret
}

func (l *loader) accessors(node *sitter.Node, owner *symbol.Symbol, sc *scope) {
	list := fieldNode(node, "accessors")
	if list == nil {
		list = childOfType(node, "accessor_list")
	}
	if list == nil {
		if owner.Kind == symbol.KindProperty && childOfType(node, "arrow_expression_clause") != nil {
			l.accessor(owner, "get", owner.Accessibility)
		}
		return
	}
	for _, item := range childrenOfType(list, "accessor_declaration") {
		h := parseHeader(item, l.source)
		keyword := l.text(fieldNode(item, "name"))
		if keyword == "" {
			for _, candidate := range []string{"get", "set", "init", "add", "remove"} {
				if h.keywords[candidate] {
					keyword = candidate
				}
			}
		}
		accessor := l.accessor(owner, keyword, h.accessibility(owner.Accessibility))
		if accessor == nil {
			continue
		}
		switch keyword {
		case "add":
			owner.Event.Adder = accessor
		case "remove":
			owner.Event.Remover = accessor
		}
		l.attributeLists(h.attributes, &accessor.Attributes, sc)
	}
}

// primaryConstructor adds the constructor of a primary parameter list, records also get positional properties
func (l *loader) primaryConstructor(typ *symbol.Symbol, list *sitter.Node, sc *scope, record bool) {
	params := l.parameters(list, sc)
	typ.AddMember(&symbol.Symbol{
		Name:          ".ctor",
		Kind:          symbol.KindMethod,
		Accessibility: symbol.AccessibilityPublic,
		Method:        &symbol.MethodInfo{MethodKind: symbol.MethodConstructor, Parameters: params},
	})
	if !record {
		return
	}
	for _, param := range params {
		if len(typ.LookupMembers(param.Name)) > 0 {
			continue
		}
		property := typ.AddMember(&symbol.Symbol{
			Name:          param.Name,
			Kind:          symbol.KindProperty,
			Accessibility: symbol.AccessibilityPublic,
			Property:      &symbol.PropertyInfo{Type: param.Type},
		})
		l.accessor(property, "get", symbol.AccessibilityPublic)
		l.accessor(property, "init", symbol.AccessibilityPublic)
	}
}

// implicitMembers adds constructors the compiler declares implicitly
func (l *loader) implicitMembers(typ *symbol.Symbol) {
	var constructors []*symbol.Symbol
	for _, member := range typ.Members {
		if member.MethodKind() == symbol.MethodConstructor {
			constructors = append(constructors, member)
		}
	}
	implicit := &symbol.Symbol{
		Name:          ".ctor",
		Kind:          symbol.KindMethod,
		Accessibility: symbol.AccessibilityPublic,
		Implicit:      true,
		Method:        &symbol.MethodInfo{MethodKind: symbol.MethodConstructor},
	}
	switch typ.TypeKind() {
	case symbol.TypeKindClass:
		if typ.IsStatic() || len(constructors) > 0 {
			return
		}
		if typ.Modifiers.Has(symbol.ModifierAbstract) {
			implicit.Accessibility = symbol.AccessibilityProtected
		}
	case symbol.TypeKindStruct:
		for _, constructor := range constructors {
			if len(constructor.Parameters()) == 0 {
				return
			}
		}
	case symbol.TypeKindEnum:
	default:
		return
	}
	typ.AddMember(implicit)
}

func (l *loader) assemblyAttributes(node *sitter.Node, sc *scope) {
	target, attributes := parseAttributeList(l.text(node))
	if target != "assembly" {
		return
	}
	for _, attribute := range attributes {
		l.attributes = append(l.attributes, &pendingAttribute{target: &l.assembly.Attributes, syntax: attribute, scope: sc})
	}
}

// attributeLists records attributes of a declaration, return value and type parameter targets are skipped
func (l *loader) attributeLists(lists []*sitter.Node, target *[]*symbol.Attribute, sc *scope) {
	for _, list := range lists {
		kind, attributes := parseAttributeList(l.text(list))
		switch kind {
		case "return", "typevar", "assembly", "module":
			continue
		}
		for _, attribute := range attributes {
			l.attributes = append(l.attributes, &pendingAttribute{target: target, syntax: attribute, scope: sc})
		}
	}
}

// parseAttributeList splits [target: A(x), B] into its target and attributes
func parseAttributeList(text string) (string, []*attributeSyntax) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(strings.TrimPrefix(text, "["), "]")
	target := ""
	if idx := colon(text); idx != -1 {
		if candidate := strings.TrimSpace(text[:idx]); isIdentifier(candidate) && !strings.ContainsAny(candidate, " .(") {
			target = candidate
			text = text[idx+1:]
		}
	}
	var ret []*attributeSyntax
	for _, item := range splitTopLevel(text, ',') {
		if item == "" {
			continue
		}
		attribute := &attributeSyntax{name: item}
		if idx := strings.IndexByte(item, '('); idx != -1 && strings.HasSuffix(item, ")") {
			attribute.name = strings.TrimSpace(item[:idx])
			for _, argument := range splitTopLevel(item[idx+1:len(item)-1], ',') {
				if argument != "" {
					attribute.arguments = append(attribute.arguments, argument)
				}
			}
		}
		ret = append(ret, attribute)
	}
	return target, ret
}

// namedArgument splits Name = value, name: value arguments are positional
func namedArgument(argument string) (string, string, bool) {
	idx := strings.IndexByte(argument, '=')
	if idx <= 0 || idx+1 < len(argument) && argument[idx+1] == '=' {
		return "", "", false
	}
	name := strings.TrimPrefix(strings.TrimSpace(argument[:idx]), "@")
	if !isIdentifier(name) || strings.ContainsAny(name, " .()\"'") {
		return "", "", false
	}
	return name, strings.TrimSpace(argument[idx+1:]), true
}

func (l *loader) attribute(item *pendingAttribute) *symbol.Attribute {
	class := l.resolver.attributeClass(item.syntax.name, item.scope)
	ret := &symbol.Attribute{Class: class}
	for _, argument := range item.syntax.arguments {
		if name, value, ok := namedArgument(argument); ok {
			ret.NamedArguments = append(ret.NamedArguments, symbol.NamedArgument{
				Name:  name,
				Value: l.evaluator.evaluate(value, item.scope, memberType(class, name)),
			})
			continue
		}
		if idx := colon(argument); idx != -1 && isIdentifier(strings.TrimSpace(argument[:idx])) {
			argument = argument[idx+1:]
		}
		ret.Arguments = append(ret.Arguments, l.evaluator.evaluate(argument, item.scope, nil))
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
