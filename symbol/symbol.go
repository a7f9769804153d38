package symbol

import (
	"strconv"
	"strings"
)

// Symbol represents a namespace, type or member
type Symbol struct {
	Name           string           // Metadata name, i.e. .ctor, op_Addition
	Kind           Kind             // Symbol kind
	Accessibility  Accessibility    // Declared accessibility
	Modifiers      Modifiers        // Declaration modifiers
	Implicit       bool             // Whether the symbol is implicitly declared
	Containing     *Symbol          // Containing namespace or type
	Assembly       *Assembly        // Containing assembly
	Attributes     []*Attribute     // Attached attributes
	Documentation  *Documentation   // Documentation comment
	TypeParameters []*TypeParameter // Generic type parameters
	Members        []*Symbol        // Namespace or type members in declaration order

	Type     *TypeInfo     // Named type details
	Method   *MethodInfo   // Method details
	Property *PropertyInfo // Property details
	Field    *FieldInfo    // Field details
	Event    *EventInfo    // Event details

	memberMap map[string][]int // Map of members for quick lookup
}

// TypeInfo represents named type details
type TypeInfo struct {
	TypeKind   TypeKind    // Class, struct, interface, enum or delegate
	BaseType   *TypeRef    // Base type, nil for interfaces and the root type
	Interfaces []*TypeRef  // Directly implemented interfaces
	Underlying *TypeRef    // Enum underlying type
	Delegate   *MethodInfo // Delegate signature
}

// MethodInfo represents method details
type MethodInfo struct {
	MethodKind        MethodKind   // Method role
	ReturnType        *TypeRef     // Return type, nil for void
	Parameters        []*Parameter // Parameters
	ExplicitInterface *TypeRef     // Explicitly implemented interface
	IsExtension       bool         // Whether the first parameter is declared with this
	IsInitOnly        bool         // Whether a set accessor is declared with init
}

// PropertyInfo represents property and indexer details
type PropertyInfo struct {
	Type              *TypeRef     // Property type
	Parameters        []*Parameter // Indexer parameters
	Getter            *Symbol      // Get accessor
	Setter            *Symbol      // Set accessor
	ExplicitInterface *TypeRef     // Explicitly implemented interface
}

// SetterKeyword returns init for init only setters, set otherwise
func (p *PropertyInfo) SetterKeyword() string {
	if p.Setter != nil && p.Setter.Method != nil && p.Setter.Method.IsInitOnly {
		return "init"
	}
	return "set"
}

// FieldInfo represents field details
type FieldInfo struct {
	Type     *TypeRef  // Field type
	Constant *Constant // Constant value, nil when the field is not a constant
}

// EventInfo represents event details
type EventInfo struct {
	Type              *TypeRef // Event handler type
	Adder             *Symbol  // Add accessor
	Remover           *Symbol  // Remove accessor
	ExplicitInterface *TypeRef // Explicitly implemented interface
}

// TypeParameter represents a generic type parameter
type TypeParameter struct {
	Name                  string     // Parameter name
	Variance              Variance   // in/out variance
	ReferenceType         bool       // class constraint
	ValueType             bool       // struct constraint
	Unmanaged             bool       // unmanaged constraint
	NotNull               bool       // notnull constraint
	Constructor           bool       // new() constraint
	ConstraintTypes       []*TypeRef // Type constraints
	HasReferenceTypeQMark bool       // class? constraint
}

// HasConstraints returns true if the type parameter declares any constraint
func (p *TypeParameter) HasConstraints() bool {
	return p.ReferenceType || p.ValueType || p.Unmanaged || p.NotNull || p.Constructor || len(p.ConstraintTypes) > 0
}

// Parameter represents a method, indexer or delegate parameter
type Parameter struct {
	Name       string       // Parameter name
	Type       *TypeRef     // Parameter type
	RefKind    RefKind      // ref/out/in
	IsParams   bool         // params array
	IsThis     bool         // extension method receiver
	Default    *Constant    // Explicit default value
	Attributes []*Attribute // Attached attributes
}

// HasExplicitDefaultValue returns true when the parameter declares a default value
func (p *Parameter) HasExplicitDefaultValue() bool {
	return p.Default != nil
}

// NewNamespace creates a namespace symbol
func NewNamespace(name string) *Symbol {
	return &Symbol{Name: name, Kind: KindNamespace}
}

// NewType creates a named type symbol
func NewType(name string, kind TypeKind, accessibility Accessibility) *Symbol {
	return &Symbol{Name: name, Kind: KindType, Accessibility: accessibility, Type: &TypeInfo{TypeKind: kind}}
}

// AddMember adds a member and links it to its container
func (s *Symbol) AddMember(member *Symbol) *Symbol {
	if s.memberMap == nil {
		s.indexMembers()
	}
	member.Containing = s
	member.setAssembly(s.Assembly)
	s.Members = append(s.Members, member)
	s.memberMap[member.Name] = append(s.memberMap[member.Name], len(s.Members)-1)
	return member
}

// RemoveMember removes a member, it returns false if the member was not found
func (s *Symbol) RemoveMember(member *Symbol) bool {
	for i, candidate := range s.Members {
		if candidate == member {
			s.Members = append(s.Members[:i], s.Members[i+1:]...)
			s.indexMembers()
			return true
		}
	}
	return false
}

// LookupMembers returns members with the given metadata name
func (s *Symbol) LookupMembers(name string) []*Symbol {
	if s.memberMap == nil || len(s.memberMap) == 0 && len(s.Members) > 0 {
		s.indexMembers()
	}
	indexes := s.memberMap[name]
	result := make([]*Symbol, 0, len(indexes))
	for _, idx := range indexes {
		if idx < len(s.Members) {
			result = append(result, s.Members[idx])
		}
	}
	return result
}

// LookupNamespace returns a child namespace by name
func (s *Symbol) LookupNamespace(name string) *Symbol {
	for _, candidate := range s.LookupMembers(name) {
		if candidate.Kind == KindNamespace {
			return candidate
		}
	}
	return nil
}

// LookupType returns a nested or namespace level type by name and arity
func (s *Symbol) LookupType(name string, arity int) *Symbol {
	for _, candidate := range s.LookupMembers(name) {
		if candidate.Kind == KindType && candidate.Arity() == arity {
			return candidate
		}
	}
	return nil
}

// EnsureNamespace returns a child namespace by name, creating it when needed
func (s *Symbol) EnsureNamespace(name string) *Symbol {
	if ns := s.LookupNamespace(name); ns != nil {
		return ns
	}
	return s.AddMember(NewNamespace(name))
}

func (s *Symbol) indexMembers() {
	s.memberMap = make(map[string][]int, len(s.Members))
	for i, member := range s.Members {
		s.memberMap[member.Name] = append(s.memberMap[member.Name], i)
	}
}

func (s *Symbol) setAssembly(assembly *Assembly) {
	if assembly == nil || s.Assembly == assembly {
		return
	}
	s.Assembly = assembly
	for _, member := range s.Members {
		member.setAssembly(assembly)
	}
}

// TypeMembers returns nested types
func (s *Symbol) TypeMembers() []*Symbol {
	var result []*Symbol
	for _, member := range s.Members {
		if member.Kind == KindType {
			result = append(result, member)
		}
	}
	return result
}

// IsGlobalNamespace returns true for the root namespace of an assembly
func (s *Symbol) IsGlobalNamespace() bool {
	return s.Kind == KindNamespace && s.Containing == nil
}

// IsStatic returns true for static symbols
func (s *Symbol) IsStatic() bool {
	return s.Modifiers.Has(ModifierStatic)
}

// TypeKind returns the type kind, it must only be called on named types
func (s *Symbol) TypeKind() TypeKind {
	if s.Type == nil {
		return TypeKindClass
	}
	return s.Type.TypeKind
}

// Is returns true if the symbol is a named type of one of the given kinds
func (s *Symbol) Is(kinds ...TypeKind) bool {
	if s.Kind != KindType || s.Type == nil {
		return false
	}
	for _, kind := range kinds {
		if s.Type.TypeKind == kind {
			return true
		}
	}
	return false
}

// MethodKind returns the method kind or ordinary for non methods
func (s *Symbol) MethodKind() MethodKind {
	if s.Method == nil {
		return MethodOrdinary
	}
	return s.Method.MethodKind
}

// IsIndexer returns true for indexer properties
func (s *Symbol) IsIndexer() bool {
	return s.Kind == KindProperty && s.Property != nil && len(s.Property.Parameters) > 0
}

// IsConst returns true for constant fields
func (s *Symbol) IsConst() bool {
	return s.Kind == KindField && s.Modifiers.Has(ModifierConst)
}

// Arity returns the number of generic type parameters
func (s *Symbol) Arity() int {
	return len(s.TypeParameters)
}

// Parameters returns method, indexer or delegate parameters
func (s *Symbol) Parameters() []*Parameter {
	switch s.Kind {
	case KindMethod:
		if s.Method != nil {
			return s.Method.Parameters
		}
	case KindProperty:
		if s.Property != nil {
			return s.Property.Parameters
		}
	case KindType:
		if s.Type != nil && s.Type.Delegate != nil {
			return s.Type.Delegate.Parameters
		}
	}
	return nil
}

// ExplicitInterface returns the explicitly implemented interface of a member
func (s *Symbol) ExplicitInterface() *TypeRef {
	switch s.Kind {
	case KindMethod:
		if s.Method != nil {
			return s.Method.ExplicitInterface
		}
	case KindProperty:
		if s.Property != nil {
			return s.Property.ExplicitInterface
		}
	case KindEvent:
		if s.Event != nil {
			return s.Event.ExplicitInterface
		}
	}
	return nil
}

// IsExplicitImplementation returns true for explicitly implemented interface members
func (s *Symbol) IsExplicitImplementation() bool {
	return s.ExplicitInterface() != nil || s.MethodKind() == MethodExplicitInterfaceImplementation
}

// ContainingType returns the containing type or nil
func (s *Symbol) ContainingType() *Symbol {
	if s.Containing != nil && s.Containing.Kind == KindType {
		return s.Containing
	}
	return nil
}

// ContainingNamespace returns the closest containing namespace
func (s *Symbol) ContainingNamespace() *Symbol {
	for c := s.Containing; c != nil; c = c.Containing {
		if c.Kind == KindNamespace {
			return c
		}
	}
	return nil
}

// ContainingTypes returns containing types from the outermost one
func (s *Symbol) ContainingTypes() []*Symbol {
	var result []*Symbol
	for c := s.ContainingType(); c != nil; c = c.ContainingType() {
		result = append(result, c)
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}

// NamespaceNames returns names of containing namespaces from the root, the global namespace is skipped
func (s *Symbol) NamespaceNames() []string {
	var result []string
	for ns := s.ContainingNamespace(); ns != nil && !ns.IsGlobalNamespace(); ns = ns.ContainingNamespace() {
		result = append(result, ns.Name)
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}

// MetadataName returns the name with generic arity suffix for types
func (s *Symbol) MetadataName() string {
	if s.Kind == KindType && len(s.TypeParameters) > 0 {
		return s.Name + "`" + strconv.Itoa(len(s.TypeParameters))
	}
	return s.Name
}

// FullMetadataName returns dotted namespaces, + separated containing types and the metadata name
func (s *Symbol) FullMetadataName() string {
	if s.IsGlobalNamespace() {
		return ""
	}
	builder := strings.Builder{}
	for _, name := range s.NamespaceNames() {
		builder.WriteString(name)
		builder.WriteByte('.')
	}
	for _, containing := range s.ContainingTypes() {
		builder.WriteString(containing.MetadataName())
		builder.WriteByte('+')
	}
	builder.WriteString(s.MetadataName())
	return builder.String()
}

// QualifiedName returns dotted namespace, containing type and symbol names
func (s *Symbol) QualifiedName() string {
	var parts []string
	parts = append(parts, s.NamespaceNames()...)
	for _, containing := range s.ContainingTypes() {
		parts = append(parts, containing.Name)
	}
	if !s.IsGlobalNamespace() {
		parts = append(parts, s.Name)
	}
	return strings.Join(parts, ".")
}

// Visibility returns effective visibility walking containing types
func (s *Symbol) Visibility() Visibility {
	visibility := VisibilityPublic
	for current := s; current != nil && current.Kind != KindNamespace; current = current.Containing {
		switch current.Accessibility {
		case AccessibilityPrivate:
			return VisibilityPrivate
		case AccessibilityInternal, AccessibilityProtectedAndInternal:
			visibility = VisibilityInternal
		}
	}
	return visibility
}

// Accessors returns property or event accessors
func (s *Symbol) Accessors() []*Symbol {
	var result []*Symbol
	switch s.Kind {
	case KindProperty:
		if s.Property != nil {
			if s.Property.Getter != nil {
				result = append(result, s.Property.Getter)
			}
			if s.Property.Setter != nil {
				result = append(result, s.Property.Setter)
			}
		}
	case KindEvent:
		if s.Event != nil {
			if s.Event.Adder != nil {
				result = append(result, s.Event.Adder)
			}
			if s.Event.Remover != nil {
				result = append(result, s.Event.Remover)
			}
		}
	}
	return result
}

// HasAttribute returns true if the symbol has an attribute of the given full metadata name
func (s *Symbol) HasAttribute(fullMetadataName string) bool {
	for _, attribute := range s.Attributes {
		if attribute.Class != nil && attribute.Class.FullMetadataName() == fullMetadataName {
			return true
		}
	}
	return false
}
