package symbol

// TypeRefKind represents a type reference shape
type TypeRefKind int

const (
	TypeRefNamed TypeRefKind = iota
	TypeRefArray
	TypeRefPointer
	TypeRefTypeParameter
)

// TypeRef represents a reference to a type
type TypeRef struct {
	Kind      TypeRefKind // Reference shape
	Def       *Symbol     // Named type definition, nil when unresolved
	Name      string      // Unresolved source text or type parameter name
	Arguments []*TypeRef  // Generic type arguments
	Element   *TypeRef    // Array or pointer element type
	Rank      int         // Array rank
	Nullable  bool        // Nullable annotation
}

// Named creates a named type reference
func Named(def *Symbol, arguments ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: TypeRefNamed, Def: def, Arguments: arguments}
}

// Unresolved creates a named type reference that keeps source text only
func Unresolved(text string) *TypeRef {
	return &TypeRef{Kind: TypeRefNamed, Name: text}
}

// ArrayOf creates an array type reference
func ArrayOf(element *TypeRef, rank int) *TypeRef {
	if rank < 1 {
		rank = 1
	}
	return &TypeRef{Kind: TypeRefArray, Element: element, Rank: rank}
}

// PointerTo creates a pointer type reference
func PointerTo(element *TypeRef) *TypeRef {
	return &TypeRef{Kind: TypeRefPointer, Element: element}
}

// TypeParameterRef creates a type parameter reference
func TypeParameterRef(name string) *TypeRef {
	return &TypeRef{Kind: TypeRefTypeParameter, Name: name}
}

// IsResolved returns true when named references point to a definition
func (r *TypeRef) IsResolved() bool {
	return r.Kind != TypeRefNamed || r.Def != nil
}

// TypeKind returns the definition type kind, unresolved references are classes
func (r *TypeRef) TypeKind() TypeKind {
	if r.Kind == TypeRefNamed && r.Def != nil {
		return r.Def.TypeKind()
	}
	return TypeKindClass
}

// IsValueType returns true for structs and enums
func (r *TypeRef) IsValueType() bool {
	if r.Kind != TypeRefNamed || r.Def == nil {
		return false
	}
	return r.Def.Is(TypeKindStruct, TypeKindEnum)
}

// SpecialType returns special type of the referenced definition
func (r *TypeRef) SpecialType() SpecialType {
	if r.Kind != TypeRefNamed || r.Def == nil {
		return SpecialNone
	}
	return SpecialTypeOf(r.Def)
}

// Is returns true if the reference names the given definition
func (r *TypeRef) Is(def *Symbol) bool {
	return r != nil && r.Kind == TypeRefNamed && r.Def != nil && r.Def == def
}

// Equal returns true if both references denote the same type
func (r *TypeRef) Equal(o *TypeRef) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Kind != o.Kind || r.Nullable != o.Nullable {
		return false
	}
	switch r.Kind {
	case TypeRefArray:
		return r.Rank == o.Rank && r.Element.Equal(o.Element)
	case TypeRefPointer:
		return r.Element.Equal(o.Element)
	case TypeRefTypeParameter:
		return r.Name == o.Name
	}
	if r.Def != o.Def || r.Def == nil && r.Name != o.Name {
		return false
	}
	if len(r.Arguments) != len(o.Arguments) {
		return false
	}
	for i := range r.Arguments {
		if !r.Arguments[i].Equal(o.Arguments[i]) {
			return false
		}
	}
	return true
}
