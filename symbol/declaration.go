package symbol

// DeclarationKind represents a member declaration category used to group members
type DeclarationKind int

const (
	DeclarationNone DeclarationKind = iota
	DeclarationConst
	DeclarationField
	DeclarationStaticConstructor
	DeclarationConstructor
	DeclarationDestructor
	DeclarationEvent
	DeclarationProperty
	DeclarationIndexer
	DeclarationMethod
	DeclarationConversion
	DeclarationOperator
	DeclarationExplicitEvent
	DeclarationExplicitProperty
	DeclarationExplicitIndexer
	DeclarationExplicitMethod
	DeclarationExplicitConversion
	DeclarationExplicitOperator
)

// DeclarationKind returns the member declaration category
func (s *Symbol) DeclarationKind() DeclarationKind {
	explicit := s.IsExplicitImplementation()
	switch s.Kind {
	case KindField:
		if s.IsConst() {
			return DeclarationConst
		}
		return DeclarationField
	case KindEvent:
		if explicit {
			return DeclarationExplicitEvent
		}
		return DeclarationEvent
	case KindProperty:
		switch {
		case s.IsIndexer() && explicit:
			return DeclarationExplicitIndexer
		case s.IsIndexer():
			return DeclarationIndexer
		case explicit:
			return DeclarationExplicitProperty
		}
		return DeclarationProperty
	case KindMethod:
		switch s.MethodKind() {
		case MethodStaticConstructor:
			return DeclarationStaticConstructor
		case MethodConstructor:
			return DeclarationConstructor
		case MethodDestructor:
			return DeclarationDestructor
		case MethodConversion:
			if explicit {
				return DeclarationExplicitConversion
			}
			return DeclarationConversion
		case MethodUserDefinedOperator:
			if explicit {
				return DeclarationExplicitOperator
			}
			return DeclarationOperator
		case MethodOrdinary, MethodExplicitInterfaceImplementation:
			if explicit {
				return DeclarationExplicitMethod
			}
			return DeclarationMethod
		}
	}
	return DeclarationNone
}
