package symbol

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrUnknownValue is returned when a textual enum value cannot be mapped
var ErrUnknownValue = errors.New("unknown value")

// Kind represents a symbol kind, the numeric order is the listing precedence
type Kind int

const (
	KindNamespace Kind = iota
	KindType
	KindEvent
	KindField
	KindProperty
	KindMethod
)

var kindNames = [...]string{"namespace", "type", "event", "field", "property", "method"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// TypeKind represents a named type kind
type TypeKind int

const (
	TypeKindClass TypeKind = iota
	TypeKindStruct
	TypeKindInterface
	TypeKindEnum
	TypeKindDelegate
)

var typeKindNames = [...]string{"class", "struct", "interface", "enum", "delegate"}

// String returns the declaration keyword of the type kind
func (k TypeKind) String() string {
	if k < 0 || int(k) >= len(typeKindNames) {
		return "unknown"
	}
	return typeKindNames[k]
}

// ParseTypeKind maps a keyword to a type kind
func ParseTypeKind(text string) (TypeKind, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "record" {
		return TypeKindClass, nil
	}
	for i, name := range typeKindNames {
		if name == text {
			return TypeKind(i), nil
		}
	}
	return 0, errors.Errorf("type kind %q: %w", text, ErrUnknownValue)
}

// MethodKind represents the role of a method symbol
type MethodKind int

const (
	MethodOrdinary MethodKind = iota
	MethodConstructor
	MethodStaticConstructor
	MethodDestructor
	MethodUserDefinedOperator
	MethodConversion
	MethodExplicitInterfaceImplementation
	MethodEventAdd
	MethodEventRemove
	MethodEventRaise
	MethodPropertyGet
	MethodPropertySet
	MethodDelegateInvoke
)

var methodKindNames = [...]string{
	"ordinary",
	"constructor",
	"staticConstructor",
	"destructor",
	"operator",
	"conversion",
	"explicitInterfaceImplementation",
	"eventAdd",
	"eventRemove",
	"eventRaise",
	"propertyGet",
	"propertySet",
	"delegateInvoke",
}

func (k MethodKind) String() string {
	if k < 0 || int(k) >= len(methodKindNames) {
		return "unknown"
	}
	return methodKindNames[k]
}

// ParseMethodKind maps a manifest name to a method kind, empty text means ordinary
func ParseMethodKind(text string) (MethodKind, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return MethodOrdinary, nil
	}
	for i, name := range methodKindNames {
		if strings.EqualFold(name, text) {
			return MethodKind(i), nil
		}
	}
	return 0, errors.Errorf("method kind %q: %w", text, ErrUnknownValue)
}

// IsAccessor returns true for property and event accessor kinds
func (k MethodKind) IsAccessor() bool {
	switch k {
	case MethodEventAdd, MethodEventRemove, MethodEventRaise, MethodPropertyGet, MethodPropertySet:
		return true
	}
	return false
}

// Variance represents generic type parameter variance
type Variance int

const (
	VarianceNone Variance = iota
	VarianceIn
	VarianceOut
)

// RefKind represents parameter passing mode
type RefKind int

const (
	RefNone RefKind = iota
	RefRef
	RefOut
	RefIn
)

// Keyword returns the parameter modifier keyword
func (k RefKind) Keyword() string {
	switch k {
	case RefRef:
		return "ref"
	case RefOut:
		return "out"
	case RefIn:
		return "in"
	}
	return ""
}

// ParseRefKind maps a keyword to a ref kind
func ParseRefKind(text string) (RefKind, error) {
	switch strings.TrimSpace(text) {
	case "":
		return RefNone, nil
	case "ref":
		return RefRef, nil
	case "out":
		return RefOut, nil
	case "in":
		return RefIn, nil
	}
	return 0, errors.Errorf("ref kind %q: %w", text, ErrUnknownValue)
}
