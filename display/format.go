package display

import "github.com/viant/symdef/symbol"

// Qualification represents how much of a type name is written
type Qualification int

const (
	NameOnly Qualification = iota
	NameAndContainingTypes
	NameAndContainingTypesAndNamespaces
)

// NamespaceStyle controls namespaces of type references
type NamespaceStyle int

const (
	// NamespaceOmitted never writes namespaces
	NamespaceOmitted NamespaceStyle = iota
	// NamespaceOmittedAsContaining omits namespaces containing the rendered symbol
	NamespaceOmittedAsContaining
	// NamespaceIncluded always writes namespaces
	NamespaceIncluded
)

// Generics controls generic parts
type Generics uint8

const (
	GenericsTypeParameters Generics = 1 << iota
	GenericsVariance
	GenericsConstraints
)

// Members controls member signature parts
type Members uint8

const (
	MembersAccessibility Members = 1 << iota
	MembersModifiers
	MembersType
	MembersParameters
	MembersConstantValue
	MembersExplicitInterface
	MembersRef
)

// ParameterParts controls parameter parts
type ParameterParts uint8

const (
	ParametersType ParameterParts = 1 << iota
	ParametersName
	ParametersDefaultValue
	ParametersParamsRefOut
	ParametersExtensionThis
)

// Declaration controls type declaration parts
type Declaration uint8

const (
	DeclarationAccessibility Declaration = 1 << iota
	DeclarationModifiers
	DeclarationBaseType
	DeclarationInterfaces

	DeclarationBaseList = DeclarationBaseType | DeclarationInterfaces
)

// Options controls definition rewrites applied on top of the signature
type Options uint16

const (
	OptionIncludeAttributes Options = 1 << iota
	OptionIncludeParameterAttributes
	OptionIncludeAccessorAttributes
	OptionIncludeAttributeArguments
	OptionFormatBaseList
	OptionFormatConstraints
	OptionFormatParameters
	OptionFormatAttributes
	OptionOmitIEnumerable
	OptionPreferDefaultLiteral
)

// Has returns true if all options in o are set
func (o Options) Has(options Options) bool {
	return o&options == options
}

// DefaultIndentChars is used when a format does not define indentation
const DefaultIndentChars = "  "

// Format represents a symbol rendering configuration, it is immutable once built
type Format struct {
	Qualification    Qualification  // Own name qualification of named types
	Namespaces       NamespaceStyle // Namespace part of type references
	NamespaceKeyword bool           // Whether namespaces are prefixed with the namespace keyword
	Generics         Generics
	Members          Members
	Parameters       ParameterParts
	Declaration      Declaration
	Options          Options
	IndentChars      string
	// IsVisibleAttribute reports whether an attribute class is rendered, nil means every attribute
	IsVisibleAttribute func(class *symbol.Symbol) bool
}

// Definition returns a full definition format
func Definition(qualification Qualification) *Format {
	return &Format{
		Qualification:    qualification,
		Namespaces:       NamespaceIncluded,
		NamespaceKeyword: true,
		Generics:         GenericsTypeParameters | GenericsVariance | GenericsConstraints,
		Members:          MembersAccessibility | MembersModifiers | MembersType | MembersParameters | MembersConstantValue | MembersExplicitInterface | MembersRef,
		Parameters:       ParametersType | ParametersName | ParametersDefaultValue | ParametersParamsRefOut | ParametersExtensionThis,
		Declaration:      DeclarationAccessibility | DeclarationModifiers | DeclarationBaseList,
		Options:          OptionIncludeAttributeArguments | OptionOmitIEnumerable | OptionPreferDefaultLiteral,
		IndentChars:      DefaultIndentChars,
	}
}

// Clone returns a copy that can be modified
func (f *Format) Clone() *Format {
	ret := *f
	return &ret
}

func (f *Format) indentChars() string {
	if f.IndentChars == "" {
		return DefaultIndentChars
	}
	return f.IndentChars
}

func (f *Format) isVisibleAttribute(attribute *symbol.Attribute) bool {
	if attribute == nil || attribute.Class == nil {
		return false
	}
	return f.IsVisibleAttribute == nil || f.IsVisibleAttribute(attribute.Class)
}

func (f *Format) visibleAttributes(attributes []*symbol.Attribute) []*symbol.Attribute {
	var result []*symbol.Attribute
	for _, attribute := range attributes {
		if f.isVisibleAttribute(attribute) {
			result = append(result, attribute)
		}
	}
	return result
}
