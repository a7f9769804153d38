package writer

import (
	"strings"

	"github.com/viant/symdef/display"
	"github.com/viant/symdef/filter"
	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

// Layout represents definition tree structure
type Layout int

const (
	// LayoutNamespaceList writes namespaces as a flat sorted list
	LayoutNamespaceList Layout = iota
	// LayoutNamespaceHierarchy nests namespaces within their containing namespaces
	LayoutNamespaceHierarchy
	// LayoutTypeHierarchy writes types within their base types
	LayoutTypeHierarchy
)

var layoutNames = [...]string{"namespace-list", "namespace-hierarchy", "type-hierarchy"}

func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutNames) {
		return "unknown"
	}
	return layoutNames[l]
}

// ParseLayout parses layout name, i.e. namespace-list
func ParseLayout(name string) (Layout, error) {
	for i, candidate := range layoutNames {
		if strings.EqualFold(candidate, name) {
			return Layout(i), nil
		}
	}
	return 0, errors.Errorf("layout %q: %w", name, symbol.ErrUnknownValue)
}

// Part represents an optional definition part
type Part uint16

const (
	PartAccessibility Part = 1 << iota
	PartModifiers
	PartBaseType
	PartBaseInterfaces
	PartAttributes
	PartAttributeArguments
	PartConstraints
	PartParameterName
	PartParameterDefaultValue
	PartContainingNamespace
	PartAssemblyAttributes

	PartNone Part = 0
	PartAll       = PartAccessibility | PartModifiers | PartBaseType | PartBaseInterfaces | PartAttributes | PartAttributeArguments |
		PartConstraints | PartParameterName | PartParameterDefaultValue | PartContainingNamespace | PartAssemblyAttributes
)

var partNames = []struct {
	part Part
	name string
}{
	{PartAccessibility, "accessibility"},
	{PartModifiers, "modifiers"},
	{PartBaseType, "base-type"},
	{PartBaseInterfaces, "base-interfaces"},
	{PartAttributes, "attributes"},
	{PartAttributeArguments, "attribute-arguments"},
	{PartConstraints, "constraints"},
	{PartParameterName, "parameter-name"},
	{PartParameterDefaultValue, "parameter-default-value"},
	{PartContainingNamespace, "containing-namespace"},
	{PartAssemblyAttributes, "assembly-attributes"},
}

// Has returns true if all parts in o are set
func (p Part) Has(o Part) bool {
	return p&o == o
}

func (p Part) String() string {
	var names []string
	for _, candidate := range partNames {
		if p&candidate.part != 0 {
			names = append(names, candidate.name)
		}
	}
	return strings.Join(names, ",")
}

// ParsePart parses part name, i.e. base-type
func ParsePart(name string) (Part, error) {
	for _, candidate := range partNames {
		if strings.EqualFold(candidate.name, name) {
			return candidate.part, nil
		}
	}
	return 0, errors.Errorf("definition part %q: %w", name, symbol.ErrUnknownValue)
}

// FormatOption represents a multiline formatting option
type FormatOption uint8

const (
	FormatBaseList FormatOption = 1 << iota
	FormatConstraints
	FormatParameters
	FormatAttributes

	FormatNone FormatOption = 0
	FormatAll               = FormatBaseList | FormatConstraints | FormatParameters | FormatAttributes
)

var formatOptionNames = []struct {
	option FormatOption
	name   string
}{
	{FormatBaseList, "base-list"},
	{FormatConstraints, "constraints"},
	{FormatParameters, "parameters"},
	{FormatAttributes, "attributes"},
}

// Has returns true if all options in o are set
func (f FormatOption) Has(o FormatOption) bool {
	return f&o == o
}

// ParseFormatOption parses format option name, i.e. parameters
func ParseFormatOption(name string) (FormatOption, error) {
	for _, candidate := range formatOptionNames {
		if strings.EqualFold(candidate.name, name) {
			return candidate.option, nil
		}
	}
	return 0, errors.Errorf("format option %q: %w", name, symbol.ErrUnknownValue)
}

// Format represents definition list settings
type Format struct {
	Layout                       Layout
	Parts                        Part
	FormatOptions                FormatOption
	IndentChars                  string
	EmptyLineBetweenMembers      bool
	EmptyLineBetweenMemberGroups bool
	GroupByAssembly              bool
	OmitIEnumerable              bool
	PreferDefaultLiteral         bool
	ContainingNamespace          display.NamespaceStyle // Namespace style used when PartContainingNamespace is set
}

// DefaultFormat returns default list format
func DefaultFormat() *Format {
	return &Format{
		Layout:                       LayoutNamespaceList,
		Parts:                        PartAll,
		IndentChars:                  display.DefaultIndentChars,
		EmptyLineBetweenMemberGroups: true,
		OmitIEnumerable:              true,
		PreferDefaultLiteral:         true,
		ContainingNamespace:          display.NamespaceIncluded,
	}
}

// Includes returns true if all given parts are written
func (f *Format) Includes(part Part) bool {
	return f.Parts.Has(part)
}

// Indentation returns indentation unit
func (f *Format) Indentation() string {
	if f.IndentChars == "" {
		return display.DefaultIndentChars
	}
	return f.IndentChars
}

// Multiline returns true if definitions can span lines with given capabilities
func (f *Format) Multiline(capabilities Capabilities) bool {
	return capabilities.Multiline && f.Layout != LayoutTypeHierarchy
}

func (f *Format) namespaceStyle() display.NamespaceStyle {
	if !f.Includes(PartContainingNamespace) {
		return display.NamespaceOmitted
	}
	return f.ContainingNamespace
}

// Formats represents display formats of each definition kind, built once per writer
type Formats struct {
	Namespace  *display.Format
	Type       *display.Format
	Member     *display.Format
	EnumMember *display.Format
}

// NewFormats builds display formats for the list format, backend capabilities and attribute filter
func NewFormats(format *Format, capabilities Capabilities, options *filter.Options) *Formats {
	typeQualification := display.NameOnly
	if format.Layout == LayoutTypeHierarchy {
		typeQualification = display.NameAndContainingTypesAndNamespaces
	}
	namespace := display.Definition(display.NameAndContainingTypesAndNamespaces)
	namespace.NamespaceKeyword = !capabilities.OmitNamespaceKeyword
	namespace.IndentChars = format.Indentation()
	return &Formats{
		Namespace:  namespace,
		Type:       newDisplayFormat(format, capabilities, options, typeQualification),
		Member:     newDisplayFormat(format, capabilities, options, display.NameAndContainingTypes),
		EnumMember: newDisplayFormat(format, capabilities, options, display.NameOnly),
	}
}

func newDisplayFormat(format *Format, capabilities Capabilities, options *filter.Options, qualification display.Qualification) *display.Format {
	ret := display.Definition(qualification)
	ret.Namespaces = format.namespaceStyle()
	ret.IndentChars = format.Indentation()

	ret.Generics = display.GenericsTypeParameters | display.GenericsVariance
	if format.Includes(PartConstraints) {
		ret.Generics |= display.GenericsConstraints
	}

	ret.Members = display.MembersType | display.MembersExplicitInterface | display.MembersParameters | display.MembersConstantValue | display.MembersRef
	if format.Includes(PartModifiers) {
		ret.Members |= display.MembersModifiers
	}
	if format.Includes(PartAccessibility) {
		ret.Members |= display.MembersAccessibility
	}

	ret.Parameters = display.ParametersExtensionThis | display.ParametersParamsRefOut | display.ParametersType
	if format.Includes(PartParameterName) {
		ret.Parameters |= display.ParametersName
	}
	if format.Includes(PartParameterDefaultValue) {
		ret.Parameters |= display.ParametersDefaultValue
	}

	ret.Declaration = 0
	if format.Includes(PartAccessibility) {
		ret.Declaration |= display.DeclarationAccessibility
	}
	if format.Includes(PartModifiers) {
		ret.Declaration |= display.DeclarationModifiers
	}
	if format.Includes(PartBaseType) {
		ret.Declaration |= display.DeclarationBaseType
	}
	if format.Includes(PartBaseInterfaces) {
		ret.Declaration |= display.DeclarationInterfaces
	}

	ret.Options = 0
	if format.Includes(PartAttributes) {
		ret.Options |= display.OptionIncludeParameterAttributes | display.OptionIncludeAccessorAttributes
	}
	if format.Includes(PartAttributeArguments) {
		ret.Options |= display.OptionIncludeAttributeArguments
	}
	if format.Multiline(capabilities) {
		if format.FormatOptions.Has(FormatBaseList) {
			ret.Options |= display.OptionFormatBaseList
		}
		if format.FormatOptions.Has(FormatConstraints) {
			ret.Options |= display.OptionFormatConstraints
		}
		if format.FormatOptions.Has(FormatParameters) {
			ret.Options |= display.OptionFormatParameters
		}
		if format.FormatOptions.Has(FormatAttributes) {
			ret.Options |= display.OptionFormatAttributes
		}
	}
	if format.OmitIEnumerable {
		ret.Options |= display.OptionOmitIEnumerable
	}
	if format.PreferDefaultLiteral {
		ret.Options |= display.OptionPreferDefaultLiteral
	}
	if options != nil {
		ret.IsVisibleAttribute = func(class *symbol.Symbol) bool {
			return options.IsVisibleAttribute(&symbol.Attribute{Class: class})
		}
	}
	return ret
}
