package symbol

import "strings"

// Attribute represents an attribute instance attached to a symbol
type Attribute struct {
	Class          *Symbol         // Attribute class
	Arguments      []*Constant     // Positional constructor arguments
	NamedArguments []NamedArgument // Named arguments in declaration order
}

// NamedArgument represents a name = value attribute argument
type NamedArgument struct {
	Name  string
	Value *Constant
}

// Name returns the attribute class name without the Attribute suffix
func (a *Attribute) Name() string {
	if a.Class == nil {
		return ""
	}
	return TrimAttributeSuffix(a.Class.Name)
}

// FullMetadataName returns the attribute class full metadata name
func (a *Attribute) FullMetadataName() string {
	if a.Class == nil {
		return ""
	}
	return a.Class.FullMetadataName()
}

// HasArguments returns true if the attribute has positional or named arguments
func (a *Attribute) HasArguments() bool {
	return len(a.Arguments) > 0 || len(a.NamedArguments) > 0
}

// TrimAttributeSuffix removes the Attribute suffix if the remaining name is not empty
func TrimAttributeSuffix(name string) string {
	const suffix = "Attribute"
	if len(name) > len(suffix) && strings.HasSuffix(name, suffix) {
		return name[:len(name)-len(suffix)]
	}
	return name
}
