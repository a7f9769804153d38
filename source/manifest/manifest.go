// Package manifest loads symbol definitions described by a YAML document
package manifest

// Document represents a symbol manifest
type Document struct {
	Assemblies []*Assembly `yaml:"assemblies"`
}

// Assembly represents a manifest assembly
type Assembly struct {
	Name           string       `yaml:"name"`
	Version        string       `yaml:"version,omitempty"`
	Culture        string       `yaml:"culture,omitempty"`
	PublicKeyToken string       `yaml:"publicKeyToken,omitempty"`
	Attributes     []*Attribute `yaml:"attributes,omitempty"`
	Namespaces     []*Namespace `yaml:"namespaces,omitempty"`
}

// Namespace represents types declared in one namespace, an empty name is the global namespace
type Namespace struct {
	Name  string  `yaml:"name,omitempty"`
	Types []*Type `yaml:"types,omitempty"`
}

// Type represents a named type
type Type struct {
	Name           string           `yaml:"name"`                     // Simple name without arity
	Kind           string           `yaml:"kind,omitempty"`           // class, struct, interface, enum, delegate
	Accessibility  string           `yaml:"accessibility,omitempty"`  // Defaults to public
	Modifiers      []string         `yaml:"modifiers,omitempty"`      //
	TypeParameters []*TypeParameter `yaml:"typeParameters,omitempty"` //
	Base           string           `yaml:"base,omitempty"`           // Base type, defaults per kind
	Interfaces     []string         `yaml:"interfaces,omitempty"`     //
	Underlying     string           `yaml:"underlying,omitempty"`     // Enum underlying type
	Returns        string           `yaml:"returns,omitempty"`        // Delegate return type
	Parameters     []*Parameter     `yaml:"parameters,omitempty"`     // Delegate parameters
	Attributes     []*Attribute     `yaml:"attributes,omitempty"`
	Summary        string           `yaml:"summary,omitempty"`
	Doc            []*DocElement    `yaml:"doc,omitempty"`
	Members        []*Member        `yaml:"members,omitempty"`
	Types          []*Type          `yaml:"types,omitempty"` // Nested types
}

// TypeParameter represents a generic type parameter
type TypeParameter struct {
	Name        string   `yaml:"name"`
	Variance    string   `yaml:"variance,omitempty"`    // in, out
	Constraints []string `yaml:"constraints,omitempty"` // class, class?, struct, unmanaged, notnull, new() or a type
}

// Member represents a field, property, indexer, method or event
type Member struct {
	Name              string           `yaml:"name,omitempty"`
	Kind              string           `yaml:"kind"`                 // field, property, indexer, method, constructor, event
	MethodKind        string           `yaml:"methodKind,omitempty"` // i.e. operator, conversion, destructor
	Accessibility     string           `yaml:"accessibility,omitempty"`
	Modifiers         []string         `yaml:"modifiers,omitempty"`
	Implicit          bool             `yaml:"implicit,omitempty"`
	Type              string           `yaml:"type,omitempty"`    // Field, property or event type
	Returns           string           `yaml:"returns,omitempty"` // Method return type, empty means void
	TypeParameters    []*TypeParameter `yaml:"typeParameters,omitempty"`
	Parameters        []*Parameter     `yaml:"parameters,omitempty"`
	Value             *Constant        `yaml:"value,omitempty"`  // Constant field value
	Getter            string           `yaml:"getter,omitempty"` // Get accessor accessibility, empty means none
	Setter            string           `yaml:"setter,omitempty"` // Set accessor accessibility, empty means none
	InitOnly          bool             `yaml:"initOnly,omitempty"` // Set accessor is declared with init
	ExplicitInterface string           `yaml:"explicitInterface,omitempty"`
	Extension         bool             `yaml:"extension,omitempty"`
	Attributes        []*Attribute     `yaml:"attributes,omitempty"`
	Summary           string           `yaml:"summary,omitempty"`
	Doc               []*DocElement    `yaml:"doc,omitempty"`
}

// Parameter represents a method, indexer or delegate parameter
type Parameter struct {
	Name       string       `yaml:"name"`
	Type       string       `yaml:"type"`
	RefKind    string       `yaml:"refKind,omitempty"` // ref, out, in
	Params     bool         `yaml:"params,omitempty"`
	This       bool         `yaml:"this,omitempty"`
	Default    *Constant    `yaml:"default,omitempty"`
	Attributes []*Attribute `yaml:"attributes,omitempty"`
}

// Attribute represents an attribute instance
type Attribute struct {
	Type      string           `yaml:"type"` // Attribute class metadata name
	Arguments []*Constant      `yaml:"arguments,omitempty"`
	Named     []*NamedArgument `yaml:"named,omitempty"`
}

// NamedArgument represents a name = value attribute argument
type NamedArgument struct {
	Name     string `yaml:"name"`
	Constant `yaml:",inline"`
}

// Constant represents a typed constant, a missing value means null
type Constant struct {
	Type   string      `yaml:"type,omitempty"`   // Constant type, inferred from the value or the declared type when empty
	Value  interface{} `yaml:"value,omitempty"`  // Primitive value or raw enum value
	TypeOf string      `yaml:"typeof,omitempty"` // typeof operand
	Values []*Constant `yaml:"values,omitempty"` // Array elements
}

// DocElement represents a top level documentation comment element
type DocElement struct {
	Name       string            `yaml:"name"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	Text       string            `yaml:"text,omitempty"`
}
