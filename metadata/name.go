package metadata

import (
	"strings"
	"unicode"

	"gitlab.com/tozd/go/errors"
)

// ErrMalformedName is returned when a metadata name pattern cannot be parsed
var ErrMalformedName = errors.New("malformed metadata name")

// Name represents a parsed metadata name, i.e. System.Collections.Generic.Dictionary`2+KeyCollection
type Name struct {
	Namespaces      []string // Containing namespace segments from the root
	ContainingTypes []string // Containing type segments from the outermost
	Name            string   // Simple metadata name including arity suffix
}

// Parse parses dotted namespaces followed by + separated type segments
func Parse(text string) (Name, error) {
	ret := Name{}
	if text == "" {
		return ret, errors.Errorf("%w: empty name", ErrMalformedName)
	}
	typeSegments := strings.Split(text, "+")
	dotted := strings.Split(typeSegments[0], ".")
	for _, segment := range dotted {
		if err := validateSegment(text, segment); err != nil {
			return ret, err
		}
	}
	for _, segment := range typeSegments[1:] {
		if err := validateSegment(text, segment); err != nil {
			return ret, err
		}
	}
	if len(typeSegments) == 1 {
		ret.Namespaces = dotted[:len(dotted)-1]
		ret.Name = dotted[len(dotted)-1]
		return ret, nil
	}
	ret.Namespaces = dotted[:len(dotted)-1]
	ret.ContainingTypes = append([]string{dotted[len(dotted)-1]}, typeSegments[1:len(typeSegments)-1]...)
	ret.Name = typeSegments[len(typeSegments)-1]
	return ret, nil
}

// MustParse parses a name, it panics on malformed input
func MustParse(text string) Name {
	ret, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return ret
}

func validateSegment(text, segment string) error {
	if segment == "" {
		return errors.Errorf("%w: %q has an empty segment", ErrMalformedName, text)
	}
	tick := strings.IndexByte(segment, '`')
	identifier := segment
	if tick != -1 {
		identifier = segment[:tick]
		arity := segment[tick+1:]
		if arity == "" || strings.TrimFunc(arity, unicode.IsDigit) != "" {
			return errors.Errorf("%w: %q has invalid arity %q", ErrMalformedName, text, segment)
		}
	}
	if identifier == "" {
		return errors.Errorf("%w: %q has an empty segment", ErrMalformedName, text)
	}
	for i, r := range identifier {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return errors.Errorf("%w: %q has invalid character %q", ErrMalformedName, text, r)
		}
	}
	return nil
}

// HasContainingTypes returns true if the name denotes a nested type or its member
func (n Name) HasContainingTypes() bool {
	return len(n.ContainingTypes) > 0
}

// String returns the canonical metadata name
func (n Name) String() string {
	builder := strings.Builder{}
	for _, ns := range n.Namespaces {
		builder.WriteString(ns)
		builder.WriteByte('.')
	}
	for _, typ := range n.ContainingTypes {
		builder.WriteString(typ)
		builder.WriteByte('+')
	}
	builder.WriteString(n.Name)
	return builder.String()
}
