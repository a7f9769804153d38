package display

import (
	"strings"

	"github.com/viant/symdef/symbol"
)

// PartKind represents the role of a text fragment
type PartKind int

const (
	PartText PartKind = iota
	PartKeyword
	PartPunctuation
	PartOperator
	PartSpace
	PartLineBreak
	PartIndentation
	PartNamespaceName
	PartClassName
	PartStructName
	PartInterfaceName
	PartEnumName
	PartDelegateName
	PartErrorTypeName
	PartTypeParameterName
	PartMethodName
	PartPropertyName
	PartFieldName
	PartEventName
	PartEnumMemberName
	PartConstantName
	PartParameterName
	PartNumericLiteral
	PartStringLiteral
)

// Part represents a typed text fragment of a rendered definition
type Part struct {
	Kind   PartKind       // Fragment role
	Text   string         // Literal text
	Symbol *symbol.Symbol // Originating symbol, if any
}

// IsTypeName returns true for named type fragments
func (p Part) IsTypeName() bool {
	switch p.Kind {
	case PartClassName, PartStructName, PartInterfaceName, PartEnumName, PartDelegateName, PartErrorTypeName:
		return true
	}
	return false
}

// IsName returns true for fragments naming a symbol
func (p Part) IsName() bool {
	return p.Kind >= PartNamespaceName && p.Kind <= PartParameterName
}

// IsKeyword returns true for the given keyword
func (p Part) IsKeyword(text string) bool {
	return p.Kind == PartKeyword && p.Text == text
}

// IsPunctuation returns true for the given punctuation
func (p Part) IsPunctuation(text string) bool {
	return p.Kind == PartPunctuation && p.Text == text
}

// Parts represents an ordered sequence of fragments
type Parts []Part

// String concatenates fragment texts
func (p Parts) String() string {
	builder := strings.Builder{}
	for _, part := range p {
		builder.WriteString(part.Text)
	}
	return builder.String()
}

// IndexOfKeyword returns index of the first keyword with the given text or -1
func (p Parts) IndexOfKeyword(text string) int {
	for i, part := range p {
		if part.IsKeyword(text) {
			return i
		}
	}
	return -1
}

// HasLineBreak returns true if the sequence spans multiple lines
func (p Parts) HasLineBreak() bool {
	for _, part := range p {
		if part.Kind == PartLineBreak {
			return true
		}
	}
	return false
}

// Insert inserts fragments at index
func (p Parts) Insert(index int, parts ...Part) Parts {
	ret := make(Parts, 0, len(p)+len(parts))
	ret = append(ret, p[:index]...)
	ret = append(ret, parts...)
	return append(ret, p[index:]...)
}

// builder accumulates fragments
type builder struct {
	parts Parts
}

func (b *builder) add(parts ...Part) {
	b.parts = append(b.parts, parts...)
}

func (b *builder) keyword(text string) {
	b.parts = append(b.parts, Part{Kind: PartKeyword, Text: text})
}

func (b *builder) punctuation(text string) {
	b.parts = append(b.parts, Part{Kind: PartPunctuation, Text: text})
}

func (b *builder) operator(text string) {
	b.parts = append(b.parts, Part{Kind: PartOperator, Text: text})
}

func (b *builder) space() {
	b.parts = append(b.parts, spacePart)
}

// lineBreak drops a trailing space before breaking the line
func (b *builder) lineBreak() {
	if n := len(b.parts); n > 0 && b.parts[n-1].Kind == PartSpace {
		b.parts = b.parts[:n-1]
	}
	b.parts = append(b.parts, lineBreakPart)
}

func (b *builder) indentation(text string) {
	b.parts = append(b.parts, Part{Kind: PartIndentation, Text: text})
}

func (b *builder) name(kind PartKind, text string, s *symbol.Symbol) {
	b.parts = append(b.parts, Part{Kind: kind, Text: text, Symbol: s})
}

func (b *builder) last() *Part {
	if len(b.parts) == 0 {
		return nil
	}
	return &b.parts[len(b.parts)-1]
}

var (
	spacePart     = Part{Kind: PartSpace, Text: " "}
	lineBreakPart = Part{Kind: PartLineBreak, Text: "\n"}
)

// typeNameKind returns fragment kind of a named type
func typeNameKind(s *symbol.Symbol) PartKind {
	if s == nil {
		return PartErrorTypeName
	}
	switch s.TypeKind() {
	case symbol.TypeKindStruct:
		return PartStructName
	case symbol.TypeKindInterface:
		return PartInterfaceName
	case symbol.TypeKindEnum:
		return PartEnumName
	case symbol.TypeKindDelegate:
		return PartDelegateName
	}
	return PartClassName
}
