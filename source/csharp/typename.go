package csharp

import (
	"strings"
	"unicode"

	"gitlab.com/tozd/go/errors"
)

var errTypeSyntax = errors.New("invalid type syntax")

type typeShape int

const (
	shapeNamed typeShape = iota
	shapeArray
	shapePointer
	shapeNullable
	shapeTuple
)

// segment represents one dotted component of a qualified type name
type segment struct {
	name      string
	arguments []*typeName
}

// typeName represents a parsed type syntax
type typeName struct {
	shape    typeShape
	alias    string // Alias qualifier, i.e. global
	segments []*segment
	element  *typeName
	rank     int
	elements []*typeName
}

func (t *typeName) simple() bool {
	return t.shape == shapeNamed && t.alias == "" && len(t.segments) == 1 && len(t.segments[0].arguments) == 0
}

// typeLexer splits type syntax into identifiers and punctuation
type typeLexer struct {
	tokens []string
	pos    int
}

func lexType(text string) []string {
	var tokens []string
	runes := []rune(text)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '@' || r == '_' || unicode.IsLetter(r):
			start := i
			i++
			for i < len(runes) && (runes[i] == '_' || unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}
			tokens = append(tokens, strings.TrimPrefix(string(runes[start:i]), "@"))
		case r == ':' && i+1 < len(runes) && runes[i+1] == ':':
			tokens = append(tokens, "::")
			i += 2
		default:
			tokens = append(tokens, string(r))
			i++
		}
	}
	return tokens
}

func (l *typeLexer) peek() string {
	if l.pos < len(l.tokens) {
		return l.tokens[l.pos]
	}
	return ""
}

func (l *typeLexer) next() string {
	ret := l.peek()
	if ret != "" {
		l.pos++
	}
	return ret
}

func (l *typeLexer) expect(token string) error {
	if got := l.next(); got != token {
		return errors.Errorf("expected %q, got %q: %w", token, got, errTypeSyntax)
	}
	return nil
}

func isIdentifier(token string) bool {
	if token == "" {
		return false
	}
	r := []rune(token)[0]
	return r == '_' || unicode.IsLetter(r)
}

// parseTypeName parses type syntax such as List<int>[], int?, (int a, string b) or global::A.B
func parseTypeName(text string) (*typeName, error) {
	l := &typeLexer{tokens: lexType(text)}
	ret, err := l.parseType()
	if err != nil {
		return nil, err
	}
	if l.peek() != "" {
		return nil, errors.Errorf("unexpected %q in %q: %w", l.peek(), text, errTypeSyntax)
	}
	return ret, nil
}

func (l *typeLexer) parseType() (*typeName, error) {
	ret, err := l.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch l.peek() {
		case "?":
			l.next()
			ret = &typeName{shape: shapeNullable, element: ret}
		case "*":
			l.next()
			ret = &typeName{shape: shapePointer, element: ret}
		case "[":
			l.next()
			rank := 1
			for l.peek() == "," {
				l.next()
				rank++
			}
			if err := l.expect("]"); err != nil {
				return nil, err
			}
			ret = &typeName{shape: shapeArray, element: ret, rank: rank}
		default:
			return ret, nil
		}
	}
}

func (l *typeLexer) parsePrimary() (*typeName, error) {
	if l.peek() == "(" {
		l.next()
		ret := &typeName{shape: shapeTuple}
		for {
			element, err := l.parseType()
			if err != nil {
				return nil, err
			}
			if isIdentifier(l.peek()) {
				l.next()
			}
			ret.elements = append(ret.elements, element)
			if l.peek() != "," {
				break
			}
			l.next()
		}
		return ret, l.expect(")")
	}
	ret := &typeName{shape: shapeNamed}
	first := l.next()
	if !isIdentifier(first) {
		return nil, errors.Errorf("expected identifier, got %q: %w", first, errTypeSyntax)
	}
	if l.peek() == "::" {
		l.next()
		ret.alias = first
		if first = l.next(); !isIdentifier(first) {
			return nil, errors.Errorf("expected identifier after alias: %w", errTypeSyntax)
		}
	}
	for name := first; ; {
		seg := &segment{name: name}
		if l.peek() == "<" {
			l.next()
			for {
				if l.peek() == "," || l.peek() == ">" {
					// unbound generic, i.e. Dictionary<,>
					seg.arguments = append(seg.arguments, nil)
				} else {
					argument, err := l.parseType()
					if err != nil {
						return nil, err
					}
					seg.arguments = append(seg.arguments, argument)
				}
				if l.peek() != "," {
					break
				}
				l.next()
			}
			if err := l.expect(">"); err != nil {
				return nil, err
			}
		}
		ret.segments = append(ret.segments, seg)
		if l.peek() != "." {
			return ret, nil
		}
		l.next()
		if name = l.next(); !isIdentifier(name) {
			return nil, errors.Errorf("expected identifier after '.': %w", errTypeSyntax)
		}
	}
}
