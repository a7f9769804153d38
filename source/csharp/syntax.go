package csharp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/symdef/symbol"
)

var accessKeywords = map[string]bool{"public": true, "private": true, "protected": true, "internal": true}

// header represents attributes, modifiers and keywords of a declaration node
type header struct {
	attributes []*sitter.Node
	access     []string
	modifiers  symbol.Modifiers
	keywords   map[string]bool // Anonymous tokens, i.e. class, event, implicit
}

func (h *header) add(word string) {
	if accessKeywords[word] {
		h.access = append(h.access, word)
		return
	}
	if modifier, err := symbol.ParseModifier(word); err == nil {
		h.modifiers |= modifier
	}
}

// accessibility returns declared accessibility or fallback when none is declared
func (h *header) accessibility(fallback symbol.Accessibility) symbol.Accessibility {
	if len(h.access) == 0 {
		return fallback
	}
	ret, err := symbol.ParseAccessibility(strings.Join(h.access, " "))
	if err != nil {
		return fallback
	}
	return ret
}

func parseHeader(node *sitter.Node, source []byte) *header {
	ret := &header{keywords: map[string]bool{}}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "attribute_list":
			ret.attributes = append(ret.attributes, child)
			continue
		case "modifier", "parameter_modifier":
			for _, word := range strings.Fields(child.Content(source)) {
				ret.keywords[word] = true
				ret.add(word)
			}
			continue
		}
		if !child.IsNamed() {
			ret.keywords[child.Type()] = true
			ret.add(child.Type())
		}
	}
	return ret
}

// fieldNode returns the first child found under one of the field names
func fieldNode(node *sitter.Node, names ...string) *sitter.Node {
	for _, name := range names {
		if child := node.ChildByFieldName(name); child != nil {
			return child
		}
	}
	return nil
}

// childOfType returns the first named child of one of the types
func childOfType(node *sitter.Node, types ...string) *sitter.Node {
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(int(i))
		for _, typ := range types {
			if child.Type() == typ {
				return child
			}
		}
	}
	return nil
}

func childrenOfType(node *sitter.Node, types ...string) []*sitter.Node {
	var ret []*sitter.Node
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(int(i))
		for _, typ := range types {
			if child.Type() == typ {
				ret = append(ret, child)
			}
		}
	}
	return ret
}

// initializer returns the expression text after = of a declarator or parameter
func initializer(node *sitter.Node, source []byte) string {
	if clause := childOfType(node, "equals_value_clause"); clause != nil {
		return strings.TrimPrefix(strings.TrimSpace(clause.Content(source)), "=")
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); !child.IsNamed() && child.Type() == "=" {
			return strings.TrimSpace(string(source[child.EndByte():node.EndByte()]))
		}
	}
	return ""
}

// splitTopLevel splits text by sep outside of brackets and literals
func splitTopLevel(text string, sep byte) []string {
	var ret []string
	depth := 0
	start := 0
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case sep:
			if depth == 0 {
				ret = append(ret, strings.TrimSpace(text[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(text[start:]); last != "" || len(ret) > 0 {
		ret = append(ret, last)
	}
	return ret
}

// colon returns the index of the first single colon outside of brackets, -1 if there is none
func colon(text string) int {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case ':':
			if i+1 < len(text) && text[i+1] == ':' {
				i++
				continue
			}
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// typeText normalizes type syntax removing ref returns and scoped modifiers
func typeText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	for _, prefix := range []string{"ref readonly ", "ref ", "scoped "} {
		text = strings.TrimPrefix(text, prefix)
	}
	return text
}
