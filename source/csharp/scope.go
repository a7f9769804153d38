package csharp

import (
	"strings"

	"github.com/viant/symdef/symbol"
)

// scope represents the name lookup context of a declaration
type scope struct {
	namespace  *symbol.Symbol
	container  *symbol.Symbol // Namespace or type receiving declarations
	usings     []string
	aliases    map[string]string
	types      []*symbol.Symbol // Containing types, innermost last
	typeParams []string         // Method or delegate type parameters
}

func (s *scope) withNamespace(ns *symbol.Symbol) *scope {
	ret := &scope{namespace: ns, container: ns, aliases: map[string]string{}}
	ret.usings = append(ret.usings, s.usings...)
	for k, v := range s.aliases {
		ret.aliases[k] = v
	}
	return ret
}

func (s *scope) withType(typ *symbol.Symbol) *scope {
	ret := *s
	ret.container = typ
	ret.types = append(append([]*symbol.Symbol{}, s.types...), typ)
	ret.typeParams = nil
	return &ret
}

func (s *scope) withTypeParams(names []string) *scope {
	ret := *s
	ret.typeParams = append(append([]string{}, s.typeParams...), names...)
	return &ret
}

// addUsing records a using directive, static usings are ignored
func (s *scope) addUsing(text string) {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), ";"))
	fields := strings.Fields(text)
	for len(fields) > 0 && (fields[0] == "global" || fields[0] == "using") {
		fields = fields[1:]
	}
	if len(fields) == 0 || fields[0] == "static" {
		return
	}
	text = strings.Join(fields, " ")
	if idx := strings.IndexByte(text, '='); idx != -1 {
		alias := strings.TrimSpace(text[:idx])
		target := strings.Join(strings.Fields(text[idx+1:]), "")
		s.aliases[alias] = strings.TrimPrefix(target, "global::")
		return
	}
	s.usings = append(s.usings, strings.TrimPrefix(strings.Join(fields, ""), "global::"))
}

func (s *scope) isTypeParam(name string) bool {
	for _, candidate := range s.typeParams {
		if candidate == name {
			return true
		}
	}
	for i := len(s.types) - 1; i >= 0; i-- {
		for _, param := range s.types[i].TypeParameters {
			if param.Name == name {
				return true
			}
		}
	}
	return false
}
