package manifest

import (
	"strconv"
	"strings"

	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

// scope represents type parameters visible to a reference
type scope struct {
	typeParameters []string
}

func newScope(typ *symbol.Symbol) *scope {
	ret := &scope{}
	for current := typ; current != nil && current.Kind == symbol.KindType; current = current.Containing {
		for _, param := range current.TypeParameters {
			ret.typeParameters = append(ret.typeParameters, param.Name)
		}
	}
	return ret
}

func (s *scope) withTypeParameters(params []*symbol.TypeParameter) *scope {
	ret := &scope{typeParameters: append([]string{}, s.typeParameters...)}
	for _, param := range params {
		ret.typeParameters = append(ret.typeParameters, param.Name)
	}
	return ret
}

func (s *scope) has(name string) bool {
	for _, candidate := range s.typeParameters {
		if candidate == name {
			return true
		}
	}
	return false
}

// typeRef resolves a reference, failures are collected and reported after the build
func (b *builder) typeRef(text string, sc *scope) *symbol.TypeRef {
	ret, err := b.parseRef(strings.TrimSpace(text), sc)
	if err != nil {
		b.fail(err)
		return symbol.Unresolved(text)
	}
	return ret
}

// parseRef parses Namespace.Type`1+Nested<Argument> references with [], [,], * and ? suffixes, keywords and type parameter names
func (b *builder) parseRef(text string, sc *scope) (*symbol.TypeRef, error) {
	switch {
	case text == "":
		return nil, errors.Errorf("%w: empty type name", ErrUnresolvedReference)
	case strings.HasSuffix(text, "?"):
		ret, err := b.parseRef(strings.TrimSpace(text[:len(text)-1]), sc)
		if err != nil {
			return nil, err
		}
		ret.Nullable = true
		return ret, nil
	case strings.HasSuffix(text, "*"):
		element, err := b.parseRef(strings.TrimSpace(text[:len(text)-1]), sc)
		if err != nil {
			return nil, err
		}
		return symbol.PointerTo(element), nil
	case strings.HasSuffix(text, "]"):
		idx := strings.LastIndexByte(text, '[')
		if idx <= 0 || strings.Trim(text[idx+1:len(text)-1], ", ") != "" {
			return nil, errors.Errorf("%w: %v", ErrUnresolvedReference, text)
		}
		element, err := b.parseRef(strings.TrimSpace(text[:idx]), sc)
		if err != nil {
			return nil, err
		}
		return symbol.ArrayOf(element, strings.Count(text[idx:], ",")+1), nil
	}
	name := text
	var arguments []*symbol.TypeRef
	if idx := strings.IndexByte(text, '<'); idx != -1 {
		if !strings.HasSuffix(text, ">") {
			return nil, errors.Errorf("%w: %v", ErrUnresolvedReference, text)
		}
		name = strings.TrimSpace(text[:idx])
		for _, argument := range splitArguments(text[idx+1 : len(text)-1]) {
			ref, err := b.parseRef(argument, sc)
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, ref)
		}
	}
	if len(arguments) == 0 && sc.has(name) {
		return symbol.TypeParameterRef(name), nil
	}
	if full, ok := symbol.KeywordTypes[name]; ok {
		name = full
	}
	if last := name[strings.LastIndexAny(name, ".+")+1:]; len(arguments) > 0 && !strings.Contains(last, "`") {
		name += "`" + strconv.Itoa(len(arguments))
	}
	typ, ok := b.types[name]
	if !ok {
		return nil, errors.Errorf("%w: %v", ErrUnresolvedReference, text)
	}
	return symbol.Named(typ, arguments...), nil
}

// splitArguments splits generic arguments by top level commas
func splitArguments(text string) []string {
	var ret []string
	depth, start := 0, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '<', '[':
			depth++
		case '>', ']':
			depth--
		case ',':
			if depth == 0 {
				ret = append(ret, strings.TrimSpace(text[start:i]))
				start = i + 1
			}
		}
	}
	return append(ret, strings.TrimSpace(text[start:]))
}
