package display

import "github.com/viant/symdef/symbol"

// depth tracks nesting of brackets within a parameter list
type depth struct {
	angle, paren, brace, bracket int
}

func (d *depth) update(part Part) {
	if part.Kind != PartPunctuation {
		return
	}
	switch part.Text {
	case "<":
		d.angle++
	case ">":
		d.angle--
	case "(":
		d.paren++
	case ")":
		d.paren--
	case "{":
		d.brace++
	case "}":
		d.brace--
	case "[":
		d.bracket++
	case "]":
		d.bracket--
	}
}

// topLevel returns true when the scan is directly within the parameter list
func (d *depth) topLevel(indexer bool) bool {
	if d.angle != 0 || d.brace != 0 {
		return false
	}
	if indexer {
		return d.paren == 0 && d.bracket == 1
	}
	return d.paren == 1 && d.bracket == 0
}

func (d *depth) closed() bool {
	return d.paren == 0 && d.bracket == 0
}

// parameterListStart returns index of the punctuation opening the parameter list of s or -1
func parameterListStart(s *symbol.Symbol, parts Parts) (int, bool) {
	indexer := s.Kind == symbol.KindProperty && s.IsIndexer()
	if indexer {
		for i, part := range parts {
			if part.IsKeyword("this") && part.Symbol == s {
				if i+1 < len(parts) && parts[i+1].IsPunctuation("[") {
					return i + 1, true
				}
				return -1, true
			}
		}
		return -1, true
	}
	for i, part := range parts {
		if part.IsPunctuation("(") {
			return i, false
		}
	}
	return -1, false
}

// parameterStarts returns indexes of the first fragment of every parameter
func parameterStarts(s *symbol.Symbol, parts Parts) []int {
	start, indexer := parameterListStart(s, parts)
	if start == -1 {
		return nil
	}
	d := depth{}
	d.update(parts[start])
	result := []int{start + 1}
	for i := start + 1; i < len(parts); i++ {
		part := parts[i]
		d.update(part)
		if d.closed() {
			break
		}
		if part.IsPunctuation(",") && d.topLevel(indexer) && i+1 < len(parts) && parts[i+1].Kind == PartSpace {
			result = append(result, i+2)
		}
	}
	return result
}

// addParameterAttributes inserts visible attributes of each parameter before its definition
func addParameterAttributes(parts Parts, s *symbol.Symbol, params []*symbol.Parameter, f *Format) (Parts, error) {
	starts := parameterStarts(s, parts)
	if len(starts) != len(params) {
		return parts, nil
	}
	for i := len(params) - 1; i >= 0; i-- {
		attributes, err := attributeList(f.visibleAttributes(params[i].Attributes), f, s, false, false)
		if err != nil {
			return nil, err
		}
		if len(attributes) == 0 {
			continue
		}
		parts = parts.Insert(starts[i], append(attributes, spacePart)...)
	}
	return parts, nil
}

// FormatParameters places every parameter of s on its own indented line
func FormatParameters(s *symbol.Symbol, parts Parts, indentChars string) Parts {
	start, indexer := parameterListStart(s, parts)
	if start == -1 {
		return parts
	}
	if indentChars == "" {
		indentChars = DefaultIndentChars
	}
	indentation := Part{Kind: PartIndentation, Text: indentChars}
	ret := make(Parts, 0, len(parts)+8)
	ret = append(ret, parts[:start+1]...)
	ret = append(ret, lineBreakPart, indentation)
	d := depth{}
	d.update(parts[start])
	i := start + 1
	for ; i < len(parts); i++ {
		part := parts[i]
		d.update(part)
		ret = append(ret, part)
		if d.closed() {
			i++
			break
		}
		if part.IsPunctuation(",") && d.topLevel(indexer) && i+1 < len(parts) && parts[i+1].Kind == PartSpace {
			ret = append(ret, lineBreakPart, indentation)
			i++
		}
	}
	return append(ret, parts[i:]...)
}

// ReplaceDefaultExpression rewrites default(T) parameter values of s as the default literal
func ReplaceDefaultExpression(s *symbol.Symbol, parts Parts) Parts {
	start, _ := parameterListStart(s, parts)
	if start == -1 {
		return parts
	}
	ret := make(Parts, 0, len(parts))
	ret = append(ret, parts[:start]...)
	d := depth{}
	for i := start; i < len(parts); i++ {
		part := parts[i]
		d.update(part)
		ret = append(ret, part)
		if d.closed() {
			return append(ret, parts[i+1:]...)
		}
		if !part.IsPunctuation("=") || i+3 >= len(parts) {
			continue
		}
		if parts[i+1].Kind != PartSpace || !parts[i+2].IsKeyword("default") || !parts[i+3].IsPunctuation("(") {
			continue
		}
		ret = append(ret, parts[i+1], parts[i+2])
		nested := 0
		j := i + 3
		for ; j < len(parts); j++ {
			if parts[j].IsPunctuation("(") {
				nested++
			} else if parts[j].IsPunctuation(")") {
				nested--
				if nested == 0 {
					break
				}
			}
		}
		i = j
	}
	return ret
}
