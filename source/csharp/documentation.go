package csharp

import (
	"encoding/xml"
	"io"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

// documentationLines returns the /// comment lines preceding a declaration node
func documentationLines(node *sitter.Node, source []byte) []string {
	var lines []string
	for prev := node.PrevNamedSibling(); prev != nil && prev.Type() == "comment"; prev = prev.PrevNamedSibling() {
		text := strings.TrimSpace(prev.Content(source))
		if !strings.HasPrefix(text, "///") {
			break
		}
		var block []string
		for _, line := range strings.Split(text, "\n") {
			block = append(block, cleanCommentMarker(line))
		}
		lines = append(block, lines...)
	}
	return lines
}

// cleanCommentMarker removes the documentation comment marker of a line
func cleanCommentMarker(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "///")
	return strings.TrimPrefix(line, " ")
}

// parseDocumentation reads top level documentation elements, inline references are replaced with their target names.
// Elements read before a malformed fragment are kept and the decode error is returned with them.
func parseDocumentation(lines []string) (*symbol.Documentation, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	decoder := xml.NewDecoder(strings.NewReader("<doc>" + strings.Join(lines, "\n") + "</doc>"))
	decoder.Strict = false
	decoder.Entity = xml.HTMLEntity
	ret := &symbol.Documentation{}
	var current *symbol.DocElement
	builder := strings.Builder{}
	depth := 0
	var decodeErr error
	for {
		tok, err := decoder.Token()
		if err != nil {
			if err != io.EOF {
				decodeErr = errors.Errorf("malformed documentation comment: %w", err)
			}
			break
		}
		switch actual := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case depth == 2:
				current = &symbol.DocElement{Name: actual.Name.Local}
				for _, attr := range actual.Attr {
					current.Attributes = append(current.Attributes, symbol.DocAttribute{Name: attr.Name.Local, Value: attr.Value})
				}
				builder.Reset()
			case depth > 2 && current != nil:
				builder.WriteString(referenceText(actual))
			}
		case xml.EndElement:
			if depth == 2 && current != nil {
				current.Text = symbol.NormalizeDocText(builder.String())
				ret.Elements = append(ret.Elements, current)
				current = nil
			}
			depth--
		case xml.CharData:
			if current != nil {
				builder.Write(actual)
			}
		}
	}
	if ret.IsEmpty() {
		return nil, decodeErr
	}
	return ret, decodeErr
}

// referenceText returns the display text of see, seealso, paramref and typeparamref elements
func referenceText(element xml.StartElement) string {
	for _, attr := range element.Attr {
		switch attr.Name.Local {
		case "cref":
			value := attr.Value
			if len(value) > 2 && value[1] == ':' {
				value = value[2:]
			}
			return value
		case "langword", "name", "href":
			return attr.Value
		}
	}
	return ""
}
