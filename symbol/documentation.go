package symbol

import (
	"encoding/xml"
	"strings"
)

// Documentation represents a structured documentation comment
type Documentation struct {
	Elements []*DocElement // Top level elements, i.e. summary, param, returns
}

// DocElement represents a documentation comment element
type DocElement struct {
	Name       string         // Element name
	Attributes []DocAttribute // Element attributes, i.e. name for param
	Text       string         // Element inner text, whitespace normalized
}

// DocAttribute represents a name value pair on a documentation element
type DocAttribute struct {
	Name  string
	Value string
}

// Element returns the first element with the given name
func (d *Documentation) Element(name string) *DocElement {
	if d == nil {
		return nil
	}
	for _, element := range d.Elements {
		if element.Name == name {
			return element
		}
	}
	return nil
}

// Summary returns summary text
func (d *Documentation) Summary() string {
	if element := d.Element("summary"); element != nil {
		return element.Text
	}
	return ""
}

// IsEmpty returns true if there are no elements
func (d *Documentation) IsEmpty() bool {
	return d == nil || len(d.Elements) == 0
}

// Attribute returns attribute value by name
func (e *DocElement) Attribute(name string) string {
	for _, attribute := range e.Attributes {
		if attribute.Name == name {
			return attribute.Value
		}
	}
	return ""
}

// NormalizeDocText collapses whitespace runs to a single space
func NormalizeDocText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// XML returns the element as a single line, i.e. <param name="x">Value.</param>
func (e *DocElement) XML() string {
	builder := strings.Builder{}
	builder.WriteByte('<')
	builder.WriteString(e.Name)
	for _, attribute := range e.Attributes {
		builder.WriteByte(' ')
		builder.WriteString(attribute.Name)
		builder.WriteString(`="`)
		_ = xml.EscapeText(&builder, []byte(attribute.Value))
		builder.WriteByte('"')
	}
	if e.Text == "" {
		builder.WriteString(" />")
		return builder.String()
	}
	builder.WriteByte('>')
	_ = xml.EscapeText(&builder, []byte(e.Text))
	builder.WriteString("</")
	builder.WriteString(e.Name)
	builder.WriteByte('>')
	return builder.String()
}

// Lines returns elements as single line XML
func (d *Documentation) Lines() []string {
	if d == nil {
		return nil
	}
	result := make([]string, 0, len(d.Elements))
	for _, element := range d.Elements {
		result = append(result, element.XML())
	}
	return result
}
