// Package xml writes definition lists as an indented XML document
package xml

import (
	"io"
	"strings"

	"github.com/viant/symdef/listing/writer"
)

const declaration = `<?xml version="1.0" encoding="utf-8"?>`

var layoutNames = map[writer.Layout]string{
	writer.LayoutNamespaceList:      "NamespaceList",
	writer.LayoutNamespaceHierarchy: "NamespaceHierarchy",
	writer.LayoutTypeHierarchy:      "TypeHierarchy",
}

var elementNames = map[writer.Node]string{
	writer.NodeDocument:    "Root",
	writer.NodeAssemblies:  "Assemblies",
	writer.NodeAssembly:    "Assembly",
	writer.NodeNamespaces:  "Namespaces",
	writer.NodeNamespace:   "Namespace",
	writer.NodeTypes:       "Types",
	writer.NodeType:        "Type",
	writer.NodeMembers:     "Members",
	writer.NodeMember:      "Member",
	writer.NodeEnumMembers: "Members",
	writer.NodeEnumMember:  "Member",
	writer.NodeAttributes:  "Attributes",
	writer.NodeAttribute:   "Attribute",
}

var (
	textEscaper      = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attributeEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;")
)

// element represents an open element
type element struct {
	name     string
	open     bool // Whether the start tag still accepts attributes
	children bool // Whether child elements were written
}

// Backend represents an XML backend, definitions are written as single line attribute values
type Backend struct {
	writer.Depth
	out      io.Writer
	format   *writer.Format
	elements []*element
}

// New creates an XML backend writing to out
func New(out io.Writer) *Backend {
	return &Backend{out: out, format: writer.DefaultFormat()}
}

func (b *Backend) Capabilities() writer.Capabilities {
	return writer.Capabilities{DefinitionFirst: true, OmitNamespaceKeyword: true}
}

func (b *Backend) Start(node writer.Node, entry *writer.Entry) error {
	if node == writer.NodeDocument {
		if entry.Format != nil {
			b.format = entry.Format
		}
		if err := b.write(declaration); err != nil {
			return err
		}
	}
	if err := b.startElement(elementNames[node]); err != nil {
		return err
	}
	if node == writer.NodeDocument {
		if err := b.attribute("Layout", layoutNames[b.format.Layout]); err != nil {
			return err
		}
		if b.format.GroupByAssembly {
			return b.attribute("IsGroupedByAssembly", "True")
		}
	}
	return nil
}

func (b *Backend) Write(node writer.Node, entry *writer.Entry) error {
	switch node {
	case writer.NodeAssembly:
		return b.attribute("Name", entry.Assembly.Identity())
	case writer.NodeNamespace:
		if entry.Symbol.IsGlobalNamespace() {
			return b.attribute("Name", "")
		}
		return b.attribute("Name", entry.Definition.String())
	case writer.NodeType, writer.NodeMember, writer.NodeEnumMember:
		return b.attribute("Def", entry.Definition.String())
	case writer.NodeAttribute:
		return b.text(entry.Definition.String())
	}
	return nil
}

func (b *Backend) End(node writer.Node, entry *writer.Entry) error {
	if err := b.endElement(); err != nil {
		return err
	}
	if node == writer.NodeDocument {
		return b.write("\n")
	}
	return nil
}

func (b *Backend) Separator(node writer.Node, entry *writer.Entry) error {
	return nil
}

// Documentation writes a Doc element holding documentation elements verbatim, one per line
func (b *Backend) Documentation(node writer.Node, entry *writer.Entry) error {
	lines := entry.Documentation.Lines()
	if len(lines) == 0 {
		return nil
	}
	if err := b.startElement("Doc"); err != nil {
		return err
	}
	if err := b.closeStartTag(); err != nil {
		return err
	}
	for _, line := range lines {
		if err := b.newLine(b.Level()); err != nil {
			return err
		}
		if err := b.write(line); err != nil {
			return err
		}
	}
	b.top().children = true
	return b.endElement()
}

func (b *Backend) top() *element {
	if len(b.elements) == 0 {
		return nil
	}
	return b.elements[len(b.elements)-1]
}

func (b *Backend) startElement(name string) error {
	if parent := b.top(); parent != nil {
		if err := b.closeStartTag(); err != nil {
			return err
		}
		parent.children = true
	}
	if err := b.newLine(b.Level()); err != nil {
		return err
	}
	if err := b.write("<" + name); err != nil {
		return err
	}
	b.elements = append(b.elements, &element{name: name, open: true})
	b.Increase()
	return nil
}

func (b *Backend) endElement() error {
	current := b.top()
	if current == nil {
		return writer.ErrDepth
	}
	if err := b.Decrease(); err != nil {
		return err
	}
	b.elements = b.elements[:len(b.elements)-1]
	if current.open {
		return b.write(" />")
	}
	if current.children {
		if err := b.newLine(b.Level()); err != nil {
			return err
		}
	}
	return b.write("</" + current.name + ">")
}

func (b *Backend) attribute(name, value string) error {
	current := b.top()
	if current == nil || !current.open {
		return nil
	}
	return b.write(" " + name + `="` + attributeEscaper.Replace(value) + `"`)
}

func (b *Backend) text(value string) error {
	if err := b.closeStartTag(); err != nil {
		return err
	}
	return b.write(textEscaper.Replace(value))
}

func (b *Backend) closeStartTag() error {
	current := b.top()
	if current == nil || !current.open {
		return nil
	}
	current.open = false
	return b.write(">")
}

func (b *Backend) newLine(level int) error {
	return b.write("\n" + strings.Repeat(b.format.Indentation(), level))
}

func (b *Backend) write(text string) error {
	_, err := io.WriteString(b.out, text)
	return err
}
