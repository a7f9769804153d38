// Package text writes definition lists as indented lines
package text

import (
	"io"
	"strings"

	"github.com/viant/symdef/display"
	"github.com/viant/symdef/listing/writer"
)

// Style renders indentation, fragments and line ends of a text dialect
type Style interface {
	Indent(indentation string, level int) string
	Part(part display.Part) string
	Text(text string) string
	LineBreak() string
}

// Plain represents unescaped text style
type Plain struct{}

func (Plain) Indent(indentation string, level int) string {
	return strings.Repeat(indentation, level)
}

func (Plain) Part(part display.Part) string {
	return part.Text
}

func (Plain) Text(text string) string {
	return text
}

func (Plain) LineBreak() string {
	return "\n"
}

// Backend represents a text backend
type Backend struct {
	writer.Depth
	out     io.Writer
	style   Style
	format  *writer.Format
	pending bool // Whether indentation is due before the next text
	written bool
}

// New creates a plain text backend writing to out
func New(out io.Writer) *Backend {
	return NewStyled(out, Plain{})
}

// NewStyled creates a text backend writing to out in the given style
func NewStyled(out io.Writer, style Style) *Backend {
	return &Backend{out: out, style: style, format: writer.DefaultFormat(), pending: true}
}

func (b *Backend) Capabilities() writer.Capabilities {
	return writer.Capabilities{Multiline: true}
}

func (b *Backend) multiline() bool {
	return b.format.Multiline(b.Capabilities())
}

func (b *Backend) Start(node writer.Node, entry *writer.Entry) error {
	switch node {
	case writer.NodeDocument:
		if entry.Format != nil {
			b.format = entry.Format
		}
	case writer.NodeNamespaces:
		if b.written {
			return b.lineBreak()
		}
	case writer.NodeTypes:
		if b.format.Layout == writer.LayoutTypeHierarchy && b.written {
			return b.lineBreak()
		}
	case writer.NodeAttributes:
		return b.write(b.style.Text("["))
	}
	return nil
}

func (b *Backend) Write(node writer.Node, entry *writer.Entry) error {
	switch node {
	case writer.NodeAssembly:
		if err := b.write(b.style.Text("assembly " + entry.Assembly.Identity())); err != nil {
			return err
		}
	case writer.NodeNamespace:
		if entry.Symbol.IsGlobalNamespace() {
			return nil
		}
		if err := b.parts(entry.Definition); err != nil {
			return err
		}
	case writer.NodeType, writer.NodeMember, writer.NodeEnumMember:
		if entry.Symbol == nil {
			return nil
		}
		if err := b.parts(entry.Definition); err != nil {
			return err
		}
	case writer.NodeAttribute:
		return b.parts(entry.Definition)
	default:
		return nil
	}
	if err := b.lineBreak(); err != nil {
		return err
	}
	b.Increase()
	return nil
}

func (b *Backend) End(node writer.Node, entry *writer.Entry) error {
	switch node {
	case writer.NodeAssembly:
		return b.Decrease()
	case writer.NodeNamespace:
		if entry.Symbol.IsGlobalNamespace() {
			return nil
		}
		return b.Decrease()
	case writer.NodeType, writer.NodeMember, writer.NodeEnumMember:
		if entry.Symbol == nil {
			return nil
		}
		return b.Decrease()
	case writer.NodeAttributes:
		if err := b.write(b.style.Text("]")); err != nil {
			return err
		}
		if entry.AssemblyLevel || b.multiline() {
			return b.lineBreak()
		}
		return b.write(b.style.Text(" "))
	}
	return nil
}

func (b *Backend) Separator(node writer.Node, entry *writer.Entry) error {
	switch node {
	case writer.NodeAssembly:
		if b.format.Includes(writer.PartAssemblyAttributes) {
			return b.lineBreak()
		}
	case writer.NodeNamespace, writer.NodeMember:
		return b.lineBreak()
	case writer.NodeType:
		if b.format.Layout != writer.LayoutTypeHierarchy {
			return b.lineBreak()
		}
	case writer.NodeAttribute:
		if entry.AssemblyLevel || b.format.FormatOptions.Has(writer.FormatAttributes) && b.multiline() {
			if err := b.write(b.style.Text("]")); err != nil {
				return err
			}
			if err := b.lineBreak(); err != nil {
				return err
			}
			return b.write(b.style.Text("["))
		}
		return b.write(b.style.Text(", "))
	}
	return nil
}

// Documentation writes documentation elements as /// comment lines
func (b *Backend) Documentation(node writer.Node, entry *writer.Entry) error {
	for _, line := range entry.Documentation.Lines() {
		if err := b.write(b.style.Text("/// " + line)); err != nil {
			return err
		}
		if err := b.lineBreak(); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) parts(parts display.Parts) error {
	for _, part := range parts {
		var err error
		if part.Kind == display.PartLineBreak {
			err = b.lineBreak()
		} else {
			err = b.write(b.style.Part(part))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) write(text string) error {
	if text == "" {
		return nil
	}
	if b.pending {
		b.pending = false
		if level := b.Level(); level > 0 {
			if _, err := io.WriteString(b.out, b.style.Indent(b.format.Indentation(), level)); err != nil {
				return err
			}
		}
	}
	b.written = true
	_, err := io.WriteString(b.out, text)
	return err
}

// lineBreak ends the current line, an empty line ends with a bare new line
func (b *Backend) lineBreak() error {
	end := b.style.LineBreak()
	if b.pending {
		end = "\n"
	}
	b.pending = true
	b.written = true
	_, err := io.WriteString(b.out, end)
	return err
}
