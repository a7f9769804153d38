// Package markdown writes definition lists as Markdown lines with optional links to type documentation
package markdown

import (
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/viant/symdef/display"
	"github.com/viant/symdef/listing/text"
	"github.com/viant/symdef/listing/writer"
	"github.com/viant/symdef/symbol"
)

const (
	space     = "&nbsp;"
	lineBreak = "  \n"
	readme    = "README.md"
)

var escaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "#", `\#`, "|", `\|`, "~", `\~`,
)

var entity = regexp.MustCompile(`&(#[0-9]+|#x[0-9A-Fa-f]+|[A-Za-z][A-Za-z0-9]*);`)

// Escape escapes Markdown control characters
func Escape(text string) string {
	return escaper.Replace(text)
}

// EscapeMarkup escapes Markdown control characters of XML markup, character and entity references are kept
func EscapeMarkup(text string) string {
	builder := strings.Builder{}
	offset := 0
	for _, match := range entity.FindAllStringIndex(text, -1) {
		builder.WriteString(escaper.Replace(text[offset:match[0]]))
		builder.WriteString(text[match[0]:match[1]])
		offset = match[1]
	}
	builder.WriteString(escaper.Replace(text[offset:]))
	return builder.String()
}

// style renders markdown fragments, type names of listed assemblies link to rootURL
type style struct {
	rootURL    string
	assemblies map[*symbol.Assembly]bool
}

func (s *style) Indent(indentation string, level int) string {
	return strings.Repeat(space, utf8.RuneCountInString(indentation)*level)
}

func (s *style) Part(part display.Part) string {
	switch {
	case part.Kind == display.PartIndentation:
		return s.Indent(part.Text, 1)
	case part.Kind == display.PartSpace:
		return part.Text
	case part.IsTypeName():
		if url := s.URL(part.Symbol); url != "" {
			return "[" + Escape(part.Text) + "](" + url + ")"
		}
	}
	return Escape(part.Text)
}

func (s *style) Text(text string) string {
	return EscapeMarkup(text)
}

func (s *style) LineBreak() string {
	return lineBreak
}

// URL returns documentation URL of a type defined in a listed assembly, empty when the type is not linked
func (s *style) URL(typ *symbol.Symbol) string {
	if s.rootURL == "" || typ == nil || typ.Kind != symbol.KindType || !s.assemblies[typ.Assembly] {
		return ""
	}
	segments := []string{strings.TrimSuffix(s.rootURL, "/")}
	segments = append(segments, typ.NamespaceNames()...)
	for _, containing := range typ.ContainingTypes() {
		segments = append(segments, pathSegment(containing))
	}
	segments = append(segments, pathSegment(typ), readme)
	return strings.Join(segments, "/")
}

func pathSegment(typ *symbol.Symbol) string {
	return strings.ReplaceAll(typ.MetadataName(), "`", "-")
}

// Backend represents a markdown backend
type Backend struct {
	*text.Backend
	style *style
}

// New creates a markdown backend, an empty rootURL disables links
func New(out io.Writer, rootURL string) *Backend {
	style := &style{rootURL: rootURL, assemblies: map[*symbol.Assembly]bool{}}
	return &Backend{Backend: text.NewStyled(out, style), style: style}
}

// Start records listed assemblies so that only their types are linked
func (b *Backend) Start(node writer.Node, entry *writer.Entry) error {
	if node == writer.NodeAssemblies {
		for _, assembly := range entry.Assemblies {
			b.style.assemblies[assembly] = true
		}
	}
	return b.Backend.Start(node, entry)
}

// URL returns documentation URL of a type
func (b *Backend) URL(typ *symbol.Symbol) string {
	return b.style.URL(typ)
}
