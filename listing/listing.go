// Package listing renders definition lists of assemblies into text, XML and Markdown outputs
package listing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	slogctx "github.com/veqryn/slog-context"
	"github.com/viant/afs"
	"github.com/viant/symdef/compare"
	"github.com/viant/symdef/filter"
	"github.com/viant/symdef/listing/markdown"
	"github.com/viant/symdef/listing/text"
	"github.com/viant/symdef/listing/writer"
	"github.com/viant/symdef/listing/xml"
	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

// Kind represents an output format
type Kind int

const (
	KindText Kind = iota
	KindXML
	KindMarkdown
)

func (k Kind) String() string {
	switch k {
	case KindXML:
		return "xml"
	case KindMarkdown:
		return "markdown"
	}
	return "text"
}

// KindOf returns output format of a URL by its extension, anything but .xml and .md is text
func KindOf(URL string) Kind {
	switch strings.ToLower(path.Ext(URL)) {
	case ".xml":
		return KindXML
	case ".md":
		return KindMarkdown
	}
	return KindText
}

// Output represents a written definition list
type Output struct {
	URL  string
	Kind Kind
	Size int
	Hash uint64 // Content digest
}

// Result represents a listing run
type Result struct {
	Summary *Summary
	Text    string // Text rendering
	Outputs []*Output
}

// Service renders and stores definition lists
type Service struct {
	fs            afs.Service
	filter        *filter.Options
	format        *writer.Format
	comparer      *compare.Comparer
	documentation writer.DocumentationProvider
	rootURL       string
}

// Option represents a service option
type Option func(*Service)

// WithFS sets file system used for outputs
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithFilter sets symbol filter
func WithFilter(options *filter.Options) Option {
	return func(s *Service) {
		s.filter = options
	}
}

// WithFormat sets list format
func WithFormat(format *writer.Format) Option {
	return func(s *Service) {
		s.format = format
	}
}

// WithComparer sets symbol ordering
func WithComparer(comparer *compare.Comparer) Option {
	return func(s *Service) {
		s.comparer = comparer
	}
}

// WithDocumentation sets documentation provider
func WithDocumentation(provider writer.DocumentationProvider) Option {
	return func(s *Service) {
		s.documentation = provider
	}
}

// WithRootURL sets root URL of type documentation linked from Markdown outputs
func WithRootURL(URL string) Option {
	return func(s *Service) {
		s.rootURL = URL
	}
}

// New creates a service
func New(opts ...Option) *Service {
	ret := &Service{
		filter:   filter.New(),
		format:   writer.DefaultFormat(),
		comparer: compare.SystemNamespaceFirst,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

// Backend creates a backend of the given kind writing to out
func (s *Service) Backend(kind Kind, out io.Writer) writer.Backend {
	switch kind {
	case KindXML:
		return xml.New(out)
	case KindMarkdown:
		return markdown.New(out, s.rootURL)
	}
	return text.New(out)
}

// Render writes the definition list of assemblies in the given format
func (s *Service) Render(ctx context.Context, kind Kind, assemblies []*symbol.Assembly) ([]byte, error) {
	out := &bytes.Buffer{}
	opts := []writer.Option{writer.WithFilter(s.filter), writer.WithFormat(s.format), writer.WithComparer(s.comparer)}
	if s.documentation != nil {
		opts = append(opts, writer.WithDocumentation(s.documentation))
	}
	if err := writer.New(s.Backend(kind, out), opts...).WriteDocument(ctx, assemblies); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// List renders the text listing and every output, outputs of the same format share one rendering
func (s *Service) List(ctx context.Context, assemblies []*symbol.Assembly, outputs ...string) (*Result, error) {
	rendered := map[Kind][]byte{}
	render := func(kind Kind) ([]byte, error) {
		if data, ok := rendered[kind]; ok {
			return data, nil
		}
		data, err := s.Render(ctx, kind, assemblies)
		if err != nil {
			return nil, err
		}
		rendered[kind] = data
		return data, nil
	}
	data, err := render(KindText)
	if err != nil {
		return nil, err
	}
	ret := &Result{Summary: NewSummary(assemblies, s.filter), Text: string(data)}
	for _, URL := range outputs {
		kind := KindOf(URL)
		data, err := render(kind)
		if err != nil {
			return nil, err
		}
		if err = s.fs.Upload(ctx, URL, 0o644, bytes.NewReader(data)); err != nil {
			return nil, errors.Errorf("failed to write %v: %w", URL, err)
		}
		hash, err := symbol.Hash(data)
		if err != nil {
			return nil, err
		}
		output := &Output{URL: URL, Kind: kind, Size: len(data), Hash: hash}
		ret.Outputs = append(ret.Outputs, output)
		slogctx.Info(ctx, "definition list written", "url", URL, "format", kind.String(), "size", output.Size, "hash", fmt.Sprintf("%016x", hash))
	}
	slogctx.Debug(ctx, "definition list summary", "summary", ret.Summary)
	return ret, nil
}
