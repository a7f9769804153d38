package manifest

import (
	"bytes"
	"context"

	slogctx "github.com/veqryn/slog-context"
	"github.com/viant/afs"
	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Source represents a manifest loader
type Source struct {
	fs afs.Service
}

// Option represents a source option
type Option func(*Source)

// WithFS sets the file system service
func WithFS(fs afs.Service) Option {
	return func(s *Source) {
		s.fs = fs
	}
}

// New creates a manifest source
func New(opts ...Option) *Source {
	ret := &Source{}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

// Load loads assemblies described by a manifest URL
func (s *Source) Load(ctx context.Context, URL string) ([]*symbol.Assembly, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Errorf("failed to download %v: %w", URL, err)
	}
	ret, err := Parse(data)
	if err != nil {
		return nil, errors.Errorf("invalid manifest %v: %w", URL, err)
	}
	slogctx.Info(ctx, "manifest loaded", "url", URL, "assemblies", len(ret))
	return ret, nil
}

// Parse decodes a manifest and builds its assemblies, unknown fields and unresolved references are errors
func Parse(data []byte) ([]*symbol.Assembly, error) {
	doc := &Document{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(doc); err != nil {
		return nil, errors.Errorf("failed to decode manifest: %w", err)
	}
	if len(doc.Assemblies) == 0 {
		return nil, errors.New("manifest declares no assemblies")
	}
	return newBuilder().build(doc)
}
