// Package source loads assemblies from C# sources and symbol manifests
package source

import (
	"context"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/symdef/source/csharp"
	"github.com/viant/symdef/source/manifest"
	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
)

// ErrUnsupported is returned for inputs no source can load
var ErrUnsupported = errors.New("unsupported input")

// Source provides assemblies of an input URL
type Source interface {
	// Load loads assemblies declared by URL
	Load(ctx context.Context, URL string) ([]*symbol.Assembly, error)
}

// Config represents source settings
type Config struct {
	AssemblyName    string
	AssemblyVersion string
	Include         []string // Globs of loaded C# files, relative to a directory or archive
	Exclude         []string // Globs of skipped C# files
}

// Factory creates appropriate sources based on input URL
type Factory struct {
	fs     afs.Service
	config *Config
}

// NewFactory creates a source factory
func NewFactory(fs afs.Service, config *Config) *Factory {
	if fs == nil {
		fs = afs.New()
	}
	if config == nil {
		config = &Config{}
	}
	return &Factory{fs: fs, config: config}
}

// GetSource returns a source based on URL extension, URLs without extension are directories of C# files
func (f *Factory) GetSource(URL string) (Source, error) {
	ext := strings.ToLower(path.Ext(strings.TrimSuffix(URL, "/")))
	if strings.HasSuffix(URL, "/") {
		ext = ""
	}
	switch ext {
	case "", ".cs", ".txtar":
		return f.csharp(), nil
	case ".yaml", ".yml":
		return manifest.New(manifest.WithFS(f.fs)), nil
	default:
		return nil, errors.Errorf("%w: unsupported file type: %s", ErrUnsupported, ext)
	}
}

func (f *Factory) csharp() *csharp.Source {
	opts := []csharp.Option{csharp.WithFS(f.fs), csharp.WithAssemblyName(f.config.AssemblyName), csharp.WithAssemblyVersion(f.config.AssemblyVersion)}
	if len(f.config.Include) > 0 {
		opts = append(opts, csharp.WithInclude(f.config.Include...))
	}
	if len(f.config.Exclude) > 0 {
		opts = append(opts, csharp.WithExclude(f.config.Exclude...))
	}
	return csharp.New(opts...)
}

// Load is a convenience method that gets the appropriate source and loads every URL, directories with dotted names are also accepted
func (f *Factory) Load(ctx context.Context, URLs ...string) ([]*symbol.Assembly, error) {
	var ret []*symbol.Assembly
	for _, URL := range URLs {
		src, err := f.GetSource(URL)
		if err != nil {
			object, objectErr := f.fs.Object(ctx, URL)
			if objectErr != nil || !object.IsDir() {
				return nil, err
			}
			src = f.csharp()
		}
		assemblies, err := src.Load(ctx, URL)
		if err != nil {
			return nil, err
		}
		ret = append(ret, assemblies...)
	}
	return ret, nil
}
