// Package csharp loads symbol definitions from C# source files
package csharp

import (
	"context"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	slogctx "github.com/veqryn/slog-context"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/tools/txtar"
)

// Source represents a C# source loader
type Source struct {
	fs      afs.Service
	name    string
	version string
	include []string
	exclude []string
}

// Option represents a source option
type Option func(*Source)

// WithFS sets the file system service
func WithFS(fs afs.Service) Option {
	return func(s *Source) {
		s.fs = fs
	}
}

// WithAssemblyName sets assembly name, it defaults to the base name of the loaded URL
func WithAssemblyName(name string) Option {
	return func(s *Source) {
		s.name = name
	}
}

// WithAssemblyVersion sets assembly version
func WithAssemblyVersion(version string) Option {
	return func(s *Source) {
		s.version = version
	}
}

// WithInclude sets glob patterns of loaded files
func WithInclude(patterns ...string) Option {
	return func(s *Source) {
		s.include = patterns
	}
}

// WithExclude sets glob patterns of skipped files
func WithExclude(patterns ...string) Option {
	return func(s *Source) {
		s.exclude = patterns
	}
}

// New creates a C# source
func New(opts ...Option) *Source {
	ret := &Source{
		include: []string{"**/*.cs"},
		exclude: []string{"**/bin/**", "**/obj/**"},
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

// file represents a compilation unit
type file struct {
	name    string
	content []byte
}

// Load loads the assembly declared by a .cs file, a .txtar archive or a directory
func (s *Source) Load(ctx context.Context, URL string) ([]*symbol.Assembly, error) {
	files, err := s.files(ctx, URL)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no C# sources found in %v", URL)
	}
	name := s.name
	if name == "" {
		name = path.Base(strings.TrimSuffix(URL, "/"))
		switch ext := path.Ext(name); strings.ToLower(ext) {
		case ".cs", ".txtar":
			name = strings.TrimSuffix(name, ext)
		}
	}
	assembly, err := s.load(ctx, name, files)
	if err != nil {
		return nil, err
	}
	slogctx.Info(ctx, "sources loaded", "url", URL, "assembly", assembly.Name, "files", len(files), "types", len(assembly.Types(nil)))
	return []*symbol.Assembly{assembly}, nil
}

// LoadSource loads an assembly from a single compilation unit
func (s *Source) LoadSource(ctx context.Context, name string, source []byte) (*symbol.Assembly, error) {
	return s.load(ctx, name, []*file{{name: name + ".cs", content: source}})
}

func (s *Source) load(ctx context.Context, name string, files []*file) (*symbol.Assembly, error) {
	assembly := symbol.NewAssembly(name)
	assembly.Version = s.version
	l := newLoader(symbol.NewCorlib(), assembly)
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}
		slogctx.Debug(ctx, "parsing source", "file", f.name)
		if err := l.parse(ctx, f.name, f.content); err != nil {
			return nil, err
		}
	}
	l.resolve()
	return assembly, nil
}

func (s *Source) files(ctx context.Context, URL string) ([]*file, error) {
	switch strings.ToLower(path.Ext(URL)) {
	case ".txtar":
		data, err := s.fs.DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, errors.Errorf("failed to download %v: %w", URL, err)
		}
		var ret []*file
		for _, f := range txtar.Parse(data).Files {
			if s.matches(f.Name) {
				ret = append(ret, &file{name: f.Name, content: f.Data})
			}
		}
		return ret, nil
	case ".cs":
		data, err := s.fs.DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, errors.Errorf("failed to download %v: %w", URL, err)
		}
		return []*file{{name: path.Base(URL), content: data}}, nil
	}
	return s.walk(ctx, URL)
}

func (s *Source) walk(ctx context.Context, URL string) ([]*file, error) {
	root := strings.TrimSuffix(URL, "/")
	var ret []*file
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		relative := strings.TrimPrefix(path.Join(parent, info.Name()), "/")
		if !s.matches(relative) {
			return true, nil
		}
		URL := url.Join(url.Join(baseURL, parent), info.Name())
		data, err := s.fs.DownloadWithURL(ctx, URL)
		if err != nil {
			return false, errors.Errorf("failed to download %v: %w", URL, err)
		}
		ret = append(ret, &file{name: relative, content: data})
		return true, nil
	}
	if err := s.fs.Walk(ctx, root, visitor); err != nil {
		return nil, errors.Errorf("failed to walk %v: %w", URL, err)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].name < ret[j].name
	})
	return ret, nil
}

// matches returns true if a relative file name is included and not excluded
func (s *Source) matches(name string) bool {
	included := false
	for _, pattern := range s.include {
		if ok, _ := doublestar.Match(pattern, name); ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, pattern := range s.exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return false
		}
	}
	return true
}
