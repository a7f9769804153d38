// Package config defines definition list settings loaded from YAML and overlaid by command line flags
package config

import (
	"bytes"
	"context"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/viant/afs"
	"github.com/viant/symdef/compare"
	"github.com/viant/symdef/display"
	"github.com/viant/symdef/filter"
	"github.com/viant/symdef/listing/writer"
	"github.com/viant/symdef/source"
	"github.com/viant/symdef/symbol"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// ErrUnknownValue is returned when a setting has a value outside of its allowed set
var ErrUnknownValue = symbol.ErrUnknownValue

// Depth values
const (
	DepthMember    = "member"
	DepthType      = "type"
	DepthNamespace = "namespace"
)

// Containing namespace styles
const (
	NamespaceOmitted             = "omitted"
	NamespaceOmittedAsContaining = "omitted-as-containing"
	NamespaceIncluded            = "included"
)

// Config represents definition list settings
type Config struct {
	Layout                       string   `yaml:"layout,omitempty"`     // namespace-list, namespace-hierarchy or type-hierarchy
	Visibility                   []string `yaml:"visibility,omitempty"` // public, internal, private or all
	Depth                        string   `yaml:"depth,omitempty"`      // member, type or namespace
	Groups                       []string `yaml:"groups,omitempty"`     // symbol groups, all when empty
	IgnoredNames                 []string `yaml:"ignoredNames,omitempty"`
	IgnoredAttributeNames        []string `yaml:"ignoredAttributeNames,omitempty"`
	WithAttributes               []string `yaml:"withAttributes,omitempty"`
	WithoutAttributes            []string `yaml:"withoutAttributes,omitempty"`
	IgnoredParts                 []string `yaml:"ignoredParts,omitempty"`
	FormatOptions                []string `yaml:"formatOptions,omitempty"` // multiline formatting: base-list, constraints, parameters, attributes
	IndentChars                  string   `yaml:"indentChars,omitempty"`
	EmptyLineBetweenMembers      bool     `yaml:"emptyLineBetweenMembers,omitempty"`
	EmptyLineBetweenMemberGroups bool     `yaml:"emptyLineBetweenMemberGroups"`
	GroupByAssembly              bool     `yaml:"groupByAssembly,omitempty"`
	SystemNamespaceFirst         bool     `yaml:"systemNamespaceFirst"`
	ContainingNamespace          string   `yaml:"containingNamespace,omitempty"` // omitted, omitted-as-containing or included
	OmitIEnumerable              bool     `yaml:"omitIEnumerable"`
	PreferDefaultLiteral         bool     `yaml:"preferDefaultLiteral"`
	IncludeDocumentation         bool     `yaml:"includeDocumentation,omitempty"`
	RootDirectoryURL             string   `yaml:"rootDirectoryUrl,omitempty"` // base of markdown links
	AssemblyName                 string   `yaml:"assemblyName,omitempty"`
	AssemblyVersion              string   `yaml:"assemblyVersion,omitempty"`
	Include                      []string `yaml:"include,omitempty"`
	Exclude                      []string `yaml:"exclude,omitempty"`
	Outputs                      []string `yaml:"outputs,omitempty"`
}

// DefaultConfig returns settings of a public API listing
func DefaultConfig() *Config {
	return &Config{
		Layout:                       writer.LayoutNamespaceList.String(),
		Visibility:                   []string{"public"},
		Depth:                        DepthMember,
		IgnoredAttributeNames:        append([]string{}, filter.DocumentationIgnoredAttributes...),
		IndentChars:                  display.DefaultIndentChars,
		EmptyLineBetweenMemberGroups: true,
		SystemNamespaceFirst:         true,
		ContainingNamespace:          NamespaceIncluded,
		OmitIEnumerable:              true,
		PreferDefaultLiteral:         true,
	}
}

// Load loads settings from URL on top of the defaults, unknown fields are an error
func Load(ctx context.Context, URL string) (*Config, error) {
	ret := DefaultConfig()
	if URL == "" {
		return ret, nil
	}
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Errorf("failed to download config %v: %w", URL, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err = decoder.Decode(ret); err != nil {
		return nil, errors.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}

// FilterOptions builds symbol filter options, every unknown value and malformed name is reported
func (c *Config) FilterOptions() (*filter.Options, error) {
	var errs *multierror.Error
	visibility := filter.VisibilityNone
	for _, name := range c.Visibility {
		v, err := filter.ParseVisibility(name)
		if err != nil {
			errs = multierror.Append(errs, unknown(err))
			continue
		}
		visibility |= v
	}
	if len(c.Visibility) == 0 {
		visibility = filter.VisibilityAll
	}
	groups := filter.GroupAll
	if len(c.Groups) > 0 {
		groups = filter.GroupNone
		for _, name := range c.Groups {
			group, err := filter.ParseGroup(name)
			if err != nil {
				errs = multierror.Append(errs, unknown(err))
				continue
			}
			groups |= group
		}
	}
	depth, err := depthGroups(c.Depth)
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	names := &filter.Names{
		Ignored:           c.IgnoredNames,
		IgnoredAttributes: c.IgnoredAttributeNames,
		WithAttributes:    c.WithAttributes,
		WithoutAttributes: c.WithoutAttributes,
	}
	opts, err := names.Options()
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	if err = errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	opts = append([]filter.Option{filter.WithVisibility(visibility), filter.WithGroups(groups & depth)}, opts...)
	return filter.New(opts...), nil
}

// ListFormat builds the definition list format, every unknown value is reported
func (c *Config) ListFormat() (*writer.Format, error) {
	var errs *multierror.Error
	ret := writer.DefaultFormat()
	if c.Layout != "" {
		layout, err := writer.ParseLayout(c.Layout)
		if err != nil {
			errs = multierror.Append(errs, unknown(err))
		}
		ret.Layout = layout
	}
	for _, name := range c.IgnoredParts {
		part, err := writer.ParsePart(name)
		if err != nil {
			errs = multierror.Append(errs, unknown(err))
			continue
		}
		ret.Parts &^= part
	}
	for _, name := range c.FormatOptions {
		option, err := writer.ParseFormatOption(name)
		if err != nil {
			errs = multierror.Append(errs, unknown(err))
			continue
		}
		ret.FormatOptions |= option
	}
	style, err := namespaceStyle(c.ContainingNamespace)
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	if err = errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	ret.ContainingNamespace = style
	if c.IndentChars != "" {
		ret.IndentChars = c.IndentChars
	}
	ret.EmptyLineBetweenMembers = c.EmptyLineBetweenMembers
	ret.EmptyLineBetweenMemberGroups = c.EmptyLineBetweenMemberGroups
	ret.GroupByAssembly = c.GroupByAssembly
	ret.OmitIEnumerable = c.OmitIEnumerable
	ret.PreferDefaultLiteral = c.PreferDefaultLiteral
	return ret, nil
}

// Comparer returns symbol ordering
func (c *Config) Comparer() *compare.Comparer {
	return compare.New(c.SystemNamespaceFirst)
}

// SourceConfig returns symbol source settings
func (c *Config) SourceConfig() *source.Config {
	return &source.Config{
		AssemblyName:    c.AssemblyName,
		AssemblyVersion: c.AssemblyVersion,
		Include:         c.Include,
		Exclude:         c.Exclude,
	}
}

func depthGroups(depth string) (filter.Group, error) {
	switch strings.ToLower(strings.TrimSpace(depth)) {
	case "", DepthMember:
		return filter.GroupAll, nil
	case DepthType:
		return filter.GroupNamespace | filter.GroupType, nil
	case DepthNamespace:
		return filter.GroupNamespace, nil
	}
	return filter.GroupNone, errors.Errorf("depth %q: %w", depth, ErrUnknownValue)
}

func namespaceStyle(name string) (display.NamespaceStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NamespaceIncluded:
		return display.NamespaceIncluded, nil
	case NamespaceOmittedAsContaining:
		return display.NamespaceOmittedAsContaining, nil
	case NamespaceOmitted:
		return display.NamespaceOmitted, nil
	}
	return display.NamespaceIncluded, errors.Errorf("containing namespace %q: %w", name, ErrUnknownValue)
}

// unknown marks errors of value parsers with ErrUnknownValue
func unknown(err error) error {
	if errors.Is(err, ErrUnknownValue) {
		return err
	}
	return errors.Errorf("%w: %s", ErrUnknownValue, err)
}
