package config_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/symdef/config"
	"github.com/viant/symdef/display"
	"github.com/viant/symdef/filter"
	"github.com/viant/symdef/listing/writer"
	"gitlab.com/tozd/go/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	options, err := cfg.FilterOptions()
	require.NoError(t, err)
	assert.Equal(t, filter.VisibilityPublic, options.Visibility)
	assert.Equal(t, filter.GroupAll, options.Groups)
	assert.Len(t, options.AttributeRules, 1)

	format, err := cfg.ListFormat()
	require.NoError(t, err)
	assert.Equal(t, writer.DefaultFormat(), format)
	assert.True(t, cfg.Comparer().SystemFirst)
}

func TestConfig_FilterOptions(t *testing.T) {
	tests := []struct {
		description string
		config      *config.Config
		visibility  filter.VisibilityFilter
		groups      filter.Group
		rules       int
	}{
		{
			description: "visibility list",
			config:      &config.Config{Visibility: []string{"public", "internal"}},
			visibility:  filter.VisibilityPublic | filter.VisibilityInternal,
			groups:      filter.GroupAll,
		},
		{
			description: "type depth",
			config:      &config.Config{Depth: "type"},
			visibility:  filter.VisibilityAll,
			groups:      filter.GroupNamespace | filter.GroupType,
		},
		{
			description: "namespace depth",
			config:      &config.Config{Depth: "namespace"},
			visibility:  filter.VisibilityAll,
			groups:      filter.GroupNamespace,
		},
		{
			description: "groups limited by depth",
			config:      &config.Config{Groups: []string{"class", "method"}, Depth: "type"},
			visibility:  filter.VisibilityAll,
			groups:      filter.GroupClass,
		},
		{
			description: "name rules",
			config: &config.Config{
				IgnoredNames:      []string{"Acme.Internal"},
				WithAttributes:    []string{"System.SerializableAttribute"},
				WithoutAttributes: []string{"System.ObsoleteAttribute"},
			},
			visibility: filter.VisibilityAll,
			groups:     filter.GroupAll,
			rules:      3,
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			options, err := tc.config.FilterOptions()
			require.NoError(t, err)
			assert.Equal(t, tc.visibility, options.Visibility)
			assert.Equal(t, tc.groups, options.Groups)
			assert.Len(t, options.Rules, tc.rules)
		})
	}
}

func TestConfig_ListFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Layout = "type-hierarchy"
	cfg.IgnoredParts = []string{"attributes", "base-interfaces"}
	cfg.FormatOptions = []string{"parameters"}
	cfg.ContainingNamespace = "omitted-as-containing"
	cfg.IndentChars = "\t"
	cfg.GroupByAssembly = true
	cfg.EmptyLineBetweenMembers = true

	format, err := cfg.ListFormat()
	require.NoError(t, err)
	assert.Equal(t, writer.LayoutTypeHierarchy, format.Layout)
	assert.False(t, format.Includes(writer.PartAttributes))
	assert.False(t, format.Includes(writer.PartBaseInterfaces))
	assert.True(t, format.Includes(writer.PartBaseType))
	assert.Equal(t, writer.FormatParameters, format.FormatOptions)
	assert.Equal(t, display.NamespaceOmittedAsContaining, format.ContainingNamespace)
	assert.Equal(t, "\t", format.IndentChars)
	assert.True(t, format.GroupByAssembly)
	assert.True(t, format.EmptyLineBetweenMembers)
}

func TestConfig_Errors(t *testing.T) {
	tests := []struct {
		description string
		config      *config.Config
		format      bool
		count       int
	}{
		{description: "unknown visibility", config: &config.Config{Visibility: []string{"protected"}}, count: 1},
		{description: "unknown group and depth", config: &config.Config{Groups: []string{"records"}, Depth: "deep"}, count: 2},
		{description: "unknown layout", config: &config.Config{Layout: "tree"}, format: true, count: 1},
		{description: "unknown parts and style", config: &config.Config{IgnoredParts: []string{"body", "docs"}, ContainingNamespace: "full"}, format: true, count: 3},
		{description: "unknown format option", config: &config.Config{FormatOptions: []string{"members"}}, format: true, count: 1},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			var err error
			if tc.format {
				_, err = tc.config.ListFormat()
			} else {
				_, err = tc.config.FilterOptions()
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, config.ErrUnknownValue))
			assert.Equal(t, tc.count, strings.Count(err.Error(), "unknown value"))
		})
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/config/symdef.yaml"
	content := "layout: namespace-hierarchy\nvisibility: [public, internal]\nsystemNamespaceFirst: false\noutputs: [api.txt, api.xml]\n"
	require.NoError(t, fs.Upload(ctx, URL, 0o644, strings.NewReader(content)))

	cfg, err := config.Load(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, "namespace-hierarchy", cfg.Layout)
	assert.Equal(t, []string{"public", "internal"}, cfg.Visibility)
	assert.False(t, cfg.SystemNamespaceFirst)
	assert.Equal(t, []string{"api.txt", "api.xml"}, cfg.Outputs)
	assert.True(t, cfg.OmitIEnumerable)
	assert.Equal(t, config.DepthMember, cfg.Depth)

	invalid := "mem://localhost/config/invalid.yaml"
	require.NoError(t, fs.Upload(ctx, invalid, 0o644, strings.NewReader("colour: red\n")))
	_, err = config.Load(ctx, invalid)
	assert.Error(t, err)

	_, err = config.Load(ctx, "mem://localhost/config/missing.yaml")
	assert.Error(t, err)

	cfg, err = config.Load(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}
