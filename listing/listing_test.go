package listing_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/symdef/filter"
	"github.com/viant/symdef/listing"
	"github.com/viant/symdef/listing/writer"
	"github.com/viant/symdef/listing/writer/writertest"
	"github.com/viant/symdef/symbol"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		description string
		URL         string
		expected    listing.Kind
	}{
		{description: "xml", URL: "/tmp/api.xml", expected: listing.KindXML},
		{description: "upper case markdown", URL: "mem://localhost/docs/API.MD", expected: listing.KindMarkdown},
		{description: "text", URL: "api.txt", expected: listing.KindText},
		{description: "no extension", URL: "api", expected: listing.KindText},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, listing.KindOf(tc.URL))
		})
	}
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	library := writertest.NewLibrary()
	service := listing.New(listing.WithFS(fs), listing.WithRootURL("https://acme.io/docs"))
	outputs := []string{
		"mem://localhost/symdef/api.txt",
		"mem://localhost/symdef/api.xml",
		"mem://localhost/symdef/api.md",
		"mem://localhost/symdef/copy.txt",
	}
	result, err := service.List(ctx, []*symbol.Assembly{library.Assembly}, outputs...)
	require.NoError(t, err)
	require.Len(t, result.Outputs, len(outputs))

	assert.True(t, strings.HasPrefix(result.Text, "assembly Acme.Lib, Version=1.2.0.0"))
	for i, output := range result.Outputs {
		assert.Equal(t, outputs[i], output.URL)
		data, err := fs.DownloadWithURL(ctx, output.URL)
		require.NoError(t, err)
		assert.Equal(t, len(data), output.Size)
		hash, err := symbol.Hash(data)
		require.NoError(t, err)
		assert.Equal(t, hash, output.Hash)
	}
	assert.Equal(t, listing.KindXML, result.Outputs[1].Kind)
	assert.Equal(t, result.Outputs[0].Hash, result.Outputs[3].Hash)
	assert.NotEqual(t, result.Outputs[0].Hash, result.Outputs[1].Hash)

	text, err := fs.DownloadWithURL(ctx, outputs[0])
	require.NoError(t, err)
	assert.Equal(t, result.Text, string(text))
	xmlData, err := fs.DownloadWithURL(ctx, outputs[1])
	require.NoError(t, err)
	assert.Contains(t, string(xmlData), `<Root Layout="NamespaceList">`)
	markdown, err := fs.DownloadWithURL(ctx, outputs[2])
	require.NoError(t, err)
	assert.Contains(t, string(markdown), "[Query](https://acme.io/docs/Acme/Data/Sql/Query/README.md)")
}

func TestService_Render(t *testing.T) {
	library := writertest.NewLibrary()
	format := writer.DefaultFormat()
	format.Parts = writer.PartNone
	service := listing.New(
		listing.WithFormat(format),
		listing.WithFilter(filter.New(filter.WithGroups(filter.GroupType))),
		listing.WithDocumentation(writer.SymbolDocumentation{}),
	)
	data, err := service.Render(context.Background(), listing.KindText, []*symbol.Assembly{library.Assembly})
	require.NoError(t, err)
	assert.Contains(t, string(data), "  /// <summary>Reusable widget.</summary>\n  class Widget\n")
	assert.NotContains(t, string(data), "Run()")
}

func TestService_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := listing.New().List(ctx, []*symbol.Assembly{writertest.NewLibrary().Assembly})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummary(t *testing.T) {
	library := writertest.NewLibrary()
	tests := []struct {
		description string
		options     *filter.Options
		expected    map[filter.Group]int
		lines       []string
	}{
		{
			description: "default",
			options:     filter.New(),
			expected: map[filter.Group]int{
				filter.GroupNamespace: 3,
				filter.GroupType:      5,
				filter.GroupClass:     3,
				filter.GroupMember:    5,
				filter.GroupEnumField: 2,
			},
			lines: []string{
				"assemblies: 1",
				"namespaces: 3",
				"types: 5",
				"  classes: 3",
				"  interfaces: 1",
				"  enums: 1",
				"members: 5",
				"  fields: 0",
			},
		},
		{
			description: "types only",
			options:     filter.New(filter.WithGroups(filter.GroupType)),
			expected: map[filter.Group]int{
				filter.GroupNamespace: 3,
				filter.GroupType:      5,
				filter.GroupMember:    0,
			},
		},
		{
			description: "namespaces only",
			options:     filter.New(filter.WithGroups(filter.GroupNamespace)),
			expected: map[filter.Group]int{
				filter.GroupNamespace: 3,
				filter.GroupType:      0,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			summary := listing.NewSummary([]*symbol.Assembly{library.Assembly}, tc.options)
			assert.Equal(t, 1, summary.Assemblies)
			for group, count := range tc.expected {
				assert.Equal(t, count, summary.Count(group), group.String())
			}
			if len(tc.lines) == 0 {
				return
			}
			lines := summary.Lines()
			for _, line := range tc.lines {
				if strings.HasSuffix(line, ": 0") {
					assert.NotContains(t, lines, line)
					continue
				}
				assert.Contains(t, lines, line)
			}
		})
	}
}
