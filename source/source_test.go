package source_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/symdef/source"
	"github.com/viant/symdef/source/csharp"
	"github.com/viant/symdef/source/manifest"
	"gitlab.com/tozd/go/errors"
)

func TestFactory_GetSource(t *testing.T) {
	tests := []struct {
		description string
		URL         string
		expectErr   bool
		expectC     bool
	}{
		{description: "C# file", URL: "src/Widget.cs", expectC: true},
		{description: "archive", URL: "mem://localhost/fixtures/lib.TXTAR", expectC: true},
		{description: "directory", URL: "/projects/acme", expectC: true},
		{description: "directory with trailing slash", URL: "/projects/Acme.Core/", expectC: true},
		{description: "yaml manifest", URL: "api.yaml"},
		{description: "yml manifest", URL: "api.yml"},
		{description: "unsupported file", URL: "lib.dll", expectErr: true},
	}
	factory := source.NewFactory(nil, nil)
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			src, err := factory.GetSource(tc.URL)
			if tc.expectErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, source.ErrUnsupported))
				return
			}
			require.NoError(t, err)
			_, isC := src.(*csharp.Source)
			_, isManifest := src.(*manifest.Source)
			assert.Equal(t, tc.expectC, isC)
			assert.Equal(t, !tc.expectC, isManifest)
		})
	}
}

func TestFactory_Load(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	inputs := map[string]string{
		"mem://localhost/inputs/Acme.Core/Widget.cs": "namespace Acme { public class Widget { } }",
		"mem://localhost/inputs/api.yaml":            "assemblies:\n  - name: Acme.Api\n    namespaces:\n      - name: Acme.Api\n        types: [{name: Client}]\n",
	}
	for URL, content := range inputs {
		require.NoError(t, fs.Upload(ctx, URL, 0o644, strings.NewReader(content)))
	}
	factory := source.NewFactory(fs, &source.Config{AssemblyVersion: "3.0.0.0"})
	assemblies, err := factory.Load(ctx, "mem://localhost/inputs/Acme.Core", "mem://localhost/inputs/api.yaml")
	require.NoError(t, err)
	require.Len(t, assemblies, 2)
	assert.Equal(t, "Acme.Core", assemblies[0].Name)
	assert.Equal(t, "3.0.0.0", assemblies[0].Version)
	assert.NotNil(t, assemblies[0].FindType("Acme.Widget"))
	assert.Equal(t, "Acme.Api", assemblies[1].Name)

	_, err = factory.Load(ctx, "mem://localhost/inputs/missing.dll")
	assert.Error(t, err)
}
