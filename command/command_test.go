package command_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/symdef/command"
	"gitlab.com/tozd/go/errors"
)

const library = `-- Widget.cs --
using System;

namespace Acme
{
    /// <summary>Runs widgets.</summary>
    public class Widget
    {
        public void Run() { }
        internal void Reset() { }
    }

    [Obsolete]
    public class Gadget { }
}
-- Internal/Helper.cs --
namespace Acme.Internal
{
    public static class Helper
    {
        public static int Twice(int value) => value * 2;
    }
}
`

func setup(t *testing.T) (afs.Service, string) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/command/acme.txtar"
	require.NoError(t, fs.Upload(ctx, URL, 0o644, strings.NewReader(library)))
	return fs, URL
}

func TestCommand_List(t *testing.T) {
	defaultLogger := slog.Default()
	defer slog.SetDefault(defaultLogger)
	fs, URL := setup(t)

	tests := []struct {
		description string
		args        []string
		contains    []string
		excludes    []string
	}{
		{
			description: "defaults",
			args:        []string{URL},
			contains:    []string{"assembly acme", "namespace Acme", "public class Widget", "public void Run()", "public static int Twice(int value)"},
			excludes:    []string{"Reset()", "/// <summary>"},
		},
		{
			description: "type depth",
			args:        []string{"--depth", "type", URL},
			contains:    []string{"public class Widget"},
			excludes:    []string{"Run()"},
		},
		{
			description: "ignored names and attributes",
			args:        []string{"--ignored-names", "Acme.Internal", "--without-attribute", "System.ObsoleteAttribute", URL},
			contains:    []string{"public class Widget"},
			excludes:    []string{"Helper", "Gadget"},
		},
		{
			description: "internal visibility",
			args:        []string{"--visibility", "public,internal", URL},
			contains:    []string{"internal void Reset()"},
		},
		{
			description: "documentation",
			args:        []string{"--include-documentation", "--assembly-name", "Acme.Lib", URL},
			contains:    []string{"assembly Acme.Lib", "/// <summary>"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			cmd := command.New(command.WithFS(fs), command.WithStdout(stdout), command.WithStderr(&bytes.Buffer{}))
			err := cmd.Run(context.Background(), append([]string{"symdef", "list", "--no-color"}, tc.args...))
			require.NoError(t, err)
			for _, text := range tc.contains {
				assert.Contains(t, stdout.String(), text)
			}
			for _, text := range tc.excludes {
				assert.NotContains(t, stdout.String(), text)
			}
		})
	}
}

func TestCommand_Outputs(t *testing.T) {
	defaultLogger := slog.Default()
	defer slog.SetDefault(defaultLogger)
	ctx := context.Background()
	fs, URL := setup(t)
	configURL := "mem://localhost/command/symdef.yaml"
	require.NoError(t, fs.Upload(ctx, configURL, 0o644, strings.NewReader("outputs: [mem://localhost/command/out/api.xml]\n")))

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := command.New(command.WithFS(fs), command.WithStdout(stdout), command.WithStderr(stderr))
	err := cmd.Run(ctx, []string{"symdef", "list", "--no-color", "--config", configURL, "-o", "mem://localhost/command/out/api.md", URL})
	require.NoError(t, err)

	_, err = fs.DownloadWithURL(ctx, "mem://localhost/command/out/api.xml")
	assert.Error(t, err, "flag outputs replace configured outputs")
	markdown, err := fs.DownloadWithURL(ctx, "mem://localhost/command/out/api.md")
	require.NoError(t, err)
	assert.Contains(t, string(markdown), "Widget")
	assert.Contains(t, stderr.String(), "definition list completed")
}

func TestCommand_Errors(t *testing.T) {
	defaultLogger := slog.Default()
	defer slog.SetDefault(defaultLogger)
	fs, URL := setup(t)
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		description string
		ctx         context.Context
		args        []string
		exitCode    int
		message     string
	}{
		{description: "missing input", ctx: context.Background(), args: nil, exitCode: command.ExitFailure},
		{description: "unknown layout", ctx: context.Background(), args: []string{"--layout", "tree", URL}, exitCode: command.ExitFailure},
		{description: "unknown log level", ctx: context.Background(), args: []string{"--log-level", "loud", URL}, exitCode: command.ExitFailure},
		{description: "unsupported input", ctx: context.Background(), args: []string{"mem://localhost/command/lib.dll"}, exitCode: command.ExitFailure},
		{description: "canceled", ctx: canceled, args: []string{URL}, exitCode: command.ExitCanceled, message: "operation canceled"},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			cmd := command.New(command.WithFS(fs), command.WithStdout(&bytes.Buffer{}), command.WithStderr(&bytes.Buffer{}))
			err := cmd.Run(tc.ctx, append([]string{"symdef", "list", "--no-color"}, tc.args...))
			require.Error(t, err)
			assert.Equal(t, tc.exitCode, command.ExitCode(err))
			if tc.message != "" {
				assert.Equal(t, tc.message, command.Message(err))
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, command.ExitSuccess, command.ExitCode(nil))
	assert.Equal(t, command.ExitCanceled, command.ExitCode(errors.Errorf("listing: %w", context.Canceled)))
	assert.Equal(t, command.ExitFailure, command.ExitCode(errors.New("broken")))
	assert.Equal(t, "broken", command.Message(errors.New("broken")))
}
