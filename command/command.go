// Package command implements the symdef command line
package command

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/viant/afs"
	"gitlab.com/tozd/go/errors"
)

// Exit codes
const (
	ExitSuccess  = 0
	ExitFailure  = 1
	ExitCanceled = 2
)

// Command represents the symdef command line
type Command struct {
	fs     afs.Service
	stdout io.Writer
	stderr io.Writer
}

// Option represents a command option
type Option func(*Command)

// WithFS sets the file system service used for inputs and outputs
func WithFS(fs afs.Service) Option {
	return func(c *Command) {
		c.fs = fs
	}
}

// WithStdout sets the writer of the text listing
func WithStdout(w io.Writer) Option {
	return func(c *Command) {
		c.stdout = w
	}
}

// WithStderr sets the writer of logs and usage errors
func WithStderr(w io.Writer) Option {
	return func(c *Command) {
		c.stderr = w
	}
}

// New creates a command
func New(opts ...Option) *Command {
	ret := &Command{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

// App returns the command line application
func (c *Command) App() *cli.App {
	return &cli.App{
		Name:      "symdef",
		Usage:     "lists symbol definitions of assemblies",
		Writer:    c.stdout,
		ErrWriter: c.stderr,
		Commands:  []*cli.Command{c.listCommand()},
	}
}

// Run runs the application with command line arguments, args[0] is the program name
func (c *Command) Run(ctx context.Context, args []string) error {
	return c.App().RunContext(ctx, args)
}

// ExitCode maps an error returned by Run to a process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	}
	return ExitFailure
}

// Message returns the text printed for an error returned by Run
func Message(err error) string {
	if errors.Is(err, context.Canceled) {
		return "operation canceled"
	}
	return err.Error()
}
