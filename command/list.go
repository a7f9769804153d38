package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
	slogctx "github.com/veqryn/slog-context"
	"github.com/viant/symdef/config"
	"github.com/viant/symdef/listing"
	"github.com/viant/symdef/listing/writer"
	"github.com/viant/symdef/logging"
	"github.com/viant/symdef/source"
	"gitlab.com/tozd/go/errors"
)

func (c *Command) listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "writes the definition list of assemblies declared by C# sources or symbol manifests",
		ArgsUsage: "<input>...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML settings URL, flags override its values"},
			&cli.StringFlag{Name: "layout", Usage: "namespace-list, namespace-hierarchy or type-hierarchy"},
			&cli.StringSliceFlag{Name: "visibility", Usage: "public, internal, private or all"},
			&cli.StringFlag{Name: "depth", Usage: "member, type or namespace"},
			&cli.StringSliceFlag{Name: "ignored-names", Usage: "metadata names of ignored namespaces and types"},
			&cli.StringSliceFlag{Name: "ignored-attribute-names", Usage: "metadata names of attributes that are not written"},
			&cli.StringSliceFlag{Name: "with-attribute", Usage: "list only symbols with one of the attributes"},
			&cli.StringSliceFlag{Name: "without-attribute", Usage: "skip symbols with one of the attributes"},
			&cli.StringSliceFlag{Name: "ignored-parts", Usage: "definition parts that are not written"},
			&cli.StringSliceFlag{Name: "format", Usage: "multiline formatting: base-list, constraints, parameters, attributes"},
			&cli.StringFlag{Name: "indent-chars", Usage: "indentation unit"},
			&cli.BoolFlag{Name: "empty-line-between-members", Usage: "separate every pair of members"},
			&cli.BoolFlag{Name: "group-by-assembly", Usage: "write namespaces within each assembly"},
			&cli.BoolFlag{Name: "no-system-first", Usage: "order System namespace alphabetically"},
			&cli.StringFlag{Name: "containing-namespace", Usage: "omitted, omitted-as-containing or included"},
			&cli.BoolFlag{Name: "include-documentation", Usage: "write documentation comments"},
			&cli.StringFlag{Name: "root-directory-url", Usage: "base URL of markdown links"},
			&cli.StringSliceFlag{Name: "output", Aliases: []string{"o"}, Usage: "output URL, format is chosen by extension"},
			&cli.StringSliceFlag{Name: "exclude", Usage: "globs of skipped C# files"},
			&cli.StringFlag{Name: "assembly-name", Usage: "assembly name of C# sources"},
			&cli.StringFlag{Name: "assembly-version", Usage: "assembly version of C# sources"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable colored logs"},
		},
		Action: c.list,
	}
}

func (c *Command) list(cliCtx *cli.Context) error {
	ctx, err := logging.Setup(cliCtx.Context, logging.Options{
		Level:   cliCtx.String("log-level"),
		NoColor: cliCtx.Bool("no-color"),
		Writer:  c.stderr,
	})
	if err != nil {
		return err
	}
	inputs := cliCtx.Args().Slice()
	if len(inputs) == 0 {
		return errors.New("at least one input is required")
	}
	cfg, err := config.Load(ctx, cliCtx.String("config"))
	if err != nil {
		return err
	}
	overlay(cfg, cliCtx)

	options, err := cfg.FilterOptions()
	if err != nil {
		return errors.Errorf("invalid filter settings: %w", err)
	}
	format, err := cfg.ListFormat()
	if err != nil {
		return errors.Errorf("invalid format settings: %w", err)
	}
	assemblies, err := source.NewFactory(c.fs, cfg.SourceConfig()).Load(ctx, inputs...)
	if err != nil {
		return err
	}
	opts := []listing.Option{
		listing.WithFS(c.fs),
		listing.WithFilter(options),
		listing.WithFormat(format),
		listing.WithComparer(cfg.Comparer()),
		listing.WithRootURL(cfg.RootDirectoryURL),
	}
	if cfg.IncludeDocumentation {
		opts = append(opts, listing.WithDocumentation(writer.SymbolDocumentation{}))
	}
	result, err := listing.New(opts...).List(ctx, assemblies, cfg.Outputs...)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprint(c.stdout, result.Text); err != nil {
		return errors.WithStack(err)
	}
	slogctx.Info(ctx, "definition list completed", "summary", result.Summary, "outputs", len(result.Outputs))
	return nil
}

// overlay replaces settings with explicitly set flags
func overlay(cfg *config.Config, cliCtx *cli.Context) {
	texts := []struct {
		flag  string
		value *string
	}{
		{"layout", &cfg.Layout},
		{"depth", &cfg.Depth},
		{"indent-chars", &cfg.IndentChars},
		{"containing-namespace", &cfg.ContainingNamespace},
		{"root-directory-url", &cfg.RootDirectoryURL},
		{"assembly-name", &cfg.AssemblyName},
		{"assembly-version", &cfg.AssemblyVersion},
	}
	for _, item := range texts {
		if cliCtx.IsSet(item.flag) {
			*item.value = cliCtx.String(item.flag)
		}
	}
	lists := []struct {
		flag  string
		value *[]string
	}{
		{"visibility", &cfg.Visibility},
		{"ignored-names", &cfg.IgnoredNames},
		{"ignored-attribute-names", &cfg.IgnoredAttributeNames},
		{"with-attribute", &cfg.WithAttributes},
		{"without-attribute", &cfg.WithoutAttributes},
		{"ignored-parts", &cfg.IgnoredParts},
		{"format", &cfg.FormatOptions},
		{"output", &cfg.Outputs},
		{"exclude", &cfg.Exclude},
	}
	for _, item := range lists {
		if cliCtx.IsSet(item.flag) {
			*item.value = cliCtx.StringSlice(item.flag)
		}
	}
	if cliCtx.IsSet("empty-line-between-members") {
		cfg.EmptyLineBetweenMembers = cliCtx.Bool("empty-line-between-members")
	}
	if cliCtx.IsSet("group-by-assembly") {
		cfg.GroupByAssembly = cliCtx.Bool("group-by-assembly")
	}
	if cliCtx.IsSet("no-system-first") {
		cfg.SystemNamespaceFirst = !cliCtx.Bool("no-system-first")
	}
	if cliCtx.IsSet("include-documentation") {
		cfg.IncludeDocumentation = cliCtx.Bool("include-documentation")
	}
}
