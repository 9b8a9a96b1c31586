package cli

import (
	"context"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/caption/cli/cmd"
	"github.com/ardnew/caption/lang"
	"github.com/ardnew/caption/pkg"
)

// CLI is the top-level command-line interface for caption.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Source []string `help:"Record file(s) in YAML or JSON, or '-' for stdin."                   name:"source" placeholder:"FILE" short:"s"`
	Path   []string `env:"CAPTION_PATH" help:"Directories searched for relative record and template files." name:"path" placeholder:"DIR" sep:":"`

	Render cmd.Render `cmd:"" default:"withargs" help:"Render a template against each record."`
	Check  cmd.Check  `cmd:""                    help:"Validate templates."`
	Fmt    cmd.Fmt    `cmd:""                    help:"Print a template's syntax tree."`
	Fields cmd.Fields `cmd:""                    help:"List the fields a template references."`
	Repl   cmd.Repl   `cmd:""                    help:"Preview templates interactively."`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file."`
}

// Run executes the caption CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.ConfigIdentifier: configPath(baseConfig + ".yaml"),
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Name + " " + pkg.Version(),
		"maxDepth":           strconv.Itoa(lang.DefaultMaxDepth),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so that messages logged while kong parses
	// (including config file problems) already use the requested settings.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve(ctx), configPath(baseConfig+".yaml")),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values, including those
	// supplied by the config file.
	cli.Log.start(ctx)

	// Stuff additional context values for use by commands. The search path
	// must be stored before the sources are resolved against it.
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSearchPath(ctx, searchPath(ctx, cli.Path...))
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
