// Command quizc compiles quiz markdown repositories into JSON seed documents,
// merges their language renditions and exports seed bundles.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-quizz"
)

var version = "dev"

// CLI defines the command line interface of quizc.
type CLI struct {
	Config   string `name:"config" short:"c" help:"YAML configuration file" type:"path"`
	LogLevel string `name:"log-level" help:"Override logging.level (trace, debug, info, warn, error)"`

	Compile     CompileCmd     `cmd:"" help:"Compile quiz markdown files into single-locale JSON documents"`
	Consolidate ConsolidateCmd `cmd:"" help:"Merge the compiled documents of each quiz directory into quizz.json"`
	Bundle      BundleCmd      `cmd:"" help:"Export quiz folders into a seed bundle"`
	Version     VersionCmd     `cmd:"" help:"Print version information"`
}

// CompileCmd compiles every quiz markdown source below Root.
type CompileCmd struct {
	Root      string `arg:"" optional:"" default:"." help:"Quiz repository root" type:"path"`
	Out       string `name:"out" short:"o" help:"Output root, defaults to the repository root" type:"path"`
	Match     string `help:"Only process paths containing this substring"`
	Overwrite bool   `help:"Replace existing JSON files"`
	DryRun    bool   `name:"dry-run" help:"Report planned outputs without writing"`
}

func (c *CompileCmd) Run(app *App) error {
	module, err := app.Module()
	if err != nil {
		return err
	}
	return dispatch(app, module, quizz.CompileDirectoryCommand{
		Root:       c.Root,
		OutputRoot: c.Out,
		Match:      c.Match,
		Overwrite:  c.Overwrite || module.Config().Compiler.Overwrite,
		DryRun:     c.DryRun,
	})
}

// ConsolidateCmd merges compiled documents per directory.
type ConsolidateCmd struct {
	Root      string `arg:"" optional:"" default:"." help:"Quiz repository root" type:"path"`
	Out       string `name:"out" short:"o" help:"Output root, defaults to the repository root" type:"path"`
	Match     string `help:"Only process paths containing this substring"`
	Overwrite bool   `help:"Replace existing quizz.json files"`
	DryRun    bool   `name:"dry-run" help:"Report planned outputs without writing"`
}

func (c *ConsolidateCmd) Run(app *App) error {
	module, err := app.Module()
	if err != nil {
		return err
	}
	return dispatch(app, module, quizz.ConsolidateDirectoryCommand{
		Root:       c.Root,
		OutputRoot: c.Out,
		Match:      c.Match,
		Overwrite:  c.Overwrite || module.Config().Consolidation.Overwrite,
		DryRun:     c.DryRun,
	})
}

// BundleCmd copies quiz folders and their images into a seed bundle.
type BundleCmd struct {
	Source      string `arg:"" help:"Quiz repository root" type:"existingdir"`
	Destination string `arg:"" help:"Bundle directory" type:"path"`
	Match       string `help:"Only export folders whose path contains this substring"`
	Archive     string `help:"Also write a .tar.xz archive of the bundle" type:"path"`
}

func (c *BundleCmd) Run(app *App) error {
	module, err := app.Module()
	if err != nil {
		return err
	}
	archive := c.Archive
	if archive == "" {
		archive = module.Config().Bundle.Archive
	}
	return dispatch(app, module, quizz.ExportBundleCommand{
		Source:      c.Source,
		Destination: c.Destination,
		Match:       c.Match,
		Archive:     archive,
	})
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(app *App) error {
	fmt.Fprintf(app.Stdout, "quizc %s\n", version)
	return nil
}

// App carries the parsed global flags into command runs.
type App struct {
	Context context.Context
	Stdout  io.Writer
	cli     *CLI
	module  *quizz.Module
}

// Module builds the quizz module from the config file and flag overrides.
func (a *App) Module() (*quizz.Module, error) {
	if a.module != nil {
		return a.module, nil
	}
	cfg, err := quizz.LoadConfig(a.cli.Config)
	if err != nil {
		return nil, err
	}
	if level := strings.TrimSpace(a.cli.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	module, err := quizz.New(cfg)
	if err != nil {
		return nil, err
	}
	a.module = module
	return module, nil
}

func dispatch[T any](app *App, module *quizz.Module, msg T) error {
	registration, err := quizz.RegisterCommands(module, quizz.RegistrationOptions{
		Dispatcher:      quizz.NewDispatcher(),
		SummaryReporter: summaryPrinter(app.Stdout),
		BundleReporter:  bundlePrinter(app.Stdout),
	})
	if err != nil {
		return err
	}
	defer registration.Unsubscribe()

	return dispatcher.Dispatch(app.Context, msg)
}

func summaryPrinter(out io.Writer) quizz.SummaryReporter {
	return func(_ context.Context, operation string, summary *quizz.RunSummary) {
		if summary == nil {
			return
		}
		fmt.Fprintf(out, "%s: files=%d written=%d skipped=%d warnings=%d failed=%d\n",
			operation, summary.Files, summary.Written, summary.Skipped, summary.Warnings, summary.Failed)
		for _, failure := range summary.Failures {
			fmt.Fprintf(out, "  failed %s [%s]: %s\n", failure.Path, failure.Code, failure.Message)
		}
	}
}

func bundlePrinter(out io.Writer) quizz.BundleReporter {
	return func(_ context.Context, result *quizz.BundleResult) {
		if result == nil {
			return
		}
		fmt.Fprintf(out, "bundle: destination=%s folders=%d manifest=%s\n",
			result.Destination, len(result.Folders), result.ManifestPath)
		if result.Archive != "" {
			fmt.Fprintf(out, "  archive %s\n", result.Archive)
		}
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, options ...kong.Option) error {
	cli := &CLI{}
	options = append([]kong.Option{
		kong.Name("quizc"),
		kong.Description("Quiz markdown compiler and seed bundle exporter"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}, options...)

	parser, err := kong.New(cli, options...)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kctx.Run(&App{Context: ctx, Stdout: stdout, cli: cli})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "quizc: %v\n", err)
		stop()
		os.Exit(1)
	}
}
