package quizcmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-quizz/internal/bundle"
	"github.com/goliatone/go-quizz/internal/commands"
	"github.com/goliatone/go-quizz/internal/logging"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

const (
	compileOperation     = "quizz.compile_directory"
	consolidateOperation = "quizz.consolidate_directory"
	bundleOperation      = "quizz.export_bundle"
)

var (
	_ command.Commander[CompileDirectoryCommand]     = (*CompileDirectoryHandler)(nil)
	_ command.Commander[ConsolidateDirectoryCommand] = (*ConsolidateDirectoryHandler)(nil)
	_ command.Commander[ExportBundleCommand]         = (*ExportBundleHandler)(nil)
)

// BundleExporter is the bundle workflow consumed by ExportBundleHandler.
type BundleExporter interface {
	Export(ctx context.Context, sourceRoot string, opts bundle.Options) (*bundle.Result, error)
}

// SummaryReporter receives the summary of every finished directory run,
// including runs that returned an error.
type SummaryReporter func(ctx context.Context, operation string, summary *interfaces.RunSummary)

// BundleReporter receives the result of a finished export.
type BundleReporter func(ctx context.Context, result *bundle.Result)

// CompileDirectoryHandler runs directory compiles through the shared command handler.
type CompileDirectoryHandler struct {
	inner *commands.Handler[CompileDirectoryCommand]
}

// NewCompileDirectoryHandler binds a handler to the compile service.
func NewCompileDirectoryHandler(service interfaces.CompileService, logger interfaces.Logger, report SummaryReporter, opts ...commands.HandlerOption[CompileDirectoryCommand]) *CompileDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CompileDirectoryCommand) error {
		summary, err := service.CompileDirectory(ctx, msg.Root, interfaces.CompileRunOptions{
			OutputRoot: msg.OutputRoot,
			Match:      msg.Match,
			Overwrite:  msg.Overwrite,
			DryRun:     msg.DryRun,
		})
		finish(ctx, baseLogger, compileOperation, summary, report)
		return err
	}

	handlerOpts := []commands.HandlerOption[CompileDirectoryCommand]{
		commands.WithLogger[CompileDirectoryCommand](baseLogger),
		commands.WithOperation[CompileDirectoryCommand](compileOperation),
		commands.WithMessageFields(func(msg CompileDirectoryCommand) map[string]any {
			return runFields(msg.Root, msg.Match, msg.Overwrite, msg.DryRun)
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CompileDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CompileDirectoryCommand].
func (h *CompileDirectoryHandler) Execute(ctx context.Context, msg CompileDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ConsolidateDirectoryHandler runs directory consolidations through the shared command handler.
type ConsolidateDirectoryHandler struct {
	inner *commands.Handler[ConsolidateDirectoryCommand]
}

// NewConsolidateDirectoryHandler binds a handler to the consolidation service.
func NewConsolidateDirectoryHandler(service interfaces.ConsolidationService, logger interfaces.Logger, report SummaryReporter, opts ...commands.HandlerOption[ConsolidateDirectoryCommand]) *ConsolidateDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ConsolidateDirectoryCommand) error {
		summary, err := service.ConsolidateDirectory(ctx, msg.Root, interfaces.ConsolidateRunOptions{
			OutputRoot: msg.OutputRoot,
			Match:      msg.Match,
			Overwrite:  msg.Overwrite,
			DryRun:     msg.DryRun,
		})
		finish(ctx, baseLogger, consolidateOperation, summary, report)
		return err
	}

	handlerOpts := []commands.HandlerOption[ConsolidateDirectoryCommand]{
		commands.WithLogger[ConsolidateDirectoryCommand](baseLogger),
		commands.WithOperation[ConsolidateDirectoryCommand](consolidateOperation),
		commands.WithMessageFields(func(msg ConsolidateDirectoryCommand) map[string]any {
			return runFields(msg.Root, msg.Match, msg.Overwrite, msg.DryRun)
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConsolidateDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ConsolidateDirectoryCommand].
func (h *ConsolidateDirectoryHandler) Execute(ctx context.Context, msg ConsolidateDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ExportBundleHandler runs seed bundle exports through the shared command handler.
type ExportBundleHandler struct {
	inner *commands.Handler[ExportBundleCommand]
}

// NewExportBundleHandler binds a handler to the bundle exporter.
func NewExportBundleHandler(exporter BundleExporter, logger interfaces.Logger, report BundleReporter, opts ...commands.HandlerOption[ExportBundleCommand]) *ExportBundleHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ExportBundleCommand) error {
		result, err := exporter.Export(ctx, msg.Source, bundle.Options{
			Destination: msg.Destination,
			Match:       msg.Match,
			Archive:     msg.Archive,
		})
		if err != nil {
			return err
		}
		files := 0
		if result.Manifest != nil {
			files = len(result.Manifest.Files)
		}
		baseLogger.WithContext(ctx).Info("quizz.command.export_bundle.completed",
			"folders", len(result.Folders),
			"files", files,
			"archive", result.Archive,
		)
		if report != nil {
			report(ctx, result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportBundleCommand]{
		commands.WithLogger[ExportBundleCommand](baseLogger),
		commands.WithOperation[ExportBundleCommand](bundleOperation),
		commands.WithMessageFields(func(msg ExportBundleCommand) map[string]any {
			fields := map[string]any{
				"source":      msg.Source,
				"destination": msg.Destination,
			}
			if msg.Match != "" {
				fields["match"] = msg.Match
			}
			if msg.Archive != "" {
				fields["archive"] = msg.Archive
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportBundleHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ExportBundleCommand].
func (h *ExportBundleHandler) Execute(ctx context.Context, msg ExportBundleCommand) error {
	return h.inner.Execute(ctx, msg)
}

func finish(ctx context.Context, logger interfaces.Logger, operation string, summary *interfaces.RunSummary, report SummaryReporter) {
	if summary == nil {
		return
	}
	logging.WithFields(logger.WithContext(ctx), map[string]any{
		"files":    summary.Files,
		"written":  summary.Written,
		"skipped":  summary.Skipped,
		"warnings": summary.Warnings,
		"failed":   summary.Failed,
	}).Info(operation + ".completed")
	if report != nil {
		report(ctx, operation, summary)
	}
}

func runFields(root, match string, overwrite, dryRun bool) map[string]any {
	fields := map[string]any{"root": root}
	if match != "" {
		fields["match"] = match
	}
	if overwrite {
		fields["overwrite"] = true
	}
	if dryRun {
		fields["dry_run"] = true
	}
	return fields
}
