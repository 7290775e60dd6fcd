package quizcmd

import (
	"errors"

	"github.com/goliatone/go-quizz/internal/commands"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Services groups the workflows the quiz commands drive. Nil members skip
// the matching handler.
type Services struct {
	Compile       interfaces.CompileService
	Consolidation interfaces.ConsolidationService
	Bundle        BundleExporter
}

// HandlerSet groups the handlers built by RegisterQuizCommands.
type HandlerSet struct {
	Compile     *CompileDirectoryHandler
	Consolidate *ConsolidateDirectoryHandler
	Bundle      *ExportBundleHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	summaryReporter SummaryReporter
	bundleReporter  BundleReporter
	compileOpts     []commands.HandlerOption[CompileDirectoryCommand]
	consolidateOpts []commands.HandlerOption[ConsolidateDirectoryCommand]
	bundleOpts      []commands.HandlerOption[ExportBundleCommand]
}

// WithSummaryReporter receives every compile and consolidate summary.
func WithSummaryReporter(report SummaryReporter) Option {
	return func(cfg *options) {
		cfg.summaryReporter = report
	}
}

// WithBundleReporter receives every export result.
func WithBundleReporter(report BundleReporter) Option {
	return func(cfg *options) {
		cfg.bundleReporter = report
	}
}

// WithCompileHandlerOptions forwards options to the compile handler constructor.
func WithCompileHandlerOptions(opts ...commands.HandlerOption[CompileDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.compileOpts = append(cfg.compileOpts, opts...)
	}
}

// WithConsolidateHandlerOptions forwards options to the consolidate handler constructor.
func WithConsolidateHandlerOptions(opts ...commands.HandlerOption[ConsolidateDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.consolidateOpts = append(cfg.consolidateOpts, opts...)
	}
}

// WithBundleHandlerOptions forwards options to the export handler constructor.
func WithBundleHandlerOptions(opts ...commands.HandlerOption[ExportBundleCommand]) Option {
	return func(cfg *options) {
		cfg.bundleOpts = append(cfg.bundleOpts, opts...)
	}
}

// RegisterQuizCommands builds the quiz command handlers and registers them
// with reg when it is non-nil. The returned HandlerSet lets callers subscribe
// the handlers to a dispatcher.
func RegisterQuizCommands(reg CommandRegistry, services Services, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if services.Compile == nil && services.Consolidation == nil && services.Bundle == nil {
		return nil, errors.New("quiz command registration: no services supplied")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	set := &HandlerSet{}
	var handlers []any
	if services.Compile != nil {
		set.Compile = NewCompileDirectoryHandler(services.Compile, commands.CommandLogger(provider, "compile"), cfg.summaryReporter, cfg.compileOpts...)
		handlers = append(handlers, set.Compile)
	}
	if services.Consolidation != nil {
		set.Consolidate = NewConsolidateDirectoryHandler(services.Consolidation, commands.CommandLogger(provider, "consolidate"), cfg.summaryReporter, cfg.consolidateOpts...)
		handlers = append(handlers, set.Consolidate)
	}
	if services.Bundle != nil {
		set.Bundle = NewExportBundleHandler(services.Bundle, commands.CommandLogger(provider, "bundle"), cfg.bundleReporter, cfg.bundleOpts...)
		handlers = append(handlers, set.Bundle)
	}

	if reg != nil {
		for _, handler := range handlers {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
