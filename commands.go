package quizz

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	quizcmd "github.com/goliatone/go-quizz/internal/commands/quiz"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

type (
	CompileDirectoryCommand     = quizcmd.CompileDirectoryCommand
	ConsolidateDirectoryCommand = quizcmd.ConsolidateDirectoryCommand
	ExportBundleCommand         = quizcmd.ExportBundleCommand
	SummaryReporter             = quizcmd.SummaryReporter
	BundleReporter              = quizcmd.BundleReporter
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered.
type RegistrationOptions struct {
	Registry        CommandRegistry
	Dispatcher      CommandDispatcher
	LoggerProvider  interfaces.LoggerProvider
	SummaryReporter SummaryReporter
	BundleReporter  BundleReporter
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Unsubscribe tears down every dispatcher subscription.
func (r *RegistrationResult) Unsubscribe() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		sub.Unsubscribe()
	}
	r.Subscriptions = nil
}

// RegisterCommands builds the compile, consolidate and export handlers of the
// module and registers them with the optional registry and dispatcher.
func RegisterCommands(module *Module, opts RegistrationOptions) (*RegistrationResult, error) {
	if module == nil || module.container == nil {
		return &RegistrationResult{}, nil
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = module.container.LoggerProvider()
	}

	var handlerOpts []quizcmd.Option
	if opts.SummaryReporter != nil {
		handlerOpts = append(handlerOpts, quizcmd.WithSummaryReporter(opts.SummaryReporter))
	}
	if opts.BundleReporter != nil {
		handlerOpts = append(handlerOpts, quizcmd.WithBundleReporter(opts.BundleReporter))
	}

	set, err := quizcmd.RegisterQuizCommands(nil, quizcmd.Services{
		Compile:       module.Compiler(),
		Consolidation: module.Consolidation(),
		Bundle:        module.Bundles(),
	}, provider, handlerOpts...)
	if err != nil {
		return &RegistrationResult{}, err
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0, 3),
		Subscriptions: make([]CommandSubscription, 0, 3),
	}

	var errs error
	register := func(handler any) {
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	if set.Compile != nil {
		register(set.Compile)
	}
	if set.Consolidate != nil {
		register(set.Consolidate)
	}
	if set.Bundle != nil {
		register(set.Bundle)
	}

	return result, errs
}

// NewDispatcher returns a CommandDispatcher backed by the go-command global
// dispatcher. Runner options such as retries apply to every subscription.
func NewDispatcher(opts ...runner.Option) CommandDispatcher {
	return globalDispatcher{opts: opts}
}

type globalDispatcher struct {
	opts []runner.Option
}

func (d globalDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	switch h := handler.(type) {
	case *quizcmd.CompileDirectoryHandler:
		return dispatcher.SubscribeCommand[CompileDirectoryCommand](h, d.opts...), nil
	case *quizcmd.ConsolidateDirectoryHandler:
		return dispatcher.SubscribeCommand[ConsolidateDirectoryCommand](h, d.opts...), nil
	case *quizcmd.ExportBundleHandler:
		return dispatcher.SubscribeCommand[ExportBundleCommand](h, d.opts...), nil
	default:
		return nil, fmt.Errorf("quizz: unsupported command handler %T", handler)
	}
}
