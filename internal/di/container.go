package di

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-quizz/internal/bundle"
	quizcmd "github.com/goliatone/go-quizz/internal/commands/quiz"
	"github.com/goliatone/go-quizz/internal/consolidation"
	"github.com/goliatone/go-quizz/internal/logging"
	"github.com/goliatone/go-quizz/internal/logging/console"
	"github.com/goliatone/go-quizz/internal/logging/gologger"
	"github.com/goliatone/go-quizz/internal/markdown"
	"github.com/goliatone/go-quizz/internal/runtimeconfig"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

// Container wires the quizz workflows from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	now            func() time.Time

	compileService       interfaces.CompileService
	consolidationService interfaces.ConsolidationService
	bundleExporter       quizcmd.BundleExporter
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider derived from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithClock overrides the time source stamped on generated documents.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// WithCompileService replaces the markdown compile workflow.
func WithCompileService(svc interfaces.CompileService) Option {
	return func(c *Container) {
		if svc != nil {
			c.compileService = svc
		}
	}
}

// WithConsolidationService replaces the directory merge workflow.
func WithConsolidationService(svc interfaces.ConsolidationService) Option {
	return func(c *Container) {
		if svc != nil {
			c.consolidationService = svc
		}
	}
}

// WithBundleExporter replaces the seed bundle exporter.
func WithBundleExporter(exporter quizcmd.BundleExporter) Option {
	return func(c *Container) {
		if exporter != nil {
			c.bundleExporter = exporter
		}
	}
}

// NewContainer validates cfg and builds every service not supplied through opts.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.loggerProvider == nil {
		provider, err := configureLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	c.configureServices()
	return c, nil
}

func configureLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("di: configure go-logger provider: %w", err)
		}
		return provider, nil
	case "console", "":
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		if path := strings.TrimSpace(cfg.File.Path); path != "" {
			opts.File = &console.FileOptions{
				Path:       path,
				MaxSizeMB:  cfg.File.MaxSizeMB,
				MaxBackups: cfg.File.MaxBackups,
				MaxAgeDays: cfg.File.MaxAgeDays,
				Compress:   cfg.File.Compress,
			}
		}
		return console.NewProvider(opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}

func (c *Container) configureServices() {
	if c.compileService == nil {
		c.compileService = markdown.NewService(markdown.Config{
			Pattern:     c.Config.Compiler.Pattern,
			SkipDirs:    c.Config.Compiler.SkipDirs,
			CreatedByID: c.Config.Compiler.CreatedByID,
			Now:         c.now,
		}, logging.MarkdownLogger(c.loggerProvider))
	}

	if c.consolidationService == nil {
		c.consolidationService = consolidation.NewService(consolidation.Config{
			Pattern:     c.Config.Consolidation.Pattern,
			OutputName:  c.Config.Consolidation.OutputName,
			SkipDirs:    c.Config.Consolidation.SkipDirs,
			Workers:     c.Config.Consolidation.Workers,
			Locales:     c.Config.Consolidation.Locales,
			CreatedByID: c.Config.Compiler.CreatedByID,
			Now:         c.now,
		}, logging.ConsolidationLogger(c.loggerProvider))
	}

	if c.bundleExporter == nil {
		c.bundleExporter = bundle.NewExporter(bundle.Config{
			SkipDirs: c.Config.Bundle.SkipDirs,
			Tooling:  c.Config.Bundle.Tooling,
			Now:      c.now,
		}, logging.BundleLogger(c.loggerProvider))
	}
}

// LoggerProvider returns the provider shared by every module logger.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// CompileService returns the markdown compile workflow.
func (c *Container) CompileService() interfaces.CompileService {
	return c.compileService
}

// ConsolidationService returns the directory merge workflow.
func (c *Container) ConsolidationService() interfaces.ConsolidationService {
	return c.consolidationService
}

// BundleExporter returns the seed bundle exporter.
func (c *Container) BundleExporter() quizcmd.BundleExporter {
	return c.bundleExporter
}

// RegisterCommands builds the quiz command handlers over the container services.
func (c *Container) RegisterCommands(reg quizcmd.CommandRegistry, opts ...quizcmd.Option) (*quizcmd.HandlerSet, error) {
	return quizcmd.RegisterQuizCommands(reg, quizcmd.Services{
		Compile:       c.compileService,
		Consolidation: c.consolidationService,
		Bundle:        c.bundleExporter,
	}, c.loggerProvider, opts...)
}
