package quizz

import (
	"github.com/goliatone/go-quizz/internal/attachments"
	"github.com/goliatone/go-quizz/internal/bundle"
	quizcmd "github.com/goliatone/go-quizz/internal/commands/quiz"
	"github.com/goliatone/go-quizz/internal/consolidation"
	"github.com/goliatone/go-quizz/internal/di"
	"github.com/goliatone/go-quizz/internal/locale"
	"github.com/goliatone/go-quizz/internal/markdown"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

// CompileService exports the directory compile contract.
type CompileService = interfaces.CompileService

// ConsolidationService exports the directory merge contract.
type ConsolidationService = interfaces.ConsolidationService

// BundleExporter exports the seed bundle contract.
type BundleExporter = quizcmd.BundleExporter

type (
	QuizDocument          = interfaces.QuizDocument
	ConsolidatedDocument  = interfaces.ConsolidatedDocument
	Question              = interfaces.Question
	Attachment            = interfaces.Attachment
	RunSummary            = interfaces.RunSummary
	RunFailure            = interfaces.RunFailure
	CompileRunOptions     = interfaces.CompileRunOptions
	ConsolidateRunOptions = interfaces.ConsolidateRunOptions
	BundleOptions         = bundle.Options
	BundleResult          = bundle.Result
	CompilerOptions       = markdown.CompilerOptions
	LocaleResolver        = locale.Resolver
)

// Option customises the module container.
type Option = di.Option

var (
	WithLoggerProvider         = di.WithLoggerProvider
	WithClock                  = di.WithClock
	WithCompileService         = di.WithCompileService
	WithConsolidationService   = di.WithConsolidationService
	WithBundleExporterOverride = di.WithBundleExporter
)

// Module represents the top level quizz runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the validated configuration the module was built with.
func (m *Module) Config() Config {
	if m == nil || m.container == nil {
		return DefaultConfig()
	}
	return m.container.Config
}

// Compiler returns the directory compile service.
func (m *Module) Compiler() CompileService {
	return m.container.CompileService()
}

// Consolidation returns the directory merge service.
func (m *Module) Consolidation() ConsolidationService {
	return m.container.ConsolidationService()
}

// Bundles returns the seed bundle exporter.
func (m *Module) Bundles() BundleExporter {
	return m.container.BundleExporter()
}

// Compile turns one markdown source into a single-locale document. path is
// the slash separated location of the source relative to the quiz root.
func Compile(source []byte, path string, opts CompilerOptions) (*QuizDocument, error) {
	return markdown.NewCompiler(opts).Compile(source, path)
}

// Merge folds the documents of one directory into a consolidated document.
// Documents are keyed by their file name relative to the quiz root.
func Merge(relDir string, documents map[string]*QuizDocument, createdByID string) (*ConsolidatedDocument, error) {
	entries := make([]consolidation.Entry, 0, len(documents))
	for file, doc := range documents {
		entries = append(entries, consolidation.Entry{File: file, Document: doc})
	}
	return consolidation.Merge(relDir, entries, consolidation.MergeOptions{CreatedByID: createdByID})
}

// ResolveLocale returns the language of a compiled document using the strict
// allow list applied during consolidation.
func ResolveLocale(explicit, filename string) string {
	return locale.Strict().Resolve(explicit, filename)
}

// NormalizeAttachment rewrites an image reference into a ~/<dir>/<path> locator.
func NormalizeAttachment(raw, relDir string) string {
	return attachments.Normalize(raw, relDir)
}
