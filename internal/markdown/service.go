package markdown

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-quizz/internal/logging"
	"github.com/goliatone/go-quizz/internal/output"
	"github.com/goliatone/go-quizz/internal/quizerr"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

// Config controls how the compile service discovers and compiles sources.
type Config struct {
	Pattern     string
	SkipDirs    []string
	CreatedByID string
	Now         func() time.Time
}

// Service compiles every quiz source below a root into sibling JSON files.
type Service struct {
	cfg      Config
	compiler *Compiler
	logger   interfaces.Logger
}

var _ interfaces.CompileService = (*Service)(nil)

// NewService constructs a compile service. A nil logger disables logging.
func NewService(cfg Config, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		cfg: cfg,
		compiler: NewCompiler(CompilerOptions{
			CreatedByID: cfg.CreatedByID,
			Now:         cfg.Now,
		}),
		logger: logger,
	}
}

// Compiler exposes the underlying single document compiler.
func (s *Service) Compiler() *Compiler {
	return s.compiler
}

// CompileDirectory compiles each discovered source independently. A failing
// source is recorded in the summary and never aborts its siblings; an error
// is returned only when discovery fails or no source survives.
func (s *Service) CompileDirectory(ctx context.Context, root string, opts interfaces.CompileRunOptions) (*interfaces.RunSummary, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	if _, err := os.Stat(root); err != nil {
		return nil, quizerr.SourceUnreadable(err, root)
	}

	outputRoot := strings.TrimSpace(opts.OutputRoot)
	if outputRoot == "" {
		outputRoot = root
	}

	loader := NewLoader(os.DirFS(root), LoaderConfig{
		Pattern:  s.cfg.Pattern,
		SkipDirs: s.cfg.SkipDirs,
	})

	paths, err := loader.Discover(ctx, opts.Match)
	if err != nil {
		return nil, err
	}

	summary := &interfaces.RunSummary{Files: len(paths)}
	logger := logging.WithFields(s.logger, map[string]any{
		"root":    root,
		"dry_run": opts.DryRun,
	})
	if len(paths) == 0 {
		logger.Info("markdown.compile.empty")
		return summary, nil
	}

	collector := goerrors.NewCollector(goerrors.WithMaxErrors(len(paths)))
	for _, sourcePath := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := s.compileOne(ctx, loader, sourcePath, outputRoot, opts, summary, logger); err != nil {
			summary.Failed++
			collector.Add(err)
			logging.WithDocumentContext(logger, sourcePath, "", "compile").Error("markdown.compile.failed", "error", err)
		}
	}

	summary.Failures = quizerr.Failures(collector)
	logger.Info("markdown.compile.completed",
		"files", summary.Files,
		"written", summary.Written,
		"skipped", summary.Skipped,
		"warnings", summary.Warnings,
		"failed", summary.Failed,
	)

	if !summary.Succeeded() {
		return summary, quizerr.NoDocuments(summary.Failed)
	}
	return summary, nil
}

func (s *Service) compileOne(ctx context.Context, loader *Loader, sourcePath, outputRoot string, opts interfaces.CompileRunOptions, summary *interfaces.RunSummary, logger interfaces.Logger) error {
	source, err := loader.LoadFile(ctx, sourcePath)
	if err != nil {
		return err
	}

	doc, err := s.compiler.Compile(source.Source, source.Path)
	if err != nil {
		return err
	}

	entry := logging.WithDocumentContext(logger, source.Path, doc.Meta.Language, "compile")
	entry.Debug("markdown.compile.parsed",
		"checksum", hex.EncodeToString(source.Checksum),
		"questions", len(doc.Quiz.Questions),
	)

	target := OutputPath(outputRoot, source.Path)
	if !opts.Overwrite && !opts.DryRun {
		exists, err := output.Exists(target)
		if err != nil {
			return quizerr.OutputFailed(err, target)
		}
		if exists {
			summary.Skipped++
			entry.Info("markdown.compile.skipped", "target", target)
			return nil
		}
	}

	if opts.DryRun {
		entry.Info("markdown.compile.planned", "target", target)
	} else {
		if err := output.WriteJSON(target, doc); err != nil {
			return quizerr.OutputFailed(err, target)
		}
		summary.Written++
		entry.Info("markdown.compile.written", "target", target, "questions", len(doc.Quiz.Questions))
	}
	summary.Outputs = append(summary.Outputs, target)

	summary.Warnings += len(doc.Meta.Warnings)
	for _, warning := range doc.Meta.Warnings {
		entry.Warn("markdown.compile.warning", "warning", warning)
	}
	return nil
}

// OutputPath maps a slash separated source path to <outputRoot>/<dir>/<stem>.json.
func OutputPath(outputRoot, sourcePath string) string {
	dir := path.Dir(sourcePath)
	base := path.Base(sourcePath)
	stem := strings.TrimSuffix(base, path.Ext(base))
	return filepath.Join(outputRoot, filepath.FromSlash(dir), fmt.Sprintf("%s.json", stem))
}
