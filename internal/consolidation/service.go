package consolidation

import (
	"context"
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-quizz/internal/locale"
	"github.com/goliatone/go-quizz/internal/logging"
	"github.com/goliatone/go-quizz/internal/markdown"
	"github.com/goliatone/go-quizz/internal/output"
	"github.com/goliatone/go-quizz/internal/quizerr"
	"github.com/goliatone/go-quizz/internal/validation"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

const (
	// DefaultPattern matches the single-locale documents written by the compiler.
	DefaultPattern = "*quiz*.json"
	// DefaultOutputName is the consolidated document written per directory.
	DefaultOutputName = "quizz.json"
	// DefaultWorkers bounds the number of directories merged at once.
	DefaultWorkers = 4
)

// Config controls discovery and merging for a consolidation run.
type Config struct {
	Pattern    string
	OutputName string
	SkipDirs   []string
	Workers    int
	// Locales overrides the strict resolver allow list.
	Locales     []string
	CreatedByID string
	Now         func() time.Time
}

// Service consolidates every quiz directory below a root.
type Service struct {
	cfg    Config
	logger interfaces.Logger
}

var _ interfaces.ConsolidationService = (*Service)(nil)

// NewService constructs a consolidation service. A nil logger disables logging.
func NewService(cfg Config, logger interfaces.Logger) *Service {
	if strings.TrimSpace(cfg.Pattern) == "" {
		cfg.Pattern = DefaultPattern
	}
	if strings.TrimSpace(cfg.OutputName) == "" {
		cfg.OutputName = DefaultOutputName
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{cfg: cfg, logger: logger}
}

type directoryJob struct {
	dir      string
	files    []string
	rootName string
}

// ConsolidateDirectory groups the discovered documents by directory and
// writes one consolidated document per directory. Directories are merged
// concurrently; a failing directory is recorded and never aborts the others.
func (s *Service) ConsolidateDirectory(ctx context.Context, root string, opts interfaces.ConsolidateRunOptions) (*interfaces.RunSummary, error) {
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

	loader := markdown.NewLoader(os.DirFS(root), markdown.LoaderConfig{
		Pattern:  s.cfg.Pattern,
		SkipDirs: s.cfg.SkipDirs,
	})
	paths, err := loader.Discover(ctx, opts.Match)
	if err != nil {
		return nil, err
	}

	jobs := s.group(paths)
	rootName := rootBaseName(root)
	for i := range jobs {
		jobs[i].rootName = rootName
	}
	summary := &interfaces.RunSummary{Files: len(jobs)}
	logger := logging.WithFields(s.logger, map[string]any{
		"root":    root,
		"dry_run": opts.DryRun,
	})
	if len(jobs) == 0 {
		logger.Info("consolidation.run.empty")
		return summary, nil
	}

	var (
		mu        sync.Mutex
		collector = goerrors.NewCollector(goerrors.WithMaxErrors(len(jobs)))
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.cfg.Workers)
	for _, job := range jobs {
		job := job
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcome, err := s.consolidateOne(groupCtx, loader, job, outputRoot, opts, logger)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				collector.Add(err)
				logging.WithDocumentContext(logger, job.dir, "", "consolidate").Error("consolidation.directory.failed", "error", err)
				return nil
			}
			outcome.apply(summary)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return summary, err
	}

	sort.Strings(summary.Outputs)
	summary.Failures = quizerr.Failures(collector)
	logger.Info("consolidation.run.completed",
		"directories", summary.Files,
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

type directoryOutcome struct {
	target   string
	written  bool
	skipped  bool
	warnings int
}

func (o directoryOutcome) apply(summary *interfaces.RunSummary) {
	switch {
	case o.skipped:
		summary.Skipped++
		return
	case o.written:
		summary.Written++
	}
	summary.Warnings += o.warnings
	summary.Outputs = append(summary.Outputs, o.target)
}

func (s *Service) consolidateOne(ctx context.Context, loader *markdown.Loader, job directoryJob, outputRoot string, opts interfaces.ConsolidateRunOptions, logger interfaces.Logger) (directoryOutcome, error) {
	target := filepath.Join(outputRoot, filepath.FromSlash(job.dir), s.cfg.OutputName)
	outcome := directoryOutcome{target: target}
	entry := logging.WithDocumentContext(logger, job.dir, "", "consolidate")

	if !opts.Overwrite {
		exists, err := output.Exists(target)
		if err != nil {
			return outcome, quizerr.OutputFailed(err, target)
		}
		if exists {
			outcome.skipped = true
			entry.Info("consolidation.directory.skipped", "target", target)
			return outcome, nil
		}
	}

	entries := make([]Entry, 0, len(job.files))
	for _, file := range job.files {
		doc, err := readDocument(ctx, loader, file)
		if err != nil {
			return outcome, err
		}
		entries = append(entries, Entry{File: path.Base(file), Document: doc})
	}

	merged, err := Merge(job.dir, entries, MergeOptions{
		CreatedByID: s.cfg.CreatedByID,
		Now:         s.cfg.Now,
		Resolver:    s.resolver(),
		RootName:    job.rootName,
	})
	if err != nil {
		return outcome, quizerr.SourceMalformed(err, job.dir)
	}
	outcome.warnings = len(merged.Meta.Warnings)

	if opts.DryRun {
		entry.Info("consolidation.directory.planned", "target", target, "sets", len(merged.Quiz.Sets))
		return outcome, nil
	}

	if err := output.WriteJSON(target, merged); err != nil {
		return outcome, quizerr.OutputFailed(err, target)
	}
	outcome.written = true
	entry.Info("consolidation.directory.written",
		"target", target,
		"sets", len(merged.Quiz.Sets),
		"languages", strings.Join(merged.Meta.Languages, ","),
	)
	return outcome, nil
}

func readDocument(ctx context.Context, loader *markdown.Loader, file string) (*interfaces.QuizDocument, error) {
	source, err := loader.LoadFile(ctx, file)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateDocument(source.Source); err != nil {
		if goerrors.Is(err, validation.ErrPayloadMalformed) {
			return nil, quizerr.SourceMalformed(err, source.Path)
		}
		return nil, quizerr.InputInvalid(err, source.Path)
	}

	var doc interfaces.QuizDocument
	if err := json.Unmarshal(source.Source, &doc); err != nil {
		return nil, quizerr.SourceMalformed(err, source.Path)
	}
	return &doc, nil
}

// group buckets discovered files by directory, dropping previously written
// consolidated documents. Jobs are ordered by directory.
func (s *Service) group(paths []string) []directoryJob {
	byDir := map[string][]string{}
	for _, file := range paths {
		if path.Base(file) == s.cfg.OutputName {
			continue
		}
		dir := path.Dir(file)
		if dir == "." {
			dir = ""
		}
		byDir[dir] = append(byDir[dir], file)
	}

	jobs := make([]directoryJob, 0, len(byDir))
	for dir, files := range byDir {
		sort.Strings(files)
		jobs = append(jobs, directoryJob{dir: dir, files: files})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].dir < jobs[j].dir })
	return jobs
}

func (s *Service) resolver() *locale.Resolver {
	resolver := locale.Strict()
	if len(s.cfg.Locales) > 0 {
		resolver.Known = s.cfg.Locales
	}
	return &resolver
}

func rootBaseName(root string) string {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return filepath.Base(root)
}
