// Package bundle exports quiz folders into a seed bundle: markdown sources,
// compiled documents, images and init data, plus a checksum manifest and an
// optional xz compressed archive.
package bundle

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-quizz/internal/logging"
	"github.com/goliatone/go-quizz/internal/output"
	"github.com/goliatone/go-quizz/internal/quizerr"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

const (
	sourcePattern   = "*quiz*.md"
	documentPattern = "*quiz*.json"
	combinedName    = "quizz.json"
	imagesDir       = "images"
	initEntry       = "init"
)

// DefaultSkipDirs lists top-level folders that never hold quizzes.
var DefaultSkipDirs = []string{".git", ".github", "node_modules", ".vscode", ".next", ".turbo", "scripts", "assets"}

// Config controls which folders and files an export picks up.
type Config struct {
	SkipDirs []string
	// Tooling lists root level files copied into the bundle when present.
	Tooling []string
	Now     func() time.Time
}

// Options tunes a single export.
type Options struct {
	Destination string
	// Match keeps only top-level folders whose name contains the substring.
	Match string
	// Archive, when set, receives a .tar.xz of the exported files.
	Archive string
}

// Result describes a finished export.
type Result struct {
	Destination  string
	Folders      []string
	ManifestPath string
	Manifest     *Manifest
	Archive      string
}

// Exporter copies quiz folders from a source repository into a bundle.
type Exporter struct {
	cfg    Config
	logger interfaces.Logger
}

// NewExporter constructs an Exporter. A nil logger disables logging.
func NewExporter(cfg Config, logger interfaces.Logger) *Exporter {
	if cfg.SkipDirs == nil {
		cfg.SkipDirs = DefaultSkipDirs
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Exporter{cfg: cfg, logger: logger}
}

// Export copies every top-level folder of sourceRoot that holds quiz markdown.
func (e *Exporter) Export(ctx context.Context, sourceRoot string, opts Options) (*Result, error) {
	destination := strings.TrimSpace(opts.Destination)
	if destination == "" {
		return nil, goerrors.New("bundle destination is required", goerrors.CategoryBadInput).
			WithTextCode(quizerr.CodeInputInvalid)
	}
	sourceRoot = strings.TrimSpace(sourceRoot)
	if sourceRoot == "" {
		sourceRoot = "."
	}

	entries, err := os.ReadDir(sourceRoot)
	if err != nil {
		return nil, quizerr.SourceUnreadable(err, sourceRoot)
	}
	if err := os.MkdirAll(destination, 0o755); err != nil {
		return nil, quizerr.OutputFailed(err, destination)
	}

	logger := logging.WithFields(e.logger, map[string]any{
		"source":      sourceRoot,
		"destination": destination,
	})

	exported := []string{}
	for _, name := range e.cfg.Tooling {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		src := filepath.Join(sourceRoot, name)
		if info, err := os.Stat(src); err != nil || info.IsDir() {
			continue
		}
		if err := copyFile(src, filepath.Join(destination, name)); err != nil {
			return nil, quizerr.OutputFailed(err, name)
		}
		exported = append(exported, filepath.ToSlash(name))
	}

	result := &Result{Destination: destination, Folders: []string{}}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() || e.skipped(entry.Name()) {
			continue
		}
		src := filepath.Join(sourceRoot, entry.Name())
		if opts.Match != "" && !strings.Contains(entry.Name(), opts.Match) {
			continue
		}

		sources, err := glob(src, sourcePattern)
		if err != nil {
			return nil, quizerr.SourceUnreadable(err, entry.Name())
		}
		if len(sources) == 0 {
			continue
		}

		folderLogger := logging.WithDocumentContext(logger, entry.Name(), "", "bundle")
		if err := copyQuizFolder(src, filepath.Join(destination, entry.Name()), sources); err != nil {
			folderLogger.Error("bundle.folder.failed", "error", err)
			return nil, quizerr.OutputFailed(err, entry.Name())
		}
		folderLogger.Info("bundle.folder.copied", "sources", len(sources))
		result.Folders = append(result.Folders, entry.Name())
		exported = append(exported, entry.Name())
	}

	manifest, err := BuildManifest(destination, exported, e.cfg.Now())
	if err != nil {
		return nil, quizerr.OutputFailed(err, ManifestName)
	}
	manifest.Folders = append(manifest.Folders, result.Folders...)
	result.Manifest = manifest
	result.ManifestPath = filepath.Join(destination, ManifestName)
	if err := output.WriteJSON(result.ManifestPath, manifest); err != nil {
		return nil, quizerr.OutputFailed(err, result.ManifestPath)
	}

	if archive := strings.TrimSpace(opts.Archive); archive != "" {
		if err := WriteArchive(archive, destination, manifest); err != nil {
			return nil, quizerr.OutputFailed(err, archive)
		}
		result.Archive = archive
		logger.Info("bundle.archive.written", "archive", archive, "files", len(manifest.Files))
	}

	logger.Info("bundle.export.completed", "folders", len(result.Folders), "files", len(manifest.Files))
	return result, nil
}

func (e *Exporter) skipped(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, skip := range e.cfg.SkipDirs {
		if name == skip {
			return true
		}
	}
	return false
}

// copyQuizFolder copies the markdown sources, the combined document (or the
// per-language documents when none exists), the images folder and the init
// entry. images and init replace whatever the destination held.
func copyQuizFolder(src, dest string, sources []string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}

	for _, name := range sources {
		if err := copyFile(filepath.Join(src, name), filepath.Join(dest, name)); err != nil {
			return err
		}
	}

	documents := []string{combinedName}
	if _, err := os.Stat(filepath.Join(src, combinedName)); err != nil {
		documents, err = glob(src, documentPattern)
		if err != nil {
			return err
		}
	}
	for _, name := range documents {
		if err := copyFile(filepath.Join(src, name), filepath.Join(dest, name)); err != nil {
			return err
		}
	}

	if info, err := os.Stat(filepath.Join(src, imagesDir)); err == nil && info.IsDir() {
		if err := replaceTree(filepath.Join(src, imagesDir), filepath.Join(dest, imagesDir)); err != nil {
			return err
		}
	}

	info, err := os.Stat(filepath.Join(src, initEntry))
	if err != nil {
		return nil
	}
	target := filepath.Join(dest, initEntry)
	if info.IsDir() {
		return replaceTree(filepath.Join(src, initEntry), target)
	}
	if err := os.RemoveAll(target); err != nil {
		return err
	}
	return copyFile(filepath.Join(src, initEntry), target)
}

// glob returns the sorted names of regular files in dir matching pattern.
func glob(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func replaceTree(src, dest string) error {
	if err := os.RemoveAll(dest); err != nil {
		return err
	}
	return filepath.WalkDir(src, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, current)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(current, target)
	})
}

// copyFile copies content, permissions and modification time.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dest, info.ModTime(), info.ModTime())
}
