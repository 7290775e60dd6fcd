package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-quizz/internal/quizerr"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

const defaultSourcePattern = "*quiz*.md"

// DefaultSkipDirs lists directory names never descended into.
var DefaultSkipDirs = []string{".git", "node_modules", ".next", ".turbo"}

// LoaderConfig configures how quiz sources are discovered.
type LoaderConfig struct {
	// Pattern is matched against file base names (defaults to "*quiz*.md").
	Pattern string
	// SkipDirs lists directory names that are pruned from the walk.
	SkipDirs []string
}

// Loader discovers and reads quiz sources from a filesystem rooted at the
// scan root.
type Loader struct {
	fs       fs.FS
	pattern  string
	skipDirs map[string]struct{}
}

// NewLoader constructs a Loader for the filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = defaultSourcePattern
	}
	skip := cfg.SkipDirs
	if skip == nil {
		skip = DefaultSkipDirs
	}
	skipDirs := make(map[string]struct{}, len(skip))
	for _, name := range skip {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			skipDirs[trimmed] = struct{}{}
		}
	}
	return &Loader{
		fs:       filesystem,
		pattern:  pattern,
		skipDirs: skipDirs,
	}
}

// Discover walks the filesystem and returns the sorted, slash separated paths
// of matching sources. When match is non-empty only paths containing it are
// kept.
func (l *Loader) Discover(ctx context.Context, match string) ([]string, error) {
	var found []string

	walkErr := fs.WalkDir(l.fs, ".", func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if current != "." && l.skipped(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if ok, err := path.Match(l.pattern, d.Name()); err != nil || !ok {
			return err
		}
		if match != "" && !strings.Contains(current, match) {
			return nil
		}
		found = append(found, current)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("markdown loader: discover sources: %w", walkErr)
	}

	sort.Strings(found)
	return found, nil
}

// LoadFile reads a single source.
func (l *Loader) LoadFile(ctx context.Context, sourcePath string) (*interfaces.SourceDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := path.Clean(strings.ReplaceAll(sourcePath, "\\", "/"))
	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, quizerr.SourceUnreadable(err, rel)
	}
	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, quizerr.SourceUnreadable(err, rel)
	}

	sum := sha256.Sum256(data)
	return &interfaces.SourceDocument{
		Path:         rel,
		Source:       data,
		LastModified: info.ModTime(),
		Checksum:     sum[:],
	}, nil
}

func (l *Loader) skipped(name string) bool {
	_, ok := l.skipDirs[name]
	return ok
}
