package interfaces

import (
	"context"
	"time"
)

// SourceDocument is a quiz markdown file read fully into memory. Path is
// slash separated and relative to the scan root so identities derived from
// it do not depend on where the repository is checked out.
type SourceDocument struct {
	Path         string
	Source       []byte
	LastModified time.Time
	// Checksum stores a SHA-256 digest of Source.
	Checksum []byte
}

// FrontMatter models the optional YAML header of a quiz markdown file. Every
// field is optional; the markdown body stays authoritative for the title.
type FrontMatter struct {
	Title       string         `yaml:"title" json:"title"`
	Description string         `yaml:"description" json:"description"`
	CreatedByID string         `yaml:"createdById" json:"createdById"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
}

// QuizCompiler turns one markdown source into a single-locale document.
type QuizCompiler interface {
	Compile(source []byte, path string) (*QuizDocument, error)
}

// CompileRunOptions tunes a directory compile run.
type CompileRunOptions struct {
	// OutputRoot receives <dir>/<stem>.json files. Defaults to the scan root.
	OutputRoot string
	// Match keeps only paths containing the substring.
	Match     string
	Overwrite bool
	DryRun    bool
}

// ConsolidateRunOptions tunes a directory consolidation run.
type ConsolidateRunOptions struct {
	OutputRoot string
	Match      string
	Overwrite  bool
	DryRun     bool
}

// CompileService exposes the directory level compile workflow.
type CompileService interface {
	CompileDirectory(ctx context.Context, root string, opts CompileRunOptions) (*RunSummary, error)
}

// ConsolidationService exposes the directory level merge workflow.
type ConsolidationService interface {
	ConsolidateDirectory(ctx context.Context, root string, opts ConsolidateRunOptions) (*RunSummary, error)
}
