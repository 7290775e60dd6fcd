package quizcmd

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	compileDirectoryMessageType     = "quizz.compile_directory"
	consolidateDirectoryMessageType = "quizz.consolidate_directory"
	exportBundleMessageType         = "quizz.export_bundle"
)

var archiveSuffix = regexp.MustCompile(`\.tar\.xz$`)

// CompileDirectoryCommand compiles every quiz markdown source under Root
// into <OutputRoot>/<dir>/<stem>.json.
type CompileDirectoryCommand struct {
	Root string `json:"root"`
	// OutputRoot defaults to Root.
	OutputRoot string `json:"output_root,omitempty"`
	Match      string `json:"match,omitempty"`
	Overwrite  bool   `json:"overwrite,omitempty"`
	DryRun     bool   `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (CompileDirectoryCommand) Type() string { return compileDirectoryMessageType }

// Validate ensures the scan root is present before handlers execute.
func (cmd CompileDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Root, validation.Required, validation.By(notBlank("quizz.compile_directory.root_required", "root is required"))),
	)
}

// ConsolidateDirectoryCommand merges the compiled documents of every quiz
// directory under Root into <OutputRoot>/<dir>/quizz.json.
type ConsolidateDirectoryCommand struct {
	Root       string `json:"root"`
	OutputRoot string `json:"output_root,omitempty"`
	Match      string `json:"match,omitempty"`
	Overwrite  bool   `json:"overwrite,omitempty"`
	DryRun     bool   `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ConsolidateDirectoryCommand) Type() string { return consolidateDirectoryMessageType }

// Validate ensures the scan root is present before handlers execute.
func (cmd ConsolidateDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Root, validation.Required, validation.By(notBlank("quizz.consolidate_directory.root_required", "root is required"))),
	)
}

// ExportBundleCommand copies the quiz folders of Source into Destination and
// optionally packs them into an xz compressed tarball.
type ExportBundleCommand struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Match       string `json:"match,omitempty"`
	Archive     string `json:"archive,omitempty"`
}

// Type implements command.Message.
func (ExportBundleCommand) Type() string { return exportBundleMessageType }

// Validate requires a source and destination, and a .tar.xz archive name when
// an archive is requested.
func (cmd ExportBundleCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Source, validation.Required, validation.By(notBlank("quizz.export_bundle.source_required", "source is required"))),
		validation.Field(&cmd.Destination, validation.Required, validation.By(notBlank("quizz.export_bundle.destination_required", "destination is required"))),
		validation.Field(&cmd.Archive, validation.Match(archiveSuffix).Error("archive must end with .tar.xz")),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, _ := value.(string); strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
