// Package quizerr tags document level failures with go-errors categories and
// text codes so runs can report them uniformly.
package quizerr

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-quizz/pkg/interfaces"
)

const (
	CodeSourceUnreadable = "QUIZ_SOURCE_UNREADABLE"
	CodeSourceMalformed  = "QUIZ_SOURCE_MALFORMED"
	CodeOutputFailed     = "QUIZ_OUTPUT_FAILED"
	CodeInputInvalid     = "QUIZ_INPUT_INVALID"
	CodeNoDocuments      = "QUIZ_NO_DOCUMENTS"
)

const metadataPath = "path"

// SourceUnreadable reports a source that could not be read from disk.
func SourceUnreadable(err error, path string) error {
	return tag(err, goerrors.CategoryNotFound, "read quiz source", CodeSourceUnreadable, path)
}

// SourceMalformed reports a source whose content cannot be compiled.
func SourceMalformed(err error, path string) error {
	return tag(err, goerrors.CategoryBadInput, "malformed quiz source", CodeSourceMalformed, path)
}

// OutputFailed reports a document that could not be written.
func OutputFailed(err error, path string) error {
	return tag(err, goerrors.CategoryOperation, "write quiz output", CodeOutputFailed, path)
}

// InputInvalid reports a compiled document whose shape does not validate.
func InputInvalid(err error, path string) error {
	return tag(err, goerrors.CategoryValidation, "invalid quiz document", CodeInputInvalid, path)
}

// NoDocuments reports a run where every input failed.
func NoDocuments(failed int) error {
	return goerrors.New("no quiz document survived the run", goerrors.CategoryOperation).
		WithTextCode(CodeNoDocuments).
		WithMetadata(map[string]any{"failed": failed})
}

// TextCode returns the text code carried by err, if any.
func TextCode(err error) string {
	var typed *goerrors.Error
	if goerrors.As(err, &typed) {
		return typed.TextCode
	}
	return ""
}

// Path returns the document path attached to err, if any.
func Path(err error) string {
	var typed *goerrors.Error
	if goerrors.As(err, &typed) && typed.Metadata != nil {
		if value, ok := typed.Metadata[metadataPath].(string); ok {
			return value
		}
	}
	return ""
}

// Failures converts collected errors into run summary entries.
func Failures(collector *goerrors.ErrorCollector) []interfaces.RunFailure {
	if collector == nil || !collector.HasErrors() {
		return nil
	}
	collected := collector.Errors()
	failures := make([]interfaces.RunFailure, 0, len(collected))
	for _, err := range collected {
		failures = append(failures, interfaces.RunFailure{
			Path:    Path(err),
			Code:    err.TextCode,
			Message: err.Error(),
		})
	}
	return failures
}

func tag(err error, category goerrors.Category, message, code, path string) error {
	if err == nil {
		return nil
	}
	wrapped := goerrors.Wrap(err, category, message).WithTextCode(code)
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		wrapped = wrapped.WithMetadata(map[string]any{metadataPath: trimmed})
	}
	return wrapped
}
