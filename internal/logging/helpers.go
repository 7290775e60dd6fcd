package logging

import (
	"maps"

	"github.com/goliatone/go-quizz/pkg/interfaces"
)

// WithFields attaches fields when logger implements interfaces.FieldsLogger
// and returns logger unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if with, ok := logger.(interfaces.FieldsLogger); ok {
		return with.WithFields(maps.Clone(fields))
	}
	return logger
}
