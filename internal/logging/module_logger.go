package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-quizz/pkg/interfaces"
)

const (
	rootModule          = "quizz"
	markdownModule      = "quizz.markdown"
	consolidationModule = "quizz.consolidation"
	bundleModule        = "quizz.bundle"
	commandsModule      = "quizz.commands"
)

const (
	fieldDocumentPath   = "document_path"
	fieldDocumentLocale = "locale"
	fieldDocumentAction = "action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered per workflow.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// MarkdownLogger returns the logger used by the markdown compiler.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// ConsolidationLogger returns the logger used by the multi-locale merge runs.
func ConsolidationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, consolidationModule)
}

// BundleLogger returns the logger used by seed bundle exports.
func BundleLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, bundleModule)
}

// CommandsLogger returns the logger shared by command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithDocumentContext enriches the logger with the document path, locale and
// the action being performed. Empty values are ignored.
func WithDocumentContext(logger interfaces.Logger, path, locale, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldDocumentLocale] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldDocumentAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
