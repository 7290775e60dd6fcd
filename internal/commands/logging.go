package commands

import (
	"strings"

	"github.com/goliatone/go-quizz/internal/logging"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

const commandModuleRoot = "quizz.commands"

// CommandLogger returns a logger scoped to quizz.commands.<module> with the
// command component fields attached.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
