package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-quizz/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Consolidation.OutputName != "quizz.json" {
		t.Fatalf("unexpected default output name %q", cfg.Consolidation.OutputName)
	}
	if cfg.Compiler.CreatedByID != "" {
		t.Fatalf("expected no default owner, got %q", cfg.Compiler.CreatedByID)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	t.Setenv(runtimeconfig.EnvCreatedByID, "")
	t.Setenv(runtimeconfig.EnvLogLevel, "")

	path := writeConfig(t, `
compiler:
  created_by_id: owner-1
consolidation:
  workers: 8
  locales: [en, fr]
logging:
  provider: gologger
  format: json
`)

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Compiler.CreatedByID != "owner-1" {
		t.Fatalf("expected owner from file, got %q", cfg.Compiler.CreatedByID)
	}
	if cfg.Compiler.Pattern != "*quiz*.md" {
		t.Fatalf("expected default compiler pattern to survive, got %q", cfg.Compiler.Pattern)
	}
	if cfg.Consolidation.Workers != 8 || strings.Join(cfg.Consolidation.Locales, ",") != "en,fr" {
		t.Fatalf("unexpected consolidation config %+v", cfg.Consolidation)
	}
	if cfg.Logging.Provider != "gologger" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadAcceptsEmptyFile(t *testing.T) {
	t.Setenv(runtimeconfig.EnvCreatedByID, "")
	t.Setenv(runtimeconfig.EnvLogLevel, "")

	cfg, err := runtimeconfig.Load(writeConfig(t, "\n"))
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Logging.Provider != "console" {
		t.Fatalf("expected defaults, got provider %q", cfg.Logging.Provider)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := runtimeconfig.Load(writeConfig(t, "compiler:\n  patern: \"*.md\"\n"))
	if err == nil || !strings.Contains(err.Error(), "patern") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadReportsMissingFile(t *testing.T) {
	_, err := runtimeconfig.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	t.Setenv(runtimeconfig.EnvCreatedByID, " seed-user ")
	t.Setenv(runtimeconfig.EnvLogLevel, "debug")

	cfg, err := runtimeconfig.Load(writeConfig(t, "compiler:\n  created_by_id: from-file\n"))
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Compiler.CreatedByID != "seed-user" {
		t.Fatalf("expected environment owner, got %q", cfg.Compiler.CreatedByID)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected environment level, got %q", cfg.Logging.Level)
	}
}

func TestApplyEnvIgnoresBlankValues(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Compiler.CreatedByID = "kept"

	cfg.ApplyEnv(func(key string) (string, bool) {
		return "  ", true
	})
	if cfg.Compiler.CreatedByID != "kept" || cfg.Logging.Level != "info" {
		t.Fatalf("blank overrides must be ignored, got %+v", cfg)
	}

	cfg.ApplyEnv(nil)
}

func TestConfigValidateRejectsInvalidSettings(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"compiler pattern", func(c *runtimeconfig.Config) { c.Compiler.Pattern = "[" }, runtimeconfig.ErrCompilerPatternInvalid},
		{"consolidation pattern", func(c *runtimeconfig.Config) { c.Consolidation.Pattern = "quiz[" }, runtimeconfig.ErrConsolidationPatternInvalid},
		{"output name", func(c *runtimeconfig.Config) { c.Consolidation.OutputName = "out/quizz.json" }, runtimeconfig.ErrOutputNameInvalid},
		{"workers", func(c *runtimeconfig.Config) { c.Consolidation.Workers = -1 }, runtimeconfig.ErrWorkersInvalid},
		{"locale", func(c *runtimeconfig.Config) { c.Consolidation.Locales = []string{"EN"} }, runtimeconfig.ErrLocaleInvalid},
		{"archive", func(c *runtimeconfig.Config) { c.Bundle.Archive = "seed.zip" }, runtimeconfig.ErrArchiveSuffixInvalid},
		{"provider required", func(c *runtimeconfig.Config) { c.Logging.Provider = " " }, runtimeconfig.ErrLoggingProviderRequired},
		{"provider unknown", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"format", func(c *runtimeconfig.Config) {
			c.Logging.Provider = "gologger"
			c.Logging.Format = "xml"
		}, runtimeconfig.ErrLoggingFormatInvalid},
		{"file limits", func(c *runtimeconfig.Config) { c.Logging.File.MaxBackups = -2 }, runtimeconfig.ErrLogFileLimitsInvalid},
	}

	for _, tc := range cases {
		cfg := runtimeconfig.DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestConfigValidateIgnoresFormatForConsoleProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("console provider should ignore format, got %v", err)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quizz.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
