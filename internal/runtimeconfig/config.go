package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvCreatedByID overrides compiler.created_by_id.
	EnvCreatedByID = "SEED_USER_ID"
	// EnvLogLevel overrides logging.level.
	EnvLogLevel = "QUIZZ_LOG_LEVEL"
)

var (
	ErrCompilerPatternInvalid      = errors.New("quizz config: compiler pattern is invalid")
	ErrConsolidationPatternInvalid = errors.New("quizz config: consolidation pattern is invalid")
	ErrOutputNameInvalid           = errors.New("quizz config: consolidation output name must be a plain file name")
	ErrWorkersInvalid              = errors.New("quizz config: consolidation workers must be zero or positive")
	ErrLocaleInvalid               = errors.New("quizz config: consolidation locale is invalid")
	ErrArchiveSuffixInvalid        = errors.New("quizz config: bundle archive must end with .tar.xz")
	ErrLoggingProviderRequired     = errors.New("quizz config: logging provider is required")
	ErrLoggingProviderUnknown      = errors.New("quizz config: logging provider is invalid")
	ErrLoggingLevelInvalid         = errors.New("quizz config: logging level is invalid")
	ErrLoggingFormatInvalid        = errors.New("quizz config: logging format is invalid")
	ErrLogFileLimitsInvalid        = errors.New("quizz config: log file limits must be zero or positive")
)

var localeCode = regexp.MustCompile(`^[a-z]{2,4}$`)

// Config aggregates the settings of the compile, consolidate and bundle
// workflows. Zero values fall back to the defaults of each workflow.
type Config struct {
	Compiler      CompilerConfig      `yaml:"compiler"`
	Consolidation ConsolidationConfig `yaml:"consolidation"`
	Bundle        BundleConfig        `yaml:"bundle"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// CompilerConfig configures markdown discovery and compilation.
type CompilerConfig struct {
	// CreatedByID is stamped on quizzes whose frontmatter names no owner.
	CreatedByID string   `yaml:"created_by_id"`
	Pattern     string   `yaml:"pattern"`
	SkipDirs    []string `yaml:"skip_dirs"`
	Overwrite   bool     `yaml:"overwrite"`
}

// ConsolidationConfig configures the per-directory merge.
type ConsolidationConfig struct {
	Pattern    string   `yaml:"pattern"`
	OutputName string   `yaml:"output_name"`
	SkipDirs   []string `yaml:"skip_dirs"`
	Workers    int      `yaml:"workers"`
	// Locales is the allow list used for strict language resolution.
	Locales   []string `yaml:"locales"`
	Overwrite bool     `yaml:"overwrite"`
}

// BundleConfig configures seed bundle exports.
type BundleConfig struct {
	SkipDirs []string `yaml:"skip_dirs"`
	Tooling  []string `yaml:"tooling"`
	Archive  string   `yaml:"archive"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string        `yaml:"provider"`
	Level     string        `yaml:"level"`
	Format    string        `yaml:"format"`
	AddSource bool          `yaml:"add_source"`
	Focus     []string      `yaml:"focus"`
	File      LogFileConfig `yaml:"file"`
}

// LogFileConfig enables a size-rotated log file when Path is set.
type LogFileConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig returns the settings used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Compiler: CompilerConfig{
			Pattern:  "*quiz*.md",
			SkipDirs: []string{".git", "node_modules", ".next", ".turbo"},
		},
		Consolidation: ConsolidationConfig{
			Pattern:    "*quiz*.json",
			OutputName: "quizz.json",
			SkipDirs:   []string{".git", "node_modules", ".next", ".turbo"},
			Workers:    4,
			Locales:    []string{"en", "fr", "es", "it", "ch", "de", "ua", "hi", "ptbr", "tr", "pt", "ja", "vi"},
		},
		Bundle: BundleConfig{
			SkipDirs: []string{".git", ".github", "node_modules", ".vscode", ".next", ".turbo", "scripts", "assets"},
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Load reads the YAML file at configPath over DefaultConfig, then applies
// environment overrides. An empty path skips the file. Unknown keys are
// rejected.
func Load(configPath string) (Config, error) {
	cfg := DefaultConfig()

	if trimmed := strings.TrimSpace(configPath); trimmed != "" {
		data, err := os.ReadFile(trimmed)
		if err != nil {
			return cfg, fmt.Errorf("quizz config: read %s: %w", trimmed, err)
		}
		if err := decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("quizz config: decode %s: %w", trimmed, err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, cfg.Validate()
}

func decode(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	return decoder.Decode(cfg)
}

// ApplyEnv overrides fields from environment variables resolved by lookup.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		return
	}
	if value, ok := lookup(EnvCreatedByID); ok && strings.TrimSpace(value) != "" {
		cfg.Compiler.CreatedByID = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(value) != "" {
		cfg.Logging.Level = strings.TrimSpace(value)
	}
}

// Validate reports the first inconsistent setting.
func (cfg Config) Validate() error {
	if err := validPattern(cfg.Compiler.Pattern); err != nil {
		return fmt.Errorf("%w: %v", ErrCompilerPatternInvalid, err)
	}
	if err := validPattern(cfg.Consolidation.Pattern); err != nil {
		return fmt.Errorf("%w: %v", ErrConsolidationPatternInvalid, err)
	}
	if name := cfg.Consolidation.OutputName; name != "" && (strings.ContainsAny(name, `/\`) || name == "." || name == "..") {
		return fmt.Errorf("%w: %s", ErrOutputNameInvalid, name)
	}
	if cfg.Consolidation.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrWorkersInvalid, cfg.Consolidation.Workers)
	}
	for _, code := range cfg.Consolidation.Locales {
		if !localeCode.MatchString(code) {
			return fmt.Errorf("%w: %q", ErrLocaleInvalid, code)
		}
	}
	if archive := strings.TrimSpace(cfg.Bundle.Archive); archive != "" && !strings.HasSuffix(archive, ".tar.xz") {
		return ErrArchiveSuffixInvalid
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	file := cfg.Logging.File
	if file.MaxSizeMB < 0 || file.MaxBackups < 0 || file.MaxAgeDays < 0 {
		return fmt.Errorf("%w: size=%d backups=%d age=%d", ErrLogFileLimitsInvalid, file.MaxSizeMB, file.MaxBackups, file.MaxAgeDays)
	}
	return nil
}

func validPattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return nil
	}
	_, err := path.Match(pattern, "")
	return err
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
