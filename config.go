package quizz

import "github.com/goliatone/go-quizz/internal/runtimeconfig"

var (
	ErrCompilerPatternInvalid      = runtimeconfig.ErrCompilerPatternInvalid
	ErrConsolidationPatternInvalid = runtimeconfig.ErrConsolidationPatternInvalid
	ErrOutputNameInvalid           = runtimeconfig.ErrOutputNameInvalid
	ErrWorkersInvalid              = runtimeconfig.ErrWorkersInvalid
	ErrLocaleInvalid               = runtimeconfig.ErrLocaleInvalid
	ErrArchiveSuffixInvalid        = runtimeconfig.ErrArchiveSuffixInvalid
	ErrLoggingProviderRequired     = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown      = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid         = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid        = runtimeconfig.ErrLoggingFormatInvalid
	ErrLogFileLimitsInvalid        = runtimeconfig.ErrLogFileLimitsInvalid
)

type (
	Config              = runtimeconfig.Config
	CompilerConfig      = runtimeconfig.CompilerConfig
	ConsolidationConfig = runtimeconfig.ConsolidationConfig
	BundleConfig        = runtimeconfig.BundleConfig
	LoggingConfig       = runtimeconfig.LoggingConfig
	LogFileConfig       = runtimeconfig.LogFileConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file over the defaults and applies the
// SEED_USER_ID and QUIZZ_LOG_LEVEL environment overrides.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
