package cliconfig

import "os"

// Environment variable names
const (
	EnvSchema    = "MAGIQL_SCHEMA"
	EnvRoot      = "MAGIQL_ROOT"
	EnvIndent    = "MAGIQL_INDENT"
	EnvLogLevel  = "MAGIQL_LOG_LEVEL"
	EnvLogFormat = "MAGIQL_LOG_FORMAT"
	EnvConfig    = "MAGIQL_CONFIG"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	set := func(env, key string, dst *string) {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*dst = v
			cfg.Sources[key] = SourceEnv
		}
	}
	set(EnvSchema, KeySchema, &cfg.Schema)
	set(EnvRoot, KeyRoot, &cfg.Root)
	set(EnvIndent, KeyIndent, &cfg.Indent)
	set(EnvLogLevel, KeyLogLevel, &cfg.LogLevel)
	set(EnvLogFormat, KeyLogFormat, &cfg.LogFormat)
}
