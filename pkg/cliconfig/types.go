// Package cliconfig provides configuration types and loading for the magiql CLI.
package cliconfig

// CLIConfig represents the complete configuration for the magiql CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.magiqlrc.yaml in current directory)
// 4. Global config file (~/.config/magiql/config.yaml)
// 5. Default values (lowest priority)
type CLIConfig struct {
	// Schema is the SDL file used by schema-aware commands.
	Schema string `yaml:"schema,omitempty" json:"schema,omitempty"`

	// Root is the path documents are stored under. Empty means the name of the
	// document's first definition.
	Root string `yaml:"root,omitempty" json:"root,omitempty"`

	// Indent is the indentation used when printing documents.
	Indent string `yaml:"indent,omitempty" json:"indent,omitempty"`

	// Logging settings
	LogLevel  string `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`
	LogFormat string `yaml:"logFormat,omitempty" json:"logFormat,omitempty"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)

// Keys of the configurable values, as used in files and in Sources.
const (
	KeySchema    = "schema"
	KeyRoot      = "root"
	KeyIndent    = "indent"
	KeyLogLevel  = "logLevel"
	KeyLogFormat = "logFormat"
)

// Keys lists every configurable key in display order.
var Keys = []string{KeySchema, KeyRoot, KeyIndent, KeyLogLevel, KeyLogFormat}

// Get returns the value of key, or "" for an unknown key.
func (c *CLIConfig) Get(key string) string {
	switch key {
	case KeySchema:
		return c.Schema
	case KeyRoot:
		return c.Root
	case KeyIndent:
		return c.Indent
	case KeyLogLevel:
		return c.LogLevel
	case KeyLogFormat:
		return c.LogFormat
	}
	return ""
}

// Source returns where the value of key came from.
func (c *CLIConfig) Source(key string) string {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}
