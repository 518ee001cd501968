package cliconfig

import (
	"fmt"
	"strings"
)

// DefaultIndent is the default indentation for printed documents.
const DefaultIndent = "  "

// DefaultLogLevel is the default log level. The CLI only reports problems
// unless asked for more.
const DefaultLogLevel = "warn"

// DefaultLogFormat is the default log output format.
const DefaultLogFormat = "text"

// DefaultRoot is the root path used when a document has no named definition.
const DefaultRoot = "Document"

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Indent:    DefaultIndent,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}
	for _, key := range Keys {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}

// Validate checks that the configured values are usable.
func (c *CLIConfig) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logLevel %q is not one of debug, info, warn, error", c.LogLevel)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("logFormat %q is not one of text, json", c.LogFormat)
	}
	if strings.TrimLeft(c.Indent, " \t") != "" {
		return fmt.Errorf("indent %q must contain only spaces and tabs", c.Indent)
	}
	if strings.ContainsAny(c.Root, " \t\n") {
		return fmt.Errorf("root %q must not contain whitespace", c.Root)
	}
	return nil
}
