package cliconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for global config
	GlobalConfigDir = "magiql"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".magiqlrc.yaml", ".magiqlrc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindLocalConfig searches for .magiqlrc.yaml or .magiqlrc.yml in the current directory.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return firstExisting(cwd, LocalConfigFileNames), nil
}

// FindGlobalConfig returns the path to the global config file, honoring
// XDG_CONFIG_HOME. Returns empty string if not found.
func FindGlobalConfig() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		//nolint:nilerr // no config dir simply means no global config
		return "", nil
	}
	return firstExisting(filepath.Join(configDir, GlobalConfigDir), GlobalConfigFileNames), nil
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile loads a CLIConfig from a YAML file. Unknown keys are
// rejected so that typos do not go unnoticed.
func LoadConfigFile(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg CLIConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, newConfigError(path, err)
	}

	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Line    int
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", e.Path, e.Line, e.Message)
	}
	return e.Path + ": " + e.Message
}

var yamlLine = regexp.MustCompile(`line (\d+): `)

// newConfigError pulls the line number out of yaml.v3's messages, which look
// like "yaml: line 3: mapping values are not allowed in this context".
func newConfigError(path string, err error) *ConfigError {
	msg := err.Error()
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		msg = typeErr.Errors[0]
	}

	ce := &ConfigError{Path: path, Message: msg}
	if m := yamlLine.FindStringSubmatchIndex(msg); m != nil {
		ce.Line, _ = strconv.Atoi(msg[m[2]:m[3]])
		ce.Message = msg[m[1]:]
	}
	return ce
}

// LoadAll loads configuration from all sources and merges them.
// Precedence: env > local config > global config > defaults. Flags are
// merged on top by the caller. A config file named by MAGIQL_CONFIG replaces
// the local config file.
func LoadAll() (*CLIConfig, error) {
	cfg := NewDefault()

	globalPath, err := FindGlobalConfig()
	if err != nil {
		return nil, err
	}
	if err := mergeFile(cfg, globalPath, SourceGlobal); err != nil {
		return nil, err
	}

	localPath := os.Getenv(EnvConfig)
	if localPath == "" {
		if localPath, err = FindLocalConfig(); err != nil {
			return nil, err
		}
	}
	if err := mergeFile(cfg, localPath, SourceLocal); err != nil {
		return nil, err
	}

	LoadEnvConfig(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeFile(cfg *CLIConfig, path, source string) error {
	if path == "" {
		return nil
	}
	fileCfg, err := LoadConfigFile(path)
	if err != nil {
		return err
	}
	MergeConfig(cfg, fileCfg, source)
	return nil
}
