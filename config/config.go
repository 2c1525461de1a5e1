package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	errUnknownFormat   = errors.New("unknown output format")
	errUnknownLevel    = errors.New("unknown logging level")
	errNegativeHistory = errors.New("history limit must not be negative")
)

// Config is the configuration of the jqlex command.
type Config struct {
	// Locale selects the language of rendered diagnostics, e.g. "en" or "de".
	Locale  string        `json:"locale" yaml:"locale"`
	Format  string        `json:"format" yaml:"format"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	REPL    REPLConfig    `json:"repl" yaml:"repl"`
}

type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
}

type REPLConfig struct {
	Prompt       string `json:"prompt" yaml:"prompt"`
	HistoryFile  string `json:"history_file" yaml:"history_file"`
	HistoryLimit int    `json:"history_limit" yaml:"history_limit"`
}

func Default() *Config {
	return &Config{
		Locale: "en",
		Format: FormatText,
		Logging: LoggingConfig{
			Level: "warn",
		},
		REPL: REPLConfig{
			Prompt:       "jql> ",
			HistoryFile:  "",
			HistoryLimit: 500,
		},
	}
}

// Load reads a configuration file on top of the defaults. An empty path or a missing file yields the defaults.
// A file with the .json extension is read as JSON and any other file as YAML.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	path = ExpandHome(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "read config")
	}

	if isJSON(path) {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse JSON config %v", path)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse YAML config %v", path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %v", path)
	}
	return cfg, nil
}

// Save writes a configuration in the format its extension selects, creating the directory if needed.
func Save(cfg *Config, path string) error {
	path = ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	var data []byte
	var err error
	if isJSON(path) {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return errors.Wrapf(errUnknownFormat, "%q", c.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Wrapf(errUnknownLevel, "%q", c.Logging.Level)
	}
	if c.REPL.HistoryLimit < 0 {
		return errNegativeHistory
	}
	return nil
}

// ExpandHome replaces a leading ~/ with the home directory of the current user.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func isJSON(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}
