package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		caption  string
		fileName string
		src      string
		expected func() *Config
	}{
		{
			caption:  "YAML overrides only the given fields",
			fileName: "jqlex.yaml",
			src: `
locale: de
repl:
  prompt: "> "
`,
			expected: func() *Config {
				c := Default()
				c.Locale = "de"
				c.REPL.Prompt = "> "
				return c
			},
		},
		{
			caption:  "a file without a known extension is read as YAML",
			fileName: "jqlexrc",
			src: `
format: json
logging:
  level: debug
`,
			expected: func() *Config {
				c := Default()
				c.Format = FormatJSON
				c.Logging.Level = "debug"
				return c
			},
		},
		{
			caption:  "JSON is selected by the extension",
			fileName: "jqlex.json",
			src:      `{"locale": "de-CH", "repl": {"history_limit": 10}}`,
			expected: func() *Config {
				c := Default()
				c.Locale = "de-CH"
				c.REPL.HistoryLimit = 10
				return c
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			path := filepath.Join(dir, tt.fileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.src), 0644))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected(), cfg)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Error(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		caption  string
		fileName string
		src      string
		cause    error
	}{
		{
			caption:  "malformed YAML",
			fileName: "broken.yaml",
			src:      "locale: [",
		},
		{
			caption:  "malformed JSON",
			fileName: "broken.json",
			src:      `{"locale": `,
		},
		{
			caption:  "unknown format",
			fileName: "format.yaml",
			src:      "format: xml",
			cause:    errUnknownFormat,
		},
		{
			caption:  "unknown logging level",
			fileName: "level.yaml",
			src:      "logging:\n  level: loud",
			cause:    errUnknownLevel,
		},
		{
			caption:  "negative history limit",
			fileName: "history.yaml",
			src:      "repl:\n  history_limit: -1",
			cause:    errNegativeHistory,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			path := filepath.Join(dir, tt.fileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.src), 0644))

			cfg, err := Load(path)
			assert.Nil(t, cfg)
			require.Error(t, err)
			if tt.cause != nil {
				assert.True(t, errors.Is(err, tt.cause), "unexpected error: %v", err)
			}
		})
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	orig := Default()
	orig.Locale = "de"
	orig.REPL.HistoryFile = "/tmp/jqlex_history"

	for _, name := range []string{"nested/jqlex.yaml", "nested/jqlex.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(orig, path))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, orig, cfg)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "jqlex.yaml"), ExpandHome("~/jqlex.yaml"))
	assert.Equal(t, "/etc/jqlex.yaml", ExpandHome("/etc/jqlex.yaml"))
	assert.Equal(t, "~user/jqlex.yaml", ExpandHome("~user/jqlex.yaml"))
}
