package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	root := writeTree(t, map[string]string{
		"jsmodules.yaml": `
dir: scripts
init-dir: init
modules_dir: mods
filter: tier == "module"
filter_lang: expr
log_level: debug
`,
	})

	cfg, err := LoadConfig(filepath.Join(root, "jsmodules.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{
		Dir:        filepath.Join(root, "scripts"),
		InitDir:    "init",
		ModulesDir: "mods",
		Filter:     `tier == "module"`,
		FilterLang: "expr",
		LogLevel:   "debug",
	}, cfg)
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	root := writeTree(t, map[string]string{"empty.yaml": ""})

	cfg, err := LoadConfig(filepath.Join(root, "empty.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "module_dir: mods\n", "unknown field"},
		{"duplicate spelling", "init-dir: a\ninit_dir: b\n", "given more than once"},
		{"bad filter language", "filter_lang: lua\n", `invalid filter_lang "lua"`},
		{"bad log level", "log_level: loud\n", `invalid log_level "loud"`},
		{"bad log format", "log_format: xml\n", `invalid log_format "xml"`},
		{"not yaml", "dir: [unclosed\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeTree(t, map[string]string{"c.yaml": tt.content})
			_, err := LoadConfig(filepath.Join(root, "c.yaml"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfigFlagPrecedence(t *testing.T) {
	root := writeTree(t, map[string]string{
		"c.yaml": "filter: tier == \"global\"\n",
	})
	config := filepath.Join(root, "c.yaml")

	stdout, _, err := execute(t, "plan", "--config", config)
	require.NoError(t, err)
	assert.Equal(t, "global\tglobals\tglobals.js\nglobal\tstructured_clone\tstructured_clone.js\n", stdout)

	stdout, _, err = execute(t, "plan", "--config", config, "--filter", `stem == "event"`)
	require.NoError(t, err)
	assert.Equal(t, "module\tjsmodule_event\tmodules/event.js\n", stdout)
}

func TestConfigErrorsAreCommandErrors(t *testing.T) {
	_, _, err := execute(t, "plan", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))
	assert.Contains(t, err.Error(), "invalid config")
}
