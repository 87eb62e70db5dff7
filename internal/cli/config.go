package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-jsmodules/internal/hydrate"
)

// Config is the optional YAML file read through --config. Flags given on the
// command line take precedence over its values.
type Config struct {
	Dir        string `json:"dir" yaml:"dir"`
	InitDir    string `json:"init_dir" yaml:"init_dir"`
	ModulesDir string `json:"modules_dir" yaml:"modules_dir"`
	Filter     string `json:"filter" yaml:"filter"`
	FilterLang string `json:"filter_lang" yaml:"filter_lang"`
	LogLevel   string `json:"log_level" yaml:"log_level"`
	LogFormat  string `json:"log_format" yaml:"log_format"`
}

// ValidFilterLangs lists the supported filter expression languages.
var ValidFilterLangs = []string{"expr", "cel"}

// ValidLogLevels lists the accepted --log-level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the accepted --log-format values.
var ValidLogFormats = []string{"text", "json"}

// LoadConfig reads and validates a YAML config file. A relative dir is
// resolved against the directory holding the file.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	decoder := hydrate.NewDecoder[Config](
		hydrate.WithPreHook[Config](normalizeKeys),
		hydrate.WithDisallowUnknownFields[Config](),
		hydrate.WithPostHook[Config](resolveDir),
		hydrate.WithPostHook[Config](validateConfig),
	)
	return decoder.Decode(hydrate.Context{Source: path, Format: "yaml"}, doc)
}

// normalizeKeys accepts flag-style keys ("init-dir") next to init_dir.
func normalizeKeys(_ hydrate.Context, doc map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		normalized := strings.ReplaceAll(strings.ToLower(key), "-", "_")
		if _, dup := out[normalized]; dup {
			return nil, fmt.Errorf("key %q given more than once", normalized)
		}
		out[normalized] = value
	}
	return out, nil
}

func resolveDir(ctx hydrate.Context, cfg *Config) error {
	if cfg.Dir == "" || filepath.IsAbs(cfg.Dir) || ctx.Source == "" {
		return nil
	}
	cfg.Dir = filepath.Join(filepath.Dir(ctx.Source), cfg.Dir)
	return nil
}

func validateConfig(_ hydrate.Context, cfg *Config) error {
	if cfg.FilterLang != "" && !contains(ValidFilterLangs, cfg.FilterLang) {
		return fmt.Errorf("invalid filter_lang %q: must be one of %v", cfg.FilterLang, ValidFilterLangs)
	}
	if cfg.LogLevel != "" && !contains(ValidLogLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log_level %q: must be one of %v", cfg.LogLevel, ValidLogLevels)
	}
	if cfg.LogFormat != "" && !contains(ValidLogFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log_format %q: must be one of %v", cfg.LogFormat, ValidLogFormats)
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
