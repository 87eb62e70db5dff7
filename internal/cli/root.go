package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	jsmodules "github.com/goliatone/go-jsmodules"
	"github.com/goliatone/go-jsmodules/builtins"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format     string // "text" | "json" | "yaml"
	LogLevel   string
	LogFormat  string
	ConfigPath string

	Dir        string // script tree on disk; empty selects the built-in tree
	InitDir    string
	ModulesDir string
	Filter     string
	FilterLang string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the jsmodules CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "jsmodules",
		Short: "Bootstrap JavaScript runtimes from internal module trees",
		Long: `Inspect and execute internal JavaScript module trees.

Scripts under the modules directory are registered as "jsmodule_<stem>"
modules. Scripts directly inside the init directory are evaluated as
global setup code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.prepare(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	flags.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	flags.StringVar(&opts.LogFormat, "log-format", "text", "log format (text|json)")
	flags.StringVar(&opts.ConfigPath, "config", "", "YAML config file")
	flags.StringVar(&opts.Dir, "dir", "", "script tree directory (default: built-in tree)")
	flags.StringVar(&opts.InitDir, "init-dir", ".", "init directory, relative to the tree root")
	flags.StringVar(&opts.ModulesDir, "modules-dir", "modules", "modules directory, relative to the tree root")
	flags.StringVar(&opts.Filter, "filter", "", "expression selecting which scripts take part")
	flags.StringVar(&opts.FilterLang, "filter-lang", "expr", "filter language (expr|cel)")

	cmd.AddCommand(NewPlanCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))

	return cmd
}

// prepare merges the config file under explicit flags and validates the result.
func (o *RootOptions) prepare(cmd *cobra.Command) error {
	if o.ConfigPath != "" {
		cfg, err := LoadConfig(o.ConfigPath)
		if err != nil {
			return commandError("invalid config", err)
		}
		o.applyConfig(cfg, func(name string) bool { return cmd.Flags().Changed(name) })
	}

	if !contains(ValidFormats, o.Format) {
		return commandErrorf("invalid format %q: must be one of %v", o.Format, ValidFormats)
	}
	if !contains(ValidFilterLangs, o.FilterLang) {
		return commandErrorf("invalid filter language %q: must be one of %v", o.FilterLang, ValidFilterLangs)
	}
	if !contains(ValidLogLevels, o.LogLevel) {
		return commandErrorf("invalid log level %q: must be one of %v", o.LogLevel, ValidLogLevels)
	}
	if !contains(ValidLogFormats, o.LogFormat) {
		return commandErrorf("invalid log format %q: must be one of %v", o.LogFormat, ValidLogFormats)
	}
	return nil
}

func (o *RootOptions) applyConfig(cfg Config, changed func(string) bool) {
	set := func(flag string, dst *string, value string) {
		if value != "" && !changed(flag) {
			*dst = value
		}
	}
	set("dir", &o.Dir, cfg.Dir)
	set("init-dir", &o.InitDir, cfg.InitDir)
	set("modules-dir", &o.ModulesDir, cfg.ModulesDir)
	set("filter", &o.Filter, cfg.Filter)
	set("filter-lang", &o.FilterLang, cfg.FilterLang)
	set("log-level", &o.LogLevel, cfg.LogLevel)
	set("log-format", &o.LogFormat, cfg.LogFormat)
}

// tree opens the selected script tree.
func (o *RootOptions) tree() (*jsmodules.Tree, error) {
	fsys := builtins.FS
	if o.Dir != "" {
		info, err := os.Stat(o.Dir)
		if err != nil {
			return nil, commandError("open script tree", err)
		}
		if !info.IsDir() {
			return nil, commandErrorf("script tree %q is not a directory", o.Dir)
		}
		fsys = os.DirFS(o.Dir)
	}
	tree, err := jsmodules.NewTree(fsys,
		jsmodules.WithInitDir(o.InitDir),
		jsmodules.WithModulesDir(o.ModulesDir),
	)
	if err != nil {
		return nil, commandError("invalid tree layout", err)
	}
	return tree, nil
}

// filter compiles --filter, returning nil when none was given.
func (o *RootOptions) filter() (jsmodules.FileFilter, error) {
	if o.Filter == "" {
		return nil, nil
	}
	var (
		filter jsmodules.FileFilter
		err    error
	)
	switch o.FilterLang {
	case "cel":
		filter, err = jsmodules.NewCELFilter(o.Filter)
	default:
		filter, err = jsmodules.NewExprFilter(o.Filter)
	}
	if err != nil {
		return nil, commandError("invalid filter", err)
	}
	return filter, nil
}

func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	return newLogger(o, w)
}
