package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
	"github.com/spf13/cobra"

	jsmodules "github.com/goliatone/go-jsmodules"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ConsoleToLog bool // route console.* through the logger instead of stdout/stderr
	FileRequire  bool // let require() read files from disk
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Bootstrap a runtime and execute a script",
		Long: `Bootstrap a fresh runtime from the selected tree, then execute the given
script file in it. Internal modules are available through require().

The script's completion value is printed unless it is undefined or null.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.ConsoleToLog, "console-log", false, "send console output to the logger")
	cmd.Flags().BoolVar(&opts.FileRequire, "file-require", false, "allow require() to load files from disk")

	return cmd
}

func runScript(opts *RunOptions, scriptPath string, cmd *cobra.Command) error {
	source, err := os.ReadFile(scriptPath)
	if err != nil {
		return commandError("read script", err)
	}
	tree, err := opts.tree()
	if err != nil {
		return err
	}
	filter, err := opts.filter()
	if err != nil {
		return err
	}

	logger := opts.logger(cmd.ErrOrStderr())

	var printer console.Printer = streamPrinter{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
	if opts.ConsoleToLog {
		printer = jsmodules.NewSlogPrinter(logger)
	}
	loaderOpts := []jsmodules.LoaderOption{jsmodules.WithConsolePrinter(printer)}
	if opts.FileRequire {
		loaderOpts = append(loaderOpts, jsmodules.WithSourceLoader(require.DefaultSourceLoader))
	}
	rt := jsmodules.NewRuntimeWithLoader(loaderOpts...)

	boot := jsmodules.NewBootstrapper(
		jsmodules.WithLogger(jsmodules.NewSlogLogger(logger)),
		jsmodules.WithFilter(filter),
	)
	if err := boot.Load(cmd.Context(), rt, tree); err != nil {
		return failure("bootstrap failed", err)
	}

	value, err := rt.VM().RunScript(scriptPath, string(source))
	if err != nil {
		return failure("script failed", err)
	}
	return writeValue(cmd.OutOrStdout(), opts.Format, completion(value, opts.Format))
}

func completion(value goja.Value, format string) any {
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return nil
	}
	if format == "text" {
		return value.String()
	}
	return value.Export()
}

// streamPrinter writes console output straight to the command's streams.
type streamPrinter struct {
	out io.Writer
	err io.Writer
}

func (p streamPrinter) Log(msg string)   { fmt.Fprintln(p.out, msg) }
func (p streamPrinter) Warn(msg string)  { fmt.Fprintln(p.err, msg) }
func (p streamPrinter) Error(msg string) { fmt.Fprintln(p.err, msg) }
