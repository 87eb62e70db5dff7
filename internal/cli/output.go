package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	jsmodules "github.com/goliatone/go-jsmodules"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Bootstrap or script failure
	ExitCommandError = 2 // Command error (bad flags, unreadable config, missing files)
)

// ExitError pairs a failed step with the process exit code it maps to.
type ExitError struct {
	Code int
	Op   string // the step that failed, e.g. "read script"
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// commandError reports misuse of the CLI: bad flags, config or paths.
func commandError(op string, err error) *ExitError {
	return &ExitError{Code: ExitCommandError, Op: op, Err: err}
}

func commandErrorf(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitCommandError, Op: fmt.Sprintf(format, args...)}
}

// failure reports a bootstrap, plan or script that ran and failed.
func failure(op string, err error) *ExitError {
	return &ExitError{Code: ExitFailure, Op: op, Err: err}
}

// ExitCode maps err to a process exit code. Errors that are not an ExitError
// (cobra usage errors among them) count as ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// writeUnits renders a bootstrap plan in the requested format.
func writeUnits(w io.Writer, format string, units []jsmodules.Unit) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if units == nil {
			units = []jsmodules.Unit{}
		}
		return enc.Encode(units)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(units); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, unit := range units {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", unit.Tier, unit.Name, unit.Path); err != nil {
				return err
			}
		}
		return nil
	}
}

// writeValue renders a script's completion value.
func writeValue(w io.Writer, format string, value any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		return enc.Encode(map[string]any{"result": value})
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(map[string]any{"result": value}); err != nil {
			return err
		}
		return enc.Close()
	default:
		if value == nil {
			return nil
		}
		_, err := fmt.Fprintln(w, value)
		return err
	}
}
