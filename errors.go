package jsmodules

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPath reports a file path that cannot be used as text.
	ErrInvalidPath = errors.New("jsmodules: failed to convert module path to string")
	// ErrMissingExtension reports a script path without the .js suffix.
	ErrMissingExtension = errors.New("jsmodules: script file path must have a .js suffix")
	// ErrInvalidEncoding reports file contents that are not valid UTF-8.
	ErrInvalidEncoding = errors.New("jsmodules: failed to convert file contents to UTF-8")
	// ErrNoModuleLoader reports a runtime without an attached module loader. The
	// global evaluation path also reports every engine failure with this error.
	ErrNoModuleLoader = errors.New("jsmodules: no module loader present, cannot register internal module")
	// ErrModuleExists reports a second registration under an existing specifier.
	ErrModuleExists = errors.New("jsmodules: module already registered")
	// ErrAlreadyBootstrapped reports a second bootstrap run against one runtime.
	ErrAlreadyBootstrapped = errors.New("jsmodules: runtime already bootstrapped")
	// ErrNilTree reports a bootstrap or plan without a script tree.
	ErrNilTree = errors.New("jsmodules: tree is nil")
)

// Op names the bootstrap step that failed.
type Op string

const (
	OpWalk     Op = "walk"
	OpDerive   Op = "derive"
	OpFilter   Op = "filter"
	OpRead     Op = "read"
	OpDecode   Op = "decode"
	OpCompile  Op = "compile"
	OpRegister Op = "register"
	OpEvaluate Op = "evaluate"
)

// BootstrapError captures the failing step alongside the unit it was working on.
// Cause holds the engine failure that the global evaluation path collapses into
// ErrNoModuleLoader; it is kept for diagnostics and is not unwrapped.
type BootstrapError struct {
	Op    Op
	Name  string
	Path  string
	Err   error
	Cause error
}

func (e *BootstrapError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("jsmodules: %s %s: %v", e.Op, describeUnit(e.Name, e.Path), e.Err)
}

func (e *BootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeUnit(name, path string) string {
	switch {
	case name != "" && path != "":
		return fmt.Sprintf("%q (%s)", name, path)
	case name != "":
		return fmt.Sprintf("%q", name)
	case path != "":
		return path
	default:
		return "<unknown>"
	}
}

func wrapUnitError(op Op, unit Unit, err error) error {
	if err == nil {
		return nil
	}

	var bootErr *BootstrapError
	if errors.As(err, &bootErr) {
		if bootErr.Name == "" {
			bootErr.Name = unit.Name
		}
		if bootErr.Path == "" {
			bootErr.Path = unit.Path
		}
		return bootErr
	}

	return &BootstrapError{
		Op:   op,
		Name: unit.Name,
		Path: unit.Path,
		Err:  err,
	}
}

// bootstrapCause returns the engine failure hidden behind a collapsed error.
func bootstrapCause(err error) error {
	var bootErr *BootstrapError
	if errors.As(err, &bootErr) {
		return bootErr.Cause
	}
	return nil
}
