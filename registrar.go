package jsmodules

import (
	"fmt"
	"io/fs"
	"unicode/utf8"
)

type registrar struct {
	rt     *Runtime
	engine Engine
	fsys   fs.FS
}

func (r *registrar) source(unit Unit) (string, error) {
	data, err := fs.ReadFile(r.fsys, unit.Path)
	if err != nil {
		return "", wrapUnitError(OpRead, unit, err)
	}
	if !utf8.Valid(data) {
		return "", wrapUnitError(OpDecode, unit, ErrInvalidEncoding)
	}
	return string(data), nil
}

// compileAndRegister makes a nested-tier unit importable. Compilation happens
// before the loader is consulted, so syntax errors surface even without one.
func (r *registrar) compileAndRegister(unit Unit) error {
	source, err := r.source(unit)
	if err != nil {
		return err
	}

	module, err := r.engine.Compile(unit.Name, source)
	if err != nil {
		return wrapUnitError(OpCompile, unit, fmt.Errorf("module compilation failed: %w", err))
	}
	if module == nil {
		return wrapUnitError(OpCompile, unit, fmt.Errorf("module compilation failed: engine returned no module"))
	}

	loader, ok := r.rt.ModuleLoader()
	if !ok {
		return wrapUnitError(OpRegister, unit, ErrNoModuleLoader)
	}
	if err := loader.Register(module, NewModuleRequest(unit.Name)); err != nil {
		return wrapUnitError(OpRegister, unit, err)
	}
	return nil
}

// compileAndEvaluateGlobal runs a global-tier unit once. Every engine failure
// is reported as ErrNoModuleLoader; the engine error is kept as Cause.
func (r *registrar) compileAndEvaluateGlobal(unit Unit) error {
	source, err := r.source(unit)
	if err != nil {
		return err
	}

	if _, err := r.engine.CompileAndEvaluate(r.rt, unit.Name, source); err != nil {
		return &BootstrapError{
			Op:    OpEvaluate,
			Name:  unit.Name,
			Path:  unit.Path,
			Err:   ErrNoModuleLoader,
			Cause: err,
		}
	}
	return nil
}
