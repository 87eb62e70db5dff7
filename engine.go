package jsmodules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

// Engine compiles and runs script sources.
type Engine interface {
	// Compile produces a module record tagged with name.
	Compile(name, source string) (*Module, error)
	// CompileAndEvaluate runs source as a top-level script on rt.
	CompileAndEvaluate(rt *Runtime, name, source string) (goja.Value, error)
}

// Module is a compiled nested-tier script. Once registered it is owned by the
// ModuleLoader.
type Module struct {
	specifier string
	program   *goja.Program
}

// Specifier returns the name the module was compiled under.
func (m *Module) Specifier() string {
	if m == nil {
		return ""
	}
	return m.specifier
}

// NewModule wraps an already compiled CommonJS function program. Engines other
// than the goja engine use it to build records.
func NewModule(specifier string, program *goja.Program) *Module {
	return &Module{specifier: specifier, program: program}
}

// instantiate runs the compiled wrapper against a require-provided module
// object. Panics carry JS exceptions back through goja. require caches the
// module object before the body runs, so a failed body leaves module.exports
// rethrowing the recorded error on every later import.
func (m *Module) instantiate(vm *goja.Runtime, module *goja.Object) {
	value, err := vm.RunProgram(m.program)
	if err != nil {
		panic(err)
	}
	call, ok := goja.AssertFunction(value)
	if !ok {
		panic(vm.NewTypeError("jsmodules: module %q did not compile to a function", m.specifier))
	}
	exports := module.Get("exports")
	if _, err := call(exports, exports, vm.Get("require"), module); err != nil {
		thrown := thrownValue(vm, err)
		poison(vm, module, thrown)
		panic(thrown)
	}
}

func thrownValue(vm *goja.Runtime, err error) goja.Value {
	var exception *goja.Exception
	if errors.As(err, &exception) {
		return exception.Value()
	}
	return vm.NewGoError(err)
}

// poison swaps module.exports for an accessor that throws thrown. A body that
// made exports non-configurable keeps its partial exports.
func poison(vm *goja.Runtime, module *goja.Object, thrown goja.Value) {
	getter := vm.ToValue(func(goja.FunctionCall) goja.Value {
		panic(thrown)
	})
	setter := vm.ToValue(func(goja.FunctionCall) goja.Value {
		return goja.Undefined()
	})
	_ = module.DefineAccessorProperty("exports", getter, setter, goja.FLAG_FALSE, goja.FLAG_TRUE)
}

type gojaEngine struct{}

// NewGojaEngine returns the default Engine backed by goja.
func NewGojaEngine() Engine {
	return gojaEngine{}
}

func (gojaEngine) Compile(name, source string) (*Module, error) {
	program, err := goja.Compile(name, wrapModule(source), false)
	if err != nil {
		return nil, err
	}
	return NewModule(name, program), nil
}

func (gojaEngine) CompileAndEvaluate(rt *Runtime, name, source string) (goja.Value, error) {
	if rt == nil || rt.VM() == nil {
		return nil, fmt.Errorf("jsmodules: runtime is nil")
	}
	program, err := goja.Compile(name, stripHashbang(source), false)
	if err != nil {
		return nil, err
	}
	return rt.VM().RunProgram(program)
}

// wrapModule turns source into a CommonJS function expression. The closing
// newline keeps a trailing line comment from swallowing the brace.
func wrapModule(source string) string {
	return "(function(exports, require, module) {" + stripHashbang(source) + "\n})"
}

// stripHashbang blanks a leading "#!" line, keeping its newline so line
// numbers in errors still match the file.
func stripHashbang(source string) string {
	if !strings.HasPrefix(source, "#!") {
		return source
	}
	if i := strings.IndexAny(source, "\r\n"); i >= 0 {
		return source[i:]
	}
	return ""
}
