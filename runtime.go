package jsmodules

import (
	"sync/atomic"

	"github.com/dop251/goja"
)

// Runtime is the execution context a bootstrap populates. The module loader is
// optional; registration fails cleanly when it is absent.
type Runtime struct {
	vm           *goja.Runtime
	loader       *ModuleLoader
	bootstrapped atomic.Bool
}

// NewRuntime wraps vm without a module loader.
func NewRuntime(vm *goja.Runtime) *Runtime {
	if vm == nil {
		vm = goja.New()
	}
	return &Runtime{vm: vm}
}

// NewRuntimeWithLoader creates a fresh VM with a new ModuleLoader attached.
func NewRuntimeWithLoader(opts ...LoaderOption) *Runtime {
	rt := NewRuntime(goja.New())
	rt.AttachModuleLoader(NewModuleLoader(opts...))
	return rt
}

// VM returns the wrapped goja runtime.
func (rt *Runtime) VM() *goja.Runtime {
	if rt == nil {
		return nil
	}
	return rt.vm
}

// AttachModuleLoader installs loader and enables require() on the VM.
func (rt *Runtime) AttachModuleLoader(loader *ModuleLoader) {
	if rt == nil || loader == nil {
		return
	}
	rt.loader = loader
	loader.enable(rt.vm)
}

// ModuleLoader returns the attached loader, if any.
func (rt *Runtime) ModuleLoader() (*ModuleLoader, bool) {
	if rt == nil || rt.loader == nil {
		return nil, false
	}
	return rt.loader, true
}

// Require loads a registered module through the script-visible require(), so
// exceptions thrown by the module body come back as errors.
func (rt *Runtime) Require(specifier string) (goja.Value, error) {
	if _, ok := rt.ModuleLoader(); !ok {
		return nil, ErrNoModuleLoader
	}
	requireFn, ok := goja.AssertFunction(rt.vm.Get("require"))
	if !ok {
		return nil, ErrNoModuleLoader
	}
	return requireFn(goja.Undefined(), rt.vm.ToValue(specifier))
}

// markBootstrapped reports whether this call is the first bootstrap attempt.
func (rt *Runtime) markBootstrapped() bool {
	return rt.bootstrapped.CompareAndSwap(false, true)
}
