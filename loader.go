package jsmodules

import (
	"fmt"
	"sync"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
)

// ModuleRequest keys a registration.
type ModuleRequest struct {
	Specifier string
}

// NewModuleRequest builds a request for specifier.
func NewModuleRequest(specifier string) ModuleRequest {
	return ModuleRequest{Specifier: specifier}
}

// ModuleLoader maps specifiers to compiled modules and serves them to
// require(). It is append-only: a specifier registered once cannot be
// replaced or removed.
type ModuleLoader struct {
	mu       sync.RWMutex
	modules  map[string]*Module
	order    []string
	registry *require.Registry
}

type loaderConfig struct {
	printer      console.Printer
	sourceLoader require.SourceLoader
}

// LoaderOption configures a ModuleLoader.
type LoaderOption func(*loaderConfig)

// WithConsolePrinter routes console.* output of scripts to printer.
func WithConsolePrinter(printer console.Printer) LoaderOption {
	return func(cfg *loaderConfig) {
		cfg.printer = printer
	}
}

// WithSourceLoader lets require() resolve file paths through loader. Without
// it every non-internal path reports that the file does not exist.
func WithSourceLoader(loader require.SourceLoader) LoaderOption {
	return func(cfg *loaderConfig) {
		cfg.sourceLoader = loader
	}
}

// NewModuleLoader constructs an empty loader.
func NewModuleLoader(opts ...LoaderOption) *ModuleLoader {
	cfg := loaderConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.sourceLoader == nil {
		cfg.sourceLoader = noSourceLoader
	}

	registry := require.NewRegistry(require.WithLoader(cfg.sourceLoader))
	if cfg.printer != nil {
		registry.RegisterNativeModule(console.ModuleName, console.RequireWithPrinter(cfg.printer))
	} else {
		registry.RegisterNativeModule(console.ModuleName, console.Require)
	}

	return &ModuleLoader{
		modules:  make(map[string]*Module),
		registry: registry,
	}
}

func noSourceLoader(string) ([]byte, error) {
	return nil, require.ModuleFileDoesNotExistError
}

// Register stores module under request.Specifier. A duplicate specifier is
// rejected with ErrModuleExists and the first registration stays in place.
func (l *ModuleLoader) Register(module *Module, request ModuleRequest) error {
	if l == nil {
		return ErrNoModuleLoader
	}
	if module == nil || module.program == nil {
		return fmt.Errorf("jsmodules: cannot register an uncompiled module")
	}
	specifier := request.Specifier
	if specifier == "" {
		return fmt.Errorf("jsmodules: module request has no specifier")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.modules[specifier]; exists {
		return fmt.Errorf("%w: %q", ErrModuleExists, specifier)
	}
	l.modules[specifier] = module
	l.order = append(l.order, specifier)
	l.registry.RegisterNativeModule(specifier, module.instantiate)
	return nil
}

// Lookup returns the module registered under specifier.
func (l *ModuleLoader) Lookup(specifier string) (*Module, bool) {
	if l == nil {
		return nil, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	module, ok := l.modules[specifier]
	return module, ok
}

// Specifiers returns registered specifiers in registration order.
func (l *ModuleLoader) Specifiers() []string {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.order...)
}

// Len reports how many modules are registered.
func (l *ModuleLoader) Len() int {
	if l == nil {
		return 0
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}

func (l *ModuleLoader) enable(vm *goja.Runtime) {
	l.registry.Enable(vm)
	console.Enable(vm)
}
