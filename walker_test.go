package jsmodules

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"
	"testing/fstest"
)

func file(src string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(src)}
}

func TestPlanOrdersModulesThenGlobalsThenSubdirectories(t *testing.T) {
	tree := MustTree(fstest.MapFS{
		"globals.js":             file(""),
		"timers.js":              file(""),
		"README.md":              file(""),
		"modules/event.js":       file(""),
		"modules/node/assert.js": file(""),
		"modules/node/buffer.js": file(""),
		"modules/zeta.js":        file(""),
	})

	units, err := Plan(tree, nil)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	want := []Unit{
		{Tier: TierModule, Name: "jsmodule_event", Path: "modules/event.js"},
		{Tier: TierModule, Name: "jsmodule_zeta", Path: "modules/zeta.js"},
		{Tier: TierGlobal, Name: "globals", Path: "globals.js"},
		{Tier: TierGlobal, Name: "timers", Path: "timers.js"},
		{Tier: TierModule, Name: "jsmodule_assert", Path: "modules/node/assert.js"},
		{Tier: TierModule, Name: "jsmodule_buffer", Path: "modules/node/buffer.js"},
	}
	if !reflect.DeepEqual(want, units) {
		t.Fatalf("unexpected plan\nwant: %#v\n got: %#v", want, units)
	}
}

func TestPlanSkipsNonScripts(t *testing.T) {
	tree := MustTree(fstest.MapFS{
		"notes.txt":                file(""),
		".js":                      file(""),
		"modules/types.d.ts":       file(""),
		"modules/.js":              file(""),
		"modules/data.json":        file(""),
		"modules/dir.js/inner.js":  file(""),
		"modules/dir.js/inner.mjs": file(""),
	})

	units, err := Plan(tree, nil)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	want := []Unit{{Tier: TierModule, Name: "jsmodule_inner", Path: "modules/dir.js/inner.js"}}
	if !reflect.DeepEqual(want, units) {
		t.Fatalf("unexpected plan\nwant: %#v\n got: %#v", want, units)
	}
}

func TestPlanNeverEvaluatesDeepInitFiles(t *testing.T) {
	tree := MustTree(fstest.MapFS{
		"timers.js":          file(""),
		"node/buffer.js":     file(""),
		"node/deep/inner.js": file(""),
		"modules/keep.js":    file(""),
	})

	units, err := Plan(tree, nil)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for _, unit := range units {
		if unit.Tier == TierGlobal && unit.Path != "timers.js" {
			t.Fatalf("unexpected global unit %+v", unit)
		}
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %#v", units)
	}
}

func TestPlanCustomDirectories(t *testing.T) {
	tree, err := NewTree(fstest.MapFS{
		"runtime/init/setup.js":       file(""),
		"runtime/init/lib/helper.js":  file(""),
		"runtime/internal/stream.js":  file(""),
		"runtime/internal/web/url.js": file(""),
	}, WithInitDir("runtime/init"), WithModulesDir("runtime/internal"))
	if err != nil {
		t.Fatalf("tree: %v", err)
	}

	units, err := Plan(tree, nil)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	want := []Unit{
		{Tier: TierModule, Name: "jsmodule_stream", Path: "runtime/internal/stream.js"},
		{Tier: TierGlobal, Name: "setup", Path: "runtime/init/setup.js"},
		{Tier: TierModule, Name: "jsmodule_url", Path: "runtime/internal/web/url.js"},
	}
	if !reflect.DeepEqual(want, units) {
		t.Fatalf("unexpected plan\nwant: %#v\n got: %#v", want, units)
	}
}

func TestPlanAppliesFilter(t *testing.T) {
	tree := MustTree(fstest.MapFS{
		"globals.js":             file(""),
		"modules/event.js":       file(""),
		"modules/node/buffer.js": file(""),
	})
	onlyGlobals := FileFilterFunc(func(c Candidate) (bool, error) {
		return c.Tier == TierGlobal, nil
	})

	units, err := Plan(tree, onlyGlobals)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(units) != 1 || units[0].Name != "globals" {
		t.Fatalf("expected only globals, got %#v", units)
	}
}

func TestPlanFilterErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	tree := MustTree(fstest.MapFS{"modules/event.js": file("")})
	_, err := Plan(tree, FileFilterFunc(func(Candidate) (bool, error) { return false, boom }))
	if !errors.Is(err, boom) {
		t.Fatalf("expected filter error, got %v", err)
	}
	var bootErr *BootstrapError
	if !errors.As(err, &bootErr) || bootErr.Op != OpFilter || bootErr.Path != "modules/event.js" {
		t.Fatalf("expected filter BootstrapError, got %#v", err)
	}
}

func TestPlanMissingModulesDir(t *testing.T) {
	tree := MustTree(fstest.MapFS{"globals.js": file("")})
	_, err := Plan(tree, nil)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestNewTreeValidatesDirectories(t *testing.T) {
	if _, err := NewTree(fstest.MapFS{}, WithModulesDir("/abs")); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
	if _, err := NewTree(nil); err == nil {
		t.Fatalf("expected error for nil filesystem")
	}
}
