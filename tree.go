package jsmodules

import (
	"fmt"
	"io/fs"
)

const (
	// DefaultInitDir is the initializer directory used when none is configured.
	DefaultInitDir = "."
	// DefaultModulesDir is the modules directory used when none is configured.
	DefaultModulesDir = "modules"
)

// Tree is a read-only script tree, usually backed by an embed.FS.
type Tree struct {
	fsys       fs.FS
	initDir    string
	modulesDir string
}

// TreeOption configures a Tree.
type TreeOption func(*Tree)

// WithInitDir sets the directory whose direct .js files are evaluated eagerly.
func WithInitDir(dir string) TreeOption {
	return func(t *Tree) {
		t.initDir = dir
	}
}

// WithModulesDir sets the directory scanned recursively for importable modules.
func WithModulesDir(dir string) TreeOption {
	return func(t *Tree) {
		t.modulesDir = dir
	}
}

// NewTree wraps fsys. Directory paths are slash-separated and relative to the
// FS root, as required by fs.ValidPath.
func NewTree(fsys fs.FS, opts ...TreeOption) (*Tree, error) {
	if fsys == nil {
		return nil, fmt.Errorf("jsmodules: tree filesystem is nil")
	}
	t := &Tree{
		fsys:       fsys,
		initDir:    DefaultInitDir,
		modulesDir: DefaultModulesDir,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	for _, dir := range []string{t.initDir, t.modulesDir} {
		if !fs.ValidPath(dir) {
			return nil, fmt.Errorf("%w: %q is not a valid tree directory", ErrInvalidPath, dir)
		}
	}
	return t, nil
}

// MustTree is NewTree for trees fixed at compile time.
func MustTree(fsys fs.FS, opts ...TreeOption) *Tree {
	t, err := NewTree(fsys, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// FS returns the underlying filesystem.
func (t *Tree) FS() fs.FS { return t.fsys }

// InitDir returns the initializer directory.
func (t *Tree) InitDir() string { return t.initDir }

// ModulesDir returns the modules directory.
func (t *Tree) ModulesDir() string { return t.modulesDir }
