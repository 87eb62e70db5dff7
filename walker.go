package jsmodules

import (
	"io/fs"
	"path"
)

type walker struct {
	tree   *Tree
	filter FileFilter
	visit  func(Unit) error
}

func (w *walker) run() error {
	if w.tree == nil {
		return ErrNilTree
	}
	return w.walk(w.tree.modulesDir, true)
}

// walk offers the nested-tier files of dir, then (root level only) the files
// directly in the initializer directory, then recurses into subdirectories.
func (w *walker) walk(dir string, rootLevel bool) error {
	entries, err := fs.ReadDir(w.tree.fsys, dir)
	if err != nil {
		return &BootstrapError{Op: OpWalk, Path: dir, Err: err}
	}

	for _, entry := range entries {
		if entry.IsDir() || !IsScript(entry.Name()) {
			continue
		}
		p := path.Join(dir, entry.Name())
		name, err := ModuleSpecifier(p)
		if err != nil {
			return &BootstrapError{Op: OpDerive, Path: p, Err: err}
		}
		if err := w.offer(Unit{Tier: TierModule, Name: name, Path: p}); err != nil {
			return err
		}
	}

	if rootLevel {
		if err := w.walkInit(); err != nil {
			return err
		}
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := w.walk(path.Join(dir, entry.Name()), false); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) walkInit() error {
	dir := w.tree.initDir
	entries, err := fs.ReadDir(w.tree.fsys, dir)
	if err != nil {
		return &BootstrapError{Op: OpWalk, Path: dir, Err: err}
	}
	for _, entry := range entries {
		if entry.IsDir() || !IsScript(entry.Name()) {
			continue
		}
		p := path.Join(dir, entry.Name())
		name, err := GlobalScriptName(entry.Name())
		if err != nil {
			return &BootstrapError{Op: OpDerive, Path: p, Err: err}
		}
		if err := w.offer(Unit{Tier: TierGlobal, Name: name, Path: p}); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) offer(unit Unit) error {
	if w.filter != nil {
		include, err := w.filter.Include(newCandidate(unit))
		if err != nil {
			return wrapUnitError(OpFilter, unit, err)
		}
		if !include {
			return nil
		}
	}
	return w.visit(unit)
}

// Plan returns the units a bootstrap of tree would process, in order, without
// compiling anything. A nil filter selects every script.
func Plan(tree *Tree, filter FileFilter) ([]Unit, error) {
	var units []Unit
	w := &walker{
		tree:   tree,
		filter: filter,
		visit: func(unit Unit) error {
			units = append(units, unit)
			return nil
		},
	}
	if err := w.run(); err != nil {
		return units, err
	}
	return units, nil
}
