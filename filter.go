package jsmodules

import (
	"path"
	"strings"
)

// Candidate describes a script offered to a FileFilter.
type Candidate struct {
	Tier      Tier
	Specifier string
	Path      string
	Dir       string
	File      string
	Stem      string
}

func newCandidate(unit Unit) Candidate {
	file := path.Base(unit.Path)
	return Candidate{
		Tier:      unit.Tier,
		Specifier: unit.Name,
		Path:      unit.Path,
		Dir:       path.Dir(unit.Path),
		File:      file,
		Stem:      strings.TrimSuffix(file, path.Ext(file)),
	}
}

// Env exposes the candidate as the variable set filter expressions see.
func (c Candidate) Env() map[string]any {
	return map[string]any{
		"tier":      string(c.Tier),
		"specifier": c.Specifier,
		"path":      c.Path,
		"dir":       c.Dir,
		"file":      c.File,
		"stem":      c.Stem,
	}
}

// FileFilter decides whether a script takes part in bootstrap. Filters run
// after the extension check, so they only ever see .js files.
type FileFilter interface {
	Include(candidate Candidate) (bool, error)
}

// FileFilterFunc adapts a function to FileFilter.
type FileFilterFunc func(Candidate) (bool, error)

// Include implements FileFilter.
func (f FileFilterFunc) Include(candidate Candidate) (bool, error) {
	if f == nil {
		return true, nil
	}
	return f(candidate)
}
