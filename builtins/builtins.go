// Package builtins embeds the internal JavaScript modules shipped with the
// host. Files directly under js/ run as global setup scripts; files under
// js/modules/ are registered as importable "jsmodule_<stem>" modules.
package builtins

import (
	"embed"
	"io/fs"

	jsmodules "github.com/goliatone/go-jsmodules"
)

//go:embed js
var files embed.FS

// FS is the embedded script tree rooted at js/.
var FS fs.FS = mustSub(files, "js")

// Tree returns the built-in tree with the default directory layout.
func Tree() *jsmodules.Tree {
	return jsmodules.MustTree(FS)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic("builtins: embedded directory " + dir + ": " + err.Error())
	}
	return sub
}
