package jsmodules

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"
)

// IsScript reports whether a file name carries the script extension with a
// non-empty stem. A bare ".js" is treated as a dotfile and skipped.
func IsScript(name string) bool {
	base := path.Base(name)
	if path.Ext(base) != ScriptExtension {
		return false
	}
	return strings.TrimSuffix(base, ScriptExtension) != ""
}

// ModuleSpecifier derives the nested-tier specifier for p. Only the file stem
// is used, so files sharing a base name in different directories collide.
func ModuleSpecifier(p string) (string, error) {
	if !utf8.ValidString(p) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	base := path.Base(p)
	stem := strings.TrimSuffix(base, path.Ext(base))
	if stem == "" || base == "." || base == "/" {
		return "", fmt.Errorf("%w: %q has no file stem", ErrInvalidPath, p)
	}
	return ModulePrefix + stem, nil
}

// GlobalScriptName derives the global-tier name for rel, a path relative to the
// initializer directory.
func GlobalScriptName(rel string) (string, error) {
	if !utf8.ValidString(rel) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	trimmed, ok := strings.CutSuffix(rel, ScriptExtension)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingExtension, rel)
	}
	return strings.ReplaceAll(trimmed, "/", NamespaceDelimiter), nil
}
