package jsmodules

const (
	// ScriptExtension is the only file extension the walker processes.
	ScriptExtension = ".js"
	// ModulePrefix is prepended to the stem of every nested-tier file.
	ModulePrefix = "jsmodule_"
	// NamespaceDelimiter replaces path separators in global script names.
	NamespaceDelimiter = ":"
)

// Tier identifies how a unit is initialized.
type Tier string

const (
	// TierModule units are compiled and registered, not executed.
	TierModule Tier = "module"
	// TierGlobal units are compiled and evaluated immediately.
	TierGlobal Tier = "global"
)

// Unit is a single script selected by the walker.
type Unit struct {
	Tier Tier   `json:"tier" yaml:"tier"`
	Name string `json:"name" yaml:"name"`
	// Path is the slash-separated location of the file inside the tree FS.
	Path string `json:"path" yaml:"path"`
}
