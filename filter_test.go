package jsmodules

import "testing"

func TestFilters(t *testing.T) {
	builders := []struct {
		name string
		new  func(string) (FileFilter, error)
	}{
		{name: "expr", new: NewExprFilter},
		{name: "cel", new: NewCELFilter},
	}
	module := newCandidate(Unit{Tier: TierModule, Name: "jsmodule_buffer", Path: "modules/node/buffer.js"})
	global := newCandidate(Unit{Tier: TierGlobal, Name: "timers", Path: "timers.js"})

	cases := []struct {
		expr   map[string]string
		module bool
		global bool
	}{
		{
			expr:   map[string]string{"expr": `tier == "global"`, "cel": `tier == "global"`},
			module: false,
			global: true,
		},
		{
			expr:   map[string]string{"expr": `dir == "modules/node" && stem == "buffer"`, "cel": `dir == "modules/node" && stem == "buffer"`},
			module: true,
			global: false,
		},
		{
			expr:   map[string]string{"expr": `specifier startsWith "jsmodule_" || file == "timers.js"`, "cel": `specifier.startsWith("jsmodule_") || file == "timers.js"`},
			module: true,
			global: true,
		},
	}

	for _, builder := range builders {
		t.Run(builder.name, func(t *testing.T) {
			for _, tc := range cases {
				expression := tc.expr[builder.name]
				filter, err := builder.new(expression)
				if err != nil {
					t.Fatalf("compile %q: %v", expression, err)
				}
				if got, err := filter.Include(module); err != nil || got != tc.module {
					t.Fatalf("%q on module: got %v, %v want %v", expression, got, err, tc.module)
				}
				if got, err := filter.Include(global); err != nil || got != tc.global {
					t.Fatalf("%q on global: got %v, %v want %v", expression, got, err, tc.global)
				}
			}
		})
	}
}

func TestFiltersRejectBadExpressions(t *testing.T) {
	for _, expression := range []string{"", `path + "x"`, `tier ==`} {
		if _, err := NewExprFilter(expression); err == nil {
			t.Fatalf("expected expr filter %q to fail", expression)
		}
		if _, err := NewCELFilter(expression); err == nil {
			t.Fatalf("expected cel filter %q to fail", expression)
		}
	}
}

func TestCandidateEnv(t *testing.T) {
	c := newCandidate(Unit{Tier: TierModule, Name: "jsmodule_lib.min", Path: "modules/vendor/lib.min.js"})
	env := c.Env()
	if env["dir"] != "modules/vendor" || env["file"] != "lib.min.js" || env["stem"] != "lib.min" || env["tier"] != "module" {
		t.Fatalf("unexpected env %v", env)
	}
}
