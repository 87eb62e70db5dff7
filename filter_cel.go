package jsmodules

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
)

type celFilter struct {
	expression string
	program    celgo.Program
}

// NewCELFilter compiles a CEL expression into a FileFilter, e.g.
// `tier == "module" && !stem.startsWith("_")`.
func NewCELFilter(expression string) (FileFilter, error) {
	if expression == "" {
		return nil, fmt.Errorf("jsmodules: filter expression must not be empty")
	}
	env, err := celgo.NewEnv(
		celgo.Variable("tier", celgo.StringType),
		celgo.Variable("specifier", celgo.StringType),
		celgo.Variable("path", celgo.StringType),
		celgo.Variable("dir", celgo.StringType),
		celgo.Variable("file", celgo.StringType),
		celgo.Variable("stem", celgo.StringType),
	)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("jsmodules: cel filter %q: %w", expression, issues.Err())
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("jsmodules: cel filter %q: %w", expression, issues.Err())
	}
	if !checked.OutputType().IsExactType(celgo.BoolType) {
		return nil, fmt.Errorf("jsmodules: cel filter %q must return bool, got %s", expression, checked.OutputType())
	}
	prg, err := env.Program(checked)
	if err != nil {
		return nil, err
	}
	return &celFilter{expression: expression, program: prg}, nil
}

func (f *celFilter) Include(candidate Candidate) (bool, error) {
	out, _, err := f.program.Eval(candidate.Env())
	if err != nil {
		return false, fmt.Errorf("jsmodules: cel filter %q: %w", f.expression, err)
	}
	include, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("jsmodules: cel filter %q returned %T, want bool", f.expression, out.Value())
	}
	return include, nil
}
