package jsmodules

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// exprFilter selects scripts with github.com/expr-lang/expr.
type exprFilter struct {
	expression string
	program    *exprvm.Program
}

// NewExprFilter compiles expression into a FileFilter. The expression must
// evaluate to a bool, e.g. `tier == "global" || !(dir startsWith "modules/node")`.
func NewExprFilter(expression string) (FileFilter, error) {
	if expression == "" {
		return nil, fmt.Errorf("jsmodules: filter expression must not be empty")
	}
	program, err := exprlang.Compile(expression,
		exprlang.Env(Candidate{}.Env()),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("jsmodules: expr filter %q: %w", expression, err)
	}
	return &exprFilter{expression: expression, program: program}, nil
}

func (f *exprFilter) Include(candidate Candidate) (bool, error) {
	out, err := exprlang.Run(f.program, candidate.Env())
	if err != nil {
		return false, fmt.Errorf("jsmodules: expr filter %q: %w", f.expression, err)
	}
	include, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("jsmodules: expr filter %q returned %T, want bool", f.expression, out)
	}
	return include, nil
}
