package changelog

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/zero-day-ai/libdiff/differr"
)

const opNewFilter = "changelog.NewFilter"

// Filter is a compiled CEL predicate over report entries. A Filter is safe
// for concurrent use.
type Filter struct {
	expr string
	prg  cel.Program
}

// NewFilter compiles expr. The expression must evaluate to a bool.
func NewFilter(expr string) (*Filter, error) {
	env, err := cel.NewEnv(
		cel.Variable("category", cel.StringType),
		cel.Variable("ref", cel.StringType),
		cel.Variable("action", cel.StringType),
		cel.Variable("changes", cel.ListType(cel.StringType)),
	)
	if err != nil {
		return nil, differr.NewConfiguration(opNewFilter, err)
	}

	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, differr.NewInvalidArgument(opNewFilter, iss.Err()).
			WithContext(map[string]any{"expr": expr})
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, differr.NewInvalidArgument(opNewFilter,
			fmt.Errorf("expression must evaluate to bool, got %s", ast.OutputType())).
			WithContext(map[string]any{"expr": expr})
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, differr.NewInvalidArgument(opNewFilter, err).
			WithContext(map[string]any{"expr": expr})
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Match evaluates the filter for one entry of category.
func (f *Filter) Match(category string, e Entry) (bool, error) {
	changes := e.Changes
	if changes == nil {
		changes = []string{}
	}
	out, _, err := f.prg.Eval(map[string]any{
		"category": category,
		"ref":      e.Ref,
		"action":   string(e.Action),
		"changes":  changes,
	})
	if err != nil {
		return false, fmt.Errorf("changelog: evaluate filter %q: %w", f.expr, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("changelog: filter %q returned %T", f.expr, out.Value())
	}
	return matched, nil
}
