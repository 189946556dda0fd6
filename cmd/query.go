package cmd

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/s0up4200/amocrm/request"
)

// QueryError indicates a --query expression could not be compiled or run
type QueryError struct {
	Expression string
	Reason     string
	Err        error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// evaluateQuery runs an expr expression with the response fields as its
// environment, e.g. "len(leads)" or "map(leads, .name)".
func evaluateQuery(expression string, resp request.Response) (any, error) {
	env := map[string]any(resp)

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(), // fields differ between resources
	)
	if err != nil {
		return nil, &QueryError{Expression: expression, Reason: "failed to compile expression", Err: err}
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, &QueryError{Expression: expression, Reason: "failed to evaluate expression", Err: err}
	}

	return result, nil
}
