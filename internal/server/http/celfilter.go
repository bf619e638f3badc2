package httpserver

import (
	"strings"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/visus-io/cuid2/internal/journal"
)

// celFilter wraps a compiled CEL program evaluated against journal
// entries. When disabled, Eval always returns true.
type celFilter struct {
	prog    cel.Program
	enabled bool
}

func newCELFilter(expr string) (celFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return celFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("id", cel.StringType),
		cel.Variable("prefix", cel.StringType),
		cel.Variable("seq", cel.IntType),
		cel.Variable("ts_ms", cel.IntType),
		cel.Variable("length", cel.IntType),
		// Current time in ms for windowed filters
		cel.Variable("now_ms", cel.IntType),
	)
	if err != nil {
		return celFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return celFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return celFilter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return celFilter{}, err
	}
	return celFilter{prog: prog, enabled: true}, nil
}

// Eval evaluates the compiled expression against an entry. Evaluation
// errors and non-boolean results count as non-matches.
func (f celFilter) Eval(e journal.Entry) bool {
	if !f.enabled {
		return true
	}
	prefix := ""
	if len(e.ID) > 0 {
		prefix = e.ID[:1]
	}
	out, _, err := f.prog.Eval(map[string]interface{}{
		"id":     e.ID,
		"prefix": prefix,
		"seq":    int64(e.Seq),
		"ts_ms":  e.TsMs,
		"length": int64(e.Length),
		"now_ms": time.Now().UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
