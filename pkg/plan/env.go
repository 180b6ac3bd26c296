package plan

import (
	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/frame"
	"github.com/lattixdb/cyphercore/pkg/types"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// schemaEnv adapts a frame.Schema to expr.Env, the same way pkg/frame's
// own (unexported) schemaEnv does for its Project/Filter/OrderBy/GroupBy
// methods — operators that build expr.Expr trees directly (Unwind) need
// the same adaptation without reaching into pkg/frame's internals.
type schemaEnv struct {
	schema frame.Schema
}

func schemaEnvOf(schema frame.Schema) expr.Env { return schemaEnv{schema: schema} }

func (e schemaEnv) VarType(name string) (types.Type, bool) {
	i := e.schema.IndexOf(name)
	if i < 0 {
		return types.Type{}, false
	}
	return e.schema.Columns()[i].Type, true
}

func (e schemaEnv) ParamType(string) (types.Type, bool) { return types.Type{}, false }

// rowBindings turns a Row into a name→value map under a Schema, the shape
// expr.Context.WithVars expects.
func rowBindings(schema frame.Schema, row frame.Row) map[string]value.Value {
	cols := schema.Columns()
	out := make(map[string]value.Value, len(cols))
	for i, c := range cols {
		out[c.Name] = row.At(i)
	}
	return out
}
