package frame

import (
	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/types"
)

// schemaEnv adapts a Schema (plus an optional parameter-type table) to
// expr.Env, so TypeOf can resolve a Project/GroupBy item's declared
// variables against the input frame's columns.
type schemaEnv struct {
	schema     Schema
	paramTypes map[string]types.Type
}

var _ expr.Env = schemaEnv{}

func (e schemaEnv) VarType(name string) (types.Type, bool) {
	i := e.schema.IndexOf(name)
	if i < 0 {
		return types.Type{}, false
	}
	return e.schema.Columns()[i].Type, true
}

func (e schemaEnv) ParamType(name string) (types.Type, bool) {
	t, ok := e.paramTypes[name]
	return t, ok
}
