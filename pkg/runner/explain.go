package runner

import (
	"strconv"
	"strings"

	"github.com/lattixdb/cyphercore/pkg/plan"
)

// explainResult renders a compiled-but-unexecuted operator tree as a
// Result whose Explain field holds one indented line per node.
func explainResult(op plan.Operator) *Result {
	var b strings.Builder
	describeNode(&b, op, 0)
	return &Result{Explain: b.String()}
}

func describeTree(op plan.Operator) string {
	var b strings.Builder
	describeNode(&b, op, 0)
	return strings.TrimRight(b.String(), "\n")
}

func describeNode(b *strings.Builder, op plan.Operator, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString(describeSelf(op))
	b.WriteString("\n")

	for _, child := range children(op) {
		describeNode(b, child, depth+1)
	}
}

// describeSelf names one node and its own parameters.
func describeSelf(op plan.Operator) string {
	switch o := op.(type) {
	case *plan.Unit:
		return "Unit"
	case *plan.NodeScan:
		return "NodeScan(" + o.Variable + labelSuffix(o.Labels) + ")"
	case *plan.RelationshipScan:
		return "RelationshipScan(" + o.Variable + typeSuffix(o.Types) + ")"
	case *plan.Expand:
		return "Expand(" + o.From + "-[" + o.Rel + typeSuffix(o.Types) + "]->" + o.To +
			" hops=" + strconv.Itoa(o.MinHops) + ".." + strconv.Itoa(o.MaxHops) + ")"
	case *plan.Filter:
		return "Filter"
	case *plan.Project:
		return "Project(" + strconv.Itoa(len(o.Items)) + " items)"
	case *plan.With:
		return "With(" + strconv.Itoa(len(o.Items)) + " items)"
	case *plan.Aggregation:
		return "Aggregation(" + strconv.Itoa(len(o.Groupings)) + " groupings, " +
			strconv.Itoa(len(o.Aggregations)) + " aggregations)"
	case *plan.OrderBy:
		return "OrderBy(" + strconv.Itoa(len(o.Keys)) + " keys)"
	case *plan.Skip:
		return "Skip(" + strconv.Itoa(o.N) + ")"
	case *plan.Limit:
		return "Limit(" + strconv.Itoa(o.N) + ")"
	case *plan.Distinct:
		return "Distinct"
	case *plan.Unwind:
		return "Unwind(" + o.Alias + ")"
	case *plan.Union:
		if o.All {
			return "UnionAll"
		}
		return "Union"
	case *plan.Apply:
		return "Apply"
	case *plan.OuterApply:
		return "OuterApply"
	case *plan.Create:
		return "Create(" + strconv.Itoa(len(o.Nodes)) + " nodes, " + strconv.Itoa(len(o.Rels)) + " rels)"
	case *plan.Merge:
		return "Merge(" + o.Variable + ")"
	case *plan.SetProperty:
		return "SetProperty(" + o.Variable + "." + o.Key + ")"
	case *plan.Delete:
		return "Delete(" + o.Variable + ")"
	default:
		return "Operator"
	}
}

// children returns the static children of op, if any. Apply/OuterApply's
// inner side is built fresh per outer row at Open time (not a static
// subtree, same reasoning as Optimize's default case) so only the outer
// side is shown for those two.
func children(op plan.Operator) []plan.Operator {
	switch o := op.(type) {
	case *plan.Filter:
		return []plan.Operator{o.Child}
	case *plan.Project:
		return []plan.Operator{o.Child}
	case *plan.With:
		return []plan.Operator{o.Child}
	case *plan.Aggregation:
		return []plan.Operator{o.Child}
	case *plan.OrderBy:
		return []plan.Operator{o.Child}
	case *plan.Skip:
		return []plan.Operator{o.Child}
	case *plan.Limit:
		return []plan.Operator{o.Child}
	case *plan.Distinct:
		return []plan.Operator{o.Child}
	case *plan.Unwind:
		return []plan.Operator{o.Child}
	case *plan.Expand:
		return []plan.Operator{o.Child}
	case *plan.Union:
		return []plan.Operator{o.Lhs, o.Rhs}
	case *plan.Create:
		return []plan.Operator{o.Child}
	case *plan.Merge:
		return []plan.Operator{o.Child}
	case *plan.SetProperty:
		return []plan.Operator{o.Child}
	case *plan.Delete:
		return []plan.Operator{o.Child}
	case *plan.Apply:
		return []plan.Operator{o.Outer}
	case *plan.OuterApply:
		return []plan.Operator{o.Outer}
	default:
		return nil
	}
}

func labelSuffix(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return ":" + strings.Join(labels, ":")
}

func typeSuffix(types []string) string {
	if len(types) == 0 {
		return ""
	}
	return ":" + strings.Join(types, "|")
}
