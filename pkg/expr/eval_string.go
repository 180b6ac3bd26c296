package expr

import (
	"regexp"
	"strings"
	"sync"

	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// regexCache memoizes compiled patterns by their source string. Query text
// is typically re-evaluated once per row, so recompiling the same pattern
// on every row would dominate the cost of a regex predicate.
var regexCache sync.Map // string -> *regexp.Regexp

func compiledRegex(pattern string) (*regexp.Regexp, error) {
	if cached, ok := regexCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, cerr.Wrap("Eval", cerr.KindInvalidArgument, "invalid regular expression", err)
	}
	regexCache.Store(pattern, re)
	return re, nil
}

// evalStringPredicate evaluates STARTS WITH / ENDS WITH / CONTAINS / =~.
// Both operands are evaluated first, and a Null on either side yields
// Null before any type validation happens, so a non-string operand paired
// with a Null is Null rather than a TypeMismatch.
func evalStringPredicate(n StringPredicate, ctx *Context, procs Registry) (value.Value, error) {
	lv, err := Eval(n.Left, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	rv, err := Eval(n.Right, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	if lv.IsNull() || rv.IsNull() {
		return value.Null, nil
	}

	ls, lok := lv.AsString()
	rs, rok := rv.AsString()
	if !lok || !rok {
		return value.Null, cerr.New("Eval", cerr.KindTypeMismatch, "string predicate operand is not a string")
	}

	switch n.Op {
	case OpStartsWith:
		return value.Bool(strings.HasPrefix(ls, rs)), nil
	case OpEndsWith:
		return value.Bool(strings.HasSuffix(ls, rs)), nil
	case OpContains:
		return value.Bool(strings.Contains(ls, rs)), nil
	case OpRegexMatch:
		re, err := compiledRegex(rs)
		if err != nil {
			return value.Null, err
		}
		return value.Bool(re.MatchString(ls)), nil
	default:
		return value.Null, cerr.New("Eval", cerr.KindInvalidArgument, "unknown string predicate")
	}
}
