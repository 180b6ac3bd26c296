package procedure

// registerStdlib populates a fresh Registry with the standard library of
// built-in functions and procedures. Split across one file per family
// (aggregate_funcs, list_funcs, string_funcs, numeric_funcs, trig_funcs,
// predicate_funcs, scalar_funcs, temporal_funcs); registry_test.go and
// temporal_funcs_test.go hold the tests.
func registerStdlib(r *Registry) {
	registerAggregates(r)
	registerListFuncs(r)
	registerStringFuncs(r)
	registerNumericFuncs(r)
	registerTrigFuncs(r)
	registerPredicateFuncs(r)
	registerScalarFuncs(r)
	registerTemporalFuncs(r)
}

// must panics on a registration error, which can only happen if one of
// the register* functions' Func literals has an invalid shape — a
// programmer error surfaced by the first NewRegistry call, not a
// condition that depends on the query.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
