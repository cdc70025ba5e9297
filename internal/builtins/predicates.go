package builtins

import (
	"github.com/nfiedler-tsi/tsi-go/internal/evaluator"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

func registerPredicates(r *Registry) {
	r.register("null?", typePredicate(func(v value.Value) bool { _, ok := v.(value.Nil); return ok }), false, CategoryPredicate, "is the empty list")
	r.register("boolean?", typePredicate(func(v value.Value) bool { _, ok := v.(value.Boolean); return ok }), false, CategoryPredicate, "is #t or #f")
	r.register("pair?", typePredicate(func(v value.Value) bool { _, ok := v.(*value.Pair); return ok }), false, CategoryPredicate, "is a cons cell")
	r.register("symbol?", typePredicate(func(v value.Value) bool { _, ok := v.(*value.Symbol); return ok }), false, CategoryPredicate, "is a symbol")
	r.register("string?", typePredicate(func(v value.Value) bool { _, ok := v.(value.String); return ok }), false, CategoryPredicate, "is a string")
	r.register("number?", typePredicate(value.IsNumber), false, CategoryPredicate, "is an integer or real")
	r.register("integer?", typePredicate(func(v value.Value) bool { _, ok := v.(*value.Integer); return ok }), false, CategoryPredicate, "is an exact integer")
	r.register("real?", typePredicate(func(v value.Value) bool { _, ok := v.(*value.Real); return ok }), false, CategoryPredicate, "is an inexact real")
	r.register("procedure?", typePredicate(func(v value.Value) bool { _, ok := v.(evaluator.Procedure); return ok }), false, CategoryPredicate, "is applicable")
}

func typePredicate(test func(value.Value) bool) evaluator.PrimitiveFunc {
	return func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
		if err := checkLenEq(args, 1); err != nil {
			return nil, nil, err
		}
		return value.Of(test(args[0])), nil, nil
	}
}
