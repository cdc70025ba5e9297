package builtins

import (
	langerr "github.com/nfiedler-tsi/tsi-go/internal/errors"
	"github.com/nfiedler-tsi/tsi-go/internal/evaluator"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

func registerComparisons(r *Registry) {
	r.register("<", cmpPrim(func(c int) bool { return c < 0 }), false, CategoryComparison, "strictly increasing")
	r.register("<=", cmpPrim(func(c int) bool { return c <= 0 }), false, CategoryComparison, "non-decreasing")
	r.register("=", cmpPrim(func(c int) bool { return c == 0 }), false, CategoryComparison, "numerically equal")
	r.register(">", cmpPrim(func(c int) bool { return c > 0 }), false, CategoryComparison, "strictly decreasing")
	r.register(">=", cmpPrim(func(c int) bool { return c >= 0 }), false, CategoryComparison, "non-increasing")
	r.register("eq?", primEq, false, CategoryComparison, "structural equality")
	r.register("not", primNot, false, CategoryComparison, "boolean negation")
}

// compareNumbers returns -1, 0, 1 the way big.Int.Cmp does. Two integers
// compare exactly via big.Int; anything involving a Real falls back to
// float64, so an Integer too large for a float64 is rounded first (unlike
// Integer.Equal, which compares an Integer with a Real exactly).
func compareNumbers(a, b value.Value) (int, error) {
	ai, aok := a.(*value.Integer)
	bi, bok := b.(*value.Integer)
	if aok && bok {
		return ai.V.Cmp(bi.V), nil
	}
	af, ok := value.AsFloat(a)
	if !ok {
		return 0, langerr.Newf("not a number: %s", a.String())
	}
	bf, ok := value.AsFloat(b)
	if !ok {
		return 0, langerr.Newf("not a number: %s", b.String())
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	default:
		return 0, nil
	}
}

func cmpPrim(ok func(int) bool) evaluator.PrimitiveFunc {
	return func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
		if err := checkLenGt(args, 1); err != nil {
			return nil, nil, err
		}
		for i := 1; i < len(args); i++ {
			c, err := compareNumbers(args[i-1], args[i])
			if err != nil {
				return nil, nil, err
			}
			if !ok(c) {
				return value.False, nil, nil
			}
		}
		return value.True, nil, nil
	}
}

func primEq(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenEq(args, 2); err != nil {
		return nil, nil, err
	}
	return value.Of(args[0].Equal(args[1])), nil, nil
}

func primNot(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenEq(args, 1); err != nil {
		return nil, nil, err
	}
	return value.Of(!value.Truthy(args[0])), nil, nil
}
