package builtins

import (
	"github.com/nfiedler-tsi/tsi-go/internal/evaluator"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

func registerPairs(r *Registry) {
	r.register("cons", primCons, false, CategoryPair, "build a pair")
	r.register("car", pairAccessor(func(p *value.Pair) value.Value { return p.Car }), false, CategoryPair, "first element of a pair")
	r.register("cdr", pairAccessor(func(p *value.Pair) value.Value { return p.Cdr }), false, CategoryPair, "rest of a pair")
	r.register("cadr", pairAccessor(func(p *value.Pair) value.Value { return nthCar(p, 1) }), false, CategoryPair, "second element of a list")
	r.register("cddr", pairAccessor(func(p *value.Pair) value.Value { return nthCdr(p, 2) }), false, CategoryPair, "list minus its first two elements")
	r.register("caddr", pairAccessor(func(p *value.Pair) value.Value { return nthCar(p, 2) }), false, CategoryPair, "third element of a list")
	r.register("list", primList, false, CategoryPair, "build a list from its arguments")
	r.register("set-car!", pairSetter(func(p *value.Pair, v value.Value) { p.Car = v }), false, CategoryPair, "mutate a pair's first element")
	r.register("set-cdr!", pairSetter(func(p *value.Pair, v value.Value) { p.Cdr = v }), false, CategoryPair, "mutate a pair's rest")
}

func primCons(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenEq(args, 2); err != nil {
		return nil, nil, err
	}
	return value.NewPair(args[0], args[1]), nil, nil
}

func pairAccessor(get func(*value.Pair) value.Value) evaluator.PrimitiveFunc {
	return func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
		if err := checkLenEq(args, 1); err != nil {
			return nil, nil, err
		}
		p, err := wantPair(args[0])
		if err != nil {
			return nil, nil, err
		}
		return get(p), nil, nil
	}
}

func pairSetter(set func(*value.Pair, value.Value)) evaluator.PrimitiveFunc {
	return func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
		if err := checkLenEq(args, 2); err != nil {
			return nil, nil, err
		}
		p, err := wantPair(args[0])
		if err != nil {
			return nil, nil, err
		}
		set(p, args[1])
		return value.TheNil, nil, nil
	}
}

// nthCdr/nthCar chase n cdrs, used by the cadr/cddr/caddr shortcuts. The
// caller is responsible for checking args[0] is itself a pair; an
// improper or too-short chain falls through to TheNil rather than
// panicking, since a raw type assertion would.
func nthCdr(p *value.Pair, n int) value.Value {
	var cur value.Value = p
	for i := 0; i < n; i++ {
		next, ok := cur.(*value.Pair)
		if !ok {
			return value.TheNil
		}
		cur = next.Cdr
	}
	return cur
}

func nthCar(p *value.Pair, n int) value.Value {
	rest := nthCdr(p, n)
	pair, ok := rest.(*value.Pair)
	if !ok {
		return value.TheNil
	}
	return pair.Car
}

func primList(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	return value.MakeList(args...), nil, nil
}
