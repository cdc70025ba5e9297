package builtins

import (
	"math/big"

	langerr "github.com/nfiedler-tsi/tsi-go/internal/errors"
	"github.com/nfiedler-tsi/tsi-go/internal/evaluator"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// anyReal reports whether args contains a Real, in which case an
// arithmetic primitive must promote everything to float64 instead of
// doing exact big.Int math.
func anyReal(args []value.Value) bool {
	for _, a := range args {
		if _, ok := a.(*value.Real); ok {
			return true
		}
	}
	return false
}

func floatsOf(args []value.Value) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, ok := value.AsFloat(a)
		if !ok {
			return nil, langerr.Newf("not a number: %s", a.String())
		}
		out[i] = f
	}
	return out, nil
}

func bigIntsOf(args []value.Value) ([]*big.Int, error) {
	out := make([]*big.Int, len(args))
	for i, a := range args {
		n, ok := value.AsBigInt(a)
		if !ok {
			return nil, langerr.Newf("not a number: %s", a.String())
		}
		out[i] = n
	}
	return out, nil
}

func registerArithmetic(r *Registry) {
	r.register("+", primAdd, false, CategoryArithmetic, "sum of its arguments")
	r.register("-", primSub, false, CategoryArithmetic, "difference, or negation with one argument")
	r.register("*", primMul, false, CategoryArithmetic, "product of its arguments")
	r.register("/", primDiv, false, CategoryArithmetic, "quotient, always a real")
	r.register("modulo", primModulo, false, CategoryArithmetic, "modulo of two integers, sign follows the divisor")
	r.register("min", primMin, false, CategoryArithmetic, "smallest of its arguments")
	r.register("max", primMax, false, CategoryArithmetic, "largest of its arguments")
}

func primAdd(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenGt(args, 0); err != nil {
		return nil, nil, err
	}
	if anyReal(args) {
		fs, err := floatsOf(args)
		if err != nil {
			return nil, nil, err
		}
		acc := 0.0
		for _, f := range fs {
			acc += f
		}
		return value.NewReal(acc), nil, nil
	}
	ns, err := bigIntsOf(args)
	if err != nil {
		return nil, nil, err
	}
	acc := big.NewInt(0)
	for _, n := range ns {
		acc.Add(acc, n)
	}
	return value.NewIntegerFromBig(acc), nil, nil
}

func primSub(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenGt(args, 0); err != nil {
		return nil, nil, err
	}
	if anyReal(args) {
		fs, err := floatsOf(args)
		if err != nil {
			return nil, nil, err
		}
		if len(fs) == 1 {
			return value.NewReal(-fs[0]), nil, nil
		}
		acc := fs[0]
		for _, f := range fs[1:] {
			acc -= f
		}
		return value.NewReal(acc), nil, nil
	}
	ns, err := bigIntsOf(args)
	if err != nil {
		return nil, nil, err
	}
	if len(ns) == 1 {
		return value.NewIntegerFromBig(new(big.Int).Neg(ns[0])), nil, nil
	}
	acc := new(big.Int).Set(ns[0])
	for _, n := range ns[1:] {
		acc.Sub(acc, n)
	}
	return value.NewIntegerFromBig(acc), nil, nil
}

func primMul(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenGt(args, 0); err != nil {
		return nil, nil, err
	}
	if anyReal(args) {
		fs, err := floatsOf(args)
		if err != nil {
			return nil, nil, err
		}
		acc := 1.0
		for _, f := range fs {
			acc *= f
		}
		return value.NewReal(acc), nil, nil
	}
	ns, err := bigIntsOf(args)
	if err != nil {
		return nil, nil, err
	}
	acc := big.NewInt(1)
	for _, n := range ns {
		acc.Mul(acc, n)
	}
	return value.NewIntegerFromBig(acc), nil, nil
}

// primDiv always produces a Real, matching true division rather than
// integer floor division: "(/ 1 2)" is 0.5, not 0. It requires at least
// two operands; there is no unary reciprocal form.
func primDiv(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenGt(args, 1); err != nil {
		return nil, nil, err
	}
	fs, err := floatsOf(args)
	if err != nil {
		return nil, nil, err
	}
	acc := fs[0]
	for _, f := range fs[1:] {
		if f == 0 {
			return nil, nil, langerr.New("division by zero")
		}
		acc /= f
	}
	return value.NewReal(acc), nil, nil
}

// primModulo implements floored modulo (a non-zero result's sign always
// matches the divisor's), matching Python's % on integers: big.Int.Mod's
// Euclidean result is shifted by the divisor when the divisor is negative.
func primModulo(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenEq(args, 2); err != nil {
		return nil, nil, err
	}
	ns, err := bigIntsOf(args)
	if err != nil {
		return nil, nil, err
	}
	if ns[1].Sign() == 0 {
		return nil, nil, langerr.New("division by zero")
	}
	m := new(big.Int).Mod(ns[0], ns[1])
	if m.Sign() != 0 && ns[1].Sign() < 0 {
		m.Add(m, ns[1])
	}
	return value.NewIntegerFromBig(m), nil, nil
}

func primMin(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenGt(args, 0); err != nil {
		return nil, nil, err
	}
	return extremum(args, true)
}

func primMax(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenGt(args, 0); err != nil {
		return nil, nil, err
	}
	return extremum(args, false)
}

func extremum(args []value.Value, wantMin bool) (value.Value, *evaluator.EvalRequest, error) {
	best := args[0]
	bestF, ok := value.AsFloat(best)
	if !ok {
		return nil, nil, langerr.Newf("not a number: %s", best.String())
	}
	for _, a := range args[1:] {
		f, ok := value.AsFloat(a)
		if !ok {
			return nil, nil, langerr.Newf("not a number: %s", a.String())
		}
		if (wantMin && f < bestF) || (!wantMin && f > bestF) {
			best, bestF = a, f
		}
	}
	return best, nil, nil
}
