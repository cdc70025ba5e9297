// Package turtlestub is a worked example of the load-ext mechanism: a
// headless stand-in for the source interpreter's turtle graphics
// extension. No GUI/turtle-graphics library appears anywhere in this
// project's dependency pack, and pulling one in would be out of scope
// for a language core — so instead of drawing, this extension tracks
// the turtle's position and heading in memory and reports them, giving
// scripts something observable to test against without a display.
package turtlestub

import (
	"math"

	langerr "github.com/nfiedler-tsi/tsi-go/internal/errors"
	"github.com/nfiedler-tsi/tsi-go/internal/evaluator"
	"github.com/nfiedler-tsi/tsi-go/internal/runtime"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// Turtle is the headless turtle state: position and heading in degrees,
// zero pointing east, increasing counterclockwise.
type Turtle struct {
	X, Y    float64
	Heading float64
	PenDown bool
}

// Extension adapts a Turtle to the extension.Extension interface.
type Extension struct{ T *Turtle }

// New creates a turtle extension with the turtle at the origin, facing
// east, pen down — the same starting state turtle.py gives a fresh
// window.
func New() *Extension { return &Extension{T: &Turtle{PenDown: true}} }

func (e *Extension) Name() string { return "turtle" }

func (e *Extension) Setup(env *runtime.Environment) error {
	t := e.T
	define := func(name string, fn evaluator.PrimitiveFunc) {
		env.Define(name, &evaluator.PrimitiveProcedure{Name: name, Fn: fn})
	}

	move := func(distance float64) {
		rad := t.Heading * math.Pi / 180
		t.X += distance * math.Cos(rad)
		t.Y += distance * math.Sin(rad)
	}

	oneReal := func(args []value.Value) (float64, error) {
		if err := checkLenEq(args, 1); err != nil {
			return 0, err
		}
		f, ok := value.AsFloat(args[0])
		if !ok {
			return 0, langerr.New("a number expected")
		}
		return f, nil
	}

	define("forward", func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
		n, err := oneReal(args)
		if err != nil {
			return nil, nil, err
		}
		move(n)
		return value.TheNil, nil, nil
	})
	define("backward", func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
		n, err := oneReal(args)
		if err != nil {
			return nil, nil, err
		}
		move(-n)
		return value.TheNil, nil, nil
	})
	define("left", func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
		n, err := oneReal(args)
		if err != nil {
			return nil, nil, err
		}
		t.Heading = math.Mod(t.Heading+n, 360)
		return value.TheNil, nil, nil
	})
	define("right", func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
		n, err := oneReal(args)
		if err != nil {
			return nil, nil, err
		}
		t.Heading = math.Mod(t.Heading-n, 360)
		return value.TheNil, nil, nil
	})
	define("penup", func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
		t.PenDown = false
		return value.TheNil, nil, nil
	})
	define("pendown", func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
		t.PenDown = true
		return value.TheNil, nil, nil
	})
	define("position", func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
		return value.NewPair(value.NewReal(t.X), value.NewReal(t.Y)), nil, nil
	})
	define("heading", func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
		return value.NewReal(t.Heading), nil, nil
	})

	return nil
}

func checkLenEq(args []value.Value, n int) error {
	if len(args) != n {
		return langerr.Newf("takes exactly %d argument(s), got %d", n, len(args))
	}
	return nil
}
