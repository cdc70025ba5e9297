package evaluator

import (
	"strconv"

	"github.com/nfiedler-tsi/tsi-go/internal/ast"
	langerr "github.com/nfiedler-tsi/tsi-go/internal/errors"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// Analyze compiles a parsed expression into a Form once, so that repeated
// evaluation (recursive calls, loops) never re-inspects syntax: every
// decision about what kind of expression this is (reserved keyword,
// literal, variable, application) happens exactly once per source
// location.
func Analyze(node ast.Node) (Form, error) {
	switch n := node.(type) {
	case ast.Atom:
		return analyzeAtom(n)
	case ast.List:
		return analyzeList(n)
	default:
		return nil, langerr.Newf("cannot analyze node of type %T", node)
	}
}

// AnalyzeMany analyzes a sequence of top-level nodes, e.g. the contents of
// a whole file read by parser.ParseProgram.
func AnalyzeMany(nodes []ast.Node) ([]Form, error) {
	forms := make([]Form, 0, len(nodes))
	for _, n := range nodes {
		f, err := Analyze(n)
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	return forms, nil
}

func analyzeAtom(a ast.Atom) (Form, error) {
	v := atomToValue(string(a))
	if sym, ok := v.(*value.Symbol); ok {
		return &VariableForm{Name: sym.Name}, nil
	}
	return &LiteralForm{V: v}, nil
}

func analyzeList(l ast.List) (Form, error) {
	if len(l) == 0 {
		return nil, langerr.New("Ill-formed special form: ()")
	}

	if head, ok := l.Head(); ok {
		switch string(head) {
		case "quote":
			return analyzeQuote(l)
		case "if":
			return analyzeIf(l)
		case "define":
			return analyzeDefine(l)
		case "set!":
			return analyzeSet(l)
		case "lambda":
			return analyzeLambda(l)
		case "begin":
			return analyzeBegin(l)
		case "and":
			return analyzeAnd(l)
		case "or":
			return analyzeOr(l)
		case "cond":
			lowered, err := lowerCond(l[1:])
			if err != nil {
				return nil, err
			}
			return Analyze(lowered)
		case "let":
			lowered, err := lowerLet(l)
			if err != nil {
				return nil, err
			}
			return Analyze(lowered)
		case "call/cc", "call-with-current-continuation":
			return analyzeCallCc(l)
		}
	}

	return analyzeApplication(l)
}

func analyzeQuote(l ast.List) (Form, error) {
	if len(l) != 2 {
		return nil, langerr.Newf("Malformed quote: %s", l.String())
	}
	return &LiteralForm{V: datumToValue(l[1])}, nil
}

func analyzeIf(l ast.List) (Form, error) {
	if len(l) != 3 && len(l) != 4 {
		return nil, langerr.Newf("Malformed if: %s", l.String())
	}
	pred, err := Analyze(l[1])
	if err != nil {
		return nil, err
	}
	then, err := Analyze(l[2])
	if err != nil {
		return nil, err
	}
	var elseForm Form
	if len(l) == 4 {
		elseForm, err = Analyze(l[3])
		if err != nil {
			return nil, err
		}
	}
	return &IfForm{Pred: pred, Then: then, Else: elseForm}, nil
}

func analyzeDefine(l ast.List) (Form, error) {
	if len(l) < 3 {
		return nil, langerr.Newf("Malformed define: %s", l.String())
	}
	switch target := l[1].(type) {
	case ast.Atom:
		if len(l) != 3 {
			return nil, langerr.Newf("Malformed define: %s", l.String())
		}
		valueForm, err := Analyze(l[2])
		if err != nil {
			return nil, err
		}
		return &DefinitionForm{Name: string(target), ValueExpr: valueForm}, nil

	case ast.List:
		if len(target) == 0 {
			return nil, langerr.Newf("Malformed define: %s", l.String())
		}
		nameAtom, ok := target[0].(ast.Atom)
		if !ok {
			return nil, langerr.Newf("Malformed define: %s", l.String())
		}
		params, rest, err := parseParamList(target[1:])
		if err != nil {
			return nil, err
		}
		body, err := analyzeBody(l[2:])
		if err != nil {
			return nil, err
		}
		return &DefinitionForm{
			Name:      string(nameAtom),
			ValueExpr: &LambdaForm{Name: string(nameAtom), Params: params, Rest: rest, Body: body},
		}, nil

	default:
		return nil, langerr.Newf("Malformed define: %s", l.String())
	}
}

func analyzeSet(l ast.List) (Form, error) {
	if len(l) != 3 {
		return nil, langerr.Newf("Malformed set!: %s", l.String())
	}
	name, ok := l[1].(ast.Atom)
	if !ok {
		return nil, langerr.Newf("Malformed set!: %s", l.String())
	}
	valueForm, err := Analyze(l[2])
	if err != nil {
		return nil, err
	}
	return &AssignmentForm{Name: string(name), ValueExpr: valueForm}, nil
}

func analyzeLambda(l ast.List) (Form, error) {
	if len(l) < 3 {
		return nil, langerr.Newf("Malformed lambda: %s", l.String())
	}

	var params []string
	var rest string
	switch p := l[1].(type) {
	case ast.Atom:
		rest = string(p)
	case ast.List:
		var err error
		params, rest, err = parseParamList(p)
		if err != nil {
			return nil, err
		}
	default:
		return nil, langerr.Newf("Malformed lambda: %s", l.String())
	}

	body, err := analyzeBody(l[2:])
	if err != nil {
		return nil, err
	}
	return &LambdaForm{Params: params, Rest: rest, Body: body}, nil
}

func analyzeBegin(l ast.List) (Form, error) {
	body, err := analyzeBody(l[1:])
	if err != nil {
		return nil, err
	}
	return &BeginForm{Body: body}, nil
}

func analyzeAnd(l ast.List) (Form, error) {
	operands, err := analyzeBody(l[1:])
	if err != nil {
		return nil, err
	}
	return &AndForm{Operands: operands}, nil
}

func analyzeOr(l ast.List) (Form, error) {
	operands, err := analyzeBody(l[1:])
	if err != nil {
		return nil, err
	}
	return &OrForm{Operands: operands}, nil
}

func analyzeCallCc(l ast.List) (Form, error) {
	if len(l) != 2 {
		return nil, langerr.Newf("Malformed call/cc: %s", l.String())
	}
	receiver, err := Analyze(l[1])
	if err != nil {
		return nil, err
	}
	return &CallCcForm{Receiver: receiver}, nil
}

func analyzeApplication(l ast.List) (Form, error) {
	operator, err := Analyze(l[0])
	if err != nil {
		return nil, err
	}
	operands, err := analyzeBody(l[1:])
	if err != nil {
		return nil, err
	}
	return &ApplicationForm{Operator: operator, Operands: operands}, nil
}

func analyzeBody(nodes []ast.Node) ([]Form, error) {
	forms := make([]Form, 0, len(nodes))
	for _, n := range nodes {
		f, err := Analyze(n)
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	return forms, nil
}

// parseParamList splits a lambda parameter list into fixed parameters and
// an optional rest parameter, recognizing the dotted-tail convention
// "(a b . rest)" as a bare "." atom followed by one more name.
func parseParamList(l ast.List) (params []string, rest string, err error) {
	for i := 0; i < len(l); i++ {
		name, ok := l[i].(ast.Atom)
		if !ok {
			return nil, "", langerr.Newf("Malformed parameter list: %s", l.String())
		}
		if string(name) == "." {
			if i != len(l)-2 {
				return nil, "", langerr.Newf("Malformed parameter list: %s", l.String())
			}
			restName, ok := l[i+1].(ast.Atom)
			if !ok {
				return nil, "", langerr.Newf("Malformed parameter list: %s", l.String())
			}
			return params, string(restName), nil
		}
		params = append(params, string(name))
	}
	return params, "", nil
}

// atomToValue classifies a raw token: a "quoted" run is a string literal,
// #t/#f are booleans, anything that parses as a number is one, and
// everything else is an (interned) symbol. It is used both for
// self-evaluating literals in expression position and for converting
// quoted data, which is why it never distinguishes "the code means a
// variable" from "the data is a symbol" — that distinction is made by the
// two call sites, not by this function.
func atomToValue(s string) value.Value {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return value.String(s[1 : len(s)-1])
	}
	switch s {
	case "#t":
		return value.True
	case "#f":
		return value.False
	}
	if iv, ok := value.NewIntegerFromString(s); ok {
		return iv
	}
	if fv, err := strconv.ParseFloat(s, 64); err == nil {
		return value.NewReal(fv)
	}
	return value.Intern(s)
}

// Datum converts a parsed ast.Node into the runtime value it denotes,
// exactly as a quote form would. Exported for primitives like read that
// hand the parser's output straight to the running program as data.
func Datum(n ast.Node) value.Value { return datumToValue(n) }

// datumToValue converts a quoted ast.Node into the runtime value it
// denotes: atoms per atomToValue, lists into chains of Pairs.
func datumToValue(n ast.Node) value.Value {
	switch v := n.(type) {
	case ast.Atom:
		return atomToValue(string(v))
	case ast.List:
		items := make([]value.Value, len(v))
		for i, item := range v {
			items[i] = datumToValue(item)
		}
		return value.MakeList(items...)
	default:
		return value.TheNil
	}
}

// lowerLet expands both plain and named let into lambda application, so
// the evaluator only ever has to know about lambda, define and
// application.
func lowerLet(l ast.List) (ast.Node, error) {
	if len(l) < 3 {
		return nil, langerr.Newf("Malformed let: %s", l.String())
	}

	idx := 1
	loopName := ""
	if name, ok := l[1].(ast.Atom); ok {
		loopName = string(name)
		idx = 2
	}
	if idx >= len(l) {
		return nil, langerr.Newf("Malformed let: %s", l.String())
	}
	bindings, ok := l[idx].(ast.List)
	if !ok {
		return nil, langerr.Newf("Malformed let: %s", l.String())
	}

	var names ast.List
	var inits ast.List
	for _, b := range bindings {
		pair, ok := b.(ast.List)
		if !ok || len(pair) != 2 {
			return nil, langerr.Newf("Malformed let binding in: %s", l.String())
		}
		names = append(names, pair[0])
		inits = append(inits, pair[1])
	}
	body := l[idx+1:]

	lambdaExpr := append(ast.List{ast.Atom("lambda"), names}, body...)

	if loopName == "" {
		call := append(ast.List{lambdaExpr}, inits...)
		return call, nil
	}

	defineExpr := ast.List{ast.Atom("define"), ast.Atom(loopName), lambdaExpr}
	callExpr := append(ast.List{ast.Atom(loopName)}, inits...)
	zeroArg := ast.List{ast.Atom("lambda"), ast.List{}, defineExpr, callExpr}
	return ast.List{zeroArg}, nil
}

// lowerCond expands cond into nested if/begin, handling both the "else"
// clause (which must be the last one) and the no-body "(test)" clause
// (which evaluates to #t when its test is true, never the test's value).
func lowerCond(clauses []ast.Node) (ast.Node, error) {
	if len(clauses) == 0 {
		return ast.Atom("#f"), nil
	}
	clause, ok := clauses[0].(ast.List)
	if !ok || len(clause) == 0 {
		return nil, langerr.New("Malformed cond clause")
	}

	if name, ok := clause[0].(ast.Atom); ok && string(name) == "else" {
		if len(clauses) != 1 {
			return nil, langerr.New("Malformed cond: else clause is not last")
		}
		return append(ast.List{ast.Atom("begin")}, clause[1:]...), nil
	}

	rest, err := lowerCond(clauses[1:])
	if err != nil {
		return nil, err
	}

	test := clause[0]
	body := clause[1:]
	if len(body) == 0 {
		return ast.List{ast.Atom("if"), test, ast.Atom("#t"), rest}, nil
	}

	thenExpr := append(ast.List{ast.Atom("begin")}, body...)
	return ast.List{ast.Atom("if"), test, thenExpr, rest}, nil
}
