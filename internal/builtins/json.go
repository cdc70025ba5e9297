package builtins

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	langerr "github.com/nfiedler-tsi/tsi-go/internal/errors"
	"github.com/nfiedler-tsi/tsi-go/internal/evaluator"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// registerJSON wires two primitives not present in the source
// interpreter's table: json->value parses a JSON document into nested
// Pair/String/Integer/Real/Boolean/Nil values (objects become
// association lists of (key . value) pairs, arrays become ordinary
// lists), and value->json does the reverse.
func registerJSON(r *Registry) {
	r.register("json->value", primJSONToValue, false, CategoryText, "parse a JSON document into scheme data")
	r.register("value->json", primValueToJSON, false, CategoryText, "serialize scheme data as a JSON document")
}

func primJSONToValue(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenEq(args, 1); err != nil {
		return nil, nil, err
	}
	s, err := wantString(args[0])
	if err != nil {
		return nil, nil, err
	}
	text := string(s)
	if !gjson.Valid(text) {
		return nil, nil, langerr.New("json->value: not valid JSON")
	}
	return gjsonToValue(gjson.Parse(text)), nil, nil
}

func gjsonToValue(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.TheNil
	case gjson.True:
		return value.True
	case gjson.False:
		return value.False
	case gjson.String:
		return value.String(r.String())
	case gjson.Number:
		if r.Num == float64(r.Int()) {
			return value.NewInteger(r.Int())
		}
		return value.NewReal(r.Num)
	}
	if r.IsArray() {
		var items []value.Value
		r.ForEach(func(_, v gjson.Result) bool {
			items = append(items, gjsonToValue(v))
			return true
		})
		return value.MakeList(items...)
	}
	if r.IsObject() {
		var items []value.Value
		r.ForEach(func(k, v gjson.Result) bool {
			items = append(items, value.NewPair(value.String(k.String()), gjsonToValue(v)))
			return true
		})
		return value.MakeList(items...)
	}
	return value.TheNil
}

func primValueToJSON(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
	if err := checkLenEq(args, 1); err != nil {
		return nil, nil, err
	}
	raw, err := valueToRawJSON(args[0])
	if err != nil {
		return nil, nil, err
	}
	return value.String(raw), nil, nil
}

// valueToRawJSON encodes v as a JSON text fragment. Scalars are encoded
// via sjson.Set against a throwaway document so string escaping goes
// through the library rather than a hand-rolled quoter; composite values
// (lists, and association lists of (string . value) pairs) are built up
// incrementally with sjson.SetRaw, "-1" appending to a JSON array the
// same way the library's own docs recommend.
func valueToRawJSON(v value.Value) (string, error) {
	switch x := v.(type) {
	case value.Nil:
		return "null", nil
	case value.Boolean:
		if x {
			return "true", nil
		}
		return "false", nil
	case value.String:
		doc, err := sjson.Set("{}", "v", string(x))
		if err != nil {
			return "", err
		}
		return gjson.Get(doc, "v").Raw, nil
	case *value.Integer:
		return x.String(), nil
	case *value.Real:
		return x.String(), nil
	case *value.Pair:
		return pairToRawJSON(x)
	default:
		return "", langerr.Newf("value->json: cannot encode a %s", v.Type())
	}
}

func pairToRawJSON(p *value.Pair) (string, error) {
	items, ok := p.ToSlice()
	if !ok {
		return "", langerr.New("value->json: improper list")
	}

	asObject := len(items) > 0
	for _, it := range items {
		entry, ok := it.(*value.Pair)
		if !ok {
			asObject = false
			break
		}
		if _, ok := entry.Car.(value.String); !ok {
			asObject = false
			break
		}
	}

	doc := "[]"
	if asObject {
		doc = "{}"
	}
	var err error
	for _, it := range items {
		if asObject {
			entry := it.(*value.Pair)
			raw, e := valueToRawJSON(entry.Cdr)
			if e != nil {
				return "", e
			}
			doc, err = sjson.SetRaw(doc, string(entry.Car.(value.String)), raw)
		} else {
			raw, e := valueToRawJSON(it)
			if e != nil {
				return "", e
			}
			doc, err = sjson.SetRaw(doc, "-1", raw)
		}
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}
