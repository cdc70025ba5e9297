package tsi

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// marshalToGo converts a Scheme value to a Go value of the target type, for
// passing call arguments into a host function registered with
// Engine.RegisterFunction. Scheme being dynamically typed, this is a much
// smaller job than DWScript's static-type FFI: integers, reals, strings,
// and booleans, which is everything the language's own primitive table
// hands to Go code today.
func marshalToGo(v value.Value, target reflect.Type) (reflect.Value, error) {
	switch target.Kind() {
	case reflect.Int64, reflect.Int, reflect.Int32, reflect.Int16, reflect.Int8:
		i, ok := v.(*value.Integer)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected an integer, got %s", v.String())
		}
		n := reflect.New(target).Elem()
		n.SetInt(i.V.Int64())
		return n, nil

	case reflect.Uint64, reflect.Uint, reflect.Uint32, reflect.Uint16, reflect.Uint8:
		i, ok := v.(*value.Integer)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected an integer, got %s", v.String())
		}
		n := reflect.New(target).Elem()
		n.SetUint(i.V.Uint64())
		return n, nil

	case reflect.Float64, reflect.Float32:
		f, ok := value.AsFloat(v)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected a number, got %s", v.String())
		}
		n := reflect.New(target).Elem()
		n.SetFloat(f)
		return n, nil

	case reflect.String:
		s, ok := v.(value.String)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected a string, got %s", v.String())
		}
		return reflect.ValueOf(string(s)), nil

	case reflect.Bool:
		b, ok := v.(value.Boolean)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected a boolean, got %s", v.String())
		}
		return reflect.ValueOf(bool(b)), nil

	default:
		return reflect.Value{}, fmt.Errorf("unsupported host parameter type %s", target)
	}
}

// marshalToScheme converts a Go return value back into a Scheme value.
func marshalToScheme(v reflect.Value) (value.Value, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.NewIntegerFromBig(big.NewInt(v.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.NewIntegerFromBig(new(big.Int).SetUint64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return value.NewReal(v.Float()), nil
	case reflect.String:
		return value.String(v.String()), nil
	case reflect.Bool:
		return value.Boolean(v.Bool()), nil
	case reflect.Invalid:
		return value.TheNil, nil
	default:
		return nil, fmt.Errorf("unsupported host return type %s", v.Type())
	}
}
