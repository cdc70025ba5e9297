package builtins

import (
	langerr "github.com/nfiedler-tsi/tsi-go/internal/errors"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

// checkLenEq requires exactly n operands, mirroring check_len_eq in the
// source interpreter's primitive table.
func checkLenEq(args []value.Value, n int) error {
	if len(args) != n {
		return langerr.Newf("takes exactly %d argument(s), got %d", n, len(args))
	}
	return nil
}

// checkLenGt requires more than n operands.
func checkLenGt(args []value.Value, n int) error {
	if len(args) <= n {
		return langerr.New("Too few arguments")
	}
	return nil
}

func wantPair(v value.Value) (*value.Pair, error) {
	p, ok := v.(*value.Pair)
	if !ok {
		return nil, langerr.New("a pair expected")
	}
	return p, nil
}

func wantString(v value.Value) (value.String, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", langerr.New("a string expected")
	}
	return s, nil
}
