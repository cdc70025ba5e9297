package builtins

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nfiedler-tsi/tsi-go/internal/evaluator"
	"github.com/nfiedler-tsi/tsi-go/internal/value"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// registerStrings wires two primitives not present in the source
// interpreter's table: Unicode-aware case conversion. strings.ToUpper
// would mishandle non-ASCII case folding (e.g. German ß, Turkish dotless
// i); cases.Upper/Lower fold correctly for any script.
func registerStrings(r *Registry) {
	r.register("string-upcase", caseFold(upperCaser), false, CategoryText, "Unicode-aware uppercase")
	r.register("string-downcase", caseFold(lowerCaser), false, CategoryText, "Unicode-aware lowercase")
}

func caseFold(caser cases.Caser) evaluator.PrimitiveFunc {
	return func(args []value.Value, ev *evaluator.Evaluator) (value.Value, *evaluator.EvalRequest, error) {
		if err := checkLenEq(args, 1); err != nil {
			return nil, nil, err
		}
		s, err := wantString(args[0])
		if err != nil {
			return nil, nil, err
		}
		return value.String(caser.String(string(s))), nil, nil
	}
}
