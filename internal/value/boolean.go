package value

// Boolean is one of the two distinguished singletons True or False.
// It is a defined bool type rather than a struct so the two package-level
// singletons below are the only values that can ever exist of this type,
// making identity comparison just `==`.
type Boolean bool

// True and False are the only two Boolean values in existence.
const (
	True  Boolean = true
	False Boolean = false
)

func (b Boolean) Type() string { return "BOOLEAN" }

func (b Boolean) String() string {
	if b {
		return "#t"
	}
	return "#f"
}

func (b Boolean) Equal(other Value) bool {
	o, ok := other.(Boolean)
	return ok && b == o
}

// Of converts a host bool into the corresponding Scheme boolean singleton.
func Of(b bool) Boolean {
	if b {
		return True
	}
	return False
}
