package value

import (
	"strings"
	"unsafe"
)

// Pair is a mutable cons cell. Pairs form lists by convention (Cdr chain
// terminated by TheNil) but need not be well-formed.
type Pair struct {
	Car Value
	Cdr Value
}

// NewPair builds a single cons cell.
func NewPair(car, cdr Value) *Pair { return &Pair{Car: car, Cdr: cdr} }

func (p *Pair) Type() string { return "PAIR" }

// String prints "(e1 e2 … en)" for a well-formed list, or
// "(e1 … en . tail)" for an improper one. A cycle is rendered up to the
// point it repeats and then truncated with "...", so printing never loops.
func (p *Pair) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	seen := map[*Pair]bool{}
	cur := p
	first := true
	for {
		if seen[cur] {
			sb.WriteString(" ...")
			break
		}
		seen[cur] = true
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(cur.Car.String())

		switch cdr := cur.Cdr.(type) {
		case Nil:
			goto done
		case *Pair:
			cur = cdr
			continue
		default:
			sb.WriteString(" . ")
			sb.WriteString(cur.Cdr.String())
			goto done
		}
	}
done:
	sb.WriteByte(')')
	return sb.String()
}

// Equal compares pair structure recursively (car and cdr). Per the open
// question on cyclic pairs (SPEC_FULL.md), comparison is cycle-safe: a
// pair of cells already under comparison is treated as equal without
// recursing again, so acyclic structures get an exact structural answer
// and cyclic ones terminate instead of crashing.
func (p *Pair) Equal(other Value) bool {
	o, ok := other.(*Pair)
	if !ok {
		return false
	}
	return pairEqual(p, o, map[pairKey]bool{})
}

type pairKey struct{ a, b unsafe.Pointer }

func pairEqual(a, b *Pair, seen map[pairKey]bool) bool {
	key := pairKey{unsafe.Pointer(a), unsafe.Pointer(b)}
	if seen[key] {
		return true
	}
	seen[key] = true

	if !valueEqual(a.Car, b.Car, seen) {
		return false
	}
	return valueEqual(a.Cdr, b.Cdr, seen)
}

func valueEqual(a, b Value, seen map[pairKey]bool) bool {
	pa, aOK := a.(*Pair)
	pb, bOK := b.(*Pair)
	if aOK && bOK {
		return pairEqual(pa, pb, seen)
	}
	if aOK != bOK {
		return false
	}
	return a.Equal(b)
}

// ToSlice flattens a proper list into a Go slice. ok is false if the chain
// is not terminated by Nil (i.e. it is an improper list or not a list).
func (p *Pair) ToSlice() (items []Value, ok bool) {
	var cur Value = p
	for {
		switch c := cur.(type) {
		case Nil:
			return items, true
		case *Pair:
			items = append(items, c.Car)
			cur = c.Cdr
		default:
			return items, false
		}
	}
}

// MakeList builds a right-nested chain terminated by TheNil.
func MakeList(items ...Value) Value {
	var out Value = TheNil
	for i := len(items) - 1; i >= 0; i-- {
		out = NewPair(items[i], out)
	}
	return out
}
