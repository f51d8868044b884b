package types

// Equal reports structural equality. Lists and vectors compare element-wise
// regardless of kind, maps ignore insertion order, and atoms and functions
// compare by identity.
func Equal(a, b Value) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}

	if IsSequential(a) && IsSequential(b) {
		return seqEqual(a, b)
	}

	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Value == bv.Value

	case Int:
		bv, ok := b.(Int)
		return ok && av.Value == bv.Value

	case Str:
		bv, ok := b.(Str)
		return ok && av.Value == bv.Value

	case Keyword:
		bv, ok := b.(Keyword)
		return ok && av.Name == bv.Name

	case *Symbol:
		bv, ok := b.(*Symbol)
		return ok && av == bv

	case Map:
		bv, ok := b.(Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for k, v := range av.entries {
			other, found := bv.entries[k]
			if !found || !Equal(v, other) {
				return false
			}
		}
		return true

	case *Closure:
		bv, ok := b.(*Closure)
		return ok && av == bv

	case *Func:
		bv, ok := b.(*Func)
		return ok && av == bv

	case *Atom:
		bv, ok := b.(*Atom)
		return ok && av == bv
	}

	return false
}

func seqEqual(a, b Value) bool {
	al, aIsList := a.(*List)
	bl, bIsList := b.(*List)
	if aIsList && bIsList {
		if al.Len() != bl.Len() {
			return false
		}
		for ; !al.Empty(); al, bl = al.Rest(), bl.Rest() {
			if al == bl {
				return true
			}
			if !Equal(al.First(), bl.First()) {
				return false
			}
		}
		return true
	}

	ai, _ := Items(a)
	bi, _ := Items(b)
	if len(ai) != len(bi) {
		return false
	}
	for i := range ai {
		if !Equal(ai[i], bi[i]) {
			return false
		}
	}
	return true
}
