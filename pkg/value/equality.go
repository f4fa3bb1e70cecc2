package value

// Equal implements the engine's structural, cross-variant-strict
// equality: a number never equals a string, arrays compare element-wise
// after forcing, objects compare by same
// visible-key set plus equal values per key (order does not matter for
// equality, only for iteration/serialization).
//
// Equal forces every Cell it touches; an error forcing either side is
// reported as false plus that error so callers (e.g. $contains) can
// decide whether to propagate it.
func Equal(a, b Value) (bool, error) {
	an, bn := IsNull(a), IsNull(b)
	if an || bn {
		return an && bn, nil
	}
	if a.Kind() != b.Kind() {
		return false, nil
	}
	switch av := a.(type) {
	case Bool:
		return av == b.(Bool), nil
	case Num:
		return av == b.(Num), nil
	case Str:
		return av == b.(Str), nil
	case *Arr:
		bv := b.(*Arr)
		if len(av.Elems) != len(bv.Elems) {
			return false, nil
		}
		for i := range av.Elems {
			ea, err := av.Elems[i].Force()
			if err != nil {
				return false, err
			}
			eb, err := bv.Elems[i].Force()
			if err != nil {
				return false, err
			}
			eq, err := Equal(ea, eb)
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	case *Obj:
		bv := b.(*Obj)
		ak := av.VisibleKeys()
		bk := bv.VisibleKeys()
		if len(ak) != len(bk) {
			return false, nil
		}
		bkSet := make(map[string]bool, len(bk))
		for _, k := range bk {
			bkSet[k] = true
		}
		for _, k := range ak {
			if !bkSet[k] {
				return false, nil
			}
			ma, _ := av.Get(k)
			mb, _ := bv.Get(k)
			va, err := ma.Cell.Force()
			if err != nil {
				return false, err
			}
			vb, err := mb.Cell.Force()
			if err != nil {
				return false, err
			}
			eq, err := Equal(va, vb)
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	case *Func:
		return av == b.(*Func), nil
	default:
		return false, nil
	}
}

// Contains reports whether v structurally equals any element of xs,
// forcing elements as it scans: contains(xs, v) ⇔ ∃ i. xs[i] = v under
// structural equality.
func Contains(xs *Arr, v Value) (bool, error) {
	for _, c := range xs.Elems {
		e, err := c.Force()
		if err != nil {
			return false, err
		}
		eq, err := Equal(e, v)
		if err != nil {
			return false, err
		}
		if eq {
			return true, nil
		}
	}
	return false, nil
}
