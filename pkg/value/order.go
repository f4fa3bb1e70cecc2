package value

import "fmt"

// Compare orders two values of the same orderable kind: Num, Str, or
// Bool (false < true). Comparing across kinds, or a kind outside that
// set, is a fatal error for orderBy, max, min, maxBy, minBy.
//
// Returns -1, 0, or 1 following the usual convention.
func Compare(a, b Value) (int, error) {
	if a.Kind() != b.Kind() {
		return 0, fmt.Errorf("Expected Array of type String, Boolean, or Number, got: Array of type %s", mixedKindMessage(a, b))
	}
	switch av := a.(type) {
	case Num:
		bv := b.(Num)
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case Str:
		bv := b.(Str)
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case Bool:
		bv := b.(Bool)
		switch {
		case av == bv:
			return 0, nil
		case !bool(av) && bool(bv):
			return -1, nil
		default:
			return 1, nil
		}
	default:
		return 0, fmt.Errorf("Expected Array of type String, Boolean, or Number, got: Array of type %s", a.PrettyName())
	}
}

func mixedKindMessage(a, b Value) string {
	if a.Kind() == b.Kind() {
		return a.PrettyName()
	}
	return a.PrettyName() + "/" + b.PrettyName()
}

// Orderable reports whether v's kind participates in Compare.
func Orderable(v Value) bool {
	switch v.(type) {
	case Num, Str, Bool:
		return true
	default:
		return false
	}
}

// MaxBool implements max()'s boolean rule: true if any element is true.
func MaxBool(bs []Bool) Bool {
	for _, b := range bs {
		if b {
			return True
		}
	}
	return False
}

// MinBool implements min()'s boolean rule: false if any element is false.
func MinBool(bs []Bool) Bool {
	for _, b := range bs {
		if !b {
			return False
		}
	}
	return True
}
