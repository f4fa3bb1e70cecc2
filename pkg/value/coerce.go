package value

import (
	"math"
	"strconv"
)

// CoerceScalar renders a scalar value (bool, number, string) to a string
// using the shared rule behind combine, joinBy, and toString: integers
// print without a fractional part (5 -> "5", never "5.0"),
// non-integers use default double formatting, booleans print as
// "true"/"false". Any other kind (null, array, object, function) yields
// ok=false, and the caller reports the type error.
func CoerceScalar(v Value) (string, bool) {
	switch t := v.(type) {
	case Str:
		return string(t), true
	case Bool:
		if t {
			return "true", true
		}
		return "false", true
	case Num:
		return FormatNumber(t), true
	default:
		return "", false
	}
}

// FormatNumber renders a Num the way the script language's default
// number-to-string coercion does: integral values drop the fractional
// part, everything else uses Go's shortest round-tripping decimal form.
func FormatNumber(n Num) string {
	f := float64(n)
	if n.IsInteger() && !math.IsInf(f, 0) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
