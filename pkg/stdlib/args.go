package stdlib

import (
	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// wantArgs fails with an ArityMismatch-flavored message when a native's
// caller supplied fewer arguments than required; built-ins are variadic
// at the value.Func level (native arity introspection is reserved for
// user callbacks, per value.Func's doc comment) so this check stands in
// for a fixed signature.
func wantArgs(name string, args []value.Value, n int) error {
	if len(args) < n {
		return dserr.Newf(dserr.ArityMismatch, "%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func argOrNull(args []value.Value, i int) value.Value {
	if i < len(args) {
		return args[i]
	}
	return value.Nil
}

func wantStr(name string, v value.Value) (value.Str, error) {
	s, ok := v.(value.Str)
	if !ok {
		return "", dserr.TypeErrorf("string", value.PrettyNameOf(v))
	}
	return s, nil
}

func wantNum(name string, v value.Value) (value.Num, error) {
	n, ok := v.(value.Num)
	if !ok {
		return 0, dserr.TypeErrorf("number", value.PrettyNameOf(v))
	}
	return n, nil
}

func wantArr(name string, v value.Value) (*value.Arr, error) {
	a, ok := v.(*value.Arr)
	if !ok {
		return nil, dserr.TypeErrorf("array", value.PrettyNameOf(v))
	}
	return a, nil
}

func wantObj(name string, v value.Value) (*value.Obj, error) {
	o, ok := v.(*value.Obj)
	if !ok {
		return nil, dserr.TypeErrorf("object", value.PrettyNameOf(v))
	}
	return o, nil
}

func wantFunc(name string, v value.Value) (*value.Func, error) {
	f, ok := v.(*value.Func)
	if !ok {
		return nil, dserr.TypeErrorf("function", value.PrettyNameOf(v))
	}
	return f, nil
}

// forceAll forces every element of an array into a plain slice — used by
// built-ins that need random-access or repeat traversal (sort, join)
// rather than a single forward scan over lazy cells.
func forceAll(a *value.Arr) ([]value.Value, error) {
	return a.Force()
}
