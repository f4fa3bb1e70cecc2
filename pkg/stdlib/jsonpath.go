package stdlib

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"

	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// jsonpathFns exposes JSONPath queries over this engine's value tree by
// delegating to PaesslerAG/jsonpath, which operates on plain
// map[string]interface{}/[]interface{} trees rather than value.Value —
// toNative/fromNative bridge the two representations at the boundary.
func jsonpathFns() []fnEntry {
	return []fnEntry{
		{"select", native("select", jpSelect)},
		{"selectAll", native("selectAll", jpSelectAll)},
	}
}

func jpSelect(args []value.Value) (value.Value, error) {
	if err := wantArgs("select", args, 2); err != nil {
		return nil, err
	}
	path, err := wantStr("select", args[1])
	if err != nil {
		return nil, err
	}
	native, nerr := toNative(args[0])
	if nerr != nil {
		return nil, nerr
	}
	// An unresolved path (missing key, out-of-range index) yields null
	// rather than erroring — treated as a non-fault result, not a
	// DomainError.
	result, gerr := jsonpath.Get(string(path), native)
	if gerr != nil {
		return value.Nil, nil
	}
	return fromNative(result), nil
}

// jpSelectAll wraps select's result in a single-element array unless
// that result is already an array, so callers can always iterate it. An
// array-valued result is returned as is, and an unresolved path yields
// [null].
func jpSelectAll(args []value.Value) (value.Value, error) {
	v, err := jpSelect(args)
	if err != nil {
		return nil, err
	}
	if _, ok := v.(*value.Arr); ok {
		return v, nil
	}
	return value.NewArr(value.NewCell(v)), nil
}

func toNative(v value.Value) (interface{}, error) {
	if value.IsNull(v) {
		return nil, nil
	}
	switch t := v.(type) {
	case value.Bool:
		return bool(t), nil
	case value.Num:
		return float64(t), nil
	case value.Str:
		return string(t), nil
	case *value.Arr:
		elems, err := t.Force()
		if err != nil {
			return nil, err
		}
		out := make([]interface{}, len(elems))
		for i, e := range elems {
			nv, err := toNative(e)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case *value.Obj:
		out := make(map[string]interface{})
		for _, k := range t.VisibleKeys() {
			m, _ := t.Get(k)
			ev, err := m.Cell.Force()
			if err != nil {
				return nil, err
			}
			nv, err := toNative(ev)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot query a %s with jsonpath", v.PrettyName())
	}
}

func fromNative(v interface{}) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Nil
	case bool:
		return value.Bool(t)
	case float64:
		return value.Num(t)
	case int:
		return value.Num(t)
	case string:
		return value.Str(t)
	case []interface{}:
		cells := make([]*value.Cell, len(t))
		for i, e := range t {
			cells[i] = value.NewCell(fromNative(e))
		}
		return value.NewArr(cells...)
	case map[string]interface{}:
		obj := value.NewObj()
		for k, e := range t {
			obj.SetValue(k, fromNative(e))
		}
		return obj
	default:
		return value.Nil
	}
}
