package stdlib

import (
	"context"

	"github.com/dsonnet-io/dsonnet/pkg/eval"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

func objectsFns() []fnEntry {
	return []fnEntry{
		{"mapObject", nativeCtx("mapObject", objMapObject)},
		{"mapEntries", nativeCtx("mapEntries", objMapEntries)},
		{"filterObject", nativeCtx("filterObject", objFilterObject)},
		{"takeWhile", nativeCtx("takeWhile", objTakeWhile)},
		{"everyEntry", nativeCtx("everyEntry", objEveryEntry)},
		{"someEntry", nativeCtx("someEntry", objSomeEntry)},
		{"keysOf", native("keysOf", objKeysOf)},
		{"valuesOf", native("valuesOf", objValuesOf)},
		{"entriesOf", native("entriesOf", objEntriesOf)},
		{"merge", native("merge", objMerge)},
	}
}

// entryArgs builds the full argument tuple for object combinators: 1-arg
// sees the value, 2-arg adds the key, 3-arg adds the
// position in visible-key iteration order.
func entryArgs(value_ value.Value, key string, index int) []value.Value {
	return []value.Value{value_, value.Str(key), value.Num(index)}
}

func objMapObject(ctx context.Context, args []value.Value) (value.Value, error) {
	if err := wantArgs("mapObject", args, 2); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.Nil, nil
	}
	obj, err := wantObj("mapObject", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantFunc("mapObject", args[1])
	if err != nil {
		return nil, err
	}
	out := value.NewObj()
	for i, k := range obj.VisibleKeys() {
		m, _ := obj.Get(k)
		v, err := m.Cell.Force()
		if err != nil {
			return nil, err
		}
		shaped, err := eval.CallShape(fn, entryArgs(v, k, i), objectCallShape)
		if err != nil {
			return nil, err
		}
		r, err := eval.Apply(ctx, fn, shaped)
		if err != nil {
			return nil, err
		}
		ro, err := wantObj("mapObject callback result", r)
		if err != nil {
			return nil, err
		}
		for _, rk := range ro.VisibleKeys() {
			rm, _ := ro.Get(rk)
			out.Set(rk, value.VisNormal, rm.Cell)
		}
	}
	return out, nil
}

func objMapEntries(ctx context.Context, args []value.Value) (value.Value, error) {
	if err := wantArgs("mapEntries", args, 2); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.Nil, nil
	}
	obj, err := wantObj("mapEntries", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantFunc("mapEntries", args[1])
	if err != nil {
		return nil, err
	}
	var cells []*value.Cell
	for i, k := range obj.VisibleKeys() {
		m, _ := obj.Get(k)
		v, err := m.Cell.Force()
		if err != nil {
			return nil, err
		}
		shaped, err := eval.CallShape(fn, entryArgs(v, k, i), objectCallShape)
		if err != nil {
			return nil, err
		}
		r, err := eval.Apply(ctx, fn, shaped)
		if err != nil {
			return nil, err
		}
		cells = append(cells, value.NewCell(r))
	}
	return value.NewArr(cells...), nil
}

func objFilterObject(ctx context.Context, args []value.Value) (value.Value, error) {
	if err := wantArgs("filterObject", args, 2); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.Nil, nil
	}
	obj, err := wantObj("filterObject", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantFunc("filterObject", args[1])
	if err != nil {
		return nil, err
	}
	out := value.NewObj()
	for i, k := range obj.VisibleKeys() {
		m, _ := obj.Get(k)
		v, err := m.Cell.Force()
		if err != nil {
			return nil, err
		}
		shaped, err := eval.CallShape(fn, entryArgs(v, k, i), objectCallShape)
		if err != nil {
			return nil, err
		}
		r, err := eval.Apply(ctx, fn, shaped)
		if err != nil {
			return nil, err
		}
		if value.Truthy(r) {
			out.Set(k, m.Visibility, m.Cell)
		}
	}
	return out, nil
}

// objTakeWhile keeps entries in visible-key order up to (but not
// including) the first one for which fn is falsy — filterObject's
// stop-at-the-first-rejection cousin.
func objTakeWhile(ctx context.Context, args []value.Value) (value.Value, error) {
	if err := wantArgs("takeWhile", args, 2); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.Nil, nil
	}
	obj, err := wantObj("takeWhile", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantFunc("takeWhile", args[1])
	if err != nil {
		return nil, err
	}
	out := value.NewObj()
	for i, k := range obj.VisibleKeys() {
		m, _ := obj.Get(k)
		v, err := m.Cell.Force()
		if err != nil {
			return nil, err
		}
		shaped, err := eval.CallShape(fn, entryArgs(v, k, i), objectCallShape)
		if err != nil {
			return nil, err
		}
		r, err := eval.Apply(ctx, fn, shaped)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(r) {
			break
		}
		out.Set(k, m.Visibility, m.Cell)
	}
	return out, nil
}

func objEveryEntry(ctx context.Context, args []value.Value) (value.Value, error) {
	if err := wantArgs("everyEntry", args, 2); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.True, nil
	}
	obj, err := wantObj("everyEntry", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantFunc("everyEntry", args[1])
	if err != nil {
		return nil, err
	}
	for i, k := range obj.VisibleKeys() {
		m, _ := obj.Get(k)
		v, err := m.Cell.Force()
		if err != nil {
			return nil, err
		}
		shaped, err := eval.CallShape(fn, entryArgs(v, k, i), objectCallShape)
		if err != nil {
			return nil, err
		}
		r, err := eval.Apply(ctx, fn, shaped)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(r) {
			return value.False, nil
		}
	}
	return value.True, nil
}

func objSomeEntry(ctx context.Context, args []value.Value) (value.Value, error) {
	if err := wantArgs("someEntry", args, 2); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.Nil, nil
	}
	obj, err := wantObj("someEntry", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantFunc("someEntry", args[1])
	if err != nil {
		return nil, err
	}
	for i, k := range obj.VisibleKeys() {
		m, _ := obj.Get(k)
		v, err := m.Cell.Force()
		if err != nil {
			return nil, err
		}
		shaped, err := eval.CallShape(fn, entryArgs(v, k, i), objectCallShape)
		if err != nil {
			return nil, err
		}
		r, err := eval.Apply(ctx, fn, shaped)
		if err != nil {
			return nil, err
		}
		if value.Truthy(r) {
			return value.True, nil
		}
	}
	return value.False, nil
}

func objKeysOf(args []value.Value) (value.Value, error) {
	if err := wantArgs("keysOf", args, 1); err != nil {
		return nil, err
	}
	obj, err := wantObj("keysOf", args[0])
	if err != nil {
		return nil, err
	}
	keys := obj.VisibleKeys()
	cells := make([]*value.Cell, len(keys))
	for i, k := range keys {
		cells[i] = value.NewCell(value.Str(k))
	}
	return value.NewArr(cells...), nil
}

func objValuesOf(args []value.Value) (value.Value, error) {
	if err := wantArgs("valuesOf", args, 1); err != nil {
		return nil, err
	}
	obj, err := wantObj("valuesOf", args[0])
	if err != nil {
		return nil, err
	}
	keys := obj.VisibleKeys()
	cells := make([]*value.Cell, len(keys))
	for i, k := range keys {
		m, _ := obj.Get(k)
		cells[i] = m.Cell
	}
	return value.NewArr(cells...), nil
}

func objEntriesOf(args []value.Value) (value.Value, error) {
	if err := wantArgs("entriesOf", args, 1); err != nil {
		return nil, err
	}
	obj, err := wantObj("entriesOf", args[0])
	if err != nil {
		return nil, err
	}
	keys := obj.VisibleKeys()
	cells := make([]*value.Cell, len(keys))
	for i, k := range keys {
		m, _ := obj.Get(k)
		entry := value.NewObj()
		entry.SetValue("key", value.Str(k))
		entry.Set("value", value.VisNormal, m.Cell)
		cells[i] = value.NewCell(entry)
	}
	return value.NewArr(cells...), nil
}

// merge folds a left-to-right sequence of objects using the same
// later-keys-win, position-preserved rule as the `+` operator
// (pkg/eval/operators.go's addOp).
func objMerge(args []value.Value) (value.Value, error) {
	if err := wantArgs("merge", args, 1); err != nil {
		return nil, err
	}
	arr, err := wantArr("merge", args[0])
	if err != nil {
		return nil, err
	}
	out := value.NewObj()
	for _, c := range arr.Elems {
		el, err := c.Force()
		if err != nil {
			return nil, err
		}
		obj, err := wantObj("merge", el)
		if err != nil {
			return nil, err
		}
		for _, k := range obj.VisibleKeys() {
			m, _ := obj.Get(k)
			out.Set(k, m.Visibility, m.Cell)
		}
	}
	return out, nil
}
