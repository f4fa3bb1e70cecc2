package stdlib

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/eval"
	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// arrayCallShape is the allowed callback arity for array combinators:
// 1-arg sees only the element, 2-arg sees (element, index).
var arrayCallShape = []int{1, 2}

// objectCallShape is the allowed callback arity for object combinators:
// (value), (value, key), or (value, key, index).
var objectCallShape = []int{1, 2, 3}

func installCore(root *value.Obj, env *Env) {
	for _, e := range []fnEntry{
		{"map", nativeCtx("map", coreMap)},
		{"filter", nativeCtx("filter", coreFilter)},
		{"flatMap", nativeCtx("flatMap", coreFlatMap)},
		{"fold", nativeCtx("fold", coreFold(false))},
		{"foldLeft", nativeCtx("foldLeft", coreFold(false))},
		{"foldRight", nativeCtx("foldRight", coreFold(true))},
		{"groupBy", nativeCtx("groupBy", coreGroupBy)},
		{"distinct", native("distinct", coreDistinct)},
		{"distinctBy", nativeCtx("distinctBy", coreDistinctBy)},
		{"orderBy", nativeCtx("orderBy", coreOrderBy)},
		{"max", native("max", coreMax)},
		{"min", native("min", coreMin)},
		{"maxBy", nativeCtx("maxBy", coreMaxBy)},
		{"minBy", nativeCtx("minBy", coreMinBy)},
		{"zip", native("zip", coreZip)},
		{"contains", native("contains", coreContains)},
		{"flatten", native("flatten", coreFlatten)},
		{"sizeOf", native("sizeOf", coreSizeOf)},
		{"isEmpty", native("isEmpty", coreIsEmpty)},
		{"isBlank", native("isBlank", coreIsBlank)},
		{"every", nativeCtx("every", coreEvery)},
		{"some", nativeCtx("some", coreSome)},
		{"reverse", native("reverse", coreReverse)},
		{"typeOf", native("typeOf", coreTypeOf)},
		{"uuid", native("uuid", coreUUID)},
		{"read", native("read", coreRead(env))},
		{"write", native("write", coreWrite(env))},
		{"readUrl", native("readUrl", coreReadURL(env))},
	} {
		root.SetValue(e.name, e.fn)
	}
}

func coreMap(ctx context.Context, args []value.Value) (value.Value, error) {
	if err := wantArgs("map", args, 2); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.Nil, nil
	}
	arr, err := wantArr("map", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantFunc("map", args[1])
	if err != nil {
		return nil, err
	}
	out := make([]*value.Cell, len(arr.Elems))
	for i, c := range arr.Elems {
		el, err := c.Force()
		if err != nil {
			return nil, err
		}
		shaped, err := eval.CallShape(fn, []value.Value{el, value.Num(i)}, arrayCallShape)
		if err != nil {
			return nil, err
		}
		r, err := eval.Apply(ctx, fn, shaped)
		if err != nil {
			return nil, err
		}
		out[i] = value.NewCell(r)
	}
	return value.NewArr(out...), nil
}

func coreFilter(ctx context.Context, args []value.Value) (value.Value, error) {
	if err := wantArgs("filter", args, 2); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.Nil, nil
	}
	arr, err := wantArr("filter", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantFunc("filter", args[1])
	if err != nil {
		return nil, err
	}
	var out []*value.Cell
	for i, c := range arr.Elems {
		el, err := c.Force()
		if err != nil {
			return nil, err
		}
		shaped, err := eval.CallShape(fn, []value.Value{el, value.Num(i)}, arrayCallShape)
		if err != nil {
			return nil, err
		}
		r, err := eval.Apply(ctx, fn, shaped)
		if err != nil {
			return nil, err
		}
		if value.Truthy(r) {
			out = append(out, value.NewCell(el))
		}
	}
	return value.NewArr(out...), nil
}

func coreFlatMap(ctx context.Context, args []value.Value) (value.Value, error) {
	mapped, err := coreMap(ctx, args)
	if err != nil {
		return nil, err
	}
	if value.IsNull(mapped) {
		return value.Nil, nil
	}
	return coreFlatten([]value.Value{mapped})
}

// coreFold returns a fold implementation; reversed selects foldRight's
// traversal order. Both directions pass the callback (current, previous)
// — foldRight simply walks the array back to front.
func coreFold(reversed bool) value.CtxFuncImpl {
	return func(ctx context.Context, args []value.Value) (value.Value, error) {
		if err := wantArgs("fold", args, 3); err != nil {
			return nil, err
		}
		if value.IsNull(args[0]) {
			return value.Nil, nil
		}
		arr, err := wantArr("fold", args[0])
		if err != nil {
			return nil, err
		}
		fn, err := wantFunc("fold", args[1])
		if err != nil {
			return nil, err
		}
		if fn.Params != nil && len(fn.Params) != 2 {
			return nil, dserr.ArityErrorf("2", len(fn.Params))
		}
		acc := args[2]
		indices := make([]int, len(arr.Elems))
		for i := range indices {
			indices[i] = i
		}
		if reversed {
			for i, j := 0, len(indices)-1; i < j; i, j = i+1, j-1 {
				indices[i], indices[j] = indices[j], indices[i]
			}
		}
		for _, i := range indices {
			cur, err := arr.Elems[i].Force()
			if err != nil {
				return nil, err
			}
			acc, err = eval.Apply(ctx, fn, []value.Value{cur, acc})
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}
}

func coreGroupBy(ctx context.Context, args []value.Value) (value.Value, error) {
	if err := wantArgs("groupBy", args, 2); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.Nil, nil
	}
	fn, err := wantFunc("groupBy", args[1])
	if err != nil {
		return nil, err
	}
	if obj, ok := args[0].(*value.Obj); ok {
		return groupByObj(ctx, obj, fn)
	}
	arr, err := wantArr("groupBy", args[0])
	if err != nil {
		return nil, err
	}
	out := value.NewObj()
	for i, c := range arr.Elems {
		el, err := c.Force()
		if err != nil {
			return nil, err
		}
		shaped, err := eval.CallShape(fn, []value.Value{el, value.Num(i)}, arrayCallShape)
		if err != nil {
			return nil, err
		}
		keyVal, err := eval.Apply(ctx, fn, shaped)
		if err != nil {
			return nil, err
		}
		key, ok := value.CoerceScalar(keyVal)
		if !ok {
			return nil, dserr.TypeErrorf("string, number, or boolean", value.PrettyNameOf(keyVal))
		}
		if m, ok := out.Get(key); ok {
			existing, err := m.Cell.Force()
			if err != nil {
				return nil, err
			}
			existingArr := existing.(*value.Arr)
			existingArr.Elems = append(existingArr.Elems, value.NewCell(el))
		} else {
			out.SetValue(key, value.NewArr(value.NewCell(el)))
		}
	}
	return out, nil
}

// groupByObj groups obj's entries by fn's discriminator: each group is
// itself an object holding the original entries that shared that
// discriminator, keys added in obj's visible-key iteration order.
func groupByObj(ctx context.Context, obj *value.Obj, fn *value.Func) (value.Value, error) {
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
		keyVal, err := eval.Apply(ctx, fn, shaped)
		if err != nil {
			return nil, err
		}
		groupKey, ok := value.CoerceScalar(keyVal)
		if !ok {
			return nil, dserr.TypeErrorf("string, number, or boolean", value.PrettyNameOf(keyVal))
		}
		if gm, ok := out.Get(groupKey); ok {
			existing, err := gm.Cell.Force()
			if err != nil {
				return nil, err
			}
			existing.(*value.Obj).Set(k, m.Visibility, m.Cell)
		} else {
			group := value.NewObj()
			group.Set(k, m.Visibility, m.Cell)
			out.SetValue(groupKey, group)
		}
	}
	return out, nil
}

func coreDistinct(args []value.Value) (value.Value, error) {
	if err := wantArgs("distinct", args, 1); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.Nil, nil
	}
	arr, err := wantArr("distinct", args[0])
	if err != nil {
		return nil, err
	}
	var out []*value.Cell
	for _, c := range arr.Elems {
		el, err := c.Force()
		if err != nil {
			return nil, err
		}
		dup := false
		for _, seen := range out {
			sv, _ := seen.Force()
			eq, err := value.Equal(sv, el)
			if err != nil {
				return nil, err
			}
			if eq {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, value.NewCell(el))
		}
	}
	return value.NewArr(out...), nil
}

func coreDistinctBy(ctx context.Context, args []value.Value) (value.Value, error) {
	if err := wantArgs("distinctBy", args, 2); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.Nil, nil
	}
	fn, err := wantFunc("distinctBy", args[1])
	if err != nil {
		return nil, err
	}
	if obj, ok := args[0].(*value.Obj); ok {
		return distinctByObj(ctx, obj, fn)
	}
	arr, err := wantArr("distinctBy", args[0])
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []*value.Cell
	for i, c := range arr.Elems {
		el, err := c.Force()
		if err != nil {
			return nil, err
		}
		shaped, err := eval.CallShape(fn, []value.Value{el, value.Num(i)}, arrayCallShape)
		if err != nil {
			return nil, err
		}
		keyVal, err := eval.Apply(ctx, fn, shaped)
		if err != nil {
			return nil, err
		}
		key, ok := value.CoerceScalar(keyVal)
		if !ok {
			key = value.PrettyNameOf(keyVal)
		}
		if !seen[key] {
			seen[key] = true
			out = append(out, value.NewCell(el))
		}
	}
	return value.NewArr(out...), nil
}

// distinctByObj keeps the first entry (in obj's visible-key iteration
// order) for each discriminator value fn produces, dropping the rest.
func distinctByObj(ctx context.Context, obj *value.Obj, fn *value.Func) (value.Value, error) {
	seen := map[string]bool{}
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
		keyVal, err := eval.Apply(ctx, fn, shaped)
		if err != nil {
			return nil, err
		}
		key, ok := value.CoerceScalar(keyVal)
		if !ok {
			key = value.PrettyNameOf(keyVal)
		}
		if !seen[key] {
			seen[key] = true
			out.Set(k, m.Visibility, m.Cell)
		}
	}
	return out, nil
}

func coreOrderBy(ctx context.Context, args []value.Value) (value.Value, error) {
	if err := wantArgs("orderBy", args, 2); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.Nil, nil
	}
	arr, err := wantArr("orderBy", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantFunc("orderBy", args[1])
	if err != nil {
		return nil, err
	}
	elems, err := forceAll(arr)
	if err != nil {
		return nil, err
	}
	keys := make([]value.Value, len(elems))
	for i, el := range elems {
		shaped, err := eval.CallShape(fn, []value.Value{el, value.Num(i)}, arrayCallShape)
		if err != nil {
			return nil, err
		}
		k, err := eval.Apply(ctx, fn, shaped)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	idx := make([]int, len(elems))
	for i := range idx {
		idx[i] = i
	}
	var sortErr error
	sort.SliceStable(idx, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		c, err := value.Compare(keys[idx[i]], keys[idx[j]])
		if err != nil {
			sortErr = err
			return false
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	out := make([]*value.Cell, len(elems))
	for i, j := range idx {
		out[i] = value.NewCell(elems[j])
	}
	return value.NewArr(out...), nil
}

// extremeArgs forces a non-empty orderable array, or fails with an
// explicit DomainError rather than letting an empty array silently
// dereference past its head element — max/min of an empty array has no
// defined result, so a fault here is the honest answer.
func extremeArgs(name string, args []value.Value) ([]value.Value, error) {
	if err := wantArgs(name, args, 1); err != nil {
		return nil, err
	}
	arr, err := wantArr(name, args[0])
	if err != nil {
		return nil, err
	}
	elems, err := forceAll(arr)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, dserr.Newf(dserr.DomainError, "%s of an empty array is undefined", name)
	}
	return elems, nil
}

// coreMax and coreMin apply a boolean rule (any true wins for max, any
// false wins for min) when the array holds booleans, and Compare's
// ordering otherwise.
func coreMax(args []value.Value) (value.Value, error) {
	elems, err := extremeArgs("max", args)
	if err != nil {
		return nil, err
	}
	if bs, ok := boolsOf(elems); ok {
		return value.MaxBool(bs), nil
	}
	best := elems[0]
	for _, el := range elems[1:] {
		c, err := value.Compare(el, best)
		if err != nil {
			return nil, err
		}
		if c > 0 {
			best = el
		}
	}
	return best, nil
}

func coreMin(args []value.Value) (value.Value, error) {
	elems, err := extremeArgs("min", args)
	if err != nil {
		return nil, err
	}
	if bs, ok := boolsOf(elems); ok {
		return value.MinBool(bs), nil
	}
	best := elems[0]
	for _, el := range elems[1:] {
		c, err := value.Compare(el, best)
		if err != nil {
			return nil, err
		}
		if c < 0 {
			best = el
		}
	}
	return best, nil
}

func boolsOf(elems []value.Value) ([]value.Bool, bool) {
	out := make([]value.Bool, len(elems))
	for i, el := range elems {
		b, ok := el.(value.Bool)
		if !ok {
			return nil, false
		}
		out[i] = b
	}
	return out, true
}

func coreMaxBy(ctx context.Context, args []value.Value) (value.Value, error) {
	return extremeBy(ctx, "maxBy", args, 1)
}

func coreMinBy(ctx context.Context, args []value.Value) (value.Value, error) {
	return extremeBy(ctx, "minBy", args, -1)
}

// extremeBy picks the element whose derived key extremizes Compare's
// ordering; want is +1 for maxBy's "keep the greater key", -1 for
// minBy's "keep the lesser key".
func extremeBy(ctx context.Context, name string, args []value.Value, want int) (value.Value, error) {
	if err := wantArgs(name, args, 2); err != nil {
		return nil, err
	}
	arr, err := wantArr(name, args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantFunc(name, args[1])
	if err != nil {
		return nil, err
	}
	elems, err := forceAll(arr)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, dserr.Newf(dserr.DomainError, "%s of an empty array is undefined", name)
	}
	bestEl := elems[0]
	bestKey, err := eval.Apply(ctx, fn, []value.Value{elems[0]})
	if err != nil {
		return nil, err
	}
	for _, el := range elems[1:] {
		k, err := eval.Apply(ctx, fn, []value.Value{el})
		if err != nil {
			return nil, err
		}
		c, err := value.Compare(k, bestKey)
		if err != nil {
			return nil, err
		}
		if c*want > 0 {
			bestEl, bestKey = el, k
		}
	}
	return bestEl, nil
}

func coreZip(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.NewArr(), nil
	}
	arrs := make([]*value.Arr, len(args))
	minLen := -1
	for i, a := range args {
		arr, err := wantArr("zip", a)
		if err != nil {
			return nil, err
		}
		arrs[i] = arr
		if minLen == -1 || arr.Len() < minLen {
			minLen = arr.Len()
		}
	}
	out := make([]*value.Cell, minLen)
	for i := 0; i < minLen; i++ {
		row := make([]*value.Cell, len(arrs))
		for j, arr := range arrs {
			row[j] = arr.Elems[i]
		}
		out[i] = value.NewCell(value.NewArr(row...))
	}
	return value.NewArr(out...), nil
}

func coreContains(args []value.Value) (value.Value, error) {
	if err := wantArgs("contains", args, 2); err != nil {
		return nil, err
	}
	arr, err := wantArr("contains", args[0])
	if err != nil {
		return nil, err
	}
	ok, err := value.Contains(arr, args[1])
	if err != nil {
		return nil, err
	}
	return value.Bool(ok), nil
}

func coreFlatten(args []value.Value) (value.Value, error) {
	if err := wantArgs("flatten", args, 1); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.Nil, nil
	}
	arr, err := wantArr("flatten", args[0])
	if err != nil {
		return nil, err
	}
	var out []*value.Cell
	var walk func(a *value.Arr) error
	walk = func(a *value.Arr) error {
		for _, c := range a.Elems {
			el, err := c.Force()
			if err != nil {
				return err
			}
			if inner, ok := el.(*value.Arr); ok {
				if err := walk(inner); err != nil {
					return err
				}
				continue
			}
			out = append(out, value.NewCell(el))
		}
		return nil
	}
	if err := walk(arr); err != nil {
		return nil, err
	}
	return value.NewArr(out...), nil
}

func coreSizeOf(args []value.Value) (value.Value, error) {
	if err := wantArgs("sizeOf", args, 1); err != nil {
		return nil, err
	}
	v := args[0]
	if value.IsNull(v) {
		return value.Num(0), nil
	}
	switch t := v.(type) {
	case value.Str:
		return value.Num(len([]rune(string(t)))), nil
	case *value.Arr:
		return value.Num(t.Len()), nil
	case *value.Obj:
		return value.Num(t.Len()), nil
	default:
		return nil, dserr.TypeErrorf("string, array, or object", value.PrettyNameOf(v))
	}
}

func coreIsEmpty(args []value.Value) (value.Value, error) {
	if err := wantArgs("isEmpty", args, 1); err != nil {
		return nil, err
	}
	v := args[0]
	if value.IsNull(v) {
		return value.True, nil
	}
	switch t := v.(type) {
	case value.Str:
		return value.Bool(len(t) == 0), nil
	case *value.Arr:
		return value.Bool(t.Len() == 0), nil
	case *value.Obj:
		return value.Bool(t.Len() == 0), nil
	default:
		return value.False, nil
	}
}

func coreIsBlank(args []value.Value) (value.Value, error) {
	if err := wantArgs("isBlank", args, 1); err != nil {
		return nil, err
	}
	v := args[0]
	if value.IsNull(v) {
		return value.True, nil
	}
	s, ok := v.(value.Str)
	if !ok {
		return nil, dserr.TypeErrorf("string", value.PrettyNameOf(v))
	}
	return value.Bool(strings.TrimSpace(string(s)) == ""), nil
}

func coreEvery(ctx context.Context, args []value.Value) (value.Value, error) {
	if err := wantArgs("every", args, 2); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.True, nil
	}
	arr, err := wantArr("every", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantFunc("every", args[1])
	if err != nil {
		return nil, err
	}
	for i, c := range arr.Elems {
		el, err := c.Force()
		if err != nil {
			return nil, err
		}
		shaped, err := eval.CallShape(fn, []value.Value{el, value.Num(i)}, arrayCallShape)
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

func coreSome(ctx context.Context, args []value.Value) (value.Value, error) {
	if err := wantArgs("some", args, 2); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.Nil, nil
	}
	arr, err := wantArr("some", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantFunc("some", args[1])
	if err != nil {
		return nil, err
	}
	for i, c := range arr.Elems {
		el, err := c.Force()
		if err != nil {
			return nil, err
		}
		shaped, err := eval.CallShape(fn, []value.Value{el, value.Num(i)}, arrayCallShape)
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

func coreReverse(args []value.Value) (value.Value, error) {
	if err := wantArgs("reverse", args, 1); err != nil {
		return nil, err
	}
	switch t := args[0].(type) {
	case *value.Arr:
		n := len(t.Elems)
		out := make([]*value.Cell, n)
		for i, c := range t.Elems {
			out[n-1-i] = c
		}
		return value.NewArr(out...), nil
	case value.Str:
		r := []rune(string(t))
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return value.Str(string(r)), nil
	case *value.Obj:
		keys := t.VisibleKeys()
		out := value.NewObj()
		for i := len(keys) - 1; i >= 0; i-- {
			m, _ := t.Get(keys[i])
			out.Set(keys[i], m.Visibility, m.Cell)
		}
		return out, nil
	default:
		return nil, dserr.TypeErrorf("string, array, or object", value.PrettyNameOf(args[0]))
	}
}

func coreTypeOf(args []value.Value) (value.Value, error) {
	if err := wantArgs("typeOf", args, 1); err != nil {
		return nil, err
	}
	return value.Str(value.PrettyNameOf(args[0])), nil
}

func coreUUID(args []value.Value) (value.Value, error) {
	return value.Str(uuid.NewString()), nil
}

func coreRead(env *Env) value.FuncImpl {
	return func(args []value.Value) (value.Value, error) {
		if err := wantArgs("read", args, 2); err != nil {
			return nil, err
		}
		data, err := wantStr("read", args[0])
		if err != nil {
			return nil, err
		}
		mtStr, err := wantStr("read", args[1])
		if err != nil {
			return nil, err
		}
		mt, err := mediatype.Parse(string(mtStr))
		if err != nil {
			return nil, dserr.New(dserr.CodecFailure, err.Error())
		}
		if len(args) >= 3 {
			if params, ok := args[2].(*value.Obj); ok {
				for _, k := range params.VisibleKeys() {
					m, _ := params.Get(k)
					pv, err := m.Cell.Force()
					if err != nil {
						return nil, err
					}
					if s, ok := value.CoerceScalar(pv); ok {
						mt = mt.WithParam(k, s)
					}
				}
			}
		}
		return env.Registry.Read([]byte(data), mt)
	}
}

func coreWrite(env *Env) value.FuncImpl {
	return func(args []value.Value) (value.Value, error) {
		if err := wantArgs("write", args, 2); err != nil {
			return nil, err
		}
		mtStr, err := wantStr("write", args[1])
		if err != nil {
			return nil, err
		}
		mt, err := mediatype.Parse(string(mtStr))
		if err != nil {
			return nil, dserr.New(dserr.CodecFailure, err.Error())
		}
		out, err := env.Registry.Write(args[0], mt)
		if err != nil {
			return nil, err
		}
		return value.Str(string(out)), nil
	}
}

const classpathScheme = "classpath://"

// coreReadURL implements readUrl: classpath:// resources resolve
// through env.Classpath (missing resource yields the string "null",
// which is then JSON-parsed like everything else); any other URL is
// fetched over HTTP, read as UTF-8, and JSON-parsed. A non-JSON body is
// a parser error from the JSON reader, not a readUrl-specific one.
func coreReadURL(env *Env) value.FuncImpl {
	return func(args []value.Value) (value.Value, error) {
		if err := wantArgs("readUrl", args, 1); err != nil {
			return nil, err
		}
		u, err := wantStr("readUrl", args[0])
		if err != nil {
			return nil, err
		}
		var body []byte
		if strings.HasPrefix(string(u), classpathScheme) {
			name := strings.TrimPrefix(string(u), classpathScheme)
			data, ok := env.Classpath(name)
			if !ok {
				body = []byte("null")
			} else {
				body = data
			}
		} else {
			client := &http.Client{Timeout: 30 * time.Second}
			resp, err := client.Get(string(u))
			if err != nil {
				return nil, dserr.New(dserr.CodecFailure, err.Error())
			}
			defer resp.Body.Close()
			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return nil, dserr.New(dserr.CodecFailure, err.Error())
			}
		}
		return env.Registry.Read(body, mediatype.New("application", "json", nil))
	}
}
