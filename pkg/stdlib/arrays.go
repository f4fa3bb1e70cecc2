package stdlib

import (
	"context"

	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/eval"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

func arraysFns() []fnEntry {
	return []fnEntry{
		{"first", native("first", arrFirst)},
		{"last", native("last", arrLast)},
		{"take", native("take", arrTake)},
		{"skip", native("skip", arrSkip)},
		{"chunk", native("chunk", arrChunk)},
		{"sum", native("sum", arrSum)},
		{"avg", native("avg", arrAvg)},
		{"count", native("count", arrCount)},
		{"indexOf", native("indexOf", arrIndexOf)},
		{"firstWith", nativeCtx("firstWith", arrFirstWith)},
		{"join", nativeCtx("join", arrJoin)},
		{"leftJoin", nativeCtx("leftJoin", arrLeftJoin)},
		{"outerJoin", nativeCtx("outerJoin", arrOuterJoin)},
	}
}

func arrFirst(args []value.Value) (value.Value, error) {
	if err := wantArgs("first", args, 1); err != nil {
		return nil, err
	}
	arr, err := wantArr("first", args[0])
	if err != nil {
		return nil, err
	}
	if arr.Len() == 0 {
		return value.Nil, nil
	}
	return arr.Elems[0].Force()
}

func arrLast(args []value.Value) (value.Value, error) {
	if err := wantArgs("last", args, 1); err != nil {
		return nil, err
	}
	arr, err := wantArr("last", args[0])
	if err != nil {
		return nil, err
	}
	if arr.Len() == 0 {
		return value.Nil, nil
	}
	return arr.Elems[arr.Len()-1].Force()
}

func arrTake(args []value.Value) (value.Value, error) {
	if err := wantArgs("take", args, 2); err != nil {
		return nil, err
	}
	arr, err := wantArr("take", args[0])
	if err != nil {
		return nil, err
	}
	n, err := wantNum("take", args[1])
	if err != nil {
		return nil, err
	}
	k := int(n)
	if k < 0 {
		k = 0
	}
	if k > arr.Len() {
		k = arr.Len()
	}
	return value.NewArr(arr.Elems[:k]...), nil
}

func arrSkip(args []value.Value) (value.Value, error) {
	if err := wantArgs("skip", args, 2); err != nil {
		return nil, err
	}
	arr, err := wantArr("skip", args[0])
	if err != nil {
		return nil, err
	}
	n, err := wantNum("skip", args[1])
	if err != nil {
		return nil, err
	}
	k := int(n)
	if k < 0 {
		k = 0
	}
	if k > arr.Len() {
		k = arr.Len()
	}
	return value.NewArr(arr.Elems[k:]...), nil
}

func arrChunk(args []value.Value) (value.Value, error) {
	if err := wantArgs("chunk", args, 2); err != nil {
		return nil, err
	}
	arr, err := wantArr("chunk", args[0])
	if err != nil {
		return nil, err
	}
	n, err := wantNum("chunk", args[1])
	if err != nil {
		return nil, err
	}
	size := int(n)
	if size <= 0 {
		return nil, dserr.New(dserr.DomainError, "chunk size must be positive")
	}
	var chunks []*value.Cell
	for i := 0; i < len(arr.Elems); i += size {
		end := i + size
		if end > len(arr.Elems) {
			end = len(arr.Elems)
		}
		chunks = append(chunks, value.NewCell(value.NewArr(arr.Elems[i:end]...)))
	}
	return value.NewArr(chunks...), nil
}

func arrSum(args []value.Value) (value.Value, error) {
	if err := wantArgs("sum", args, 1); err != nil {
		return nil, err
	}
	arr, err := wantArr("sum", args[0])
	if err != nil {
		return nil, err
	}
	var total value.Num
	for _, c := range arr.Elems {
		el, err := c.Force()
		if err != nil {
			return nil, err
		}
		n, err := wantNum("sum", el)
		if err != nil {
			return nil, err
		}
		total += n
	}
	return total, nil
}

func arrAvg(args []value.Value) (value.Value, error) {
	sum, err := arrSum(args)
	if err != nil {
		return nil, err
	}
	arr, _ := wantArr("avg", args[0])
	if arr.Len() == 0 {
		return nil, dserr.New(dserr.DomainError, "avg of an empty array is undefined")
	}
	return sum.(value.Num) / value.Num(arr.Len()), nil
}

func arrCount(args []value.Value) (value.Value, error) {
	if err := wantArgs("count", args, 1); err != nil {
		return nil, err
	}
	arr, err := wantArr("count", args[0])
	if err != nil {
		return nil, err
	}
	return value.Num(arr.Len()), nil
}

func arrIndexOf(args []value.Value) (value.Value, error) {
	if err := wantArgs("indexOf", args, 2); err != nil {
		return nil, err
	}
	arr, err := wantArr("indexOf", args[0])
	if err != nil {
		return nil, err
	}
	for i, c := range arr.Elems {
		el, err := c.Force()
		if err != nil {
			return nil, err
		}
		eq, err := value.Equal(el, args[1])
		if err != nil {
			return nil, err
		}
		if eq {
			return value.Num(i), nil
		}
	}
	return value.Num(-1), nil
}

// arrFirstWith returns the first element satisfying fn, or null if none
// does — filter's early-exit cousin.
func arrFirstWith(ctx context.Context, args []value.Value) (value.Value, error) {
	if err := wantArgs("firstWith", args, 2); err != nil {
		return nil, err
	}
	if value.IsNull(args[0]) {
		return value.Nil, nil
	}
	arr, err := wantArr("firstWith", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantFunc("firstWith", args[1])
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
			return el, nil
		}
	}
	return value.Nil, nil
}

// joinPairs implements the inner-join scan: for every left/right pair
// whose key equality holds, emit {l, r}; this is a cross-product over
// matching keys, not merge-equivalence (two equal left keys against
// three equal right keys emit six pairs). It also reports, per side,
// which elements were never part of a match — leftJoin/outerJoin use the
// residue to emit the unmatched {l}/{r} entries.
func joinPairs(l, r []value.Value, keysL, keysR []value.Value) (pairs []*value.Obj, unmatchedL, unmatchedR []int, err error) {
	matchedL := make([]bool, len(l))
	matchedR := make([]bool, len(r))
	for i := range l {
		for j := range r {
			eq, eqErr := value.Equal(keysL[i], keysR[j])
			if eqErr != nil {
				return nil, nil, nil, eqErr
			}
			if eq {
				pair := value.NewObj()
				pair.SetValue("l", l[i])
				pair.SetValue("r", r[j])
				pairs = append(pairs, pair)
				matchedL[i] = true
				matchedR[j] = true
			}
		}
	}
	for i, m := range matchedL {
		if !m {
			unmatchedL = append(unmatchedL, i)
		}
	}
	for j, m := range matchedR {
		if !m {
			unmatchedR = append(unmatchedR, j)
		}
	}
	return pairs, unmatchedL, unmatchedR, nil
}

func joinArgs(ctx context.Context, name string, args []value.Value) (l, r []value.Value, keysL, keysR []value.Value, err error) {
	if err := wantArgs(name, args, 4); err != nil {
		return nil, nil, nil, nil, err
	}
	arrL, err := wantArr(name, args[0])
	if err != nil {
		return nil, nil, nil, nil, err
	}
	arrR, err := wantArr(name, args[1])
	if err != nil {
		return nil, nil, nil, nil, err
	}
	fnL, err := wantFunc(name, args[2])
	if err != nil {
		return nil, nil, nil, nil, err
	}
	fnR, err := wantFunc(name, args[3])
	if err != nil {
		return nil, nil, nil, nil, err
	}
	l, err = forceAll(arrL)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	r, err = forceAll(arrR)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	keysL = make([]value.Value, len(l))
	for i, el := range l {
		keysL[i], err = eval.Apply(ctx, fnL, []value.Value{el})
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}
	keysR = make([]value.Value, len(r))
	for i, el := range r {
		keysR[i], err = eval.Apply(ctx, fnR, []value.Value{el})
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}
	return l, r, keysL, keysR, nil
}

func arrJoin(ctx context.Context, args []value.Value) (value.Value, error) {
	l, r, keysL, keysR, err := joinArgs(ctx, "join", args)
	if err != nil {
		return nil, err
	}
	pairs, _, _, err := joinPairs(l, r, keysL, keysR)
	if err != nil {
		return nil, err
	}
	return objsToArr(pairs), nil
}

func arrLeftJoin(ctx context.Context, args []value.Value) (value.Value, error) {
	l, r, keysL, keysR, err := joinArgs(ctx, "leftJoin", args)
	if err != nil {
		return nil, err
	}
	pairs, unmatchedL, _, err := joinPairs(l, r, keysL, keysR)
	if err != nil {
		return nil, err
	}
	for _, i := range unmatchedL {
		o := value.NewObj()
		o.SetValue("l", l[i])
		pairs = append(pairs, o)
	}
	return objsToArr(pairs), nil
}

// outerJoinPairs implements outerJoin's asymmetric matching: a right
// element is consumed out of the pool the first time any left element
// matches it, so it can pair with at most one left element, while a
// left element may still pair with several rights (the ones not yet
// consumed when it is scanned). This is deliberately not the symmetric
// cross-product joinPairs uses for join/leftJoin.
func outerJoinPairs(l, r []value.Value, keysL, keysR []value.Value) (pairs []*value.Obj, unmatchedL, unmatchedR []int, err error) {
	matchedL := make([]bool, len(l))
	consumedR := make([]bool, len(r))
	for i := range l {
		for j := range r {
			if consumedR[j] {
				continue
			}
			eq, eqErr := value.Equal(keysL[i], keysR[j])
			if eqErr != nil {
				return nil, nil, nil, eqErr
			}
			if eq {
				pair := value.NewObj()
				pair.SetValue("l", l[i])
				pair.SetValue("r", r[j])
				pairs = append(pairs, pair)
				matchedL[i] = true
				consumedR[j] = true
			}
		}
	}
	for i, m := range matchedL {
		if !m {
			unmatchedL = append(unmatchedL, i)
		}
	}
	for j, c := range consumedR {
		if !c {
			unmatchedR = append(unmatchedR, j)
		}
	}
	return pairs, unmatchedL, unmatchedR, nil
}

func arrOuterJoin(ctx context.Context, args []value.Value) (value.Value, error) {
	l, r, keysL, keysR, err := joinArgs(ctx, "outerJoin", args)
	if err != nil {
		return nil, err
	}
	pairs, unmatchedL, unmatchedR, err := outerJoinPairs(l, r, keysL, keysR)
	if err != nil {
		return nil, err
	}
	for _, i := range unmatchedL {
		o := value.NewObj()
		o.SetValue("l", l[i])
		pairs = append(pairs, o)
	}
	for _, j := range unmatchedR {
		o := value.NewObj()
		o.SetValue("r", r[j])
		pairs = append(pairs, o)
	}
	return objsToArr(pairs), nil
}

func objsToArr(objs []*value.Obj) *value.Arr {
	cells := make([]*value.Cell, len(objs))
	for i, o := range objs {
		cells[i] = value.NewCell(o)
	}
	return value.NewArr(cells...)
}
