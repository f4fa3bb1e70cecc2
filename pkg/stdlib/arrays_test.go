package stdlib_test

import (
	"testing"

	"github.com/dsonnet-io/dsonnet/pkg/value"
)

func TestArraysFirstLastTakeSkip(t *testing.T) {
	wantNum(t, `ds.arrays.first([1, 2, 3])`, 1)
	wantNum(t, `ds.arrays.last([1, 2, 3])`, 3)
	v := run(t, `ds.arrays.take([1, 2, 3, 4], 2)`)
	wantArrNums(t, v, 1, 2)
	v = run(t, `ds.arrays.skip([1, 2, 3, 4], 2)`)
	wantArrNums(t, v, 3, 4)
}

func TestArraysSumAvgCount(t *testing.T) {
	wantNum(t, `ds.arrays.sum([1, 2, 3])`, 6)
	wantNum(t, `ds.arrays.avg([2, 4, 6])`, 4)
	wantNum(t, `ds.arrays.count([1, 2, 3])`, 3)
}

func TestArraysIndexOf(t *testing.T) {
	wantNum(t, `ds.arrays.indexOf([10, 20, 30], 20)`, 1)
}

func TestArraysChunk(t *testing.T) {
	v := run(t, `ds.arrays.chunk([1, 2, 3, 4, 5], 2)`)
	outer, ok := v.(*value.Arr)
	if !ok || outer.Len() != 3 {
		t.Fatalf("chunk: got %v", v)
	}
}

func TestArraysJoinFamily(t *testing.T) {
	src := `
local left = [{id: 1, name: "a"}, {id: 2, name: "b"}];
local right = [{id: 1, val: "x"}, {id: 3, val: "y"}];
ds.arrays.join(left, right, function(l) l.id, function(r) r.id)
`
	v := run(t, src)
	arr, ok := v.(*value.Arr)
	if !ok || arr.Len() != 1 {
		t.Fatalf("join: expected exactly one matching pair, got %v", v)
	}
}

func TestArraysLeftJoinKeepsUnmatchedLeft(t *testing.T) {
	src := `
local left = [{id: 1}, {id: 2}];
local right = [{id: 1, val: "x"}];
ds.arrays.leftJoin(left, right, function(l) l.id, function(r) r.id)
`
	v := run(t, src)
	arr, ok := v.(*value.Arr)
	if !ok || arr.Len() != 2 {
		t.Fatalf("leftJoin: expected both left rows represented, got %v", v)
	}
}

func TestArraysOuterJoinKeepsBothUnmatched(t *testing.T) {
	src := `
local left = [{id: 1}, {id: 2}];
local right = [{id: 2}, {id: 3}];
ds.arrays.outerJoin(left, right, function(l) l.id, function(r) r.id)
`
	v := run(t, src)
	arr, ok := v.(*value.Arr)
	if !ok || arr.Len() != 3 {
		t.Fatalf("outerJoin: expected 3 rows (1 matched + 1 left-only + 1 right-only), got %v", v)
	}
}

// A right element matches at most one left element: once a left row
// consumes it, later left rows with the same key go unmatched instead
// of also pairing with it. This is asymmetric with the left side, which
// may still pair with several rights.
func TestArraysOuterJoinRightElementMatchesAtMostOneLeft(t *testing.T) {
	src := `
local left = [{k: 1}, {k: 1}];
local right = [{k: 1}];
ds.arrays.outerJoin(left, right, function(l) l.k, function(r) r.k)
`
	v := run(t, src)
	arr, ok := v.(*value.Arr)
	if !ok || arr.Len() != 2 {
		t.Fatalf("outerJoin: expected 1 matched pair + 1 unmatched left, got %v", v)
	}
	var matched, unmatchedLeft int
	for _, c := range arr.Elems {
		el, err := c.Force()
		if err != nil {
			t.Fatal(err)
		}
		obj := el.(*value.Obj)
		_, hasL := obj.Get("l")
		_, hasR := obj.Get("r")
		switch {
		case hasL && hasR:
			matched++
		case hasL && !hasR:
			unmatchedLeft++
		default:
			t.Fatalf("unexpected row shape: %v", obj)
		}
	}
	if matched != 1 || unmatchedLeft != 1 {
		t.Fatalf("outerJoin: got %d matched, %d unmatched-left rows, want 1 and 1", matched, unmatchedLeft)
	}
}

func TestArraysFirstWith(t *testing.T) {
	wantNum(t, `ds.arrays.firstWith([1, 2, 3, 4], function(x) x > 2)`, 3)
}

func TestArraysFirstWithNoMatch(t *testing.T) {
	v := run(t, `ds.arrays.firstWith([1, 2, 3], function(x) x > 10)`)
	if !value.IsNull(v) {
		t.Fatalf("firstWith: expected null when nothing matches, got %v", v)
	}
}

func TestArraysFirstWithUsesIndex(t *testing.T) {
	wantNum(t, `ds.arrays.firstWith([10, 20, 30], function(x, i) i == 2)`, 30)
}
