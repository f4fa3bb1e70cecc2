package stdlib_test

import (
	"testing"

	"github.com/dsonnet-io/dsonnet/pkg/value"
)

func TestCoreMapFilter(t *testing.T) {
	v := run(t, `ds.map([1, 2, 3], function(x) x * 2)`)
	wantArrNums(t, v, 2, 4, 6)

	v = run(t, `ds.filter([1, 2, 3, 4], function(x) x > 2)`)
	wantArrNums(t, v, 3, 4)
}

func TestCoreFoldLeftRight(t *testing.T) {
	wantNum(t, `ds.fold([1, 2, 3, 4], function(acc, x) acc + x, 0)`, 10)
	wantNum(t, `ds.foldLeft([1, 2, 3, 4], function(acc, x) acc + x, 0)`, 10)
	wantNum(t, `ds.foldRight([1, 2, 3, 4], function(acc, x) acc + x, 0)`, 10)
}

func TestCoreMaxMin(t *testing.T) {
	wantNum(t, `ds.max([3, 1, 4, 1, 5])`, 5)
	wantNum(t, `ds.min([3, 1, 4, 1, 5])`, 1)
}

func TestCoreMaxOnEmptyArrayErrors(t *testing.T) {
	if err := runErr(t, `ds.max([])`); err == nil {
		t.Fatalf("expected a domain error for max of an empty array")
	}
}

func TestCoreMaxByMinBy(t *testing.T) {
	v := run(t, `ds.maxBy([{n: 1}, {n: 5}, {n: 3}], function(x) x.n)`)
	obj, ok := v.(*value.Obj)
	if !ok {
		t.Fatalf("maxBy: got %v", v)
	}
	m, _ := obj.Get("n")
	fv, _ := m.Cell.Force()
	if fv != value.Num(5) {
		t.Fatalf("maxBy: got %v, want the object with n == 5", fv)
	}
}

func TestCoreGroupByZipDistinct(t *testing.T) {
	v := run(t, `ds.groupBy([1, 2, 3, 4, 5, 6], function(x) x % 2)`)
	obj, ok := v.(*value.Obj)
	if !ok || len(obj.VisibleKeys()) != 2 {
		t.Fatalf("groupBy: got %v", v)
	}

	v = run(t, `ds.zip([1, 2], ["a", "b"])`)
	outer, ok2 := v.(*value.Arr)
	if !ok2 || outer.Len() != 2 {
		t.Fatalf("zip: got %v", v)
	}

	v = run(t, `ds.distinct([1, 2, 2, 3, 1])`)
	wantArrNums(t, v, 1, 2, 3)
}

func TestCoreGroupByObject(t *testing.T) {
	v := run(t, `ds.groupBy({a: 1, b: 2, c: 3, d: 4}, function(v) v % 2)`)
	obj, ok := v.(*value.Obj)
	if !ok || len(obj.VisibleKeys()) != 2 {
		t.Fatalf("groupBy on an object: got %v", v)
	}
	m, ok := obj.Get("1")
	if !ok {
		t.Fatalf("groupBy on an object: missing group key 1")
	}
	fv, err := m.Cell.Force()
	if err != nil {
		t.Fatal(err)
	}
	group, ok := fv.(*value.Obj)
	if !ok || len(group.VisibleKeys()) != 2 {
		t.Fatalf("groupBy on an object: group 1 should hold entries a and c, got %v", fv)
	}
}

func TestCoreDistinctByObject(t *testing.T) {
	v := run(t, `ds.distinctBy({a: 1, b: 2, c: 1, d: 3}, function(v) v)`)
	obj, ok := v.(*value.Obj)
	if !ok {
		t.Fatalf("distinctBy on an object: got %v", v)
	}
	keys := obj.VisibleKeys()
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "d" {
		t.Fatalf("distinctBy on an object: expected first-occurrence keys a, b, d in order, got %v", keys)
	}
}

func TestCoreOrderBy(t *testing.T) {
	v := run(t, `ds.orderBy([3, 1, 2], function(x) x)`)
	wantArrNums(t, v, 1, 2, 3)
}

func TestCoreEveryAndSome(t *testing.T) {
	wantBool(t, `ds.every([2, 4, 6], function(x) x % 2 == 0)`, true)
	wantBool(t, `ds.some([1, 3, 5, 6], function(x) x % 2 == 0)`, true)
}

func TestCoreSizeOfIsEmptyContains(t *testing.T) {
	wantNum(t, `ds.sizeOf([1, 2, 3])`, 3)
	wantBool(t, `ds.isEmpty([])`, true)
	wantBool(t, `ds.contains([1, 2, 3], 2)`, true)
}
