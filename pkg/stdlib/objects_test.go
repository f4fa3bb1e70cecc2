package stdlib_test

import (
	"testing"

	"github.com/dsonnet-io/dsonnet/pkg/value"
)

func TestObjectsKeysValuesEntries(t *testing.T) {
	v := run(t, `ds.objects.keysOf({a: 1, b: 2})`)
	arr, ok := v.(*value.Arr)
	if !ok || arr.Len() != 2 {
		t.Fatalf("keysOf: got %v", v)
	}
	v = run(t, `ds.objects.valuesOf({a: 1, b: 2})`)
	wantArrNums(t, v, 1, 2)

	v = run(t, `ds.objects.entriesOf({a: 1})`)
	arr, ok = v.(*value.Arr)
	if !ok || arr.Len() != 1 {
		t.Fatalf("entriesOf: got %v", v)
	}
}

func TestObjectsMapObject(t *testing.T) {
	v := run(t, `ds.objects.mapObject({a: 1, b: 2}, function(v, k) {[k]: v * 10})`)
	obj, ok := v.(*value.Obj)
	if !ok {
		t.Fatalf("mapObject: got %v", v)
	}
	m, ok := obj.Get("a")
	if !ok {
		t.Fatalf("mapObject: missing key a")
	}
	fv, err := m.Cell.Force()
	if err != nil {
		t.Fatal(err)
	}
	if fv != value.Num(10) {
		t.Fatalf("mapObject: got %v, want 10", fv)
	}
}

func TestObjectsFilterObject(t *testing.T) {
	v := run(t, `ds.objects.filterObject({a: 1, b: 2, c: 3}, function(v) v > 1)`)
	obj, ok := v.(*value.Obj)
	if !ok || len(obj.VisibleKeys()) != 2 {
		t.Fatalf("filterObject: got %v", v)
	}
}

func TestObjectsTakeWhile(t *testing.T) {
	v := run(t, `ds.objects.takeWhile({a: 1, b: 2, c: 3, d: 1}, function(v) v < 3)`)
	obj, ok := v.(*value.Obj)
	if !ok {
		t.Fatalf("takeWhile: got %v", v)
	}
	keys := obj.VisibleKeys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("takeWhile: expected to stop before the first falsy entry, got keys %v", keys)
	}
}

func TestObjectsTakeWhileAllPass(t *testing.T) {
	v := run(t, `ds.objects.takeWhile({a: 1, b: 2}, function(v) v > 0)`)
	obj, ok := v.(*value.Obj)
	if !ok || len(obj.VisibleKeys()) != 2 {
		t.Fatalf("takeWhile: expected both entries kept, got %v", v)
	}
}

func TestObjectsMerge(t *testing.T) {
	v := run(t, `ds.objects.merge([{a: 1}, {b: 2}, {a: 3}])`)
	obj, ok := v.(*value.Obj)
	if !ok {
		t.Fatalf("merge: got %v", v)
	}
	m, _ := obj.Get("a")
	fv, _ := m.Cell.Force()
	if fv != value.Num(3) {
		t.Fatalf("merge: later value should win, got %v", fv)
	}
}
