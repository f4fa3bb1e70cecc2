package value

import "testing"

func TestLazyCellMemoizes(t *testing.T) {
	calls := 0
	c := NewThunk(func() (Value, error) {
		calls++
		return Num(42), nil
	})
	for i := 0; i < 3; i++ {
		v, err := c.Force()
		if err != nil {
			t.Fatalf("Force: %v", err)
		}
		if v != Num(42) {
			t.Fatalf("got %v", v)
		}
	}
	if calls != 1 {
		t.Fatalf("thunk evaluated %d times, want 1", calls)
	}
}

func TestFlattenPreservesUnforcedNull(t *testing.T) {
	forced := false
	inner := NewThunk(func() (Value, error) {
		forced = true
		return Nil, nil
	})
	arr := NewArr(inner)
	if arr.Len() != 1 {
		t.Fatalf("expected 1 element")
	}
	if forced {
		t.Fatalf("constructing the array must not force elements")
	}
}

func TestEqualityCrossVariantStrict(t *testing.T) {
	eq, err := Equal(Num(5), Str("5"))
	if err != nil {
		t.Fatal(err)
	}
	if eq {
		t.Fatalf("number must never equal string")
	}
}

func TestEqualityObjectIgnoresOrder(t *testing.T) {
	a := NewObj()
	a.SetValue("x", Num(1))
	a.SetValue("y", Num(2))
	b := NewObj()
	b.SetValue("y", Num(2))
	b.SetValue("x", Num(1))
	eq, err := Equal(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !eq {
		t.Fatalf("objects with same visible keys/values must be equal regardless of order")
	}
	if a.VisibleKeys()[0] != "x" || b.VisibleKeys()[0] != "y" {
		t.Fatalf("insertion order must still be preserved per-object")
	}
}

func TestHiddenMembersExcludedFromVisibleKeys(t *testing.T) {
	o := NewObj()
	o.Set("secret", VisHidden, NewCell(Num(1)))
	o.SetValue("open", Num(2))
	keys := o.VisibleKeys()
	if len(keys) != 1 || keys[0] != "open" {
		t.Fatalf("got %v", keys)
	}
	if !o.Has("secret") {
		t.Fatalf("hidden member must still be directly addressable")
	}
}

func TestCompareCrossKindFails(t *testing.T) {
	_, err := Compare(Num(1), Str("a"))
	if err == nil {
		t.Fatalf("expected error comparing number to string")
	}
}

func TestFormatNumberIntegerHasNoFraction(t *testing.T) {
	if FormatNumber(Num(5)) != "5" {
		t.Fatalf("want \"5\"")
	}
	if FormatNumber(Num(5.5)) != "5.5" {
		t.Fatalf("want \"5.5\"")
	}
}

func TestContains(t *testing.T) {
	xs := NewArrOfValues(Num(1), Str("a"), Bool(true))
	ok, err := Contains(xs, Str("a"))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("expected contains to find \"a\"")
	}
	ok, err = Contains(xs, Num(9))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatalf("did not expect to find 9")
	}
}
