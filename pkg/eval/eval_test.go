package eval

import (
	"context"
	"testing"

	"github.com/dsonnet-io/dsonnet/pkg/lang"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

func run(t *testing.T, src string) value.Value {
	t.Helper()
	node, err := lang.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	ctx := WithDepthCounter(context.Background())
	v, err := Eval(ctx, node, NewRootScope(nil))
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

func TestArithmetic(t *testing.T) {
	if v := run(t, "1 + 2 * 3"); v != value.Num(7) {
		t.Fatalf("got %v", v)
	}
}

func TestStringConcat(t *testing.T) {
	if v := run(t, `"a" + "b"`); v != value.Str("ab") {
		t.Fatalf("got %v", v)
	}
}

func TestIfElse(t *testing.T) {
	if v := run(t, `if 1 < 2 then "y" else "n"`); v != value.Str("y") {
		t.Fatalf("got %v", v)
	}
}

func TestLocalBinding(t *testing.T) {
	if v := run(t, `local x = 10; x + 1`); v != value.Num(11) {
		t.Fatalf("got %v", v)
	}
}

func TestLambdaApply(t *testing.T) {
	v := run(t, `local inc = function(x) x + 1; inc(41)`)
	if v != value.Num(42) {
		t.Fatalf("got %v", v)
	}
}

func TestObjectMemberAccess(t *testing.T) {
	v := run(t, `{a: 1, b: 2}.b`)
	if v != value.Num(2) {
		t.Fatalf("got %v", v)
	}
}

func TestArrayIndex(t *testing.T) {
	v := run(t, `[10, 20, 30][1]`)
	if v != value.Num(20) {
		t.Fatalf("got %v", v)
	}
}

func TestObjectMergeOperator(t *testing.T) {
	v := run(t, `{a: 1, b: 2} + {b: 3, c: 4}`)
	obj := v.(*value.Obj)
	keys := obj.VisibleKeys()
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Fatalf("got keys %v", keys)
	}
	m, _ := obj.Get("b")
	bv, _ := m.Cell.Force()
	if bv != value.Num(3) {
		t.Fatalf("expected right side to win on collision, got %v", bv)
	}
}

func TestLazyObjectFieldNeverForced(t *testing.T) {
	// b refers to an unbound name, so forcing it would fail the evaluation.
	src := `local x = {a: 1, b: nope}; x.a`
	node, err := lang.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithDepthCounter(context.Background())
	v, err := Eval(ctx, node, NewRootScope(nil))
	if err != nil {
		t.Fatal(err)
	}
	if v != value.Num(1) {
		t.Fatalf("got %v", v)
	}
}

func TestUndefinedVariableErrors(t *testing.T) {
	node, err := lang.Parse("nope")
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithDepthCounter(context.Background())
	_, err = Eval(ctx, node, NewRootScope(nil))
	if err == nil {
		t.Fatalf("expected undefined variable error")
	}
}
