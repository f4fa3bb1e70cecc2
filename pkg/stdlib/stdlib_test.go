package stdlib_test

import (
	"context"
	"testing"

	"github.com/dsonnet-io/dsonnet/pkg/codec"
	"github.com/dsonnet-io/dsonnet/pkg/eval"
	"github.com/dsonnet-io/dsonnet/pkg/lang"
	"github.com/dsonnet-io/dsonnet/pkg/stdlib"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// run parses and evaluates src with the `ds` standard library bound at
// the root scope, the way dsonnet.Engine.Transform wires it.
func run(t *testing.T, src string) value.Value {
	t.Helper()
	node, err := lang.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	root := stdlib.Root(&stdlib.Env{Registry: codec.NewDefaultRegistry()})
	scope := eval.NewRootScope(map[string]*value.Cell{"ds": value.NewCell(root)})
	ctx := eval.WithDepthCounter(context.Background())
	v, err := eval.Eval(ctx, node, scope)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	node, err := lang.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	root := stdlib.Root(&stdlib.Env{Registry: codec.NewDefaultRegistry()})
	scope := eval.NewRootScope(map[string]*value.Cell{"ds": value.NewCell(root)})
	ctx := eval.WithDepthCounter(context.Background())
	_, err = eval.Eval(ctx, node, scope)
	return err
}

func wantNum(t *testing.T, src string, want float64) {
	t.Helper()
	v := run(t, src)
	n, ok := v.(value.Num)
	if !ok || float64(n) != want {
		t.Fatalf("%s: got %v, want %v", src, v, want)
	}
}

func wantStrVal(t *testing.T, src string, want string) {
	t.Helper()
	v := run(t, src)
	s, ok := v.(value.Str)
	if !ok || string(s) != want {
		t.Fatalf("%s: got %v, want %q", src, v, want)
	}
}

func wantBool(t *testing.T, src string, want bool) {
	t.Helper()
	v := run(t, src)
	b, ok := v.(value.Bool)
	if !ok || bool(b) != want {
		t.Fatalf("%s: got %v, want %v", src, v, want)
	}
}

func valueString(t *testing.T, v value.Value) string {
	t.Helper()
	s, ok := v.(value.Str)
	if !ok {
		t.Fatalf("got %v, want a string", v)
	}
	return string(s)
}

func wantArrNums(t *testing.T, v value.Value, want ...float64) {
	t.Helper()
	arr, ok := v.(*value.Arr)
	if !ok || arr.Len() != len(want) {
		t.Fatalf("got %v, want array of length %d", v, len(want))
	}
	for i, c := range arr.Elems {
		el, err := c.Force()
		if err != nil {
			t.Fatal(err)
		}
		n, ok := el.(value.Num)
		if !ok || float64(n) != want[i] {
			t.Fatalf("element %d: got %v, want %v", i, el, want[i])
		}
	}
}

func wantArrStrs(t *testing.T, v value.Value, want ...string) {
	t.Helper()
	arr, ok := v.(*value.Arr)
	if !ok || arr.Len() != len(want) {
		t.Fatalf("got %v, want array of length %d", v, len(want))
	}
	for i, c := range arr.Elems {
		el, err := c.Force()
		if err != nil {
			t.Fatal(err)
		}
		s, ok := el.(value.Str)
		if !ok || string(s) != want[i] {
			t.Fatalf("element %d: got %v, want %q", i, el, want[i])
		}
	}
}
