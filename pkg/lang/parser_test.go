package lang

import (
	"testing"

	"github.com/dsonnet-io/dsonnet/pkg/ast"
)

func parse(t *testing.T, src string) *ast.Node {
	t.Helper()
	node, err := Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return node
}

func TestParseLiterals(t *testing.T) {
	if n := parse(t, "42"); n.Kind != ast.KNum || n.Num != 42 {
		t.Fatalf("got %+v", n)
	}
	if n := parse(t, `"hi"`); n.Kind != ast.KStr || n.Str != "hi" {
		t.Fatalf("got %+v", n)
	}
	if n := parse(t, "true"); n.Kind != ast.KBool || !n.Bool {
		t.Fatalf("got %+v", n)
	}
	if n := parse(t, "null"); n.Kind != ast.KNull {
		t.Fatalf("got %+v", n)
	}
}

func TestParsePrecedence(t *testing.T) {
	n := parse(t, "1 + 2 * 3")
	if n.Kind != ast.KBinary || n.Op != "+" {
		t.Fatalf("expected top-level +, got %+v", n)
	}
	if n.R.Kind != ast.KBinary || n.R.Op != "*" {
		t.Fatalf("expected * nested under +, got %+v", n.R)
	}
}

func TestParseLocalChain(t *testing.T) {
	n := parse(t, "local a = 1; local b = 2; a + b")
	if n.Kind != ast.KLocal || n.Name != "a" {
		t.Fatalf("got %+v", n)
	}
	if n.Body.Kind != ast.KLocal || n.Body.Name != "b" {
		t.Fatalf("expected nested local for b, got %+v", n.Body)
	}
}

func TestParseLambda(t *testing.T) {
	n := parse(t, "function(x, y) x + y")
	if n.Kind != ast.KLambda || len(n.Params) != 2 {
		t.Fatalf("got %+v", n)
	}
}

func TestParseObjectWithComputedKey(t *testing.T) {
	n := parse(t, `{a: 1, [b]: 2}`)
	if n.Kind != ast.KObject || len(n.Fields) != 2 {
		t.Fatalf("got %+v", n)
	}
	if n.Fields[0].Name != "a" {
		t.Fatalf("expected first field named a, got %+v", n.Fields[0])
	}
	if n.Fields[1].Computed == nil {
		t.Fatalf("expected second field to carry a computed key")
	}
}

func TestParseMemberAndIndexChain(t *testing.T) {
	n := parse(t, "a.b[0]")
	if n.Kind != ast.KIndex {
		t.Fatalf("got %+v", n)
	}
	if n.Target.Kind != ast.KMember || n.Target.Name != "b" {
		t.Fatalf("expected member access under index, got %+v", n.Target)
	}
}

func TestParseCall(t *testing.T) {
	n := parse(t, "f(1, 2)")
	if n.Kind != ast.KCall || len(n.Args) != 2 {
		t.Fatalf("got %+v", n)
	}
}

func TestParseUnterminatedStringErrors(t *testing.T) {
	if _, err := Parse(`"unterminated`); err == nil {
		t.Fatalf("expected a parse error for an unterminated string literal")
	}
}
