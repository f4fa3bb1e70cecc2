package cache

import (
	"errors"
	"strconv"
	"testing"

	"github.com/dsonnet-io/dsonnet/pkg/ast"
)

func TestGetOrCompileCachesAcrossCalls(t *testing.T) {
	c := New(4)
	calls := 0
	parse := func() (*ast.Node, error) {
		calls++
		return &ast.Node{Kind: ast.KNum, Num: 42}, nil
	}

	n1, err := c.GetOrCompile("1+1", parse)
	if err != nil {
		t.Fatal(err)
	}
	n2, err := c.GetOrCompile("1+1", parse)
	if err != nil {
		t.Fatal(err)
	}
	if n1 != n2 {
		t.Fatalf("expected the same cached node, got %p and %p", n1, n2)
	}
	if calls != 1 {
		t.Fatalf("parse should run once for a cache hit, ran %d times", calls)
	}
}

func TestGetOrCompileDoesNotCacheErrors(t *testing.T) {
	c := New(4)
	boom := errors.New("boom")
	calls := 0
	parse := func() (*ast.Node, error) {
		calls++
		return nil, boom
	}

	if _, err := c.GetOrCompile("bad", parse); err != boom {
		t.Fatalf("got %v", err)
	}
	if _, err := c.GetOrCompile("bad", parse); err != boom {
		t.Fatalf("got %v", err)
	}
	if calls != 2 {
		t.Fatalf("a failed parse should not be cached, ran %d times", calls)
	}
}

func TestInvalidateAndClear(t *testing.T) {
	c := New(4)
	c.Set("a", &ast.Node{Kind: ast.KNull})
	c.Set("b", &ast.Node{Kind: ast.KNull})
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected a to be evicted")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after invalidate, got %d", c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("expected 0 entries after clear, got %d", c.Len())
	}
}

func TestDefaultCapacity(t *testing.T) {
	c := New(0)
	if c.inner.Len() != 0 {
		t.Fatalf("expected an empty cache")
	}
	for i := 0; i < 257; i++ {
		c.Set(strconv.Itoa(i), &ast.Node{Kind: ast.KNull})
	}
	if c.Len() != 256 {
		t.Fatalf("expected the default capacity of 256 entries, got %d", c.Len())
	}
}
