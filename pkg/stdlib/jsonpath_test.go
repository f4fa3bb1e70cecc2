package stdlib_test

import (
	"testing"

	"github.com/dsonnet-io/dsonnet/pkg/value"
)

func TestJsonpathSelect(t *testing.T) {
	src := `ds.jsonpath.select({store: {book: [{title: "a"}, {title: "b"}]}}, "$.store.book[0].title")`
	wantStrVal(t, src, "a")
}

func TestJsonpathSelectUnresolvedReturnsNull(t *testing.T) {
	src := `ds.jsonpath.select({a: 1}, "$.missing.path")`
	v := run(t, src)
	if !value.IsNull(v) {
		t.Fatalf("select on an unresolved path should return null, got %v", v)
	}
}

func TestJsonpathSelectAllWrapsScalar(t *testing.T) {
	v := run(t, `ds.jsonpath.selectAll({a: {b: 1}}, "$.a.b")`)
	wantArrNums(t, v, 1)
}
