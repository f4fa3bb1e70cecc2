package stdlib_test

import (
	"testing"

	"github.com/dsonnet-io/dsonnet/pkg/value"
)

func TestRegexTest(t *testing.T) {
	wantBool(t, `ds.regex.test("hello123", "\\d+")`, true)
	wantBool(t, `ds.regex.test("hello", "\\d+")`, false)
}

func TestRegexMatch(t *testing.T) {
	v := run(t, `ds.regex.match("a1 b2 c3", "[a-z]\\d")`)
	arr, ok := v.(*value.Arr)
	if !ok || arr.Len() != 3 {
		t.Fatalf("match: got %v", v)
	}
}

func TestRegexReplace(t *testing.T) {
	wantStrVal(t, `ds.regex.replace("aaa", "a", "b")`, "bbb")
}

func TestRegexSplit(t *testing.T) {
	v := run(t, `ds.regex.split("a1b2c3d", "\\d")`)
	arr, ok := v.(*value.Arr)
	if !ok || arr.Len() != 4 {
		t.Fatalf("split: got %v", v)
	}
}
