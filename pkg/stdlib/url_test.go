package stdlib_test

import "testing"

func TestURLEncodeComponentRoundTrip(t *testing.T) {
	encoded := run(t, `ds.url.encodeComponent("a b+c/d")`)
	decoded := run(t, `ds.url.decodeComponent(`+`"`+valueString(t, encoded)+`"`+`)`)
	if valueString(t, decoded) != "a b+c/d" {
		t.Fatalf("got %v", decoded)
	}
}

func TestURLEncodeComponentSpace(t *testing.T) {
	wantStrVal(t, `ds.url.encodeComponent("a b")`, "a+b")
}

func TestURLEncodePath(t *testing.T) {
	wantStrVal(t, `ds.url.encode("a b/c")`, "a%20b/c")
}

func TestURLDecodeComponentInvalid(t *testing.T) {
	if err := runErr(t, `ds.url.decodeComponent("%zz")`); err == nil {
		t.Fatalf("expected an error decoding an invalid percent-escape")
	}
}
