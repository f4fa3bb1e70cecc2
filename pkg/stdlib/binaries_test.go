package stdlib_test

import "testing"

func TestBinariesBase64RoundTrip(t *testing.T) {
	wantStrVal(t, `ds.binaries.toBase64("hello world")`, "aGVsbG8gd29ybGQ=")
	wantStrVal(t, `ds.binaries.fromBase64("aGVsbG8gd29ybGQ=")`, "hello world")
}

func TestBinariesHexRoundTrip(t *testing.T) {
	wantStrVal(t, `ds.binaries.toHex("abc")`, "616263")
	wantStrVal(t, `ds.binaries.fromHex("616263")`, "abc")
}

func TestBinariesFromHexInvalid(t *testing.T) {
	if err := runErr(t, `ds.binaries.fromHex("zz")`); err == nil {
		t.Fatalf("expected an error decoding a non-hex string")
	}
}

func TestBinariesFromBase64Invalid(t *testing.T) {
	if err := runErr(t, `ds.binaries.fromBase64("not valid base64!!")`); err == nil {
		t.Fatalf("expected an error decoding invalid base64")
	}
}
