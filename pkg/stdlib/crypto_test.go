package stdlib_test

import "testing"

func TestCryptoHashSHA256(t *testing.T) {
	wantStrVal(t, `ds.crypto.hash("abc", "sha256")`,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
}

func TestCryptoHashUnsupportedAlgorithm(t *testing.T) {
	if err := runErr(t, `ds.crypto.hash("abc", "crc32")`); err == nil {
		t.Fatalf("expected an error for an unsupported digest algorithm")
	}
}

func TestCryptoHMACDeterministic(t *testing.T) {
	a := run(t, `ds.crypto.hmac("payload", "secret", "sha256")`)
	b := run(t, `ds.crypto.hmac("payload", "secret", "sha256")`)
	if valueString(t, a) != valueString(t, b) {
		t.Fatalf("hmac with identical inputs should be deterministic, got %v and %v", a, b)
	}
	if valueString(t, a) == "" {
		t.Fatalf("expected a non-empty hmac digest")
	}
}

func TestCryptoEncryptDecryptRoundTrip(t *testing.T) {
	out := run(t, `
local key = "0123456789abcdef";
local enc = ds.crypto.encrypt("a secret message", key);
ds.crypto.decrypt(enc, key)
`)
	if valueString(t, out) != "a secret message" {
		t.Fatalf("got %v", out)
	}
}

func TestCryptoDecryptTooShort(t *testing.T) {
	if err := runErr(t, `ds.crypto.decrypt("ab", "0123456789abcdef")`); err == nil {
		t.Fatalf("expected an error decrypting a ciphertext shorter than the nonce")
	}
}
