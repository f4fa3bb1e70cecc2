package stdlib

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"io"

	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// cryptoFns exposes digest, HMAC and AES primitives as black-box
// transforms over crypto/*: never reimplemented, only wired.
func cryptoFns() []fnEntry {
	return []fnEntry{
		{"hash", native("hash", cryptoHash)},
		{"hmac", native("hmac", cryptoHMAC)},
		{"encrypt", native("encrypt", cryptoEncrypt)},
		{"decrypt", native("decrypt", cryptoDecrypt)},
	}
}

func hasherFor(algo string) (func() hash.Hash, error) {
	switch algo {
	case "md5", "MD5":
		return md5.New, nil
	case "sha1", "SHA1", "sha-1", "SHA-1":
		return sha1.New, nil
	case "sha256", "SHA256", "sha-256", "SHA-256":
		return sha256.New, nil
	case "sha512", "SHA512", "sha-512", "SHA-512":
		return sha512.New, nil
	default:
		return nil, dserr.Newf(dserr.DomainError, "unsupported digest algorithm: %q", algo)
	}
}

func cryptoHash(args []value.Value) (value.Value, error) {
	if err := wantArgs("hash", args, 2); err != nil {
		return nil, err
	}
	data, err := wantStr("hash", args[0])
	if err != nil {
		return nil, err
	}
	algo, err := wantStr("hash", args[1])
	if err != nil {
		return nil, err
	}
	newHash, herr := hasherFor(string(algo))
	if herr != nil {
		return nil, herr
	}
	h := newHash()
	h.Write([]byte(data))
	return value.Str(hex.EncodeToString(h.Sum(nil))), nil
}

func cryptoHMAC(args []value.Value) (value.Value, error) {
	if err := wantArgs("hmac", args, 3); err != nil {
		return nil, err
	}
	data, err := wantStr("hmac", args[0])
	if err != nil {
		return nil, err
	}
	key, err := wantStr("hmac", args[1])
	if err != nil {
		return nil, err
	}
	algo, err := wantStr("hmac", args[2])
	if err != nil {
		return nil, err
	}
	newHash, herr := hasherFor(string(algo))
	if herr != nil {
		return nil, herr
	}
	mac := hmac.New(newHash, []byte(key))
	mac.Write([]byte(data))
	return value.Str(hex.EncodeToString(mac.Sum(nil))), nil
}

// aesGCM builds an AES-GCM cipher keyed by key, padding/truncating isn't
// performed — the key must already be 16, 24 or 32 bytes (AES-128/192/256).
func aesGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, dserr.Newf(dserr.DomainError, "invalid AES key: %v", err)
	}
	return cipher.NewGCM(block)
}

func cryptoEncrypt(args []value.Value) (value.Value, error) {
	if err := wantArgs("encrypt", args, 2); err != nil {
		return nil, err
	}
	plaintext, err := wantStr("encrypt", args[0])
	if err != nil {
		return nil, err
	}
	key, err := wantStr("encrypt", args[1])
	if err != nil {
		return nil, err
	}
	gcm, gerr := aesGCM([]byte(key))
	if gerr != nil {
		return nil, gerr
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, rerr := io.ReadFull(rand.Reader, nonce); rerr != nil {
		return nil, dserr.Newf(dserr.DomainError, "could not generate nonce: %v", rerr)
	}
	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return value.Str(hex.EncodeToString(sealed)), nil
}

func cryptoDecrypt(args []value.Value) (value.Value, error) {
	if err := wantArgs("decrypt", args, 2); err != nil {
		return nil, err
	}
	ciphertextHex, err := wantStr("decrypt", args[0])
	if err != nil {
		return nil, err
	}
	key, err := wantStr("decrypt", args[1])
	if err != nil {
		return nil, err
	}
	raw, herr := hex.DecodeString(string(ciphertextHex))
	if herr != nil {
		return nil, dserr.Newf(dserr.DomainError, "not valid hex: %v", herr)
	}
	gcm, gerr := aesGCM([]byte(key))
	if gerr != nil {
		return nil, gerr
	}
	n := gcm.NonceSize()
	if len(raw) < n {
		return nil, dserr.New(dserr.DomainError, "ciphertext too short")
	}
	nonce, body := raw[:n], raw[n:]
	plain, derr := gcm.Open(nil, nonce, body, nil)
	if derr != nil {
		return nil, dserr.Newf(dserr.DomainError, "decryption failed: %v", derr)
	}
	return value.Str(plain), nil
}
