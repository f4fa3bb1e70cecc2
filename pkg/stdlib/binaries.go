package stdlib

import (
	"encoding/base64"
	"encoding/hex"

	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// binariesFns exposes byte-encoding transforms as black-box
// transformations on bytes, built on the standard library's
// encoding/base64 and encoding/hex rather than reimplemented.
func binariesFns() []fnEntry {
	return []fnEntry{
		{"toBase64", native("toBase64", binToBase64)},
		{"fromBase64", native("fromBase64", binFromBase64)},
		{"toHex", native("toHex", binToHex)},
		{"fromHex", native("fromHex", binFromHex)},
	}
}

func binToBase64(args []value.Value) (value.Value, error) {
	if err := wantArgs("toBase64", args, 1); err != nil {
		return nil, err
	}
	s, err := wantStr("toBase64", args[0])
	if err != nil {
		return nil, err
	}
	return value.Str(base64.StdEncoding.EncodeToString([]byte(s))), nil
}

func binFromBase64(args []value.Value) (value.Value, error) {
	if err := wantArgs("fromBase64", args, 1); err != nil {
		return nil, err
	}
	s, err := wantStr("fromBase64", args[0])
	if err != nil {
		return nil, err
	}
	b, derr := base64.StdEncoding.DecodeString(string(s))
	if derr != nil {
		return nil, dserr.Newf(dserr.DomainError, "not valid base64: %v", derr)
	}
	return value.Str(b), nil
}

func binToHex(args []value.Value) (value.Value, error) {
	if err := wantArgs("toHex", args, 1); err != nil {
		return nil, err
	}
	s, err := wantStr("toHex", args[0])
	if err != nil {
		return nil, err
	}
	return value.Str(hex.EncodeToString([]byte(s))), nil
}

func binFromHex(args []value.Value) (value.Value, error) {
	if err := wantArgs("fromHex", args, 1); err != nil {
		return nil, err
	}
	s, err := wantStr("fromHex", args[0])
	if err != nil {
		return nil, err
	}
	b, derr := hex.DecodeString(string(s))
	if derr != nil {
		return nil, dserr.Newf(dserr.DomainError, "not valid hex: %v", derr)
	}
	return value.Str(b), nil
}
