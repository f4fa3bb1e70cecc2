package stdlib

import (
	"net/url"

	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// urlFns wraps net/url's percent-encoding, component-safe and unsafe per
// the "encodeComponent" distinction most transformation languages in
// this space expose.
func urlFns() []fnEntry {
	return []fnEntry{
		{"encode", native("encode", urlEncode)},
		{"decode", native("decode", urlDecode)},
		{"encodeComponent", native("encodeComponent", urlEncodeComponent)},
		{"decodeComponent", native("decodeComponent", urlDecodeComponent)},
	}
}

func urlEncode(args []value.Value) (value.Value, error) {
	s, err := stringArg("encode", args)
	if err != nil {
		return nil, err
	}
	return value.Str((&url.URL{Path: string(s)}).EscapedPath()), nil
}

func urlDecode(args []value.Value) (value.Value, error) {
	s, err := stringArg("decode", args)
	if err != nil {
		return nil, err
	}
	u, perr := url.Parse(string(s))
	if perr != nil {
		return nil, dserr.Newf(dserr.DomainError, "not a valid encoded URL component: %q", string(s))
	}
	return value.Str(u.Path), nil
}

func urlEncodeComponent(args []value.Value) (value.Value, error) {
	s, err := stringArg("encodeComponent", args)
	if err != nil {
		return nil, err
	}
	return value.Str(url.QueryEscape(string(s))), nil
}

func urlDecodeComponent(args []value.Value) (value.Value, error) {
	s, err := stringArg("decodeComponent", args)
	if err != nil {
		return nil, err
	}
	out, derr := url.QueryUnescape(string(s))
	if derr != nil {
		return nil, dserr.Newf(dserr.DomainError, "not a valid encoded URL component: %q", string(s))
	}
	return value.Str(out), nil
}
