package stdlib

import (
	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// xmlFns exposes the engine's Badgerfish XML convention (pkg/codec's
// xmlCodec) as callable functions, for scripts that want to parse or
// produce an XML fragment inline rather than only at the document
// boundary.
func xmlFns(env *Env) []fnEntry {
	return []fnEntry{
		{"parse", native("parse", xmlParse(env))},
		{"stringify", native("stringify", xmlStringify(env))},
	}
}

var xmlMediaType = mediatype.New("application", "xml", nil)

func xmlParse(env *Env) value.FuncImpl {
	return func(args []value.Value) (value.Value, error) {
		s, err := stringArg("parse", args)
		if err != nil {
			return nil, err
		}
		v, rerr := env.Registry.Read([]byte(s), xmlMediaType)
		if rerr != nil {
			return nil, rerr
		}
		return v, nil
	}
}

func xmlStringify(env *Env) value.FuncImpl {
	return func(args []value.Value) (value.Value, error) {
		if err := wantArgs("stringify", args, 1); err != nil {
			return nil, err
		}
		data, werr := env.Registry.Write(args[0], xmlMediaType)
		if werr != nil {
			return nil, werr
		}
		return value.Str(data), nil
	}
}
