// Package codec implements the format boundary: a pluggable registry of
// reader/writer plugins keyed by media type, selected by (type, subtype)
// index in registration order. Reading turns bytes into a
// value.Value; writing turns a value.Value back into bytes.
//
// The registry is an immutable-after-construction lookup structure safe
// for concurrent use by independent evaluations, keyed on
// mediatype.MediaType instead of expression text.
package codec

import (
	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// Reader turns raw bytes plus a concrete media type into a Value. The
// media-type parameters travel inside mt (already merged by
// Header.ResolveInput).
type Reader interface {
	// Accepts reports whether this reader can handle mt (matched by
	// (type, subtype) index; the registry has already filtered to
	// readers whose advertised index matches before calling Accepts).
	Accepts(mt mediatype.MediaType) bool
	Read(data []byte, mt mediatype.MediaType) (value.Value, error)
}

// Writer turns a Value into bytes for a concrete output media type.
type Writer interface {
	Accepts(mt mediatype.MediaType) bool
	Write(v value.Value, mt mediatype.MediaType) ([]byte, error)
}

// Document is a (bytes, media type) pair, the unit the engine's public
// Transform operation exchanges with its caller.
type Document struct {
	Data      []byte
	MediaType mediatype.MediaType
}
