package codec

import (
	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// Registry holds reader and writer plugins, each advertising the
// (type, subtype) index they handle. Selection:
//  1. compute the merged media type (done by the header, upstream of
//     the registry — the registry only ever sees an already-merged mt);
//  2. among plugins whose index matches, pick the first that Accepts the
//     concrete parameters, trying registration order;
//  3. if none qualify, raise CodecNotFound.
type Registry struct {
	readers []namedReader
	writers []namedWriter
}

type namedReader struct {
	index string
	r     Reader
}

type namedWriter struct {
	index string
	w     Writer
}

// NewRegistry builds an empty registry; use RegisterReader/RegisterWriter
// (or NewDefaultRegistry for the built-in codec set) to populate it.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterReader adds r under the given (type, subtype) index, in
// registration order (later registrations are tried after earlier ones
// for the same index, so order matters as a tie-break).
func (reg *Registry) RegisterReader(index string, r Reader) {
	reg.readers = append(reg.readers, namedReader{index: index, r: r})
}

// RegisterWriter adds w under the given (type, subtype) index.
func (reg *Registry) RegisterWriter(index string, w Writer) {
	reg.writers = append(reg.writers, namedWriter{index: index, w: w})
}

// Read selects a reader for mt and invokes it on data.
func (reg *Registry) Read(data []byte, mt mediatype.MediaType) (value.Value, error) {
	for _, nr := range reg.readers {
		if !sameIndex(nr.index, mt) {
			continue
		}
		if nr.r.Accepts(mt) {
			v, err := nr.r.Read(data, mt)
			if err != nil {
				return nil, dserr.Wrap(err)
			}
			return v, nil
		}
	}
	return nil, dserr.CodecNotFoundf(mt.Type, mt.Subtype)
}

// Write selects a writer for mt and invokes it on v.
func (reg *Registry) Write(v value.Value, mt mediatype.MediaType) ([]byte, error) {
	for _, nw := range reg.writers {
		if !sameIndex(nw.index, mt) {
			continue
		}
		if nw.w.Accepts(mt) {
			data, err := nw.w.Write(v, mt)
			if err != nil {
				return nil, dserr.Wrap(err)
			}
			return data, nil
		}
	}
	return nil, dserr.CodecNotFoundf(mt.Type, mt.Subtype)
}

func sameIndex(index string, mt mediatype.MediaType) bool {
	return index == "*/*" || index == mt.Index()
}

// NewDefaultRegistry returns a Registry pre-populated with the engine's
// built-in codecs: JSON, CSV, XML, YAML, and plain text.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	RegisterJSON(reg)
	RegisterCSV(reg)
	RegisterXML(reg)
	RegisterYAML(reg)
	RegisterText(reg)
	return reg
}
