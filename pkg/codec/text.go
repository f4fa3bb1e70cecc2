package codec

import (
	"fmt"

	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// textCodec reads/writes text/plain: reading wraps the raw bytes in a
// Str value, writing requires a scalar and applies the same coercion
// rule toString uses, so `output text/plain` on a number or boolean
// behaves the way the core `toString` builtin does.
type textCodec struct{}

// RegisterText installs the plain-text reader/writer into reg.
func RegisterText(reg *Registry) {
	c := textCodec{}
	reg.RegisterReader("text/plain", c)
	reg.RegisterWriter("text/plain", c)
}

func (textCodec) Accepts(mediatype.MediaType) bool { return true }

func (textCodec) Read(data []byte, mt mediatype.MediaType) (value.Value, error) {
	return value.Str(string(data)), nil
}

func (textCodec) Write(v value.Value, mt mediatype.MediaType) ([]byte, error) {
	if value.IsNull(v) {
		return []byte(""), nil
	}
	s, ok := value.CoerceScalar(v)
	if !ok {
		return nil, fmt.Errorf("text/plain output requires a scalar value, got %s", v.PrettyName())
	}
	return []byte(s), nil
}
