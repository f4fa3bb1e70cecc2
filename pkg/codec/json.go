package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// jsonCodec reads/writes application/json, preserving object key
// insertion order via token-level decoding (json.Unmarshal into
// map[string]interface{} would discard it, which object semantics here
// forbid: "visible-key iteration order... must be stable across all derived
// objects", and that starts with the order documents arrive in).
type jsonCodec struct{}

// RegisterJSON installs the JSON reader/writer into reg.
func RegisterJSON(reg *Registry) {
	c := jsonCodec{}
	reg.RegisterReader("application/json", c)
	reg.RegisterWriter("application/json", c)
}

func (jsonCodec) Accepts(mediatype.MediaType) bool { return true }

func (jsonCodec) Read(data []byte, mt mediatype.MediaType) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (value.Value, error) {
	switch t := tok.(type) {
	case nil:
		return value.Nil, nil
	case bool:
		return value.Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return value.Num(f), nil
	case string:
		return value.Str(t), nil
	case json.Delim:
		switch t {
		case '[':
			var cells []*value.Cell
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				cells = append(cells, value.NewCell(v))
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return value.NewArr(cells...), nil
		case '{':
			obj := value.NewObj()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected string object key, got %v", keyTok)
				}
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.SetValue(key, v)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token: %v", tok)
}

func (jsonCodec) Write(v value.Value, mt mediatype.MediaType) ([]byte, error) {
	var buf bytes.Buffer
	indent, hasIndent := mt.Param("indent")
	if err := encodeJSONValue(&buf, v); err != nil {
		return nil, err
	}
	if !hasIndent || indent == "" {
		return buf.Bytes(), nil
	}
	n, err := strconv.Atoi(indent)
	if err != nil || n <= 0 {
		return buf.Bytes(), nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", spaces(n)); err != nil {
		return buf.Bytes(), nil
	}
	return pretty.Bytes(), nil
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func encodeJSONValue(buf *bytes.Buffer, v value.Value) error {
	if value.IsNull(v) {
		buf.WriteString("null")
		return nil
	}
	switch t := v.(type) {
	case value.Bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case value.Num:
		b, err := json.Marshal(float64(t))
		if err != nil {
			return err
		}
		buf.Write(b)
	case value.Str:
		b, err := json.Marshal(string(t))
		if err != nil {
			return err
		}
		buf.Write(b)
	case *value.Arr:
		buf.WriteByte('[')
		for i, c := range t.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			ev, err := c.Force()
			if err != nil {
				return err
			}
			if err := encodeJSONValue(buf, ev); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *value.Obj:
		buf.WriteByte('{')
		for i, k := range t.VisibleKeys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			m, _ := t.Get(k)
			mv, err := m.Cell.Force()
			if err != nil {
				return err
			}
			if err := encodeJSONValue(buf, mv); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case *value.Func:
		return fmt.Errorf("cannot serialize a function value to JSON")
	default:
		return fmt.Errorf("cannot serialize value of kind %s", v.PrettyName())
	}
	return nil
}
