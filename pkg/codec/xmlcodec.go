package codec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// xmlCodec reads/writes application/xml using a Badgerfish-style
// convention: attributes become "@name" keys, an element with neither
// attributes nor child elements becomes its text as a plain string,
// otherwise text content becomes "_text" (omitted when empty or
// whitespace-only), and a repeated child element name becomes an array. The
// document root is wrapped under its own element name so round-tripping
// preserves the root tag.
//
// This mapping convention, not the XML grammar itself, is what matters
// here — the codec internals only need to honor the read/write
// boundary the registry expects.
type xmlCodec struct{}

// RegisterXML installs the XML reader/writer into reg.
func RegisterXML(reg *Registry) {
	c := xmlCodec{}
	reg.RegisterReader("application/xml", c)
	reg.RegisterWriter("application/xml", c)
}

func (xmlCodec) Accepts(mediatype.MediaType) bool { return true }

const xmlTextKey = "_text"

func (xmlCodec) Read(data []byte, mt mediatype.MediaType) (value.Value, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("xml: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			v, err := decodeXMLElement(dec, start)
			if err != nil {
				return nil, err
			}
			root := value.NewObj()
			root.SetValue(start.Name.Local, v)
			return root, nil
		}
	}
}

func decodeXMLElement(dec *xml.Decoder, start xml.StartElement) (value.Value, error) {
	obj := value.NewObj()
	for _, attr := range start.Attr {
		obj.SetValue("@"+attr.Name.Local, value.Str(attr.Value))
	}

	order := map[string]int{}
	var textBuf strings.Builder

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			textBuf.Write(t)
		case xml.StartElement:
			childVal, err := decodeXMLElement(dec, t)
			if err != nil {
				return nil, err
			}
			name := t.Name.Local
			if _, seen := order[name]; seen {
				existing, _ := obj.Get(name)
				ev, _ := existing.Cell.Force()
				if arr, ok := ev.(*value.Arr); ok {
					arr.Elems = append(arr.Elems, value.NewCell(childVal))
				} else {
					obj.Set(name, value.VisNormal, value.NewCell(value.NewArr(value.NewCell(ev), value.NewCell(childVal))))
				}
			} else {
				order[name] = len(order)
				obj.SetValue(name, childVal)
			}
		case xml.EndElement:
			text := strings.TrimSpace(textBuf.String())
			if len(order) == 0 && len(start.Attr) == 0 {
				return value.Str(text), nil
			}
			if text != "" {
				obj.SetValue(xmlTextKey, value.Str(text))
			}
			return obj, nil
		}
	}
}

func (xmlCodec) Write(v value.Value, mt mediatype.MediaType) ([]byte, error) {
	obj, ok := v.(*value.Obj)
	if !ok {
		return nil, value.TypeError("object", v)
	}
	keys := obj.VisibleKeys()
	if len(keys) != 1 {
		return nil, fmt.Errorf("xml: root object must have exactly one key (the document root element), got %d", len(keys))
	}
	root := keys[0]
	m, _ := obj.Get(root)
	rv, err := m.Cell.Force()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	if err := encodeXMLElement(&buf, root, rv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXMLElement(buf *bytes.Buffer, name string, v value.Value) error {
	obj, ok := v.(*value.Obj)
	if !ok {
		buf.WriteByte('<')
		buf.WriteString(name)
		buf.WriteByte('>')
		xml.EscapeText(buf, []byte(scalarToXMLText(v)))
		buf.WriteString("</")
		buf.WriteString(name)
		buf.WriteByte('>')
		return nil
	}

	buf.WriteByte('<')
	buf.WriteString(name)
	var children []string
	var text string
	for _, k := range obj.VisibleKeys() {
		m, _ := obj.Get(k)
		cv, err := m.Cell.Force()
		if err != nil {
			return err
		}
		switch {
		case strings.HasPrefix(k, "@"):
			buf.WriteByte(' ')
			buf.WriteString(k[1:])
			buf.WriteString(`="`)
			xml.EscapeText(buf, []byte(scalarToXMLText(cv)))
			buf.WriteByte('"')
		case k == xmlTextKey:
			text = scalarToXMLText(cv)
		default:
			children = append(children, k)
		}
	}
	buf.WriteByte('>')
	for _, k := range children {
		m, _ := obj.Get(k)
		cv, _ := m.Cell.Force()
		if arr, ok := cv.(*value.Arr); ok {
			elems, err := arr.Force()
			if err != nil {
				return err
			}
			for _, e := range elems {
				if err := encodeXMLElement(buf, k, e); err != nil {
					return err
				}
			}
		} else {
			if err := encodeXMLElement(buf, k, cv); err != nil {
				return err
			}
		}
	}
	if text != "" {
		xml.EscapeText(buf, []byte(text))
	}
	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteByte('>')
	return nil
}

func scalarToXMLText(v value.Value) string {
	if value.IsNull(v) {
		return ""
	}
	if s, ok := value.CoerceScalar(v); ok {
		return s
	}
	return ""
}
