package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// csvCodec reads/writes application/csv as an array of row objects keyed
// by the header row, matching the shape a map/filter/groupBy pipeline
// over tabular data expects. Recognized parameters: "separator" (single
// character, default ","), "header" ("true"/"false", default "true").
type csvCodec struct{}

// RegisterCSV installs the CSV reader/writer into reg.
func RegisterCSV(reg *Registry) {
	c := csvCodec{}
	reg.RegisterReader("application/csv", c)
	reg.RegisterWriter("application/csv", c)
}

func (csvCodec) Accepts(mediatype.MediaType) bool { return true }

func separatorOf(mt mediatype.MediaType) rune {
	if s, ok := mt.Param("separator"); ok && len(s) > 0 {
		return rune(s[0])
	}
	return ','
}

func hasHeaderOf(mt mediatype.MediaType) bool {
	if s, ok := mt.Param("header"); ok {
		return s != "false"
	}
	return true
}

func (csvCodec) Read(data []byte, mt mediatype.MediaType) (value.Value, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = separatorOf(mt)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(rows) == 0 {
		return value.NewArr(), nil
	}

	withHeader := hasHeaderOf(mt)
	var headers []string
	start := 0
	if withHeader {
		headers = rows[0]
		start = 1
	} else {
		headers = make([]string, len(rows[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("column%d", i+1)
		}
	}

	cells := make([]*value.Cell, 0, len(rows)-start)
	for _, row := range rows[start:] {
		obj := value.NewObj()
		for i, col := range row {
			name := fmt.Sprintf("column%d", i+1)
			if i < len(headers) {
				name = headers[i]
			}
			obj.SetValue(name, value.Str(col))
		}
		cells = append(cells, value.NewCell(obj))
	}
	return value.NewArr(cells...), nil
}

func (csvCodec) Write(v value.Value, mt mediatype.MediaType) ([]byte, error) {
	arr, ok := v.(*value.Arr)
	if !ok {
		return nil, value.TypeError("array", v)
	}

	rows, err := arr.Force()
	if err != nil {
		return nil, err
	}

	var headers []string
	seen := map[string]bool{}
	for _, rv := range rows {
		obj, ok := rv.(*value.Obj)
		if !ok {
			return nil, value.TypeError("array of objects", rv)
		}
		for _, k := range obj.VisibleKeys() {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = separatorOf(mt)

	if hasHeaderOf(mt) {
		if err := w.Write(headers); err != nil {
			return nil, err
		}
	}
	for _, rv := range rows {
		obj := rv.(*value.Obj)
		record := make([]string, len(headers))
		for i, h := range headers {
			m, ok := obj.Get(h)
			if !ok {
				continue
			}
			cv, err := m.Cell.Force()
			if err != nil {
				return nil, err
			}
			record[i] = csvScalar(cv)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func csvScalar(v value.Value) string {
	if value.IsNull(v) {
		return ""
	}
	if s, ok := value.CoerceScalar(v); ok {
		return s
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}
