// Package mediatype implements the (type, subtype, parameters) triple
// that drives codec selection, following RFC-7231 grammar closely
// enough for the engine's needs — this is deliberately not a full
// MIME-parameter parser (quoted-string escaping, comments); only the
// type/subtype/q-value/parameter shape is load-bearing here.
package mediatype

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// QualityParam is the distinguished parameter used to rank candidates.
const QualityParam = "q"

// MediaType is a type/subtype pair plus an insertion-ordered parameter
// map. Two MediaTypes are the "same index" iff Type and Subtype match;
// parameters (including q) do not affect the index.
type MediaType struct {
	Type      string
	Subtype   string
	paramKeys []string
	params    map[string]string
}

// Any is the wildcard media type used as the default output negotiation
// candidate when a script declares no `output` header line.
var Any = MediaType{Type: "*", Subtype: "*"}

// New builds a MediaType with the given parameters applied in sorted key
// order; for any other parameter order, build the MediaType with
// WithParam calls in sequence.
func New(typ, subtype string, params map[string]string) MediaType {
	mt := MediaType{Type: typ, Subtype: subtype, params: map[string]string{}}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		mt.paramKeys = append(mt.paramKeys, k)
		mt.params[k] = params[k]
	}
	return mt
}

// Parse parses "type/subtype;k=v;k2=v2" into a MediaType.
func Parse(s string) (MediaType, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ";")
	typeSub := strings.SplitN(strings.TrimSpace(parts[0]), "/", 2)
	if len(typeSub) != 2 || typeSub[0] == "" || typeSub[1] == "" {
		return MediaType{}, fmt.Errorf("invalid media type: %q", s)
	}
	mt := MediaType{
		Type:    strings.ToLower(strings.TrimSpace(typeSub[0])),
		Subtype: strings.ToLower(strings.TrimSpace(typeSub[1])),
		params:  map[string]string{},
	}
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			return MediaType{}, fmt.Errorf("invalid media type parameter: %q", p)
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		v := strings.Trim(strings.TrimSpace(kv[1]), `"`)
		mt = mt.WithParam(k, v)
	}
	return mt, nil
}

// WithParam returns a copy of mt with key=value set (appended if new,
// replaced in place if key already exists).
func (mt MediaType) WithParam(key, v string) MediaType {
	cp := mt
	cp.params = make(map[string]string, len(mt.params)+1)
	cp.paramKeys = append([]string(nil), mt.paramKeys...)
	for k, pv := range mt.params {
		cp.params[k] = pv
	}
	if _, exists := cp.params[key]; !exists {
		cp.paramKeys = append(cp.paramKeys, key)
	}
	cp.params[key] = v
	return cp
}

// Param returns the value of a parameter and whether it was present.
func (mt MediaType) Param(key string) (string, bool) {
	v, ok := mt.params[key]
	return v, ok
}

// Params returns parameters in insertion order as (key,value) pairs.
func (mt MediaType) Params() []KV {
	out := make([]KV, 0, len(mt.paramKeys))
	for _, k := range mt.paramKeys {
		out = append(out, KV{k, mt.params[k]})
	}
	return out
}

// KV is a single parameter key/value pair.
type KV struct {
	Key   string
	Value string
}

// Quality returns the q parameter, defaulting to 1.0 when absent or
// unparsable.
func (mt MediaType) Quality() float64 {
	v, ok := mt.params[QualityParam]
	if !ok {
		return 1.0
	}
	q, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 1.0
	}
	return q
}

// SameIndex reports whether two media types share the same (type,
// subtype) pair, the notion of "index" pkg/header uses for parameter
// layering. Matching against Any's wildcard subtype/type is treated as
// matching anything.
func (mt MediaType) SameIndex(other MediaType) bool {
	if mt.Type == "*" || other.Type == "*" {
		if mt.Subtype == "*" || other.Subtype == "*" {
			return true
		}
	}
	return strings.EqualFold(mt.Type, other.Type) && strings.EqualFold(mt.Subtype, other.Subtype)
}

// Merge layers other's parameters over mt's (other wins on collision),
// returning a new MediaType with mt's (type, subtype).
func (mt MediaType) Merge(other MediaType) MediaType {
	out := mt
	for _, kv := range other.Params() {
		out = out.WithParam(kv.Key, kv.Value)
	}
	return out
}

// SortByQuality stable-sorts media types by descending quality value,
// highest first (ties keep their relative order).
func SortByQuality(mts []MediaType) {
	sort.SliceStable(mts, func(i, j int) bool {
		return mts[i].Quality() > mts[j].Quality()
	})
}

// String renders "type/subtype;k=v;...".
func (mt MediaType) String() string {
	var b strings.Builder
	b.WriteString(mt.Type)
	b.WriteByte('/')
	b.WriteString(mt.Subtype)
	for _, kv := range mt.Params() {
		b.WriteByte(';')
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(kv.Value)
	}
	return b.String()
}

// Index is the (type,subtype) comparison key used by the header and
// codec registry to group/merge same-kind media types.
func (mt MediaType) Index() string {
	return strings.ToLower(mt.Type) + "/" + strings.ToLower(mt.Subtype)
}
