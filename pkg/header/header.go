// Package header parses the `/** DataSonnet ... */` script prologue
// into this engine's mediatype.MediaType.
package header

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
)

const (
	headerOpen    = "/** DataSonnet"
	commentPrefix = "//"
	inputKeyword  = "input"
	outputKeyword = "output"
	dataformatKw  = "dataformat"
	preserveOrder = "preserveOrder"
)

var (
	inputLine  = regexp.MustCompile(`^(?:input (?P<name>\w+)|input (?P<all>\*)) (?P<mediatype>\S.*)$`)
	outputLine = regexp.MustCompile(`^output (?P<mediatype>\S.*)$`)
)

// Header is the parsed, query-ready form of a script's declarations.
type Header struct {
	PreserveOrder bool

	namedInputs map[string][]mediatype.MediaType
	defaultIn   map[string]mediatype.MediaType
	allInputs   []mediatype.MediaType
	outputs     []mediatype.MediaType
	defaultOut  mediatype.MediaType
	dataFormats []mediatype.MediaType
}

// Empty is the Header for a script with no prologue: preserveOrder
// defaults true, no declared inputs/outputs/dataformats, default output
// is mediatype.Any.
func Empty() *Header {
	return &Header{
		PreserveOrder: true,
		namedInputs:   map[string][]mediatype.MediaType{},
		defaultIn:     map[string]mediatype.MediaType{},
		defaultOut:    mediatype.Any,
	}
}

// Parse extracts and parses the header block from the front of script.
// A script with no header block at all (doesn't start with the
// DataSonnet marker) yields Empty() rather than an error.
func Parse(script string) (*Header, error) {
	trimmed := strings.TrimSpace(script)
	if !strings.HasPrefix(trimmed, headerOpen) {
		return Empty(), nil
	}

	terminus := strings.Index(script, "*/")
	if terminus == -1 {
		return nil, dserr.New(dserr.HeaderParseErr, "Unterminated header. Headers must end with */")
	}
	section := strings.TrimSpace(strings.ReplaceAll(script[:terminus], headerOpen, ""))

	h := Empty()
	inputs := map[string][]mediatype.MediaType{}

	for _, raw := range strings.Split(section, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		switch {
		case line == "":
		case strings.HasPrefix(line, commentPrefix):
		case strings.HasPrefix(line, preserveOrder):
			tokens := strings.SplitN(line, "=", 2)
			if len(tokens) != 2 {
				return nil, dserr.Newf(dserr.HeaderParseErr, "Problem with header formatting in line %s", line)
			}
			h.PreserveOrder, _ = strconv.ParseBool(strings.TrimSpace(tokens[1]))
		case strings.HasPrefix(line, inputKeyword):
			m := inputLine.FindStringSubmatch(line)
			if m == nil {
				return nil, dserr.Newf(dserr.HeaderParseErr, "Unable to parse header line %s, it must follow the input line format", line)
			}
			groups := namedGroups(inputLine, m)
			mt, err := mediatype.Parse(groups["mediatype"])
			if err != nil {
				return nil, dserr.Newf(dserr.HeaderParseErr, "Could not parse media type from header in line %s", line)
			}
			if groups["all"] != "" {
				h.allInputs = append(h.allInputs, mt)
			} else {
				name := groups["name"]
				inputs[name] = append(inputs[name], mt)
			}
		case strings.HasPrefix(line, outputKeyword):
			m := outputLine.FindStringSubmatch(line)
			if m == nil {
				return nil, dserr.Newf(dserr.HeaderParseErr, "Unable to parse header line %s, it must follow the output line format", line)
			}
			groups := namedGroups(outputLine, m)
			mt, err := mediatype.Parse(groups["mediatype"])
			if err != nil {
				return nil, dserr.Newf(dserr.HeaderParseErr, "Could not parse media type from header in line %s", line)
			}
			h.outputs = append(h.outputs, mt)
		case strings.HasPrefix(line, dataformatKw):
			tokens := strings.SplitN(line, " ", 2)
			if len(tokens) != 2 {
				return nil, dserr.Newf(dserr.HeaderParseErr, "Problem with header formatting in line %s", line)
			}
			mt, err := mediatype.Parse(tokens[1])
			if err != nil {
				return nil, dserr.Newf(dserr.HeaderParseErr, "Could not parse media type from header in line %s", line)
			}
			h.dataFormats = append(h.dataFormats, mt)
		default:
			return nil, dserr.Newf(dserr.HeaderParseErr, "Unable to parse header line: %s", line)
		}
	}

	h.namedInputs = inputs
	h.defaultIn = map[string]mediatype.MediaType{}
	for name, types := range inputs {
		if len(types) == 0 {
			continue
		}
		sorted := append([]mediatype.MediaType(nil), types...)
		mediatype.SortByQuality(sorted)
		h.defaultIn[name] = sorted[0]
	}

	if len(h.outputs) > 0 {
		sorted := append([]mediatype.MediaType(nil), h.outputs...)
		mediatype.SortByQuality(sorted)
		h.defaultOut = sorted[0]
	} else {
		h.defaultOut = mediatype.Any
	}

	return h, nil
}

func namedGroups(re *regexp.Regexp, match []string) map[string]string {
	out := map[string]string{}
	for i, name := range re.SubexpNames() {
		if name == "" || i >= len(match) {
			continue
		}
		out[name] = match[i]
	}
	return out
}

// DefaultInput returns the highest-quality declared media type for a
// named input, if any was declared.
func (h *Header) DefaultInput(name string) (mediatype.MediaType, bool) {
	mt, ok := h.defaultIn[name]
	return mt, ok
}

// DefaultPayload is DefaultInput("payload"), the conventional primary
// input name.
func (h *Header) DefaultPayload() (mediatype.MediaType, bool) {
	return h.DefaultInput("payload")
}

// DefaultOutput returns the highest-quality declared `output` media
// type, or mediatype.Any if none was declared.
func (h *Header) DefaultOutput() mediatype.MediaType {
	return h.defaultOut
}

// ResolveInput layers parameters for a named input's document media
// type: dataformat defaults < `input *` < the named per-input
// declaration < the document's own parameters.
func (h *Header) ResolveInput(name string, doc mediatype.MediaType) mediatype.MediaType {
	merged := mediatype.MediaType{Type: doc.Type, Subtype: doc.Subtype}
	for _, df := range h.dataFormats {
		if df.SameIndex(doc) {
			merged = merged.Merge(df)
		}
	}
	for _, all := range h.allInputs {
		if all.SameIndex(doc) {
			merged = merged.Merge(all)
		}
	}
	for _, named := range h.namedInputs[name] {
		if named.SameIndex(doc) {
			merged = merged.Merge(named)
		}
	}
	return merged.Merge(doc)
}

// ResolveOutput layers parameters for an output media type: dataformat
// defaults < the declared `output` entry of the same index < the
// caller-supplied media type's own parameters.
func (h *Header) ResolveOutput(mt mediatype.MediaType) mediatype.MediaType {
	merged := mediatype.MediaType{Type: mt.Type, Subtype: mt.Subtype}
	for _, df := range h.dataFormats {
		if df.SameIndex(mt) {
			merged = merged.Merge(df)
		}
	}
	for _, out := range h.outputs {
		if out.SameIndex(mt) {
			merged = merged.Merge(out)
		}
	}
	return merged.Merge(mt)
}
