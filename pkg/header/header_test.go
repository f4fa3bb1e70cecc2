package header

import (
	"testing"

	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
)

func TestParseEmptyForNonHeaderScript(t *testing.T) {
	h, err := Parse(`{a: 1}`)
	if err != nil {
		t.Fatal(err)
	}
	if !h.PreserveOrder {
		t.Fatalf("expected default preserveOrder=true")
	}
}

func TestParseInputOutputDataformat(t *testing.T) {
	script := `/** DataSonnet
preserveOrder=false
input payload application/json
input payload application/xml;q=0.5
output application/csv;separator=;
dataformat application/json;indent=2
// a comment
*/
{a: 1}`
	h, err := Parse(script)
	if err != nil {
		t.Fatal(err)
	}
	if h.PreserveOrder {
		t.Fatalf("expected preserveOrder=false")
	}
	mt, ok := h.DefaultPayload()
	if !ok || mt.Subtype != "json" {
		t.Fatalf("expected default payload json, got %v ok=%v", mt, ok)
	}
	if h.DefaultOutput().Subtype != "csv" {
		t.Fatalf("expected default output csv, got %v", h.DefaultOutput())
	}
}

func TestUnterminatedHeaderErrors(t *testing.T) {
	_, err := Parse("/** DataSonnet\ninput payload application/json\n")
	if err == nil {
		t.Fatalf("expected unterminated header error")
	}
}

func TestMalformedLineErrors(t *testing.T) {
	_, err := Parse("/** DataSonnet\nnotarealdirective\n*/\n{}")
	if err == nil {
		t.Fatalf("expected parse error for unrecognized line")
	}
}

func TestResolveInputLayering(t *testing.T) {
	script := `/** DataSonnet
dataformat application/json;indent=2
input * application/json;indent=4;strict=true
input payload application/json;strict=false
*/
{}`
	h, err := Parse(script)
	if err != nil {
		t.Fatal(err)
	}
	doc, _ := mediatype.Parse("application/json;strict=overridden")
	resolved := h.ResolveInput("payload", doc)
	if v, _ := resolved.Param("indent"); v != "4" {
		t.Fatalf("expected input * to win over dataformat, got %v", v)
	}
	if v, _ := resolved.Param("strict"); v != "overridden" {
		t.Fatalf("expected the document's own parameter to win, got %v", v)
	}
}
