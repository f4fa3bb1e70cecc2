package stdlib_test

import "testing"

func TestXMLParseSimpleElement(t *testing.T) {
	out := run(t, `ds.xml.parse("<root><a>1</a><b>2</b></root>").root.a`)
	if valueString(t, out) != "1" {
		t.Fatalf("got %v", out)
	}
}

func TestXMLParseAttribute(t *testing.T) {
	out := run(t, `ds.xml.parse("<root id=\"42\"></root>").root["@id"]`)
	if valueString(t, out) != "42" {
		t.Fatalf("got %v", out)
	}
}

func TestXMLStringifyRoundTrip(t *testing.T) {
	out := run(t, `
local doc = { root: { a: "1", b: "2" } };
local xml = ds.xml.stringify(doc);
ds.xml.parse(xml).root.a
`)
	if valueString(t, out) != "1" {
		t.Fatalf("got %v", out)
	}
}

func TestXMLParseRepeatedElementBecomesArray(t *testing.T) {
	out := run(t, `ds.xml.parse("<root><item>1</item><item>2</item></root>").root.item`)
	wantArrStrs(t, out, "1", "2")
}
