package codec

import (
	"testing"

	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

func TestJSONRoundTripPreservesKeyOrder(t *testing.T) {
	reg := NewDefaultRegistry()
	mt, _ := mediatype.Parse("application/json")
	v, err := reg.Read([]byte(`{"z":1,"a":2,"m":3}`), mt)
	if err != nil {
		t.Fatal(err)
	}
	obj := v.(*value.Obj)
	keys := obj.VisibleKeys()
	if keys[0] != "z" || keys[1] != "a" || keys[2] != "m" {
		t.Fatalf("expected insertion order preserved, got %v", keys)
	}
	out, err := reg.Write(v, mt)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"z":1,"a":2,"m":3}` {
		t.Fatalf("got %s", out)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	reg := NewDefaultRegistry()
	mt, _ := mediatype.Parse("application/csv")
	v, err := reg.Read([]byte("name,age\nalice,30\nbob,40\n"), mt)
	if err != nil {
		t.Fatal(err)
	}
	arr := v.(*value.Arr)
	if arr.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", arr.Len())
	}
	out, err := reg.Write(v, mt)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "name,age\nalice,30\nbob,40" {
		t.Fatalf("got %q", out)
	}
}

func TestUnknownMediaTypeErrors(t *testing.T) {
	reg := NewDefaultRegistry()
	mt, _ := mediatype.Parse("application/x-nonexistent")
	_, err := reg.Read([]byte("x"), mt)
	if err == nil {
		t.Fatalf("expected CodecNotFound error")
	}
}

func TestXMLRoundTrip(t *testing.T) {
	reg := NewDefaultRegistry()
	mt, _ := mediatype.Parse("application/xml")
	v, err := reg.Read([]byte(`<root id="1"><name>hi</name></root>`), mt)
	if err != nil {
		t.Fatal(err)
	}
	obj := v.(*value.Obj)
	rootMember, _ := obj.Get("root")
	rootVal, _ := rootMember.Cell.Force()
	rootObj := rootVal.(*value.Obj)
	if !rootObj.Has("@id") || !rootObj.Has("name") {
		t.Fatalf("expected @id attribute and name element, got %v", rootObj.VisibleKeys())
	}
	out, err := reg.Write(v, mt)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) == 0 {
		t.Fatalf("expected non-empty XML output")
	}
}
