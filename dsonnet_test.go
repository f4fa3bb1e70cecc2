package dsonnet

import (
	"context"
	"testing"
	"time"

	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
)

func jsonMT(t *testing.T) mediatype.MediaType {
	t.Helper()
	mt, err := mediatype.Parse("application/json")
	if err != nil {
		t.Fatal(err)
	}
	return mt
}

func TestTransformNoHeaderDefaultsToJSON(t *testing.T) {
	out, outMT, err := Transform(
		`{result: payload.value * 2}`,
		Inputs{"payload": {Data: []byte(`{"value": 21}`), MediaType: jsonMT(t)}},
		mediatype.Any,
	)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"result":42}` {
		t.Fatalf("got %s", out)
	}
	if outMT.Type != "application" || outMT.Subtype != "json" {
		t.Fatalf("got output media type %v", outMT)
	}
}

func TestTransformWithStdlib(t *testing.T) {
	out, _, err := Transform(
		`{upper: ds.strings.upper(payload.name)}`,
		Inputs{"payload": {Data: []byte(`{"name": "hi"}`), MediaType: jsonMT(t)}},
		mediatype.Any,
	)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"upper":"HI"}` {
		t.Fatalf("got %s", out)
	}
}

func TestTransformOutputOverride(t *testing.T) {
	outMTOverride, err := mediatype.Parse("application/csv")
	if err != nil {
		t.Fatal(err)
	}
	_, outMT, err := Transform(
		`[{a: 1, b: 2}]`,
		Inputs{},
		outMTOverride,
	)
	if err != nil {
		t.Fatal(err)
	}
	if outMT.Subtype != "csv" {
		t.Fatalf("expected csv output override to stick, got %v", outMT)
	}
}

func TestEngineWithCacheReusesParsedScript(t *testing.T) {
	eng := New(WithCache(16))
	script := `{v: payload.n + 1}`
	inputs := Inputs{"payload": {Data: []byte(`{"n": 1}`), MediaType: jsonMT(t)}}

	for i := 0; i < 3; i++ {
		out, _, err := eng.Transform(context.Background(), script, inputs, mediatype.Any)
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != `{"v":2}` {
			t.Fatalf("iteration %d: got %s", i, out)
		}
	}
}

func TestEngineWithTimeoutCancelsSlowScripts(t *testing.T) {
	eng := New(WithTimeout(1 * time.Nanosecond))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := eng.Transform(ctx, `1 + 1`, Inputs{}, mediatype.Any)
	if err == nil {
		t.Fatalf("expected an error from an already-cancelled context")
	}
}

func TestEngineWithMaxDepthLimitsRecursion(t *testing.T) {
	eng := New(WithMaxDepth(3))
	_, _, err := eng.Transform(context.Background(), `1 + (1 + (1 + (1 + 1)))`, Inputs{}, mediatype.Any)
	if err == nil {
		t.Fatalf("expected a recursion depth error with a small max depth")
	}
}

func TestMustTransformPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustTransform to panic on a parse error")
		}
	}()
	MustTransform(`{`, Inputs{}, mediatype.Any)
}

func TestStripHeaderBeforeParse(t *testing.T) {
	script := "/** DataSonnet\npreserveOrder=true\noutput application/json\n*/\n{a: 1}"
	out, _, err := Transform(script, Inputs{}, mediatype.Any)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"a":1}` {
		t.Fatalf("got %s", out)
	}
}
