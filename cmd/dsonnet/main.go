// Command dsonnet runs a transformation script against one or more
// input documents and writes the result to stdout.
//
// Usage:
//
//	dsonnet -script transform.ds -payload data.json -payload-type application/json
//	dsonnet -script transform.ds -payload data.json -output application/xml
//
// Additional named inputs (beyond the conventional "payload") are
// supplied via repeated -input name=path=media-type flags:
//
//	dsonnet -script t.ds -payload a.json -input lookup=lookup.json=application/json
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dsonnet-io/dsonnet"
	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
)

type inputFlag struct {
	name string
	path string
	mt   string
}

type inputFlags []inputFlag

func (f *inputFlags) String() string { return "" }

func (f *inputFlags) Set(s string) error {
	parts := strings.SplitN(s, "=", 3)
	if len(parts) != 3 {
		return fmt.Errorf("-input must be name=path=media-type, got %q", s)
	}
	*f = append(*f, inputFlag{name: parts[0], path: parts[1], mt: parts[2]})
	return nil
}

func main() {
	scriptPath := flag.String("script", "", "path to the transformation script (required)")
	payloadPath := flag.String("payload", "", "path to the primary input document")
	payloadType := flag.String("payload-type", "application/json", "media type of the primary input")
	outputType := flag.String("output", "", "output media type override (defaults to the script's own output header)")
	var extra inputFlags
	flag.Var(&extra, "input", "additional named input as name=path=media-type (repeatable)")
	flag.Parse()

	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "dsonnet: -script is required")
		os.Exit(2)
	}

	if err := run(*scriptPath, *payloadPath, *payloadType, *outputType, extra); err != nil {
		fmt.Fprintf(os.Stderr, "dsonnet: %v\n", err)
		os.Exit(1)
	}
}

func run(scriptPath, payloadPath, payloadType, outputType string, extra inputFlags) error {
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	inputs := dsonnet.Inputs{}
	if payloadPath != "" {
		data, err := os.ReadFile(payloadPath)
		if err != nil {
			return fmt.Errorf("reading payload: %w", err)
		}
		mt, err := mediatype.Parse(payloadType)
		if err != nil {
			return fmt.Errorf("parsing -payload-type: %w", err)
		}
		inputs["payload"] = dsonnet.Input{Data: data, MediaType: mt}
	}
	for _, in := range extra {
		data, err := os.ReadFile(in.path)
		if err != nil {
			return fmt.Errorf("reading input %q: %w", in.name, err)
		}
		mt, err := mediatype.Parse(in.mt)
		if err != nil {
			return fmt.Errorf("parsing media type for input %q: %w", in.name, err)
		}
		inputs[in.name] = dsonnet.Input{Data: data, MediaType: mt}
	}

	outMT := mediatype.Any
	if outputType != "" {
		mt, err := mediatype.Parse(outputType)
		if err != nil {
			return fmt.Errorf("parsing -output: %w", err)
		}
		outMT = mt
	}

	out, _, err := dsonnet.Transform(string(script), inputs, outMT)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
