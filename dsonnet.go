// Package dsonnet implements a DataSonnet-style data-transformation
// engine: a lazy, JSONata-flavored expression language that reads one or
// more media-typed documents, evaluates a script against them, and
// writes a media-typed result.
//
// # Quick Start
//
//	// Simple transform
//	out, outMT, err := dsonnet.Transform(script, dsonnet.Inputs{
//	    "payload": {Data: body, MediaType: mediatype.New("application", "json", nil)},
//	}, mediatype.Any)
//
//	// Build an engine once, reuse it across many transforms
//	eng := dsonnet.New(dsonnet.WithCache(512), dsonnet.WithTimeout(5*time.Second))
//	out, outMT, err := eng.Transform(ctx, script, inputs, mediatype.Any)
//
// # Conformance
//
// The built-in `ds` namespace is documented package-by-package under
// pkg/stdlib; the header syntax parsed ahead of the script body is
// documented in pkg/header.
//
// For detailed documentation, see:
//   - Parser: github.com/dsonnet-io/dsonnet/pkg/lang
//   - Evaluator: github.com/dsonnet-io/dsonnet/pkg/eval
//   - Standard library: github.com/dsonnet-io/dsonnet/pkg/stdlib
//   - Codecs: github.com/dsonnet-io/dsonnet/pkg/codec
package dsonnet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dsonnet-io/dsonnet/pkg/ast"
	"github.com/dsonnet-io/dsonnet/pkg/cache"
	"github.com/dsonnet-io/dsonnet/pkg/codec"
	"github.com/dsonnet-io/dsonnet/pkg/eval"
	"github.com/dsonnet-io/dsonnet/pkg/header"
	"github.com/dsonnet-io/dsonnet/pkg/lang"
	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
	"github.com/dsonnet-io/dsonnet/pkg/stdlib"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// headerOpen mirrors pkg/header's own marker; Transform needs to strip
// the header block before handing the remainder to the parser, which
// only ever sees a script body (pkg/lang.Parse's doc comment).
const headerOpen = "/** DataSonnet"

// Version returns the current version of the engine.
func Version() string {
	return "v0.1.0-dev"
}

// Input is one named document supplied to a transform: its raw bytes and
// the media type under which those bytes should be decoded.
type Input struct {
	Data      []byte
	MediaType mediatype.MediaType
}

// Inputs maps an input name (the "payload" convention is just a name in
// this map) to its document.
type Inputs map[string]Input

// Option configures an Engine, following the functional-options pattern.
type Option func(*Engine)

// WithLogger installs a structured logger for compile/eval diagnostics.
// Diagnostics are logged at Debug level only — the engine never logs at
// Info/Warn for data content, since that would be an evaluation-dependent
// side channel breaking the engine's determinism guarantee.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithDebug toggles verbose Debug-level logging of parse/eval milestones.
func WithDebug(debug bool) Option {
	return func(e *Engine) { e.debug = debug }
}

// WithCache enables an LRU cache of parsed scripts with the given
// capacity, keyed on script source text. capacity <= 0 uses cache's
// default.
func WithCache(capacity int) Option {
	return func(e *Engine) { e.cache = cache.New(capacity) }
}

// WithTimeout bounds a single Transform call's wall-clock time. Zero (the
// default) means no timeout beyond the caller's own context.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithMaxDepth overrides the evaluator's recursion depth ceiling.
func WithMaxDepth(n int) Option {
	return func(e *Engine) { e.maxDepth = n }
}

// WithRegistry overrides the default codec registry (JSON, CSV, XML,
// YAML, text) with a custom one, e.g. to add a plugin codec.
func WithRegistry(reg *codec.Registry) Option {
	return func(e *Engine) { e.registry = reg }
}

// WithClasspath installs the resolver `ds.readUrl` uses for
// classpath:// resources. The default resolver finds nothing (every
// classpath:// lookup reads back as null).
func WithClasspath(resolve func(name string) ([]byte, bool)) Option {
	return func(e *Engine) { e.classpath = resolve }
}

// WithExtraFunctions installs additional top-level `ds` bindings
// (custom functions) alongside the built-in standard library.
func WithExtraFunctions(fns map[string]*value.Func) Option {
	return func(e *Engine) { e.extra = fns }
}

// Engine holds reusable configuration and caches across many Transform
// calls: a codec registry, an optional script cache, and evaluation
// limits. The zero value is not usable; construct with New.
type Engine struct {
	logger    *slog.Logger
	debug     bool
	cache     *cache.Cache
	timeout   time.Duration
	maxDepth  int
	registry  *codec.Registry
	classpath func(name string) ([]byte, bool)
	extra     map[string]*value.Func
}

// New builds an Engine with the default codec registry and no caching,
// applying opts in order.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:    slog.New(slog.NewTextHandler(nilWriter{}, nil)),
		registry:  codec.NewDefaultRegistry(),
		classpath: func(string) ([]byte, bool) { return nil, false },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Transform parses script (if not cached), builds the root scope from
// header-resolved inputs, evaluates the body, and serializes the result
// under the resolved output media type.
//
// outputMediaType, when its Type is non-empty, overrides any `output`
// header declaration; pass mediatype.Any to defer entirely to the
// header. When neither names a concrete output type, the result is
// written as application/json.
func (e *Engine) Transform(ctx context.Context, script string, inputs Inputs, outputMediaType mediatype.MediaType) ([]byte, mediatype.MediaType, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	hdr, err := header.Parse(script)
	if err != nil {
		return nil, mediatype.MediaType{}, err
	}
	e.logf(ctx, "parsed header", "preserveOrder", hdr.PreserveOrder)

	node, err := e.parse(script)
	if err != nil {
		return nil, mediatype.MediaType{}, err
	}

	bindings, err := e.bindInputs(hdr, inputs)
	if err != nil {
		return nil, mediatype.MediaType{}, err
	}

	root := stdlib.Root(&stdlib.Env{Registry: e.registry, Classpath: e.classpath})
	bindings["ds"] = value.NewCell(root)
	for name, fn := range e.extra {
		bindings[name] = value.NewCell(fn)
	}

	scope := eval.NewRootScope(bindings)
	evalCtx := eval.WithDepthCounter(ctx)
	if e.maxDepth > 0 {
		evalCtx = eval.WithMaxDepthOverride(evalCtx, e.maxDepth)
	}

	result, err := eval.Eval(evalCtx, node, scope)
	if err != nil {
		return nil, mediatype.MediaType{}, err
	}

	resolvedOut := e.resolveOutput(hdr, outputMediaType)
	out, err := e.registry.Write(result, resolvedOut)
	if err != nil {
		return nil, mediatype.MediaType{}, err
	}
	e.logf(ctx, "transform complete", "outputMediaType", resolvedOut.String())
	return out, resolvedOut, nil
}

// stripHeader removes a leading `/** DataSonnet ... */` block, if
// present, so the parser only ever sees the expression body.
func stripHeader(script string) string {
	trimmed := strings.TrimSpace(script)
	if !strings.HasPrefix(trimmed, headerOpen) {
		return script
	}
	if i := strings.Index(script, "*/"); i != -1 {
		return script[i+2:]
	}
	return script
}

func (e *Engine) parse(script string) (*ast.Node, error) {
	body := stripHeader(script)
	if e.cache == nil {
		return lang.Parse(body)
	}
	return e.cache.GetOrCompile(body, func() (*ast.Node, error) {
		return lang.Parse(body)
	})
}

func (e *Engine) bindInputs(hdr *header.Header, inputs Inputs) (map[string]*value.Cell, error) {
	bindings := make(map[string]*value.Cell, len(inputs))
	for name, in := range inputs {
		resolved := hdr.ResolveInput(name, in.MediaType)
		v, err := e.registry.Read(in.Data, resolved)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", name, err)
		}
		bindings[name] = value.NewCell(v)
	}
	return bindings, nil
}

func (e *Engine) resolveOutput(hdr *header.Header, override mediatype.MediaType) mediatype.MediaType {
	if override.Type != "" && override.Type != "*" {
		return hdr.ResolveOutput(override)
	}
	out := hdr.DefaultOutput()
	if out.Type == "*" {
		out = mediatype.New("application", "json", nil)
	}
	return hdr.ResolveOutput(out)
}

func (e *Engine) logf(ctx context.Context, msg string, args ...any) {
	if !e.debug || e.logger == nil {
		return
	}
	e.logger.DebugContext(ctx, msg, args...)
}

// nilWriter discards everything; the default logger is silent unless a
// caller supplies their own via WithLogger.
type nilWriter struct{}

func (nilWriter) Write(p []byte) (int, error) { return len(p), nil }

// Transform is a convenience entry point that builds a one-shot default
// Engine and calls Transform on it. For repeated transforms, build an
// Engine with New and reuse it — that amortizes codec registry setup and,
// with WithCache, script parsing.
func Transform(script string, inputs Inputs, outputMediaType mediatype.MediaType) ([]byte, mediatype.MediaType, error) {
	return New().Transform(context.Background(), script, inputs, outputMediaType)
}

// MustTransform is like Transform but panics on error, for tests and
// quick scripts.
func MustTransform(script string, inputs Inputs, outputMediaType mediatype.MediaType) ([]byte, mediatype.MediaType) {
	out, mt, err := Transform(script, inputs, outputMediaType)
	if err != nil {
		panic(fmt.Sprintf("dsonnet: Transform: %v", err))
	}
	return out, mt
}
