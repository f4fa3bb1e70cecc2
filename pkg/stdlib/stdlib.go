// Package stdlib builds the "ds" standard-library surface: ~14
// namespaces of built-in functions installed as an ordinary value.Obj
// tree so the evaluator needs no special-casing for namespace dispatch
// — `ds.strings.camelize(...)` is just member access followed by a
// call, handled generically by pkg/eval.
//
// Organized as one file per functional area with a namespace-per-file
// layout, built on this engine's lazy value.Value/Cell model.
package stdlib

import (
	"github.com/dsonnet-io/dsonnet/pkg/codec"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// Env carries the collaborators standard-library functions need beyond
// their arguments: the codec registry for read/write/readUrl and the ds.xml
// helpers, and a resolver for classpath:// resources used by readUrl.
type Env struct {
	Registry  *codec.Registry
	Classpath func(name string) ([]byte, bool)
}

// Root builds the `ds` namespace object: core combinators and scalar
// primitives at the top level, plus one nested object per named
// sub-namespace (strings, arrays, objects, numbers, math, datetime,
// period, binaries, crypto, url, jsonpath, regex, xml).
func Root(env *Env) *value.Obj {
	root := value.NewObj()
	installCore(root, env)

	root.SetValue("strings", namespaceObj(stringsFns()))
	root.SetValue("arrays", namespaceObj(arraysFns()))
	root.SetValue("objects", namespaceObj(objectsFns()))
	root.SetValue("numbers", namespaceObj(numbersFns()))
	root.SetValue("math", namespaceObj(mathFns()))
	root.SetValue("datetime", namespaceObj(datetimeFns()))
	root.SetValue("period", namespaceObj(periodFns()))
	root.SetValue("binaries", namespaceObj(binariesFns()))
	root.SetValue("crypto", namespaceObj(cryptoFns()))
	root.SetValue("url", namespaceObj(urlFns()))
	root.SetValue("jsonpath", namespaceObj(jsonpathFns()))
	root.SetValue("regex", namespaceObj(regexFns()))
	root.SetValue("xml", namespaceObj(xmlFns(env)))

	return root
}

// fnEntry names one native function for registration into a namespace
// object; name doubles as the Func's introspectable Name field.
type fnEntry struct {
	name string
	fn   *value.Func
}

func namespaceObj(entries []fnEntry) *value.Obj {
	obj := value.NewObj()
	for _, e := range entries {
		obj.SetValue(e.name, e.fn)
	}
	return obj
}

// native wraps a plain FuncImpl into a named, variadic Func value (the
// shape every built-in takes — only user lambdas carry a Params list
// combinators introspect, per value.Func's doc comment).
func native(name string, fn value.FuncImpl) *value.Func {
	return &value.Func{Name: name, Variadic: true, Native: fn}
}

// nativeCtx is native for built-ins that themselves call back into a
// user-supplied Func argument (the higher-order combinators).
func nativeCtx(name string, fn value.CtxFuncImpl) *value.Func {
	return &value.Func{Name: name, Variadic: true, NativeCtx: fn}
}
