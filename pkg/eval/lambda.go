package eval

import (
	"context"
	"strconv"

	"github.com/dsonnet-io/dsonnet/pkg/ast"
	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// closure pairs a lambda's body with the scope it was defined in —
// "object members, array elements, and function bodies all capture
// their lexical scope".
type closure struct {
	node  *ast.Node
	scope *Scope
}

func makeLambda(node *ast.Node, scope *Scope) *value.Func {
	return &value.Func{
		Params: node.Params,
		Lambda: &closure{node: node, scope: scope},
	}
}

// Apply is the applyer: it invokes a Func value
// (native or user lambda) with a positional argument tuple, which is
// exactly what every higher-order combinator needs to call a
// user-supplied callback.
func Apply(ctx context.Context, fn *value.Func, args []value.Value) (value.Value, error) {
	if fn.NativeCtx != nil {
		return fn.NativeCtx(ctx, args)
	}
	if fn.Native != nil {
		return fn.Native(args)
	}
	cl, ok := fn.Lambda.(*closure)
	if !ok {
		return nil, dserr.New(dserr.TypeMismatch, "function value has no implementation")
	}
	bindings := make(map[string]*value.Cell, len(cl.node.Params))
	for i, p := range cl.node.Params {
		if i < len(args) {
			bindings[p] = value.NewCell(args[i])
		} else {
			bindings[p] = value.NewCell(value.Nil)
		}
	}
	child := cl.scope.ChildMany(bindings)
	return Eval(ctx, cl.node.Body, child)
}

// CallShape adapts a caller-supplied argument tuple to fn's declared
// arity, implementing the call-shape rule for higher-order
// combinators: a 1-parameter user callback sees only the first argument,
// a 2-parameter callback sees the first two, and so on. Native callbacks
// (no declared Params) receive the full tuple — they validate their own
// argument count.
//
// allowed lists the parameter counts permitted for this combinator
// position (e.g. []int{1,2} for array combinators); passing any other
// arity is the ArityMismatch fatal error.
func CallShape(fn *value.Func, full []value.Value, allowed []int) ([]value.Value, error) {
	if fn.Lambda == nil {
		return full, nil // native callback: no arity introspection
	}
	n := len(fn.Params)
	ok := false
	for _, a := range allowed {
		if a == n {
			ok = true
			break
		}
	}
	if !ok {
		return nil, dserr.ArityErrorf(allowedList(allowed), n)
	}
	if n > len(full) {
		n = len(full)
	}
	return full[:n], nil
}

func allowedList(allowed []int) string {
	switch len(allowed) {
	case 1:
		return strconv.Itoa(allowed[0])
	case 2:
		return strconv.Itoa(allowed[0]) + " or " + strconv.Itoa(allowed[1])
	default:
		s := ""
		for i, a := range allowed {
			if i > 0 {
				s += ", "
			}
			s += strconv.Itoa(a)
		}
		return s
	}
}
