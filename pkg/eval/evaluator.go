// Package eval implements the tree-walking evaluator: single-threaded,
// deterministic, and lazy. It consumes the AST produced by pkg/lang and
// produces value.Value, forcing lazy cells only when something actually
// demands them.
package eval

import (
	"context"
	"fmt"

	"github.com/dsonnet-io/dsonnet/pkg/ast"
	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// MaxDepth bounds recursion to turn runaway scripts into a clean error
// instead of a stack overflow.
const MaxDepth = 10000

// depthKey is the context key holding a *int recursion counter. A
// pointer int, not a context value replaced on every call, gives one
// shared counter per top-level Eval call, incremented/decremented
// stack-style.
type depthKeyType struct{}

var depthKey = depthKeyType{}

// maxDepthKey is the context key holding a caller-supplied override of
// MaxDepth; absent means MaxDepth applies as-is.
type maxDepthKeyType struct{}

var maxDepthKey = maxDepthKeyType{}

// WithDepthCounter installs a fresh recursion counter in ctx. Call once
// per top-level evaluation.
func WithDepthCounter(ctx context.Context) context.Context {
	d := 0
	return context.WithValue(ctx, depthKey, &d)
}

// WithMaxDepthOverride replaces MaxDepth with n for evaluations running
// under ctx, letting an Engine configure a tighter or looser recursion
// ceiling than the package default.
func WithMaxDepthOverride(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, maxDepthKey, n)
}

func enterDepth(ctx context.Context) (func(), error) {
	d, ok := ctx.Value(depthKey).(*int)
	if !ok {
		return func() {}, nil
	}
	max := MaxDepth
	if n, ok := ctx.Value(maxDepthKey).(int); ok {
		max = n
	}
	*d++
	if *d > max {
		return func() { *d-- }, dserr.New(dserr.DomainError, "maximum recursion depth exceeded")
	}
	return func() { *d-- }, nil
}

// Eval evaluates node in scope, forcing any thunk it creates for
// immediate consumption but leaving array elements and object members as
// unforced cells.
func Eval(ctx context.Context, node *ast.Node, scope *Scope) (value.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	leave, err := enterDepth(ctx)
	if err != nil {
		return nil, err
	}
	defer leave()

	switch node.Kind {
	case ast.KNull:
		return value.Nil, nil
	case ast.KBool:
		return value.Bool(node.Bool), nil
	case ast.KNum:
		return value.Num(node.Num), nil
	case ast.KStr:
		return value.Str(node.Str), nil

	case ast.KIdent:
		cell, ok := scope.Lookup(node.Name)
		if !ok {
			return nil, dserr.Newf(dserr.UndefinedSymbol, "undefined variable: %s", node.Name).At(node.Pos)
		}
		return cell.Force()

	case ast.KLocal:
		child := &Scope{parent: scope, vars: map[string]*value.Cell{}}
		valNode, valScope := node.LocalValue, child
		child.vars[node.Name] = value.NewThunk(func() (value.Value, error) {
			return Eval(ctx, valNode, valScope)
		})
		return Eval(ctx, node.Body, child)

	case ast.KLambda:
		return makeLambda(node, scope), nil

	case ast.KIf:
		cond, err := Eval(ctx, node.Cond, scope)
		if err != nil {
			return nil, err
		}
		if value.Truthy(cond) {
			return Eval(ctx, node.Then, scope)
		}
		return Eval(ctx, node.Else, scope)

	case ast.KArray:
		cells := make([]*value.Cell, len(node.Elements))
		for i, elem := range node.Elements {
			elem := elem
			cells[i] = value.NewThunk(func() (value.Value, error) {
				return Eval(ctx, elem, scope)
			})
		}
		return value.NewArr(cells...), nil

	case ast.KObject:
		obj := value.NewObj()
		for _, f := range node.Fields {
			f := f
			name := f.Name
			if f.Computed != nil {
				keyVal, err := Eval(ctx, f.Computed, scope)
				if err != nil {
					return nil, err
				}
				ks, ok := keyVal.(value.Str)
				if !ok {
					return nil, value.TypeError("string", keyVal)
				}
				name = string(ks)
			}
			valNode := f.Value
			obj.Set(name, value.VisNormal, value.NewThunk(func() (value.Value, error) {
				return Eval(ctx, valNode, scope)
			}))
		}
		return obj, nil

	case ast.KMember:
		target, err := Eval(ctx, node.Target, scope)
		if err != nil {
			return nil, err
		}
		return memberAccess(target, node.Name, node.Pos)

	case ast.KIndex:
		target, err := Eval(ctx, node.Target, scope)
		if err != nil {
			return nil, err
		}
		idx, err := Eval(ctx, node.Index, scope)
		if err != nil {
			return nil, err
		}
		return indexAccess(target, idx, node.Pos)

	case ast.KCall:
		target, err := Eval(ctx, node.Target, scope)
		if err != nil {
			return nil, err
		}
		fn, ok := target.(*value.Func)
		if !ok {
			return nil, dserr.Newf(dserr.TypeMismatch, "Expected function, got: %s", value.PrettyNameOf(target)).At(node.Pos)
		}
		args := make([]value.Value, len(node.Args))
		for i, a := range node.Args {
			av, err := Eval(ctx, a, scope)
			if err != nil {
				return nil, err
			}
			args[i] = av
		}
		return Apply(ctx, fn, args)

	case ast.KUnary:
		return evalUnary(ctx, node, scope)

	case ast.KBinary:
		return evalBinary(ctx, node, scope)

	default:
		return nil, fmt.Errorf("unhandled AST node kind %v", node.Kind)
	}
}

func memberAccess(target value.Value, name string, pos int) (value.Value, error) {
	obj, ok := target.(*value.Obj)
	if !ok {
		return nil, dserr.Newf(dserr.TypeMismatch, "Expected object, got: %s", value.PrettyNameOf(target)).At(pos)
	}
	m, ok := obj.Get(name)
	if !ok {
		return value.Nil, nil
	}
	return m.Cell.Force()
}

func indexAccess(target, idx value.Value, pos int) (value.Value, error) {
	switch t := target.(type) {
	case *value.Arr:
		n, ok := idx.(value.Num)
		if !ok {
			return nil, dserr.TypeErrorf("number", value.PrettyNameOf(idx)).At(pos)
		}
		i := int(n)
		if i < 0 {
			i += len(t.Elems)
		}
		if i < 0 || i >= len(t.Elems) {
			return value.Nil, nil
		}
		return t.Elems[i].Force()
	case *value.Obj:
		s, ok := idx.(value.Str)
		if !ok {
			return nil, dserr.TypeErrorf("string", value.PrettyNameOf(idx)).At(pos)
		}
		return memberAccess(t, string(s), pos)
	default:
		return nil, dserr.TypeErrorf("array or object", value.PrettyNameOf(target)).At(pos)
	}
}
