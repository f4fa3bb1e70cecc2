package eval

import (
	"context"

	"github.com/dsonnet-io/dsonnet/pkg/ast"
	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

func evalUnary(ctx context.Context, node *ast.Node, scope *Scope) (value.Value, error) {
	x, err := Eval(ctx, node.X, scope)
	if err != nil {
		return nil, err
	}
	switch node.Op {
	case "-":
		n, ok := x.(value.Num)
		if !ok {
			return nil, dserr.TypeErrorf("number", value.PrettyNameOf(x)).At(node.Pos)
		}
		return -n, nil
	case "!":
		return value.Bool(!value.Truthy(x)), nil
	default:
		return nil, dserr.Newf(dserr.TypeMismatch, "unknown unary operator %q", node.Op).At(node.Pos)
	}
}

func evalBinary(ctx context.Context, node *ast.Node, scope *Scope) (value.Value, error) {
	// && and || short-circuit: the right side is only evaluated if needed.
	switch node.Op {
	case "&&":
		l, err := Eval(ctx, node.L, scope)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(l) {
			return value.False, nil
		}
		r, err := Eval(ctx, node.R, scope)
		if err != nil {
			return nil, err
		}
		return value.Bool(value.Truthy(r)), nil
	case "||":
		l, err := Eval(ctx, node.L, scope)
		if err != nil {
			return nil, err
		}
		if value.Truthy(l) {
			return value.True, nil
		}
		r, err := Eval(ctx, node.R, scope)
		if err != nil {
			return nil, err
		}
		return value.Bool(value.Truthy(r)), nil
	}

	l, err := Eval(ctx, node.L, scope)
	if err != nil {
		return nil, err
	}
	r, err := Eval(ctx, node.R, scope)
	if err != nil {
		return nil, err
	}

	switch node.Op {
	case "==":
		eq, err := value.Equal(l, r)
		if err != nil {
			return nil, err
		}
		return value.Bool(eq), nil
	case "!=":
		eq, err := value.Equal(l, r)
		if err != nil {
			return nil, err
		}
		return value.Bool(!eq), nil
	case "<", "<=", ">", ">=":
		return compareOp(node.Op, l, r, node.Pos)
	case "+":
		return addOp(l, r, node.Pos)
	case "-", "*", "/", "%":
		return arithOp(node.Op, l, r, node.Pos)
	default:
		return nil, dserr.Newf(dserr.TypeMismatch, "unknown binary operator %q", node.Op).At(node.Pos)
	}
}

func compareOp(op string, l, r value.Value, pos int) (value.Value, error) {
	if !value.Orderable(l) || !value.Orderable(r) {
		return nil, dserr.New(dserr.TypeMismatch, "Expected Array of type String, Boolean, or Number, got: Array of type "+value.PrettyNameOf(l)).At(pos)
	}
	c, err := value.Compare(l, r)
	if err != nil {
		return nil, dserr.Wrap(err).At(pos)
	}
	switch op {
	case "<":
		return value.Bool(c < 0), nil
	case "<=":
		return value.Bool(c <= 0), nil
	case ">":
		return value.Bool(c > 0), nil
	default: // >=
		return value.Bool(c >= 0), nil
	}
}

func arithOp(op string, l, r value.Value, pos int) (value.Value, error) {
	ln, ok := l.(value.Num)
	if !ok {
		return nil, dserr.TypeErrorf("number", value.PrettyNameOf(l)).At(pos)
	}
	rn, ok := r.(value.Num)
	if !ok {
		return nil, dserr.TypeErrorf("number", value.PrettyNameOf(r)).At(pos)
	}
	switch op {
	case "-":
		return ln - rn, nil
	case "*":
		return ln * rn, nil
	case "/":
		if rn == 0 {
			return nil, dserr.New(dserr.DomainError, "division by zero").At(pos)
		}
		return ln / rn, nil
	case "%":
		if rn == 0 {
			return nil, dserr.New(dserr.DomainError, "modulo by zero").At(pos)
		}
		return value.Num(int64(ln) % int64(rn)), nil
	default:
		return nil, dserr.Newf(dserr.TypeMismatch, "unknown arithmetic operator %q", op).At(pos)
	}
}

// addOp implements +: numeric addition, string concatenation, array
// concatenation, and object merge (right side wins on key collision,
// keeping the left key's original position — the same "later keys win"
// rule stdlib's mapObject uses for merging callback results).
func addOp(l, r value.Value, pos int) (value.Value, error) {
	switch lv := l.(type) {
	case value.Num:
		rv, ok := r.(value.Num)
		if !ok {
			return nil, dserr.TypeErrorf("number", value.PrettyNameOf(r)).At(pos)
		}
		return lv + rv, nil
	case value.Str:
		rv, ok := r.(value.Str)
		if !ok {
			return nil, dserr.TypeErrorf("string", value.PrettyNameOf(r)).At(pos)
		}
		return lv + rv, nil
	case *value.Arr:
		rv, ok := r.(*value.Arr)
		if !ok {
			return nil, dserr.TypeErrorf("array", value.PrettyNameOf(r)).At(pos)
		}
		cells := make([]*value.Cell, 0, len(lv.Elems)+len(rv.Elems))
		cells = append(cells, lv.Elems...)
		cells = append(cells, rv.Elems...)
		return value.NewArr(cells...), nil
	case *value.Obj:
		rv, ok := r.(*value.Obj)
		if !ok {
			return nil, dserr.TypeErrorf("object", value.PrettyNameOf(r)).At(pos)
		}
		out := value.NewObj()
		for _, k := range lv.VisibleKeys() {
			m, _ := lv.Get(k)
			out.Set(k, m.Visibility, m.Cell)
		}
		for _, k := range rv.VisibleKeys() {
			m, _ := rv.Get(k)
			out.Set(k, m.Visibility, m.Cell)
		}
		return out, nil
	default:
		return nil, dserr.TypeErrorf("number, string, array, or object", value.PrettyNameOf(l)).At(pos)
	}
}
