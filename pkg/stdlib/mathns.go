package stdlib

import (
	"math"
	"math/rand"

	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

func mathFns() []fnEntry {
	return []fnEntry{
		{"abs", native("abs", mathAbs)},
		{"ceil", native("ceil", mathCeil)},
		{"floor", native("floor", mathFloor)},
		{"round", native("round", mathRound)},
		{"sqrt", native("sqrt", mathSqrt)},
		{"pow", native("pow", mathPow)},
		{"sign", native("sign", mathSign)},
		{"random", native("random", mathRandom)},
		{"randomInt", native("randomInt", mathRandomInt)},
	}
}

func mathAbs(args []value.Value) (value.Value, error) {
	n, err := numberArg("abs", args)
	if err != nil {
		return nil, err
	}
	return value.Num(math.Abs(float64(n))), nil
}

func mathCeil(args []value.Value) (value.Value, error) {
	n, err := numberArg("ceil", args)
	if err != nil {
		return nil, err
	}
	return value.Num(math.Ceil(float64(n))), nil
}

func mathFloor(args []value.Value) (value.Value, error) {
	n, err := numberArg("floor", args)
	if err != nil {
		return nil, err
	}
	return value.Num(math.Floor(float64(n))), nil
}

func mathRound(args []value.Value) (value.Value, error) {
	n, err := numberArg("round", args)
	if err != nil {
		return nil, err
	}
	return value.Num(math.Round(float64(n))), nil
}

func mathSqrt(args []value.Value) (value.Value, error) {
	n, err := numberArg("sqrt", args)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, dserr.New(dserr.DomainError, "sqrt of a negative number is undefined")
	}
	return value.Num(math.Sqrt(float64(n))), nil
}

func mathPow(args []value.Value) (value.Value, error) {
	if err := wantArgs("pow", args, 2); err != nil {
		return nil, err
	}
	base, err := wantNum("pow", args[0])
	if err != nil {
		return nil, err
	}
	exp, err := wantNum("pow", args[1])
	if err != nil {
		return nil, err
	}
	return value.Num(math.Pow(float64(base), float64(exp))), nil
}

func mathSign(args []value.Value) (value.Value, error) {
	n, err := numberArg("sign", args)
	if err != nil {
		return nil, err
	}
	switch {
	case n > 0:
		return value.Num(1), nil
	case n < 0:
		return value.Num(-1), nil
	default:
		return value.Num(0), nil
	}
}

func mathRandom(args []value.Value) (value.Value, error) {
	return value.Num(rand.Float64()), nil
}

func mathRandomInt(args []value.Value) (value.Value, error) {
	if err := wantArgs("randomInt", args, 1); err != nil {
		return nil, err
	}
	bound, err := wantNum("randomInt", args[0])
	if err != nil {
		return nil, err
	}
	if bound <= 0 {
		return nil, dserr.New(dserr.DomainError, "randomInt bound must be positive")
	}
	return value.Num(rand.Intn(int(bound))), nil
}
