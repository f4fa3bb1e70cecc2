package stdlib

import (
	"strconv"
	"strings"

	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

func numbersFns() []fnEntry {
	return []fnEntry{
		{"toBinary", native("toBinary", numToBinary)},
		{"toHex", native("toHex", numToHex)},
		{"toRadixNumber", native("toRadixNumber", numToRadixNumber)},
		{"fromBinary", native("fromBinary", numFromBinary)},
		{"fromHex", native("fromHex", numFromHex)},
		{"fromRadixNumber", native("fromRadixNumber", numFromRadixNumber)},
	}
}

// toRadix renders n as a signed integer in the given base: a leading "-"
// followed by the magnitude's digits, never a two's-complement form.
func toRadix(n value.Num, base int) string {
	i := int64(n)
	neg := i < 0
	if neg {
		i = -i
	}
	s := strconv.FormatInt(i, base)
	if neg {
		return "-" + s
	}
	return s
}

func numToBinary(args []value.Value) (value.Value, error) {
	n, err := numberArg("toBinary", args)
	if err != nil {
		return nil, err
	}
	return value.Str(toRadix(n, 2)), nil
}

func numToHex(args []value.Value) (value.Value, error) {
	n, err := numberArg("toHex", args)
	if err != nil {
		return nil, err
	}
	return value.Str(toRadix(n, 16)), nil
}

func numToRadixNumber(args []value.Value) (value.Value, error) {
	if err := wantArgs("toRadixNumber", args, 2); err != nil {
		return nil, err
	}
	n, err := wantNum("toRadixNumber", args[0])
	if err != nil {
		return nil, err
	}
	base, err := wantNum("toRadixNumber", args[1])
	if err != nil {
		return nil, err
	}
	return value.Str(toRadix(n, int(base))), nil
}

// digitString extracts the digit sequence (with optional leading sign)
// a from{Binary,Hex,RadixNumber} call parses. A string argument is taken
// verbatim; a number argument's decimal representation is reinterpreted
// as the digit sequence itself (fromBinary(1101000) treats "1101000" as
// binary, not the decimal value one million one hundred one thousand).
func digitString(v value.Value) (string, bool) {
	switch t := v.(type) {
	case value.Str:
		return string(t), true
	case value.Num:
		return toRadix(t, 10), true
	default:
		return "", false
	}
}

func validateDigits(digits string, base int, rejectName string) (string, error) {
	sign := ""
	body := digits
	if strings.HasPrefix(body, "-") {
		sign = "-"
		body = body[1:]
	}
	for _, r := range body {
		var d int
		switch {
		case r >= '0' && r <= '9':
			d = int(r - '0')
		case r >= 'a' && r <= 'z':
			d = int(r-'a') + 10
		case r >= 'A' && r <= 'Z':
			d = int(r-'A') + 10
		default:
			return "", dserr.New(dserr.DomainError, "Expected "+rejectName+", got: Number")
		}
		if d >= base {
			return "", dserr.New(dserr.DomainError, "Expected "+rejectName+", got: Number")
		}
	}
	return sign + body, nil
}

func numFromBinary(args []value.Value) (value.Value, error) {
	if err := wantArgs("fromBinary", args, 1); err != nil {
		return nil, err
	}
	digits, ok := digitString(args[0])
	if !ok {
		return nil, dserr.TypeErrorf("string or number", value.PrettyNameOf(args[0]))
	}
	clean, err := validateDigits(digits, 2, "Binary")
	if err != nil {
		return nil, err
	}
	n, err := strconv.ParseInt(clean, 2, 64)
	if err != nil {
		return nil, dserr.New(dserr.DomainError, "Expected Binary, got: Number")
	}
	return value.Num(n), nil
}

func numFromHex(args []value.Value) (value.Value, error) {
	if err := wantArgs("fromHex", args, 1); err != nil {
		return nil, err
	}
	digits, ok := digitString(args[0])
	if !ok {
		return nil, dserr.TypeErrorf("string or number", value.PrettyNameOf(args[0]))
	}
	clean, err := validateDigits(digits, 16, "Hexadecimal")
	if err != nil {
		return nil, err
	}
	n, err := strconv.ParseInt(clean, 16, 64)
	if err != nil {
		return nil, dserr.New(dserr.DomainError, "Expected Hexadecimal, got: Number")
	}
	return value.Num(n), nil
}

func numFromRadixNumber(args []value.Value) (value.Value, error) {
	if err := wantArgs("fromRadixNumber", args, 2); err != nil {
		return nil, err
	}
	digits, ok := digitString(args[0])
	if !ok {
		return nil, dserr.TypeErrorf("string or number", value.PrettyNameOf(args[0]))
	}
	base, err := wantNum("fromRadixNumber", args[1])
	if err != nil {
		return nil, err
	}
	clean, err := validateDigits(digits, int(base), "Radix "+strconv.Itoa(int(base))+" number")
	if err != nil {
		return nil, err
	}
	n, err := strconv.ParseInt(clean, int(base), 64)
	if err != nil {
		return nil, dserr.New(dserr.DomainError, "Expected Radix number, got: Number")
	}
	return value.Num(n), nil
}

func numberArg(name string, args []value.Value) (value.Num, error) {
	if err := wantArgs(name, args, 1); err != nil {
		return 0, err
	}
	return wantNum(name, args[0])
}
