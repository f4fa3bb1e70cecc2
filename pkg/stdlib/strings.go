package stdlib

import (
	"strings"
	"unicode"

	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

func stringsFns() []fnEntry {
	return []fnEntry{
		{"camelize", native("camelize", strCamelize)},
		{"capitalize", native("capitalize", strCapitalize)},
		{"dasherize", native("dasherize", strDasherize)},
		{"underscore", native("underscore", strUnderscore)},
		{"pluralize", native("pluralize", strPluralize)},
		{"singularize", native("singularize", strSingularize)},
		{"ordinalize", native("ordinalize", strOrdinalize)},
		{"startsWith", native("startsWith", strStartsWith)},
		{"endsWith", native("endsWith", strEndsWith)},
		{"trim", native("trim", strTrim)},
		{"upper", native("upper", strUpper)},
		{"lower", native("lower", strLower)},
		{"combine", native("combine", strCombine)},
		{"joinBy", native("joinBy", strJoinBy)},
		{"toString", native("toString", strToString)},
		{"substringBefore", native("substringBefore", strSubstringBefore)},
		{"substringAfter", native("substringAfter", strSubstringAfter)},
		{"indexOf", native("indexOf", strIndexOf)},
		{"split", native("split", strSplit)},
		{"replace", native("replace", strReplace)},
	}
}

// tokenize splits s into words on runs of [_\s-]+ and on
// lowercase→uppercase transitions, the shared rule behind camelize,
// capitalize, dasherize, and underscore.
func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case i > 0 && unicode.IsLower(runes[i-1]) && unicode.IsUpper(r):
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func strCamelize(args []value.Value) (value.Value, error) {
	s, err := stringArg("camelize", args)
	if err != nil {
		return nil, err
	}
	tokens := tokenize(string(s))
	var b strings.Builder
	for i, t := range tokens {
		lt := strings.ToLower(t)
		if i == 0 {
			b.WriteString(lt)
			continue
		}
		r := []rune(lt)
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		b.WriteString(string(r))
	}
	return value.Str(b.String()), nil
}

func strCapitalize(args []value.Value) (value.Value, error) {
	s, err := stringArg("capitalize", args)
	if err != nil {
		return nil, err
	}
	tokens := tokenize(string(s))
	words := make([]string, len(tokens))
	for i, t := range tokens {
		lt := strings.ToLower(t)
		r := []rune(lt)
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		words[i] = string(r)
	}
	return value.Str(strings.Join(words, " ")), nil
}

func strDasherize(args []value.Value) (value.Value, error) {
	return tokenJoin("dasherize", args, "-")
}

func strUnderscore(args []value.Value) (value.Value, error) {
	return tokenJoin("underscore", args, "_")
}

func tokenJoin(name string, args []value.Value, sep string) (value.Value, error) {
	s, err := stringArg(name, args)
	if err != nil {
		return nil, err
	}
	tokens := tokenize(string(s))
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}
	return value.Str(strings.Join(tokens, sep)), nil
}

// pluralize/singularize apply minimal English heuristics: weekday
// names are regular (+s/-s), y→ies, x-endings take
// +es, everything else is default +s/-s.
var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

func strPluralize(args []value.Value) (value.Value, error) {
	s, err := stringArg("pluralize", args)
	if err != nil {
		return nil, err
	}
	str := string(s)
	lower := strings.ToLower(str)
	switch {
	case weekdays[lower]:
		return value.Str(str + "s"), nil
	case strings.HasSuffix(str, "y") && len(str) > 0 && !isVowel(rune(str[len(str)-2])):
		return value.Str(str[:len(str)-1] + "ies"), nil
	case strings.HasSuffix(str, "x"):
		return value.Str(str + "es"), nil
	default:
		return value.Str(str + "s"), nil
	}
}

func strSingularize(args []value.Value) (value.Value, error) {
	s, err := stringArg("singularize", args)
	if err != nil {
		return nil, err
	}
	str := string(s)
	switch {
	case strings.HasSuffix(str, "ies"):
		return value.Str(str[:len(str)-3] + "y"), nil
	case strings.HasSuffix(str, "xes"):
		return value.Str(str[:len(str)-2]), nil
	case strings.HasSuffix(str, "s"):
		return value.Str(str[:len(str)-1]), nil
	default:
		return value.Str(str), nil
	}
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}

// ordinalize implements the teens-special-case rule: 11/12/13 (and
// any n ending those two digits, e.g. 111/112/113) always take "th";
// otherwise the last digit picks st/nd/rd/th.
func strOrdinalize(args []value.Value) (value.Value, error) {
	if err := wantArgs("ordinalize", args, 1); err != nil {
		return nil, err
	}
	n, err := wantNum("ordinalize", args[0])
	if err != nil {
		return nil, err
	}
	i := int64(n)
	abs := i
	if abs < 0 {
		abs = -abs
	}
	suffix := "th"
	if abs%100 < 11 || abs%100 > 13 {
		switch abs % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return value.Str(value.FormatNumber(n) + suffix), nil
}

func strStartsWith(args []value.Value) (value.Value, error) {
	if err := wantArgs("startsWith", args, 2); err != nil {
		return nil, err
	}
	s, err := wantStr("startsWith", args[0])
	if err != nil {
		return nil, err
	}
	prefix, err := wantStr("startsWith", args[1])
	if err != nil {
		return nil, err
	}
	// Intentional case-insensitivity: both operands are uppercased before
	// comparing, matching the source behavior this was ported from.
	return value.Bool(strings.HasPrefix(strings.ToUpper(string(s)), strings.ToUpper(string(prefix)))), nil
}

func strEndsWith(args []value.Value) (value.Value, error) {
	if err := wantArgs("endsWith", args, 2); err != nil {
		return nil, err
	}
	s, err := wantStr("endsWith", args[0])
	if err != nil {
		return nil, err
	}
	suffix, err := wantStr("endsWith", args[1])
	if err != nil {
		return nil, err
	}
	return value.Bool(strings.HasSuffix(strings.ToUpper(string(s)), strings.ToUpper(string(suffix)))), nil
}

func strTrim(args []value.Value) (value.Value, error) {
	s, err := stringArg("trim", args)
	if err != nil {
		return nil, err
	}
	return value.Str(strings.TrimSpace(string(s))), nil
}

func strUpper(args []value.Value) (value.Value, error) {
	s, err := stringArg("upper", args)
	if err != nil {
		return nil, err
	}
	return value.Str(strings.ToUpper(string(s))), nil
}

func strLower(args []value.Value) (value.Value, error) {
	s, err := stringArg("lower", args)
	if err != nil {
		return nil, err
	}
	return value.Str(strings.ToLower(string(s))), nil
}

// combine auto-coerces number↔string: integers render without a
// fraction, non-integers use default double formatting.
func strCombine(args []value.Value) (value.Value, error) {
	if err := wantArgs("combine", args, 2); err != nil {
		return nil, err
	}
	a, ok := value.CoerceScalar(args[0])
	if !ok {
		return nil, dserr.TypeErrorf("number, string, or boolean", value.PrettyNameOf(args[0]))
	}
	b, ok := value.CoerceScalar(args[1])
	if !ok {
		return nil, dserr.TypeErrorf("number, string, or boolean", value.PrettyNameOf(args[1]))
	}
	return value.Str(a + b), nil
}

func strJoinBy(args []value.Value) (value.Value, error) {
	if err := wantArgs("joinBy", args, 2); err != nil {
		return nil, err
	}
	arr, err := wantArr("joinBy", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := wantStr("joinBy", args[1])
	if err != nil {
		return nil, err
	}
	parts := make([]string, arr.Len())
	for i, c := range arr.Elems {
		el, err := c.Force()
		if err != nil {
			return nil, err
		}
		s, ok := value.CoerceScalar(el)
		if !ok {
			return nil, dserr.TypeErrorf("number, string, or boolean", value.PrettyNameOf(el))
		}
		parts[i] = s
	}
	return value.Str(strings.Join(parts, string(sep))), nil
}

func strToString(args []value.Value) (value.Value, error) {
	if err := wantArgs("toString", args, 1); err != nil {
		return nil, err
	}
	s, ok := value.CoerceScalar(args[0])
	if !ok {
		return nil, dserr.TypeErrorf("number, string, or boolean", value.PrettyNameOf(args[0]))
	}
	return value.Str(s), nil
}

func strSubstringBefore(args []value.Value) (value.Value, error) {
	if err := wantArgs("substringBefore", args, 2); err != nil {
		return nil, err
	}
	s, err := wantStr("substringBefore", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := wantStr("substringBefore", args[1])
	if err != nil {
		return nil, err
	}
	i := strings.Index(string(s), string(sep))
	if i < 0 {
		return value.Str(""), nil
	}
	return value.Str(string(s)[:i]), nil
}

// substringAfter: the empty-separator case returns the whole string
// minus its first character rather than the string unchanged.
func strSubstringAfter(args []value.Value) (value.Value, error) {
	if err := wantArgs("substringAfter", args, 2); err != nil {
		return nil, err
	}
	s, err := wantStr("substringAfter", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := wantStr("substringAfter", args[1])
	if err != nil {
		return nil, err
	}
	if sep == "" {
		r := []rune(string(s))
		if len(r) == 0 {
			return value.Str(""), nil
		}
		return value.Str(string(r[1:])), nil
	}
	i := strings.Index(string(s), string(sep))
	if i < 0 {
		return value.Str(""), nil
	}
	return value.Str(string(s)[i+len(sep):]), nil
}

func strIndexOf(args []value.Value) (value.Value, error) {
	if err := wantArgs("indexOf", args, 2); err != nil {
		return nil, err
	}
	s, err := wantStr("indexOf", args[0])
	if err != nil {
		return nil, err
	}
	sub, err := wantStr("indexOf", args[1])
	if err != nil {
		return nil, err
	}
	return value.Num(strings.Index(string(s), string(sub))), nil
}

func strSplit(args []value.Value) (value.Value, error) {
	if err := wantArgs("split", args, 2); err != nil {
		return nil, err
	}
	s, err := wantStr("split", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := wantStr("split", args[1])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(string(s), string(sep))
	cells := make([]*value.Cell, len(parts))
	for i, p := range parts {
		cells[i] = value.NewCell(value.Str(p))
	}
	return value.NewArr(cells...), nil
}

func strReplace(args []value.Value) (value.Value, error) {
	if err := wantArgs("replace", args, 3); err != nil {
		return nil, err
	}
	s, err := wantStr("replace", args[0])
	if err != nil {
		return nil, err
	}
	old, err := wantStr("replace", args[1])
	if err != nil {
		return nil, err
	}
	newS, err := wantStr("replace", args[2])
	if err != nil {
		return nil, err
	}
	return value.Str(strings.ReplaceAll(string(s), string(old), string(newS))), nil
}

func stringArg(name string, args []value.Value) (value.Str, error) {
	if err := wantArgs(name, args, 1); err != nil {
		return "", err
	}
	return wantStr(name, args[0])
}
