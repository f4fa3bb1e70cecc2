package stdlib

import (
	"github.com/dlclark/regexp2"

	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// regexFns wraps dlclark/regexp2, chosen over the standard library's
// regexp because it supports the lookaround and backreference syntax
// the pack's own transformation-language parsers rely on (RE2's
// linear-time guarantee trades away exactly those features).
func regexFns() []fnEntry {
	return []fnEntry{
		{"test", native("test", regexTest)},
		{"match", native("match", regexMatch)},
		{"replace", native("replace", regexReplace)},
		{"split", native("split", regexSplit)},
	}
}

func compileRegex(name string, args []value.Value, idx int) (*regexp2.Regexp, error) {
	pattern, err := wantStr(name, args[idx])
	if err != nil {
		return nil, err
	}
	re, cerr := regexp2.Compile(string(pattern), regexp2.None)
	if cerr != nil {
		return nil, dserr.Newf(dserr.DomainError, "not a valid regular expression: %q", string(pattern))
	}
	return re, nil
}

func regexTest(args []value.Value) (value.Value, error) {
	if err := wantArgs("test", args, 2); err != nil {
		return nil, err
	}
	s, err := wantStr("test", args[0])
	if err != nil {
		return nil, err
	}
	re, cerr := compileRegex("test", args, 1)
	if cerr != nil {
		return nil, cerr
	}
	ok, merr := re.MatchString(string(s))
	if merr != nil {
		return nil, dserr.Newf(dserr.DomainError, "regex match failed: %v", merr)
	}
	return value.Bool(ok), nil
}

// groupsOf converts a regexp2 Match's capture groups (index 0 is the
// whole match) into an array of matched substrings, skipping groups
// that didn't participate in the match.
func groupsOf(m *regexp2.Match) *value.Arr {
	groups := m.Groups()
	cells := make([]*value.Cell, 0, len(groups))
	for i, g := range groups {
		if i == 0 {
			continue
		}
		if len(g.Captures) == 0 {
			continue
		}
		cells = append(cells, value.NewCell(value.Str(g.String())))
	}
	return value.NewArr(cells...)
}

func matchObj(m *regexp2.Match) *value.Obj {
	obj := value.NewObj()
	obj.SetValue("match", value.Str(m.String()))
	obj.SetValue("index", value.Num(m.Index))
	obj.SetValue("groups", groupsOf(m))
	return obj
}

// regexMatch returns every non-overlapping match as an array of
// {match, index, groups} objects, walking FindNextMatch until exhausted.
func regexMatch(args []value.Value) (value.Value, error) {
	if err := wantArgs("match", args, 2); err != nil {
		return nil, err
	}
	s, err := wantStr("match", args[0])
	if err != nil {
		return nil, err
	}
	re, cerr := compileRegex("match", args, 1)
	if cerr != nil {
		return nil, cerr
	}
	var cells []*value.Cell
	m, merr := re.FindStringMatch(string(s))
	for m != nil && merr == nil {
		cells = append(cells, value.NewCell(matchObj(m)))
		m, merr = re.FindNextMatch(m)
	}
	if merr != nil {
		return nil, dserr.Newf(dserr.DomainError, "regex match failed: %v", merr)
	}
	return value.NewArr(cells...), nil
}

func regexReplace(args []value.Value) (value.Value, error) {
	if err := wantArgs("replace", args, 3); err != nil {
		return nil, err
	}
	s, err := wantStr("replace", args[0])
	if err != nil {
		return nil, err
	}
	re, cerr := compileRegex("replace", args, 1)
	if cerr != nil {
		return nil, cerr
	}
	repl, err := wantStr("replace", args[2])
	if err != nil {
		return nil, err
	}
	out, rerr := re.Replace(string(s), string(repl), -1, -1)
	if rerr != nil {
		return nil, dserr.Newf(dserr.DomainError, "regex replace failed: %v", rerr)
	}
	return value.Str(out), nil
}

// regexSplit cuts s at every match, returning the text between (and
// around) matches, in order — regexp2 has no built-in Split.
func regexSplit(args []value.Value) (value.Value, error) {
	if err := wantArgs("split", args, 2); err != nil {
		return nil, err
	}
	s, err := wantStr("split", args[0])
	if err != nil {
		return nil, err
	}
	re, cerr := compileRegex("split", args, 1)
	if cerr != nil {
		return nil, cerr
	}
	str := string(s)
	var parts []string
	pos := 0
	m, merr := re.FindStringMatch(str)
	for m != nil && merr == nil {
		parts = append(parts, str[pos:m.Index])
		pos = m.Index + m.Length
		m, merr = re.FindNextMatch(m)
	}
	if merr != nil {
		return nil, dserr.Newf(dserr.DomainError, "regex split failed: %v", merr)
	}
	parts = append(parts, str[pos:])
	cells := make([]*value.Cell, len(parts))
	for i, p := range parts {
		cells[i] = value.NewCell(value.Str(p))
	}
	return value.NewArr(cells...), nil
}
