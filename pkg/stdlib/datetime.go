package stdlib

import (
	"strings"
	"time"

	"github.com/rickb777/period"

	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// isoLayout is ISO_OFFSET_DATE_TIME, the one wire format every datetime
// value takes: all datetime values are strings in this shape.
const isoLayout = "2006-01-02T15:04:05Z07:00"
const isoLayoutNano = "2006-01-02T15:04:05.999999999Z07:00"

func datetimeFns() []fnEntry {
	return []fnEntry{
		{"atBeginningOfDay", native("atBeginningOfDay", dtAtBeginningOfDay)},
		{"atBeginningOfHour", native("atBeginningOfHour", dtAtBeginningOfHour)},
		{"atBeginningOfMonth", native("atBeginningOfMonth", dtAtBeginningOfMonth)},
		{"atBeginningOfWeek", native("atBeginningOfWeek", dtAtBeginningOfWeek)},
		{"atBeginningOfYear", native("atBeginningOfYear", dtAtBeginningOfYear)},
		{"plus", native("plus", dtPlus)},
		{"minus", native("minus", dtMinus)},
		{"changeTimeZone", native("changeTimeZone", dtChangeTimeZone)},
		{"compare", native("compare", dtCompare)},
		{"daysBetween", native("daysBetween", dtDaysBetween)},
		{"parse", native("parse", dtParse)},
		{"now", native("now", dtNow)},
	}
}

func formatISO(t time.Time) string {
	if t.Nanosecond() == 0 {
		return t.Format(isoLayout)
	}
	return t.Format(isoLayoutNano)
}

func parseISO(s string) (time.Time, error) {
	t, err := time.Parse(isoLayoutNano, s)
	if err != nil {
		return time.Time{}, dserr.Newf(dserr.DomainError, "not a valid ISO_OFFSET_DATE_TIME value: %q", s)
	}
	return t, nil
}

func datetimeArg(name string, args []value.Value) (time.Time, error) {
	if err := wantArgs(name, args, 1); err != nil {
		return time.Time{}, err
	}
	s, err := wantStr(name, args[0])
	if err != nil {
		return time.Time{}, err
	}
	return parseISO(string(s))
}

func dtAtBeginningOfDay(args []value.Value) (value.Value, error) {
	t, err := datetimeArg("atBeginningOfDay", args)
	if err != nil {
		return nil, err
	}
	y, m, d := t.Date()
	return value.Str(formatISO(time.Date(y, m, d, 0, 0, 0, 0, t.Location()))), nil
}

func dtAtBeginningOfHour(args []value.Value) (value.Value, error) {
	t, err := datetimeArg("atBeginningOfHour", args)
	if err != nil {
		return nil, err
	}
	y, m, d := t.Date()
	return value.Str(formatISO(time.Date(y, m, d, t.Hour(), 0, 0, 0, t.Location()))), nil
}

func dtAtBeginningOfMonth(args []value.Value) (value.Value, error) {
	t, err := datetimeArg("atBeginningOfMonth", args)
	if err != nil {
		return nil, err
	}
	y, m, _ := t.Date()
	return value.Str(formatISO(time.Date(y, m, 1, 0, 0, 0, 0, t.Location()))), nil
}

func dtAtBeginningOfYear(args []value.Value) (value.Value, error) {
	t, err := datetimeArg("atBeginningOfYear", args)
	if err != nil {
		return nil, err
	}
	y, _, _ := t.Date()
	return value.Str(formatISO(time.Date(y, 1, 1, 0, 0, 0, 0, t.Location()))), nil
}

// atBeginningOfWeek treats Sunday as the start of the week: it rolls
// back to the most recent Sunday, or stays put when t already falls on
// one (time.Weekday's Sunday == 0 needs no rollback at all).
func dtAtBeginningOfWeek(args []value.Value) (value.Value, error) {
	t, err := datetimeArg("atBeginningOfWeek", args)
	if err != nil {
		return nil, err
	}
	dow := int(t.Weekday())
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return value.Str(formatISO(midnight.AddDate(0, 0, -dow))), nil
}

func dtCompare(args []value.Value) (value.Value, error) {
	if err := wantArgs("compare", args, 2); err != nil {
		return nil, err
	}
	a, err := datetimeArg("compare", args[:1])
	if err != nil {
		return nil, err
	}
	b, err := datetimeArg("compare", args[1:])
	if err != nil {
		return nil, err
	}
	switch {
	case a.Before(b):
		return value.Num(-1), nil
	case a.After(b):
		return value.Num(1), nil
	default:
		return value.Num(0), nil
	}
}

func dtDaysBetween(args []value.Value) (value.Value, error) {
	if err := wantArgs("daysBetween", args, 2); err != nil {
		return nil, err
	}
	a, err := datetimeArg("daysBetween", args[:1])
	if err != nil {
		return nil, err
	}
	b, err := datetimeArg("daysBetween", args[1:])
	if err != nil {
		return nil, err
	}
	return value.Num(b.Sub(a).Hours() / 24), nil
}

func dtChangeTimeZone(args []value.Value) (value.Value, error) {
	if err := wantArgs("changeTimeZone", args, 2); err != nil {
		return nil, err
	}
	t, err := datetimeArg("changeTimeZone", args[:1])
	if err != nil {
		return nil, err
	}
	tz, err := wantStr("changeTimeZone", args[1])
	if err != nil {
		return nil, err
	}
	loc, lerr := time.LoadLocation(string(tz))
	if lerr != nil {
		return nil, dserr.Newf(dserr.DomainError, "unknown time zone: %q", string(tz))
	}
	return value.Str(formatISO(t.In(loc))), nil
}

// dtPlus/dtMinus delegate to rickb777/period rather than reimplementing
// ISO-8601 calendar math: the period string's own "T" marker already
// tells AddTo whether to apply date or clock components, so no separate
// dispatch is needed here.
func dtPlus(args []value.Value) (value.Value, error) {
	return dtShift(args, false)
}

func dtMinus(args []value.Value) (value.Value, error) {
	return dtShift(args, true)
}

func dtShift(args []value.Value, negate bool) (value.Value, error) {
	if err := wantArgs("plus/minus", args, 2); err != nil {
		return nil, err
	}
	t, err := datetimeArg("plus/minus", args[:1])
	if err != nil {
		return nil, err
	}
	periodStr, err := wantStr("plus/minus", args[1])
	if err != nil {
		return nil, err
	}
	p, perr := period.Parse(string(periodStr))
	if perr != nil {
		return nil, dserr.Newf(dserr.DomainError, "not a valid ISO-8601 period: %q", string(periodStr))
	}
	if negate {
		p = p.Negate()
	}
	result, _ := p.AddTo(t)
	return value.Str(formatISO(result)), nil
}

// dtParse accepts arbitrary Java-style date patterns (translated to Go's
// reference layout) or the case-insensitive sentinels "epoch"/"timestamp"
// for seconds-since-epoch input. A parsed value with no zone information
// defaults to Z.
func dtParse(args []value.Value) (value.Value, error) {
	if err := wantArgs("parse", args, 2); err != nil {
		return nil, err
	}
	format, err := wantStr("parse", args[1])
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(strings.TrimSpace(string(format)))
	if lower == "epoch" || lower == "timestamp" {
		n, err := wantNum("parse", args[0])
		if err != nil {
			return nil, err
		}
		return value.Str(formatISO(time.Unix(int64(n), 0).UTC())), nil
	}
	raw, err := wantStr("parse", args[0])
	if err != nil {
		return nil, err
	}
	layout := translateDatePattern(string(format))
	t, perr := time.Parse(layout, string(raw))
	if perr != nil {
		return nil, dserr.Newf(dserr.DomainError, "cannot parse %q with pattern %q", string(raw), string(format))
	}
	if t.Location() == time.UTC && !strings.ContainsAny(string(format), "XZxz") {
		t = t.UTC()
	}
	return value.Str(formatISO(t)), nil
}

func dtNow(args []value.Value) (value.Value, error) {
	return value.Str(formatISO(time.Now().UTC())), nil
}

// translateDatePattern maps the common Java SimpleDateFormat letters
// (yyyy, MM, dd, HH, mm, ss, SSS, XXX, Z) onto Go's reference-time
// layout; uncommon letters pass through unchanged, which only matters
// for patterns this engine doesn't need to support.
func translateDatePattern(pattern string) string {
	replacer := strings.NewReplacer(
		"yyyy", "2006",
		"yy", "06",
		"MMMM", "January",
		"MMM", "Jan",
		"MM", "01",
		"dd", "02",
		"HH", "15",
		"hh", "03",
		"mm", "04",
		"ss", "05",
		"SSS", "000",
		"XXX", "Z07:00",
		"XX", "Z0700",
		"X", "Z07",
		"ZZZZZ", "Z07:00",
		"Z", "-0700",
		"a", "PM",
		"'T'", "T",
	)
	return replacer.Replace(pattern)
}
