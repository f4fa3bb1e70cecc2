package stdlib

import (
	"github.com/rickb777/period"

	"github.com/dsonnet-io/dsonnet/pkg/dserr"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// periodFns exposes ISO-8601 duration/period construction and
// calendar-distance computation, delegating to rickb777/period rather
// than hand-parsing PnYnMnDTnHnMnS strings.
func periodFns() []fnEntry {
	return []fnEntry{
		{"between", native("between", periodBetween)},
		{"duration", native("duration", periodDuration)},
		{"period", native("period", periodPeriod)},
	}
}

func periodBetween(args []value.Value) (value.Value, error) {
	if err := wantArgs("between", args, 2); err != nil {
		return nil, err
	}
	a, err := datetimeArg("between", args[:1])
	if err != nil {
		return nil, err
	}
	b, err := datetimeArg("between", args[1:])
	if err != nil {
		return nil, err
	}
	return value.Str(period.Between(a, b).String()), nil
}

// fieldOf reads an integer-valued object field, defaulting to 0 when
// absent — duration/period accept a partial object (e.g. {hours: 2}).
func fieldOf(obj *value.Obj, key string) (int, error) {
	m, ok := obj.Get(key)
	if !ok {
		return 0, nil
	}
	v, err := m.Cell.Force()
	if err != nil {
		return 0, err
	}
	if value.IsNull(v) {
		return 0, nil
	}
	n, ok := v.(value.Num)
	if !ok {
		return 0, dserr.TypeErrorf("number", value.PrettyNameOf(v))
	}
	return int(n), nil
}

// periodDuration accumulates days/hours/minutes/seconds into an ISO-8601
// duration string — the clock-time half of a period.
func periodDuration(args []value.Value) (value.Value, error) {
	if err := wantArgs("duration", args, 1); err != nil {
		return nil, err
	}
	obj, err := wantObj("duration", args[0])
	if err != nil {
		return nil, err
	}
	days, err := fieldOf(obj, "days")
	if err != nil {
		return nil, err
	}
	hours, err := fieldOf(obj, "hours")
	if err != nil {
		return nil, err
	}
	minutes, err := fieldOf(obj, "minutes")
	if err != nil {
		return nil, err
	}
	seconds, err := fieldOf(obj, "seconds")
	if err != nil {
		return nil, err
	}
	p := period.New(0, 0, 0, days, hours, minutes, seconds)
	return value.Str(p.String()), nil
}

// periodPeriod accumulates years/months/days into an ISO-8601 calendar
// period string — the date half of a period.
func periodPeriod(args []value.Value) (value.Value, error) {
	if err := wantArgs("period", args, 1); err != nil {
		return nil, err
	}
	obj, err := wantObj("period", args[0])
	if err != nil {
		return nil, err
	}
	years, err := fieldOf(obj, "years")
	if err != nil {
		return nil, err
	}
	months, err := fieldOf(obj, "months")
	if err != nil {
		return nil, err
	}
	days, err := fieldOf(obj, "days")
	if err != nil {
		return nil, err
	}
	p := period.New(years, months, 0, days, 0, 0, 0)
	return value.Str(p.String()), nil
}
