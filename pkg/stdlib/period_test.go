package stdlib_test

import (
	"strings"
	"testing"
)

func TestPeriodDurationFieldsAppearInOutput(t *testing.T) {
	out := valueString(t, run(t, `ds.period.duration({hours: 2, minutes: 30})`))
	if !strings.Contains(out, "2H") || !strings.Contains(out, "30M") {
		t.Fatalf("duration: got %v, want an ISO-8601 duration containing 2H and 30M", out)
	}
}

func TestPeriodPeriodFieldsAppearInOutput(t *testing.T) {
	out := valueString(t, run(t, `ds.period.period({years: 1, months: 2})`))
	if !strings.Contains(out, "1Y") || !strings.Contains(out, "2M") {
		t.Fatalf("period: got %v, want an ISO-8601 period containing 1Y and 2M", out)
	}
}

func TestPeriodBetweenDatetimes(t *testing.T) {
	out := valueString(t, run(t, `ds.period.between("2024-01-01T00:00:00Z", "2024-02-01T00:00:00Z")`))
	if out == "" {
		t.Fatalf("between: expected a non-empty period string")
	}
}
