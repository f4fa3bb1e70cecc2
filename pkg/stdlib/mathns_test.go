package stdlib_test

import "testing"

func TestMathBasics(t *testing.T) {
	wantNum(t, `ds.math.abs(-5)`, 5)
	wantNum(t, `ds.math.ceil(1.2)`, 2)
	wantNum(t, `ds.math.floor(1.8)`, 1)
	wantNum(t, `ds.math.round(1.5)`, 2)
	wantNum(t, `ds.math.sqrt(9)`, 3)
	wantNum(t, `ds.math.pow(2, 10)`, 1024)
	wantNum(t, `ds.math.sign(-3)`, -1)
	wantNum(t, `ds.math.sign(0)`, 0)
}

func TestMathSqrtNegativeErrors(t *testing.T) {
	if err := runErr(t, `ds.math.sqrt(-1)`); err == nil {
		t.Fatalf("expected a domain error for sqrt of a negative number")
	}
}
