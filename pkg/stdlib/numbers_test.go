package stdlib_test

import "testing"

func TestNumbersToFromBinaryHex(t *testing.T) {
	wantStrVal(t, `ds.numbers.toBinary(10)`, "1010")
	wantStrVal(t, `ds.numbers.toHex(255)`, "ff")
	wantNum(t, `ds.numbers.fromBinary("1010")`, 10)
	wantNum(t, `ds.numbers.fromHex("ff")`, 255)
}

func TestNumbersFromBinaryAcceptsNumberLiteral(t *testing.T) {
	// The source digit-sequence quirk: a Num argument's decimal text is
	// reinterpreted as the digit string, not its numeric value.
	wantNum(t, `ds.numbers.fromBinary(1010)`, 10)
}

func TestNumbersRadixRoundTrip(t *testing.T) {
	wantStrVal(t, `ds.numbers.toRadixNumber(35, 36)`, "z")
	wantNum(t, `ds.numbers.fromRadixNumber("z", 36)`, 35)
}
