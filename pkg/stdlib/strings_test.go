package stdlib_test

import (
	"testing"

	"github.com/dsonnet-io/dsonnet/pkg/value"
)

func TestStringsCamelizeAndCapitalize(t *testing.T) {
	wantStrVal(t, `ds.strings.camelize("hello world")`, "helloWorld")
	wantStrVal(t, `ds.strings.capitalize("hello world")`, "Hello World")
}

func TestStringsDasherizeUnderscore(t *testing.T) {
	wantStrVal(t, `ds.strings.dasherize("Hello World")`, "hello-world")
	wantStrVal(t, `ds.strings.underscore("Hello World")`, "hello_world")
}

func TestStringsPluralizeSingularize(t *testing.T) {
	wantStrVal(t, `ds.strings.pluralize("box")`, "boxes")
	wantStrVal(t, `ds.strings.pluralize("city")`, "cities")
	wantStrVal(t, `ds.strings.singularize("cities")`, "city")
	wantStrVal(t, `ds.strings.singularize("boxes")`, "box")
}

func TestStringsOrdinalize(t *testing.T) {
	wantStrVal(t, `ds.strings.ordinalize(1)`, "1st")
	wantStrVal(t, `ds.strings.ordinalize(2)`, "2nd")
	wantStrVal(t, `ds.strings.ordinalize(3)`, "3rd")
	wantStrVal(t, `ds.strings.ordinalize(4)`, "4th")
	wantStrVal(t, `ds.strings.ordinalize(11)`, "11th")
	wantStrVal(t, `ds.strings.ordinalize(12)`, "12th")
	wantStrVal(t, `ds.strings.ordinalize(13)`, "13th")
	wantStrVal(t, `ds.strings.ordinalize(21)`, "21st")
	wantStrVal(t, `ds.strings.ordinalize(111)`, "111th")
}

func TestStringsStartsEndsWithCaseInsensitive(t *testing.T) {
	wantBool(t, `ds.strings.startsWith("Hello", "he")`, true)
	wantBool(t, `ds.strings.endsWith("Hello", "LO")`, true)
	wantBool(t, `ds.strings.startsWith("Hello", "xy")`, false)
}

func TestStringsTrimUpperLower(t *testing.T) {
	wantStrVal(t, `ds.strings.trim("  hi  ")`, "hi")
	wantStrVal(t, `ds.strings.upper("hi")`, "HI")
	wantStrVal(t, `ds.strings.lower("HI")`, "hi")
}

func TestStringsCombineAndJoinBy(t *testing.T) {
	wantStrVal(t, `ds.strings.combine("count: ", 3)`, "count: 3")
	wantStrVal(t, `ds.strings.joinBy(["a", "b", "c"], "-")`, "a-b-c")
}

func TestStringsSubstringBeforeAfter(t *testing.T) {
	wantStrVal(t, `ds.strings.substringBefore("a-b-c", "-")`, "a")
	wantStrVal(t, `ds.strings.substringAfter("a-b-c", "-")`, "b-c")
	wantStrVal(t, `ds.strings.substringAfter("abc", "")`, "bc")
}

func TestStringsIndexOfSplitReplace(t *testing.T) {
	wantNum(t, `ds.strings.indexOf("hello", "ll")`, 2)
	v := run(t, `ds.strings.split("a,b,c", ",")`)
	arr, ok := v.(*value.Arr)
	if !ok || arr.Len() != 3 {
		t.Fatalf("split: got %v", v)
	}
	wantStrVal(t, `ds.strings.replace("aaa", "a", "b")`, "bbb")
}
