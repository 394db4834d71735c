package value

import (
	"testing"

	"github.com/openconfig/goyang/pkg/yang"
)

func TestParseInteger(t *testing.T) {
	yt := &yang.YangType{Kind: yang.Yuint32}
	v, err := Parse("42", yt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindUint32 || v.Uint != 42 {
		t.Fatalf("got %+v", v)
	}
	if _, err := Parse("not-a-number", yt); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseDecimal64RoundTrip(t *testing.T) {
	yt := &yang.YangType{Kind: yang.Ydecimal64, FractionDigits: 2}
	v, err := Parse("3.14", yt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Format(v); got != "3.14" {
		t.Fatalf("Format() = %q, want 3.14", got)
	}

	neg, err := Parse("-0.5", yt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Format(neg); got != "-0.50" {
		t.Fatalf("Format() = %q, want -0.50", got)
	}
}

func TestDecimal64TooManyFractionDigits(t *testing.T) {
	yt := &yang.YangType{Kind: yang.Ydecimal64, FractionDigits: 1}
	if _, err := Parse("1.23", yt); err == nil {
		t.Fatal("expected parse error for excess fraction digits")
	}
}

func TestCompareDecimalDifferentScale(t *testing.T) {
	a, _ := Parse("1.5", &yang.YangType{Kind: yang.Ydecimal64, FractionDigits: 1})
	b, _ := Parse("1.50", &yang.YangType{Kind: yang.Ydecimal64, FractionDigits: 2})
	if Compare(a, b) != 0 {
		t.Fatalf("expected equal across differing fraction-digits scale")
	}
}

func TestCompareBoolFalseLessThanTrue(t *testing.T) {
	f, _ := Parse("false", &yang.YangType{Kind: yang.Ybool})
	tr, _ := Parse("true", &yang.YangType{Kind: yang.Ybool})
	if Compare(f, tr) >= 0 {
		t.Fatal("expected false < true")
	}
}

func TestCompareMissingSortsBeforePresent(t *testing.T) {
	present, _ := Parse("x", &yang.YangType{Kind: yang.Ystring})
	var missing Value
	if Compare(missing, present) >= 0 {
		t.Fatal("expected missing value to sort before present value")
	}
}

func TestUnionTriesMemberTypes(t *testing.T) {
	yt := &yang.YangType{
		Kind: yang.Yunion,
		Type: []*yang.YangType{
			{Kind: yang.Yuint32},
			{Kind: yang.Ystring},
		},
	}
	v, err := Parse("hello", yt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindString || v.Str != "hello" {
		t.Fatalf("got %+v, want fallback to string member", v)
	}
}

func TestEmptyValuesCompareEqual(t *testing.T) {
	a, _ := Parse("", &yang.YangType{Kind: yang.Yempty})
	b, _ := Parse("", &yang.YangType{Kind: yang.Yempty})
	if Compare(a, b) != 0 {
		t.Fatal("expected empty values to compare equal")
	}
}
