package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"0", "$0.00"},
		{"1234.5", "$1,234.50"},
		{"-1234.5", "-$1,234.50"},
		{"1000000", "$1,000,000.00"},
		{"999.999", "$1,000.00"},
		{"0.4", "$0.40"},
	}

	for _, tc := range cases {
		got := FormatMoney(decimal.RequireFromString(tc.input))
		if got != tc.want {
			t.Fatalf("FormatMoney(%s) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestClampFloat(t *testing.T) {
	if got := ClampFloat(150, 0, 100); got != 100 {
		t.Fatalf("ClampFloat(150, 0, 100) = %v", got)
	}
	if got := ClampFloat(-3, 0, 100); got != 0 {
		t.Fatalf("ClampFloat(-3, 0, 100) = %v", got)
	}
	if got := ClampFloat(42, 0, 100); got != 42 {
		t.Fatalf("ClampFloat(42, 0, 100) = %v", got)
	}
}

func TestUppercaseFirst(t *testing.T) {
	if got := UppercaseFirst("marzo"); got != "Marzo" {
		t.Fatalf("UppercaseFirst = %q", got)
	}
	if got := UppercaseFirst(""); got != "" {
		t.Fatalf("empty string must stay empty, got %q", got)
	}
}

func TestParseDecimal(t *testing.T) {
	if _, err := ParseDecimal(""); err == nil {
		t.Fatalf("empty string must fail")
	}
	got, err := ParseDecimal(" 12.50 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("ParseDecimal = %s", got)
	}
}
