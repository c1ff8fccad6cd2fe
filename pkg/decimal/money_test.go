package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestNewMoney(t *testing.T) {
	cases := map[float64]string{
		12.345: "12.35",
		-25:    "-25.00",
		10:     "10.00",
		0.005:  "0.01",
	}
	for in, want := range cases {
		if got := NewMoney(in).String(); got != want {
			t.Errorf("NewMoney(%v).String() = %q, want %q", in, got, want)
		}
	}
}

func TestRounding(t *testing.T) {
	cases := []struct{ in, out string }{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"2.355", "2.36"},
		{"-2.345", "-2.35"},
	}
	for _, c := range cases {
		m := Money{stddec.RequireFromString(c.in)}
		if got := m.Round().Decimal.String(); got != c.out {
			t.Fatalf("round(%s) got %s want %s", c.in, got, c.out)
		}
	}
}

func TestLocalized(t *testing.T) {
	cases := []struct {
		in     string
		places int32
		neg    bool
		digits string
	}{
		{"0", 2, false, "0,00"},
		{"12", 2, false, "12,00"},
		{"123", 2, false, "123,00"},
		{"1234.5", 2, false, "1.234,50"},
		{"12345.678", 2, false, "12.345,68"},
		{"1234567.891", 2, false, "1.234.567,89"},
		{"-25", 2, true, "25,00"},
		{"-0.001", 2, false, "0,00"},
		{"70", 1, false, "70,0"},
		{"66.66", 1, false, "66,7"},
		{"1234.56", 1, false, "1.234,6"},
		{"999999.999", 2, false, "1.000.000,00"},
	}
	for _, c := range cases {
		d := stddec.RequireFromString(c.in)
		neg, digits := Localized(d, c.places, BrazilianSeparators)
		if neg != c.neg || digits != c.digits {
			t.Errorf("Localized(%s, %d) = (%v, %q), want (%v, %q)", c.in, c.places, neg, digits, c.neg, c.digits)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	cases := map[float64]string{
		1234.5: "R$\u00a01.234,50",
		0:      "R$\u00a00,00",
		-25:    "-R$\u00a025,00",
		0.005:  "R$\u00a00,01",
	}
	for in, want := range cases {
		if got := NewMoney(in).FormatBRL(); got != want {
			t.Errorf("FormatBRL(%v) = %q, want %q", in, got, want)
		}
	}
}
