package core

import "testing"

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount   float64
		currency string
		want     string
	}{
		{12500, "IQD", "12,500 IQD"},
		{12500, "iqd", "12,500 IQD"},
		{1250000, "IQD", "1,250,000 IQD"},
		{-7500, "IQD", "-7,500 IQD"},
		{500, "", "500 IQD"}, // absent currency defaults to IQD
		{50, "USD", "$50.00"},
		{1234.5, "USD", "$1,234.50"},
		{-3.25, "usd", "-$3.25"},
		{7.5, "eur", "7.5 EUR"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.amount, tc.currency); got != tc.want {
			t.Fatalf("FormatAmount(%v, %q) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		out  float64
		ok   bool
	}{
		{"1", 1, true},
		{"12.5", 12.5, true},
		{"12,5", 12.5, true},
		{" 250 ", 250, true},
		{"-40", -40, true}, // negatives pass through
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimal(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestBucketCurrency(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", CurrencyIQD},
		{"  ", CurrencyIQD},
		{"usd", "USD"},
		{"Usd", "USD"},
		{"xyz", "XYZ"},
	}
	for _, tc := range cases {
		if got := BucketCurrency(tc.in); got != tc.want {
			t.Fatalf("BucketCurrency(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
