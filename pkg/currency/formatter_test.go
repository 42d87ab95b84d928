package currency

import "testing"

func TestFormatBDT(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "BDT 0"},
		{999, "BDT 999"},
		{1000, "BDT 1,000"},
		{6435, "BDT 6,435"},
		{123456, "BDT 1,23,456"},
		{1234567, "BDT 12,34,567"},
		{12345678, "BDT 1,23,45,678"},
		{-5850, "-BDT 5,850"},
		{5849.5, "BDT 5,850"},
	}

	for _, tc := range cases {
		if got := FormatBDT(tc.amount); got != tc.want {
			t.Errorf("FormatBDT(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
