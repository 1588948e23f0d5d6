package core

import "testing"

func TestParseCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"", 0, true},
		{"  ", 0, true},
		{"0", 0, true},
		{"3", 3, true},
		{" 12 ", 12, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"3.5", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseCount(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseCount(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseCount(%q) expected error", tc.in)
		}
	}
}

func TestParseWeight(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"", 0, true},
		{"0", 0, true},
		{"72.5", 72.5, true},
		{"72,5", 72.5, true},
		{"100", 100, true},
		{".5", 0.5, true},
		{"-5", 0, false},
		{"+5", 0, false},
		{"1.2.3", 0, false},
		{"kg", 0, false},
		{".", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseWeight(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseWeight(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseWeight(%q) expected error", tc.in)
		}
	}
}
