package utils

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"23:59", 1439, false},
		{"9:00", 0, true},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"9am", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseClock(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatClockClamps(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{1439, "23:59"},
		{1500, "23:59"},
		{-10, "00:00"},
	}

	for _, tc := range tests {
		if got := FormatClock(tc.in); got != tc.want {
			t.Fatalf("FormatClock(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClockRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "07:05", "12:30", "23:59"} {
		mins, err := ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", s, err)
		}
		if got := FormatClock(mins); got != s {
			t.Fatalf("round trip %q -> %d -> %q", s, mins, got)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := FormatDate(d); got != "2024-01-15" {
		t.Fatalf("round trip got %q", got)
	}
	if _, err := ParseDate("15/01/2024"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}
