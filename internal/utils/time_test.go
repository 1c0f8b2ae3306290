package utils

import (
	"testing"
	"time"
)

func TestDateInTimezone(t *testing.T) {
	// 2026-08-01 03:30 UTC is still 2026-07-31 in Denver
	instant := time.Date(2026, 8, 1, 3, 30, 0, 0, time.UTC)

	got, err := DateInTimezone(instant, "UTC")
	if err != nil {
		t.Fatalf("DateInTimezone() failed: %v", err)
	}
	if got != "2026-08-01" {
		t.Errorf("UTC date = %s, want 2026-08-01", got)
	}

	got, err = DateInTimezone(instant, "America/Denver")
	if err != nil {
		t.Fatalf("DateInTimezone() failed: %v", err)
	}
	if got != "2026-07-31" {
		t.Errorf("Denver date = %s, want 2026-07-31", got)
	}

	if _, err := DateInTimezone(instant, "Mars/Olympus"); err == nil {
		t.Error("DateInTimezone() should fail for unknown timezone")
	}
}

func TestDiffDays(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2026-08-01", "2026-08-01", 0},
		{"2026-08-01", "2026-08-02", 1},
		{"2026-08-01", "2026-08-05", 4},
		{"2026-08-31", "2026-09-01", 1},
		{"2026-12-31", "2027-01-01", 1},
		{"2026-08-05", "2026-08-01", -4},
	}
	for _, tc := range cases {
		got, err := DiffDays(tc.a, tc.b)
		if err != nil {
			t.Errorf("DiffDays(%s, %s) failed: %v", tc.a, tc.b, err)
			continue
		}
		if got != tc.want {
			t.Errorf("DiffDays(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}

	if _, err := DiffDays("not-a-date", "2026-08-01"); err == nil {
		t.Error("DiffDays() should fail for malformed dates")
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{45, "0:45"},
		{60, "1:00"},
		{90, "1:30"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-5, "0:00"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.seconds); got != tc.want {
			t.Errorf("FormatClock(%d) = %s, want %s", tc.seconds, got, tc.want)
		}
	}
}
