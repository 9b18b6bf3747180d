package utils

import (
	"testing"
	"time"
)

func TestParseDayRoundTrip(t *testing.T) {
	d, err := ParseDay("2026-03-05")
	if err != nil {
		t.Fatalf("ParseDay failed: %v", err)
	}
	if FormatDay(d) != "2026-03-05" {
		t.Errorf("round trip failed: %s", FormatDay(d))
	}

	if _, err := ParseDay("05/03/2026"); err == nil {
		t.Error("expected error for non-standard format")
	}
}

func TestDayOf_NormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	evening := time.Date(2026, 3, 5, 23, 45, 0, 0, loc)

	day := DayOf(evening)

	if day.Hour() != 0 || day.Location() != time.UTC {
		t.Errorf("expected UTC midnight, got %v", day)
	}
	if FormatDay(day) != "2026-03-05" {
		t.Errorf("local calendar date must be preserved, got %s", FormatDay(day))
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2026-02-27", 3)
	if err != nil {
		t.Fatalf("AddDays failed: %v", err)
	}
	if got != "2026-03-02" {
		t.Errorf("expected month rollover to 2026-03-02, got %s", got)
	}

	if _, err := AddDays("garbage", 1); err == nil {
		t.Error("expected error for unparseable day")
	}
}

func TestDaysBetween(t *testing.T) {
	from, _ := ParseDay("2026-03-01")
	to, _ := ParseDay("2026-03-05")

	if d := DaysBetween(from, to); d != 4 {
		t.Errorf("expected 4, got %d", d)
	}
	if d := DaysBetween(to, from); d != -4 {
		t.Errorf("expected -4, got %d", d)
	}
	if d := DaysBetween(from, from); d != 0 {
		t.Errorf("expected 0, got %d", d)
	}
}
