package utils

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 3, 999, time.Local)
	got := FormatTimestamp(ts)
	if got != "2024-03-09T07:05:03" {
		t.Errorf("FormatTimestamp() = %q, want %q", got, "2024-03-09T07:05:03")
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ts := time.Date(2024, 12, 31, 23, 59, 59, 0, time.Local)
		parsed, err := ParseTimestamp(FormatTimestamp(ts))
		if err != nil {
			t.Fatalf("ParseTimestamp() returned unexpected error: %v", err)
		}
		if !parsed.Equal(ts) {
			t.Errorf("ParseTimestamp() = %v, want %v", parsed, ts)
		}
	})

	t.Run("rejects offset suffix", func(t *testing.T) {
		if _, err := ParseTimestamp("2024-12-31T23:59:59+02:00"); err == nil {
			t.Error("expected error for timestamp with offset")
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := ParseTimestamp("yesterday"); err == nil {
			t.Error("expected error for invalid timestamp")
		}
	})
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, 1, 2, 0, 0, 1, 0, time.Local)
	if got := DateOf(ts); got != "2024-01-02" {
		t.Errorf("DateOf() = %q, want %q", got, "2024-01-02")
	}
}

func TestFormatDisplay(t *testing.T) {
	if got := FormatDisplay(nil, "never"); got != "never" {
		t.Errorf("FormatDisplay(nil) = %q, want %q", got, "never")
	}

	ts := time.Date(2024, 1, 2, 8, 30, 0, 0, time.Local)
	if got := FormatDisplay(&ts, "never"); got != "2024-01-02 08:30" {
		t.Errorf("FormatDisplay() = %q, want %q", got, "2024-01-02 08:30")
	}
}

func TestNowTruncatesToSeconds(t *testing.T) {
	if Now().Nanosecond() != 0 {
		t.Error("Now() should have second precision")
	}
}
