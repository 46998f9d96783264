package csvimport

import (
	"errors"
	"testing"
	"time"
)

// TestParseTimestamp_FallbackChain tests that every supported shape of the
// same calendar date lands on 2023-06-15.
func TestParseTimestamp_FallbackChain(t *testing.T) {
	testCases := []struct {
		raw  string
		want time.Time
	}{
		{"2023-06-15 12:30:45", time.Date(2023, 6, 15, 12, 30, 45, 0, time.UTC)},
		{"2023-06-15T12:30:45", time.Date(2023, 6, 15, 12, 30, 45, 0, time.UTC)},
		{"2023-06-15", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"15/06/2023", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"15/06/2023 12:30:45", time.Date(2023, 6, 15, 12, 30, 45, 0, time.UTC)},
	}

	for _, tc := range testCases {
		got, err := ParseTimestamp(tc.raw)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) error = %v, want nil", tc.raw, err)
			continue
		}
		if got == nil || !got.Equal(tc.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

// TestParseTimestamp_OffsetDropped tests that an offset-qualified timestamp
// keeps its wall-clock reading.
func TestParseTimestamp_OffsetDropped(t *testing.T) {
	got, err := ParseTimestamp("2023-06-15T12:30:45+02:00")
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}

	want := time.Date(2023, 6, 15, 12, 30, 45, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseTimestamp() = %v, want %v", got, want)
	}
}

// TestParseTimestamp_EpochMillis tests that a 13-digit numeric string is
// epoch milliseconds, not a date pattern.
func TestParseTimestamp_EpochMillis(t *testing.T) {
	got, err := ParseTimestamp("1686832245000") // 2023-06-15T12:30:45Z
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}

	want := time.Date(2023, 6, 15, 12, 30, 45, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseTimestamp() = %v, want %v", got, want)
	}
}

// TestParseTimestamp_EpochSeconds tests that shorter digit runs are epoch
// seconds.
func TestParseTimestamp_EpochSeconds(t *testing.T) {
	got, err := ParseTimestamp("1686832245")
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}

	want := time.Date(2023, 6, 15, 12, 30, 45, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseTimestamp() = %v, want %v", got, want)
	}
}

// TestParseTimestamp_CompactDigitsNotDayMonth tests that a 14-digit compact
// timestamp is never misread by the dd/MM/yyyy layout.
func TestParseTimestamp_CompactDigitsNotDayMonth(t *testing.T) {
	got, err := ParseTimestamp("20230615123045")
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}
	// 14 digits >= 13, so it must be interpreted as epoch milliseconds
	want := time.Unix(20230615123045/1000, 0).UTC()
	if !got.Equal(want) {
		t.Errorf("ParseTimestamp() = %v, want %v", got, want)
	}
}

// TestParseTimestamp_Blank tests that blank input yields nil without error.
func TestParseTimestamp_Blank(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		got, err := ParseTimestamp(raw)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) error = %v, want nil", raw, err)
		}
		if got != nil {
			t.Errorf("ParseTimestamp(%q) = %v, want nil", raw, got)
		}
	}
}

// TestParseTimestamp_FailureCarriesRaw tests that an unparseable value
// surfaces the raw string in the error.
func TestParseTimestamp_FailureCarriesRaw(t *testing.T) {
	_, err := ParseTimestamp("next tuesday")
	if err == nil {
		t.Fatal("ParseTimestamp() error = nil, want error")
	}

	var tsErr *TimestampError
	if !errors.As(err, &tsErr) {
		t.Fatalf("error type = %T, want *TimestampError", err)
	}
	if tsErr.Raw != "next tuesday" {
		t.Errorf("Raw = %q, want %q", tsErr.Raw, "next tuesday")
	}
}
