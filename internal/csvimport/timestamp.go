package csvimport

import (
	"strconv"
	"strings"
	"time"
)

// TimestampError reports a cell value no step of the fallback chain could
// parse. It carries the raw string so the failure can be surfaced verbatim.
type TimestampError struct {
	Raw string
}

func (e *TimestampError) Error() string {
	return "unparseable timestamp: " + strconv.Quote(e.Raw)
}

// timestampLayouts are tried in order after the offset-qualified attempt.
// Date-only layouts yield midnight.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
	"02/01/2006 15:04:05",
}

// ParseTimestamp parses a raw cell value into a zone-naive timestamp.
// Blank input yields nil with no error. The fallback chain, in order:
//
//  1. offset/zone-qualified timestamp; the offset is dropped, keeping the
//     wall-clock reading
//  2. the fixed layout list above
//  3. pure digits as epoch milliseconds (length >= 13) or epoch seconds
//  4. strict ISO-8601 local date-time
//
// Only when the last step fails does the caller get an error. The order is
// load-bearing: a 14-digit string like "20230615123045" must hit the epoch
// step, not be misread by a date layout.
func ParseTimestamp(raw string) (*time.Time, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, v); err == nil {
		naive := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		return &naive, nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return &t, nil
		}
	}

	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		var t time.Time
		if len(v) >= 13 {
			t = time.Unix(n/1000, 0).UTC()
		} else {
			t = time.Unix(n, 0).UTC()
		}
		return &t, nil
	}

	if t, err := time.ParseInLocation("2006-01-02T15:04:05", v, time.UTC); err == nil {
		return &t, nil
	}

	return nil, &TimestampError{Raw: v}
}
