package database

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampFormats contains the date formats a driver may return as text.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
	"2006-01-02 15:04:05-07:00",
	"2006-01-02", // Northwind dump format
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return utcWallClock(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// utcWallClock keeps the wall clock of t and moves it to UTC, so a date
// stored as 1997-01-01 stays in 1997 whatever the driver's time zone.
func utcWallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// toDate converts a scanned DATE column. ok is false for NULL.
func toDate(v any) (t time.Time, ok bool, err error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return utcWallClock(x), true, nil
	case string:
		if x == "" {
			return time.Time{}, false, nil
		}
		t, err = parseTimestamp(x)
		return t, err == nil, err
	case []byte:
		return toDate(string(x))
	default:
		return time.Time{}, false, fmt.Errorf("unsupported date type %T", v)
	}
}

// toBool converts a scanned flag column. Northwind dumps use integers,
// some exports use booleans or "true"/"false" text.
func toBool(v any) (bool, error) {
	switch x := v.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case int64:
		return x != 0, nil
	case float64:
		return x != 0, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(x))
	case []byte:
		return toBool(string(x))
	default:
		return false, fmt.Errorf("unsupported flag type %T", v)
	}
}
