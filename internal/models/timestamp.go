package models

import "time"

// TimestampLayout is RFC3339 in UTC with a fixed six-digit fraction, so
// comparing two stored timestamps as strings orders them in time.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Timestamp formats t for storage.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// NextTimestamp formats now, moved forward if needed so that it sorts
// strictly after prev.
func NextTimestamp(now time.Time, prev string) string {
	ts := Timestamp(now)
	if ts > prev {
		return ts
	}
	last, err := time.Parse(time.RFC3339Nano, prev)
	if err != nil {
		return ts
	}
	return Timestamp(last.Add(time.Microsecond))
}
