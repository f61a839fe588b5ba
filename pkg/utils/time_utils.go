package utils

import (
	"fmt"
	"time"
)

// Japan time location (JST, +09:00)
var jstLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Tokyo"); err == nil {
		return loc
	}
	return time.FixedZone("JST", 9*3600)
}()

const DateLayout = "2006-01-02"

func NowJST() time.Time { return time.Now().In(jstLoc) }

func FormatRFC3339JST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(jstLoc).Format(time.RFC3339)
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, jstLoc)
}

// DayCount returns the inclusive number of days between two trip dates,
// so 2025-06-01 to 2025-06-03 counts as 3.
func DayCount(startDate, endDate string) (int, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("end date %s precedes start date %s", endDate, startDate)
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}
