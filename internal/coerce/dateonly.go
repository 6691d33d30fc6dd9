package coerce

import (
	"fmt"
	"strings"
	"time"
)

// IsDateOnly reports whether s has the bare-date shape: exactly 10
// characters with exactly two hyphens and no time separator. A value of this
// shape filtered against a datetime column needs the date-cast rewrite
// instead of a plain equality.
func IsDateOnly(s string) bool {
	if len(s) != 10 {
		return false
	}
	if strings.Count(s, "-") != 2 {
		return false
	}
	return !strings.ContainsAny(s, ":T")
}

// ExtractDate returns the date component of s, trying a full timestamp parse
// first and a date-only parse second. Both failing is fatal for the calling
// operation: the predicate rewrite assumes a valid date.
func ExtractDate(s string) (time.Time, error) {
	if v, ok := parseTimestamp(s); ok {
		return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	if v, err := time.Parse(dateLayout, s); err == nil {
		return v, nil
	}
	return time.Time{}, fmt.Errorf("cannot extract a date from %q", s)
}
