// Package coerce converts the raw strings arriving at the API boundary into
// typed values matching a column's resolved semantic type. Coercion is
// best-effort: a value that fails to parse is passed through as its original
// string and left for the engine's own type checking, except for the
// date-only path where the predicate rewrite has no safe fallback.
package coerce

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maritzalopez1989-bit/ApiGenerica/internal/dialect"
	"github.com/maritzalopez1989-bit/ApiGenerica/internal/record"
)

// timestampLayouts are tried in order for DateTime/DateTimeWithOffset input.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

var timeLayouts = []string{
	"15:04:05.999999999",
	"15:04:05",
	"15:04",
}

const dateLayout = "2006-01-02"

// Coerce converts raw into the semantic type's canonical representation.
// On a parse failure the original string is returned with a nil error —
// except for Date, where ExtractDate's failure is propagated because the
// caller is about to rewrite a predicate around the extracted date.
func Coerce(raw string, st dialect.SemanticType) (record.Value, error) {
	switch st {
	case dialect.Integer64:
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return record.Int64(v), nil
		}
	case dialect.Integer32:
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
			return record.Int32(int32(v)), nil
		}
	case dialect.Integer16:
		if v, err := strconv.ParseInt(raw, 10, 16); err == nil {
			return record.Int16(int16(v)), nil
		}
	case dialect.Integer8:
		if v, err := strconv.ParseInt(raw, 10, 8); err == nil {
			return record.Int8(int8(v)), nil
		}
	case dialect.Decimal:
		if v, err := decimal.NewFromString(raw); err == nil {
			return record.Dec(v), nil
		}
	case dialect.Float64:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return record.Float64(v), nil
		}
	case dialect.Float32:
		if v, err := strconv.ParseFloat(raw, 32); err == nil {
			return record.Float32(float32(v)), nil
		}
	case dialect.Boolean:
		if v, err := strconv.ParseBool(raw); err == nil {
			return record.Bool(v), nil
		}
	case dialect.UUID:
		if v, err := uuid.Parse(raw); err == nil {
			return record.UUID(v), nil
		}
	case dialect.Date:
		d, err := ExtractDate(raw)
		if err != nil {
			return record.Value{}, err
		}
		return record.Time(d), nil
	case dialect.DateTime, dialect.DateTimeWithOffset:
		if v, ok := parseTimestamp(raw); ok {
			return record.Time(v), nil
		}
	case dialect.Time:
		for _, layout := range timeLayouts {
			if v, err := time.Parse(layout, raw); err == nil {
				return record.Time(v), nil
			}
		}
	}
	// Text, Json, Binary, Unknown, and every failed parse above: pass the
	// original string through unchanged.
	return record.Text(raw), nil
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v, true
		}
	}
	return time.Time{}, false
}
