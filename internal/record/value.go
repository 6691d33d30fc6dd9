// Package record holds the generic row shape returned to callers: an ordered,
// case-insensitively keyed record of tagged values. No engine-specific type
// crosses this boundary.
package record

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind tags the runtime representation held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInt64
	KindInt32
	KindInt16
	KindInt8
	KindDecimal
	KindFloat64
	KindFloat32
	KindText
	KindBool
	KindTime
	KindBytes
	KindUUID
)

// Value is a tagged union over the canonical value domain. The zero Value is
// SQL NULL. Values are immutable once constructed.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	t    time.Time
	raw  []byte
	dec  decimal.Decimal
	id   uuid.UUID
}

func Null() Value               { return Value{} }
func Int64(v int64) Value       { return Value{kind: KindInt64, i: v} }
func Int32(v int32) Value       { return Value{kind: KindInt32, i: int64(v)} }
func Int16(v int16) Value       { return Value{kind: KindInt16, i: int64(v)} }
func Int8(v int8) Value         { return Value{kind: KindInt8, i: int64(v)} }
func Float64(v float64) Value   { return Value{kind: KindFloat64, f: v} }
func Float32(v float32) Value   { return Value{kind: KindFloat32, f: float64(v)} }
func Text(v string) Value       { return Value{kind: KindText, s: v} }
func Bool(v bool) Value         { return Value{kind: KindBool, b: v} }
func Time(v time.Time) Value    { return Value{kind: KindTime, t: v} }
func Bytes(v []byte) Value      { return Value{kind: KindBytes, raw: v} }
func UUID(v uuid.UUID) Value    { return Value{kind: KindUUID, id: v} }
func Dec(v decimal.Decimal) Value { return Value{kind: KindDecimal, dec: v} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Int() int64               { return v.i }
func (v Value) Float() float64           { return v.f }
func (v Value) Text() string             { return v.s }
func (v Value) Bool() bool               { return v.b }
func (v Value) Time() time.Time          { return v.t }
func (v Value) Bytes() []byte            { return v.raw }
func (v Value) UUID() uuid.UUID          { return v.id }
func (v Value) Decimal() decimal.Decimal { return v.dec }

// Native returns the value in the Go representation the database/sql driver
// layer binds: the canonical type for the tagged kind, or nil for NULL.
func (v Value) Native() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindInt64:
		return v.i
	case KindInt32:
		return int32(v.i)
	case KindInt16:
		return int16(v.i)
	case KindInt8:
		return int8(v.i)
	case KindDecimal:
		// Drivers have no common decimal type; bind the string form.
		return v.dec.String()
	case KindFloat64:
		return v.f
	case KindFloat32:
		return float32(v.f)
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	case KindBytes:
		return v.raw
	case KindUUID:
		return v.id.String()
	default:
		return v.s
	}
}

// String renders the value for display and re-coercion round-trips.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindInt64, KindInt32, KindInt16, KindInt8:
		return strconv.FormatInt(v.i, 10)
	case KindDecimal:
		return v.dec.String()
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindFloat32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format(time.RFC3339Nano)
	case KindBytes:
		return string(v.raw)
	case KindUUID:
		return v.id.String()
	default:
		return v.s
	}
}

// FromDriver lifts a value scanned from database/sql into a tagged Value.
func FromDriver(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case int64:
		return Int64(x)
	case int32:
		return Int32(x)
	case int16:
		return Int16(x)
	case int8:
		return Int8(x)
	case int:
		return Int64(int64(x))
	case float64:
		return Float64(x)
	case float32:
		return Float32(x)
	case bool:
		return Bool(x)
	case time.Time:
		return Time(x)
	case []byte:
		// Copy: drivers reuse scan buffers between rows.
		return Bytes(append([]byte(nil), x...))
	case string:
		return Text(x)
	default:
		return Text(fmt.Sprint(x))
	}
}
