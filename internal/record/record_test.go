package record

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestValueZeroIsNull(t *testing.T) {
	var v Value
	if !v.IsNull() {
		t.Error("zero Value should be NULL")
	}
	if v.Native() != nil {
		t.Errorf("NULL Native() = %v, want nil", v.Native())
	}
	if v.String() != "" {
		t.Errorf("NULL String() = %q, want empty", v.String())
	}
}

func TestValueNative(t *testing.T) {
	if got := Int64(42).Native(); got != int64(42) {
		t.Errorf("Int64 Native = %v (%T)", got, got)
	}
	if got := Int32(-7).Native(); got != int32(-7) {
		t.Errorf("Int32 Native = %v (%T)", got, got)
	}
	if got := Int8(1).Native(); got != int8(1) {
		t.Errorf("Int8 Native = %v (%T)", got, got)
	}
	if got := Bool(true).Native(); got != true {
		t.Errorf("Bool Native = %v", got)
	}
	d := decimal.RequireFromString("10.50")
	if got := Dec(d).Native(); got != d.String() {
		t.Errorf("Dec Native = %v, want %v", got, d.String())
	}
	id := uuid.MustParse("a2b7e6a2-1c7c-4d2f-9f7b-0b9f3a1c2d3e")
	if got := UUID(id).Native(); got != id.String() {
		t.Errorf("UUID Native = %v", got)
	}
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	if got := Time(ts).Native(); got != ts {
		t.Errorf("Time Native = %v", got)
	}
}

func TestValueString(t *testing.T) {
	if got := Int16(300).String(); got != "300" {
		t.Errorf("Int16 String = %q", got)
	}
	if got := Float64(2.5).String(); got != "2.5" {
		t.Errorf("Float64 String = %q", got)
	}
	if got := Bool(false).String(); got != "false" {
		t.Errorf("Bool String = %q", got)
	}
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	if got := Time(ts).String(); got != "2024-03-15T10:30:00Z" {
		t.Errorf("Time String = %q", got)
	}
}

func TestFromDriver(t *testing.T) {
	if v := FromDriver(nil); !v.IsNull() {
		t.Error("nil should map to NULL")
	}
	if v := FromDriver(int64(9)); v.Kind() != KindInt64 || v.Int() != 9 {
		t.Errorf("int64 mapped to %v", v)
	}
	if v := FromDriver("hello"); v.Kind() != KindText || v.Text() != "hello" {
		t.Errorf("string mapped to %v", v)
	}
	if v := FromDriver(true); v.Kind() != KindBool || !v.Bool() {
		t.Errorf("bool mapped to %v", v)
	}
}

func TestFromDriverCopiesBytes(t *testing.T) {
	buf := []byte("abc")
	v := FromDriver(buf)
	buf[0] = 'x'
	if string(v.Bytes()) != "abc" {
		t.Errorf("scan buffer mutation leaked into value: %q", v.Bytes())
	}
}

func TestRecordCaseInsensitiveGet(t *testing.T) {
	r := NewRecord(2)
	r.Set("UserName", Text("alice"))
	r.Set("Age", Int32(30))

	v, ok := r.Get("username")
	if !ok || v.Text() != "alice" {
		t.Errorf("case-insensitive lookup failed: %v %v", v, ok)
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("missing column should not be found")
	}
}

func TestRecordPreservesOrderAndSpelling(t *testing.T) {
	r := NewRecord(3)
	r.Set("Zed", Int64(1))
	r.Set("Alpha", Int64(2))
	r.Set("Mid", Int64(3))

	cols := r.Columns()
	if len(cols) != 3 || cols[0] != "Zed" || cols[1] != "Alpha" || cols[2] != "Mid" {
		t.Errorf("column order/spelling lost: %v", cols)
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d", r.Len())
	}
}

func TestRecordSetReplacesExisting(t *testing.T) {
	r := NewRecord(1)
	r.Set("id", Int64(1))
	r.Set("ID", Int64(2))

	if r.Len() != 1 {
		t.Fatalf("expected 1 column, got %d", r.Len())
	}
	v, _ := r.Get("id")
	if v.Int() != 2 {
		t.Errorf("expected replacement value 2, got %d", v.Int())
	}
}
