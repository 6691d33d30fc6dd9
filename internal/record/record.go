package record

import "strings"

// Record is one result row: column names in result-set order, values looked
// up case-insensitively. A Record is built once by the executor while
// scanning and never mutated afterwards; the caller owns it on return.
type Record struct {
	cols []string
	vals map[string]Value
}

// NewRecord returns an empty record sized for n columns.
func NewRecord(n int) *Record {
	return &Record{
		cols: make([]string, 0, n),
		vals: make(map[string]Value, n),
	}
}

// Set stores a value under the column's original spelling. Setting a column
// that already exists (compared case-insensitively) replaces its value and
// keeps its position.
func (r *Record) Set(name string, v Value) {
	key := strings.ToLower(name)
	if _, ok := r.vals[key]; !ok {
		r.cols = append(r.cols, name)
	}
	r.vals[key] = v
}

// Get returns the value for a column name, compared case-insensitively.
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.vals[strings.ToLower(name)]
	return v, ok
}

// Columns returns the column names in result-set order.
func (r *Record) Columns() []string {
	return r.cols
}

// Len returns the number of columns.
func (r *Record) Len() int {
	return len(r.cols)
}
