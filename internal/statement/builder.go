// Package statement assembles parameterized SQL from a dialect descriptor
// and a list of bound parameters. No value is ever interpolated into the
// statement text; every value travels as a bind parameter.
package statement

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/maritzalopez1989-bit/ApiGenerica/internal/dialect"
	"github.com/maritzalopez1989-bit/ApiGenerica/internal/record"
)

// DefaultRowLimit caps reads when the caller does not supply a limit.
const DefaultRowLimit = 1000

// BoundParam is one (column, semantic type, value) triple bound into a
// statement. Name is the collision-free parameter name the builder assigns.
type BoundParam struct {
	Column   string
	Name     string
	Semantic dialect.SemanticType
	Value    record.Value
}

// EffectiveLimit returns the caller-supplied row cap, or DefaultRowLimit
// when the caller passed none. Reads are always capped.
func EffectiveLimit(limit int) int {
	if limit > 0 {
		return limit
	}
	return DefaultRowLimit
}

// nameSet hands out parameter names derived from column names, deduplicated
// against the names already used in the statement.
type nameSet map[string]bool

func (ns nameSet) claim(column string) string {
	base := "p_" + sanitize(column)
	name := base
	for i := 2; ns[name]; i++ {
		name = base + "_" + strconv.Itoa(i)
	}
	ns[name] = true
	return name
}

// sanitize reduces a column name to characters legal in a parameter name.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "param"
	}
	return b.String()
}

// Select builds "SELECT * FROM table" with the unconditional row cap.
func Select(d *dialect.Dialect, table, schema string, limit int) string {
	prefix, suffix := d.LimitClause(EffectiveLimit(limit))
	return "SELECT " + prefix + "* FROM " + d.QualifyTable(table, schema) + suffix
}

// SelectByKey builds a capped SELECT filtered on one key column. When
// dateCast is set the key column is compared through the dialect's date
// cast instead of raw equality.
func SelectByKey(d *dialect.Dialect, table, schema string, key BoundParam, dateCast bool) (string, []BoundParam) {
	ns := nameSet{}
	key.Name = ns.claim(key.Column)

	prefix, suffix := d.LimitClause(DefaultRowLimit)
	sqlText := "SELECT " + prefix + "* FROM " + d.QualifyTable(table, schema) +
		" WHERE " + keyPredicate(d, key, dateCast, 1) + suffix
	return sqlText, []BoundParam{key}
}

// SelectScalar builds a single-row read of one column filtered on a key.
func SelectScalar(d *dialect.Dialect, table, schema, column string, key BoundParam) (string, []BoundParam) {
	ns := nameSet{}
	key.Name = ns.claim(key.Column)

	prefix, suffix := d.LimitClause(1)
	sqlText := "SELECT " + prefix + d.QuoteIdent(column) +
		" FROM " + d.QualifyTable(table, schema) +
		" WHERE " + keyPredicate(d, key, false, 1) + suffix
	return sqlText, []BoundParam{key}
}

// Insert builds an INSERT binding one parameter per supplied column.
func Insert(d *dialect.Dialect, table, schema string, fields []BoundParam) (string, []BoundParam) {
	ns := nameSet{}
	cols := make([]string, len(fields))
	marks := make([]string, len(fields))
	for i := range fields {
		fields[i].Name = ns.claim(fields[i].Column)
		cols[i] = d.QuoteIdent(fields[i].Column)
		marks[i] = d.Placeholder(i+1, fields[i].Name)
	}
	sqlText := "INSERT INTO " + d.QualifyTable(table, schema) +
		" (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
	return sqlText, fields
}

// Update builds an UPDATE with one SET parameter per supplied column plus the
// key predicate parameter. Returns the parameters in bind order.
func Update(d *dialect.Dialect, table, schema string, fields []BoundParam, key BoundParam, dateCast bool) (string, []BoundParam) {
	ns := nameSet{}
	sets := make([]string, len(fields))
	for i := range fields {
		fields[i].Name = ns.claim(fields[i].Column)
		sets[i] = d.QuoteIdent(fields[i].Column) + " = " + d.Placeholder(i+1, fields[i].Name)
	}
	key.Name = ns.claim(key.Column)

	sqlText := "UPDATE " + d.QualifyTable(table, schema) +
		" SET " + strings.Join(sets, ", ") +
		" WHERE " + keyPredicate(d, key, dateCast, len(fields)+1)
	return sqlText, append(fields, key)
}

// Delete builds a DELETE filtered on one key column.
func Delete(d *dialect.Dialect, table, schema string, key BoundParam, dateCast bool) (string, []BoundParam) {
	ns := nameSet{}
	key.Name = ns.claim(key.Column)

	sqlText := "DELETE FROM " + d.QualifyTable(table, schema) +
		" WHERE " + keyPredicate(d, key, dateCast, 1)
	return sqlText, []BoundParam{key}
}

func keyPredicate(d *dialect.Dialect, key BoundParam, dateCast bool, index int) string {
	col := d.QuoteIdent(key.Column)
	if dateCast {
		col = d.DateCast(col)
	}
	return col + " = " + d.Placeholder(index, key.Name)
}

// Args renders the driver argument list for the bound parameters: named
// arguments for dialects that bind by name, plain values otherwise.
func Args(d *dialect.Dialect, params []BoundParam) []any {
	out := make([]any, len(params))
	for i, p := range params {
		if d.Placeholders == dialect.AtName {
			out[i] = sql.Named(p.Name, p.Value.Native())
		} else {
			out[i] = p.Value.Native()
		}
	}
	return out
}
