// Package repository executes the dialect-agnostic CRUD operations. One
// Repository value serves one configured engine; every public operation is
// stateless across calls and opens its own connection scope.
package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"sort"

	"github.com/maritzalopez1989-bit/ApiGenerica/internal/coerce"
	"github.com/maritzalopez1989-bit/ApiGenerica/internal/config"
	"github.com/maritzalopez1989-bit/ApiGenerica/internal/dialect"
	"github.com/maritzalopez1989-bit/ApiGenerica/internal/hash"
	"github.com/maritzalopez1989-bit/ApiGenerica/internal/record"
	"github.com/maritzalopez1989-bit/ApiGenerica/internal/schema"
	"github.com/maritzalopez1989-bit/ApiGenerica/internal/statement"
)

// Repository runs CRUD operations against one engine through its dialect
// descriptor. Construct once and share; it holds no per-call state.
type Repository struct {
	dialect  *dialect.Dialect
	provider config.Provider
	hasher   hash.Hasher
	hashCost int
	intro    *schema.Introspector
	log      *slog.Logger
}

// DefaultHashCost is the bcrypt-style cost used for sensitive fields when
// the caller does not override it.
const DefaultHashCost = 10

func New(d *dialect.Dialect, p config.Provider, h hash.Hasher, log *slog.Logger) *Repository {
	if log == nil {
		log = slog.Default()
	}
	return &Repository{
		dialect:  d,
		provider: p,
		hasher:   h,
		hashCost: DefaultHashCost,
		intro:    schema.NewIntrospector(d, p, log),
		log:      log,
	}
}

// open acquires a fresh connection scope for one operation. The caller must
// Close the returned handle.
func (r *Repository) open(ctx context.Context) (*sql.DB, error) {
	connStr, err := r.provider.ConnectionString()
	if err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}
	if connStr == "" {
		return nil, &ConfigurationError{Reason: "connection string is empty"}
	}
	db, err := sql.Open(r.dialect.Driver, connStr)
	if err != nil {
		return nil, &ProviderError{Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &ProviderError{Err: err}
	}
	return db, nil
}

// ListRows returns up to limit rows of the table (default cap 1000).
func (r *Repository) ListRows(ctx context.Context, table, schemaName string, limit int) ([]*record.Record, error) {
	if table == "" {
		return nil, &ValidationError{Field: "table", Reason: "must not be empty"}
	}
	db, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	sqlText := statement.Select(r.dialect, table, schemaName, limit)
	rows, err := db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, &ProviderError{Table: table, Schema: schemaName, Err: err}
	}
	defer rows.Close()

	return scanRecords(rows)
}

// FindByKey returns the rows whose key column matches keyValue, typed via
// introspection. A date-only value against a datetime column is rewritten to
// a date-cast comparison so every row within that calendar date matches.
func (r *Repository) FindByKey(ctx context.Context, table, schemaName, keyColumn, keyValue string) ([]*record.Record, error) {
	if table == "" {
		return nil, &ValidationError{Field: "table", Reason: "must not be empty"}
	}
	if keyColumn == "" {
		return nil, &ValidationError{Field: "keyColumn", Reason: "must not be empty"}
	}

	key, dateCast, err := r.keyParam(ctx, table, schemaName, keyColumn, keyValue)
	if err != nil {
		return nil, err
	}

	db, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	sqlText, params := statement.SelectByKey(r.dialect, table, schemaName, key, dateCast)
	rows, err := db.QueryContext(ctx, sqlText, statement.Args(r.dialect, params)...)
	if err != nil {
		return nil, &ProviderError{Table: table, Schema: schemaName, Err: err}
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Create inserts one row from the supplied fields, hashing any sensitive
// fields first. Reports whether at least one row was affected.
func (r *Repository) Create(ctx context.Context, table, schemaName string, fields map[string]string, sensitiveCSV string) (bool, error) {
	if table == "" {
		return false, &ValidationError{Field: "table", Reason: "must not be empty"}
	}
	if len(fields) == 0 {
		return false, &ValidationError{Field: "fields", Reason: "must not be empty"}
	}

	prepared, err := r.applySensitiveFields(fields, sensitiveCSV)
	if err != nil {
		return false, err
	}
	params, err := r.fieldParams(ctx, table, schemaName, prepared)
	if err != nil {
		return false, err
	}

	db, err := r.open(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	sqlText, bound := statement.Insert(r.dialect, table, schemaName, params)
	res, err := db.ExecContext(ctx, sqlText, statement.Args(r.dialect, bound)...)
	if err != nil {
		return false, &ProviderError{Table: table, Schema: schemaName, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, &ProviderError{Table: table, Schema: schemaName, Err: err}
	}
	return n > 0, nil
}

// Update sets the supplied fields on the rows matching the key and returns
// the affected row count. Field and key types are resolved per column.
func (r *Repository) Update(ctx context.Context, table, schemaName, keyColumn, keyValue string, fields map[string]string, sensitiveCSV string) (int64, error) {
	if table == "" {
		return 0, &ValidationError{Field: "table", Reason: "must not be empty"}
	}
	if keyColumn == "" {
		return 0, &ValidationError{Field: "keyColumn", Reason: "must not be empty"}
	}
	if len(fields) == 0 {
		return 0, &ValidationError{Field: "fields", Reason: "must not be empty"}
	}

	prepared, err := r.applySensitiveFields(fields, sensitiveCSV)
	if err != nil {
		return 0, err
	}
	params, err := r.fieldParams(ctx, table, schemaName, prepared)
	if err != nil {
		return 0, err
	}
	key, dateCast, err := r.keyParam(ctx, table, schemaName, keyColumn, keyValue)
	if err != nil {
		return 0, err
	}

	db, err := r.open(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	sqlText, bound := statement.Update(r.dialect, table, schemaName, params, key, dateCast)
	res, err := db.ExecContext(ctx, sqlText, statement.Args(r.dialect, bound)...)
	if err != nil {
		return 0, &ProviderError{Table: table, Schema: schemaName, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &ProviderError{Table: table, Schema: schemaName, Err: err}
	}
	return n, nil
}

// Delete removes the rows matching the key and returns the affected row
// count. Deleting a key that matches nothing is not an error.
func (r *Repository) Delete(ctx context.Context, table, schemaName, keyColumn, keyValue string) (int64, error) {
	if table == "" {
		return 0, &ValidationError{Field: "table", Reason: "must not be empty"}
	}
	if keyColumn == "" {
		return 0, &ValidationError{Field: "keyColumn", Reason: "must not be empty"}
	}

	key, dateCast, err := r.keyParam(ctx, table, schemaName, keyColumn, keyValue)
	if err != nil {
		return 0, err
	}

	db, err := r.open(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	sqlText, bound := statement.Delete(r.dialect, table, schemaName, key, dateCast)
	res, err := db.ExecContext(ctx, sqlText, statement.Args(r.dialect, bound)...)
	if err != nil {
		return 0, &ProviderError{Table: table, Schema: schemaName, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &ProviderError{Table: table, Schema: schemaName, Err: err}
	}
	return n, nil
}

// SecretHash reads the stored secret hash for one user. The second return is
// false when no matching user exists; that is not an error.
func (r *Repository) SecretHash(ctx context.Context, table, schemaName, userColumn, secretColumn, userValue string) (string, bool, error) {
	if table == "" {
		return "", false, &ValidationError{Field: "table", Reason: "must not be empty"}
	}
	if userColumn == "" || secretColumn == "" {
		return "", false, &ValidationError{Field: "column", Reason: "user and secret columns must not be empty"}
	}

	info := r.intro.ResolveColumnType(ctx, table, schemaName, userColumn)
	value, err := coerce.Coerce(userValue, info.Semantic)
	if err != nil {
		return "", false, &ConversionError{Value: userValue, Err: err}
	}
	key := statement.BoundParam{Column: userColumn, Semantic: info.Semantic, Value: value}

	db, err := r.open(ctx)
	if err != nil {
		return "", false, err
	}
	defer db.Close()

	sqlText, bound := statement.SelectScalar(r.dialect, table, schemaName, secretColumn, key)
	var hashValue sql.NullString
	err = db.QueryRowContext(ctx, sqlText, statement.Args(r.dialect, bound)...).Scan(&hashValue)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, &ProviderError{Table: table, Schema: schemaName, Err: err}
	}
	return hashValue.String, hashValue.Valid, nil
}

// keyParam resolves the key column's semantic type and coerces the raw key
// value, deciding whether the date-cast predicate rewrite applies.
func (r *Repository) keyParam(ctx context.Context, table, schemaName, keyColumn, keyValue string) (statement.BoundParam, bool, error) {
	info := r.intro.ResolveColumnType(ctx, table, schemaName, keyColumn)

	if info.Semantic.IsTimestamp() && coerce.IsDateOnly(keyValue) {
		day, err := coerce.ExtractDate(keyValue)
		if err != nil {
			return statement.BoundParam{}, false, &ConversionError{Value: keyValue, Err: err}
		}
		// Bind the canonical date string: every engine compares its
		// date-cast column against it, including SQLite's date(), which
		// yields text.
		return statement.BoundParam{
			Column:   keyColumn,
			Semantic: dialect.Date,
			Value:    record.Text(day.Format("2006-01-02")),
		}, true, nil
	}

	value, err := coerce.Coerce(keyValue, info.Semantic)
	if err != nil {
		return statement.BoundParam{}, false, &ConversionError{Value: keyValue, Err: err}
	}
	return statement.BoundParam{Column: keyColumn, Semantic: info.Semantic, Value: value}, false, nil
}

// fieldParams resolves and coerces each payload field, one introspection per
// column. Columns are bound in sorted name order so statements are
// deterministic.
func (r *Repository) fieldParams(ctx context.Context, table, schemaName string, fields map[string]string) ([]statement.BoundParam, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]statement.BoundParam, 0, len(names))
	for _, name := range names {
		info := r.intro.ResolveColumnType(ctx, table, schemaName, name)
		value, err := coerce.Coerce(fields[name], info.Semantic)
		if err != nil {
			return nil, &ConversionError{Value: fields[name], Err: err}
		}
		params = append(params, statement.BoundParam{
			Column:   name,
			Semantic: info.Semantic,
			Value:    value,
		})
	}
	return params, nil
}

// scanRecords maps result rows into generic records, one fresh record per
// row.
func scanRecords(rows *sql.Rows) ([]*record.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []*record.Record
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := record.NewRecord(len(cols))
		for i, col := range cols {
			rec.Set(col, record.FromDriver(raw[i]))
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
