// Package schema resolves a column's native type through the engine's own
// metadata and maps it to a semantic type via the dialect's type catalog.
package schema

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/maritzalopez1989-bit/ApiGenerica/internal/config"
	"github.com/maritzalopez1989-bit/ApiGenerica/internal/dialect"
)

// ColumnTypeInfo is the resolved type of one column. Resolved per call, never
// cached: each operation re-queries metadata so it always sees the current
// schema.
type ColumnTypeInfo struct {
	NativeType string
	Semantic   dialect.SemanticType
	MaxLength  int64
}

// Unknown is the result when metadata is absent or unreachable.
var unknownColumn = ColumnTypeInfo{Semantic: dialect.Unknown}

// Introspector runs the dialect's column metadata query in its own
// connection scope.
type Introspector struct {
	dialect  *dialect.Dialect
	provider config.Provider
	log      *slog.Logger
}

func NewIntrospector(d *dialect.Dialect, p config.Provider, log *slog.Logger) *Introspector {
	if log == nil {
		log = slog.Default()
	}
	return &Introspector{dialect: d, provider: p, log: log}
}

// ResolveColumnType looks up one column's native type and resolves it
// against the type catalog. Absent metadata is a normal outcome (views,
// permission limits) and yields Unknown. Any failure along the way is logged
// and also yields Unknown: introspection must never break the CRUD path it
// serves, the operation just proceeds with raw-string binding.
func (in *Introspector) ResolveColumnType(ctx context.Context, table, schema, column string) ColumnTypeInfo {
	connStr, err := in.provider.ConnectionString()
	if err != nil || connStr == "" {
		in.log.Warn("schema introspection skipped: no connection string",
			"table", table, "column", column)
		return unknownColumn
	}

	db, err := sql.Open(in.dialect.Driver, connStr)
	if err != nil {
		in.log.Warn("schema introspection failed: open",
			"table", table, "column", column, "error", err)
		return unknownColumn
	}
	defer db.Close()

	args := in.dialect.ColumnTypeArgs(schema, table, column)

	var native sql.NullString
	var maxLen sql.NullInt64
	err = db.QueryRowContext(ctx, in.dialect.ColumnTypeSQL, args...).Scan(&native, &maxLen)
	if errors.Is(err, sql.ErrNoRows) {
		return unknownColumn
	}
	if err != nil {
		in.log.Warn("schema introspection failed: query",
			"table", table, "column", column, "error", err)
		return unknownColumn
	}

	return ColumnTypeInfo{
		NativeType: native.String,
		Semantic:   in.dialect.ResolveType(native.String),
		MaxLength:  maxLen.Int64,
	}
}
