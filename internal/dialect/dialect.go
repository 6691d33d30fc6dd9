// Package dialect holds the per-engine SQL descriptors: identifier quoting,
// parameter placeholders, schema qualification, row-limit syntax, the column
// metadata query, and the diagnostics query. Everything that differs between
// engines lives here as data so the rest of the code is engine-agnostic.
package dialect

import (
	"database/sql"
	"fmt"
	"strings"
)

// namedArg wraps a metadata query argument for engines that bind by name.
func namedArg(name, value string) sql.NamedArg {
	return sql.Named(name, value)
}

// Supported engine names, as accepted by ForEngine and used in configuration.
const (
	EnginePostgres  = "postgres"
	EngineMySQL     = "mysql"
	EngineSQLServer = "sqlserver"
	EngineSQLite    = "sqlite"
)

// LimitStyle selects where the row cap goes in a SELECT.
type LimitStyle int

const (
	// LimitSuffix appends a trailing "LIMIT n" clause (PostgreSQL, MySQL, SQLite).
	LimitSuffix LimitStyle = iota
	// TopPrefix injects "TOP (n)" right after SELECT (SQL Server).
	TopPrefix
)

// PlaceholderStyle selects how bind parameters are rendered.
type PlaceholderStyle int

const (
	// QuestionMark renders every parameter as "?" (MySQL, SQLite).
	QuestionMark PlaceholderStyle = iota
	// DollarNumber renders 1-based ordinals as "$1", "$2", ... (PostgreSQL).
	DollarNumber
	// AtName renders named parameters as "@name"; values must be passed
	// through sql.Named (SQL Server).
	AtName
)

// Dialect describes one engine. Instances are immutable package-level values
// constructed at init and shared by every caller for the process lifetime.
type Dialect struct {
	Engine        string
	Driver        string // database/sql driver name
	DefaultSchema string

	quoteOpen  byte
	quoteClose byte

	Placeholders PlaceholderStyle
	Limit        LimitStyle

	// ColumnTypeSQL is the read-only metadata query returning
	// (native type name, max length) for one column. ColumnTypeArgs
	// produces its bind arguments in the order the query expects.
	ColumnTypeSQL  string
	ColumnTypeArgs func(schema, table, column string) []any

	// DateCastTemplate wraps a quoted column expression so it compares as a
	// date-only value, e.g. "CAST(%s AS date)".
	DateCastTemplate string

	// DiagnosticSQL returns a single row of
	// (version, database, schema, host, port, user, session, uptime seconds).
	DiagnosticSQL string

	// types maps lower-cased native type names to semantic types.
	types map[string]SemanticType
}

// QuoteIdent quotes an identifier for this engine, doubling any embedded
// closing quote character.
func (d *Dialect) QuoteIdent(name string) string {
	closer := string(d.quoteClose)
	escaped := strings.ReplaceAll(name, closer, closer+closer)
	return string(d.quoteOpen) + escaped + closer
}

// QualifyTable returns the quoted, optionally schema-qualified table
// reference. The schema prefix is omitted when the schema is empty or is the
// engine's default schema.
func (d *Dialect) QualifyTable(table, schema string) string {
	if schema == "" || strings.EqualFold(schema, d.DefaultSchema) {
		return d.QuoteIdent(table)
	}
	return d.QuoteIdent(schema) + "." + d.QuoteIdent(table)
}

// Placeholder renders the bind marker for the parameter at the given 1-based
// index with the given name. Only AtName dialects use the name.
func (d *Dialect) Placeholder(index int, name string) string {
	switch d.Placeholders {
	case DollarNumber:
		return fmt.Sprintf("$%d", index)
	case AtName:
		return "@" + name
	default:
		return "?"
	}
}

// DateCast wraps a quoted column expression in this engine's date-truncation
// cast, used for date-only comparisons against datetime columns.
func (d *Dialect) DateCast(quotedColumn string) string {
	return fmt.Sprintf(d.DateCastTemplate, quotedColumn)
}

// LimitClause returns the SELECT prefix and statement suffix implementing the
// row cap for this engine. Exactly one of the two is non-empty.
func (d *Dialect) LimitClause(n int) (prefix, suffix string) {
	if d.Limit == TopPrefix {
		return fmt.Sprintf("TOP (%d) ", n), ""
	}
	return "", fmt.Sprintf(" LIMIT %d", n)
}

// Postgres is the PostgreSQL descriptor, served by the pgx stdlib driver.
var Postgres = &Dialect{
	Engine:        EnginePostgres,
	Driver:        "pgx",
	DefaultSchema: "public",
	quoteOpen:     '"',
	quoteClose:    '"',
	Placeholders:  DollarNumber,
	Limit:         LimitSuffix,
	ColumnTypeSQL: `SELECT data_type, COALESCE(character_maximum_length, 0)
		FROM information_schema.columns
		WHERE table_schema = COALESCE(NULLIF($1, ''), 'public')
		  AND table_name = $2 AND column_name = $3`,
	ColumnTypeArgs: func(schema, table, column string) []any {
		return []any{schema, table, column}
	},
	DateCastTemplate: "CAST(%s AS date)",
	DiagnosticSQL: `SELECT version(), current_database(), current_schema,
		COALESCE(inet_server_addr()::text, ''), COALESCE(inet_server_port(), 0),
		current_user, pg_backend_pid()::text,
		COALESCE(extract(epoch FROM now() - pg_postmaster_start_time())::bigint, 0)`,
	types: postgresTypes,
}

// MySQL is the MySQL/MariaDB descriptor. MySQL has no fixed default schema;
// the metadata query coalesces an empty schema bind to DATABASE() server-side
// and table references stay unqualified when no schema is given.
var MySQL = &Dialect{
	Engine:       EngineMySQL,
	Driver:       "mysql",
	quoteOpen:    '`',
	quoteClose:   '`',
	Placeholders: QuestionMark,
	Limit:        LimitSuffix,
	ColumnTypeSQL: `SELECT DATA_TYPE, COALESCE(CHARACTER_MAXIMUM_LENGTH, 0)
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE())
		  AND TABLE_NAME = ? AND COLUMN_NAME = ?`,
	ColumnTypeArgs: func(schema, table, column string) []any {
		return []any{schema, table, column}
	},
	DateCastTemplate: "DATE(%s)",
	DiagnosticSQL: `SELECT VERSION(), DATABASE(), DATABASE(), @@hostname, @@port,
		CURRENT_USER(), CONNECTION_ID(),
		(SELECT VARIABLE_VALUE FROM performance_schema.global_status
		 WHERE VARIABLE_NAME = 'Uptime')`,
	types: mysqlTypes,
}

// SQLServer is the Microsoft SQL Server descriptor, using bracket-quoted
// identifiers and named @parameters.
var SQLServer = &Dialect{
	Engine:        EngineSQLServer,
	Driver:        "sqlserver",
	DefaultSchema: "dbo",
	quoteOpen:     '[',
	quoteClose:    ']',
	Placeholders:  AtName,
	Limit:         TopPrefix,
	ColumnTypeSQL: `SELECT DATA_TYPE, COALESCE(CHARACTER_MAXIMUM_LENGTH, 0)
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = COALESCE(NULLIF(@tableschema, ''), 'dbo')
		  AND TABLE_NAME = @tablename AND COLUMN_NAME = @columnname`,
	ColumnTypeArgs: func(schema, table, column string) []any {
		return []any{
			namedArg("tableschema", schema),
			namedArg("tablename", table),
			namedArg("columnname", column),
		}
	},
	DateCastTemplate: "CAST(%s AS date)",
	DiagnosticSQL: `SELECT @@VERSION, DB_NAME(), SCHEMA_NAME(), @@SERVERNAME, 0,
		SYSTEM_USER, CAST(@@SPID AS varchar(16)),
		(SELECT DATEDIFF(second, sqlserver_start_time, GETDATE())
		 FROM sys.dm_os_sys_info)`,
	types: sqlserverTypes,
}

// SQLite is the embedded engine descriptor. There is no schema concept and no
// server process; uptime is reported as zero.
var SQLite = &Dialect{
	Engine:        EngineSQLite,
	Driver:        "sqlite",
	quoteOpen:     '"',
	quoteClose:    '"',
	Placeholders:  QuestionMark,
	Limit:         LimitSuffix,
	ColumnTypeSQL: `SELECT type, 0 FROM pragma_table_info(?) WHERE lower(name) = lower(?)`,
	ColumnTypeArgs: func(schema, table, column string) []any {
		return []any{table, column}
	},
	DateCastTemplate: "date(%s)",
	DiagnosticSQL:    `SELECT 'SQLite ' || sqlite_version(), '', '', '', 0, '', '', 0`,
	types:            sqliteTypes,
}

var registry = map[string]*Dialect{
	EnginePostgres:  Postgres,
	EngineMySQL:     MySQL,
	EngineSQLServer: SQLServer,
	EngineSQLite:    SQLite,
}

// ForEngine returns the descriptor for a configured engine name.
func ForEngine(name string) (*Dialect, error) {
	d, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported engine: %s", name)
	}
	return d, nil
}
