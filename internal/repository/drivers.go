package repository

// Register the database/sql drivers for every supported engine so a
// Repository works for whichever dialect it was built with.
import (
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"
)
