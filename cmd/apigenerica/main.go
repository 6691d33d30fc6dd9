// Command apigenerica is a thin CLI over the generic repository: one
// subcommand per repository operation, with the engine and connection string
// coming from APIGEN_ environment variables or a config file.
//
// Usage:
//
//	apigenerica [flags] list|get|create|update|delete|secret|diag
//
// Examples:
//
//	APIGEN_ENGINE=postgres APIGEN_CONNECTION_STRING=postgres://... \
//	    apigenerica -table users list
//	apigenerica -table users -key-column created_at -key 2024-03-15 get
//	apigenerica -table accounts -fields username=alice,password=secret \
//	    -sensitive password create
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/maritzalopez1989-bit/ApiGenerica/internal/config"
	"github.com/maritzalopez1989-bit/ApiGenerica/internal/dialect"
	"github.com/maritzalopez1989-bit/ApiGenerica/internal/hash"
	"github.com/maritzalopez1989-bit/ApiGenerica/internal/record"
	"github.com/maritzalopez1989-bit/ApiGenerica/internal/repository"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional config file (YAML)")
		table      = flag.String("table", "", "target table name")
		schemaName = flag.String("schema", "", "schema name (engine default if empty)")
		keyColumn  = flag.String("key-column", "", "key column for get/update/delete")
		keyValue   = flag.String("key", "", "key value for get/update/delete")
		fieldList  = flag.String("fields", "", "comma-separated col=value pairs for create/update")
		sensitive  = flag.String("sensitive", "", "comma-separated field names to hash before writing")
		limit      = flag.Int("limit", 0, "row cap for list (default 1000)")
		userCol    = flag.String("user-column", "", "user column for secret")
		secretCol  = flag.String("secret-column", "", "secret column for secret")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: apigenerica [flags] list|get|create|update|delete|secret|diag")
		os.Exit(2)
	}
	op := flag.Arg(0)

	settings, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	d, err := dialect.ForEngine(settings.Engine())
	if err != nil {
		fatal(err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	repo := repository.New(d, settings, hash.Bcrypt{}, log)
	ctx := context.Background()

	switch op {
	case "list":
		recs, err := repo.ListRows(ctx, *table, *schemaName, *limit)
		if err != nil {
			fatal(err)
		}
		printRecords(recs)

	case "get":
		recs, err := repo.FindByKey(ctx, *table, *schemaName, *keyColumn, *keyValue)
		if err != nil {
			fatal(err)
		}
		printRecords(recs)

	case "create":
		created, err := repo.Create(ctx, *table, *schemaName, parseFields(*fieldList), *sensitive)
		if err != nil {
			fatal(err)
		}
		fmt.Println("created:", created)

	case "update":
		n, err := repo.Update(ctx, *table, *schemaName, *keyColumn, *keyValue, parseFields(*fieldList), *sensitive)
		if err != nil {
			fatal(err)
		}
		fmt.Println("rows affected:", n)

	case "delete":
		n, err := repo.Delete(ctx, *table, *schemaName, *keyColumn, *keyValue)
		if err != nil {
			fatal(err)
		}
		fmt.Println("rows affected:", n)

	case "secret":
		hashValue, found, err := repo.SecretHash(ctx, *table, *schemaName, *userCol, *secretCol, *keyValue)
		if err != nil {
			fatal(err)
		}
		if !found {
			fmt.Println("no matching user")
			return
		}
		fmt.Println(hashValue)

	case "diag":
		info, err := repo.Diagnose(ctx)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("engine:   %s\nversion:  %s\ndatabase: %s\nschema:   %s\n",
			info.Engine, info.Version, info.Database, info.Schema)
		fmt.Printf("host:     %s:%d\nuser:     %s\nsession:  %s\n",
			info.Host, info.Port, info.User, info.SessionID)
		fmt.Printf("uptime:   %ds (%s)\n", info.UptimeSeconds, info.UptimeKind)

	default:
		fmt.Fprintln(os.Stderr, "unknown operation:", op)
		os.Exit(2)
	}
}

// parseFields splits "col=value,col2=value2" into a field map. Values may
// contain '='; only the first one separates the column name.
func parseFields(s string) map[string]string {
	fields := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		col, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		fields[col] = value
	}
	return fields
}

func printRecords(recs []*record.Record) {
	for _, rec := range recs {
		parts := make([]string, 0, rec.Len())
		for _, col := range rec.Columns() {
			v, _ := rec.Get(col)
			if v.IsNull() {
				parts = append(parts, col+"=NULL")
			} else {
				parts = append(parts, col+"="+v.String())
			}
		}
		fmt.Println(strings.Join(parts, "\t"))
	}
	fmt.Fprintln(os.Stderr, len(recs), "row(s)")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
