package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/maritzalopez1989-bit/ApiGenerica/internal/config"
	"github.com/maritzalopez1989-bit/ApiGenerica/internal/dialect"
)

// fakeHasher marks values instead of hashing them so tests can assert the
// transform without paying bcrypt cost.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string, cost int) (string, error) {
	return "HASHED:" + plain, nil
}

func newTestRepo(t *testing.T, ddl ...string) *Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	defer db.Close()
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("setup statement failed: %v", err)
		}
	}
	return New(dialect.SQLite, config.Static(path), fakeHasher{}, nil)
}

func itemsRepo(t *testing.T, extra ...string) *Repository {
	t.Helper()
	ddl := append([]string{`CREATE TABLE items (
		id INTEGER PRIMARY KEY,
		name TEXT,
		price NUMERIC,
		active BOOLEAN
	)`}, extra...)
	return newTestRepo(t, ddl...)
}

func TestCreateAndFindByKey(t *testing.T) {
	repo := itemsRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "items", "", map[string]string{
		"id":     "1",
		"name":   "widget",
		"price":  "9.99",
		"active": "true",
	}, "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !created {
		t.Fatal("Create reported no row affected")
	}

	recs, err := repo.FindByKey(ctx, "items", "", "id", "1")
	if err != nil {
		t.Fatalf("FindByKey failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 row, got %d", len(recs))
	}
	name, ok := recs[0].Get("name")
	if !ok || name.Text() != "widget" {
		t.Errorf("unexpected name: %v", name)
	}
	id, _ := recs[0].Get("id")
	if id.Int() != 1 {
		t.Errorf("unexpected id: %v", id)
	}
}

func TestListRowsCap(t *testing.T) {
	repo := itemsRepo(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := repo.Create(ctx, "items", "", map[string]string{
			"id":   strconv.Itoa(i),
			"name": "item",
		}, "")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	recs, err := repo.ListRows(ctx, "items", "", 2)
	if err != nil {
		t.Fatalf("ListRows failed: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("limit 2 returned %d rows", len(recs))
	}

	recs, err = repo.ListRows(ctx, "items", "", 0)
	if err != nil {
		t.Fatalf("ListRows failed: %v", err)
	}
	if len(recs) != 5 {
		t.Errorf("expected all 5 rows under the default cap, got %d", len(recs))
	}
}

func TestUpdateAndDelete(t *testing.T) {
	repo := itemsRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "items", "", map[string]string{"id": "1", "name": "old"}, ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := repo.Update(ctx, "items", "", "id", "1", map[string]string{"name": "new"}, "")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row updated, got %d", n)
	}

	recs, _ := repo.FindByKey(ctx, "items", "", "id", "1")
	if name, _ := recs[0].Get("name"); name.Text() != "new" {
		t.Errorf("update not visible: %v", name)
	}

	n, err = repo.Delete(ctx, "items", "", "id", "1")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row deleted, got %d", n)
	}
}

func TestDeleteNonMatchingKey(t *testing.T) {
	repo := itemsRepo(t)

	n, err := repo.Delete(context.Background(), "items", "", "id", "999")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 rows deleted, got %d", n)
	}
}

func TestFindByDateOnlyKey(t *testing.T) {
	repo := newTestRepo(t,
		`CREATE TABLE events (id INTEGER PRIMARY KEY, created_at DATETIME)`,
		`INSERT INTO events (id, created_at) VALUES
			(1, '2024-03-15 10:30:00'),
			(2, '2024-03-15 23:59:59'),
			(3, '2024-03-16 00:00:00')`,
	)

	// A bare date against a datetime column matches the whole calendar day.
	recs, err := repo.FindByKey(context.Background(), "events", "", "created_at", "2024-03-15")
	if err != nil {
		t.Fatalf("FindByKey failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 rows for the day, got %d", len(recs))
	}
}

func TestFindByDateOnlyKeyInvalidDate(t *testing.T) {
	repo := newTestRepo(t,
		`CREATE TABLE events (id INTEGER PRIMARY KEY, created_at DATETIME)`,
	)

	_, err := repo.FindByKey(context.Background(), "events", "", "created_at", "ab-cd-efgh")
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
}

func TestSensitiveFieldsHashedOnCreate(t *testing.T) {
	repo := newTestRepo(t,
		`CREATE TABLE accounts (username TEXT, password TEXT)`,
	)
	ctx := context.Background()

	_, err := repo.Create(ctx, "accounts", "", map[string]string{
		"username": "alice",
		"password": "pw123",
	}, "Password")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	hash, found, err := repo.SecretHash(ctx, "accounts", "", "username", "password", "alice")
	if err != nil {
		t.Fatalf("SecretHash failed: %v", err)
	}
	if !found {
		t.Fatal("expected a matching user")
	}
	if hash != "HASHED:pw123" {
		t.Errorf("sensitive field not transformed: %q", hash)
	}
}

func TestSecretHashMissingUser(t *testing.T) {
	repo := newTestRepo(t, `CREATE TABLE accounts (username TEXT, password TEXT)`)

	hash, found, err := repo.SecretHash(context.Background(),
		"accounts", "", "username", "password", "nobody")
	if err != nil {
		t.Fatalf("SecretHash failed: %v", err)
	}
	if found || hash != "" {
		t.Errorf("expected no match, got %q found=%v", hash, found)
	}
}

func TestUnknownColumnTypeStillFilters(t *testing.T) {
	// A declared type outside every catalog resolves to Unknown; the raw
	// string is bound and the operation proceeds.
	repo := newTestRepo(t,
		`CREATE TABLE odd (code WEIRDTYPE)`,
		`INSERT INTO odd (code) VALUES ('7'), ('8')`,
	)

	recs, err := repo.FindByKey(context.Background(), "odd", "", "code", "7")
	if err != nil {
		t.Fatalf("FindByKey failed: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("expected 1 row, got %d", len(recs))
	}
}

func TestValidation(t *testing.T) {
	repo := itemsRepo(t)
	ctx := context.Background()

	var vErr *ValidationError
	if _, err := repo.ListRows(ctx, "", "", 0); !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError for empty table, got %v", err)
	}
	if _, err := repo.FindByKey(ctx, "items", "", "", "1"); !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError for empty key column, got %v", err)
	}
	if _, err := repo.Create(ctx, "items", "", nil, ""); !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError for empty fields, got %v", err)
	}
	if _, err := repo.Update(ctx, "items", "", "id", "1", nil, ""); !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError for empty fields, got %v", err)
	}
}

func TestEmptyConnectionString(t *testing.T) {
	repo := New(dialect.SQLite, config.Static(""), fakeHasher{}, nil)

	var cfgErr *ConfigurationError
	if _, err := repo.ListRows(context.Background(), "items", "", 0); !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
}

func TestProviderErrorOnBadStatement(t *testing.T) {
	repo := itemsRepo(t)

	var provErr *ProviderError
	_, err := repo.ListRows(context.Background(), "no_such_table", "", 0)
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Unwrap() == nil {
		t.Error("ProviderError should wrap the engine error")
	}
}
