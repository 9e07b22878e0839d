package migrate

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRebind(t *testing.T) {
	cases := []struct {
		name   string
		driver string
		query  string
		want   string
	}{
		{"pgx passthrough", "pgx", `select v from kv where k = $1`, `select v from kv where k = $1`},
		{"sqlite single", "sqlite", `select v from kv where k = $1`, `select v from kv where k = ?`},
		{"sqlite multiple", "sqlite", `insert into kv (k, v) values ($1, $2)`, `insert into kv (k, v) values (?, ?)`},
		{"sqlite two digits", "sqlite", `$10`, `?`},
		{"sqlite bare dollar", "sqlite", `select '$' from kv`, `select '$' from kv`},
		{"sqlite no placeholders", "sqlite", `select 1`, `select 1`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Rebind(tc.driver, tc.query); got != tc.want {
				t.Fatalf("Rebind(%q, %q) = %q, want %q", tc.driver, tc.query, got, tc.want)
			}
		})
	}
}

func TestUpSkipsExecutedMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("create table if not exists schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("select name from schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("0001_create_kv"))

	// Only the second migration runs.
	mock.ExpectExec("create table if not exists extra").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("insert into schema_migrations").
		WithArgs("0002_create_extra", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	migrations := []Migration{
		{Name: "0001_create_kv", SQL: `create table if not exists kv (k text primary key, v text not null)`},
		{Name: "0002_create_extra", SQL: `create table if not exists extra (id text primary key)`},
	}
	if err := NewManager(db, "pgx").Up(context.Background(), migrations); err != nil {
		t.Fatalf("Up: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpWrapsApplyError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("create table if not exists schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("select name from schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	dbErr := errors.New("syntax error")
	mock.ExpectExec("create table broken").WillReturnError(dbErr)

	migrations := []Migration{{Name: "0001_broken", SQL: `create table broken`}}
	err = NewManager(db, "pgx").Up(context.Background(), migrations)
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped apply error, got %v", err)
	}
}
