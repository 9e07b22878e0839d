package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/aalopez23/county-hr-dashboard/internal/migrate"
)

// Driver names registered by the imported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// SQLKV is the durable KV: a single kv(k, v) table reached through
// database/sql. SQLite is the default deployment; Postgres is used when a DSN
// is configured.
type SQLKV struct {
	db     *sql.DB
	driver string
}

// Open connects to the database behind the given driver and DSN.
func Open(driver, dsn string) (*SQLKV, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, errors.New("store: unsupported driver " + driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &SQLKV{db: db, driver: driver}, nil
}

func (s *SQLKV) Close() error { return s.db.Close() }

// DB exposes the underlying pool for readiness probes and migrations.
func (s *SQLKV) DB() *sql.DB { return s.db }

// Driver returns the driver name the store was opened with.
func (s *SQLKV) Driver() string { return s.driver }

func (s *SQLKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	query := migrate.Rebind(s.driver, `select v from kv where k = $1`)
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *SQLKV) Put(ctx context.Context, key string, value []byte) error {
	query := migrate.Rebind(s.driver, `
		insert into kv (k, v) values ($1, $2)
		on conflict (k) do update set v = excluded.v
	`)
	_, err := s.db.ExecContext(ctx, query, key, string(value))
	return err
}

func (s *SQLKV) Delete(ctx context.Context, key string) error {
	query := migrate.Rebind(s.driver, `delete from kv where k = $1`)
	_, err := s.db.ExecContext(ctx, query, key)
	return err
}

// Migrations returns the schema migrations for the blob store. The DDL is
// valid for both supported dialects.
func Migrations() []migrate.Migration {
	return []migrate.Migration{
		{
			Name: "0001_create_kv",
			SQL:  `create table if not exists kv (k text primary key, v text not null)`,
		},
	}
}
