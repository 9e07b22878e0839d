// Package migrate applies embedded SQL migrations against the configured
// database, recording executed names in a bookkeeping table.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const defaultMigrationsTable = "schema_migrations"

// Migration is one named schema change.
type Migration struct {
	Name string
	SQL  string
}

// Manager executes migrations in order, skipping ones already recorded.
type Manager struct {
	db     *sql.DB
	driver string
	table  string
}

// Option configures Manager.
type Option func(*Manager)

// WithTable overrides the default migrations bookkeeping table.
func WithTable(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.table = name
		}
	}
}

// NewManager constructs a Manager for the given driver ("sqlite" or "pgx").
func NewManager(db *sql.DB, driver string, opts ...Option) *Manager {
	m := &Manager{
		db:     db,
		driver: driver,
		table:  defaultMigrationsTable,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Up applies all pending migrations.
func (m *Manager) Up(ctx context.Context, migrations []Migration) error {
	if err := m.ensureTable(ctx); err != nil {
		return err
	}
	executed, err := m.listExecuted(ctx)
	if err != nil {
		return err
	}
	for _, mig := range migrations {
		if executed[mig.Name] {
			continue
		}
		if _, err := m.db.ExecContext(ctx, mig.SQL); err != nil {
			return fmt.Errorf("apply migration %s: %w", mig.Name, err)
		}
		if err := m.record(ctx, mig.Name); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) ensureTable(ctx context.Context) error {
	query := fmt.Sprintf(
		`create table if not exists %s (name text primary key, executed_at text not null)`,
		m.table,
	)
	_, err := m.db.ExecContext(ctx, query)
	return err
}

func (m *Manager) listExecuted(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, fmt.Sprintf(`select name from %s`, m.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	executed := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		executed[name] = true
	}
	return executed, rows.Err()
}

func (m *Manager) record(ctx context.Context, name string) error {
	query := Rebind(m.driver, fmt.Sprintf(`insert into %s (name, executed_at) values ($1, $2)`, m.table))
	_, err := m.db.ExecContext(ctx, query, name, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Rebind rewrites $N placeholders to ? for drivers that use positional
// question marks. Queries are written in Postgres style; SQLite gets them
// rewritten here.
func Rebind(driver, query string) string {
	if driver == "pgx" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] != '$' {
			b.WriteByte(query[i])
			continue
		}
		j := i + 1
		for j < len(query) && query[j] >= '0' && query[j] <= '9' {
			j++
		}
		if j == i+1 {
			b.WriteByte(query[i])
			continue
		}
		if _, err := strconv.Atoi(query[i+1 : j]); err == nil {
			b.WriteByte('?')
			i = j - 1
		}
	}
	return b.String()
}
