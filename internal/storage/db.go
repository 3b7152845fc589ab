// Package storage opens the relational store backing the ledger and keeps its
// schema current. SQLite and PostgreSQL are supported.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "pg"
)

// DB is a database handle that remembers which dialect it speaks.
type DB struct {
	*sql.DB
	Dialect Dialect

	driver string
	url    string
}

// Open connects to the store named by client ("sqlite" or "pg") and url (a
// file path for sqlite, a DSN for postgres) and verifies the connection.
func Open(ctx context.Context, client, url string) (*DB, error) {
	var driver string
	switch Dialect(client) {
	case DialectSQLite:
		driver = "sqlite"
		if dir := filepath.Dir(url); dir != "." && dir != "" && !strings.HasPrefix(url, "file:") {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
	case DialectPostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database client %q", client)
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", client, err)
	}
	if Dialect(client) == DialectSQLite {
		// modernc sqlite serialises writers; one connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{DB: db, Dialect: Dialect(client), driver: driver, url: url}, nil
}

// Rebind rewrites ? placeholders to the $n form postgres expects.
func (d *DB) Rebind(query string) string {
	if d.Dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
