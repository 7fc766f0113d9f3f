package sqlbase

import (
	"strconv"
	"strings"
)

// Dialect captures the SQL differences between the supported databases.
type Dialect struct {
	Name                  string
	CreateMigrationsTable string
	numberedPlaceholders  bool
}

var (
	// Postgres is the dialect of PostgreSQL through lib/pq.
	Postgres = Dialect{
		Name: "postgres",
		CreateMigrationsTable: `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				version INTEGER PRIMARY KEY,
				applied_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			);
		`,
		numberedPlaceholders: true,
	}

	// SQLite is the dialect of SQLite through mattn/go-sqlite3.
	SQLite = Dialect{
		Name: "sqlite3",
		CreateMigrationsTable: `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				version INTEGER PRIMARY KEY,
				applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
		`,
	}
)

// Rebind rewrites the ? placeholders of query into the dialect's placeholder style.
func (d Dialect) Rebind(query string) string {
	if !d.numberedPlaceholders {
		return query
	}

	var builder strings.Builder

	builder.Grow(len(query) + 8)

	n := 0

	for _, r := range query {
		if r != '?' {
			builder.WriteRune(r)

			continue
		}

		n++

		builder.WriteByte('$')
		builder.WriteString(strconv.Itoa(n))
	}

	return builder.String()
}
