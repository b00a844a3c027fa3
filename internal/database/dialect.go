package database

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"
)

// Dialect defines the interface for database-specific operations
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (e.g., ? to $1 for postgres)
	RewriteQuery(query string) string

	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the subdirectory name for migrations (e.g., "sqlite", "postgres")
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL to create the migrations tracking table
	CreateMigrationsTableQuery() string

	// UpsertQuery builds an insert-or-replace statement for a table keyed by
	// keyColumns. Placeholders are ? in keyColumns-then-updateColumns order.
	UpsertQuery(table string, keyColumns, updateColumns []string) string
}

// DialectConfig holds configuration for database connection
type DialectConfig struct {
	// For SQLite
	Path string

	// For PostgreSQL/MySQL
	URL string
}

// placeholderRegexp matches ? placeholders
var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

// onConflictUpsert builds the ON CONFLICT form shared by SQLite and PostgreSQL
func onConflictUpsert(table string, keyColumns, updateColumns []string) string {
	all := append(append([]string{}, keyColumns...), updateColumns...)

	assignments := make([]string, len(updateColumns))
	for i, col := range updateColumns {
		assignments[i] = col + " = excluded." + col
	}

	return "INSERT INTO " + table + " (" + strings.Join(all, ", ") + ")" +
		" VALUES (" + placeholders(len(all)) + ")" +
		" ON CONFLICT (" + strings.Join(keyColumns, ", ") + ")" +
		" DO UPDATE SET " + strings.Join(assignments, ", ")
}

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "?"
	}
	return strings.Join(parts, ", ")
}
