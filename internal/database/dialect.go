package database

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Dialect defines the interface for database-specific operations
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts ? placeholders to the driver's bind style
	RewriteQuery(query string) string

	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the subdirectory name for migrations (e.g., "sqlite", "postgres")
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL to create the migrations tracking table
	CreateMigrationsTableQuery() string

	// UpsertUserQuery inserts or replaces a users row.
	// Arguments: id, username, display_name, points, last_module, created_at, updated_at.
	UpsertUserQuery() string

	// UpsertRecordQuery inserts or replaces a completion_records row.
	// Arguments: user_id, module, item_key, completed, updated_at.
	UpsertRecordQuery() string
}

// DialectConfig holds configuration for database connection
type DialectConfig struct {
	// For SQLite
	Path string

	// For PostgreSQL/MySQL
	URL string
}

// rebind rewrites ? placeholders for the given driver
func rebind(driverName, query string) string {
	return sqlx.Rebind(sqlx.BindType(driverName), query)
}

const onConflictUpsertUser = `
	INSERT INTO users (id, username, display_name, points, last_module, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		username = excluded.username,
		display_name = excluded.display_name,
		points = excluded.points,
		last_module = excluded.last_module,
		updated_at = excluded.updated_at
`

const onConflictUpsertRecord = `
	INSERT INTO completion_records (user_id, module, item_key, completed, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (user_id, module, item_key) DO UPDATE SET
		completed = excluded.completed,
		updated_at = excluded.updated_at
`
