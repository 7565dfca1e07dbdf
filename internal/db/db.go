// Package db embeds the SQL migration files so binaries carry their own
// schema.
package db

import "embed"

// MigrationFS holds the versioned SQL migrations.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
