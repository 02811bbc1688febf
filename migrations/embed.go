// Package migrations embeds the schema files applied at startup.
package migrations

import "embed"

// FS holds the numbered migrations. database.RunMigrations applies only the
// *.up.sql files; each *.down.sql is a manual rollback for operators, run
// with psql in reverse order.
//
//go:embed *.sql
var FS embed.FS
