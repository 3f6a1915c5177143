package bunrepo

import "github.com/uptrace/bun/migrate"

// Migrations holds the schema history; files named <version>_<name>.go register into it.
var Migrations = migrate.NewMigrations()
