package migrations

import "embed"

// FS contains the embedded SQLite schema migrations for the export store.
//
//go:embed *.sql
var FS embed.FS
