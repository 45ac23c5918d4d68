// Package migrations embeds the goose SQL migrations for the record store.
// Table names are prefixed through the TABLE_PREFIX environment variable
// (goose ENVSUB), matching postgres.NewTableNames.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
