// Package migrations embeds the goose SQL migrations applied at startup.
// The goose version table doubles as the append-only ledger of applied
// schema versions.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
