// Package migrations embeds the catalog schema migrations.
package migrations

import "embed"

// FS holds the NNN_name.up.sql schema migrations.
//
//go:embed *.sql
var FS embed.FS
