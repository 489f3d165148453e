// Package migrations embeds the SQL schema used by the sqlite and postgres
// storage drivers.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
