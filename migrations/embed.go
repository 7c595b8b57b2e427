// Package migrations embeds the SQL schema migrations for the mood store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
