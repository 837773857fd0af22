// Package migrations embeds the SQL schema for the reblog history.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
