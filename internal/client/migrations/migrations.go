// Package migrations embeds the client session database schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
