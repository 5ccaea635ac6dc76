// Package migrations embeds the goose SQL migrations for the shop schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
