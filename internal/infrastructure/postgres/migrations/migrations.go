// Package migrations migraciones SQL embebidas en el binario.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
