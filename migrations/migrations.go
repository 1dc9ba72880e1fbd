// Package migrations — SQL-миграции хранилища кэша для goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
