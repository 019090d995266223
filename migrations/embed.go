// migrations содержит встроенные goose-миграции схемы БД,
// применяемые при старте сервиса.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
