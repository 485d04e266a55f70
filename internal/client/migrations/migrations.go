// Package migrations carries the embedded, versioned schema for the local
// database. Migrations are applied deterministically at store initialization
// instead of ad hoc column-existence checks.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
