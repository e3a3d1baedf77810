// Package accounts holds assets shared by the accounts binaries.
package accounts

import "embed"

// Migrations contains the goose SQL migrations for the accounts schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS
