// Package hbnb embeds the database migrations applied by the migrate command.
package hbnb

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
