// Package migrations holds the sqlite migration scripts for the relational
// reference data stores.
package migrations

import "embed"

//go:embed *.sql
var All embed.FS
