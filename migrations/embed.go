// Package migrations holds the catalog schema as V<n>__name.sql files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
