// Package migrations embeds the postgres schema migrations so that the binaries can apply
// them without the source tree.
package migrations

import "embed"

// Postgres holds the NNNNNN_name.{up,down}.sql files under postgres/.
//
//go:embed postgres/*.sql
var Postgres embed.FS

const PostgresDir = "postgres"
