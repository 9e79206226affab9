package postgresql

import _ "embed"

// Schema creates every table the repositories use. Statements are idempotent.
//
//go:embed schema.sql
var Schema string
