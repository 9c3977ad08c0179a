// Package schemas embeds the JSON Schemas for payloads accepted from files
// and the HTTP API.
package schemas

import "embed"

// Names of the embedded schemas
const (
	LibraryImport = "library_import.schema.json"
	Statement     = "statement.schema.json"
	Resume        = "resume.schema.json"
)

//go:embed *.schema.json
var FS embed.FS
