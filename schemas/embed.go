// Package schemas holds the JSON Schema documents for the résumé and keyword
// files read by the CLI.
package schemas

import "embed"

// Schema file names
const (
	Resume   = "resume.schema.json"
	Keywords = "keywords.schema.json"
)

// FS contains every *.schema.json file in this directory
//
//go:embed *.schema.json
var FS embed.FS
