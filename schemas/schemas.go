// Package schemas embeds the JSON Schemas for pff input files.
package schemas

import _ "embed"

// RunSchemaJSON is the schema for run files (run.yaml).
//
//go:embed run.schema.json
var RunSchemaJSON string
