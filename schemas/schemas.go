// Package schemas embeds the JSON Schemas used to validate task catalogs
// and judge verdicts.
package schemas

import _ "embed"

// TasksSchemaJSON is the JSON Schema for task catalog YAML files.
//
//go:embed tasks.schema.json
var TasksSchemaJSON string

// GradeSchemaJSON is the JSON Schema for structured judge verdicts. It is
// both sent to the completion service as the output format and used to
// validate what comes back.
//
//go:embed grade.schema.json
var GradeSchemaJSON string
