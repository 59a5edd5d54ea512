package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema is the output contract for serialized records. The field
// definition ties the null value to the not-found confidence in both
// directions.
const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name", "phone", "address", "status", "metadata"],
  "properties": {
    "name": {"$ref": "#/$defs/field"},
    "phone": {"$ref": "#/$defs/field"},
    "address": {"$ref": "#/$defs/field"},
    "status": {"enum": ["complete", "partial", "failed"]},
    "metadata": {
      "type": "object",
      "required": ["processed_at", "extraction_successful"],
      "properties": {
        "file_name": {"type": "string"},
        "file_size": {"type": "integer", "minimum": 0},
        "pages": {"type": "integer", "minimum": 0},
        "processed_at": {"type": "string"},
        "extraction_successful": {"type": "boolean"}
      }
    }
  },
  "$defs": {
    "field": {
      "type": "object",
      "required": ["value", "confidence"],
      "properties": {
        "confidence": {"enum": ["found", "low-confidence", "not-found"]}
      },
      "if": {"properties": {"confidence": {"const": "not-found"}}},
      "then": {"properties": {"value": {"type": "null"}}},
      "else": {"properties": {"value": {"type": "string", "minLength": 1}}}
    }
  }
}`

// compileRecordSchema compiles the output contract once at service startup
func compileRecordSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", strings.NewReader(recordSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// checkRecord validates a built record against the output contract. A
// violation means the extractor itself produced a bad record.
func checkRecord(schema *jsonschema.Schema, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return &MalformedOutputError{Err: fmt.Errorf("marshal record: %w", err)}
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return &MalformedOutputError{Err: fmt.Errorf("unmarshal record: %w", err)}
	}

	if err := schema.Validate(v); err != nil {
		return &MalformedOutputError{Err: fmt.Errorf("json does not match schema: %w", err)}
	}

	return nil
}
