// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"encoding/json"
	"strings"
	"testing"
)

// mustParse decodes a JSON literal into the map shape schemas and arguments
// arrive in at runtime.
func mustParse(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("bad test literal: %v", err)
	}
	return m
}

func TestArguments_RequiredFields(t *testing.T) {
	schema := mustParse(t, `{
		"type": "object",
		"properties": {
			"location": {"type": "string"},
			"unit": {"type": "string"}
		},
		"required": ["location"]
	}`)

	if err := Arguments(mustParse(t, `{"location": "Amsterdam", "unit": "celsius"}`), schema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := Arguments(mustParse(t, `{"unit": "celsius"}`), schema)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := err.Error(); got != "Missing required argument: location" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestArguments_PermitsUnknownArguments(t *testing.T) {
	schema := mustParse(t, `{
		"type": "object",
		"properties": {"name": {"type": "string"}}
	}`)

	if err := Arguments(mustParse(t, `{"name": "x", "extra": 42}`), schema); err != nil {
		t.Fatalf("unknown arguments must be permitted: %v", err)
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		args    string
		wantErr string
	}{
		{
			name:   "enum member accepted",
			schema: `{"properties": {"unit": {"type": "string", "enum": ["celsius", "fahrenheit"]}}}`,
			args:   `{"unit": "celsius"}`,
		},
		{
			name:    "enum non-member rejected",
			schema:  `{"properties": {"unit": {"type": "string", "enum": ["celsius", "fahrenheit"]}}}`,
			args:    `{"unit": "kelvin"}`,
			wantErr: "Argument 'unit' must be one of: celsius, fahrenheit. Got: 'kelvin'",
		},
		{
			name:   "length in bounds",
			schema: `{"properties": {"name": {"type": "string", "minLength": 3, "maxLength": 10}}}`,
			args:   `{"name": "Alice"}`,
		},
		{
			name:    "too short",
			schema:  `{"properties": {"name": {"type": "string", "minLength": 3}}}`,
			args:    `{"name": "Al"}`,
			wantErr: "Argument 'name' must be at least 3 characters long",
		},
		{
			name:    "too long",
			schema:  `{"properties": {"name": {"type": "string", "maxLength": 10}}}`,
			args:    `{"name": "Alexander the Great"}`,
			wantErr: "Argument 'name' must be at most 10 characters long",
		},
		{
			name:    "number where string expected",
			schema:  `{"properties": {"name": {"type": "string"}}}`,
			args:    `{"name": 123}`,
			wantErr: "Argument 'name' must be a string",
		},
		{
			name:   "pattern accepted but not enforced",
			schema: `{"properties": {"code": {"type": "string", "pattern": "^[A-Z]+$"}}}`,
			args:   `{"code": "not matching"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Arguments(mustParse(t, tt.args), mustParse(t, tt.schema))
			checkErr(t, err, tt.wantErr)
		})
	}
}

func TestValidateNumber(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		args    string
		wantErr string
	}{
		{
			name:   "in range",
			schema: `{"properties": {"age": {"type": "number", "minimum": 0, "maximum": 120}}}`,
			args:   `{"age": 25}`,
		},
		{
			name:   "boundary values accepted",
			schema: `{"properties": {"age": {"type": "number", "minimum": 0, "maximum": 120}}}`,
			args:   `{"age": 120}`,
		},
		{
			name:    "below minimum",
			schema:  `{"properties": {"age": {"type": "number", "minimum": 0}}}`,
			args:    `{"age": -1}`,
			wantErr: "Argument 'age' must be >= 0",
		},
		{
			name:    "above maximum",
			schema:  `{"properties": {"age": {"type": "number", "maximum": 120}}}`,
			args:    `{"age": 150}`,
			wantErr: "Argument 'age' must be <= 120",
		},
		{
			name:    "exclusive minimum is strict",
			schema:  `{"properties": {"x": {"type": "number", "exclusiveMinimum": 5}}}`,
			args:    `{"x": 5}`,
			wantErr: "Argument 'x' must be > 5",
		},
		{
			name:    "exclusive maximum is strict",
			schema:  `{"properties": {"x": {"type": "number", "exclusiveMaximum": 5}}}`,
			args:    `{"x": 5}`,
			wantErr: "Argument 'x' must be < 5",
		},
		{
			name:   "multipleOf tolerates rounding",
			schema: `{"properties": {"x": {"type": "number", "multipleOf": 0.1}}}`,
			args:   `{"x": 0.3}`,
		},
		{
			name:    "not a multiple",
			schema:  `{"properties": {"x": {"type": "number", "multipleOf": 0.1}}}`,
			args:    `{"x": 0.35}`,
			wantErr: "Argument 'x' must be a multiple of 0.1",
		},
		{
			name:    "string where number expected",
			schema:  `{"properties": {"x": {"type": "number"}}}`,
			args:    `{"x": "5"}`,
			wantErr: "Argument 'x' must be a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Arguments(mustParse(t, tt.args), mustParse(t, tt.schema))
			checkErr(t, err, tt.wantErr)
		})
	}
}

func TestValidateInteger(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		args    string
		wantErr string
	}{
		{
			name:   "whole number accepted",
			schema: `{"properties": {"count": {"type": "integer"}}}`,
			args:   `{"count": 42}`,
		},
		{
			name:    "fractional rejected",
			schema:  `{"properties": {"count": {"type": "integer"}}}`,
			args:    `{"count": 42.5}`,
			wantErr: "Argument 'count' must be an integer",
		},
		{
			name:    "below minimum",
			schema:  `{"properties": {"count": {"type": "integer", "minimum": 1}}}`,
			args:    `{"count": 0}`,
			wantErr: "Argument 'count' must be >= 1",
		},
		{
			name:    "not a multiple",
			schema:  `{"properties": {"count": {"type": "integer", "multipleOf": 3}}}`,
			args:    `{"count": 7}`,
			wantErr: "Argument 'count' must be a multiple of 3",
		},
		{
			name:   "multiple accepted",
			schema: `{"properties": {"count": {"type": "integer", "multipleOf": 3}}}`,
			args:   `{"count": 9}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Arguments(mustParse(t, tt.args), mustParse(t, tt.schema))
			checkErr(t, err, tt.wantErr)
		})
	}
}

func TestValidateBooleanAndNull(t *testing.T) {
	schema := mustParse(t, `{"properties": {
		"active": {"type": "boolean"},
		"nothing": {"type": "null"}
	}}`)

	if err := Arguments(mustParse(t, `{"active": true, "nothing": null}`), schema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := Arguments(mustParse(t, `{"active": "true"}`), schema)
	checkErr(t, err, "Argument 'active' must be a boolean")

	err = Arguments(mustParse(t, `{"nothing": 0}`), schema)
	checkErr(t, err, "Argument 'nothing' must be null")
}

func TestValidateArray(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		args    string
		wantErr string
	}{
		{
			name:   "valid array",
			schema: `{"properties": {"tags": {"type": "array", "items": {"type": "string"}, "minItems": 1, "maxItems": 5}}}`,
			args:   `{"tags": ["go", "wasm"]}`,
		},
		{
			name:    "below minItems",
			schema:  `{"properties": {"tags": {"type": "array", "minItems": 1}}}`,
			args:    `{"tags": []}`,
			wantErr: "Argument 'tags' must have at least 1 items",
		},
		{
			name:    "above maxItems",
			schema:  `{"properties": {"tags": {"type": "array", "maxItems": 5}}}`,
			args:    `{"tags": ["a", "b", "c", "d", "e", "f"]}`,
			wantErr: "Argument 'tags' must have at most 5 items",
		},
		{
			name:    "item type mismatch carries index",
			schema:  `{"properties": {"tags": {"type": "array", "items": {"type": "string"}}}}`,
			args:    `{"tags": ["valid", 123]}`,
			wantErr: "Argument 'tags[1]' must be a string",
		},
		{
			name:    "duplicate scalars rejected",
			schema:  `{"properties": {"ids": {"type": "array", "uniqueItems": true}}}`,
			args:    `{"ids": [1, 2, 1]}`,
			wantErr: "Argument 'ids' must have unique items",
		},
		{
			name:    "structurally equal objects rejected",
			schema:  `{"properties": {"ids": {"type": "array", "uniqueItems": true}}}`,
			args:    `{"ids": [{"a": 1}, {"b": 2}, {"a": 1}]}`,
			wantErr: "Argument 'ids' must have unique items",
		},
		{
			name:    "not an array",
			schema:  `{"properties": {"tags": {"type": "array"}}}`,
			args:    `{"tags": "go"}`,
			wantErr: "Argument 'tags' must be an array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Arguments(mustParse(t, tt.args), mustParse(t, tt.schema))
			checkErr(t, err, tt.wantErr)
		})
	}
}

func TestValidateObject(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		args    string
		wantErr string
	}{
		{
			name: "valid nested object",
			schema: `{"properties": {"user": {
				"type": "object",
				"properties": {"name": {"type": "string"}, "age": {"type": "integer"}},
				"required": ["name"]
			}}}`,
			args: `{"user": {"name": "Alice", "age": 30}}`,
		},
		{
			name: "missing nested required property has object path",
			schema: `{"properties": {"user": {
				"type": "object",
				"properties": {"name": {"type": "string"}},
				"required": ["name"]
			}}}`,
			args:    `{"user": {"age": 30}}`,
			wantErr: "Object 'user' is missing required property 'name'",
		},
		{
			name: "deeply nested error carries dotted path",
			schema: `{"properties": {"user": {
				"type": "object",
				"properties": {"address": {
					"type": "object",
					"properties": {"zip": {"type": "string"}}
				}}
			}}}`,
			args:    `{"user": {"address": {"zip": 1234}}}`,
			wantErr: "Argument 'user.address.zip' must be a string",
		},
		{
			name:    "below minProperties",
			schema:  `{"properties": {"meta": {"type": "object", "minProperties": 2}}}`,
			args:    `{"meta": {"a": 1}}`,
			wantErr: "Argument 'meta' must have at least 2 properties",
		},
		{
			name:    "above maxProperties",
			schema:  `{"properties": {"meta": {"type": "object", "maxProperties": 1}}}`,
			args:    `{"meta": {"a": 1, "b": 2}}`,
			wantErr: "Argument 'meta' must have at most 1 properties",
		},
		{
			name:    "not an object",
			schema:  `{"properties": {"meta": {"type": "object"}}}`,
			args:    `{"meta": []}`,
			wantErr: "Argument 'meta' must be an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Arguments(mustParse(t, tt.args), mustParse(t, tt.schema))
			checkErr(t, err, tt.wantErr)
		})
	}
}

func TestValidateUnknownType(t *testing.T) {
	schema := mustParse(t, `{"properties": {"x": {"type": "decimal"}}}`)
	err := Arguments(mustParse(t, `{"x": 1}`), schema)
	checkErr(t, err, "Unknown type 'decimal' in schema for 'x'")
}

func TestValidateNoTypeAcceptsAnything(t *testing.T) {
	schema := mustParse(t, `{"properties": {"x": {"description": "anything"}}}`)
	for _, args := range []string{`{"x": 1}`, `{"x": "s"}`, `{"x": null}`, `{"x": [1, 2]}`} {
		if err := Arguments(mustParse(t, args), schema); err != nil {
			t.Errorf("args %s: unexpected error: %v", args, err)
		}
	}
}

func TestValidateDepthBound(t *testing.T) {
	// Build a schema and matching value nested beyond the recursion bound.
	leafSchema := map[string]any{"type": "string"}
	schemaNode := leafSchema
	var value any = "leaf"
	for i := 0; i < maxDepth+2; i++ {
		schemaNode = map[string]any{
			"type":       "object",
			"properties": map[string]any{"next": schemaNode},
		}
		value = map[string]any{"next": value}
	}

	schema := map[string]any{"properties": map[string]any{"root": schemaNode}}
	args := map[string]any{"root": value}

	err := Arguments(args, schema)
	if err == nil {
		t.Fatal("expected depth bound error, got nil")
	}
	if !strings.Contains(err.Error(), "maximum nesting depth") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func checkErr(t *testing.T, err error, want string) {
	t.Helper()
	if want == "" {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
