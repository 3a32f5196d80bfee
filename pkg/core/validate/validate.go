// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package validate checks tool-call arguments against the JSON-Schema subset
// used in tool input schemas. Validation is fail-fast: the first violation is
// returned with a field path qualifying where it occurred.
package validate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
)

// maxDepth bounds recursion over nested schemas and arguments so adversarially
// nested input fails validation instead of exhausting the stack.
const maxDepth = 32

// multipleOfEpsilon absorbs floating-point rounding in multipleOf checks, so
// e.g. 0.3 is accepted as a multiple of 0.1.
const multipleOfEpsilon = 1e-9

// Arguments validates an argument bag against an object-typed input schema.
// Required names are checked first, then every argument that is named under
// the schema's properties is validated against its declared node. Arguments
// the schema does not name are permitted and ignored.
func Arguments(args map[string]any, schema map[string]any) error {
	for _, name := range stringSlice(schema["required"]) {
		if _, ok := args[name]; !ok {
			return fmt.Errorf("Missing required argument: %s", name)
		}
	}

	props, _ := schema["properties"].(map[string]any)
	if props == nil {
		return nil
	}
	for name, value := range args {
		propSchema, ok := props[name].(map[string]any)
		if !ok {
			continue
		}
		if err := validateValue(name, value, propSchema, 0); err != nil {
			return err
		}
	}
	return nil
}

// validateValue dispatches on the schema node's type tag. A node without a
// type tag accepts any value; an unrecognized tag is itself an error.
func validateValue(field string, value any, schema map[string]any, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("Argument '%s' exceeds maximum nesting depth of %d", field, maxDepth)
	}

	typeTag, present := schema["type"]
	if !present {
		return nil
	}
	tag, ok := typeTag.(string)
	if !ok {
		return fmt.Errorf("Unknown type '%v' in schema for '%s'", typeTag, field)
	}

	switch tag {
	case "string":
		return validateString(field, value, schema)
	case "number":
		return validateNumber(field, value, schema)
	case "integer":
		return validateInteger(field, value, schema)
	case "boolean":
		return validateBoolean(field, value)
	case "array":
		return validateArray(field, value, schema, depth)
	case "object":
		return validateObject(field, value, schema, depth)
	case "null":
		if value != nil {
			return fmt.Errorf("Argument '%s' must be null", field)
		}
		return nil
	default:
		return fmt.Errorf("Unknown type '%s' in schema for '%s'", tag, field)
	}
}

func validateString(field string, value any, schema map[string]any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("Argument '%s' must be a string", field)
	}

	if enum := stringSlice(schema["enum"]); len(enum) > 0 {
		if !slices.Contains(enum, s) {
			return fmt.Errorf("Argument '%s' must be one of: %s. Got: '%s'", field, strings.Join(enum, ", "), s)
		}
	}

	if minLen, ok := numberConstraint(schema, "minLength"); ok && float64(len(s)) < minLen {
		return fmt.Errorf("Argument '%s' must be at least %d characters long", field, int64(minLen))
	}
	if maxLen, ok := numberConstraint(schema, "maxLength"); ok && float64(len(s)) > maxLen {
		return fmt.Errorf("Argument '%s' must be at most %d characters long", field, int64(maxLen))
	}

	// Pattern is accepted in schemas but not enforced. Regex support never
	// made it in; surface the gap instead of silently passing over it.
	if pattern, ok := schema["pattern"].(string); ok {
		slog.Warn("pattern validation not implemented", "field", field, "pattern", pattern)
	}

	return nil
}

func validateNumber(field string, value any, schema map[string]any) error {
	num, ok := asFloat(value)
	if !ok {
		return fmt.Errorf("Argument '%s' must be a number", field)
	}

	if min, ok := numberConstraint(schema, "minimum"); ok && num < min {
		return fmt.Errorf("Argument '%s' must be >= %v", field, min)
	}
	if max, ok := numberConstraint(schema, "maximum"); ok && num > max {
		return fmt.Errorf("Argument '%s' must be <= %v", field, max)
	}
	if exMin, ok := numberConstraint(schema, "exclusiveMinimum"); ok && num <= exMin {
		return fmt.Errorf("Argument '%s' must be > %v", field, exMin)
	}
	if exMax, ok := numberConstraint(schema, "exclusiveMaximum"); ok && num >= exMax {
		return fmt.Errorf("Argument '%s' must be < %v", field, exMax)
	}

	if multipleOf, ok := numberConstraint(schema, "multipleOf"); ok && multipleOf != 0 {
		rem := math.Abs(math.Mod(num, multipleOf))
		if rem > multipleOfEpsilon && math.Abs(rem-math.Abs(multipleOf)) > multipleOfEpsilon {
			return fmt.Errorf("Argument '%s' must be a multiple of %v", field, multipleOf)
		}
	}

	return nil
}

func validateInteger(field string, value any, schema map[string]any) error {
	num, ok := asFloat(value)
	if !ok || num != math.Trunc(num) {
		return fmt.Errorf("Argument '%s' must be an integer", field)
	}
	n := int64(num)

	if min, ok := numberConstraint(schema, "minimum"); ok && n < int64(min) {
		return fmt.Errorf("Argument '%s' must be >= %d", field, int64(min))
	}
	if max, ok := numberConstraint(schema, "maximum"); ok && n > int64(max) {
		return fmt.Errorf("Argument '%s' must be <= %d", field, int64(max))
	}
	if multipleOf, ok := numberConstraint(schema, "multipleOf"); ok && int64(multipleOf) != 0 {
		if n%int64(multipleOf) != 0 {
			return fmt.Errorf("Argument '%s' must be a multiple of %d", field, int64(multipleOf))
		}
	}

	return nil
}

func validateBoolean(field string, value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("Argument '%s' must be a boolean", field)
	}
	return nil
}

func validateArray(field string, value any, schema map[string]any, depth int) error {
	arr, ok := value.([]any)
	if !ok {
		return fmt.Errorf("Argument '%s' must be an array", field)
	}

	if minItems, ok := numberConstraint(schema, "minItems"); ok && float64(len(arr)) < minItems {
		return fmt.Errorf("Argument '%s' must have at least %d items", field, int64(minItems))
	}
	if maxItems, ok := numberConstraint(schema, "maxItems"); ok && float64(len(arr)) > maxItems {
		return fmt.Errorf("Argument '%s' must have at most %d items", field, int64(maxItems))
	}

	if unique, _ := schema["uniqueItems"].(bool); unique {
		seen := make(map[string]struct{}, len(arr))
		for _, item := range arr {
			key := canonical(item)
			if _, dup := seen[key]; dup {
				return fmt.Errorf("Argument '%s' must have unique items", field)
			}
			seen[key] = struct{}{}
		}
	}

	if itemSchema, ok := schema["items"].(map[string]any); ok {
		for i, item := range arr {
			itemField := fmt.Sprintf("%s[%d]", field, i)
			if err := validateValue(itemField, item, itemSchema, depth+1); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateObject(field string, value any, schema map[string]any, depth int) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("Argument '%s' must be an object", field)
	}

	if minProps, ok := numberConstraint(schema, "minProperties"); ok && float64(len(obj)) < minProps {
		return fmt.Errorf("Argument '%s' must have at least %d properties", field, int64(minProps))
	}
	if maxProps, ok := numberConstraint(schema, "maxProperties"); ok && float64(len(obj)) > maxProps {
		return fmt.Errorf("Argument '%s' must have at most %d properties", field, int64(maxProps))
	}

	for _, name := range stringSlice(schema["required"]) {
		if _, ok := obj[name]; !ok {
			return fmt.Errorf("Object '%s' is missing required property '%s'", field, name)
		}
	}

	if props, ok := schema["properties"].(map[string]any); ok {
		for name, propValue := range obj {
			propSchema, ok := props[name].(map[string]any)
			if !ok {
				continue
			}
			nested := fmt.Sprintf("%s.%s", field, name)
			if err := validateValue(nested, propValue, propSchema, depth+1); err != nil {
				return err
			}
		}
	}

	return nil
}

// canonical serializes a value for structural equality comparison.
func canonical(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(b)
}

// asFloat reports the numeric value of JSON-decoded input. Decoded JSON
// numbers arrive as float64; json.Number shows up when callers decode with
// UseNumber.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// numberConstraint reads a numeric constraint off a schema node.
func numberConstraint(schema map[string]any, key string) (float64, bool) {
	v, ok := schema[key]
	if !ok {
		return 0, false
	}
	return asFloat(v)
}

// stringSlice converts a schema-sourced array into its string members,
// skipping anything that is not a string.
func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
