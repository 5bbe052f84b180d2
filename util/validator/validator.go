// Package validator checks untyped parameter payloads against declared
// schemas, reporting every violation rather than stopping at the first.
package validator

import (
	"fmt"
	"math"

	"github.com/d-gangz/mcp-template/protocol"
	"github.com/d-gangz/mcp-template/util/schema"
)

// Validate checks params against the schema's declared fields in declaration
// order. Missing required fields and present fields whose runtime type
// disagrees with the declared type are recorded as violations; fields not
// declared in the schema are ignored. Nothing is coerced. On failure the
// returned error is a *protocol.ValidationError carrying the full violation
// list.
func Validate(s schema.Schema, params map[string]interface{}) error {
	var violations []protocol.Violation
	for _, field := range s.Fields {
		value, present := params[field.Name]
		if !present {
			if field.Required {
				violations = append(violations, protocol.Violation{
					Field:    field.Name,
					Expected: field.Type,
					Reason:   "required field is missing",
				})
			}
			continue
		}
		if !typeMatches(field.Type, value) {
			violations = append(violations, protocol.Violation{
				Field:    field.Name,
				Expected: field.Type,
				Reason:   fmt.Sprintf("expected %s, got %s", field.Type, jsonTypeName(value)),
			})
		}
	}
	if len(violations) > 0 {
		return &protocol.ValidationError{Violations: violations}
	}
	return nil
}

// typeMatches reports whether a JSON-decoded value satisfies the declared
// parameter type. JSON numbers decode to float64; "integer" additionally
// requires an integral value.
func typeMatches(declared string, value interface{}) bool {
	switch declared {
	case schema.TypeString:
		_, ok := value.(string)
		return ok
	case schema.TypeNumber:
		return isNumber(value)
	case schema.TypeInteger:
		switch n := value.(type) {
		case float64:
			return n == math.Trunc(n)
		case int, int32, int64:
			return true
		default:
			return false
		}
	case schema.TypeBoolean:
		_, ok := value.(bool)
		return ok
	case schema.TypeObject:
		_, ok := value.(map[string]interface{})
		return ok
	case schema.TypeArray:
		_, ok := value.([]interface{})
		return ok
	default:
		return true // Unknown declared type, permissive
	}
}

func isNumber(value interface{}) bool {
	switch value.(type) {
	case float64, float32, int, int32, int64:
		return true
	default:
		return false
	}
}

// jsonTypeName names a decoded JSON value's type for violation messages.
func jsonTypeName(value interface{}) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return schema.TypeString
	case bool:
		return schema.TypeBoolean
	case float64, float32, int, int32, int64:
		return schema.TypeNumber
	case map[string]interface{}:
		return schema.TypeObject
	case []interface{}:
		return schema.TypeArray
	default:
		return fmt.Sprintf("%T", value)
	}
}
