// Package schema declares parameter schemas for operations and decodes
// validated parameter payloads into strongly-typed structs.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Parameter type names used in schema declarations.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
)

// Field describes one declared parameter: its name, wire type, whether it is
// required, and a human-readable description.
type Field struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

// Schema is an ordered list of declared parameter fields. Order is the
// declaration order and is preserved through validation and serialization.
type Schema struct {
	Fields []Field
}

// Lookup returns the declared field with the given name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// MarshalJSON renders the schema as a JSON-Schema-style object with
// properties in declaration order.
func (s Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":"object","properties":{`)
	var required []string
	for i, f := range s.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		prop := struct {
			Type        string `json:"type"`
			Description string `json:"description,omitempty"`
		}{Type: f.Type, Description: f.Description}
		propJSON, err := json.Marshal(prop)
		if err != nil {
			return nil, err
		}
		buf.Write(propJSON)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	buf.WriteByte('}')
	if len(required) > 0 {
		buf.WriteString(`,"required":`)
		reqJSON, err := json.Marshal(required)
		if err != nil {
			return nil, err
		}
		buf.Write(reqJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// goTypeToSchemaType maps Go kinds to schema parameter types.
func goTypeToSchemaType(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return TypeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInteger
	case reflect.Float32, reflect.Float64:
		return TypeNumber
	case reflect.Bool:
		return TypeBoolean
	case reflect.Slice, reflect.Array:
		return TypeArray
	case reflect.Map, reflect.Struct:
		return TypeObject
	default:
		return TypeString
	}
}

// FromStruct generates a Schema from struct tags. Field names come from the
// json tag (falling back to the lowercased Go name), descriptions from the
// description tag, and requiredness from the convention that non-pointer
// fields are required.
func FromStruct(v interface{}) Schema {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue // Unexported
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := strings.Split(jsonTag, ",")[0]
		if name == "" {
			name = strings.ToLower(field.Name)
		}

		isPtr := field.Type.Kind() == reflect.Ptr
		fieldType := field.Type
		if isPtr {
			fieldType = fieldType.Elem()
		}

		fields = append(fields, Field{
			Name:        name,
			Type:        goTypeToSchemaType(fieldType.Kind()),
			Required:    !isPtr,
			Description: field.Tag.Get("description"),
		})
	}
	return Schema{Fields: fields}
}

// Bind decodes a validated parameter map into a strongly-typed struct T using
// mapstructure with json tag names. It is intended for use after validation:
// it does not re-check requiredness.
func Bind[T any](params map[string]interface{}) (*T, error) {
	var args T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &args,
		TagName: "json",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create argument decoder: %w", err)
	}
	if err := decoder.Decode(params); err != nil {
		return nil, fmt.Errorf("failed to decode arguments: %w", err)
	}
	return &args, nil
}
