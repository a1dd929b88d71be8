package config

import (
	"errors"

	"github.com/invopop/jsonschema"
)

var (
	ErrGeneratedSchemaIsNil = errors.New("generated JSON Schema is nil")
)

// JSONSchema describes the config file. Property names are the keys the
// file uses, not the Go field names.
func JSONSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:              "mapstructure",
		AllowAdditionalProperties: true,
	}
	schema := r.Reflect(&Config{})
	if schema == nil {
		return nil, ErrGeneratedSchemaIsNil
	}
	schema.Title = "notaspie configuration"

	return schema.MarshalJSON()
}
