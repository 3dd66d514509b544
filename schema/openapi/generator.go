// Package openapi renders bean types as OpenAPI component schemas so
// external tools can validate style payloads.
package openapi

import (
	"fmt"
	"reflect"
	"time"

	styleable "github.com/goliatone/go-styleable"
)

// Generate builds an OpenAPI document with one component schema and one
// operation per bean type. Each schema lists the keys of the type as
// nullable properties; keys whose values are not JSON scalars are described
// as strings in their converter's text form.
func Generate(types []*styleable.BeanType, opts ...GeneratorOption) (map[string]any, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("openapi: at least one bean type is required")
	}
	cfg := defaultGeneratorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	registry := newComponentRegistry()
	builder := newDocumentBuilder(cfg)
	for _, t := range types {
		if t == nil {
			return nil, fmt.Errorf("openapi: bean type must not be nil")
		}
		ref := registry.register(t.Name(), schemaForType(t))
		if err := builder.addOperation(t.Name(), ref); err != nil {
			return nil, err
		}
	}
	return builder.build(registry)
}

func schemaForType(t *styleable.BeanType) map[string]any {
	properties := map[string]any{}
	for index, key := range t.Registry().Keys() {
		prop := schemaForValueType(key.ValueType())
		prop["nullable"] = true
		prop["x-key-index"] = index
		if def, ok := defaultFor(key, prop); ok {
			prop["default"] = def
		}
		properties[key.Name()] = prop
	}
	return map[string]any{
		"type":                 "object",
		"description":          fmt.Sprintf("Styleable properties of %s", t.Name()),
		"properties":           properties,
		"additionalProperties": false,
	}
}

func schemaForValueType(rt reflect.Type) map[string]any {
	if rt == nil {
		return map[string]any{}
	}
	if rt == reflect.TypeOf(time.Time{}) {
		return map[string]any{"type": "string", "format": "date-time"}
	}
	switch rt.Kind() {
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.String:
		return map[string]any{"type": "string"}
	case reflect.Slice, reflect.Array:
		return map[string]any{
			"type":  "array",
			"items": schemaForValueType(rt.Elem()),
		}
	default:
		return map[string]any{
			"type":      "string",
			"x-go-type": rt.String(),
		}
	}
}

// defaultFor renders the key default in the representation the schema
// declares: scalars as-is, everything else as converter text.
func defaultFor(key styleable.Key, prop map[string]any) (any, bool) {
	def := key.DefaultValue()
	if def == nil {
		return nil, false
	}
	if _, textual := prop["x-go-type"]; !textual {
		return def, true
	}
	text, err := styleable.FormatValue(key, def)
	if err != nil {
		return nil, false
	}
	return text, true
}
