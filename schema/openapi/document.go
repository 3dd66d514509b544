package openapi

import (
	"fmt"
	"net/url"

	styleable "github.com/goliatone/go-styleable"
)

type documentBuilder struct {
	config generatorConfig
	paths  map[string]any
}

func newDocumentBuilder(config generatorConfig) *documentBuilder {
	return &documentBuilder{
		config: config,
		paths:  map[string]any{},
	}
}

func (b *documentBuilder) addOperation(typeName, ref string) error {
	op, err := b.config.operationFor(typeName)
	if err != nil {
		return err
	}
	path := op.PathPrefix + "/" + url.PathEscape(typeName)
	if _, exists := b.paths[path]; exists {
		return fmt.Errorf("openapi: duplicate bean type %q", typeName)
	}
	b.paths[path] = map[string]any{op.Method: map[string]any{
		"operationId": fmt.Sprintf("%s:%s", op.Method, path),
		"summary":     op.Summary,
		"x-origin":    op.Origin.String(),
		"requestBody": map[string]any{
			"required": true,
			"content": map[string]any{
				contentType: map[string]any{
					"schema": map[string]any{"$ref": ref},
				},
			},
		},
		"responses": map[string]any{
			"204": map[string]any{"description": "Styles written"},
			"422": map[string]any{"description": "A value was rejected by its key"},
		},
	}}
	return nil
}

func (b *documentBuilder) build(registry *componentRegistry) (map[string]any, error) {
	origins := make([]string, 0, len(styleable.Origins()))
	for _, origin := range styleable.Origins() {
		origins = append(origins, origin.String())
	}
	document := map[string]any{
		"openapi":           openAPIVersion,
		"info":              b.buildInfo(),
		"paths":             b.paths,
		"x-cascade-origins": origins,
	}
	if components := registry.componentsMap(); components != nil {
		document["components"] = map[string]any{
			"schemas": components,
		}
	}
	if err := validateDocument(document); err != nil {
		return nil, err
	}
	return document, nil
}

func (b *documentBuilder) buildInfo() map[string]any {
	info := map[string]any{
		"title":   b.config.info.Title,
		"version": b.config.info.Version,
	}
	if b.config.info.Description != "" {
		info["description"] = b.config.info.Description
	}
	return info
}

func validateDocument(document map[string]any) error {
	if document == nil {
		return fmt.Errorf("openapi: document cannot be nil")
	}
	openapi, _ := document["openapi"].(string)
	if openapi == "" {
		return fmt.Errorf("openapi: document missing version string")
	}
	info, _ := document["info"].(map[string]any)
	if info == nil {
		return fmt.Errorf("openapi: document missing info section")
	}
	if title, _ := info["title"].(string); title == "" {
		return fmt.Errorf("openapi: info.title must be set")
	}
	if version, _ := info["version"].(string); version == "" {
		return fmt.Errorf("openapi: info.version must be set")
	}
	paths, _ := document["paths"].(map[string]any)
	if len(paths) == 0 {
		return fmt.Errorf("openapi: document must define at least one path")
	}
	for pathKey, pathValue := range paths {
		pathItem, _ := pathValue.(map[string]any)
		if len(pathItem) == 0 {
			return fmt.Errorf("openapi: path %q missing operations", pathKey)
		}
		for method, operationValue := range pathItem {
			operation, _ := operationValue.(map[string]any)
			if operation == nil {
				return fmt.Errorf("openapi: operation %s %s invalid payload", method, pathKey)
			}
			if _, ok := operation["operationId"].(string); !ok {
				return fmt.Errorf("openapi: operation %s %s missing operationId", method, pathKey)
			}
			if _, ok := operation["responses"].(map[string]any); !ok {
				return fmt.Errorf("openapi: operation %s %s missing responses", method, pathKey)
			}
		}
	}
	return nil
}
