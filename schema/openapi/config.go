package openapi

import (
	"errors"
	"fmt"
	"strings"

	styleable "github.com/goliatone/go-styleable"
)

// ErrOperationOrigin is returned when an operation would write at
// OriginResolved or an invalid origin.
var ErrOperationOrigin = errors.New("openapi: operations must write at a concrete origin")

const (
	openAPIVersion = "3.0.3"
	contentType    = "application/json"
)

type generatorConfig struct {
	info      openapiInfo
	operation operationConfig
	perType   map[string][]OperationOption
}

type openapiInfo struct {
	Title       string
	Version     string
	Description string
}

// operationConfig describes the write operation generated for one bean type.
type operationConfig struct {
	PathPrefix string
	Method     string
	Summary    string
	Origin     styleable.Origin
}

func defaultGeneratorConfig() generatorConfig {
	return generatorConfig{
		info: openapiInfo{
			Title:   "Styleable Properties",
			Version: "1.0.0",
		},
		operation: operationConfig{
			PathPrefix: "/styles",
			Method:     "put",
			Origin:     styleable.OriginUser,
		},
	}
}

// operationFor applies the overrides registered for typeName on top of the
// shared operation settings.
func (cfg generatorConfig) operationFor(typeName string) (operationConfig, error) {
	op := cfg.operation
	for _, opt := range cfg.perType[typeName] {
		if opt != nil {
			opt(&op)
		}
	}
	if !op.Origin.Valid() {
		return operationConfig{}, fmt.Errorf("%w: %s has %s", ErrOperationOrigin, typeName, op.Origin)
	}
	if op.Summary == "" {
		op.Summary = fmt.Sprintf("Write %s styles at the %s origin", typeName, op.Origin)
	}
	return op, nil
}

// GeneratorOption configures Generate.
type GeneratorOption func(*generatorConfig)

// InfoOption configures optional fields on the OpenAPI info section.
type InfoOption func(*openapiInfo)

// WithInfoDescription sets the description of the info section.
func WithInfoDescription(description string) InfoOption {
	return func(info *openapiInfo) {
		info.Description = description
	}
}

// WithInfo configures the OpenAPI info block. Empty strings retain the
// existing values.
func WithInfo(title, version string, opts ...InfoOption) GeneratorOption {
	return func(cfg *generatorConfig) {
		if title != "" {
			cfg.info.Title = title
		}
		if version != "" {
			cfg.info.Version = version
		}
		for _, opt := range opts {
			if opt != nil {
				opt(&cfg.info)
			}
		}
	}
}

// OperationOption adjusts the write operation of a bean type.
type OperationOption func(*operationConfig)

// WithOperationSummary replaces the generated summary.
func WithOperationSummary(summary string) OperationOption {
	return func(op *operationConfig) {
		op.Summary = summary
	}
}

// WithOperationMethod sets the HTTP method, e.g. "patch" for partial updates.
func WithOperationMethod(method string) OperationOption {
	return func(op *operationConfig) {
		if method != "" {
			op.Method = strings.ToLower(method)
		}
	}
}

// WithOperationOrigin sets the origin the request body is written at. The
// default is the user origin.
func WithOperationOrigin(origin styleable.Origin) OperationOption {
	return func(op *operationConfig) {
		op.Origin = origin
	}
}

// WithOperation sets the path prefix and method shared by every bean type,
// e.g. "/styles" and "put" produce "PUT /styles/rect". Empty inputs retain
// the defaults.
func WithOperation(pathPrefix, method string, opts ...OperationOption) GeneratorOption {
	return func(cfg *generatorConfig) {
		if pathPrefix != "" {
			cfg.operation.PathPrefix = "/" + strings.Trim(pathPrefix, "/")
		}
		WithOperationMethod(method)(&cfg.operation)
		for _, opt := range opts {
			if opt != nil {
				opt(&cfg.operation)
			}
		}
	}
}

// WithTypeOperation adjusts the operation of the bean type named typeName
// only, e.g. to let a theme type be written at the author origin.
func WithTypeOperation(typeName string, opts ...OperationOption) GeneratorOption {
	return func(cfg *generatorConfig) {
		if cfg.perType == nil {
			cfg.perType = map[string][]OperationOption{}
		}
		cfg.perType[typeName] = append(cfg.perType[typeName], opts...)
	}
}
