package openapi

import (
	"strconv"
	"strings"
)

// componentRegistry names the schema of each bean type. Names are the type
// name in PascalCase with a Styles suffix, so "svg:rect" becomes
// SvgRectStyles; colliding names get a numeric suffix.
type componentRegistry struct {
	schemas map[string]any
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{schemas: map[string]any{}}
}

// register stores schema and returns its $ref.
func (r *componentRegistry) register(typeName string, schema map[string]any) string {
	base := componentName(typeName)
	name := base
	for n := 2; ; n++ {
		if _, taken := r.schemas[name]; !taken {
			break
		}
		name = base + strconv.Itoa(n)
	}
	schema["x-bean-type"] = typeName
	r.schemas[name] = schema
	return "#/components/schemas/" + name
}

func (r *componentRegistry) componentsMap() map[string]any {
	if len(r.schemas) == 0 {
		return nil
	}
	return r.schemas
}

// componentName turns a bean type name into a schema name. Runs of anything
// but ASCII letters and digits separate words.
func componentName(typeName string) string {
	var sb strings.Builder
	upper := true
	for _, r := range typeName {
		switch {
		case r >= 'a' && r <= 'z':
			if upper {
				r -= 'a' - 'A'
			}
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			upper = true
			continue
		}
		sb.WriteRune(r)
		upper = false
	}
	name := sb.String()
	if name == "" {
		name = "Bean"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name + "Styles"
}
