package styleable

import (
	"fmt"
)

// KeyDescriptor describes one registered key of a bean type.
type KeyDescriptor struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Default      any    `json:"default,omitempty"`
	HasConverter bool   `json:"has_converter"`
}

// Describe lists the keys of t in index order.
func (t *BeanType) Describe() []KeyDescriptor {
	keys := t.registry.Keys()
	out := make([]KeyDescriptor, len(keys))
	for i, key := range keys {
		out[i] = KeyDescriptor{
			Index:        i,
			Name:         key.Name(),
			Type:         typeName(key),
			Default:      key.DefaultValue(),
			HasConverter: key.Converter() != nil,
		}
	}
	return out
}

func typeName(key Key) string {
	if t := key.ValueType(); t != nil {
		return t.String()
	}
	return fmt.Sprintf("%T", key.DefaultValue())
}
