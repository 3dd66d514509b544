package stylesheet

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-styleable/convert"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrFunctionName is returned for names conditions could not call.
	ErrFunctionName = errors.New("stylesheet: function name must be an identifier")
	// ErrFunctionShadows is returned for names taken by a condition binding.
	ErrFunctionShadows = errors.New("stylesheet: function name shadows a condition binding")
	// ErrDuplicateFunction is returned when a name is registered twice.
	ErrDuplicateFunction = errors.New("stylesheet: function already registered")
	// ErrUnknownFunction is returned by Call for unregistered names.
	ErrUnknownFunction = errors.New("stylesheet: unknown function")
)

// bindingNames are the top-level names every condition sees.
var bindingNames = nameSet("bean", "attrs", "args", "metadata", "now", "call")

// Function is a helper callable from rule conditions. Arguments arrive as the
// engine produced them: numbers may be int, int64 or float64.
type Function func(args ...any) (any, error)

// FunctionRegistry holds the functions exposed to conditions by name. Names
// are case sensitive, like identifiers in every engine.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: make(map[string]Function)}
}

// StyleFunctions returns a registry holding the color helpers:
//
//	luminance(color)   relative luminance in [0, 1]
//	dark(color)        luminance below one half
//	mix(a, b, t)       a blended towards b by t in Lab space, as #rrggbb
//
// Colors are given in any form convert.Color accepts.
func StyleFunctions() *FunctionRegistry {
	r := NewFunctionRegistry()
	r.functions["luminance"] = func(args ...any) (any, error) {
		c, err := colorArg("luminance", args, 0, 1)
		if err != nil {
			return nil, err
		}
		return luminance(c), nil
	}
	r.functions["dark"] = func(args ...any) (any, error) {
		c, err := colorArg("dark", args, 0, 1)
		if err != nil {
			return nil, err
		}
		return luminance(c) < 0.5, nil
	}
	r.functions["mix"] = func(args ...any) (any, error) {
		from, err := colorArg("mix", args, 0, 3)
		if err != nil {
			return nil, err
		}
		to, err := colorArg("mix", args, 1, 3)
		if err != nil {
			return nil, err
		}
		t, ok := number(args[2])
		if !ok {
			return nil, fmt.Errorf("stylesheet: mix: weight must be a number, got %T", args[2])
		}
		return from.BlendLab(to, t).Clamped().Hex(), nil
	}
	return r
}

// Register exposes fn to conditions as name. The name must be an identifier
// that does not collide with bean, attrs, args, metadata, now or call.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("stylesheet: function %q is nil", name)
	}
	if !validIdentifier(name) {
		return fmt.Errorf("%w: %q", ErrFunctionName, name)
	}
	if _, taken := bindingNames[name]; taken {
		return fmt.Errorf("%w: %q", ErrFunctionShadows, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	if _, exists := r.functions[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFunction, name)
	}
	r.functions[name] = fn
	return nil
}

// Clone returns a registry with the same functions. Later registrations on
// either side are not shared.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{functions: make(map[string]Function, len(r.functions))}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call runs the function registered as name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	var fn Function
	if r != nil {
		r.mu.RLock()
		fn = r.functions[name]
		r.mu.RUnlock()
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return fn(args...)
}

// Names returns the registered names in order.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// shadow extends reserved with the registered names so that attributes never
// hide a function at the top level of a condition.
func (r *FunctionRegistry) shadow(reserved map[string]struct{}) map[string]struct{} {
	names := r.Names()
	if len(names) == 0 {
		return reserved
	}
	out := make(map[string]struct{}, len(reserved)+len(names))
	for name := range reserved {
		out[name] = struct{}{}
	}
	for _, name := range names {
		out[name] = struct{}{}
	}
	return out
}

func colorArg(fn string, args []any, i, arity int) (colorful.Color, error) {
	if len(args) != arity {
		return colorful.Color{}, fmt.Errorf("stylesheet: %s takes %d arguments, got %d", fn, arity, len(args))
	}
	text, ok := args[i].(string)
	if !ok {
		return colorful.Color{}, fmt.Errorf("stylesheet: %s: color must be a string, got %T", fn, args[i])
	}
	value, err := convert.Color().Parse(text)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("stylesheet: %s: %w", fn, err)
	}
	return value.(colorful.Color), nil
}

// luminance is the relative luminance of c in linear sRGB.
func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
