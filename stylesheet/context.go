package stylesheet

import (
	"strings"
	"time"

	styleable "github.com/goliatone/go-styleable"
)

// RuleContext carries the inputs a rule condition is evaluated against.
type RuleContext struct {
	ID         string
	Type       string
	Rule       string
	Origin     styleable.Origin
	Attributes map[string]any
	Args       map[string]any
	Metadata   map[string]any
	Now        *time.Time
}

// NewRuleContext captures the resolved attributes of bean. Values that are
// not plain scalars are rendered with their key's converter so every
// evaluator sees strings, numbers and booleans only.
func NewRuleContext(bean *styleable.Bean) RuleContext {
	attrs := map[string]any{}
	for _, key := range bean.Type().Registry().Keys() {
		attrs[key.Name()] = scalar(key, bean.GetStyled(key))
	}
	return RuleContext{
		ID:         bean.ID().String(),
		Type:       bean.Type().Name(),
		Attributes: attrs,
	}
}

func scalar(key styleable.Key, value any) any {
	switch value.(type) {
	case nil, string, bool, int, int32, int64, float32, float64:
		return value
	}
	text, err := styleable.FormatValue(key, value)
	if err != nil {
		return nil
	}
	return text
}

func (ctx RuleContext) withDefaults() RuleContext {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	if ctx.Attributes == nil {
		ctx.Attributes = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	if ctx.Now == nil {
		return time.Now()
	}
	return *ctx.Now
}

// label identifies the context in errors and logs.
func (ctx RuleContext) label() string {
	if ctx.Rule != "" {
		return ctx.Rule
	}
	if ctx.Type != "" {
		return ctx.Type
	}
	return "unknown"
}

// bindings returns the variables visible to conditions. Attributes are
// reachable through attrs and, when their name (with dashes turned into
// underscores) is a free identifier, at the top level as well.
func (ctx RuleContext) bindings(reserved map[string]struct{}) map[string]any {
	env := map[string]any{
		"now":      ctx.timestamp(),
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
		"attrs":    ctx.Attributes,
		"bean": map[string]any{
			"id":     ctx.ID,
			"kind":   ctx.Type,
			"origin": ctx.Origin.String(),
			"rule":   ctx.Rule,
		},
	}
	for name, value := range ctx.Attributes {
		ident := identifier(name)
		if !validIdentifier(ident) {
			continue
		}
		if _, taken := env[ident]; taken {
			continue
		}
		if _, taken := reserved[ident]; taken {
			continue
		}
		env[ident] = value
	}
	return env
}

func identifier(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func nameSet(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		out[name] = struct{}{}
	}
	return out
}
