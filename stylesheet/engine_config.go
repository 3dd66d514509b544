package stylesheet

// engineConfig is what every condition engine is configured with. Programs
// are cached under "<engine>:<key>" so engines can share one ProgramCache.
type engineConfig struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

type engineOption interface {
	~func(*engineConfig)
}

func newEngineConfig[O engineOption](opts []O) engineConfig {
	cfg := engineConfig{}
	for _, opt := range opts {
		if apply := (func(*engineConfig))(opt); apply != nil {
			apply(&cfg)
		}
	}
	return cfg
}

func (c engineConfig) cached(engine, key string) (any, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(engine + ":" + key)
}

func (c engineConfig) remember(engine, key string, program any) {
	if c.cache != nil {
		c.cache.Set(engine+":"+key, program)
	}
}

// reserved returns the names attributes must not take at the top level.
func (c engineConfig) reserved(base map[string]struct{}) map[string]struct{} {
	if c.registry == nil {
		return base
	}
	return c.registry.shadow(base)
}

// ExprEvaluatorOption configures the expr evaluator.
type ExprEvaluatorOption func(*engineConfig)

// ExprWithProgramCache wires a ProgramCache into the expr evaluator.
func ExprWithProgramCache(cache ProgramCache) ExprEvaluatorOption {
	return func(cfg *engineConfig) { cfg.cache = cache }
}

// ExprWithFunctionRegistry exposes a copy of registry to expr conditions.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprEvaluatorOption {
	return func(cfg *engineConfig) { cfg.registry = registry.Clone() }
}

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*engineConfig)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(cfg *engineConfig) { cfg.cache = cache }
}

// CELWithFunctionRegistry exposes a copy of registry to CEL conditions.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(cfg *engineConfig) { cfg.registry = registry.Clone() }
}

// JSEvaluatorOption configures the JS evaluator.
type JSEvaluatorOption func(*engineConfig)

// JSWithProgramCache wires a ProgramCache into the JS evaluator.
func JSWithProgramCache(cache ProgramCache) JSEvaluatorOption {
	return func(cfg *engineConfig) { cfg.cache = cache }
}

// JSWithFunctionRegistry exposes a copy of registry to JS conditions.
func JSWithFunctionRegistry(registry *FunctionRegistry) JSEvaluatorOption {
	return func(cfg *engineConfig) { cfg.registry = registry.Clone() }
}
