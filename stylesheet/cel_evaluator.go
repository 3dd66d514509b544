package stylesheet

import (
	"fmt"
	"sort"
	"strings"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// celMaxArity bounds the fixed-arity overloads generated for registry
// functions; CEL has no variadic overloads.
const celMaxArity = 4

var celReserved = nameSet(
	"as", "break", "const", "continue", "else", "false", "for", "function",
	"if", "import", "in", "let", "loop", "package", "namespace", "null",
	"return", "true", "var", "void", "while",
	"int", "uint", "double", "bool", "string", "bytes", "list", "map",
	"null_type", "type", "dyn", "call",
)

type celEvaluator struct {
	engineConfig
}

// NewCELEvaluator constructs an Evaluator backed by cel-go. Variables are
// declared from the context they are evaluated against, so compiled
// programs are cached per expression and variable set.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	return &celEvaluator{engineConfig: newEngineConfig(opts)}
}

func (e *celEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	rule, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}
	return rule.Evaluate(ctx)
}

func (e *celEvaluator) Compile(expression string) (CompiledRule, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", ErrEmptyExpression)
	}
	return &celCompiledRule{
		evaluator:  e,
		expression: expression,
	}, nil
}

func (e *celEvaluator) loadOrCompile(expression string, vars map[string]any) (celgo.Program, error) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	cacheKey := expression + "\x00" + strings.Join(names, ",")
	if cached, ok := e.cached("cel", cacheKey); ok {
		if program, ok := cached.(celgo.Program); ok {
			return program, nil
		}
	}

	env, err := e.buildEnv(names)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	e.remember("cel", cacheKey, program)
	return program, nil
}

func (e *celEvaluator) buildEnv(names []string) (*celgo.Env, error) {
	opts := make([]celgo.EnvOption, 0, len(names)+1)
	for _, name := range names {
		if name == "now" {
			opts = append(opts, celgo.Variable(name, celgo.TimestampType))
			continue
		}
		opts = append(opts, celgo.Variable(name, celgo.DynType))
	}
	if e.registry != nil {
		opts = append(opts, e.functionOptions()...)
	}
	return celgo.NewEnv(opts...)
}

func (e *celEvaluator) functionOptions() []celgo.EnvOption {
	var callOverloads []celgo.FunctionOpt
	for arity := 0; arity <= celMaxArity; arity++ {
		args := append([]*celgo.Type{celgo.StringType}, dynArgs(arity)...)
		callOverloads = append(callOverloads, celgo.Overload(
			fmt.Sprintf("call_string_dyn%d", arity),
			args,
			celgo.DynType,
			celgo.FunctionBinding(e.callBinding()),
		))
	}
	opts := []celgo.EnvOption{celgo.Function("call", callOverloads...)}

	for _, name := range e.registry.Names() {
		if !validIdentifier(name) {
			continue
		}
		var overloads []celgo.FunctionOpt
		for arity := 0; arity <= celMaxArity; arity++ {
			overloads = append(overloads, celgo.Overload(
				fmt.Sprintf("%s_dyn%d", name, arity),
				dynArgs(arity),
				celgo.DynType,
				celgo.FunctionBinding(e.namedBinding(name)),
			))
		}
		opts = append(opts, celgo.Function(name, overloads...))
	}
	return opts
}

func dynArgs(n int) []*celgo.Type {
	args := make([]*celgo.Type, n)
	for i := range args {
		args[i] = celgo.DynType
	}
	return args
}

func (e *celEvaluator) callBinding() func(values ...ref.Val) ref.Val {
	return func(values ...ref.Val) ref.Val {
		if len(values) == 0 {
			return types.NewErr("stylesheet: %v", errCallName)
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("stylesheet: %v", errCallName)
		}
		return e.invoke(name, values[1:])
	}
}

func (e *celEvaluator) namedBinding(name string) func(values ...ref.Val) ref.Val {
	return func(values ...ref.Val) ref.Val {
		return e.invoke(name, values)
	}
}

func (e *celEvaluator) invoke(name string, values []ref.Val) ref.Val {
	args := make([]any, 0, len(values))
	for _, val := range values {
		args = append(args, val.Value())
	}
	result, err := e.registry.Call(name, args...)
	if err != nil {
		return types.NewErr("%s", err.Error())
	}
	if result == nil {
		return types.NullValue
	}
	return types.DefaultTypeAdapter.NativeToValue(result)
}

type celCompiledRule struct {
	evaluator  *celEvaluator
	expression string
}

func (r *celCompiledRule) Evaluate(ctx RuleContext) (any, error) {
	ctx = ctx.withDefaults()
	vars := ctx.bindings(r.evaluator.reserved(celReserved))
	program, err := r.evaluator.loadOrCompile(r.expression, vars)
	if err != nil {
		return nil, wrapEvaluationError("cel", r.expression, ctx.label(), err)
	}
	out, _, err := program.Eval(vars)
	if err != nil {
		return nil, wrapEvaluationError("cel", r.expression, ctx.label(), err)
	}
	return out.Value(), nil
}
