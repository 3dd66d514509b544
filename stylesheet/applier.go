package stylesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	styleable "github.com/goliatone/go-styleable"
	"github.com/goliatone/go-styleable/pkg/activity"
)

var (
	// ErrUnknownProperty is reported for declarations naming no key of the
	// bean's type.
	ErrUnknownProperty = errors.New("stylesheet: unknown property")
	// ErrConditionType is returned when a rule condition does not yield a bool.
	ErrConditionType = errors.New("stylesheet: condition must evaluate to a bool")
	// ErrNilBean is returned when Apply is given no bean.
	ErrNilBean = errors.New("stylesheet: bean must not be nil")
	// ErrApplierConfig wraps option failures reported by Apply.
	ErrApplierConfig = errors.New("stylesheet: invalid applier option")
)

// ApplierOption configures an Applier.
type ApplierOption func(*Applier)

// WithEvaluator replaces the default expr evaluator.
func WithEvaluator(evaluator Evaluator) ApplierOption {
	return func(a *Applier) {
		a.evaluator = evaluator
	}
}

// WithProgramCache caches compiled conditions of the default evaluator.
func WithProgramCache(cache ProgramCache) ApplierOption {
	return func(a *Applier) {
		a.cache = cache
	}
}

// WithFunctionRegistry exposes the functions of registry to the default
// evaluator in place of StyleFunctions.
func WithFunctionRegistry(registry *FunctionRegistry) ApplierOption {
	return func(a *Applier) {
		if registry == nil {
			return
		}
		a.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name for the default evaluator. A
// rejected registration is logged by NewApplier and fails every Apply.
func WithCustomFunction(name string, fn Function) ApplierOption {
	return func(a *Applier) {
		if a.functions == nil {
			a.functions = NewFunctionRegistry()
		}
		if err := a.functions.Register(name, fn); err != nil {
			a.configErrs = append(a.configErrs, err)
		}
	}
}

// WithLogger sets the logger for rule matches and skipped declarations.
func WithLogger(logger styleable.Logger) ApplierOption {
	return func(a *Applier) {
		a.logger = logger
	}
}

// WithStrict makes unknown properties and unparsable values fail Apply
// instead of being skipped.
func WithStrict(strict bool) ApplierOption {
	return func(a *Applier) {
		a.strict = strict
	}
}

// WithArgs exposes args to conditions as args.
func WithArgs(args map[string]any) ApplierOption {
	return func(a *Applier) {
		a.args = args
	}
}

// WithActivityHooks reports one stylesheet.applied event per sheet to hooks.
func WithActivityHooks(hooks activity.Hooks) ApplierOption {
	return func(a *Applier) {
		a.emitter = activity.NewEmitter(hooks, activity.Config{Enabled: true})
	}
}

// Applier writes stylesheets into beans.
type Applier struct {
	evaluator Evaluator
	cache     ProgramCache
	functions *FunctionRegistry
	logger    styleable.Logger
	strict    bool
	args      map[string]any
	emitter   *activity.Emitter

	configErrs []error
}

// NewApplier constructs an Applier. Without WithEvaluator conditions run on
// expr-lang/expr with StyleFunctions available.
func NewApplier(opts ...ApplierOption) *Applier {
	a := &Applier{functions: StyleFunctions()}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.evaluator == nil {
		var exprOpts []ExprEvaluatorOption
		if a.cache != nil {
			exprOpts = append(exprOpts, ExprWithProgramCache(a.cache))
		}
		if a.functions != nil {
			exprOpts = append(exprOpts, ExprWithFunctionRegistry(a.functions))
		}
		a.evaluator = NewExprEvaluator(exprOpts...)
	}
	if a.logger == nil {
		a.logger = styleable.NopLogger()
	}
	for _, err := range a.configErrs {
		a.logger.Warn("applier option rejected", "err", err)
	}
	return a
}

// Err reports the options NewApplier could not apply.
func (a *Applier) Err() error {
	if len(a.configErrs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrApplierConfig, errors.Join(a.configErrs...))
}

// Evaluator returns the evaluator conditions run on.
func (a *Applier) Evaluator() Evaluator {
	return a.evaluator
}

// Skipped describes a declaration that was not written.
type Skipped struct {
	Sheet string
	Rule  string
	Name  string
	Err   error
}

// Report summarizes one Apply call.
type Report struct {
	// Matched lists "sheet/rule" for every rule whose condition held.
	Matched []string
	// Applied counts written declarations.
	Applied int
	Skipped []Skipped
}

// Apply clears every origin the set writes and re-applies the set.
// Conditions are evaluated against the bean as it stands after clearing, so
// values written by one rule are never seen by another rule's condition.
func (a *Applier) Apply(ctx context.Context, bean *styleable.Bean, set *Set) (Report, error) {
	var report Report
	if bean == nil {
		return report, ErrNilBean
	}
	if err := a.Err(); err != nil {
		return report, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	for _, origin := range set.Origins() {
		if err := bean.RemoveAll(origin); err != nil {
			return report, err
		}
	}
	base := NewRuleContext(bean)
	base.Args = a.args

	for _, sheet := range set.Sheets() {
		for _, rule := range sheet.Rules {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			label := sheet.Name + "/" + rule.Name
			rc := base
			rc.Rule = label
			rc.Origin = sheet.Origin
			matched, err := a.matches(rc, rule.When)
			if err != nil {
				return report, err
			}
			if !matched {
				continue
			}
			report.Matched = append(report.Matched, label)
			if err := a.declare(bean, sheet, rule, &report); err != nil {
				return report, err
			}
		}
		a.emitApplied(ctx, bean, sheet)
	}
	a.logger.Debug("stylesheets applied", "bean", bean.String(), "matched", len(report.Matched), "applied", report.Applied, "skipped", len(report.Skipped))
	return report, nil
}

func (a *Applier) matches(rc RuleContext, when string) (bool, error) {
	if when == "" {
		return true, nil
	}
	start := time.Now()
	compiled, err := a.evaluator.Compile(when)
	if err != nil {
		return false, wrapEvaluationError(EngineName(a.evaluator), when, rc.label(), err)
	}
	out, err := compiled.Evaluate(rc)
	a.logger.Debug("condition evaluated", "engine", EngineName(a.evaluator), "rule", rc.Rule, "result", out, "duration", time.Since(start), "err", err)
	if err != nil {
		return false, wrapEvaluationError(EngineName(a.evaluator), when, rc.label(), err)
	}
	matched, ok := out.(bool)
	if !ok {
		return false, wrapEvaluationError(EngineName(a.evaluator), when, rc.label(), fmt.Errorf("%w, got %T", ErrConditionType, out))
	}
	return matched, nil
}

func (a *Applier) declare(bean *styleable.Bean, sheet Sheet, rule Rule, report *Report) error {
	for _, decl := range rule.Declarations {
		err := writeDeclaration(bean, sheet.Origin, decl)
		if err == nil {
			report.Applied++
			continue
		}
		if a.strict || !skippable(err) {
			return fmt.Errorf("stylesheet: %s/%s: %w", sheet.Name, rule.Name, err)
		}
		a.logger.Warn("declaration skipped", "sheet", sheet.Name, "rule", rule.Name, "property", decl.Name, "err", err)
		report.Skipped = append(report.Skipped, Skipped{
			Sheet: sheet.Name,
			Rule:  rule.Name,
			Name:  decl.Name,
			Err:   err,
		})
	}
	return nil
}

// writeDeclaration parses decl with its key's converter and writes it at
// origin.
func writeDeclaration(bean *styleable.Bean, origin styleable.Origin, decl Declaration) error {
	key, ok := bean.Lookup(decl.Name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProperty, decl.Name)
	}
	value, err := styleable.ParseValue(key, decl.Value)
	if err != nil {
		return err
	}
	_, _, err = bean.SetStyled(origin, key, value)
	return err
}

func skippable(err error) bool {
	return errors.Is(err, ErrUnknownProperty) || errors.Is(err, styleable.ErrUnparsable) || errors.Is(err, styleable.ErrTypeMismatch)
}

func (a *Applier) emitApplied(ctx context.Context, bean *styleable.Bean, sheet Sheet) {
	if !a.emitter.Enabled() {
		return
	}
	event := activity.BuildStylesheetAppliedEvent(activity.StyleEventInput{
		BeanID:   bean.ID().String(),
		BeanType: bean.Type().Name(),
		Key:      sheet.Name,
		Origin:   sheet.Origin.String(),
	})
	if err := a.emitter.Emit(ctx, event); err != nil {
		a.logger.Warn("activity hook failed", "sheet", sheet.Name, "err", err)
	}
}
