package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	styleable "github.com/goliatone/go-styleable"
	"github.com/goliatone/go-styleable/stylesheet"
)

var (
	errUnknownEngine = errors.New("unknown evaluator engine")
	errAssignment    = errors.New("expected key=value")
)

// inputs are the flags that describe how a figure is styled.
type inputs struct {
	kind   string
	sheets []string
	inline string
	values []string
	args   map[string]string
	engine string
	strict bool
}

func (in *inputs) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.kind, "kind", "k", "rect", "figure kind exposed to conditions as bean.kind")
	cmd.Flags().StringArrayVarP(&in.sheets, "sheet", "s", nil, "stylesheet document (.toml or .json), repeatable")
	cmd.Flags().StringVarP(&in.inline, "inline", "i", "", "inline style, e.g. \"fill: red; opacity: 0.5\"")
	cmd.Flags().StringArrayVar(&in.values, "set", nil, "user value as key=value, repeatable")
	cmd.Flags().StringToStringVar(&in.args, "arg", nil, "condition arguments exposed as args.<name>")
	cmd.Flags().StringVarP(&in.engine, "engine", "e", "expr", "condition engine: expr, cel, js")
	cmd.Flags().BoolVar(&in.strict, "strict", false, "fail on unknown or unparsable declarations")
}

// styled is a figure after user values, stylesheets and the inline style
// were written to it.
type styled struct {
	bean   *styleable.Bean
	report stylesheet.Report
}

func (c *CLI) build(ctx context.Context, in inputs) (*styled, error) {
	bean := styleable.NewBean(figureType(in.kind), styleable.WithLogger(c.Logger))
	for _, assignment := range in.values {
		if err := setUserValue(bean, assignment); err != nil {
			return nil, err
		}
	}

	evaluator, err := newEvaluator(in.engine)
	if err != nil {
		return nil, err
	}
	args := make(map[string]any, len(in.args))
	for name, value := range in.args {
		args[name] = value
	}
	applier := stylesheet.NewApplier(
		stylesheet.WithEvaluator(evaluator),
		stylesheet.WithLogger(c.Logger),
		stylesheet.WithStrict(in.strict),
		stylesheet.WithArgs(args),
	)

	out := &styled{bean: bean}
	if len(in.sheets) > 0 {
		set, err := loadSheets(in.sheets)
		if err != nil {
			return nil, err
		}
		report, err := applier.Apply(ctx, bean, set)
		if err != nil {
			return nil, fmt.Errorf("apply stylesheets: %w", err)
		}
		out.report = report
	}
	if in.inline != "" {
		report, err := applier.ApplyInline(bean, in.inline)
		if err != nil {
			return nil, fmt.Errorf("apply inline style: %w", err)
		}
		out.report.Matched = append(out.report.Matched, report.Matched...)
		out.report.Applied += report.Applied
		out.report.Skipped = append(out.report.Skipped, report.Skipped...)
	}

	c.Logger.Debug("styled figure", "bean", bean, "matched", len(out.report.Matched), "applied", out.report.Applied, "skipped", len(out.report.Skipped))
	for _, skipped := range out.report.Skipped {
		c.Logger.Warn("skipped declaration", "sheet", skipped.Sheet, "rule", skipped.Rule, "name", skipped.Name, "err", skipped.Err)
	}
	return out, nil
}

func newEvaluator(engine string) (stylesheet.Evaluator, error) {
	cache, functions := stylesheet.NewMemoryCache(), stylesheet.StyleFunctions()
	switch strings.ToLower(engine) {
	case "", "expr":
		return stylesheet.NewExprEvaluator(stylesheet.ExprWithProgramCache(cache), stylesheet.ExprWithFunctionRegistry(functions)), nil
	case "cel":
		return stylesheet.NewCELEvaluator(stylesheet.CELWithProgramCache(cache), stylesheet.CELWithFunctionRegistry(functions)), nil
	case "js", "javascript":
		if !stylesheet.JSEvaluatorAvailable() {
			return nil, fmt.Errorf("%w: js (build with -tags js_eval)", errUnknownEngine)
		}
		return stylesheet.NewJSEvaluator(stylesheet.JSWithProgramCache(cache), stylesheet.JSWithFunctionRegistry(functions)), nil
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownEngine, engine)
	}
}

// loadSheets decodes every document and merges their sheets into one set.
func loadSheets(paths []string) (*stylesheet.Set, error) {
	var sheets []stylesheet.Sheet
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read stylesheet %s: %w", path, err)
		}
		var set *stylesheet.Set
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			set, err = stylesheet.DecodeJSON(data, stylesheet.WithSource(path))
		default:
			set, err = stylesheet.ParseTOML(data, stylesheet.WithSource(path))
		}
		if err != nil {
			return nil, fmt.Errorf("load stylesheet %s: %w", path, err)
		}
		sheets = append(sheets, set.Sheets()...)
	}
	return stylesheet.NewSet(sheets...)
}

func parseAssignment(text string) (string, string, error) {
	name, value, ok := strings.Cut(text, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("%w: %q", errAssignment, text)
	}
	return name, strings.TrimSpace(value), nil
}

func setUserValue(bean *styleable.Bean, assignment string) error {
	name, text, err := parseAssignment(assignment)
	if err != nil {
		return err
	}
	key, ok := bean.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", stylesheet.ErrUnknownProperty, name)
	}
	value, err := styleable.ParseValue(key, text)
	if err != nil {
		return err
	}
	_, _, err = bean.Set(key, value)
	return err
}

func lookupKey(bean *styleable.Bean, name string) (styleable.Key, error) {
	key, ok := bean.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", stylesheet.ErrUnknownProperty, name)
	}
	return key, nil
}
