package stylesheet

import (
	"errors"
	"fmt"
	"strings"

	styleable "github.com/goliatone/go-styleable"
)

// ErrInlineSyntax is returned for inline segments without a colon.
var ErrInlineSyntax = errors.New("stylesheet: inline declaration must be name: value")

// ParseInline splits an inline style such as "stroke-width: 2; fill: red"
// into declarations. Names are lower-cased; empty segments are ignored.
func ParseInline(style string) ([]Declaration, error) {
	var out []Declaration
	for _, segment := range strings.Split(style, ";") {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		name, value, ok := strings.Cut(segment, ":")
		name = strings.ToLower(strings.TrimSpace(name))
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInlineSyntax, strings.TrimSpace(segment))
		}
		out = append(out, Declaration{Name: name, Value: strings.TrimSpace(value)})
	}
	return out, nil
}

// ApplyInline replaces the inline values of bean with those of style.
func (a *Applier) ApplyInline(bean *styleable.Bean, style string) (Report, error) {
	var report Report
	if bean == nil {
		return report, ErrNilBean
	}
	decls, err := ParseInline(style)
	if err != nil {
		return report, err
	}
	if err := bean.RemoveAll(styleable.OriginInline); err != nil {
		return report, err
	}
	sheet := Sheet{Name: "inline", Origin: styleable.OriginInline}
	rule := Rule{Name: "style", Declarations: decls}
	report.Matched = append(report.Matched, sheet.Name+"/"+rule.Name)
	if err := a.declare(bean, sheet, rule, &report); err != nil {
		return report, err
	}
	return report, nil
}

// FormatInline renders the values bean holds at origin as an inline style,
// in key declaration order. Explicit nulls are omitted.
func FormatInline(bean *styleable.Bean, origin styleable.Origin) (string, error) {
	var sb strings.Builder
	var err error
	bean.Store().Range(origin, func(key styleable.Key, value any) bool {
		if value == nil {
			return true
		}
		var text string
		text, err = styleable.FormatValue(key, value)
		if err != nil {
			return false
		}
		if sb.Len() > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(key.Name())
		sb.WriteString(": ")
		sb.WriteString(text)
		return true
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
