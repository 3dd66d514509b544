// Package stylesheet writes rule-based declarations into styleable beans.
//
// A Sheet holds rules for the user-agent or author origin. Each rule has an
// optional condition, evaluated by an Evaluator (expr-lang/expr by default,
// cel-go or goja on request), and a list of textual declarations parsed with
// the converter of the named key. An Applier clears the origins a Set
// writes, then writes the matching declarations from the weakest sheet to
// the strongest so that later writes win. Inline styles go through
// ApplyInline and are left alone by sheet reloads.
//
// Conditions can call the color helpers of StyleFunctions, for example
// dark(fill) or luminance(stroke) > 0.4.
//
// Sets can be built in code, decoded from generic maps or JSON, or parsed
// from TOML documents.
package stylesheet
