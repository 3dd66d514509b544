package convert

import (
	"fmt"
	"strconv"
	"strings"

	exprlang "github.com/expr-lang/expr"
)

// Calc parses plain numbers and arithmetic length expressions written as
// calc(...), e.g. "calc(2 * 4 + 1)". Expressions are evaluated with
// expr-lang/expr against an empty environment, so they may only use
// literals and operators.
func Calc() Func[float64] {
	return New(parseCalc, func(v float64) string {
		return strconv.FormatFloat(v, 'g', -1, 64)
	})
}

func parseCalc(text string) (float64, error) {
	body := text
	if strings.HasPrefix(strings.ToLower(body), "calc(") && strings.HasSuffix(body, ")") {
		body = body[len("calc(") : len(body)-1]
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(body), 64); err == nil {
		return v, nil
	}
	program, err := exprlang.Compile(body, exprlang.Env(map[string]any{}))
	if err != nil {
		return 0, syntaxError("calc", text, err)
	}
	out, err := exprlang.Run(program, map[string]any{})
	if err != nil {
		return 0, syntaxError("calc", text, err)
	}
	switch v := out.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, syntaxError("calc", text, fmt.Errorf("result %T is not a number", out))
	}
}
