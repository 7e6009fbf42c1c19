package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cbscript/cb/internal/ast"
)

// evalInterpolatedString stitches an InterpolatedString's literal Parts and
// evaluated Exprs back together, applying each expression's optional
// printf-style Format suffix (§4.4 string interpolation, §6 "${expr:fmt}").
func (e *Evaluator) evalInterpolatedString(t *Task, s *ast.InterpolatedString) (Value, error) {
	var sb strings.Builder
	for i, part := range s.Parts {
		sb.WriteString(part)
		if i >= len(s.Exprs) {
			continue
		}
		v, err := e.evalExpr(t, s.Exprs[i])
		if err != nil {
			return nil, err
		}
		formatted, err := formatInterpolated(v, s.Formats[i])
		if err != nil {
			return nil, err
		}
		sb.WriteString(formatted)
	}
	return &StringValue{Val: sb.String()}, nil
}

// formatInterpolated renders v per a printf-style format spec (e.g. "5d",
// "08ld", "x", "%"), or v's plain String() when spec is empty. Supported
// verbs mirror §6's documented subset: d/ld (decimal, with width/zero-pad),
// s (string), c (char), x/X (hex), f (fixed-point float), %% (literal
// percent).
func formatInterpolated(v Value, spec string) (string, error) {
	if spec == "" {
		return v.String(), nil
	}
	if spec == "%" {
		return "%", nil
	}

	zeroPad := false
	width := 0
	i := 0
	if i < len(spec) && spec[i] == '0' {
		zeroPad = true
		i++
	}
	widthStart := i
	for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
		i++
	}
	if i > widthStart {
		w, err := strconv.Atoi(spec[widthStart:i])
		if err != nil {
			return "", fmt.Errorf("invalid interpolation width %q", spec)
		}
		width = w
	}
	verb := strings.TrimPrefix(spec[i:], "l")

	var raw string
	switch verb {
	case "d":
		raw = v.String()
	case "s":
		raw = v.String()
	case "c":
		raw = v.String()
	case "x":
		if iv, ok := v.(*IntValue); ok {
			raw = strconv.FormatInt(iv.Val, 16)
		} else {
			raw = v.String()
		}
	case "X":
		if iv, ok := v.(*IntValue); ok {
			raw = strings.ToUpper(strconv.FormatInt(iv.Val, 16))
		} else {
			raw = v.String()
		}
	case "f":
		if fv, ok := v.(*FloatValue); ok {
			raw = strconv.FormatFloat(fv.Val, 'f', 6, 64)
		} else {
			raw = v.String()
		}
	default:
		return "", fmt.Errorf("unsupported interpolation format %q", spec)
	}

	if width > len(raw) {
		pad := width - len(raw)
		padChar := " "
		if zeroPad {
			padChar = "0"
		}
		neg := strings.HasPrefix(raw, "-")
		if zeroPad && neg {
			return "-" + strings.Repeat(padChar, pad) + raw[1:], nil
		}
		return strings.Repeat(padChar, pad) + raw, nil
	}
	return raw, nil
}
