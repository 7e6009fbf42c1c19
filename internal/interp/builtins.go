package interp

import (
	"fmt"
	"strings"
)

// builtinFunctions lists the names evalCall intercepts before consulting the
// user function table, the same way the teacher's evaluator special-cases a
// handful of always-available names rather than pre-seeding them as real
// FunctionDecls (§6 "print/println/printf and string interpolation").
var builtinFunctions = map[string]bool{
	"print":   true,
	"println": true,
	"printf":  true,
}

// evalBuiltinCall handles print/println/printf; ok is false when name isn't
// one of the built-ins, so evalCall can fall through to its normal lookup.
func (e *Evaluator) evalBuiltinCall(name string, args []Value) (Value, bool, error) {
	if !builtinFunctions[name] {
		return nil, false, nil
	}
	switch name {
	case "print":
		var sb strings.Builder
		for _, a := range args {
			sb.WriteString(a.String())
		}
		fmt.Fprint(e.Out, sb.String())
		return &VoidValue{}, true, nil

	case "println":
		var sb strings.Builder
		for i, a := range args {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(a.String())
		}
		fmt.Fprintln(e.Out, sb.String())
		return &VoidValue{}, true, nil

	case "printf":
		if len(args) == 0 {
			return nil, true, fmt.Errorf("printf requires a format string")
		}
		sv, ok := args[0].(*StringValue)
		if !ok {
			return nil, true, fmt.Errorf("printf's first argument must be a string")
		}
		out, err := renderPrintf(sv.Val, args[1:])
		if err != nil {
			return nil, true, err
		}
		fmt.Fprint(e.Out, out)
		return &VoidValue{}, true, nil
	}
	return nil, false, nil
}

// renderPrintf expands format, consuming one of args per %-verb. Verb
// grammar mirrors formatInterpolated's ${expr:fmt} subset so both surfaces
// stay consistent: d/ld, s, c, x/X, f, %%.
func renderPrintf(format string, args []Value) (string, error) {
	var sb strings.Builder
	argIdx := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			sb.WriteByte(format[i])
			continue
		}
		j := i + 1
		for j < len(format) && format[j] == '0' {
			j++
		}
		for j < len(format) && format[j] >= '0' && format[j] <= '9' {
			j++
		}
		for j < len(format) && format[j] == 'l' {
			j++
		}
		if j >= len(format) {
			return "", fmt.Errorf("unterminated format verb in printf string")
		}
		spec := format[i+1 : j+1]
		verb := format[j]
		i = j
		if verb == '%' {
			sb.WriteByte('%')
			continue
		}
		if argIdx >= len(args) {
			// A verb with no matching argument is left in the output
			// verbatim rather than treated as an error.
			sb.WriteByte('%')
			sb.WriteString(spec)
			continue
		}
		rendered, err := formatInterpolated(args[argIdx], spec)
		if err != nil {
			return "", err
		}
		argIdx++
		sb.WriteString(rendered)
	}
	// Extra arguments past what the format string consumed are appended
	// space-separated rather than discarded (§6 "Extra arguments are
	// appended space-separated").
	for ; argIdx < len(args); argIdx++ {
		sb.WriteString(" ")
		sb.WriteString(args[argIdx].String())
	}
	return sb.String(), nil
}
