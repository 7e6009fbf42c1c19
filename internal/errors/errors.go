// Package errors formats Cb diagnostics with source context, line/column
// information, and a caret pointing to the offending position, in the same
// style the teacher used for compiler errors.
package errors

import (
	"fmt"
	"strings"
)

// Position is a 1-indexed source location. The lexer/parser that would
// normally produce these is out of scope for the core; callers (tests, the
// sample-program registry) construct positions directly when raising
// diagnostics against hand-built ASTs.
type Position struct {
	Line   int
	Column int
}

// Kind discriminates the category of a diagnostic, per the taxonomy the
// language surfaces to users: type errors, value errors, mutation errors,
// union errors, and resource errors.
type Kind int

const (
	KindUnknownType Kind = iota
	KindTypeMismatch
	KindArgumentCountMismatch
	KindAmbiguousCall
	KindAmbiguousMethod
	KindUndefinedMethod
	KindUndefinedFunction
	KindIncompleteImpl
	KindMethodNameConflict
	KindRedefineBuiltin
	KindNonDefaultAfterDefault

	KindOutOfRange
	KindArrayIndexOutOfBounds
	KindDivisionByZero
	KindNullDereference
	KindUseAfterFree
	KindDoubleDelete
	KindUnmatchedPattern

	KindConstReassignment
	KindConstArrayWrite
	KindWriteThroughConstPointer

	KindValueNotAllowedForUnion
	KindTypeNotAllowedForUnion

	KindMemoryLeak
	KindCyclicTypedef
	KindImportNotFound

	KindDuplicateEnumValue
	KindUndefinedEnumMember
	KindUndefinedInterface
)

var kindNames = map[Kind]string{
	KindUnknownType:              "UnknownType",
	KindTypeMismatch:             "TypeMismatch",
	KindArgumentCountMismatch:    "ArgumentCountMismatch",
	KindAmbiguousCall:            "AmbiguousCall",
	KindAmbiguousMethod:          "AmbiguousMethod",
	KindUndefinedMethod:          "UndefinedMethod",
	KindUndefinedFunction:        "UndefinedFunction",
	KindIncompleteImpl:           "IncompleteImpl",
	KindMethodNameConflict:       "MethodNameConflict",
	KindRedefineBuiltin:          "RedefineBuiltin",
	KindNonDefaultAfterDefault:   "NonDefaultAfterDefault",
	KindOutOfRange:               "OutOfRange",
	KindArrayIndexOutOfBounds:    "ArrayIndexOutOfBounds",
	KindDivisionByZero:           "DivisionByZero",
	KindNullDereference:          "NullDereference",
	KindUseAfterFree:             "UseAfterFree",
	KindDoubleDelete:             "DoubleDelete",
	KindUnmatchedPattern:         "UnmatchedPattern",
	KindConstReassignment:        "ConstReassignment",
	KindConstArrayWrite:          "ConstArrayWrite",
	KindWriteThroughConstPointer: "WriteThroughConstPointer",
	KindValueNotAllowedForUnion:  "ValueNotAllowedForUnion",
	KindTypeNotAllowedForUnion:   "TypeNotAllowedForUnion",
	KindMemoryLeak:               "MemoryLeak",
	KindCyclicTypedef:            "CyclicTypedef",
	KindImportNotFound:           "ImportNotFound",
	KindDuplicateEnumValue:       "DuplicateEnumValue",
	KindUndefinedEnumMember:      "UndefinedEnumMember",
	KindUndefinedInterface:       "UndefinedInterface",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Unknown"
}

// Severity distinguishes diagnostics that abort the current task from ones
// that are only reported (MemoryLeak is the sole warning-level kind).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (k Kind) Severity() Severity {
	if k == KindMemoryLeak {
		return SeverityWarning
	}
	return SeverityError
}

// Diagnostic is a single Cb runtime error or warning with position and
// source context, matching the teacher's CompilerError in shape.
type Diagnostic struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     Position
}

// New creates a diagnostic. source/file may be empty when no source text is
// available (the common case for the core, which runs against hand-built
// ASTs rather than parsed files).
func New(kind Kind, message, source, file string, pos Position) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message, Source: source, File: file, Pos: pos}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic with a category tag header, the offending
// source line (if available) with a caret under the column, and the
// message. If color is true, ANSI codes highlight the caret and message.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	tag := "Error"
	if d.Kind.Severity() == SeverityWarning {
		tag = "Warning"
	}

	if d.File != "" {
		sb.WriteString(fmt.Sprintf("%s: %s in %s:%d:%d\n", tag, d.Kind, d.File, d.Pos.Line, d.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s: %s at line %d:%d\n", tag, d.Kind, d.Pos.Line, d.Pos.Column))
	}

	if line := d.getSourceLine(d.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+d.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (d *Diagnostic) getSourceLine(lineNum int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of diagnostics, numbering them when there is
// more than one.
func FormatAll(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d diagnostic(s):\n\n", len(diags)))
	for i, d := range diags {
		sb.WriteString(fmt.Sprintf("[%d of %d]\n", i+1, len(diags)))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// ExitCode returns the process exit code for a completed root task: nonzero
// iff any diagnostic in diags is error-severity.
func ExitCode(diags []*Diagnostic) int {
	for _, d := range diags {
		if d.Kind.Severity() == SeverityError {
			return 1
		}
	}
	return 0
}
