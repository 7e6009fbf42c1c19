package errors

import (
	"fmt"
	"strings"
)

// StackFrame is a single frame in a task's call stack: the function being
// executed and its call-site location.
type StackFrame struct {
	Position     *Position
	FunctionName string
	FileName     string
}

// String formats a frame as "FunctionName [line: N, column: M]", or just the
// function name when no position is available.
func (sf StackFrame) String() string {
	if sf.Position == nil {
		return sf.FunctionName
	}
	return fmt.Sprintf("%s [line: %d, column: %d]", sf.FunctionName, sf.Position.Line, sf.Position.Column)
}

// StackTrace is a complete call stack, oldest frame first.
type StackTrace []StackFrame

// String renders the trace most-recent-call-first, one frame per line.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Reverse returns a copy of the trace with frames in the opposite order.
func (st StackTrace) Reverse() StackTrace {
	reversed := make(StackTrace, len(st))
	for i, frame := range st {
		reversed[len(st)-1-i] = frame
	}
	return reversed
}

// Top returns the most recent frame, or nil if the trace is empty.
func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[len(st)-1]
}

// Bottom returns the oldest frame, or nil if the trace is empty.
func (st StackTrace) Bottom() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[0]
}

// Depth returns the number of frames in the trace.
func (st StackTrace) Depth() int { return len(st) }

// NewStackFrame builds a frame for the given call site.
func NewStackFrame(functionName, fileName string, position *Position) StackFrame {
	return StackFrame{FunctionName: functionName, FileName: fileName, Position: position}
}

// NewStackTrace creates an empty trace.
func NewStackTrace() StackTrace { return make(StackTrace, 0) }
