package interpreter

import (
	"fmt"
	"strings"

	"jocks/ast"
	"jocks/report"
)

type FaultKind string

const (
	ArityMismatch        FaultKind = "ArityMismatch"
	UnsupportedOperator  FaultKind = "UnsupportedOperator"
	UnboundVariable      FaultKind = "UnboundVariable"
	DuplicateDeclaration FaultKind = "DuplicateDeclaration"
	NotAnObject          FaultKind = "NotAnObject"
	NotCallable          FaultKind = "NotCallable"
	NotAClass            FaultKind = "NotAClass"
	UndefinedProperty    FaultKind = "UndefinedProperty"
	TypeMismatch         FaultKind = "TypeMismatch"
	InvalidLiteral       FaultKind = "InvalidLiteral"
	InvalidOperator      FaultKind = "InvalidOperator"
	NativeError          FaultKind = "NativeError"
	StackOverflow        FaultKind = "StackOverflow"
	Cancelled            FaultKind = "Cancelled"
)

// The top-level implicit function.
const scriptName = "<script>"

// One line of a fault trace: execution was at Pos inside Function.
type Frame struct {
	Function string
	Pos      ast.Pos
}

func (f Frame) String() string {
	return fmt.Sprintf("[%v:%v] in %v", f.Pos.File, f.Pos.Line, f.Function)
}

// A fatal runtime error. Any fault aborts the whole run.
type Fault struct {
	Kind    FaultKind
	Pos     ast.Pos
	Message string
	// Innermost first, Trace[0] is the fault site itself.
	Trace []Frame
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%v at %v:%v: %v", f.Kind, f.Pos.File, f.Pos.Line, f.Message)
}

// Trace lines numbered by distance from the fault site.
func (f *Fault) TraceLines() []string {
	lines := make([]string, len(f.Trace))
	for i, frame := range f.Trace {
		lines[i] = fmt.Sprintf("%5v: %v", i, frame)
	}

	return lines
}

func (f *Fault) TraceString() string {
	return strings.Join(f.TraceLines(), "\n")
}

func (f *Fault) Diagnostic() report.Diagnostic {
	return report.Diagnostic{
		Phase:   report.PhaseInterpreter,
		Kind:    report.Kind(f.Kind),
		File:    f.Pos.File,
		Line:    f.Pos.Line,
		Message: f.Message,
		Trace:   f.TraceLines(),
	}
}
