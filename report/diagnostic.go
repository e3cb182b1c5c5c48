// Package report collects the diagnostics every phase of the pipeline
// produces and renders them for people or tools.
package report

import (
	"fmt"
)

type Phase string

const (
	PhaseScanner     Phase = "Scanner"
	PhaseParser      Phase = "Parser"
	PhaseResolver    Phase = "Resolver"
	PhaseInterpreter Phase = "Interpreter"
)

// Stable diagnostic codes.
type Kind string

const (
	// Scanner and parser
	InvalidCharacter   Kind = "InvalidCharacter"
	UnterminatedString Kind = "UnterminatedString"
	SyntaxError        Kind = "SyntaxError"

	// Resolver
	UseBeforeDefined        Kind = "UseBeforeDefined"
	UndeclaredVariable      Kind = "UndeclaredVariable"
	ReturnOutsideFunction   Kind = "ReturnOutsideFunction"
	ClassOutsideGlobalScope Kind = "ClassOutsideGlobalScope"
	Redeclaration           Kind = "Redeclaration"
	SelfInheritance         Kind = "SelfInheritance"
)

type Diagnostic struct {
	Phase   Phase  `yaml:"phase"`
	Kind    Kind   `yaml:"kind"`
	File    string `yaml:"file"`
	Line    int    `yaml:"line"`
	Message string `yaml:"message"`
	// Rendered call stack, runtime faults only.
	Trace []string `yaml:"trace,omitempty"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%v] (%v:%v) %v", d.Phase, d.File, d.Line, d.Message)
}

// Ordered, append-only diagnostic collection shared by the phases of one
// run. Reporting never interrupts the reporting phase.
type Reporter struct {
	diagnostics []Diagnostic
}

func NewReporter() *Reporter {
	return &Reporter{diagnostics: make([]Diagnostic, 0)}
}

func (r *Reporter) Report(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func (r *Reporter) Errorf(
	phase Phase, kind Kind, file string, line int, format string, args ...any,
) {
	r.Report(Diagnostic{
		Phase:   phase,
		Kind:    kind,
		File:    file,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

// Diagnostics in the order they were reported.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diagnostics
}

func (r *Reporter) HasErrors() bool {
	return len(r.diagnostics) > 0
}

// Count of diagnostics reported by phase.
func (r *Reporter) Count(phase Phase) int {
	n := 0
	for _, d := range r.diagnostics {
		if d.Phase == phase {
			n++
		}
	}

	return n
}

func (r *Reporter) Reset() {
	r.diagnostics = r.diagnostics[:0]
}
