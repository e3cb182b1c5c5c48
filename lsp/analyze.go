package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"jocks/ast"
	"jocks/parser"
	"jocks/report"
	"jocks/resolver"
)

// Outcome of checking one document. Nothing is executed.
type Analysis struct {
	Diagnostics []report.Diagnostic
	// Names declared at the top level, in order.
	Globals []string
}

func Analyze(file, text string) Analysis {
	reporter := report.NewReporter()

	stmts := parser.Parse(file, text, reporter)
	if stmts != nil {
		resolver.New(reporter).Resolve(stmts)
	}

	return Analysis{
		Diagnostics: reporter.Diagnostics(),
		Globals:     declaredNames(stmts),
	}
}

func declaredNames(stmts []ast.Stmt) []string {
	names := make([]string, 0)
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.Var:
			names = append(names, s.Name.Lexeme)
		case *ast.Function:
			names = append(names, s.Name.Lexeme)
		case *ast.Class:
			names = append(names, s.Name.Lexeme)
		}
	}

	return names
}

// Lines are one-based in diagnostics and zero-based in the protocol. The
// range covers the whole offending line.
func toProtocol(diagnostics []report.Diagnostic, text string) []protocol.Diagnostic {
	lines := strings.Split(text, "\n")
	severity := protocol.DiagnosticSeverityError
	source := lspName

	result := make([]protocol.Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		line := d.Line - 1
		if line < 0 {
			line = 0
		}

		width := 0
		if line < len(lines) {
			width = len(strings.TrimRight(lines[line], "\r"))
		}

		result = append(result, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(line), Character: 0},
				End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(width)},
			},
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: string(d.Kind)},
			Source:   &source,
			Message:  d.Message,
		})
	}

	return result
}
