// Package diag defines the diagnostic model produced by validation.
//
// Diagnostics are deterministic, serializable findings: a source range, a
// severity, a stable machine-readable code and a human message. The package
// performs no IO and no formatting; rendering lives with the LSP transport
// and the CLI.
package diag

import "fmt"

// Source tags every diagnostic with the engine that produced it.
const Source = "sievels"

// Position is a 0-indexed line/column pair. Columns count UTF-16 code
// units, matching the LSP wire format.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open source range; End is never before Start.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Diagnostic is one reported finding.
type Diagnostic struct {
	Range    Range    `json:"range"`
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	Message  string   `json:"message"`
	Href     string   `json:"href,omitempty"`
	Source   string   `json:"source"`
}

// New constructs a diagnostic, filling Source and the code's reference URL.
func New(sev Severity, code Code, rng Range, msg string) Diagnostic {
	return Diagnostic{
		Range:    rng,
		Severity: sev,
		Code:     code,
		Message:  msg,
		Href:     code.Href(),
		Source:   Source,
	}
}

// NewError is a shortcut for SevError diagnostics.
func NewError(code Code, rng Range, msg string) Diagnostic {
	return New(SevError, code, rng, msg)
}

// NewWarning is a shortcut for SevWarning diagnostics.
func NewWarning(code Code, rng Range, msg string) Diagnostic {
	return New(SevWarning, code, rng, msg)
}

// LineRange builds a single-line range from UTF-16 columns.
func LineRange(line, startCol, endCol int) Range {
	return Range{
		Start: Position{Line: line, Character: startCol},
		End:   Position{Line: line, Character: endCol},
	}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
