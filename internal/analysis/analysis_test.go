package analysis

import (
	"strings"
	"testing"

	"sievels/internal/diag"
	"sievels/internal/settings"
)

func codes(diags []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func hasCode(diags []diag.Diagnostic, code diag.Code) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestEmptyDocument(t *testing.T) {
	got := Analyze("", settings.Default())
	if got == nil {
		t.Fatal("engine must return a list, not nil")
	}
	if len(got) != 0 {
		t.Fatalf("empty document produced %v", codes(got))
	}
}

func TestCommentsAndBlanksSkipped(t *testing.T) {
	text := "# a comment without semicolon\n\n   \n# another one\n"
	if got := Analyze(text, settings.Default()); len(got) != 0 {
		t.Fatalf("comments produced %v", codes(got))
	}
}

func TestMissingSemicolon(t *testing.T) {
	got := Analyze(`fileinto "Archive"`, settings.Default())
	if !hasCode(got, diag.CodeMissingSemicolon) {
		t.Fatalf("expected missing-semicolon, got %v", codes(got))
	}
	var d diag.Diagnostic
	for _, c := range got {
		if c.Code == diag.CodeMissingSemicolon {
			d = c
		}
	}
	if d.Severity != diag.SevError {
		t.Fatalf("severity = %v", d.Severity)
	}
	// Anchored at the last character of the line.
	line := `fileinto "Archive"`
	if d.Range.Start.Character != len(line)-1 || d.Range.End.Character != len(line) {
		t.Fatalf("range = %v", d.Range)
	}
}

func TestTerminatedActionHasNoSemicolonDiagnostic(t *testing.T) {
	for _, line := range []string{"keep;", `fileinto "Archive";`, "discard;", "stop;"} {
		got := Analyze(line, settings.Default())
		if hasCode(got, diag.CodeMissingSemicolon) {
			t.Errorf("%q flagged missing-semicolon", line)
		}
	}
}

func TestFixingLineClearsItsDiagnostics(t *testing.T) {
	before := Analyze(`fileinto "Archive"`, settings.Default())
	if !hasCode(before, diag.CodeMissingSemicolon) || !hasCode(before, diag.CodeMissingRequire) {
		t.Fatalf("expected both findings first, got %v", codes(before))
	}
	after := Analyze("require \"fileinto\";\nfileinto \"Archive\";", settings.Default())
	if len(after) != 0 {
		t.Fatalf("fixed script still produces %v", codes(after))
	}
}

func TestInvalidSyntax(t *testing.T) {
	got := Analyze("gibberish xyz;", settings.Default())
	if len(got) != 1 || got[0].Code != diag.CodeInvalidSyntax {
		t.Fatalf("got %v", codes(got))
	}
	if got[0].Range.Start.Character != 0 || got[0].Range.End.Character != len("gibberish xyz;") {
		t.Fatalf("range = %v", got[0].Range)
	}
}

func TestValidStatementsAccepted(t *testing.T) {
	lines := []string{
		`require "fileinto";`,
		"if true {",
		"} elsif false {",
		"stop;",
		`if header :contains "from" "x" { keep; }`,
	}
	got := Analyze(strings.Join(lines, "\n"), settings.Default())
	if hasCode(got, diag.CodeInvalidSyntax) {
		t.Fatalf("valid script flagged: %v", codes(got))
	}
}

func TestProtonKeywordWarningSpansSubstring(t *testing.T) {
	st := settings.Default()
	st.ProtonExtensions = false
	line := `if header :contains "from" "x" { expire :days 5; }`
	got := Analyze(line, st)
	if !hasCode(got, diag.CodeExtensionDisabled) {
		t.Fatalf("expected extension-disabled, got %v", codes(got))
	}
	var warn diag.Diagnostic
	for _, d := range got {
		if d.Code == diag.CodeExtensionDisabled {
			warn = d
		}
	}
	at := strings.Index(line, "expire")
	if warn.Range.Start.Character != at || warn.Range.End.Character != at+len("expire") {
		t.Fatalf("range = %v, want columns %d-%d", warn.Range, at, at+len("expire"))
	}
	if warn.Severity != diag.SevWarning {
		t.Fatalf("severity = %v", warn.Severity)
	}
}

func TestProtonKeywordEveryOccurrence(t *testing.T) {
	st := settings.Default()
	st.ProtonExtensions = false
	got := Analyze("# expire expire currentdate\nexpire :days 1; expire :days 2;", st)
	// Comment lines are skipped entirely; line 1 carries two expire
	// occurrences plus the invalid-syntax error for the now-unknown verb.
	count := 0
	for _, d := range got {
		if d.Code == diag.CodeExtensionDisabled {
			count++
			if d.Range.Start.Line != 1 {
				t.Fatalf("warning on line %d", d.Range.Start.Line)
			}
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 extension-disabled warnings, got %d: %v", count, codes(got))
	}
	if !hasCode(got, diag.CodeInvalidSyntax) {
		t.Fatalf("expire statement should be invalid with proton off: %v", codes(got))
	}
}

func TestProtonEnabledProducesNoExtensionWarnings(t *testing.T) {
	got := Analyze("expire :days 1;", settings.Default())
	if hasCode(got, diag.CodeExtensionDisabled) {
		t.Fatalf("got %v", codes(got))
	}
}

func TestMissingRequireForBody(t *testing.T) {
	text := `if body :contains "urgent" { keep; }`
	got := Analyze(text, settings.Default())
	count := 0
	for _, d := range got {
		if d.Code == diag.CodeMissingRequire {
			count++
			if !strings.Contains(d.Message, "'body'") {
				t.Fatalf("message = %q", d.Message)
			}
			if d.Range != (diag.Range{}) {
				t.Fatalf("placeholder range expected, got %v", d.Range)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one missing-require, got %d: %v", count, codes(got))
	}

	fixed := "require \"body\";\n" + text
	if hasCode(Analyze(fixed, settings.Default()), diag.CodeMissingRequire) {
		t.Fatal("require declaration should clear the warning")
	}
}

func TestMissingRequireDisabledWithSemanticAnalysisOff(t *testing.T) {
	st := settings.Default()
	st.SemanticAnalysis = false
	got := Analyze(`if body :contains "x" { keep; }`, st)
	if hasCode(got, diag.CodeMissingRequire) {
		t.Fatalf("semantic analysis disabled but got %v", codes(got))
	}
}

func TestMaxErrorsCapStopsScan(t *testing.T) {
	st := settings.Default()
	st.MaxErrors = 2
	violations := strings.Repeat("keep\n", 5)
	got := Analyze(violations, st)
	if len(got) != 2 {
		t.Fatalf("expected exactly 2 diagnostics, got %d", len(got))
	}
	for _, d := range got {
		if d.Range.Start.Line > 1 {
			t.Fatalf("line %d scanned past the cap", d.Range.Start.Line)
		}
	}
}

func TestDiagnosticCountNeverExceedsCap(t *testing.T) {
	st := settings.Default()
	st.ProtonExtensions = false
	st.MaxErrors = 3
	// Each line fires invalid-syntax plus an extension-disabled warning.
	text := strings.Repeat("expire :days 1;\n", 10)
	got := Analyze(text, st)
	if len(got) > 3 {
		t.Fatalf("cap exceeded: %d diagnostics", len(got))
	}
}

func TestDiagnosticOrderLineThenConsistency(t *testing.T) {
	text := "keep\nif body :contains \"x\" { stop; }"
	got := Analyze(text, settings.Default())
	if len(got) < 2 {
		t.Fatalf("got %v", codes(got))
	}
	if got[0].Code != diag.CodeMissingSemicolon {
		t.Fatalf("first diagnostic = %v", got[0].Code)
	}
	if got[len(got)-1].Code != diag.CodeMissingRequire {
		t.Fatalf("consistency findings must come last: %v", codes(got))
	}
}

func TestCRLFInput(t *testing.T) {
	got := Analyze("keep\r\nstop;\r\n", settings.Default())
	if !hasCode(got, diag.CodeMissingSemicolon) {
		t.Fatalf("CRLF line lost its diagnostic: %v", codes(got))
	}
	for _, d := range got {
		if d.Code == diag.CodeMissingSemicolon && d.Range.End.Character != len("keep") {
			t.Fatalf("carriage return leaked into the range: %v", d.Range)
		}
	}
}
