// Package analysis implements the rule-based validation of Sieve scripts.
//
// The engine is a pure function of (text, settings): it holds no state
// across calls, performs no IO and never panics on malformed input. A line
// that cannot be classified produces an invalid-syntax diagnostic instead
// of aborting the scan.
//
// Validation runs in two phases. Phase one walks the logical lines and
// applies the per-line syntax rules, stopping early once the diagnostic cap
// is reached. Phase two, enabled by the semanticAnalysis setting, compares
// the extensions declared by require statements against the extensions
// whose usage signature appears in the text and reports the ones used
// without a declaration.
package analysis

import (
	"strings"

	"sievels/internal/diag"
	"sievels/internal/settings"
	"sievels/internal/sieve"
)

// Analyze validates a full document text under a settings snapshot and
// returns the diagnostics in rule-firing order.
func Analyze(text string, st settings.Settings) []diag.Diagnostic {
	bag := diag.NewBag(st.MaxErrors)

	var required, used []string

	for idx, line := range logicalLines(text) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		checkLineSyntax(bag, idx, line, st)

		if st.SemanticAnalysis {
			required, used = collectExtensions(trimmed, required, used)
		}

		if bag.Full() {
			break
		}
	}

	if st.SemanticAnalysis {
		checkExtensionConsistency(bag, required, used)
	}

	return bag.Items()
}

// logicalLines splits the text for per-line analysis. A final line
// terminator does not open an extra empty line, and carriage returns from
// CRLF input are stripped.
func logicalLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// collectExtensions records require declarations and usage signatures found
// on one line.
func collectExtensions(trimmed string, required, used []string) ([]string, []string) {
	if strings.HasPrefix(trimmed, "require") {
		required = append(required, ParseRequire(trimmed)...)
	}
	for _, ext := range sieve.ExtensionNames() {
		if sieve.UsesExtension(trimmed, ext) && !containsString(used, ext) {
			used = append(used, ext)
		}
	}
	return required, used
}

// checkExtensionConsistency emits one missing-require warning per
// used-but-undeclared extension. Usage sites are not tracked individually,
// so the range is a document-level placeholder at the origin.
func checkExtensionConsistency(bag *diag.Bag, required, used []string) {
	for _, ext := range used {
		if containsString(required, ext) {
			continue
		}
		bag.Add(diag.NewWarning(
			diag.CodeMissingRequire,
			diag.Range{},
			"Extension '"+ext+"' is used but not required",
		))
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
