package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"sievels/internal/diag"
	"sievels/internal/rope"
	"sievels/internal/settings"
	"sievels/internal/sieve"
)

// validStarts are the control keywords accepted as statement openers in
// addition to tests and actions.
var validStarts = []string{"require", "if", "elsif", "else", "stop", "{", "}"}

// checkLineSyntax applies the per-line rules to one non-blank,
// non-comment line. line is the raw line without its terminator; trimming
// happens per rule so that diagnostic columns stay in raw-line coordinates.
func checkLineSyntax(bag *diag.Bag, idx int, line string, st settings.Settings) {
	trimmed := strings.TrimSpace(line)

	if isActionLine(trimmed) && !strings.HasSuffix(trimmed, ";") {
		bag.Add(diag.NewError(
			diag.CodeMissingSemicolon,
			lastCharRange(idx, line),
			"Missing semicolon after action statement",
		))
	}

	if strings.HasSuffix(trimmed, ";") && !isValidStatement(trimmed, st) {
		bag.Add(diag.NewError(
			diag.CodeInvalidSyntax,
			diag.LineRange(idx, 0, rope.UTF16Len(line)),
			"Invalid Sieve statement syntax",
		))
	}

	if !st.ProtonExtensions {
		checkProtonKeywords(bag, idx, line)
	}
}

// isActionLine reports whether the line's leading token matches a known
// action verb.
func isActionLine(trimmed string) bool {
	for _, action := range sieve.Actions {
		if strings.HasPrefix(trimmed, action) {
			return true
		}
	}
	return false
}

// isValidStatement accepts a terminated line when it starts with a control
// keyword, contains any currently-available test as a substring, or starts
// with a currently-available action. Substring containment is deliberately
// approximate; arguments containing keyword substrings are accepted.
func isValidStatement(trimmed string, st settings.Settings) bool {
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return true
	}
	for _, start := range validStarts {
		if strings.HasPrefix(trimmed, start) {
			return true
		}
	}
	for _, test := range sieve.AvailableTests(st.ProtonExtensions) {
		if strings.Contains(trimmed, test) {
			return true
		}
	}
	for _, action := range sieve.AvailableActions(st.ProtonExtensions) {
		if strings.HasPrefix(trimmed, action) {
			return true
		}
	}
	return false
}

// checkProtonKeywords warns on every occurrence of a Proton-only keyword,
// each warning spanning exactly the keyword's column range.
func checkProtonKeywords(bag *diag.Bag, idx int, line string) {
	for _, kw := range protonKeywords() {
		from := 0
		for {
			rel := strings.Index(line[from:], kw)
			if rel < 0 {
				break
			}
			at := from + rel
			bag.Add(diag.NewWarning(
				diag.CodeExtensionDisabled,
				diag.LineRange(idx, rope.UTF16Col(line, at), rope.UTF16Col(line, at+len(kw))),
				fmt.Sprintf("Proton extension '%s' is disabled in settings", kw),
			))
			from = at + len(kw)
		}
	}
}

func protonKeywords() []string {
	kws := make([]string, 0, len(sieve.ProtonActions)+len(sieve.ProtonTests))
	kws = append(kws, sieve.ProtonActions...)
	kws = append(kws, sieve.ProtonTests...)
	return kws
}

// lastCharRange anchors a diagnostic at the final character of the line.
func lastCharRange(idx int, line string) diag.Range {
	if line == "" {
		return diag.LineRange(idx, 0, 0)
	}
	_, size := utf8.DecodeLastRuneInString(line)
	end := rope.UTF16Len(line)
	start := rope.UTF16Col(line, len(line)-size)
	return diag.LineRange(idx, start, end)
}
