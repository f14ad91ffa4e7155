package lsp

import "unicode"

// wordAt extracts the keyword under the cursor. Word characters are
// letters, digits, '_' and ':' so that tagged arguments like ":contains"
// resolve as one word. Returns "" when the cursor is not on a word.
func wordAt(line string, character int) string {
	runes := []rune(line)
	if character > len(runes) {
		return ""
	}
	start, end := character, character
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == ':'
}
