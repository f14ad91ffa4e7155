package rope

import "unicode/utf8"

// OffsetForPosition maps an LSP-style position (0-indexed line, UTF-16
// code-unit column) to a byte offset into the rope. Columns past the end of
// the line clamp to the end of the line; lines past the end of the text
// clamp to Len.
func (r Rope) OffsetForPosition(line, character int) int {
	if line < 0 || character < 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	text, _ := r.Line(line)
	start := r.LineStart(line)
	units := 0
	i := 0
	for i < len(text) {
		if text[i] == '\n' {
			break
		}
		ch, size := utf8.DecodeRuneInString(text[i:])
		need := 1
		if ch > 0xFFFF {
			need = 2
		}
		if units+need > character {
			break
		}
		units += need
		i += size
		if units == character {
			break
		}
	}
	return start + i
}

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	units := 0
	for _, ch := range s {
		if ch > 0xFFFF {
			units += 2
		} else {
			units++
		}
	}
	return units
}

// UTF16Col converts a byte offset within s to a UTF-16 code-unit column.
func UTF16Col(s string, offset int) int {
	if offset > len(s) {
		offset = len(s)
	}
	return UTF16Len(s[:offset])
}
