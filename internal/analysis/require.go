package analysis

import (
	"regexp"
	"strings"
)

// requireRe matches the two require forms:
//
//	require "fileinto";
//	require ["body", "regex"];
var requireRe = regexp.MustCompile(`require\s+(?:\[([^\]]+)\]|"([^"]+)")`)

// ParseRequire extracts the extension names declared by a require line.
// A require line matching neither form yields nil; that is not an error
// here, the statement-validity rule covers malformed syntax.
func ParseRequire(line string) []string {
	m := requireRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	if m[1] != "" {
		parts := strings.Split(m[1], ",")
		names := make([]string, 0, len(parts))
		for _, part := range parts {
			names = append(names, strings.Trim(strings.TrimSpace(part), `"`))
		}
		return names
	}
	if m[2] != "" {
		return []string{m[2]}
	}
	return nil
}
