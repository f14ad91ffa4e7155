package diag

// Code is a stable machine-readable identifier for a rule finding.
type Code string

const (
	// CodeMissingSemicolon flags an action statement without its
	// terminating semicolon.
	CodeMissingSemicolon Code = "missing-semicolon"
	// CodeInvalidSyntax flags a terminated statement matching no known
	// Sieve construct.
	CodeInvalidSyntax Code = "invalid-syntax"
	// CodeExtensionDisabled flags use of a Proton-only keyword while the
	// protonExtensions setting is off.
	CodeExtensionDisabled Code = "extension-disabled"
	// CodeMissingRequire flags an extension whose usage signature appears
	// without a matching require declaration.
	CodeMissingRequire Code = "missing-require"
)

func (c Code) String() string { return string(c) }

// Href returns the reference URL published with the diagnostic.
func (c Code) Href() string {
	switch c {
	case CodeMissingSemicolon:
		return "https://datatracker.ietf.org/doc/html/rfc5228#section-2.1"
	case CodeInvalidSyntax:
		return "https://datatracker.ietf.org/doc/html/rfc5228#section-8"
	case CodeExtensionDisabled:
		return "https://proton.me/support/sieve-advanced-custom-filters"
	case CodeMissingRequire:
		return "https://datatracker.ietf.org/doc/html/rfc5228#section-3.2"
	}
	return ""
}
