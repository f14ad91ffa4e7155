// Package sieve holds the static tables of recognized Sieve keywords:
// test commands, action commands, tagged arguments and the extensions that
// 'require' statements can load. The tables are process-wide constants
// loaded once; nothing in this package mutates state.
package sieve

import (
	"sort"
	"strings"
)

// Tests lists the Sieve test commands from RFC 5228 plus common extensions.
// Tests are the conditions usable inside if/elsif statements.
var Tests = []string{
	"address",
	"allof",
	"anyof",
	"envelope",
	"exists",
	"false",
	"header",
	"not",
	"size",
	"true",

	"body",
	"currentdate",
	"date",
	"environment",
	"mailbox",
	"mailboxexists",
	"regex",
	"spamtest",
	"virustest",
}

// Actions lists the Sieve action commands that operate on a message.
var Actions = []string{
	"discard",
	"fileinto",
	"keep",
	"redirect",
	"reject",
	"stop",

	// IMAP flags extension (RFC 5232)
	"addflag",
	"removeflag",
	"setflag",

	"vacation",
	"notify",
	"denotify",

	// Proton Mail specific
	"expire",
}

// Tags lists the tagged arguments (":name") that modify tests and actions.
var Tags = []string{
	":is",
	":contains",
	":matches",
	":regex",

	":count",
	":value",

	":comparator",

	":localpart",
	":domain",
	":all",

	":over",
	":under",

	":copy",
	":create",

	":zone",
	":originalzone",

	":flags",
	":importance",
	":mime",
	":anychild",
	":type",
	":subtype",
	":contenttype",
	":param",
}

// Extensions maps require-able extension names to their descriptions.
var Extensions = map[string]string{
	"body":              "Message body testing (RFC 5173)",
	"copy":              "Copy messages instead of moving (RFC 3894)",
	"date":              "Date/time operations (RFC 5260)",
	"editheader":        "Modify message headers (RFC 5293)",
	"encoded-character": "Encoded character support (RFC 5228)",
	"envelope":          "SMTP envelope testing (RFC 5228)",
	"environment":       "Access to server environment (RFC 5183)",
	"ereject":           "Enhanced reject with reason (RFC 5429)",
	"fileinto":          "File messages into folders (RFC 5228)",
	"foreverypart":      "Iterate over MIME parts (RFC 5703)",
	"imap4flags":        "IMAP flag manipulation (RFC 5232)",
	"include":           "Include other scripts (RFC 6609)",
	"index":             "Positional testing of headers (RFC 5260)",
	"mailbox":           "Mailbox metadata access (RFC 5490)",
	"mboxmetadata":      "Mailbox metadata operations (RFC 5490)",
	"mime":              "MIME structure operations (RFC 5703)",
	"regex":             "Regular expression support (draft)",
	"reject":            "Reject messages with errors (RFC 5228)",
	"relational":        "Numeric comparisons (RFC 5231)",
	"servermetadata":    "Server metadata access (RFC 5490)",
	"spamtest":          "Spam testing interface (RFC 5235)",
	"subaddress":        "Sub-addressing support (RFC 5233)",
	"vacation":          "Auto-reply functionality (RFC 5230)",
	"variables":         "Variable support (RFC 5229)",
	"virustest":         "Virus testing interface (RFC 5235)",
}

// ExtensionNames returns the known extension names in sorted order, for
// deterministic iteration over the Extensions map.
func ExtensionNames() []string {
	names := make([]string, 0, len(Extensions))
	for name := range Extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProtonTests and ProtonActions are the keywords gated behind the
// protonExtensions setting.
var (
	ProtonTests   = []string{"currentdate"}
	ProtonActions = []string{"expire"}
)

// AvailableTests returns the test commands usable under the given setting.
func AvailableTests(proton bool) []string {
	if proton {
		return Tests
	}
	return exclude(Tests, ProtonTests)
}

// AvailableActions returns the action commands usable under the given
// setting.
func AvailableActions(proton bool) []string {
	if proton {
		return Actions
	}
	return exclude(Actions, ProtonActions)
}

func exclude(all, removed []string) []string {
	out := make([]string, 0, len(all))
	for _, s := range all {
		found := false
		for _, r := range removed {
			if s == r {
				found = true
				break
			}
		}
		if !found {
			out = append(out, s)
		}
	}
	return out
}

// IsTest reports whether name is a recognized test command.
func IsTest(name string) bool { return contains(Tests, name) }

// IsAction reports whether name is a recognized action command.
func IsAction(name string) bool { return contains(Actions, name) }

// IsTag reports whether name is a recognized tagged argument.
func IsTag(name string) bool { return contains(Tags, name) }

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}

// UsesExtension reports whether a line shows the usage signature of the
// given extension. This is a closed per-extension predicate table, not a
// parser: a fixed substring or token per extension.
func UsesExtension(line, extension string) bool {
	switch extension {
	case "body":
		return strings.Contains(line, "body ")
	case "regex":
		return strings.Contains(line, ":regex")
	case "fileinto":
		return strings.Contains(line, "fileinto")
	case "vacation":
		return strings.Contains(line, "vacation")
	case "copy":
		return strings.Contains(line, ":copy")
	case "date":
		return strings.Contains(line, "date ") || strings.Contains(line, "currentdate")
	case "relational":
		return strings.Contains(line, ":value") || strings.Contains(line, ":count")
	case "imap4flags":
		return strings.Contains(line, "addflag") ||
			strings.Contains(line, "setflag") ||
			strings.Contains(line, "removeflag")
	default:
		return false
	}
}
