package sieve

import (
	"strings"
	"testing"
)

func TestTablesPopulated(t *testing.T) {
	if len(Tests) == 0 || len(Actions) == 0 || len(Tags) == 0 || len(Extensions) == 0 {
		t.Fatal("keyword tables must not be empty")
	}
	if !IsTest("header") {
		t.Error("header should be a known test")
	}
	if !IsAction("fileinto") {
		t.Error("fileinto should be a known action")
	}
	if !IsTag(":contains") {
		t.Error(":contains should be a known tag")
	}
	if _, ok := Extensions["body"]; !ok {
		t.Error("body should be a known extension")
	}
}

func TestAvailableKeywordsGateProton(t *testing.T) {
	for _, kw := range ProtonTests {
		if contains(AvailableTests(false), kw) {
			t.Errorf("%s available with proton disabled", kw)
		}
		if !contains(AvailableTests(true), kw) {
			t.Errorf("%s missing with proton enabled", kw)
		}
	}
	for _, kw := range ProtonActions {
		if contains(AvailableActions(false), kw) {
			t.Errorf("%s available with proton disabled", kw)
		}
		if !contains(AvailableActions(true), kw) {
			t.Errorf("%s missing with proton enabled", kw)
		}
	}
	// Gating never removes standard keywords.
	if len(AvailableTests(false)) != len(Tests)-len(ProtonTests) {
		t.Errorf("unexpected filtered test count: %d", len(AvailableTests(false)))
	}
}

func TestUsesExtension(t *testing.T) {
	cases := []struct {
		line string
		ext  string
		want bool
	}{
		{`if body :contains "urgent" {`, "body", true},
		{"keep;", "body", false},
		{`if header :regex "subject" ".*spam.*" {`, "regex", true},
		{`fileinto "Archive";`, "fileinto", true},
		{`redirect "a@b.c" :copy;`, "copy", true},
		{`if currentdate :value "ge" "hour" "09" {`, "date", true},
		{`if header :count "eq" "1" {`, "relational", true},
		{`addflag "\\Seen";`, "imap4flags", true},
		{"keep;", "nosuchext", false},
	}
	for _, tc := range cases {
		if got := UsesExtension(tc.line, tc.ext); got != tc.want {
			t.Errorf("UsesExtension(%q, %q) = %v, want %v", tc.line, tc.ext, got, tc.want)
		}
	}
}

func TestDocLookups(t *testing.T) {
	if !strings.Contains(TestDoc("header"), "header fields") {
		t.Error("TestDoc(header) should describe header testing")
	}
	if !strings.Contains(ActionDoc("fileinto"), "mailbox") {
		t.Error("ActionDoc(fileinto) should mention mailbox")
	}
	if !strings.Contains(TagDoc(":contains"), "Substring") {
		t.Error("TagDoc(:contains) should describe substring match")
	}
	// Unknown keywords fall back to a generic description.
	if !strings.Contains(TestDoc("nosuch"), "nosuch") {
		t.Error("fallback doc should name the keyword")
	}
}
