package diag

import "testing"

func TestSeverityWireValues(t *testing.T) {
	if SevError != 1 || SevWarning != 2 {
		t.Fatalf("severities must follow the LSP convention: error=%d warning=%d", SevError, SevWarning)
	}
	if SevError.String() != "error" || SevWarning.String() != "warning" {
		t.Fatal("unexpected severity names")
	}
}

func TestCodesCarryHrefs(t *testing.T) {
	for _, code := range []Code{CodeMissingSemicolon, CodeInvalidSyntax, CodeExtensionDisabled, CodeMissingRequire} {
		if code.Href() == "" {
			t.Errorf("code %s has no reference URL", code)
		}
	}
	if Code("made-up").Href() != "" {
		t.Error("unknown code should have no URL")
	}
}

func TestNewFillsSourceAndHref(t *testing.T) {
	d := NewError(CodeMissingSemicolon, LineRange(3, 10, 11), "missing semicolon")
	if d.Source != Source {
		t.Fatalf("source = %q", d.Source)
	}
	if d.Href != CodeMissingSemicolon.Href() {
		t.Fatalf("href = %q", d.Href)
	}
	if d.Range.Start.Line != 3 || d.Range.Start.Character != 10 || d.Range.End.Character != 11 {
		t.Fatalf("range = %v", d.Range)
	}
	if d.Severity != SevError {
		t.Fatalf("severity = %v", d.Severity)
	}
}

func TestBagCap(t *testing.T) {
	b := NewBag(2)
	d := NewWarning(CodeMissingRequire, Range{}, "w")
	if !b.Add(d) || !b.Add(d) {
		t.Fatal("first two adds must succeed")
	}
	if b.Add(d) {
		t.Fatal("third add must be rejected")
	}
	if !b.Full() || b.Len() != 2 {
		t.Fatalf("Full=%v Len=%d", b.Full(), b.Len())
	}
}

func TestBagPreservesOrder(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(CodeMissingSemicolon, LineRange(0, 0, 1), "first"))
	b.Add(NewWarning(CodeExtensionDisabled, LineRange(1, 0, 1), "second"))
	items := b.Items()
	if items[0].Message != "first" || items[1].Message != "second" {
		t.Fatalf("order not preserved: %v", items)
	}
	if !b.HasErrors() {
		t.Fatal("bag contains an error")
	}
}

func TestBagZeroCap(t *testing.T) {
	b := NewBag(0)
	if b.Add(NewWarning(CodeMissingRequire, Range{}, "w")) {
		t.Fatal("zero-cap bag accepts nothing")
	}
	if !b.Full() {
		t.Fatal("zero-cap bag is always full")
	}
}
