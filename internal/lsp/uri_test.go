package lsp

import "testing"

func TestCanonicalURI(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"file:///home/user/inbox.sieve", "file:///home/user/inbox.sieve"},
		{"file:///home/user/../user/inbox.sieve", "file:///home/user/inbox.sieve"},
		{"file:///home/user/my%20filters/a.sieve", "file:///home/user/my%20filters/a.sieve"},
		{"untitled:Untitled-1", "untitled:Untitled-1"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := canonicalURI(tt.in); got != tt.want {
			t.Errorf("canonicalURI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalURIUnifiesEscapes(t *testing.T) {
	a := canonicalURI("file:///home/user/my%20filters/a.sieve")
	b := canonicalURI("file:///home/user/my filters/a.sieve")
	if a != b {
		t.Fatalf("escaped and raw spellings differ: %q vs %q", a, b)
	}
}
