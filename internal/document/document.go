package document

import "sievels/internal/rope"

// Span addresses a half-open text range in 0-indexed line/column
// coordinates, columns counted in UTF-16 code units as on the LSP wire.
type Span struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Change describes one content mutation. A nil Span replaces the full
// document content with Text.
type Change struct {
	Span *Span
	Text string
}

// Document is one open Sieve script tracked by the server. The text lives
// in an immutable rope so snapshots are plain value copies.
type Document struct {
	URI     string
	Version int
	text    rope.Rope
}

// New creates a document from its initial content. The version is assigned
// by the client and accepted as given.
func New(uri, text string, version int) *Document {
	return &Document{
		URI:     uri,
		Version: version,
		text:    rope.FromString(text),
	}
}

// Apply mutates the document text in place.
func (d *Document) Apply(c Change) {
	if c.Span == nil {
		d.text = rope.FromString(c.Text)
		return
	}
	start := d.text.OffsetForPosition(c.Span.StartLine, c.Span.StartCol)
	end := d.text.OffsetForPosition(c.Span.EndLine, c.Span.EndCol)
	if end < start {
		end = start
	}
	d.text = d.text.Replace(start, end, c.Text)
}

// Text returns the full document content.
func (d *Document) Text() string {
	return d.text.String()
}

// Line returns the 0-indexed line including its trailing newline, if any.
func (d *Document) Line(n int) (string, bool) {
	return d.text.Line(n)
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return d.text.LineCount()
}

// Snapshot is a point-in-time copy of a document handed to validation.
// It shares no mutable state with the store.
type Snapshot struct {
	URI     string
	Version int
	Text    rope.Rope
}
