package rope

import "strings"

// Rope is an immutable rope over UTF-8 text. Operations return new Rope
// values; the original is never modified, so a Rope held by one goroutine
// can be read while another goroutine builds an edited successor.
type Rope struct {
	root *node
}

// New returns an empty rope.
func New() Rope {
	return Rope{}
}

// FromString builds a rope from s.
func FromString(s string) Rope {
	if len(s) == 0 {
		return Rope{}
	}
	return Rope{root: build(splitChunks(s))}
}

// Len returns the total length in bytes.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.length
}

// LineCount returns the number of lines (newline count + 1).
// An empty rope has one (empty) line; text ending in a newline has a final
// empty line after it.
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.newlines + 1
}

// String returns the full text. Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.root.length)
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the byte range [start, end), clamped to the
// rope bounds.
func (r Rope) Slice(start, end int) string {
	if r.root == nil {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end > r.root.length {
		end = r.root.length
	}
	if start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.sliceTo(&sb, start, end)
	return sb.String()
}

// Split splits the rope at the given byte offset. The left rope holds
// [0, offset), the right [offset, len).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return Rope{}, r
	}
	if offset >= r.root.length {
		return r, Rope{}
	}
	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat joins two ropes.
func (r Rope) Concat(other Rope) Rope {
	return Rope{root: concat(r.root, other.root)}
}

// Insert inserts text at the given byte offset. Offsets outside the rope
// are clamped.
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right).rebalanced()
}

// Delete removes the byte range [start, end).
func (r Rope) Delete(start, end int) Rope {
	if r.root == nil || start >= end {
		return r
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right).rebalanced()
}

// Replace substitutes the byte range [start, end) with text.
func (r Rope) Replace(start, end int, text string) Rope {
	if start >= end {
		return r.Insert(start, text)
	}
	if len(text) == 0 {
		return r.Delete(start, end)
	}
	return r.Delete(start, end).Insert(start, text)
}

// LineStart returns the byte offset at which the given 0-indexed line
// begins. Lines past the end map to Len.
func (r Rope) LineStart(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line > r.root.newlines {
		return r.root.length
	}
	return offsetAfterNewline(r.root, line)
}

// Line returns the 0-indexed line including its trailing newline, if any.
// ok is false when line is outside [0, LineCount).
func (r Rope) Line(line int) (string, bool) {
	if line < 0 || line >= r.LineCount() {
		return "", false
	}
	start := r.LineStart(line)
	end := r.Len()
	if line+1 < r.LineCount() {
		end = r.LineStart(line + 1)
	}
	return r.Slice(start, end), true
}

// rebalanced rebuilds the rope from its leaves when repeated edits have
// made the tree too tall. Cheap for the script sizes this server sees.
func (r Rope) rebalanced() Rope {
	if r.root == nil || r.root.height <= maxHeight {
		return r
	}
	var chunks []string
	r.root.collectChunks(&chunks)
	return Rope{root: build(chunks)}
}
