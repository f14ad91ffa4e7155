package rope

import (
	"strings"
	"unicode/utf8"
)

const (
	// maxLeaf bounds leaf chunk size in bytes. Splits never land inside a
	// multi-byte rune.
	maxLeaf = 512
	// maxHeight triggers a rebuild from leaves after degenerate edit
	// sequences.
	maxHeight = 32
)

// node is either a leaf (left == nil) carrying a text chunk, or an internal
// node aggregating byte length and newline count of its subtree.
type node struct {
	left, right *node
	height      int
	length      int
	newlines    int
	text        string
}

func newLeaf(s string) *node {
	return &node{
		height:   1,
		length:   len(s),
		newlines: strings.Count(s, "\n"),
		text:     s,
	}
}

func newParent(left, right *node) *node {
	h := left.height
	if right.height > h {
		h = right.height
	}
	return &node{
		left:     left,
		right:    right,
		height:   h + 1,
		length:   left.length + right.length,
		newlines: left.newlines + right.newlines,
	}
}

func (n *node) isLeaf() bool {
	return n.left == nil
}

// splitChunks cuts s into leaf-sized chunks on rune boundaries.
func splitChunks(s string) []string {
	var chunks []string
	for len(s) > maxLeaf {
		cut := maxLeaf
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		if cut == 0 {
			cut = maxLeaf
		}
		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}
	if len(s) > 0 {
		chunks = append(chunks, s)
	}
	return chunks
}

// build constructs a balanced tree over the chunks.
func build(chunks []string) *node {
	switch len(chunks) {
	case 0:
		return nil
	case 1:
		return newLeaf(chunks[0])
	}
	mid := len(chunks) / 2
	return newParent(build(chunks[:mid]), build(chunks[mid:]))
}

func concat(a, b *node) *node {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.isLeaf() && b.isLeaf() && a.length+b.length <= maxLeaf {
		return newLeaf(a.text + b.text)
	}
	return newParent(a, b)
}

// split divides the subtree at the byte offset, 0 < offset < n.length.
func (n *node) split(offset int) (*node, *node) {
	if n.isLeaf() {
		return newLeaf(n.text[:offset]), newLeaf(n.text[offset:])
	}
	if offset < n.left.length {
		l, r := n.left.split(offset)
		return l, concat(r, n.right)
	}
	if offset == n.left.length {
		return n.left, n.right
	}
	l, r := n.right.split(offset - n.left.length)
	return concat(n.left, l), r
}

// offsetAfterNewline returns the byte offset immediately after the k-th
// newline, 1 <= k <= n.newlines.
func offsetAfterNewline(n *node, k int) int {
	if n.isLeaf() {
		idx := 0
		for ; k > 0; k-- {
			next := strings.IndexByte(n.text[idx:], '\n')
			idx += next + 1
		}
		return idx
	}
	if k <= n.left.newlines {
		return offsetAfterNewline(n.left, k)
	}
	return n.left.length + offsetAfterNewline(n.right, k-n.left.newlines)
}

func (n *node) appendTo(sb *strings.Builder) {
	if n.isLeaf() {
		sb.WriteString(n.text)
		return
	}
	n.left.appendTo(sb)
	n.right.appendTo(sb)
}

// sliceTo writes the subtree bytes in [start, end) into sb.
func (n *node) sliceTo(sb *strings.Builder, start, end int) {
	if n.isLeaf() {
		sb.WriteString(n.text[start:end])
		return
	}
	if start < n.left.length {
		stop := end
		if stop > n.left.length {
			stop = n.left.length
		}
		n.left.sliceTo(sb, start, stop)
	}
	if end > n.left.length {
		from := start - n.left.length
		if from < 0 {
			from = 0
		}
		n.right.sliceTo(sb, from, end-n.left.length)
	}
}

func (n *node) collectChunks(out *[]string) {
	if n.isLeaf() {
		*out = append(*out, n.text)
		return
	}
	n.left.collectChunks(out)
	n.right.collectChunks(out)
}
