// Package rope provides an immutable rope for efficient text storage.
//
// A rope is a binary tree whose leaves hold text chunks and whose internal
// nodes aggregate byte length and newline counts. Edits split and rejoin
// subtrees in O(log n) instead of copying the whole document, and because
// every operation returns a new value, a snapshot of the text is a plain
// struct copy that stays valid while later edits build new trees.
package rope
