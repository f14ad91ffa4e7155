package document

import (
	"hash/fnv"
	"sort"
	"sync"
)

const shardCount = 16

// Store is a sharded concurrent map from document URI to Document.
// Each shard carries its own RWMutex, so edits to documents in different
// shards never contend and validation snapshots of one document do not
// block edits to another.
type Store struct {
	shards [shardCount]shard
}

type shard struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i].docs = make(map[string]*Document)
	}
	return s
}

func (s *Store) shardFor(uri string) *shard {
	h := fnv.New32a()
	h.Write([]byte(uri))
	return &s.shards[h.Sum32()%shardCount]
}

// Open inserts a new document, replacing any existing entry for the URI.
func (s *Store) Open(uri, text string, version int) {
	sh := s.shardFor(uri)
	sh.mu.Lock()
	sh.docs[uri] = New(uri, text, version)
	sh.mu.Unlock()
}

// ApplyChanges applies the changes in order and records the new version.
// It reports false for an unknown URI; out-of-order notifications from the
// client are tolerated as no-ops rather than failures.
func (s *Store) ApplyChanges(uri string, changes []Change, version int) bool {
	sh := s.shardFor(uri)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	doc, ok := sh.docs[uri]
	if !ok {
		return false
	}
	doc.Version = version
	for _, c := range changes {
		doc.Apply(c)
	}
	return true
}

// Snapshot returns an immutable copy of the document text and version.
// The copy stays consistent while later edits build new ropes.
func (s *Store) Snapshot(uri string) (Snapshot, bool) {
	sh := s.shardFor(uri)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	doc, ok := sh.docs[uri]
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{URI: doc.URI, Version: doc.Version, Text: doc.text}, true
}

// Close removes the document. Closing an unknown URI is a no-op.
func (s *Store) Close(uri string) {
	sh := s.shardFor(uri)
	sh.mu.Lock()
	delete(sh.docs, uri)
	sh.mu.Unlock()
}

// Len returns the number of open documents.
func (s *Store) Len() int {
	n := 0
	for i := range s.shards {
		s.shards[i].mu.RLock()
		n += len(s.shards[i].docs)
		s.shards[i].mu.RUnlock()
	}
	return n
}

// URIs returns the open document URIs in sorted order.
func (s *Store) URIs() []string {
	var uris []string
	for i := range s.shards {
		s.shards[i].mu.RLock()
		for uri := range s.shards[i].docs {
			uris = append(uris, uri)
		}
		s.shards[i].mu.RUnlock()
	}
	sort.Strings(uris)
	return uris
}
