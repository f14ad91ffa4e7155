package lsp

import (
	"encoding/json"

	"sievels/internal/sieve"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	snap, ok := s.docs.Snapshot(canonicalURI(params.TextDocument.URI))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	line, ok := snap.Text.Line(params.Position.Line)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	word := wordAt(line, params.Position.Character)
	if word == "" {
		return s.sendResponse(msg.ID, nil)
	}
	doc := keywordDoc(word)
	if doc == "" {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, hover{
		Contents: markupContent{Kind: "plaintext", Value: doc},
	})
}

func keywordDoc(word string) string {
	switch {
	case sieve.IsTest(word):
		return sieve.TestDoc(word)
	case sieve.IsAction(word):
		return sieve.ActionDoc(word)
	case sieve.IsTag(word):
		return sieve.TagDoc(word)
	}
	if desc, ok := sieve.Extensions[word]; ok {
		return desc
	}
	return ""
}
