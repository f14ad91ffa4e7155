package lsp

import (
	"encoding/json"
	"fmt"

	"sievels/internal/sieve"
)

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	if _, ok := s.docs.Snapshot(canonicalURI(params.TextDocument.URI)); !ok {
		return s.sendResponse(msg.ID, []completionItem{})
	}
	cfg := s.settings.Get()
	return s.sendResponse(msg.ID, completionItems(cfg.ProtonExtensions))
}

// completionItems builds the full candidate list. The position is not
// consulted: the client filters by the typed prefix.
func completionItems(proton bool) []completionItem {
	var items []completionItem

	for _, test := range sieve.AvailableTests(proton) {
		items = append(items, completionItem{
			Label:            test,
			Kind:             completionKindFunction,
			Detail:           fmt.Sprintf("Sieve test: %s", test),
			Documentation:    sieve.TestDoc(test),
			InsertText:       test,
			InsertTextFormat: insertTextFormatPlain,
		})
	}

	for _, action := range sieve.AvailableActions(proton) {
		items = append(items, completionItem{
			Label:            action,
			Kind:             completionKindMethod,
			Detail:           fmt.Sprintf("Sieve action: %s", action),
			Documentation:    sieve.ActionDoc(action),
			InsertText:       action + ";",
			InsertTextFormat: insertTextFormatPlain,
		})
	}

	for _, tag := range sieve.Tags {
		items = append(items, completionItem{
			Label:            tag,
			Kind:             completionKindProperty,
			Detail:           fmt.Sprintf("Sieve tag: %s", tag),
			Documentation:    sieve.TagDoc(tag),
			InsertText:       tag,
			InsertTextFormat: insertTextFormatPlain,
		})
	}

	for _, name := range sieve.ExtensionNames() {
		quoted := fmt.Sprintf("%q", name)
		items = append(items, completionItem{
			Label:            quoted,
			Kind:             completionKindModule,
			Detail:           fmt.Sprintf("Sieve extension: %s", name),
			Documentation:    sieve.Extensions[name],
			InsertText:       quoted,
			InsertTextFormat: insertTextFormatPlain,
		})
	}

	return items
}
