package lsp

import (
	"sievels/internal/diag"
)

// scheduleValidation snapshots the document and settings, then runs the
// analysis off the read loop. A sequence number per URI makes sure a slow
// validation of an old snapshot can never overwrite a newer publish.
func (s *Server) scheduleValidation(uri string) {
	snap, ok := s.docs.Snapshot(uri)
	if !ok {
		return
	}
	cfg := s.settings.Get()

	s.mu.Lock()
	s.validateSeq[uri]++
	seq := s.validateSeq[uri]
	s.mu.Unlock()

	text := snap.Text.String()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		diags := s.analyze(text, cfg)
		s.publishDiagnostics(uri, seq, diags)
	}()
}

// publishDiagnostics sends the result of validation seq for uri, unless a
// newer result has already been published. The sequence check and the wire
// send happen under one critical section: were they separate, a stale
// result that passed the check could still reach the wire after a newer
// one, leaving the client showing diagnostics for an older snapshot.
func (s *Server) publishDiagnostics(uri string, seq uint64, diags []diag.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.publishedSeq[uri] {
		return
	}
	s.publishedSeq[uri] = seq
	if _, open := s.docs.Snapshot(uri); !open {
		return
	}
	if len(diags) > 0 {
		s.published[uri] = struct{}{}
	} else {
		delete(s.published, uri)
	}
	if err := s.sendPublish(uri, toWire(diags)); err != nil {
		s.logf("failed to publish diagnostics: %v", err)
	}
}

func toWire(diags []diag.Diagnostic) []lspDiagnostic {
	out := make([]lspDiagnostic, 0, len(diags))
	for _, d := range diags {
		item := lspDiagnostic{
			Range: lspRange{
				Start: position{Line: d.Range.Start.Line, Character: d.Range.Start.Character},
				End:   position{Line: d.Range.End.Line, Character: d.Range.End.Character},
			},
			Severity: int(d.Severity),
			Code:     string(d.Code),
			Source:   d.Source,
			Message:  d.Message,
		}
		if d.Href != "" {
			item.CodeDescription = &codeDescription{Href: d.Href}
		}
		out = append(out, item)
	}
	return out
}
