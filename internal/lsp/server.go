package lsp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"sievels/internal/analysis"
	"sievels/internal/diag"
	"sievels/internal/document"
	"sievels/internal/settings"
	"sievels/internal/version"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// AnalyzeFunc produces diagnostics for a document snapshot.
type AnalyzeFunc func(text string, cfg settings.Settings) []diag.Diagnostic

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Analyze        AnalyzeFunc
	MaxDiagnostics int
}

// Server handles stdio JSON-RPC for the Sieve language server.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex

	docs     *document.Store
	settings *settings.State
	analyze  AnalyzeFunc
	logw     io.Writer

	mu                sync.Mutex
	shutdownRequested bool
	validateSeq       map[string]uint64
	publishedSeq      map[string]uint64
	published         map[string]struct{}

	wg sync.WaitGroup
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	analyzeFn := opts.Analyze
	if analyzeFn == nil {
		analyzeFn = analysis.Analyze
	}
	state := settings.NewState()
	if opts.MaxDiagnostics > 0 {
		cfg := settings.Default()
		cfg.MaxErrors = opts.MaxDiagnostics
		state.Set(cfg)
	}
	return &Server{
		in:           bufio.NewReader(in),
		out:          bufio.NewWriter(out),
		logw:         os.Stderr,
		docs:         document.NewStore(),
		settings:     state,
		analyze:      analyzeFn,
		validateSeq:  make(map[string]uint64),
		publishedSeq: make(map[string]uint64),
		published:    make(map[string]struct{}),
	}
}

// Run serves LSP requests until shutdown.
func (s *Server) Run() error {
	defer s.wg.Wait()
	for {
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		s.mu.Lock()
		requested := s.shutdownRequested
		s.mu.Unlock()
		if requested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, -32601, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    2,
				Save: saveOptions{
					IncludeText: true,
				},
			},
			CompletionProvider: &completionOptions{
				TriggerCharacters: []string{":"},
			},
			HoverProvider: true,
		},
		ServerInfo: &serverInfo{
			Name:    "sievels",
			Version: version.Version,
		},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.docs.Open(uri, params.TextDocument.Text, params.TextDocument.Version)
	s.scheduleValidation(uri)
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	changes := make([]document.Change, 0, len(params.ContentChanges))
	for _, ev := range params.ContentChanges {
		ch := document.Change{Text: ev.Text}
		if ev.Range != nil {
			ch.Span = &document.Span{
				StartLine: ev.Range.Start.Line,
				StartCol:  ev.Range.Start.Character,
				EndLine:   ev.Range.End.Line,
				EndCol:    ev.Range.End.Character,
			}
		}
		changes = append(changes, ch)
	}
	if !s.docs.ApplyChanges(uri, changes, params.TextDocument.Version) {
		s.logf("change for unknown document %s", uri)
		return nil
	}
	s.scheduleValidation(uri)
	return nil
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	snap, ok := s.docs.Snapshot(uri)
	if !ok {
		return nil
	}
	if params.Text != nil {
		s.docs.Open(uri, *params.Text, snap.Version)
	}
	s.scheduleValidation(uri)
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.docs.Close(uri)
	s.mu.Lock()
	defer s.mu.Unlock()
	// Bump the sequence so an in-flight validation cannot republish, and
	// send the clearing publish before releasing the lock so it cannot
	// interleave with a stale validation result.
	s.validateSeq[uri]++
	s.publishedSeq[uri] = s.validateSeq[uri]
	_, hadDiagnostics := s.published[uri]
	delete(s.published, uri)
	if hadDiagnostics {
		if err := s.sendPublish(uri, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
	return nil
}

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	cfg, err := settings.Decode(params.Settings)
	if err != nil {
		s.logf("rejecting configuration update: %v", err)
		return nil
	}
	s.settings.Set(cfg)
	for _, uri := range s.docs.URIs() {
		s.scheduleValidation(uri)
	}
	return nil
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      json.RawMessage(id),
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      json.RawMessage(id),
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) sendPublish(uri string, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  "textDocument/publishDiagnostics",
		"params": publishDiagnosticsParams{
			URI:         uri,
			Diagnostics: list,
		},
	}
	return s.send(msg)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(s.logw, "sievels: "+format+"\n", args...)
}
