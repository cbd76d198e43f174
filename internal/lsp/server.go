package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diag"
	"github.com/vellum-lang/vellum/internal/pipeline"
)

// Server is the single-threaded LSP event loop. Every method that touches
// initialGS/finalGs or the pending-request registry runs on the goroutine
// that calls Serve; there is no internal locking because there is only
// ever one caller.
type Server struct {
	SessionID string

	transport Transport
	handler   *EditHandler
	pending   *PendingRequests

	rootURI string
	shutdown bool
}

// NewServer wires a transport to a fresh EditHandler built around p, gives
// the session a random id for correlating log lines across restarts, and
// records inputFileNames and payloadFileNames for the Initialized
// notification's first full index.
func NewServer(transport Transport, p pipeline.Pipeline, inputFileNames, payloadFileNames []string) *Server {
	h := NewEditHandler(p)
	h.InputFileNames = inputFileNames
	h.PayloadFileNames = payloadFileNames
	s := &Server{
		SessionID: uuid.NewString(),
		transport: transport,
		handler:   h,
		pending:   NewPendingRequests(),
	}
	h.Publish = s.publishDiagnostics
	return s
}

// Handler exposes the underlying EditHandler, e.g. for a debug server that
// needs read-only access to finalGs.
func (s *Server) Handler() *EditHandler { return s.handler }

// Serve runs the read/dispatch loop until the transport closes, ctx is
// canceled, or an exit notification is processed.
func (s *Server) Serve(ctx context.Context) error {
	for !s.shutdown {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := s.transport.ReadMessage()
		if err != nil {
			return err
		}
		s.dispatch(ctx, msg)
	}
	return nil
}

func (s *Server) dispatch(ctx context.Context, msg *Message) {
	if msg.IsReply() {
		var id string
		_ = json.Unmarshal(msg.ID, &id)
		pendingRequestsGauge.Dec()
		s.pending.Resolve(id, msg)
		return
	}

	entry := LookupMethod(msg.Method)
	if !entry.Supported {
		requestsTotal.WithLabelValues(msg.Method, "unsupported").Inc()
		if msg.IsRequest() {
			s.reply(msg.ID, nil, &RPCError{Code: ErrCodeMethodNotFound, Message: fmt.Sprintf("method not found: %s", msg.Method)})
		}
		return
	}

	var err error
	switch msg.Method {
	case "initialize":
		err = s.handleInitialize(msg)
	case "initialized":
		err = s.handleInitialized(ctx)
	case "shutdown":
		s.reply(msg.ID, json.RawMessage("null"), nil)
	case "exit":
		s.shutdown = true
	case "textDocument/didChange":
		err = s.handleDidChange(ctx, msg)
	case "workspace/didChangeWatchedFiles":
		err = s.handleDidChangeWatchedFiles(ctx, msg)
	case "textDocument/documentSymbol":
		err = s.handleDocumentSymbol(msg)
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
		log.Printf("lsp[%s]: %s: %v", s.SessionID, msg.Method, err)
	}
	requestsTotal.WithLabelValues(msg.Method, outcome).Inc()
}

func (s *Server) reply(id json.RawMessage, result json.RawMessage, rpcErr *RPCError) {
	_ = s.transport.WriteMessage(&Message{JSONRPC: "2.0", ID: id, Result: result, Error: rpcErr})
}

type initializeParams struct {
	RootURI string `json:"rootUri,omitempty"`
	RootPath string `json:"rootPath,omitempty"`
}

func (s *Server) handleInitialize(msg *Message) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			s.reply(msg.ID, nil, &RPCError{Code: ErrCodeParseError, Message: err.Error()})
			return err
		}
	}
	if params.RootURI != "" {
		s.rootURI = params.RootURI
	} else {
		s.rootURI = "file://" + params.RootPath
	}

	result := map[string]any{
		"capabilities": map[string]any{
			"textDocumentSync":     1,
			"documentSymbolProvider": true,
		},
		"serverInfo": map[string]any{"name": "vellum-lsp", "version": s.SessionID},
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	s.reply(msg.ID, data, nil)
	return nil
}

// handleInitialized runs the first full index over the workspace and a
// slow path with an empty changed-file set, per spec.
func (s *Server) handleInitialized(ctx context.Context) error {
	timer := prometheus.NewTimer(recheckDuration)
	defer timer.ObserveDuration()
	return s.handler.HandleInitialized(ctx)
}

type didChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

func (s *Server) handleDidChange(ctx context.Context, msg *Message) error {
	var params didChangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}
	if !strings.HasPrefix(params.TextDocument.URI, s.rootURI) {
		return nil
	}
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	timer := prometheus.NewTimer(recheckDuration)
	defer timer.ObserveDuration()
	return s.handler.HandleDidChange(ctx, uriToPath(params.TextDocument.URI), text)
}

type fileEvent struct {
	URI  string `json:"uri"`
	Type int    `json:"type"`
}

type didChangeWatchedFilesParams struct {
	Changes []fileEvent `json:"changes"`
}

func (s *Server) handleDidChangeWatchedFiles(ctx context.Context, msg *Message) error {
	var params didChangeWatchedFilesParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	changes := make([]FileChange, 0, len(params.Changes))
	typeByURI := make(map[string]FileChangeType, len(params.Changes))
	var toRead []string
	for _, ev := range params.Changes {
		typ := FileChangeType(ev.Type)
		if typ == FileChangeDeleted {
			changes = append(changes, FileChange{Path: uriToPath(ev.URI), Type: typ})
			continue
		}
		typeByURI[ev.URI] = typ
		toRead = append(toRead, ev.URI)
	}

	if len(toRead) > 0 {
		results, err := s.readFiles(ctx, toRead)
		if err != nil {
			log.Printf("lsp[%s]: ReadFile: %v", s.SessionID, err)
		} else {
			for _, r := range results {
				if !strings.HasPrefix(r.URI, s.rootURI) {
					continue
				}
				changes = append(changes, FileChange{Path: uriToPath(r.URI), Content: r.Content, Type: typeByURI[r.URI]})
			}
		}
	}

	timer := prometheus.NewTimer(recheckDuration)
	defer timer.ObserveDuration()
	return s.handler.HandleDidChangeWatchedFiles(ctx, changes)
}

// readFileResult is one entry of a batched ReadFile reply.
type readFileResult struct {
	URI     string `json:"uri"`
	Content string `json:"content"`
}

type readFilesOutcome struct {
	results []readFileResult
	err     error
}

// readFiles issues a single server→client ReadFile request carrying every
// uri in uris and blocks until the client answers with the full
// `[{uri,content}, ...]` result array — one request per
// didChangeWatchedFiles batch, not one per file. Since this loop is
// single-threaded, the only way to see the reply is to keep pumping
// transport.ReadMessage/dispatch right here until it arrives (any other
// inbound message that shows up in the meantime is dispatched normally);
// a client that never answers leaves this call hanging.
func (s *Server) readFiles(ctx context.Context, uris []string) ([]readFileResult, error) {
	ch := make(chan readFilesOutcome, 1)

	id := s.pending.NextID(
		func(raw json.RawMessage) {
			var body []readFileResult
			err := json.Unmarshal(raw, &body)
			ch <- readFilesOutcome{results: body, err: err}
		},
		func(rpcErr *RPCError) {
			ch <- readFilesOutcome{err: fmt.Errorf("ReadFile failed: %s", rpcErr.Message)}
		},
	)
	pendingRequestsGauge.Inc()

	params, _ := json.Marshal(map[string]any{"uris": uris})
	idJSON, _ := json.Marshal(id)
	if err := s.transport.WriteMessage(&Message{JSONRPC: "2.0", ID: idJSON, Method: "ReadFile", Params: params}); err != nil {
		return nil, err
	}

	for {
		select {
		case r := <-ch:
			return r.results, r.err
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msg, err := s.transport.ReadMessage()
		if err != nil {
			return nil, err
		}
		s.dispatch(ctx, msg)
	}
}

func (s *Server) handleDocumentSymbol(msg *Message) error {
	var params struct {
		TextDocument struct {
			URI string `json:"uri"`
		} `json:"textDocument"`
	}
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	path := uriToPath(params.TextDocument.URI)
	gs := s.handler.FinalGS()

	var fileID ast.FileID
	for _, id := range gs.NormalFiles() {
		if gs.Path(id) == path {
			fileID = id
			break
		}
	}

	symbols := s.handler.DocumentSymbols(s.rootURI, fileID)
	data, err := json.Marshal(symbols)
	if err != nil {
		return err
	}
	s.reply(msg.ID, data, nil)
	return nil
}

// publishDiagnostics is wired to EditHandler.Publish; it encodes and sends
// one textDocument/publishDiagnostics notification per touched file.
func (s *Server) publishDiagnostics(fileID ast.FileID, diags []diag.Diagnostic) {
	gs := s.handler.FinalGS()
	encoded := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		encoded = append(encoded, EncodeDiagnostic(gs, s.rootURI, d))
	}
	diagnosticsPublished.Add(float64(len(encoded)))

	params, err := json.Marshal(PublishDiagnosticsParams{
		URI:         topLevelURI(gs, s.rootURI, fileID, gs.Kind(fileID)),
		Diagnostics: encoded,
	})
	if err != nil {
		log.Printf("lsp[%s]: marshal publishDiagnostics: %v", s.SessionID, err)
		return
	}
	_ = s.transport.WriteMessage(&Message{JSONRPC: "2.0", Method: "textDocument/publishDiagnostics", Params: params})
}

func uriToPath(uri string) string {
	const prefix = "file://"
	if strings.HasPrefix(uri, prefix) {
		return uri[len(prefix):]
	}
	return uri
}
