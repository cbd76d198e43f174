package lsp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/internal/lsp"
	"github.com/vellum-lang/vellum/internal/pipeline"
)

// fakeTransport drives a Server directly from a queue of inbound messages
// and records everything the server writes back, without any real byte
// framing.
type fakeTransport struct {
	inbound  []*lsp.Message
	pos      int
	outbound []*lsp.Message
}

func (f *fakeTransport) ReadMessage() (*lsp.Message, error) {
	if f.pos >= len(f.inbound) {
		return nil, errEOF
	}
	msg := f.inbound[f.pos]
	f.pos++
	return msg, nil
}

func (f *fakeTransport) WriteMessage(msg *lsp.Message) error {
	f.outbound = append(f.outbound, msg)
	return nil
}

func (f *fakeTransport) Close() error { return nil }

type sentinelError struct{ msg string }

func (e *sentinelError) Error() string { return e.msg }

var errEOF = &sentinelError{"fakeTransport: no more messages"}

func rawID(n int) json.RawMessage {
	data, _ := json.Marshal(n)
	return data
}

func TestServerRespondsToInitialize(t *testing.T) {
	transport := &fakeTransport{inbound: []*lsp.Message{
		{JSONRPC: "2.0", ID: rawID(1), Method: "initialize", Params: json.RawMessage(`{"rootUri":"file:///workspace"}`)},
	}}
	server := lsp.NewServer(transport, pipeline.NewDefault(), nil, nil)
	err := server.Serve(context.Background())
	require.ErrorIs(t, err, errEOF)

	require.Len(t, transport.outbound, 1)
	require.Nil(t, transport.outbound[0].Error)
}

func TestServerExitStopsTheLoop(t *testing.T) {
	transport := &fakeTransport{inbound: []*lsp.Message{
		{JSONRPC: "2.0", Method: "exit"},
		{JSONRPC: "2.0", ID: rawID(2), Method: "shutdown"},
	}}
	server := lsp.NewServer(transport, pipeline.NewDefault(), nil, nil)
	err := server.Serve(context.Background())
	require.NoError(t, err)
	require.Empty(t, transport.outbound)
}

func TestServerUnsupportedMethodRepliesMethodNotFound(t *testing.T) {
	transport := &fakeTransport{inbound: []*lsp.Message{
		{JSONRPC: "2.0", ID: rawID(1), Method: "textDocument/hover"},
	}}
	server := lsp.NewServer(transport, pipeline.NewDefault(), nil, nil)
	err := server.Serve(context.Background())
	require.ErrorIs(t, err, errEOF)

	require.Len(t, transport.outbound, 1)
	require.NotNil(t, transport.outbound[0].Error)
	require.Equal(t, lsp.ErrCodeMethodNotFound, transport.outbound[0].Error.Code)
}

func TestServerDidChangePublishesDiagnostics(t *testing.T) {
	params, _ := json.Marshal(map[string]any{
		"textDocument":   map[string]string{"uri": "file:///workspace/foo.rb"},
		"contentChanges": []map[string]string{{"text": "class Foo\nend\n\nmodule Foo\nend\n"}},
	})
	transport := &fakeTransport{inbound: []*lsp.Message{
		{JSONRPC: "2.0", Method: "initialize", Params: json.RawMessage(`{"rootUri":"file:///workspace"}`)},
		{JSONRPC: "2.0", Method: "textDocument/didChange", Params: params},
	}}
	server := lsp.NewServer(transport, pipeline.NewDefault(), nil, nil)
	err := server.Serve(context.Background())
	require.ErrorIs(t, err, errEOF)

	var published []*lsp.Message
	for _, m := range transport.outbound {
		if m.Method == "textDocument/publishDiagnostics" {
			published = append(published, m)
		}
	}
	require.Len(t, published, 1)

	var diagParams lsp.PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(published[0].Params, &diagParams))
	require.Len(t, diagParams.Diagnostics, 1)
}

func TestServerDidChangeIgnoresURIOutsideRoot(t *testing.T) {
	params, _ := json.Marshal(map[string]any{
		"textDocument":   map[string]string{"uri": "file:///elsewhere/foo.rb"},
		"contentChanges": []map[string]string{{"text": "class Foo\nend\n"}},
	})
	transport := &fakeTransport{inbound: []*lsp.Message{
		{JSONRPC: "2.0", Method: "initialize", Params: json.RawMessage(`{"rootUri":"file:///workspace"}`)},
		{JSONRPC: "2.0", Method: "textDocument/didChange", Params: params},
	}}
	server := lsp.NewServer(transport, pipeline.NewDefault(), nil, nil)
	err := server.Serve(context.Background())
	require.ErrorIs(t, err, errEOF)

	require.Empty(t, server.Handler().FinalGS().AllSymbols())
}

func TestServerInitializedRunsFullIndex(t *testing.T) {
	transport := &fakeTransport{inbound: []*lsp.Message{
		{JSONRPC: "2.0", Method: "initialize", Params: json.RawMessage(`{"rootUri":"file:///workspace"}`)},
		{JSONRPC: "2.0", Method: "initialized"},
	}}
	server := lsp.NewServer(transport, pipeline.NewDefault(), []string{"foo.rb"}, nil)
	server.Handler().ReadFile = func(path string) (string, error) {
		require.Equal(t, "foo.rb", path)
		return "class Foo\nend\n", nil
	}

	err := server.Serve(context.Background())
	require.ErrorIs(t, err, errEOF)

	symbols := server.Handler().FinalGS().AllSymbols()
	require.Len(t, symbols, 1)
	require.Equal(t, "Foo", symbols[0].Sym.Name)
}

func TestServerPublishesPayloadFileDiagnosticWithBarePathURI(t *testing.T) {
	transport := &fakeTransport{inbound: []*lsp.Message{
		{JSONRPC: "2.0", Method: "initialize", Params: json.RawMessage(`{"rootUri":"file:///workspace"}`)},
		{JSONRPC: "2.0", Method: "initialized"},
	}}
	server := lsp.NewServer(transport, pipeline.NewDefault(), []string{"app.rb"}, []string{"core/widget.rbi"})
	server.Handler().ReadFile = func(path string) (string, error) {
		switch path {
		case "app.rb":
			return "module Widget\nend\n", nil
		case "core/widget.rbi":
			return "class Widget\nend\n", nil
		default:
			t.Fatalf("unexpected path %q", path)
			return "", nil
		}
	}

	err := server.Serve(context.Background())
	require.ErrorIs(t, err, errEOF)

	var published []lsp.PublishDiagnosticsParams
	for _, m := range transport.outbound {
		if m.Method != "textDocument/publishDiagnostics" {
			continue
		}
		var p lsp.PublishDiagnosticsParams
		require.NoError(t, json.Unmarshal(m.Params, &p))
		if len(p.Diagnostics) > 0 {
			published = append(published, p)
		}
	}
	require.Len(t, published, 1)
	require.Equal(t, "core/widget.rbi", published[0].URI)
}

func TestServerDidChangeWatchedFilesBatchesReadFile(t *testing.T) {
	watchedParams, _ := json.Marshal(map[string]any{
		"changes": []map[string]any{
			{"uri": "file:///workspace/a.rb", "type": 1},
			{"uri": "file:///workspace/b.rb", "type": 1},
		},
	})
	replyResult, _ := json.Marshal([]map[string]string{
		{"uri": "file:///workspace/a.rb", "content": "class Foo\nend\n"},
		{"uri": "file:///workspace/b.rb", "content": "class Bar\nend\n"},
	})
	replyID, _ := json.Marshal("ruby-typer-req-1")
	transport := &fakeTransport{inbound: []*lsp.Message{
		{JSONRPC: "2.0", Method: "initialize", Params: json.RawMessage(`{"rootUri":"file:///workspace"}`)},
		{JSONRPC: "2.0", Method: "workspace/didChangeWatchedFiles", Params: watchedParams},
		{JSONRPC: "2.0", ID: replyID, Result: replyResult},
	}}
	server := lsp.NewServer(transport, pipeline.NewDefault(), nil, nil)
	err := server.Serve(context.Background())
	require.ErrorIs(t, err, errEOF)

	var readFileReqs []*lsp.Message
	for _, m := range transport.outbound {
		if m.Method == "ReadFile" {
			readFileReqs = append(readFileReqs, m)
		}
	}
	require.Len(t, readFileReqs, 1)

	var reqParams struct {
		URIs []string `json:"uris"`
	}
	require.NoError(t, json.Unmarshal(readFileReqs[0].Params, &reqParams))
	require.ElementsMatch(t, []string{"file:///workspace/a.rb", "file:///workspace/b.rb"}, reqParams.URIs)

	var names []string
	for _, s := range server.Handler().FinalGS().AllSymbols() {
		names = append(names, s.Sym.Name)
	}
	require.ElementsMatch(t, []string{"Foo", "Bar"}, names)
}
