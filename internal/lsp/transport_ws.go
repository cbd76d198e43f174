package lsp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
)

// WebSocketTransport is the alternate transport for clients that speak the
// same JSON-RPC envelope over a websocket connection instead of framed
// stdio. Each websocket text frame carries exactly one Message; there is
// no Content-Length header, since the websocket frame itself already
// delimits the message.
type WebSocketTransport struct {
	conn *websocket.Conn
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1 << 20,
	WriteBufferSize: 1 << 20,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// UpgradeWebSocketTransport upgrades an incoming HTTP request to a
// websocket connection and wraps it as a Transport.
func UpgradeWebSocketTransport(w http.ResponseWriter, r *http.Request) (*WebSocketTransport, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("lsp: websocket upgrade failed: %w", err)
	}
	return &WebSocketTransport{conn: conn}, nil
}

// NewWebSocketTransport wraps an already-established websocket connection,
// e.g. one dialed by a test client.
func NewWebSocketTransport(conn *websocket.Conn) *WebSocketTransport {
	return &WebSocketTransport{conn: conn}
}

// ReadMessage blocks for the next text frame and decodes it as a Message.
func (t *WebSocketTransport) ReadMessage() (*Message, error) {
	_, data, err := t.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("lsp: malformed JSON body: %w", err)
	}
	return &msg, nil
}

// WriteMessage encodes msg and sends it as a single text frame.
func (t *WebSocketTransport) WriteMessage(msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("lsp: failed to marshal message: %w", err)
	}
	return t.conn.WriteMessage(websocket.TextMessage, data)
}

// Close closes the underlying connection.
func (t *WebSocketTransport) Close() error {
	return t.conn.Close()
}
