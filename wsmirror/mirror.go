// Package wsmirror is an optional diagnostic relay that mirrors every
// message an Endpoint reads or writes to connected WebSocket clients,
// the way an LSP trace viewer streams a language server's traffic.
// It is not part of the JSON-RPC wire path: the endpoint's own
// Content-Length transport is unaffected by whether a Mirror is
// attached.
package wsmirror

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Mirror broadcasts every Publish call to all currently-connected
// WebSocket clients. The zero value is not usable; construct with New.
type Mirror struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// New constructs an empty Mirror.
func New() *Mirror {
	return &Mirror{clients: make(map[*websocket.Conn]struct{})}
}

// ServeHTTP upgrades the connection and registers it as a mirror
// client until it disconnects or errors. It never reads anything
// meaningful from the client - it only needs to detect disconnection.
func (m *Mirror) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	m.mu.Lock()
	m.clients[conn] = struct{}{}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.clients, conn)
		m.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return
			}
			return
		}
	}
}

// Publish mirrors a single JSON-RPC message payload (the bytes an
// Endpoint just read or is about to write, without the Content-Length
// framing) to every connected
// client. Write failures are tolerated silently: the mirror is a
// debugging aid, never allowed to affect the primary message loop.
func (m *Mirror) Publish(payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for conn := range m.clients {
		_ = conn.WriteMessage(websocket.TextMessage, payload)
	}
}
