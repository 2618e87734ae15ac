package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WardEvent is one message pushed to connected dashboard clients.
type WardEvent struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
	At      time.Time   `json:"at"`
}

// WardFeed broadcasts admission, discharge and appointment events to
// dashboard clients over websockets. Clients are write-only; inbound frames
// are drained and discarded.
type WardFeed struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewWardFeed creates an empty feed hub.
func NewWardFeed() *WardFeed {
	return &WardFeed{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: map[*websocket.Conn]struct{}{},
	}
}

// SubscribeHandler upgrades the connection and registers the client.
func (f *WardFeed) SubscribeHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("failed to upgrade ward feed connection", "error", err)
		return
	}
	f.mu.Lock()
	f.clients[conn] = struct{}{}
	f.mu.Unlock()
	zap.S().Debugw("ward feed client connected", "remote", conn.RemoteAddr().String())

	go f.drain(conn)
}

func (f *WardFeed) drain(conn *websocket.Conn) {
	defer f.remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *WardFeed) remove(conn *websocket.Conn) {
	f.mu.Lock()
	delete(f.clients, conn)
	f.mu.Unlock()
	_ = conn.Close()
}

// Broadcast pushes an event to every connected client. Failed writes drop
// the client.
func (f *WardFeed) Broadcast(event string, payload interface{}) {
	msg := WardEvent{Event: event, Payload: payload, At: time.Now()}

	f.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(f.clients))
	for c := range f.clients {
		conns = append(conns, c)
	}
	f.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(msg); err != nil {
			zap.S().Debugw("dropping ward feed client", "error", err)
			f.remove(c)
		}
	}
}
