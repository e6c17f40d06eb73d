package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	rerrors "github.com/raptor-dev/raptor/internal/errors"
	"github.com/raptor-dev/raptor/pkg/vtree"
)

// MessageType is the type of a WebSocket message.
type MessageType string

const (
	// MessageRender asks the server to render Doc. Sent by clients.
	MessageRender MessageType = "render"

	// MessageHTML answers a render request.
	MessageHTML MessageType = "html"

	// MessageError answers a failed or malformed request.
	MessageError MessageType = "error"

	// MessageReload tells clients that File changed on disk.
	MessageReload MessageType = "reload"
)

// Message is exchanged with WebSocket clients as JSON.
type Message struct {
	Type MessageType `json:"type"`

	// ID is echoed back in the reply to a render request.
	ID string `json:"id,omitempty"`

	// Doc is the YAML or JSON document source of a render request.
	Doc    string `json:"doc,omitempty"`
	Pretty bool   `json:"pretty,omitempty"`

	HTML  string               `json:"html,omitempty"`
	File  string               `json:"file,omitempty"`
	Error *rerrors.RaptorError `json:"error,omitempty"`
}

// writeWait bounds a single WebSocket write.
const writeWait = 10 * time.Second

// client is one connection. Writes are serialized because replies and
// broadcasts happen on different goroutines.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub manages WebSocket connections for render requests and reloads.
type Hub struct {
	server   *Server
	clients  map[*client]struct{}
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

func newHub(s *Server) *Hub {
	return &Hub{
		server:  s,
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the connection and answers render requests until
// the client disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	conn.SetReadLimit(h.server.config.MaxBodySize)

	c := &client{conn: conn}
	h.add(c)
	defer h.remove(c)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		reply := h.handle(r.Context(), data)
		out, err := json.Marshal(reply)
		if err != nil {
			h.server.logger.Error("encode reply", zap.Error(err))
			continue
		}
		if err := c.write(out); err != nil {
			return
		}
	}
}

// handle answers one client message.
func (h *Hub) handle(ctx context.Context, data []byte) Message {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{
			Type:  MessageError,
			Error: rerrors.Newf(rerrors.CategoryDocument, "malformed message: %v", err),
		}
	}
	if msg.Type != MessageRender {
		return Message{
			Type:  MessageError,
			ID:    msg.ID,
			Error: rerrors.Newf(rerrors.CategoryDocument, "unsupported message type %q", msg.Type),
		}
	}

	html, err := h.server.render(ctx, sourceWS, func() (*vtree.Document, error) {
		return vtree.Parse([]byte(msg.Doc))
	}, msg.Pretty)
	if err != nil {
		return Message{Type: MessageError, ID: msg.ID, Error: rerrors.FromError(err)}
	}
	return Message{Type: MessageHTML, ID: msg.ID, HTML: html}
}

// NotifyReload tells every client that file changed.
func (h *Hub) NotifyReload(file string) {
	h.server.metrics.reloadsTotal.Inc()
	h.broadcast(Message{Type: MessageReload, File: file})
}

// broadcast sends a message to all connected clients, dropping clients
// that cannot be written to.
func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(data); err != nil {
			h.remove(c)
		}
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.server.metrics.wsClients.Inc()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		h.server.metrics.wsClients.Dec()
		c.conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.remove(c)
	}
}
