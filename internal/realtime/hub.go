// Package realtime broadcasts generation events to connected clients
// over WebSocket, narrowed from the teacher's multiplayer room hub (join
// room, cell update, race/relay turns, chat, reactions) down to the one
// event this spec's domain stack actually produces: a new puzzle landing
// in the archive. There is no collaborative-solving surface left to
// drive the rest of the teacher's message types.
package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/crossplay/mcwgen/pkg/puzzle"
)

// MessageType identifies the kind of payload carried by a Message.
type MessageType string

// MsgPuzzleGenerated is the sole server-to-client event this hub emits:
// a new puzzle was produced by the generate endpoint.
const MsgPuzzleGenerated MessageType = "puzzle_generated"

// Message is the WebSocket envelope every broadcast uses.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// PuzzleGeneratedPayload carries the generated puzzle's public summary.
type PuzzleGeneratedPayload struct {
	ID          string `json:"id"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	GeneratedAt string `json:"generatedAt"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one connected WebSocket subscriber.
type Client struct {
	conn *websocket.Conn
	Send chan []byte
}

// Hub fans out broadcasts to every connected Client. There are no rooms:
// every client receives every event.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates an empty, ready-to-run Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run drives client (un)registration. It must run in its own goroutine
// for the lifetime of the process.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastPuzzleGenerated notifies every connected client that p was
// just generated, per SPEC_FULL.md's server domain stack.
func (h *Hub) BroadcastPuzzleGenerated(p *puzzle.Puzzle) {
	payload, err := json.Marshal(PuzzleGeneratedPayload{
		ID:          p.ID,
		Width:       p.Width,
		Height:      p.Height,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("realtime: marshal puzzle_generated payload: %v", err)
		return
	}
	h.broadcast(MsgPuzzleGenerated, payload)
}

func (h *Hub) broadcast(msgType MessageType, payload json.RawMessage) {
	data, err := json.Marshal(Message{Type: msgType, Payload: payload})
	if err != nil {
		log.Printf("realtime: marshal message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer: drop rather than block the broadcaster.
		}
	}
}

// ServeWs upgrades an HTTP request to a WebSocket connection and
// registers it with the hub for the connection's lifetime.
func ServeWs(h *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("realtime: upgrade failed: %v", err)
		return
	}

	client := &Client{conn: conn, Send: make(chan []byte, 16)}
	h.register <- client

	go client.writePump(h)
	go client.readPump(h)
}

// readPump discards inbound traffic (clients only subscribe, they never
// publish) but must still run to surface disconnects to gorilla/websocket.
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump(h *Hub) {
	defer c.conn.Close()
	for data := range c.Send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
