package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"glinski/internal/glinski"
)

const (
	sendBuffer = 32
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Message is the wire form of a game event.
type Message struct {
	Game   string         `json:"game"`
	Kind   string         `json:"kind"`
	From   *glinski.Coord `json:"from,omitempty"`
	To     *glinski.Coord `json:"to,omitempty"`
	Piece  string         `json:"piece,omitempty"`
	Color  string         `json:"color,omitempty"`
	Status string         `json:"status,omitempty"`
}

func coordOf(sq glinski.Square) *glinski.Coord {
	if !sq.Valid() {
		return nil
	}
	c := sq.Coord()
	return &c
}

func NewMessage(id string, e glinski.Event) Message {
	m := Message{
		Game: id,
		Kind: string(e.Kind),
		From: coordOf(e.From),
		To:   coordOf(e.To),
	}
	if e.Piece != glinski.Empty {
		m.Piece = e.Piece.Kind().String()
	}
	if e.Color != glinski.NoColor {
		m.Color = e.Color.String()
	}
	if e.Kind == glinski.EventGameOver {
		m.Status = e.Status.String()
	}
	return m
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans game events out to the websocket clients watching each game.
type Hub struct {
	mu       sync.Mutex
	clients  map[string]map[*client]struct{}
	upgrader websocket.Upgrader
}

// NewHub accepts connections whose Origin passes checkOrigin; nil keeps the
// websocket default of same-origin only.
func NewHub(checkOrigin func(*http.Request) bool) *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Publish never blocks: a client whose buffer is full is dropped.
func (h *Hub) Publish(id string, e glinski.Event) {
	data, err := json.Marshal(NewMessage(id, e))
	if err != nil {
		log.Printf("ws: encode event: %v", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[id] {
		select {
		case c.send <- data:
		default:
			h.removeLocked(id, c)
		}
	}
}

// Subscribers counts the open connections for a game.
func (h *Hub) Subscribers(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[id])
}

// CloseGame disconnects everyone watching id.
func (h *Hub) CloseGame(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[id] {
		h.removeLocked(id, c)
	}
}

func (h *Hub) removeLocked(id string, c *client) {
	set, ok := h.clients[id]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, id)
	}
}

func (h *Hub) remove(id string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(id, c)
}

// Serve upgrades the request and streams events of game id until the peer
// goes away. The caller checks that the game exists.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, id string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		log.Printf("ws: upgrade: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	if h.clients[id] == nil {
		h.clients[id] = make(map[*client]struct{})
	}
	h.clients[id][c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()
	go func() {
		c.readPump()
		h.remove(id, c)
	}()
}

// readPump discards client messages; it only exists to notice close and
// answer pings.
func (c *client) readPump() {
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
