// Package stream pushes game events (trades, day advances, unlocks) to websocket clients.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"financequest/src/metrics"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"
)

type EventType string

const (
	EventTradeExecuted       EventType = "trade_executed"
	EventDayAdvanced         EventType = "day_advanced"
	EventAchievementUnlocked EventType = "achievement_unlocked"
	EventStatusChanged       EventType = "status_changed"
)

// Event is a JSON message sent to websocket clients.
type Event struct {
	Type   EventType   `json:"type"`
	GameID string      `json:"gameId"`
	At     time.Time   `json:"at"`
	Data   interface{} `json:"data,omitempty"`
}

// Publisher is what the ledger and game service depend on.
type Publisher interface {
	Publish(ev Event)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(Event) {}

type client struct {
	conn   *websocket.Conn
	gameID string
}

type message struct {
	gameID string
	data   []byte
}

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
)

// Hub fans events out to connected clients. A client connected with ?gameId=
// only receives that game's events.
type Hub struct {
	clients    map[*websocket.Conn]*client
	broadcast  chan message
	register   chan *client
	unregister chan *websocket.Conn
	done       chan struct{}
	mu         sync.RWMutex
	upgrader   websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]*client),
		broadcast:  make(chan message, 256),
		register:   make(chan *client),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
	}
}

// Run is the hub loop. It returns when ctx is done and closes every connection.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			metrics.WebSocketClients.Set(0)
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.conn] = c
			total := len(h.clients)
			h.mu.Unlock()
			metrics.WebSocketClients.Set(float64(total))
			logger.WithFields(map[string]interface{}{"component": "StreamHub", "total": total}).Debug("ws client connected")

		case conn := <-h.unregister:
			h.drop(conn)

		case msg := <-h.broadcast:
			h.mu.RLock()
			var dead []*websocket.Conn
			for conn, c := range h.clients {
				if c.gameID != "" && c.gameID != msg.gameID {
					continue
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, msg.data); err != nil {
					dead = append(dead, conn)
				}
			}
			h.mu.RUnlock()
			for _, conn := range dead {
				h.drop(conn)
			}
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
	total := len(h.clients)
	h.mu.Unlock()
	metrics.WebSocketClients.Set(float64(total))
}

// Publish queues ev for delivery. Events are dropped when the buffer is full so
// trade execution never blocks on slow clients.
func (h *Hub) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		logger.WithError(err).Warn("stream: marshal event")
		return
	}
	select {
	case h.broadcast <- message{gameID: ev.GameID, data: data}:
	default:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and registers the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithError(err).Warn("ws upgrade failed")
		return
	}

	c := &client{conn: conn, gameID: r.URL.Query().Get("gameId")}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go func() {
		defer func() {
			select {
			case h.unregister <- conn:
			case <-h.done:
			}
		}()
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for range ticker.C {
			h.mu.RLock()
			_, ok := h.clients[conn]
			h.mu.RUnlock()
			if !ok {
				return
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}()
}
