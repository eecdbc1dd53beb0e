package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Message is the outbound WebSocket envelope.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub manages WebSocket connections per room. It implements
// game.Broadcaster for the room actors.
type Hub struct {
	// roomID -> playerID -> conn
	conns map[string]map[string]*Connection

	mu  sync.RWMutex
	log zerolog.Logger

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *broadcastMessage
}

// Connection is one player's WebSocket session.
type Connection struct {
	RoomID   string
	PlayerID string
	Send     chan []byte
	Hub      *Hub
}

type broadcastMessage struct {
	roomID   string
	playerID string // empty means every player in the room
	message  *Message
}

// NewHub creates and starts the hub.
func NewHub(logger zerolog.Logger) *Hub {
	h := &Hub{
		conns:      make(map[string]map[string]*Connection),
		log:        logger.With().Str("component", "ws").Logger(),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *broadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.RoomID] == nil {
				h.conns[conn.RoomID] = make(map[string]*Connection)
			}
			// A reconnect replaces the old session.
			if old, ok := h.conns[conn.RoomID][conn.PlayerID]; ok {
				close(old.Send)
			}
			h.conns[conn.RoomID][conn.PlayerID] = conn
			h.mu.Unlock()
			h.log.Debug().Str("room", conn.RoomID).Str("player", conn.PlayerID).Msg("connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if players, ok := h.conns[conn.RoomID]; ok {
				if existing, ok := players[conn.PlayerID]; ok && existing == conn {
					delete(players, conn.PlayerID)
					close(conn.Send)
					if len(players) == 0 {
						delete(h.conns, conn.RoomID)
					}
				}
			}
			h.mu.Unlock()
			h.log.Debug().Str("room", conn.RoomID).Str("player", conn.PlayerID).Msg("disconnected")

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.message)
			if players, ok := h.conns[msg.roomID]; ok {
				if msg.playerID != "" {
					if conn, ok := players[msg.playerID]; ok {
						conn.trySend(data)
					}
				} else {
					for _, conn := range players {
						conn.trySend(data)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// trySend drops the message when the client's buffer is full; a slow
// reader must not block the hub.
func (c *Connection) trySend(data []byte) {
	select {
	case c.Send <- data:
	default:
	}
}

// Register adds a connection.
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection.
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// ToRoom sends an event to every player in a room.
func (h *Hub) ToRoom(roomID, event string, payload interface{}) {
	h.enqueue(roomID, "", event, payload)
}

// ToPlayer sends an event to one player.
func (h *Hub) ToPlayer(roomID, playerID, event string, payload interface{}) {
	h.enqueue(roomID, playerID, event, payload)
}

func (h *Hub) enqueue(roomID, playerID, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("payload marshal failed")
		return
	}
	h.broadcast <- &broadcastMessage{
		roomID:   roomID,
		playerID: playerID,
		message: &Message{
			Type:    event,
			Payload: data,
		},
	}
}
