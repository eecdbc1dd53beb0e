package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"oppositerush/internal/model"
	"oppositerush/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	intentTimeout = 5 * time.Second

	// intentRate caps how fast one connection may fire intents; a game
	// client has no legitimate reason to exceed this.
	intentRate  = rate.Limit(20)
	intentBurst = 40
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced at the REST layer
	},
}

// Handler upgrades player WebSocket connections and routes their
// intents to the owning room actor.
type Handler struct {
	hub     *Hub
	rooms   *service.RoomManager
	authSvc *service.AuthService
	log     zerolog.Logger
}

// NewHandler creates a new WebSocket handler.
func NewHandler(hub *Hub, rooms *service.RoomManager, authSvc *service.AuthService, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:     hub,
		rooms:   rooms,
		authSvc: authSvc,
		log:     logger.With().Str("component", "ws-handler").Logger(),
	}
}

// PlayerWS handles GET /v1/ws/rooms/{id}. The join token travels as a
// query param because browsers cannot set headers on WebSocket dials.
func (h *Handler) PlayerWS(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]
	token := r.URL.Query().Get("token")

	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	claims, err := h.authSvc.ValidatePlayerToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if claims.RoomID != roomID {
		http.Error(w, "token not valid for this room", http.StatusForbidden)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}

	conn := &Connection{
		RoomID:   roomID,
		PlayerID: claims.PlayerID,
		Send:     make(chan []byte, 256),
		Hub:      h.hub,
	}
	h.hub.Register(conn)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)

	h.sendRoomSnapshot(conn)
}

// sendRoomSnapshot greets the newly connected player with the full
// room state, so reconnecting clients can rebuild their view.
func (h *Handler) sendRoomSnapshot(conn *Connection) {
	room, err := h.rooms.Get(conn.RoomID)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), intentTimeout)
	defer cancel()

	snap, err := room.Snapshot(ctx)
	if err != nil {
		return
	}
	h.hub.ToPlayer(conn.RoomID, conn.PlayerID, model.EventRoomJoined, snap)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	limiter := rate.NewLimiter(intentRate, intentBurst)

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Debug().Err(err).Str("player", conn.PlayerID).Msg("read error")
			}
			return
		}
		if !limiter.Allow() {
			h.sendError(conn, "too many messages")
			continue
		}

		var intent model.Intent
		if err := json.Unmarshal(data, &intent); err != nil {
			h.sendError(conn, "malformed intent")
			continue
		}
		if err := h.dispatch(conn, &intent); err != nil {
			h.sendError(conn, err.Error())
		}
	}
}

// dispatch routes one intent into the room actor. Validation errors
// come back as error events on this connection only.
func (h *Handler) dispatch(conn *Connection, intent *model.Intent) error {
	room, err := h.rooms.Get(conn.RoomID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), intentTimeout)
	defer cancel()

	switch intent.Type {
	case model.IntentReady:
		return room.Ready(ctx, conn.PlayerID)

	case model.IntentStartBattle:
		return room.StartBattle(ctx, conn.PlayerID)

	case model.IntentSubmitAnswer:
		var p model.SubmitAnswerIntent
		if err := json.Unmarshal(intent.Payload, &p); err != nil {
			return errMalformedPayload
		}
		return room.SubmitAnswer(ctx, conn.PlayerID, p.Answer, p.ReactionTimeMs)

	case model.IntentActivatePowerUp:
		var p model.ActivatePowerUpIntent
		if err := json.Unmarshal(intent.Payload, &p); err != nil {
			return errMalformedPayload
		}
		return room.ActivatePowerUp(ctx, conn.PlayerID, p.PowerUpType)

	case model.IntentPauseGame:
		return room.Pause(ctx, conn.PlayerID)

	case model.IntentResumeGame:
		return room.Resume(ctx, conn.PlayerID)

	case model.IntentLeaveRoom:
		return room.Leave(ctx, conn.PlayerID)

	case model.IntentKickPlayer:
		var p model.KickPlayerIntent
		if err := json.Unmarshal(intent.Payload, &p); err != nil {
			return errMalformedPayload
		}
		return room.Kick(ctx, p.PlayerID, conn.PlayerID)

	case model.IntentUpdateSettings:
		var p model.UpdateSettingsIntent
		if err := json.Unmarshal(intent.Payload, &p); err != nil {
			return errMalformedPayload
		}
		return room.UpdateSettings(ctx, conn.PlayerID, p.Settings)

	default:
		return errUnknownIntent
	}
}

func (h *Handler) sendError(conn *Connection, message string) {
	h.hub.ToPlayer(conn.RoomID, conn.PlayerID, model.EventError, model.ErrorEvent{Message: message})
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
