package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"oppositerush/internal/game"
	"oppositerush/internal/model"
	"oppositerush/internal/service"
	"oppositerush/internal/transport/rest/middleware"
)

// RoomHandler serves the room lifecycle endpoints.
type RoomHandler struct {
	rooms *service.RoomManager
}

// NewRoomHandler creates a new room handler.
func NewRoomHandler(rooms *service.RoomManager) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// Create handles POST /v1/rooms.
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.rooms.CreateRoom(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /v1/rooms, returning public joinable rooms only.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rooms": h.rooms.ListPublicRooms(r.Context()),
	})
}

// Get handles GET /v1/rooms/{id}.
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	room, err := h.rooms.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	meta, err := room.Meta(r.Context())
	if err != nil {
		writeError(w, http.StatusNotFound, game.ErrRoomNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

// Join handles POST /v1/rooms/{id}/join.
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req model.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.rooms.JoinRoom(r.Context(), id, &req)
	if err != nil {
		writeError(w, joinStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Leave handles POST /v1/rooms/{id}/leave, the REST fallback for a
// client whose WebSocket is already gone.
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	playerID := middleware.GetPlayerID(r.Context())
	if middleware.GetRoomID(r.Context()) != id {
		writeError(w, http.StatusForbidden, "token not valid for this room")
		return
	}

	room, err := h.rooms.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := room.Leave(r.Context(), playerID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "left"})
}

func joinStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrWrongPassword):
		return http.StatusForbidden
	case errors.Is(err, game.ErrRoomFull), errors.Is(err, game.ErrGameStarted):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// limitParam parses ?limit= with a default and a hard cap.
func limitParam(r *http.Request, def, max int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
