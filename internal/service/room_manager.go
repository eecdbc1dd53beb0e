package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"oppositerush/internal/game"
	"oppositerush/internal/model"
)

const (
	defaultMaxPlayers = 8
	defaultLives      = 3
)

// RoomManager owns the registry of live room actors and routes all
// room-scoped traffic to them.
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*game.Room

	broadcaster game.Broadcaster
	gateway     game.Gateway
	authSvc     *AuthService
	log         zerolog.Logger
}

// NewRoomManager creates the room registry.
func NewRoomManager(broadcaster game.Broadcaster, gateway game.Gateway, authSvc *AuthService, logger zerolog.Logger) *RoomManager {
	return &RoomManager{
		rooms:       make(map[string]*game.Room),
		broadcaster: broadcaster,
		gateway:     gateway,
		authSvc:     authSvc,
		log:         logger.With().Str("component", "rooms").Logger(),
	}
}

// CreateRoom spins up a new room actor with the creator as its ready
// host and returns the creator's credentials.
func (m *RoomManager) CreateRoom(ctx context.Context, req *model.CreateRoomRequest) (*model.JoinResponse, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	applyCreateDefaults(req)

	id, err := m.generateRoomID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate room id: %w", err)
	}
	seed, err := randomSeed()
	if err != nil {
		return nil, fmt.Errorf("failed to seed room: %w", err)
	}

	host := game.NewPlayer(req.Username, true, livesFor(req.GameMode))
	state := game.NewRoomState(id, req, host)

	room := game.New(state, game.Config{
		Broadcaster: m.broadcaster,
		Gateway:     m.gateway,
		Logger:      m.log,
		Seed:        seed,
		OnClose:     m.remove,
	})

	m.mu.Lock()
	m.rooms[id] = room
	m.mu.Unlock()
	go room.Run()

	// Persist a snapshot, never the live state the actor owns.
	if snap, err := room.Snapshot(ctx); err == nil {
		m.gateway.SaveRoom(snap)
	}

	token, err := m.authSvc.GeneratePlayerToken(id, host.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	meta, err := room.Meta(ctx)
	if err != nil {
		return nil, err
	}
	m.log.Info().Str("room", id).Str("host", host.ID).Msg("room created")
	m.broadcaster.ToRoom(id, model.EventRoomCreated, meta)

	return &model.JoinResponse{
		RoomID:   id,
		PlayerID: host.ID,
		Token:    token,
		Room:     meta,
	}, nil
}

// JoinRoom admits a player into a live room and returns their
// credentials.
func (m *RoomManager) JoinRoom(ctx context.Context, roomID string, req *model.JoinRoomRequest) (*model.JoinResponse, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	room, err := m.Get(roomID)
	if err != nil {
		return nil, err
	}

	player, meta, err := room.Join(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := m.authSvc.GeneratePlayerToken(roomID, player.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.JoinResponse{
		RoomID:   roomID,
		PlayerID: player.ID,
		Token:    token,
		Room:     meta,
	}, nil
}

// Get returns the live room actor for an id.
func (m *RoomManager) Get(roomID string) (*game.Room, error) {
	m.mu.RLock()
	room, ok := m.rooms[roomID]
	m.mu.RUnlock()
	if !ok {
		return nil, game.ErrRoomNotFound
	}
	return room, nil
}

// ListPublicRooms returns metadata for every joinable public room.
func (m *RoomManager) ListPublicRooms(ctx context.Context) []model.RoomMeta {
	m.mu.RLock()
	rooms := make([]*game.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	metas := make([]model.RoomMeta, 0, len(rooms))
	for _, r := range rooms {
		meta, err := r.Meta(ctx)
		if err != nil {
			continue // closed between listing and query
		}
		if meta.IsPrivate || meta.Status != model.RoomWaiting {
			continue
		}
		metas = append(metas, meta)
	}
	return metas
}

func (m *RoomManager) remove(roomID string) {
	m.mu.Lock()
	delete(m.rooms, roomID)
	m.mu.Unlock()
	m.log.Info().Str("room", roomID).Msg("room closed")
}

// generateRoomID creates a 6-char alphanumeric join code, skipping
// ambiguous characters.
func (m *RoomManager) generateRoomID() (string, error) {
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	const codeLen = 6

	for attempts := 0; attempts < 10; attempts++ {
		b := make([]byte, codeLen)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}

		code := make([]byte, codeLen)
		for i := range code {
			code[i] = chars[int(b[i])%len(chars)]
		}
		id := string(code)

		m.mu.RLock()
		_, taken := m.rooms[id]
		m.mu.RUnlock()
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not find a free room id")
}

func randomSeed() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func applyCreateDefaults(req *model.CreateRoomRequest) {
	if req.GameMode == "" {
		req.GameMode = model.ModeClassic
	}
	if req.MaxPlayers <= 0 || req.MaxPlayers > 16 {
		req.MaxPlayers = defaultMaxPlayers
	}
	if req.Difficulty <= 0 {
		req.Difficulty = 1
	}
}

func livesFor(mode model.GameMode) int {
	if mode == model.ModeSuddenDeath {
		return 1
	}
	return defaultLives
}
