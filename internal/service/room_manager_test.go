package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oppositerush/internal/game"
	"oppositerush/internal/model"
)

type nopBroadcaster struct{}

func (nopBroadcaster) ToRoom(roomID, event string, payload interface{}) {}

func (nopBroadcaster) ToPlayer(roomID, playerID, event string, payload interface{}) {}

type recordingGateway struct {
	mu      sync.Mutex
	saved   []string
	deleted []string
}

func (g *recordingGateway) SaveRoom(room *model.Room) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saved = append(g.saved, room.ID)
}

func (g *recordingGateway) UpdateRoom(room *model.Room) {}

func (g *recordingGateway) DeleteRoom(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleted = append(g.deleted, id)
}

func (g *recordingGateway) UpdatePlayerStats(p *model.Player) {}

func (g *recordingGateway) RecordMatch(m *model.MatchResult) {}

func newTestManager() (*RoomManager, *recordingGateway) {
	gw := &recordingGateway{}
	m := NewRoomManager(nopBroadcaster{}, gw, NewAuthService(), zerolog.Nop())
	return m, gw
}

func TestCreateRoom_IssuesHostCredentials(t *testing.T) {
	m, gw := newTestManager()
	ctx := context.Background()

	resp, err := m.CreateRoom(ctx, &model.CreateRoomRequest{Username: "alice"})
	require.NoError(t, err)

	assert.Len(t, resp.RoomID, 6)
	assert.NotEmpty(t, resp.PlayerID)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 1, resp.Room.PlayersCount)
	assert.Equal(t, model.RoomWaiting, resp.Room.Status)

	// The token is room-scoped and valid.
	claims, err := m.authSvc.ValidatePlayerToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.RoomID, claims.RoomID)
	assert.Equal(t, resp.PlayerID, claims.PlayerID)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Equal(t, []string{resp.RoomID}, gw.saved)
}

func TestCreateRoom_RequiresUsername(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.CreateRoom(context.Background(), &model.CreateRoomRequest{})
	assert.Error(t, err)
}

func TestCreateRoom_SuddenDeathSingleLife(t *testing.T) {
	m, _ := newTestManager()
	resp, err := m.CreateRoom(context.Background(), &model.CreateRoomRequest{
		Username: "alice",
		GameMode: model.ModeSuddenDeath,
	})
	require.NoError(t, err)

	room, err := m.Get(resp.RoomID)
	require.NoError(t, err)
	snap, err := room.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Lives)
	require.Len(t, snap.Players, 1)
	assert.Equal(t, 1, snap.Players[0].Lives)
}

func TestJoinRoom_RoutesToActor(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	created, err := m.CreateRoom(ctx, &model.CreateRoomRequest{Username: "alice", MaxPlayers: 2})
	require.NoError(t, err)

	joined, err := m.JoinRoom(ctx, created.RoomID, &model.JoinRoomRequest{Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, created.RoomID, joined.RoomID)
	assert.NotEqual(t, created.PlayerID, joined.PlayerID)
	assert.Equal(t, 2, joined.Room.PlayersCount)

	// Third seat does not exist.
	_, err = m.JoinRoom(ctx, created.RoomID, &model.JoinRoomRequest{Username: "carol"})
	assert.ErrorIs(t, err, game.ErrRoomFull)
}

func TestJoinRoom_UnknownRoom(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.JoinRoom(context.Background(), "ZZZZZZ", &model.JoinRoomRequest{Username: "bob"})
	assert.ErrorIs(t, err, game.ErrRoomNotFound)
}

func TestListPublicRooms_FiltersPrivateAndStarted(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	pub, err := m.CreateRoom(ctx, &model.CreateRoomRequest{Username: "alice"})
	require.NoError(t, err)
	_, err = m.CreateRoom(ctx, &model.CreateRoomRequest{
		Username:  "bob",
		IsPrivate: true,
		Password:  "hunter2",
	})
	require.NoError(t, err)

	rooms := m.ListPublicRooms(ctx)
	require.Len(t, rooms, 1)
	assert.Equal(t, pub.RoomID, rooms[0].ID)
}

func TestRoomClose_RemovesFromRegistry(t *testing.T) {
	m, gw := newTestManager()
	ctx := context.Background()

	created, err := m.CreateRoom(ctx, &model.CreateRoomRequest{Username: "alice"})
	require.NoError(t, err)

	room, err := m.Get(created.RoomID)
	require.NoError(t, err)
	require.NoError(t, room.Leave(ctx, created.PlayerID))

	// The actor closes asynchronously and unhooks itself.
	require.Eventually(t, func() bool {
		_, err := m.Get(created.RoomID)
		return err != nil
	}, 2*time.Second, 10*time.Millisecond)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Contains(t, gw.deleted, created.RoomID)
}
