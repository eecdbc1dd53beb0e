package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oppositerush/internal/cache"
	"oppositerush/internal/model"
	"oppositerush/internal/service"
	"oppositerush/internal/transport/ws"
)

type nopGateway struct{}

func (nopGateway) SaveRoom(*model.Room) {}

func (nopGateway) UpdateRoom(*model.Room) {}

func (nopGateway) DeleteRoom(string) {}

func (nopGateway) UpdatePlayerStats(*model.Player) {}

func (nopGateway) RecordMatch(*model.MatchResult) {}

type stubLeaderboard struct {
	entries []cache.LeaderboardEntry
}

func (s *stubLeaderboard) UpdateScore(ctx context.Context, playerID, username string, score int) error {
	return nil
}

func (s *stubLeaderboard) GetTop(ctx context.Context, limit int) ([]cache.LeaderboardEntry, error) {
	if limit < len(s.entries) {
		return s.entries[:limit], nil
	}
	return s.entries, nil
}

func (s *stubLeaderboard) GetRank(ctx context.Context, playerID string) (int64, error) {
	return 1, nil
}

type stubMatchRepo struct {
	matches []*model.MatchResult
}

func (s *stubMatchRepo) Insert(ctx context.Context, m *model.MatchResult) error {
	s.matches = append(s.matches, m)
	return nil
}

func (s *stubMatchRepo) ListRecent(ctx context.Context, limit int) ([]*model.MatchResult, error) {
	return s.matches, nil
}

func (s *stubMatchRepo) ListByPlayer(ctx context.Context, playerID string, limit int) ([]*model.MatchResult, error) {
	return s.matches, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zerolog.Nop()
	authSvc := service.NewAuthService()
	hub := ws.NewHub(logger)
	rooms := service.NewRoomManager(hub, nopGateway{}, authSvc, logger)

	srv := httptest.NewServer(NewRouter(&Container{
		AuthService: authSvc,
		RoomManager: rooms,
		Leaderboard: &stubLeaderboard{entries: []cache.LeaderboardEntry{
			{PlayerID: "p_1", Username: "alice", Score: 4200, Rank: 1},
		}},
		MatchRepo: &stubMatchRepo{},
		WSHandler: ws.NewHandler(hub, rooms, authSvc, logger),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestRouter_CreateAndJoinRoom(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/rooms", model.CreateRoomRequest{
		Username:   "alice",
		MaxPlayers: 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.JoinResponse
	decode(t, resp, &created)
	assert.Len(t, created.RoomID, 6)
	assert.NotEmpty(t, created.Token)

	resp = postJSON(t, srv.URL+"/v1/rooms/"+created.RoomID+"/join", model.JoinRoomRequest{Username: "bob"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var joined model.JoinResponse
	decode(t, resp, &joined)
	assert.Equal(t, created.RoomID, joined.RoomID)

	// The room is now full.
	resp = postJSON(t, srv.URL+"/v1/rooms/"+created.RoomID+"/join", model.JoinRoomRequest{Username: "carol"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRouter_GetRoom(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/rooms", model.CreateRoomRequest{Username: "alice"})
	var created model.JoinResponse
	decode(t, resp, &created)

	resp, err := http.Get(srv.URL + "/v1/rooms/" + created.RoomID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var meta model.RoomMeta
	decode(t, resp, &meta)
	assert.Equal(t, created.RoomID, meta.ID)

	resp, err = http.Get(srv.URL + "/v1/rooms/ZZZZZZ")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ListPublicRooms(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/rooms", model.CreateRoomRequest{Username: "alice"})
	var created model.JoinResponse
	decode(t, resp, &created)

	resp, err := http.Get(srv.URL + "/v1/rooms")
	require.NoError(t, err)
	var list struct {
		Rooms []model.RoomMeta `json:"rooms"`
	}
	decode(t, resp, &list)
	require.Len(t, list.Rooms, 1)
	assert.Equal(t, created.RoomID, list.Rooms[0].ID)
}

func TestRouter_LeaveRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/rooms", model.CreateRoomRequest{Username: "alice"})
	var created model.JoinResponse
	decode(t, resp, &created)

	// No token.
	resp = postJSON(t, srv.URL+"/v1/rooms/"+created.RoomID+"/leave", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Host token authorizes the leave.
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/rooms/"+created.RoomID+"/leave", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+created.Token)
	authed, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer authed.Body.Close()
	assert.Equal(t, http.StatusOK, authed.StatusCode)
}

func TestRouter_LeaderboardAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/leaderboard")
	require.NoError(t, err)
	var lb struct {
		Entries []cache.LeaderboardEntry `json:"entries"`
	}
	decode(t, resp, &lb)
	require.Len(t, lb.Entries, 1)
	assert.Equal(t, "alice", lb.Entries[0].Username)

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
