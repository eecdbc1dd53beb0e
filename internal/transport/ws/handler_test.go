package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oppositerush/internal/model"
	"oppositerush/internal/service"
)

type nopGateway struct{}

func (nopGateway) SaveRoom(*model.Room) {}

func (nopGateway) UpdateRoom(*model.Room) {}

func (nopGateway) DeleteRoom(string) {}

func (nopGateway) UpdatePlayerStats(*model.Player) {}

func (nopGateway) RecordMatch(*model.MatchResult) {}

func TestHandler_ConnectDeliversRoomSnapshot(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	authSvc := service.NewAuthService()
	rooms := service.NewRoomManager(hub, nopGateway{}, authSvc, zerolog.Nop())
	h := NewHandler(hub, rooms, authSvc, zerolog.Nop())

	resp, err := rooms.CreateRoom(context.Background(), &model.CreateRoomRequest{Username: "alice"})
	require.NoError(t, err)

	conn := connect(hub, resp.RoomID, resp.PlayerID)
	h.sendRoomSnapshot(conn)

	msg := recv(t, conn)
	require.Equal(t, model.EventRoomJoined, msg.Type)

	var room model.Room
	require.NoError(t, json.Unmarshal(msg.Payload, &room))
	assert.Equal(t, resp.RoomID, room.ID)
	require.Len(t, room.Players, 1)
	assert.Equal(t, resp.PlayerID, room.Players[0].ID)
}

func TestHandler_SnapshotSkippedForUnknownRoom(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	authSvc := service.NewAuthService()
	rooms := service.NewRoomManager(hub, nopGateway{}, authSvc, zerolog.Nop())
	h := NewHandler(hub, rooms, authSvc, zerolog.Nop())

	conn := connect(hub, "NOROOM", "p1")
	h.sendRoomSnapshot(conn)

	select {
	case data := <-conn.Send:
		t.Fatalf("unexpected message for unknown room: %s", data)
	default:
	}
}
