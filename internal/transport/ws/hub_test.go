package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, c *Connection) *Message {
	t.Helper()
	select {
	case data, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return &msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func connect(h *Hub, roomID, playerID string) *Connection {
	c := &Connection{
		RoomID:   roomID,
		PlayerID: playerID,
		Send:     make(chan []byte, 16),
		Hub:      h,
	}
	h.Register(c)
	return c
}

func TestHub_ToRoomReachesAllPlayers(t *testing.T) {
	h := NewHub(zerolog.Nop())
	alice := connect(h, "room1", "p1")
	bob := connect(h, "room1", "p2")
	outsider := connect(h, "room2", "p3")

	h.ToRoom("room1", "round_ended", map[string]int{"roundNumber": 3})

	for _, c := range []*Connection{alice, bob} {
		msg := recv(t, c)
		assert.Equal(t, "round_ended", msg.Type)
	}
	select {
	case <-outsider.Send:
		t.Fatal("message leaked into another room")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_ToPlayerTargetsOneConnection(t *testing.T) {
	h := NewHub(zerolog.Nop())
	alice := connect(h, "room1", "p1")
	bob := connect(h, "room1", "p2")

	h.ToPlayer("room1", "p1", "powerup_awarded", nil)

	msg := recv(t, alice)
	assert.Equal(t, "powerup_awarded", msg.Type)
	select {
	case <-bob.Send:
		t.Fatal("targeted message reached another player")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_ReconnectReplacesSession(t *testing.T) {
	h := NewHub(zerolog.Nop())
	first := connect(h, "room1", "p1")
	second := connect(h, "room1", "p1")

	// The stale session's channel is closed; the new one receives.
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-first.Send:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	h.ToPlayer("room1", "p1", "player_ready", nil)
	msg := recv(t, second)
	assert.Equal(t, "player_ready", msg.Type)
}

func TestHub_UnregisterDropsConnection(t *testing.T) {
	h := NewHub(zerolog.Nop())
	alice := connect(h, "room1", "p1")
	h.Unregister(alice)

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-alice.Send:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	// Broadcasting into the now-empty room is a no-op, not a panic.
	h.ToRoom("room1", "round_ended", nil)
}
