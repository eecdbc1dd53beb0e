package game

import (
	"context"
	"time"

	"oppositerush/internal/model"
)

// command is a message into the room actor's inbox. All room state is
// mutated by the actor goroutine only, so command handling is
// linearizable by construction.
type command interface{}

type joinCmd struct {
	username string
	password string
	reply    chan joinReply
}

type joinReply struct {
	player *model.Player
	meta   model.RoomMeta
	err    error
}

type readyCmd struct {
	playerID string
	reply    chan error
}

type startCmd struct {
	playerID string
	reply    chan error
}

type submitCmd struct {
	playerID   string
	answer     string
	reactionMs float64
	reply      chan error
}

type activateCmd struct {
	playerID string
	powerUp  model.PowerUpType
	reply    chan error
}

type pauseCmd struct {
	playerID string
	reply    chan error
}

type resumeCmd struct {
	playerID string
	reply    chan error
}

type leaveCmd struct {
	playerID string
	reply    chan error
}

type kickCmd struct {
	targetID string
	byID     string
	reply    chan error
}

type settingsCmd struct {
	playerID string
	settings model.RoomSettings
	reply    chan error
}

type metaCmd struct {
	reply chan model.RoomMeta
}

type snapshotCmd struct {
	reply chan *model.Room
}

// timerCmd is posted by an armed timer. gen is the round generation the
// timer was armed for; a mismatch marks it stale and it is dropped
// without touching the newer round's state.
type timerCmd struct {
	gen int
}

// Join asks the actor to admit a new player.
func (r *Room) Join(ctx context.Context, username, password string) (*model.Player, model.RoomMeta, error) {
	reply := make(chan joinReply, 1)
	if err := r.send(ctx, joinCmd{username: username, password: password, reply: reply}); err != nil {
		return nil, model.RoomMeta{}, err
	}
	select {
	case res := <-reply:
		return res.player, res.meta, res.err
	case <-ctx.Done():
		return nil, model.RoomMeta{}, ctx.Err()
	case <-r.done:
		return nil, model.RoomMeta{}, ErrRoomClosed
	}
}

// Ready marks a player ready.
func (r *Room) Ready(ctx context.Context, playerID string) error {
	reply := make(chan error, 1)
	if err := r.send(ctx, readyCmd{playerID: playerID, reply: reply}); err != nil {
		return err
	}
	return r.await(ctx, reply)
}

// StartBattle begins the countdown. Host only.
func (r *Room) StartBattle(ctx context.Context, playerID string) error {
	reply := make(chan error, 1)
	if err := r.send(ctx, startCmd{playerID: playerID, reply: reply}); err != nil {
		return err
	}
	return r.await(ctx, reply)
}

// SubmitAnswer grades one player's answer for the current round.
func (r *Room) SubmitAnswer(ctx context.Context, playerID, answer string, reactionMs float64) error {
	reply := make(chan error, 1)
	if err := r.send(ctx, submitCmd{playerID: playerID, answer: answer, reactionMs: reactionMs, reply: reply}); err != nil {
		return err
	}
	return r.await(ctx, reply)
}

// ActivatePowerUp consumes a held power-up.
func (r *Room) ActivatePowerUp(ctx context.Context, playerID string, t model.PowerUpType) error {
	reply := make(chan error, 1)
	if err := r.send(ctx, activateCmd{playerID: playerID, powerUp: t, reply: reply}); err != nil {
		return err
	}
	return r.await(ctx, reply)
}

// Pause freezes the current round. Host only.
func (r *Room) Pause(ctx context.Context, playerID string) error {
	reply := make(chan error, 1)
	if err := r.send(ctx, pauseCmd{playerID: playerID, reply: reply}); err != nil {
		return err
	}
	return r.await(ctx, reply)
}

// Resume re-arms the frozen remainder of the round timer. Host only.
func (r *Room) Resume(ctx context.Context, playerID string) error {
	reply := make(chan error, 1)
	if err := r.send(ctx, resumeCmd{playerID: playerID, reply: reply}); err != nil {
		return err
	}
	return r.await(ctx, reply)
}

// Leave removes a player from the room.
func (r *Room) Leave(ctx context.Context, playerID string) error {
	reply := make(chan error, 1)
	if err := r.send(ctx, leaveCmd{playerID: playerID, reply: reply}); err != nil {
		return err
	}
	return r.await(ctx, reply)
}

// Kick removes a player on the host's behalf.
func (r *Room) Kick(ctx context.Context, targetID, byID string) error {
	reply := make(chan error, 1)
	if err := r.send(ctx, kickCmd{targetID: targetID, byID: byID, reply: reply}); err != nil {
		return err
	}
	return r.await(ctx, reply)
}

// UpdateSettings replaces the room settings while still waiting.
func (r *Room) UpdateSettings(ctx context.Context, playerID string, s model.RoomSettings) error {
	reply := make(chan error, 1)
	if err := r.send(ctx, settingsCmd{playerID: playerID, settings: s, reply: reply}); err != nil {
		return err
	}
	return r.await(ctx, reply)
}

// Meta returns the lightweight listing projection of the room.
func (r *Room) Meta(ctx context.Context) (model.RoomMeta, error) {
	reply := make(chan model.RoomMeta, 1)
	if err := r.send(ctx, metaCmd{reply: reply}); err != nil {
		return model.RoomMeta{}, err
	}
	select {
	case m := <-reply:
		return m, nil
	case <-ctx.Done():
		return model.RoomMeta{}, ctx.Err()
	case <-r.done:
		return model.RoomMeta{}, ErrRoomClosed
	}
}

// Snapshot returns a copy of the room state safe to read outside the
// actor goroutine.
func (r *Room) Snapshot(ctx context.Context) (*model.Room, error) {
	reply := make(chan *model.Room, 1)
	if err := r.send(ctx, snapshotCmd{reply: reply}); err != nil {
		return nil, err
	}
	select {
	case s := <-reply:
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.done:
		return nil, ErrRoomClosed
	}
}

func (r *Room) send(ctx context.Context, cmd command) error {
	select {
	case r.inbox <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return ErrRoomClosed
	}
}

func (r *Room) await(ctx context.Context, reply chan error) error {
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return ErrRoomClosed
	}
}

// post delivers an internally generated message (timer expiry) without
// ever blocking a foreign goroutine on a closed room.
func (r *Room) post(cmd command) {
	select {
	case r.inbox <- cmd:
	case <-r.done:
	}
}

// sleeper is what a scheduled timer must support; *time.Timer satisfies
// it. Tests substitute a manual implementation.
type sleeper interface {
	Stop() bool
}

func defaultTimerFactory(d time.Duration, fn func()) sleeper {
	return time.AfterFunc(d, fn)
}
