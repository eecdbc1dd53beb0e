// Package game implements the per-room round engine. Each room is one
// actor goroutine that owns all mutable room state; intents and timer
// expiries arrive through a single inbox channel, which makes the
// "all answered" vs "time expired" race linearizable without locks.
package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"oppositerush/internal/engine"
	"oppositerush/internal/model"
)

const (
	// DefaultCountdownMs is the pre-battle countdown duration.
	DefaultCountdownMs = 3000

	// DefaultMaxRounds ends the game when the round counter passes it.
	DefaultMaxRounds = 10

	// powerUpStreakStep awards a random power-up every N combo answers.
	powerUpStreakStep = 3
)

// Broadcaster delivers outbound events. Implemented by the WebSocket
// hub; faked in tests.
type Broadcaster interface {
	ToRoom(roomID, event string, payload interface{})
	ToPlayer(roomID, playerID, event string, payload interface{})
}

// Gateway is the narrow persistence surface the actor consumes. Every
// call is best-effort and must return promptly; gameplay never blocks
// on storage.
type Gateway interface {
	SaveRoom(room *model.Room)
	UpdateRoom(room *model.Room)
	DeleteRoom(id string)
	UpdatePlayerStats(p *model.Player)
	RecordMatch(m *model.MatchResult)
}

// Config wires a room actor's collaborators.
type Config struct {
	Broadcaster Broadcaster
	Gateway     Gateway
	Logger      zerolog.Logger
	Seed        uint64
	CountdownMs int64
	OnClose     func(roomID string)
}

// Room is one room actor. Everything below inbox/done is owned by the
// actor goroutine.
type Room struct {
	inbox chan command
	done  chan struct{}

	state    *model.Room
	scoring  engine.ScoringConfig
	gen      *engine.Generator
	awardRNG *engine.RNG

	broadcaster Broadcaster
	gateway     Gateway
	log         zerolog.Logger
	onClose     func(roomID string)
	newTimer    func(d time.Duration, fn func()) sleeper

	current       *model.Instruction
	level         int
	answered      map[string]bool
	roundGen      int
	roundDeadline time.Time
	remaining     time.Duration
	battleStart   time.Time
	countdownMs   int64
	timer         sleeper
	readyLatch    bool
	closing       bool
}

// New builds a room actor around an initial state. The creator is
// expected to already be in state.Players as the ready host.
func New(state *model.Room, cfg Config) *Room {
	if state.Settings.MaxRounds <= 0 {
		state.Settings.MaxRounds = DefaultMaxRounds
	}
	countdown := cfg.CountdownMs
	if countdown <= 0 {
		countdown = DefaultCountdownMs
	}
	return &Room{
		inbox:       make(chan command, 256),
		done:        make(chan struct{}),
		state:       state,
		scoring:     engine.DefaultScoringConfig(),
		gen:         engine.NewGenerator(cfg.Seed),
		awardRNG:    engine.NewRNG(cfg.Seed + 1),
		broadcaster: cfg.Broadcaster,
		gateway:     cfg.Gateway,
		log:         cfg.Logger.With().Str("room", state.ID).Logger(),
		onClose:     cfg.OnClose,
		newTimer:    defaultTimerFactory,
		countdownMs: countdown,
		answered:    map[string]bool{},
	}
}

// ID returns the immutable room id.
func (r *Room) ID() string { return r.state.ID }

// Run is the actor loop. It exits when the room closes. done is closed
// here, after the closing command's reply has been delivered, so a
// caller whose command killed the room still gets its answer.
func (r *Room) Run() {
	for {
		select {
		case cmd := <-r.inbox:
			r.dispatch(cmd)
			if r.closing {
				close(r.done)
				return
			}
		case <-r.done:
			return
		}
	}
}

func (r *Room) dispatch(cmd command) {
	switch c := cmd.(type) {
	case joinCmd:
		p, meta, err := r.handleJoin(c.username, c.password)
		c.reply <- joinReply{player: p, meta: meta, err: err}
	case readyCmd:
		c.reply <- r.handleReady(c.playerID)
	case startCmd:
		c.reply <- r.handleStart(c.playerID)
	case submitCmd:
		c.reply <- r.handleSubmit(c.playerID, c.answer, c.reactionMs)
	case activateCmd:
		c.reply <- r.handleActivate(c.playerID, c.powerUp)
	case pauseCmd:
		c.reply <- r.handlePause(c.playerID)
	case resumeCmd:
		c.reply <- r.handleResume(c.playerID)
	case leaveCmd:
		c.reply <- r.handleLeave(c.playerID)
	case kickCmd:
		c.reply <- r.handleKick(c.targetID, c.byID)
	case settingsCmd:
		c.reply <- r.handleSettings(c.playerID, c.settings)
	case metaCmd:
		c.reply <- r.meta()
	case snapshotCmd:
		c.reply <- r.cloneState()
	case timerCmd:
		r.handleTimer(c)
	}
}

func (r *Room) handleJoin(username, password string) (*model.Player, model.RoomMeta, error) {
	if r.state.Status != model.RoomWaiting {
		return nil, model.RoomMeta{}, ErrGameStarted
	}
	if r.state.IsPrivate && r.state.Password != password {
		return nil, model.RoomMeta{}, ErrWrongPassword
	}
	if len(r.state.Players) >= r.state.MaxPlayers {
		return nil, model.RoomMeta{}, ErrRoomFull
	}

	p := NewPlayer(username, false, r.state.Lives)
	r.state.Players = append(r.state.Players, p)
	// A new arrival voids any earlier all-ready signal.
	r.readyLatch = false

	r.broadcaster.ToRoom(r.state.ID, model.EventPlayerJoined, p.Stats(false))
	r.gateway.UpdateRoom(r.cloneState())
	r.log.Info().Str("player", p.ID).Str("username", username).Msg("player joined")
	return p, r.meta(), nil
}

func (r *Room) handleReady(playerID string) error {
	p := r.state.FindPlayer(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if r.state.Status != model.RoomWaiting {
		return ErrGameStarted
	}
	p.IsReady = true
	r.broadcaster.ToRoom(r.state.ID, model.EventPlayerReady, p.Stats(false))

	r.signalIfAllReady()
	return nil
}

// signalIfAllReady fires all_players_ready once per complete roster.
// Any roster change (join or leave) voids the latch, so the signal
// re-fires when the changed room is fully ready again.
func (r *Room) signalIfAllReady() {
	if len(r.state.Players) >= 2 && r.allReady() && !r.readyLatch {
		r.readyLatch = true
		r.broadcaster.ToRoom(r.state.ID, model.EventAllPlayersReady, nil)
	}
}

func (r *Room) handleStart(playerID string) error {
	p := r.state.FindPlayer(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if !p.IsHost {
		return ErrNotHost
	}
	if r.state.Status != model.RoomWaiting {
		return ErrGameStarted
	}
	if len(r.state.Players) < 2 {
		return ErrNotEnoughPlayers
	}
	if !r.allReady() {
		return ErrNotAllReady
	}

	r.state.Status = model.RoomCountdown
	r.broadcaster.ToRoom(r.state.ID, model.EventCountdownStarted, model.CountdownStartedEvent{DurationMs: r.countdownMs})
	r.armTimer(time.Duration(r.countdownMs) * time.Millisecond)
	r.gateway.UpdateRoom(r.cloneState())
	r.log.Info().Msg("countdown started")
	return nil
}

func (r *Room) handleTimer(c timerCmd) {
	if c.gen != r.roundGen {
		// A cancelled or superseded timer; never touches newer rounds.
		r.log.Debug().Int("gen", c.gen).Int("current", r.roundGen).Msg("stale timer dropped")
		return
	}
	switch r.state.Status {
	case model.RoomCountdown:
		r.beginBattle()
	case model.RoomActive:
		r.handleRoundTimeout()
	}
}

func (r *Room) beginBattle() {
	r.state.Status = model.RoomActive
	r.state.CurrentRound = 1
	r.battleStart = time.Now()
	r.startRound()
	r.broadcaster.ToRoom(r.state.ID, model.EventBattleStarted, model.BattleStartedEvent{
		Instruction: r.current,
		RoundNumber: r.state.CurrentRound,
		TimeLimitMs: r.current.TimeLimitMs,
	})
	r.gateway.UpdateRoom(r.cloneState())
	r.log.Info().Int("round", r.state.CurrentRound).Msg("battle started")
}

// startRound generates the next instruction and arms the round timer.
func (r *Room) startRound() {
	r.level = engine.ClampLevel(r.state.Settings.Difficulty + r.state.CurrentRound - 1)
	ins := r.gen.Next(r.level, r.state.Settings.AllowedTypes...)
	if len(ins.AcceptableAnswers) == 0 {
		ins = engine.DefaultInstruction()
	}
	if r.state.TimeLimitMs > 0 && r.state.TimeLimitMs < ins.TimeLimitMs {
		ins.TimeLimitMs = r.state.TimeLimitMs
	}
	r.current = &ins
	r.answered = map[string]bool{}
	r.armTimer(time.Duration(ins.TimeLimitMs) * time.Millisecond)
}

func (r *Room) handleSubmit(playerID, answer string, reactionMs float64) error {
	if r.state.Status != model.RoomActive {
		return ErrRoundNotActive
	}
	p := r.state.FindPlayer(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if p.Lives <= 0 {
		return ErrEliminated
	}
	if r.answered[playerID] {
		return ErrAlreadyAnswered
	}
	r.answered[playerID] = true

	now := time.Now()
	p.PruneModifiers(now)

	if r.current.Accepts(answer) {
		r.gradeCorrect(p, reactionMs, now)
	} else {
		r.gradeIncorrect(p, reactionMs)
	}
	r.gateway.UpdatePlayerStats(clonePlayer(p))

	if len(r.state.AlivePlayers()) <= 1 {
		r.finishGame()
		return nil
	}
	if r.allAnswered() {
		r.endRound()
	}
	return nil
}

func (r *Room) gradeCorrect(p *model.Player, reactionMs float64, now time.Time) {
	cfg := r.scoring
	if m := p.ActiveModifier(model.PowerUpSpeedBoost, now); m != nil {
		cfg.GraceWindowMs *= m.Factor
	}
	perfect := cfg.IsPerfect(reactionMs)

	p.Streak++
	p.ComboStreak++
	breakdown := cfg.Score(reactionMs, float64(r.current.TimeLimitMs), p.Streak, r.level, r.state.GameMode, perfect)
	if m := p.ActiveModifier(model.PowerUpScoreMultiplier, now); m != nil {
		breakdown.FinalScore = int(float64(breakdown.FinalScore) * m.Factor)
	}

	p.Score += breakdown.FinalScore
	p.TotalCorrect++
	if perfect {
		p.PerfectAnswers++
	}
	r.recordReaction(p, reactionMs)

	if m := p.ActiveModifier(model.PowerUpLifeSteal, now); m != nil {
		r.stealLife(p)
		m.ExpiresAt = now // consumed
	}

	r.broadcaster.ToRoom(r.state.ID, model.EventAnswerSubmitted, model.AnswerSubmittedEvent{
		PlayerID:  p.ID,
		IsCorrect: true,
		Score:     p.Score,
		Streak:    p.Streak,
		Lives:     p.Lives,
		Breakdown: &breakdown,
	})

	r.maybeAwardPowerUp(p)
	for _, a := range engine.EvaluateAchievements(p) {
		r.broadcaster.ToRoom(r.state.ID, model.EventAchievementUnlock, model.AchievementUnlockedEvent{
			PlayerID:    p.ID,
			Achievement: a,
		})
	}
}

func (r *Room) gradeIncorrect(p *model.Player, reactionMs float64) {
	p.Streak = 0
	p.ComboStreak = 0
	p.TotalIncorrect++
	if p.Lives > 0 {
		p.Lives--
	}
	r.recordReaction(p, reactionMs)

	r.broadcaster.ToRoom(r.state.ID, model.EventAnswerSubmitted, model.AnswerSubmittedEvent{
		PlayerID:  p.ID,
		IsCorrect: false,
		Score:     p.Score,
		Streak:    0,
		Lives:     p.Lives,
	})
}

func (r *Room) recordReaction(p *model.Player, reactionMs float64) {
	if reactionMs < 0 {
		reactionMs = 0
	}
	n := float64(p.TotalCorrect + p.TotalIncorrect)
	if n <= 1 {
		p.AverageMs = reactionMs
	} else {
		p.AverageMs = (p.AverageMs*(n-1) + reactionMs) / n
	}
	if reactionMs > 0 && (p.FastestMs == 0 || reactionMs < p.FastestMs) {
		p.FastestMs = reactionMs
	}
}

// stealLife moves one life from the strongest living opponent.
func (r *Room) stealLife(thief *model.Player) {
	var victim *model.Player
	for _, p := range r.state.Players {
		if p.ID == thief.ID || p.Lives <= 0 {
			continue
		}
		if victim == nil || p.Score > victim.Score {
			victim = p
		}
	}
	if victim == nil {
		return
	}
	victim.Lives--
	if thief.Lives < 5 {
		thief.Lives++
	}
	r.log.Info().Str("thief", thief.ID).Str("victim", victim.ID).Msg("life stolen")
}

func (r *Room) maybeAwardPowerUp(p *model.Player) {
	if !r.state.Settings.PowerUpsEnabled {
		return
	}
	if p.ComboStreak == 0 || p.ComboStreak%powerUpStreakStep != 0 {
		return
	}
	pu := model.PowerUp{
		ID:   "pu_" + uuid.New().String()[:8],
		Type: engine.Pick(r.awardRNG, model.PowerUpTypes),
	}
	p.PowerUps = append(p.PowerUps, pu)
	r.broadcaster.ToPlayer(r.state.ID, p.ID, model.EventPowerUpAwarded, model.PowerUpAwardedEvent{PowerUp: pu})
}

func (r *Room) handleActivate(playerID string, t model.PowerUpType) error {
	p := r.state.FindPlayer(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if !r.state.Settings.PowerUpsEnabled {
		return ErrPowerUpsDisabled
	}
	effect, err := engine.ActivatePowerUp(p, t, time.Now())
	if err != nil {
		return err
	}
	r.broadcaster.ToRoom(r.state.ID, model.EventPowerUpActivated, model.PowerUpActivatedEvent{
		PlayerID: p.ID,
		Type:     t,
		Effect:   effect,
	})
	r.gateway.UpdatePlayerStats(clonePlayer(p))
	return nil
}

// handleRoundTimeout fires when the round timer expires with answers
// still outstanding. Non-answers are graded as misses.
func (r *Room) handleRoundTimeout() {
	for _, p := range r.state.Players {
		if p.Lives <= 0 || r.answered[p.ID] {
			continue
		}
		r.answered[p.ID] = true
		r.gradeIncorrect(p, float64(r.current.TimeLimitMs))
		r.gateway.UpdatePlayerStats(clonePlayer(p))
	}
	if len(r.state.AlivePlayers()) <= 1 {
		r.finishGame()
		return
	}
	r.endRound()
}

func (r *Room) allReady() bool {
	for _, p := range r.state.Players {
		if !p.IsReady {
			return false
		}
	}
	return len(r.state.Players) > 0
}

func (r *Room) allAnswered() bool {
	for _, p := range r.state.Players {
		if p.Lives > 0 && !r.answered[p.ID] {
			return false
		}
	}
	return true
}

// endRound closes the current round and either advances or finishes.
// The timer is cancelled first so an early completion can never see a
// late "time's up" for the same round.
func (r *Room) endRound() {
	r.cancelTimer()
	ended := r.state.CurrentRound
	if ended >= r.state.Settings.MaxRounds {
		r.finishGame()
		return
	}

	r.state.CurrentRound++
	r.startRound()

	stats := make([]model.PlayerStats, 0, len(r.state.Players))
	for _, p := range r.state.Players {
		stats = append(stats, p.Stats(false))
	}
	r.broadcaster.ToRoom(r.state.ID, model.EventRoundEnded, model.RoundEndedEvent{
		RoundNumber:     ended,
		NextInstruction: r.current,
		PlayerStats:     stats,
	})
	r.gateway.UpdateRoom(r.cloneState())
}

func (r *Room) finishGame() {
	r.cancelTimer()
	r.state.Status = model.RoomFinished

	winner := r.pickWinner()
	results := r.finalScores()
	duration := int64(0)
	if !r.battleStart.IsZero() {
		duration = time.Since(r.battleStart).Milliseconds()
	}

	ev := model.GameEndedEvent{
		FinalScores: results,
		TotalRounds: r.state.CurrentRound,
		DurationMs:  duration,
	}
	match := &model.MatchResult{
		ID:          "m_" + uuid.New().String()[:8],
		RoomID:      r.state.ID,
		RoomName:    r.state.Name,
		GameMode:    r.state.GameMode,
		FinalScores: results,
		TotalRounds: r.state.CurrentRound,
		DurationMs:  duration,
		EndedAt:     time.Now(),
	}
	if winner != nil {
		res := playerResult(winner)
		ev.Winner = &res
		match.WinnerID = winner.ID
		match.WinnerName = winner.Username
	}

	r.broadcaster.ToRoom(r.state.ID, model.EventGameEnded, ev)
	for _, p := range r.state.Players {
		r.gateway.UpdatePlayerStats(clonePlayer(p))
	}
	r.gateway.UpdateRoom(r.cloneState())
	r.gateway.RecordMatch(match)
	r.log.Info().Int("rounds", r.state.CurrentRound).Msg("game ended")
	r.close()
}

// pickWinner selects among surviving players: highest score, then
// highest streak, then lowest fastest-answer time. A simultaneous
// wipe-out has no winner.
func (r *Room) pickWinner() *model.Player {
	var best *model.Player
	for _, p := range r.state.AlivePlayers() {
		if best == nil || beats(p, best) {
			best = p
		}
	}
	return best
}

func beats(a, b *model.Player) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Streak != b.Streak {
		return a.Streak > b.Streak
	}
	return fastestOf(a) < fastestOf(b)
}

func fastestOf(p *model.Player) float64 {
	if p.FastestMs == 0 {
		return float64(model.NoAnswerYet)
	}
	return p.FastestMs
}

func (r *Room) finalScores() []model.PlayerResult {
	out := make([]model.PlayerResult, 0, len(r.state.Players))
	for _, p := range r.state.Players {
		out = append(out, playerResult(p))
	}
	// Highest score first.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Score > out[j-1].Score; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func playerResult(p *model.Player) model.PlayerResult {
	return model.PlayerResult{
		PlayerID:  p.ID,
		Username:  p.Username,
		Score:     p.Score,
		Streak:    p.Streak,
		FastestMs: p.FastestMs,
		Lives:     p.Lives,
	}
}

func (r *Room) handlePause(playerID string) error {
	p := r.state.FindPlayer(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if !p.IsHost {
		return ErrNotHost
	}
	if r.state.Status != model.RoomActive {
		return ErrRoundNotActive
	}

	r.cancelTimer()
	r.remaining = time.Until(r.roundDeadline)
	if r.remaining < 0 {
		r.remaining = 0
	}
	r.state.Status = model.RoomPaused
	r.broadcaster.ToRoom(r.state.ID, model.EventGamePaused, map[string]interface{}{
		"remainingMs": r.remaining.Milliseconds(),
	})
	r.log.Info().Dur("remaining", r.remaining).Msg("game paused")
	return nil
}

func (r *Room) handleResume(playerID string) error {
	p := r.state.FindPlayer(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if !p.IsHost {
		return ErrNotHost
	}
	if r.state.Status != model.RoomPaused {
		return ErrNotPaused
	}

	r.state.Status = model.RoomActive
	// Re-arm for exactly the frozen remainder, never a fresh window.
	r.armTimer(r.remaining)
	r.broadcaster.ToRoom(r.state.ID, model.EventGameResumed, map[string]interface{}{
		"remainingMs": r.remaining.Milliseconds(),
	})
	return nil
}

func (r *Room) handleLeave(playerID string) error {
	p := r.state.FindPlayer(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	r.removePlayer(p, model.EventPlayerLeft)
	return nil
}

func (r *Room) handleKick(targetID, byID string) error {
	by := r.state.FindPlayer(byID)
	if by == nil {
		return ErrUnknownPlayer
	}
	if !by.IsHost {
		return ErrNotHost
	}
	if targetID == byID {
		return ErrKickSelf
	}
	target := r.state.FindPlayer(targetID)
	if target == nil {
		return ErrUnknownPlayer
	}

	r.broadcaster.ToPlayer(r.state.ID, targetID, model.EventKickedFromRoom, model.KickedFromRoomEvent{
		Reason: "Kicked by host",
	})
	r.removePlayer(target, model.EventPlayerLeft)
	return nil
}

func (r *Room) removePlayer(p *model.Player, event string) {
	wasHost := p.IsHost
	players := r.state.Players[:0]
	for _, q := range r.state.Players {
		if q.ID != p.ID {
			players = append(players, q)
		}
	}
	r.state.Players = players
	delete(r.answered, p.ID)
	r.readyLatch = false

	r.broadcaster.ToRoom(r.state.ID, event, p.Stats(false))
	r.log.Info().Str("player", p.ID).Msg("player removed")

	if len(r.state.Players) == 0 {
		r.gateway.DeleteRoom(r.state.ID)
		r.close()
		return
	}
	if wasHost {
		// Deterministic transfer: first remaining player in join order.
		next := r.state.Players[0]
		next.IsHost = true
		r.broadcaster.ToRoom(r.state.ID, model.EventHostChanged, next.Stats(false))
	}

	switch r.state.Status {
	case model.RoomWaiting:
		// The departure may have left a fully ready room behind.
		r.signalIfAllReady()
	case model.RoomActive:
		if len(r.state.AlivePlayers()) <= 1 {
			r.finishGame()
			return
		}
		if r.allAnswered() {
			r.endRound()
			return
		}
	}
	r.gateway.UpdateRoom(r.cloneState())
}

func (r *Room) handleSettings(playerID string, s model.RoomSettings) error {
	p := r.state.FindPlayer(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if !p.IsHost {
		return ErrNotHost
	}
	if r.state.Status != model.RoomWaiting {
		return ErrSettingsLocked
	}

	s.Difficulty = engine.ClampLevel(s.Difficulty)
	if s.MaxRounds <= 0 {
		s.MaxRounds = DefaultMaxRounds
	}
	r.state.Settings = s
	r.broadcaster.ToRoom(r.state.ID, model.EventSettingsUpdated, s)
	r.gateway.UpdateRoom(r.cloneState())
	return nil
}

func (r *Room) armTimer(d time.Duration) {
	r.cancelTimer()
	r.roundGen++
	gen := r.roundGen
	r.roundDeadline = time.Now().Add(d)
	r.timer = r.newTimer(d, func() { r.post(timerCmd{gen: gen}) })
}

func (r *Room) cancelTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// close marks the room for shutdown; the Run loop closes done once the
// current command's reply is out.
func (r *Room) close() {
	if r.closing {
		return
	}
	r.closing = true
	r.cancelTimer()
	if r.onClose != nil {
		r.onClose(r.state.ID)
	}
}

func (r *Room) meta() model.RoomMeta {
	return model.RoomMeta{
		ID:           r.state.ID,
		Name:         r.state.Name,
		Status:       r.state.Status,
		GameMode:     r.state.GameMode,
		PlayersCount: len(r.state.Players),
		MaxPlayers:   r.state.MaxPlayers,
		IsPrivate:    r.state.IsPrivate,
		CreatedAt:    r.state.CreatedAt,
	}
}

// cloneState copies the room deeply enough for readers outside the
// actor goroutine. Gateway writes run on their own goroutines, so they
// always receive clones, never the live state.
func (r *Room) cloneState() *model.Room {
	cp := *r.state
	cp.Players = make([]*model.Player, len(r.state.Players))
	for i, p := range r.state.Players {
		cp.Players[i] = clonePlayer(p)
	}
	return &cp
}

func clonePlayer(p *model.Player) *model.Player {
	q := *p
	q.PowerUps = append([]model.PowerUp(nil), p.PowerUps...)
	q.Modifiers = append([]model.Modifier(nil), p.Modifiers...)
	q.Achievements = append([]model.Achievement(nil), p.Achievements...)
	return &q
}

// NewPlayer builds a fresh participant.
func NewPlayer(username string, host bool, lives int) *model.Player {
	return &model.Player{
		ID:       "p_" + uuid.New().String()[:8],
		Username: username,
		IsHost:   host,
		IsReady:  host, // the creator is ready by definition
		Lives:    lives,
		JoinedAt: time.Now(),
	}
}

// NewRoomState builds the initial room state from a create request.
// The request is expected to be defaulted and validated already.
func NewRoomState(id string, req *model.CreateRoomRequest, host *model.Player) *model.Room {
	name := req.Name
	if name == "" {
		name = req.Username + "'s room"
	}
	return &model.Room{
		ID:          id,
		Name:        name,
		MaxPlayers:  req.MaxPlayers,
		Players:     []*model.Player{host},
		Status:      model.RoomWaiting,
		GameMode:    req.GameMode,
		TimeLimitMs: req.TimeLimitMs,
		Lives:       host.Lives,
		IsPrivate:   req.IsPrivate,
		Password:    req.Password,
		Settings: model.RoomSettings{
			Difficulty:      engine.ClampLevel(req.Difficulty),
			PowerUpsEnabled: req.PowerUpsEnabled,
			MaxRounds:       DefaultMaxRounds,
		},
		CreatedAt: time.Now(),
	}
}
