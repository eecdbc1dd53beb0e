package engine

import (
	"fmt"

	"oppositerush/internal/model"
)

const (
	// MinLevel and MaxLevel bound the difficulty curve.
	MinLevel = 1
	MaxLevel = 30

	// maxRegenAttempts bounds anti-repetition retries. On exhaustion the
	// repeated instruction is accepted so generation always terminates.
	maxRegenAttempts = 5

	// historyWindow is how many prior instructions the generator keeps.
	// Only the immediately preceding display matters for repetition, the
	// rest is kept for pattern-pressure heuristics.
	historyWindow = 8
)

var oppositeDirections = map[model.Direction]model.Direction{
	model.DirectionUp:    model.DirectionDown,
	model.DirectionDown:  model.DirectionUp,
	model.DirectionLeft:  model.DirectionRight,
	model.DirectionRight: model.DirectionLeft,
}

var oppositeColors = map[model.Color]model.Color{
	model.ColorRed:    model.ColorBlue,
	model.ColorBlue:   model.ColorRed,
	model.ColorGreen:  model.ColorYellow,
	model.ColorYellow: model.ColorGreen,
}

// WAIT has no mirror in the closed three-action set; its opposite is GO.
var oppositeActions = map[model.Action]model.Action{
	model.ActionStop: model.ActionGo,
	model.ActionGo:   model.ActionStop,
	model.ActionWait: model.ActionGo,
}

// OppositeDirection maps a direction to its opposite. The map is total
// over the closed enum; anything else is an error.
func OppositeDirection(d model.Direction) (model.Direction, error) {
	o, ok := oppositeDirections[d]
	if !ok {
		return "", fmt.Errorf("no opposite for direction %q", d)
	}
	return o, nil
}

// OppositeColor maps a color to its opposite.
func OppositeColor(c model.Color) (model.Color, error) {
	o, ok := oppositeColors[c]
	if !ok {
		return "", fmt.Errorf("no opposite for color %q", c)
	}
	return o, nil
}

// OppositeAction maps an action to its opposite.
func OppositeAction(a model.Action) (model.Action, error) {
	o, ok := oppositeActions[a]
	if !ok {
		return "", fmt.Errorf("no opposite for action %q", a)
	}
	return o, nil
}

// levelConfig drives generation at one difficulty level.
type levelConfig struct {
	timeLimitMs   int
	types         []model.InstructionType
	stroop        bool    // display color may differ from the named color
	stroopChance  float64
	reverse       bool    // "Don't ..." phrasing flips the instruction
	reverseChance float64
}

// LevelConfigFor returns the generation table entry for a level,
// clamping out-of-range input into [MinLevel, MaxLevel].
func LevelConfigFor(level int) levelConfig {
	level = ClampLevel(level)

	cfg := levelConfig{
		// 3s at level 1, shrinking 75ms per level, floored at 900ms.
		timeLimitMs: maxInt(900, 3000-(level-1)*75),
		types:       []model.InstructionType{model.InstructionDirection},
	}
	if level >= 5 {
		cfg.types = append(cfg.types, model.InstructionColor)
	}
	if level >= 12 {
		cfg.types = append(cfg.types, model.InstructionAction)
	}
	if level >= 16 {
		cfg.types = append(cfg.types, model.InstructionCombo)
	}
	if level >= 8 {
		cfg.stroop = true
		cfg.stroopChance = 0.3 + float64(level-8)*0.02
		if cfg.stroopChance > 0.8 {
			cfg.stroopChance = 0.8
		}
	}
	if level >= 20 {
		cfg.reverse = true
		cfg.reverseChance = 0.15 + float64(level-20)*0.02
	}
	return cfg
}

// ClampLevel forces a level into [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// Generator produces the instruction stream for one room. It keeps a
// short history purely for anti-repetition; it holds no room state.
type Generator struct {
	rng     *RNG
	history []model.Instruction
	seq     int
}

// NewGenerator returns a generator over a fresh RNG with the given seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: NewRNG(seed)}
}

// Reset reseeds the generator and clears its history.
func (g *Generator) Reset(seed uint64) {
	g.rng.Reset(seed)
	g.history = nil
	g.seq = 0
}

// Next generates the instruction for the given level. A candidate whose
// display text exactly matches the previous instruction's is rejected
// and regenerated up to maxRegenAttempts times, then accepted anyway.
// An optional allowed set further restricts the level-gated types.
func (g *Generator) Next(level int, allowed ...model.InstructionType) model.Instruction {
	cfg := LevelConfigFor(level)
	cfg.types = restrictTypes(cfg.types, allowed)

	ins := g.generate(cfg)
	for attempt := 0; attempt < maxRegenAttempts && g.repeatsLast(ins); attempt++ {
		ins = g.generate(cfg)
	}

	ensureAcceptable(&ins)

	g.history = append(g.history, ins)
	if len(g.history) > historyWindow {
		g.history = g.history[len(g.history)-historyWindow:]
	}
	return ins
}

// Sequence generates n consecutive instructions at a fixed level.
func (g *Generator) Sequence(level, n int) []model.Instruction {
	out := make([]model.Instruction, n)
	for i := range out {
		out[i] = g.Next(level)
	}
	return out
}

func (g *Generator) repeatsLast(ins model.Instruction) bool {
	if len(g.history) == 0 {
		return false
	}
	return g.history[len(g.history)-1].Display == ins.Display
}

func (g *Generator) nextID() string {
	g.seq++
	return fmt.Sprintf("ins_%d", g.seq)
}

func (g *Generator) generate(cfg levelConfig) model.Instruction {
	switch Pick(g.rng, cfg.types) {
	case model.InstructionColor:
		return g.generateColor(cfg)
	case model.InstructionAction:
		return g.generateAction(cfg)
	case model.InstructionCombo:
		return g.generateCombo(cfg)
	default:
		return g.generateDirection(cfg)
	}
}

func (g *Generator) generateDirection(cfg levelConfig) model.Instruction {
	d := Pick(g.rng, model.Directions)
	opp, _ := OppositeDirection(d)

	ins := model.Instruction{
		ID:            g.nextID(),
		Type:          model.InstructionDirection,
		Display:       string(d),
		CorrectAnswer: string(opp),
		TimeLimitMs:   cfg.timeLimitMs,
	}
	// Reverse phrasing flips the instruction itself, not the answer:
	// the opposite of "Don't go UP" is going UP.
	if cfg.reverse && g.rng.Chance(cfg.reverseChance) {
		ins.Display = "Don't go " + string(d)
		ins.CorrectAnswer = string(d)
	}
	ins.AcceptableAnswers = []string{ins.CorrectAnswer}
	return ins
}

func (g *Generator) generateAction(cfg levelConfig) model.Instruction {
	a := Pick(g.rng, model.Actions)
	opp, _ := OppositeAction(a)

	ins := model.Instruction{
		ID:            g.nextID(),
		Type:          model.InstructionAction,
		Display:       string(a),
		CorrectAnswer: string(opp),
		TimeLimitMs:   cfg.timeLimitMs,
	}
	if cfg.reverse && g.rng.Chance(cfg.reverseChance) {
		ins.Display = "Don't " + string(a)
		ins.CorrectAnswer = string(a)
	}
	ins.AcceptableAnswers = []string{ins.CorrectAnswer}
	return ins
}

// generateColor builds a Stroop-style color challenge. There is no
// single correct answer: every color except the named one and the
// displayed one is acceptable.
func (g *Generator) generateColor(cfg levelConfig) model.Instruction {
	named := Pick(g.rng, model.Colors)
	displayed := named
	if cfg.stroop && g.rng.Chance(cfg.stroopChance) {
		others := make([]model.Color, 0, len(model.Colors)-1)
		for _, c := range model.Colors {
			if c != named {
				others = append(others, c)
			}
		}
		displayed = Pick(g.rng, others)
	}

	return model.Instruction{
		ID:                g.nextID(),
		Type:              model.InstructionColor,
		Display:           string(named),
		DisplayColor:      displayed,
		AcceptableAnswers: colorExclusionSet(named, displayed),
		TimeLimitMs:       cfg.timeLimitMs,
	}
}

func (g *Generator) generateCombo(cfg levelConfig) model.Instruction {
	c := Pick(g.rng, model.Colors)
	d := Pick(g.rng, model.Directions)
	oc, _ := OppositeColor(c)
	od, _ := OppositeDirection(d)

	answer := string(oc) + " " + string(od)
	return model.Instruction{
		ID:                g.nextID(),
		Type:              model.InstructionCombo,
		Display:           string(c) + " " + string(d),
		CorrectAnswer:     answer,
		AcceptableAnswers: []string{answer},
		TimeLimitMs:       cfg.timeLimitMs,
	}
}

// restrictTypes intersects the level-gated types with a host-chosen
// allowed set, preserving gated order. An empty allowed set, or an
// intersection the level has not unlocked anything from, keeps the
// full gated set so generation never stalls.
func restrictTypes(gated, allowed []model.InstructionType) []model.InstructionType {
	if len(allowed) == 0 {
		return gated
	}
	out := make([]model.InstructionType, 0, len(gated))
	for _, t := range gated {
		for _, a := range allowed {
			if t == a {
				out = append(out, t)
				break
			}
		}
	}
	if len(out) == 0 {
		return gated
	}
	return out
}

// colorExclusionSet returns all colors except the named and the
// displayed one, in canonical order.
func colorExclusionSet(named, displayed model.Color) []string {
	out := make([]string, 0, len(model.Colors))
	for _, c := range model.Colors {
		if c != named && c != displayed {
			out = append(out, string(c))
		}
	}
	return out
}

// ensureAcceptable is the last-resort invariant check: an instruction
// must never leave the generator with an empty acceptable set. If it is
// empty the set is rebuilt from the opposite-mapping tables.
func ensureAcceptable(ins *model.Instruction) {
	if len(ins.AcceptableAnswers) > 0 {
		return
	}
	switch ins.Type {
	case model.InstructionColor:
		for _, c := range model.Colors {
			if string(c) != ins.Display {
				ins.AcceptableAnswers = append(ins.AcceptableAnswers, string(c))
			}
		}
	default:
		if ins.CorrectAnswer != "" {
			ins.AcceptableAnswers = []string{ins.CorrectAnswer}
			return
		}
		opp, _ := OppositeDirection(model.DirectionUp)
		ins.CorrectAnswer = string(opp)
		ins.AcceptableAnswers = []string{ins.CorrectAnswer}
	}
}

// DefaultInstruction is the degradation fallback: a plain direction
// challenge that can never stall a round.
func DefaultInstruction() model.Instruction {
	return model.Instruction{
		ID:                "ins_fallback",
		Type:              model.InstructionDirection,
		Display:           string(model.DirectionUp),
		CorrectAnswer:     string(model.DirectionDown),
		AcceptableAnswers: []string{string(model.DirectionDown)},
		TimeLimitMs:       3000,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
