package model

// InstructionType defines the kind of stimulus shown to players
type InstructionType string

const (
	InstructionDirection InstructionType = "direction"
	InstructionColor     InstructionType = "color"
	InstructionAction    InstructionType = "action"
	InstructionCombo     InstructionType = "combo" // color x direction
)

// Direction is a closed enum of the four movement stimuli
type Direction string

const (
	DirectionUp    Direction = "UP"
	DirectionDown  Direction = "DOWN"
	DirectionLeft  Direction = "LEFT"
	DirectionRight Direction = "RIGHT"
)

// Directions lists every direction in canonical order
var Directions = []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

// Color is a closed enum of the four color stimuli
type Color string

const (
	ColorRed    Color = "RED"
	ColorBlue   Color = "BLUE"
	ColorGreen  Color = "GREEN"
	ColorYellow Color = "YELLOW"
)

// Colors lists every color in canonical order
var Colors = []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow}

// Action is a closed enum of the three action stimuli
type Action string

const (
	ActionStop Action = "STOP"
	ActionGo   Action = "GO"
	ActionWait Action = "WAIT"
)

// Actions lists every action in canonical order
var Actions = []Action{ActionStop, ActionGo, ActionWait}

// Instruction is a single challenge shown to every player in a round.
// It is immutable once generated; exactly one instruction is current
// per room per round.
//
// CorrectAnswer is empty for color instructions: those accept any color
// except the named one and the displayed one, so acceptance is
// set-membership against AcceptableAnswers rather than equality.
type Instruction struct {
	ID                string          `json:"id" bson:"id"`
	Type              InstructionType `json:"type" bson:"type"`
	Display           string          `json:"display" bson:"display"`
	DisplayColor      Color           `json:"displayColor,omitempty" bson:"displayColor,omitempty"` // color the text is rendered in
	CorrectAnswer     string          `json:"correctAnswer,omitempty" bson:"correctAnswer,omitempty"`
	AcceptableAnswers []string        `json:"acceptableAnswers" bson:"acceptableAnswers"`
	TimeLimitMs       int             `json:"timeLimitMs" bson:"timeLimitMs"`
}

// Accepts reports whether the submitted answer is in the acceptable set.
func (i *Instruction) Accepts(answer string) bool {
	for _, a := range i.AcceptableAnswers {
		if a == answer {
			return true
		}
	}
	return false
}
