package engine

import (
	"errors"
	"fmt"
	"time"

	"oppositerush/internal/model"
)

// ErrPowerUpNotHeld is returned when a player activates a power-up type
// they do not currently hold.
var ErrPowerUpNotHeld = errors.New("power-up not held")

const (
	// maxLives caps shield stacking.
	maxLives = 5

	// modifierDuration is the window in which timed power-up effects are
	// consulted by scoring and the round actor.
	modifierDuration = 10 * time.Second
)

// ActivatePowerUp consumes one held power-up of the given type and
// applies its effect to the player. Shield acts immediately; the timed
// kinds record a modifier that submitAnswer consults while it lasts.
// Mind-reader and time-freeze carry no enforced mechanic yet; they only
// record the modifier and report their effect text.
func ActivatePowerUp(p *model.Player, t model.PowerUpType, now time.Time) (string, error) {
	idx := p.HoldsPowerUp(t)
	if idx < 0 {
		return "", ErrPowerUpNotHeld
	}

	var effect string
	switch t {
	case model.PowerUpShield:
		if p.Lives < maxLives {
			p.Lives++
		}
		effect = fmt.Sprintf("+1 life (%d/%d)", p.Lives, maxLives)

	case model.PowerUpScoreMultiplier:
		p.Modifiers = append(p.Modifiers, model.Modifier{
			Type: t, Factor: 2.0, ExpiresAt: now.Add(modifierDuration),
		})
		effect = "2x score for 10s"

	case model.PowerUpSpeedBoost:
		p.Modifiers = append(p.Modifiers, model.Modifier{
			Type: t, Factor: 2.0, ExpiresAt: now.Add(modifierDuration),
		})
		effect = "doubled grace window for 10s"

	case model.PowerUpLifeSteal:
		p.Modifiers = append(p.Modifiers, model.Modifier{
			Type: t, ExpiresAt: now.Add(modifierDuration),
		})
		effect = "next correct answer steals a life"

	case model.PowerUpTimeFreeze:
		p.Modifiers = append(p.Modifiers, model.Modifier{
			Type: t, ExpiresAt: now.Add(modifierDuration),
		})
		effect = "time freeze"

	case model.PowerUpMindReader:
		p.Modifiers = append(p.Modifiers, model.Modifier{
			Type: t, ExpiresAt: now.Add(modifierDuration),
		})
		effect = "mind reader"

	default:
		// Unknown type leaves the held list untouched.
		return "", fmt.Errorf("unknown power-up type %q", t)
	}

	// Single use: consumed only after the type is validated and applied.
	p.PowerUps = append(p.PowerUps[:idx], p.PowerUps[idx+1:]...)
	return effect, nil
}
