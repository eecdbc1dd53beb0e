package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oppositerush/internal/model"
)

func holdingPlayer(types ...model.PowerUpType) *model.Player {
	p := &model.Player{ID: "p1", Username: "kira", Lives: 3}
	for i, t := range types {
		p.PowerUps = append(p.PowerUps, model.PowerUp{ID: string(rune('a' + i)), Type: t})
	}
	return p
}

func TestActivatePowerUp_NotHeld(t *testing.T) {
	t.Parallel()
	p := holdingPlayer(model.PowerUpShield)

	_, err := ActivatePowerUp(p, model.PowerUpMindReader, time.Now())
	assert.ErrorIs(t, err, ErrPowerUpNotHeld)
	assert.Len(t, p.PowerUps, 1, "failed activation must not consume anything")
}

func TestActivatePowerUp_UnknownTypeNotConsumed(t *testing.T) {
	t.Parallel()
	// A stale persisted power-up with a type this build does not know.
	bogus := model.PowerUpType("time-warp")
	p := holdingPlayer(bogus)

	_, err := ActivatePowerUp(p, bogus, time.Now())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPowerUpNotHeld)
	assert.Len(t, p.PowerUps, 1, "unknown type must not consume the item")
	assert.Empty(t, p.Modifiers)
}

func TestActivatePowerUp_SingleUse(t *testing.T) {
	t.Parallel()
	p := holdingPlayer(model.PowerUpShield)
	now := time.Now()

	_, err := ActivatePowerUp(p, model.PowerUpShield, now)
	require.NoError(t, err)
	assert.Empty(t, p.PowerUps)

	_, err = ActivatePowerUp(p, model.PowerUpShield, now)
	assert.ErrorIs(t, err, ErrPowerUpNotHeld)
}

func TestActivatePowerUp_ShieldCapsLives(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		lives     int
		wantLives int
	}{
		{"below cap", 3, 4},
		{"at cap", 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := holdingPlayer(model.PowerUpShield)
			p.Lives = tt.lives
			_, err := ActivatePowerUp(p, model.PowerUpShield, time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.wantLives, p.Lives)
		})
	}
}

func TestActivatePowerUp_TimedModifiers(t *testing.T) {
	t.Parallel()
	now := time.Now()
	for _, typ := range []model.PowerUpType{
		model.PowerUpScoreMultiplier,
		model.PowerUpSpeedBoost,
		model.PowerUpLifeSteal,
		model.PowerUpTimeFreeze,
		model.PowerUpMindReader,
	} {
		t.Run(string(typ), func(t *testing.T) {
			p := holdingPlayer(typ)
			effect, err := ActivatePowerUp(p, typ, now)
			require.NoError(t, err)
			assert.NotEmpty(t, effect)

			m := p.ActiveModifier(typ, now)
			require.NotNil(t, m, "modifier should be active immediately")
			assert.Nil(t, p.ActiveModifier(typ, now.Add(11*time.Second)), "modifier should expire")
		})
	}
}

func TestPruneModifiers(t *testing.T) {
	t.Parallel()
	now := time.Now()
	p := holdingPlayer(model.PowerUpScoreMultiplier, model.PowerUpSpeedBoost)
	_, err := ActivatePowerUp(p, model.PowerUpScoreMultiplier, now.Add(-time.Minute))
	require.NoError(t, err)
	_, err = ActivatePowerUp(p, model.PowerUpSpeedBoost, now)
	require.NoError(t, err)

	p.PruneModifiers(now)
	require.Len(t, p.Modifiers, 1)
	assert.Equal(t, model.PowerUpSpeedBoost, p.Modifiers[0].Type)
}
