package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerToken_RoundTrip(t *testing.T) {
	svc := NewAuthService()

	token, err := svc.GeneratePlayerToken("ABC123", "p_1234")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidatePlayerToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", claims.RoomID)
	assert.Equal(t, "p_1234", claims.PlayerID)
}

func TestPlayerToken_RejectsGarbage(t *testing.T) {
	svc := NewAuthService()

	_, err := svc.ValidatePlayerToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidatePlayerToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPlayerToken_RejectsForeignSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	issuer := NewAuthService()
	token, err := issuer.GeneratePlayerToken("ABC123", "p_1")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	verifier := NewAuthService()
	_, err = verifier.ValidatePlayerToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
