package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	tok, exp, err := m.Generate("user-1", "Bidder", "sid-1")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "Bidder", claims.Role)
	require.Equal(t, "sid-1", claims.SessionID)
}

func TestJWTManager_RejectsForeignAndExpired(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	other := NewJWTManager("other", time.Hour)

	tok, _, err := other.Generate("user-1", "Bidder", "sid")
	require.NoError(t, err)
	_, err = m.Parse(tok)
	require.Error(t, err)

	expired := NewJWTManager("secret", -time.Minute)
	tok, _, err = expired.Generate("user-1", "Bidder", "sid")
	require.NoError(t, err)
	_, err = m.Parse(tok)
	require.Error(t, err)

	_, err = m.Parse("not-a-token")
	require.Error(t, err)
}
