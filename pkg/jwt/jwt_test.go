package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	userID := uuid.New()
	societyID := uuid.New()

	token, err := GenerateAccessToken(userID, societyID, "user@example.com", "resident", "secret", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, societyID, claims.SocietyID)
	require.Equal(t, "user@example.com", claims.Email)
	require.Equal(t, "resident", claims.Role)
	require.Equal(t, userID.String(), claims.Subject)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), uuid.New(), "user@example.com", "resident", "secret", time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	require.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), uuid.New(), "user@example.com", "resident", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret")
	require.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateRefreshToken(userID, "refresh-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, "refresh-secret")
	require.NoError(t, err)
	require.Equal(t, userID.String(), claims.Subject)
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	// Разные секреты для access и refresh
	token, err := GenerateRefreshToken(uuid.New(), "refresh-secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "access-secret")
	require.Error(t, err)
}
