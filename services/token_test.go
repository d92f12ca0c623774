package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkeasy/constants"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(UserInfo{UserID: 42, Role: constants.RoleUser}, 60)
	require.NoError(t, err)

	userID, role, err := GetUserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, constants.RoleUser, role)
}

func TestTokenClaimsCarryExpiry(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(UserInfo{UserID: 7, Role: constants.RoleAdmin}, 30)
	require.NoError(t, err)

	claims, err := DecodeClaims(token)
	require.NoError(t, err)
	assert.Contains(t, claims, "exp")
	assert.Contains(t, claims, "iat")

	info, ok := claims["userinfo"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(7), info["userid"])
}

func TestGetUserIDFromTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, _, err := GetUserIDFromToken("not-a-token")
	assert.Error(t, err)

	otherSecret, err := GenerateToken(UserInfo{UserID: 1, Role: constants.RoleUser}, 60)
	require.NoError(t, err)
	t.Setenv("JWT_SECRET", "different-secret")
	_, _, err = GetUserIDFromToken(otherSecret)
	assert.Error(t, err)
}
