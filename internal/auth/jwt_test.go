package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citizendesk/backend/internal/auth"
	"citizendesk/backend/internal/models"
)

func staffUser() *models.User {
	return &models.User{
		ID:    "a6c0f33e-0000-4000-8000-000000000001",
		Name:  "Amina Hassan",
		Email: "ag@oag.go.ke",
		Role:  models.RoleAttorneyGeneral,
	}
}

func TestToken_RoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test-secret")

	token, err := tm.Issue(staffUser())
	require.NoError(t, err)

	actor, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a6c0f33e-0000-4000-8000-000000000001", actor.UserID)
	assert.Equal(t, "Amina Hassan", actor.Name)
	assert.Equal(t, "ag@oag.go.ke", actor.Email)
	assert.Equal(t, models.RoleAttorneyGeneral, actor.Role)
}

func TestToken_WrongSecret(t *testing.T) {
	token, err := auth.NewTokenManager("secret-a").Issue(staffUser())
	require.NoError(t, err)

	_, err = auth.NewTokenManager("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestToken_Garbage(t *testing.T) {
	tm := auth.NewTokenManager("test-secret")

	_, err := tm.Verify("not.a.token")
	assert.Error(t, err)
}
