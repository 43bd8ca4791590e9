package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbook/internal/repos"
	"shopbook/internal/services"
)

func TestAuthService_RegisterLoginRoundTrip(t *testing.T) {
	db := memdb(t)
	auth := services.NewAuthService(repos.NewUserRepo(db), "test-secret", time.Hour)

	u, err := auth.Register("Esi", "esi@shop.test", "Passw0rd1")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	_, err = auth.Register("Esi", "ESI@shop.test", "Passw0rd1")
	require.ErrorIs(t, err, services.ErrEmailTaken)

	token, logged, err := auth.Login("esi@shop.test", "Passw0rd1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	current, err := auth.CurrentUser(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, current.ID)
}

func TestAuthService_Rejections(t *testing.T) {
	db := memdb(t)
	auth := services.NewAuthService(repos.NewUserRepo(db), "test-secret", time.Hour)

	_, err := auth.Register("Esi", "esi@shop.test", "Passw0rd1")
	require.NoError(t, err)

	_, _, err = auth.Login("esi@shop.test", "wrong")
	require.ErrorIs(t, err, services.ErrBadCreds)
	_, _, err = auth.Login("nobody@shop.test", "Passw0rd1")
	require.ErrorIs(t, err, services.ErrBadCreds)

	_, err = auth.CurrentUser("garbage")
	require.ErrorIs(t, err, services.ErrBadToken)

	// token signed with a different secret
	other := services.NewAuthService(repos.NewUserRepo(db), "other-secret", time.Hour)
	token, _, err := other.Login("esi@shop.test", "Passw0rd1")
	require.NoError(t, err)
	_, err = auth.CurrentUser(token)
	require.ErrorIs(t, err, services.ErrBadToken)
}

func TestAuthService_ExpiredToken(t *testing.T) {
	db := memdb(t)
	auth := services.NewAuthService(repos.NewUserRepo(db), "test-secret", -time.Minute)

	_, err := auth.Register("Esi", "esi@shop.test", "Passw0rd1")
	require.NoError(t, err)
	token, _, err := auth.Login("esi@shop.test", "Passw0rd1")
	require.NoError(t, err)

	_, err = auth.CurrentUser(token)
	require.ErrorIs(t, err, services.ErrBadToken)
}
