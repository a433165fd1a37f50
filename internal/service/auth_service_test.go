package service

import (
	"testing"

	"github.com/shefospecial/victoriasystem/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginWithSeededAdmin(t *testing.T) {
	env := newTestEnv(t)
	adminRepo := repository.NewAdminRepo(env.db)
	auth := NewAuthService(adminRepo)

	require.NoError(t, auth.SeedDefaultAdmin())
	// Seeding twice must not create a second account.
	require.NoError(t, auth.SeedDefaultAdmin())
	count, err := adminRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	token, admin, err := auth.Login("admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", admin.Role)

	verified, err := auth.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, verified.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(repository.NewAdminRepo(env.db))
	require.NoError(t, auth.SeedDefaultAdmin())

	_, _, err := auth.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = auth.Login("ghost", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
