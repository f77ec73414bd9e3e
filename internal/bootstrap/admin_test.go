package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	"github.com/dropDatabas3/dealerdesk/internal/security/password"
	"github.com/dropDatabas3/dealerdesk/internal/store/adapters/memory"
)

func TestEnsureAdmin_CreatesFromConfig(t *testing.T) {
	ctx := context.Background()
	users := memory.New().Users()

	u, err := EnsureAdmin(ctx, AdminConfig{
		Users:    users,
		Email:    " Root@Dealerdesk.io ",
		Password: "sup3r-secret",
		Policy:   password.DefaultPolicy(),
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "root@dealerdesk.io", u.Email)
	assert.True(t, u.HasRole(repository.RoleAdmin))
	assert.True(t, password.Verify("sup3r-secret", u.PasswordHash))

	// segunda vez no hace nada
	again, err := EnsureAdmin(ctx, AdminConfig{Users: users, Email: "other@x.io", Password: "whatever1"})
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestEnsureAdmin_SkippedWithoutCredentials(t *testing.T) {
	_, err := EnsureAdmin(context.Background(), AdminConfig{Users: memory.New().Users()})
	assert.ErrorIs(t, err, ErrSkipped)
}

func TestCreateAdmin_PromotesExistingUser(t *testing.T) {
	ctx := context.Background()
	users := memory.New().Users()

	existing, err := users.Create(ctx, repository.CreateUserInput{
		Email: "ops@acme.com",
		Roles: []string{repository.RoleDealer},
	})
	require.NoError(t, err)

	u, err := CreateAdmin(ctx, users, password.DefaultPolicy(), "OPS@acme.com", "n3w-password")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, u.ID)
	assert.Equal(t, []string{repository.RoleDealer, repository.RoleAdmin}, u.Roles)

	has, err := HasAdmin(ctx, users)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestCreateAdmin_RejectsWeakPassword(t *testing.T) {
	_, err := CreateAdmin(context.Background(), memory.New().Users(), password.DefaultPolicy(), "a@b.io", "123")
	assert.Error(t, err)
}
