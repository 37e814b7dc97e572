package services_test

import (
	"context"
	"testing"

	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/testutil"
	"github.com/localnerve/singletea-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserStore(t *testing.T) *services.UserStore {
	t.Helper()
	return &services.UserStore{DB: testutil.NewDB(t), Cost: bcrypt.MinCost}
}

func TestUserStoreCreate(t *testing.T) {
	store := newUserStore(t)
	ctx := context.Background()

	user, err := store.Create(ctx, " Asha ", "Asha@Example.com ", "secret", false)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Asha", user.Name)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.True(t, store.VerifyPassword(user, "secret"))
	assert.False(t, store.VerifyPassword(user, "wrong"))

	_, err = store.Create(ctx, "Other", "asha@example.com", "pw", false)
	assert.True(t, types.IsType(err, types.DuplicateEmail))
	var ce *types.CustomError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Email already exists", ce.Message)
	assert.Equal(t, 400, ce.Code)
}

func TestUserStoreValidation(t *testing.T) {
	store := newUserStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "x", "", "pw", false)
	assert.True(t, types.IsType(err, types.ValidationError))
	_, err = store.Create(ctx, "x", "x@example.com", "", false)
	assert.True(t, types.IsType(err, types.ValidationError))
}

func TestUserStoreAdminOperations(t *testing.T) {
	store := newUserStore(t)
	ctx := context.Background()

	a, err := store.Create(ctx, "A", "a@example.com", "pw", true)
	require.NoError(t, err)
	_, err = store.Create(ctx, "B", "b@example.com", "pw", false)
	require.NoError(t, err)

	users, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	renamed, err := store.UpdateName(ctx, a.ID, "Admin A")
	require.NoError(t, err)
	assert.Equal(t, "Admin A", renamed.Name)

	found, err := store.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Admin A", found.Name)
	assert.True(t, found.IsAdmin)

	require.NoError(t, store.Delete(ctx, a.ID))
	assert.True(t, types.IsType(store.Delete(ctx, a.ID), types.NotFound))
	_, err = store.FindByID(ctx, a.ID)
	assert.True(t, types.IsType(err, types.NotFound))
	_, err = store.UpdateName(ctx, "missing", "x")
	assert.True(t, types.IsType(err, types.NotFound))
}
