package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentia-labs/talentia/internal/core/domain"
)

func TestUserStore(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	u := &domain.User{ID: "u1", Email: "jad@example.com", FullName: "Jad"}
	require.NoError(t, store.InsertUser(ctx, u))

	t.Run("duplicate email rejected case-insensitively", func(t *testing.T) {
		err := store.InsertUser(ctx, &domain.User{ID: "u2", Email: "JAD@example.com"})
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("lookup by email", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "Jad@Example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.ID)
	})

	t.Run("lookup by id", func(t *testing.T) {
		got, err := store.GetUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "jad@example.com", got.Email)
	})

	t.Run("absent lookups", func(t *testing.T) {
		_, err := store.GetUser(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = store.GetUserByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
