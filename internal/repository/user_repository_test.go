package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	alice := createUser(t, r, "alice")
	bob := createUser(t, r, "bob")
	assert.NotEqual(t, alice.ID, bob.ID)

	found, err := r.users.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Name)

	_, err = r.users.FindByID(ctx, 99999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_List(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	empty, err := r.users.List(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	createUser(t, r, "carol")
	createUser(t, r, "dave")
	createUser(t, r, "carol")

	all, err := r.users.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].ID < all[1].ID && all[1].ID < all[2].ID)

	carols, err := r.users.List(ctx, "carol")
	require.NoError(t, err)
	assert.Len(t, carols, 2)
}
