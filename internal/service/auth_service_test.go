package service

import (
	"context"
	"testing"

	"github.com/notaryweb/internal/db"
	"github.com/notaryweb/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceAuthenticate(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	require.NoError(t, db.EnsureUser(gdb, "admin", "s3cret"))
	auth := NewAuthService(gdb)
	ctx := context.Background()

	user, err := auth.Authenticate(ctx, " admin ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	_, err = auth.Authenticate(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, resource.ErrUnauthorized)

	_, err = auth.Authenticate(ctx, "ghost", "s3cret")
	assert.ErrorIs(t, err, resource.ErrUnauthorized)

	_, err = auth.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, resource.ErrUnauthorized)
}

func TestAuthServiceKeepsPasswordWhitespace(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	require.NoError(t, db.EnsureUser(gdb, "spacey", " pw with space "))
	auth := NewAuthService(gdb)
	ctx := context.Background()

	_, err := auth.Authenticate(ctx, "spacey", " pw with space ")
	require.NoError(t, err)

	_, err = auth.Authenticate(ctx, "spacey", "pw with space")
	assert.ErrorIs(t, err, resource.ErrUnauthorized)

	require.NoError(t, db.SetPassword(gdb, "spacey", "rotated\t"))
	_, err = auth.Authenticate(ctx, "spacey", "rotated\t")
	require.NoError(t, err)
}

func TestAuthServiceFindByID(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	require.NoError(t, db.EnsureUser(gdb, "admin", "s3cret"))
	auth := NewAuthService(gdb)
	ctx := context.Background()

	user, err := auth.Authenticate(ctx, "admin", "s3cret")
	require.NoError(t, err)

	found, err := auth.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, found.Username)

	_, err = auth.FindByID(ctx, user.ID+100)
	assert.ErrorIs(t, err, resource.ErrUnauthorized)
}
