package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaultAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.admins.EnsureDefault(ctx, "admin", "")
	require.NoError(t, err)
	assert.False(t, created, "no password configured")

	created, err = f.admins.EnsureDefault(ctx, "admin", "changeme")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.admins.EnsureDefault(ctx, "root", "other")
	require.NoError(t, err)
	assert.False(t, created, "table already has an admin")

	_, err = f.admins.GetByUsername(ctx, "root")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminCreateAndSetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.admins.Create(ctx, "boss", "pw1")
	require.NoError(t, err)
	_, err = f.admins.Create(ctx, "boss", "pw2")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	require.NoError(t, f.admins.SetPassword(ctx, "boss", "pw2"))
	got, err := f.admins.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, f.creds.Verify("pw2", got.PasswordHash))

	assert.ErrorIs(t, f.admins.SetPassword(ctx, "nobody", "x"), ErrNotFound)
}
