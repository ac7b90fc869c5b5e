package service

import (
	"context"
	"testing"
	"time"

	"daily-report/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCreateResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess, err := f.sessions.Create(ctx, "p-1", model.KindEmployee)
	require.NoError(t, err)
	assert.Len(t, sess.Token, 64)
	assert.True(t, sess.ExpiresAt.Equal(day0.Add(7*24*time.Hour)))

	got, err := f.sessions.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "p-1", got.PrincipalID)
	assert.Equal(t, model.KindEmployee, got.PrincipalKind)
}

func TestSessionTokensAreUnique(t *testing.T) {
	f := newFixture(t)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		sess, err := f.sessions.Create(context.Background(), "p-1", model.KindAdmin)
		require.NoError(t, err)
		assert.False(t, seen[sess.Token])
		seen[sess.Token] = true
	}
}

func TestSessionExpiresWithoutSweep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess, err := f.sessions.Create(ctx, "p-1", model.KindEmployee)
	require.NoError(t, err)

	f.clock.Advance(7*24*time.Hour - time.Second)
	_, err = f.sessions.Resolve(ctx, sess.Token)
	require.NoError(t, err)

	f.clock.Advance(time.Second)
	_, err = f.sessions.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	var n int64
	require.NoError(t, f.db.Model(&model.Session{}).Count(&n).Error)
	assert.EqualValues(t, 1, n, "row is still present until the sweep")
}

func TestSessionResolveUnknown(t *testing.T) {
	f := newFixture(t)
	for _, tok := range []string{"", "nope", "00ff"} {
		_, err := f.sessions.Resolve(context.Background(), tok)
		assert.ErrorIs(t, err, ErrUnauthenticated, "token %q", tok)
	}
}

func TestSessionDeleteIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess, err := f.sessions.Create(ctx, "p-1", model.KindEmployee)
	require.NoError(t, err)

	require.NoError(t, f.sessions.Delete(ctx, sess.Token))
	require.NoError(t, f.sessions.Delete(ctx, sess.Token))
	require.NoError(t, f.sessions.Delete(ctx, "never-existed"))

	_, err = f.sessions.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSessionSweep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	old, err := f.sessions.Create(ctx, "p-1", model.KindEmployee)
	require.NoError(t, err)
	f.clock.Advance(3 * 24 * time.Hour)
	fresh, err := f.sessions.Create(ctx, "p-2", model.KindAdmin)
	require.NoError(t, err)

	f.clock.Advance(4 * 24 * time.Hour)
	n, err := f.sessions.Sweep(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var left []model.Session
	require.NoError(t, f.db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, fresh.Token, left[0].Token)
	assert.NotEqual(t, old.Token, left[0].Token)

	n, err = f.sessions.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRunSweeperStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := f.sessions.Create(ctx, "p-1", model.KindEmployee)
	require.NoError(t, err)
	f.clock.Advance(8 * 24 * time.Hour)

	done := make(chan struct{})
	go func() {
		f.sessions.RunSweeper(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		var n int64
		f.db.Model(&model.Session{}).Count(&n)
		return n == 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
