package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"daily-report/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestEmployeeLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	createEmployee(t, f, "EMP001", "Alice", "secret1")

	e, sess, err := f.auth.EmployeeLogin(ctx, "EMP001", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "EMP001", e.EmployeeID)
	assert.Equal(t, model.KindEmployee, sess.PrincipalKind)
	assert.Equal(t, e.ID, sess.PrincipalID)

	_, _, err = f.auth.EmployeeLogin(ctx, "EMP001", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.auth.EmployeeLogin(ctx, "EMP999", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.admins.Create(ctx, "admin", "adminpw")
	require.NoError(t, err)

	a, sess, err := f.auth.AdminLogin(ctx, "admin", "adminpw")
	require.NoError(t, err)
	assert.Equal(t, "admin", a.Username)
	assert.Equal(t, model.KindAdmin, sess.PrincipalKind)

	_, _, err = f.auth.AdminLogin(ctx, "admin", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.auth.AdminLogin(ctx, "ghost", "adminpw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsOtherKind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	createEmployee(t, f, "EMP001", "Alice", "pw")
	_, err := f.admins.Create(ctx, "admin", "adminpw")
	require.NoError(t, err)

	_, empSess, err := f.auth.EmployeeLogin(ctx, "EMP001", "pw")
	require.NoError(t, err)
	_, admSess, err := f.auth.AdminLogin(ctx, "admin", "adminpw")
	require.NoError(t, err)

	_, _, err = f.auth.AuthenticateAdmin(ctx, empSess.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, _, err = f.auth.AuthenticateEmployee(ctx, admSess.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	e, _, err := f.auth.AuthenticateEmployee(ctx, empSess.Token)
	require.NoError(t, err)
	assert.Equal(t, "Alice", e.Name)
	a, _, err := f.auth.AuthenticateAdmin(ctx, admSess.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", a.Username)
}

func TestAuthenticateDeletedEmployee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := createEmployee(t, f, "EMP001", "Alice", "pw")
	_, sess, err := f.auth.EmployeeLogin(ctx, "EMP001", "pw")
	require.NoError(t, err)

	require.NoError(t, f.employees.Delete(ctx, e.ID))
	_, _, err = f.auth.AuthenticateEmployee(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrPrincipalNotFound)
}

func TestLogoutAndExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	createEmployee(t, f, "EMP001", "Alice", "pw")

	_, s1, err := f.auth.EmployeeLogin(ctx, "EMP001", "pw")
	require.NoError(t, err)
	_, s2, err := f.auth.EmployeeLogin(ctx, "EMP001", "pw")
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, s1.Token))
	_, _, err = f.auth.AuthenticateEmployee(ctx, s1.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, _, err = f.auth.AuthenticateEmployee(ctx, s2.Token)
	assert.NoError(t, err, "other sessions survive logout")

	f.clock.Advance(DefaultSessionTTL + time.Second)
	_, _, err = f.auth.AuthenticateEmployee(ctx, s2.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

// countingCreds records how many bcrypt comparisons the login path performs.
type countingCreds struct {
	*Credentials
	verifies atomic.Int64
}

func (c *countingCreds) Verify(plaintext, digest string) bool {
	c.verifies.Add(1)
	return c.Credentials.Verify(plaintext, digest)
}

func TestUnknownAccountStillRunsBcrypt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	createEmployee(t, f, "EMP001", "Alice", "secret1")
	_, err := f.admins.Create(ctx, "admin", "adminpw")
	require.NoError(t, err)

	creds := &countingCreds{Credentials: f.creds}
	auth := NewAuthService(f.employees, f.admins, f.sessions, creds)

	cases := []struct {
		name  string
		login func() error
	}{
		{"unknown employee", func() error { _, _, err := auth.EmployeeLogin(ctx, "EMP404", "secret1"); return err }},
		{"wrong employee password", func() error { _, _, err := auth.EmployeeLogin(ctx, "EMP001", "nope"); return err }},
		{"unknown admin", func() error { _, _, err := auth.AdminLogin(ctx, "ghost", "adminpw"); return err }},
		{"wrong admin password", func() error { _, _, err := auth.AdminLogin(ctx, "admin", "nope"); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := creds.verifies.Load()
			assert.ErrorIs(t, tc.login(), ErrInvalidCredentials)
			assert.EqualValues(t, 1, creds.verifies.Load()-before)
		})
	}
}

func TestUnknownAccountComparesAgainstRealHash(t *testing.T) {
	f := newFixture(t)
	_, err := bcrypt.Cost([]byte(f.auth.dummyHash))
	assert.NoError(t, err, "dummy digest must be a valid bcrypt hash so the comparison does full work")
}
