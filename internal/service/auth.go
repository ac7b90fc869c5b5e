package service

import (
	"context"
	"errors"

	"daily-report/internal/logger"
	"daily-report/internal/model"
)

// PasswordChecker is the part of Credentials the login path needs.
type PasswordChecker interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// AuthService logs principals in and maps bearer tokens back to them.
type AuthService struct {
	employees *EmployeeService
	admins    *AdminService
	sessions  *SessionService
	creds     PasswordChecker
	// dummyHash is compared against when the account does not exist, so an
	// unknown login costs the same bcrypt work as a wrong password.
	dummyHash string
}

func NewAuthService(employees *EmployeeService, admins *AdminService, sessions *SessionService, creds PasswordChecker) *AuthService {
	dummy, err := creds.Hash("daily-report-unknown-account")
	if err != nil {
		logger.Warn("auth.dummy_hash.failed", "err", err)
	}
	return &AuthService{employees: employees, admins: admins, sessions: sessions, creds: creds, dummyHash: dummy}
}

func (s *AuthService) EmployeeLogin(ctx context.Context, employeeID, password string) (*model.Employee, *model.Session, error) {
	e, err := s.employees.GetByEmployeeID(ctx, employeeID)
	if errors.Is(err, ErrNotFound) {
		s.creds.Verify(password, s.dummyHash)
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}
	if !s.creds.Verify(password, e.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}
	sess, err := s.sessions.Create(ctx, e.ID, model.KindEmployee)
	if err != nil {
		return nil, nil, err
	}
	return e, sess, nil
}

func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*model.Admin, *model.Session, error) {
	a, err := s.admins.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		s.creds.Verify(password, s.dummyHash)
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}
	if !s.creds.Verify(password, a.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}
	sess, err := s.sessions.Create(ctx, a.ID, model.KindAdmin)
	if err != nil {
		return nil, nil, err
	}
	return a, sess, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// resolve returns the session only when it belongs to the wanted kind; a
// token of the other kind is indistinguishable from a missing one.
func (s *AuthService) resolve(ctx context.Context, token string, kind model.PrincipalKind) (*model.Session, error) {
	sess, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess.PrincipalKind != kind {
		return nil, ErrUnauthenticated
	}
	return sess, nil
}

func (s *AuthService) AuthenticateEmployee(ctx context.Context, token string) (*model.Employee, *model.Session, error) {
	sess, err := s.resolve(ctx, token, model.KindEmployee)
	if err != nil {
		return nil, nil, err
	}
	e, err := s.employees.Get(ctx, sess.PrincipalID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, ErrPrincipalNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return e, sess, nil
}

func (s *AuthService) AuthenticateAdmin(ctx context.Context, token string) (*model.Admin, *model.Session, error) {
	sess, err := s.resolve(ctx, token, model.KindAdmin)
	if err != nil {
		return nil, nil, err
	}
	a, err := s.admins.Get(ctx, sess.PrincipalID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, ErrPrincipalNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return a, sess, nil
}
