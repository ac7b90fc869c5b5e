package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"daily-report/internal/logger"
	"daily-report/internal/model"

	"gorm.io/gorm"
)

const (
	DefaultSessionTTL = 7 * 24 * time.Hour
	tokenBytes        = 32
)

// SessionService issues and resolves opaque bearer tokens.
type SessionService struct {
	db    *gorm.DB
	clock Clock
	ttl   time.Duration
}

func NewSessionService(db *gorm.DB, clock Clock, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{db: db, clock: clock, ttl: ttl}
}

func (s *SessionService) Create(ctx context.Context, principalID string, kind model.PrincipalKind) (*model.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	sess := &model.Session{
		Token:         token,
		PrincipalID:   principalID,
		PrincipalKind: kind,
		ExpiresAt:     now.Add(s.ttl),
		CreatedAt:     now,
	}
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// Resolve returns the live session for token. Unknown and expired tokens both
// yield ErrUnauthenticated.
func (s *SessionService) Resolve(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	var sess model.Session
	err := s.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, s.clock.Now().UTC()).
		First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	return &sess, nil
}

// Delete removes the session. Deleting an unknown token is not an error.
func (s *SessionService) Delete(ctx context.Context, token string) error {
	if err := s.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Sweep purges every session whose expiry has passed.
func (s *SessionService) Sweep(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.clock.Now().UTC()).Delete(&model.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("sweep sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *SessionService) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				logger.Error("session.sweep.failed", "err", err)
				continue
			}
			if n > 0 {
				logger.Info("session.sweep", "deleted", n)
			}
		}
	}
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
