package service

import (
	"context"
	"errors"
	"fmt"

	"daily-report/internal/logger"
	"daily-report/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminService struct {
	db    *gorm.DB
	creds *Credentials
	clock Clock
}

func NewAdminService(db *gorm.DB, creds *Credentials, clock Clock) *AdminService {
	return &AdminService{db: db, creds: creds, clock: clock}
}

func (s *AdminService) Get(ctx context.Context, id string) (*model.Admin, error) {
	var a model.Admin
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query admin: %w", err)
	}
	return &a, nil
}

func (s *AdminService) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query admin: %w", err)
	}
	return &a, nil
}

func (s *AdminService) Create(ctx context.Context, username, password string) (*model.Admin, error) {
	hash, err := s.creds.Hash(password)
	if err != nil {
		return nil, err
	}
	a := &model.Admin{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return a, nil
}

// SetPassword replaces the admin's password hash.
func (s *AdminService) SetPassword(ctx context.Context, username, password string) error {
	hash, err := s.creds.Hash(password)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&model.Admin{}).Where("username = ?", username).Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("update admin: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureDefault creates the bootstrap admin when the admins table is empty.
// It reports whether an account was created.
func (s *AdminService) EnsureDefault(ctx context.Context, username, password string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Admin{}).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if username == "" || password == "" {
		logger.Warn("admin.bootstrap.skipped", "reason", "no admin credentials configured")
		return false, nil
	}
	if _, err := s.Create(ctx, username, password); err != nil {
		return false, err
	}
	logger.Info("admin.bootstrap", "username", username)
	return true, nil
}
