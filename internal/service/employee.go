package service

import (
	"context"
	"errors"
	"fmt"

	"daily-report/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeService struct {
	db    *gorm.DB
	creds *Credentials
	clock Clock
}

func NewEmployeeService(db *gorm.DB, creds *Credentials, clock Clock) *EmployeeService {
	return &EmployeeService{db: db, creds: creds, clock: clock}
}

func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	var list []model.Employee
	if err := s.db.WithContext(ctx).Order("employee_id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return list, nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*model.Employee, error) {
	var e model.Employee
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query employee: %w", err)
	}
	return &e, nil
}

func (s *EmployeeService) GetByEmployeeID(ctx context.Context, employeeID string) (*model.Employee, error) {
	var e model.Employee
	err := s.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query employee: %w", err)
	}
	return &e, nil
}

func (s *EmployeeService) Create(ctx context.Context, req model.CreateEmployeeRequest) (*model.Employee, error) {
	taken, err := s.employeeIDTaken(ctx, req.EmployeeID, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmployeeIDTaken
	}

	hash, err := s.creds.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	e := &model.Employee{
		ID:           uuid.NewString(),
		EmployeeID:   req.EmployeeID,
		Name:         req.Name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmployeeIDTaken
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	return e, nil
}

// Update applies the non-nil fields of req. A nil password keeps the stored hash.
func (s *EmployeeService) Update(ctx context.Context, id string, req model.UpdateEmployeeRequest) (*model.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.EmployeeID != nil && *req.EmployeeID != e.EmployeeID {
		taken, err := s.employeeIDTaken(ctx, *req.EmployeeID, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmployeeIDTaken
		}
		updates["employee_id"] = *req.EmployeeID
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Password != nil {
		hash, err := s.creds.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hash
	}
	if len(updates) == 0 {
		return e, nil
	}
	updates["updated_at"] = s.clock.Now().UTC()

	if err := s.db.WithContext(ctx).Model(&model.Employee{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmployeeIDTaken
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the account. Reports keep their copied id and name.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Employee{})
	if res.Error != nil {
		return fmt.Errorf("delete employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *EmployeeService) employeeIDTaken(ctx context.Context, employeeID, exceptID string) (bool, error) {
	q := s.db.WithContext(ctx).Model(&model.Employee{}).Where("employee_id = ?", employeeID)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("count employees: %w", err)
	}
	return n > 0, nil
}
