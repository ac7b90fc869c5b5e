package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"daily-report/internal/model"

	"gorm.io/gorm"
)

const DateLayout = "2006-01-02"

// ReportService stores daily reports. At most one report exists per employee
// and submission date; the uk_employee_date index is the final arbiter.
type ReportService struct {
	db    *gorm.DB
	clock Clock
	loc   *time.Location
}

func NewReportService(db *gorm.DB, clock Clock, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{db: db, clock: clock, loc: loc}
}

// Today is the current calendar date in the report timezone.
func (s *ReportService) Today() string {
	return s.clock.Now().In(s.loc).Format(DateLayout)
}

func (s *ReportService) Submit(ctx context.Context, employeeID, employeeName string, c model.Counters, date string) (*model.DailyReport, error) {
	if date == "" {
		date = s.Today()
	}
	r := &model.DailyReport{
		EmployeeID:     employeeID,
		EmployeeName:   employeeName,
		Counters:       c,
		SubmissionDate: date,
		CreatedAt:      s.clock.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.DailyReport{}).
			Where("employee_id = ? AND submission_date = ?", employeeID, date).
			Count(&n).Error; err != nil {
			return fmt.Errorf("query report: %w", err)
		}
		if n > 0 {
			return ErrReportExists
		}
		if err := tx.Create(r).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrReportExists
			}
			return fmt.Errorf("insert report: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReportService) FindByDate(ctx context.Context, employeeID, date string) (*model.DailyReport, error) {
	var r model.DailyReport
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND submission_date = ?", employeeID, date).
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}
	return &r, nil
}

// Query returns one page of matching reports, newest first, plus the number
// of matches overall.
func (s *ReportService) Query(ctx context.Context, f model.ReportFilter) ([]model.DailyReport, int64, error) {
	var total int64
	if err := s.filtered(ctx, f).Model(&model.DailyReport{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	q := s.filtered(ctx, f).
		Order("submission_date DESC").
		Order("created_at DESC").
		Order("id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	reports := []model.DailyReport{}
	if err := q.Find(&reports).Error; err != nil {
		return nil, 0, fmt.Errorf("query reports: %w", err)
	}
	return reports, total, nil
}

// Summary totals every counter over the matching reports.
func (s *ReportService) Summary(ctx context.Context, f model.ReportFilter) (*model.ReportSummary, error) {
	var sum model.ReportSummary
	err := s.filtered(ctx, f).Model(&model.DailyReport{}).Select(
		"COUNT(*) AS reports",
		"COALESCE(SUM(number_of_dials), 0) AS number_of_dials",
		"COALESCE(SUM(connected_calls), 0) AS connected_calls",
		"COALESCE(SUM(positive_prospect), 0) AS positive_prospect",
		"COALESCE(SUM(dead_calls), 0) AS dead_calls",
		"COALESCE(SUM(demos), 0) AS demos",
		"COALESCE(SUM(admission), 0) AS admission",
		"COALESCE(SUM(client_visit), 0) AS client_visit",
		"COALESCE(SUM(client_closing), 0) AS client_closing",
		"COALESCE(SUM(backdoor_calls), 0) AS backdoor_calls",
		"COALESCE(SUM(posters_done), 0) AS posters_done",
	).Scan(&sum).Error
	if err != nil {
		return nil, fmt.Errorf("summarize reports: %w", err)
	}
	return &sum, nil
}

func (s *ReportService) Get(ctx context.Context, id uint) (*model.DailyReport, error) {
	var r model.DailyReport
	err := s.db.WithContext(ctx).First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}
	return &r, nil
}

// Update merges the supplied fields into the report.
func (s *ReportService) Update(ctx context.Context, id uint, p model.ReportPatch) (*model.DailyReport, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := p.Updates()
	if len(updates) == 0 {
		return r, nil
	}
	if err := s.db.WithContext(ctx).Model(&model.DailyReport{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrReportExists
		}
		return nil, fmt.Errorf("update report: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *ReportService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.DailyReport{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete report: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ReportService) filtered(ctx context.Context, f model.ReportFilter) *gorm.DB {
	q := s.db.WithContext(ctx)
	if f.EmployeeID != "" {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}
	if f.StartDate != "" {
		q = q.Where("submission_date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("submission_date <= ?", f.EndDate)
	}
	return q
}
