package model

import (
	"time"

	"gorm.io/gorm"
)

type PrincipalKind string

const (
	KindEmployee PrincipalKind = "employee"
	KindAdmin    PrincipalKind = "admin"
)

type Employee struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	EmployeeID   string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"employeeId"`
	Name         string    `gorm:"type:varchar(128);not null" json:"name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Admin struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Counters are the metrics an employee reports once per day.
type Counters struct {
	NumberOfDials    int `gorm:"not null;default:0" json:"numberOfDials"`
	ConnectedCalls   int `gorm:"not null;default:0" json:"connectedCalls"`
	PositiveProspect int `gorm:"not null;default:0" json:"positiveProspect"`
	DeadCalls        int `gorm:"not null;default:0" json:"deadCalls"`
	Demos            int `gorm:"not null;default:0" json:"demos"`
	Admission        int `gorm:"not null;default:0" json:"admission"`
	ClientVisit      int `gorm:"not null;default:0" json:"clientVisit"`
	ClientClosing    int `gorm:"not null;default:0" json:"clientClosing"`
	BackdoorCalls    int `gorm:"not null;default:0" json:"backdoorCalls"`
	PostersDone      int `gorm:"not null;default:0" json:"postersDone"`
}

// DailyReport keeps the employee id and name as they were at submission time;
// it is not tied to the employees table.
type DailyReport struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	EmployeeID     string `gorm:"type:varchar(64);not null;uniqueIndex:uk_employee_date,priority:1" json:"employeeId"`
	EmployeeName   string `gorm:"type:varchar(128);not null" json:"employeeName"`
	Counters       `gorm:"embedded"`
	SubmissionDate string    `gorm:"type:varchar(10);not null;index;uniqueIndex:uk_employee_date,priority:2" json:"submissionDate"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
}

// Session rows are keyed by the bearer token itself.
type Session struct {
	Token         string        `gorm:"primaryKey;type:varchar(64)" json:"-"`
	PrincipalID   string        `gorm:"type:varchar(36);not null;index" json:"principalId"`
	PrincipalKind PrincipalKind `gorm:"type:varchar(16);not null" json:"principalKind"`
	ExpiresAt     time.Time     `gorm:"not null;index" json:"expiresAt"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (Employee) TableName() string    { return "employees" }
func (Admin) TableName() string       { return "admins" }
func (DailyReport) TableName() string { return "daily_reports" }
func (Session) TableName() string     { return "sessions" }

// Migrate creates or updates all tables and indexes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Employee{}, &Admin{}, &DailyReport{}, &Session{})
}
