package model

import "time"

type EmployeeLoginRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type EmployeeLoginResponse struct {
	SessionToken string    `json:"sessionToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Employee     *Employee `json:"employee"`
}

type AdminLoginResponse struct {
	SessionToken string    `json:"sessionToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Admin        *Admin    `json:"admin"`
}

// SubmitReportRequest uses pointers so that an explicit 0 passes "required".
type SubmitReportRequest struct {
	NumberOfDials    *int `json:"numberOfDials" binding:"required,min=0"`
	ConnectedCalls   *int `json:"connectedCalls" binding:"required,min=0"`
	PositiveProspect *int `json:"positiveProspect" binding:"required,min=0"`
	DeadCalls        *int `json:"deadCalls" binding:"required,min=0"`
	Demos            *int `json:"demos" binding:"required,min=0"`
	Admission        *int `json:"admission" binding:"required,min=0"`
	ClientVisit      *int `json:"clientVisit" binding:"required,min=0"`
	ClientClosing    *int `json:"clientClosing" binding:"required,min=0"`
	BackdoorCalls    *int `json:"backdoorCalls" binding:"required,min=0"`
	PostersDone      *int `json:"postersDone" binding:"omitempty,min=0"`
}

func (r SubmitReportRequest) Counters() Counters {
	c := Counters{
		NumberOfDials:    *r.NumberOfDials,
		ConnectedCalls:   *r.ConnectedCalls,
		PositiveProspect: *r.PositiveProspect,
		DeadCalls:        *r.DeadCalls,
		Demos:            *r.Demos,
		Admission:        *r.Admission,
		ClientVisit:      *r.ClientVisit,
		ClientClosing:    *r.ClientClosing,
		BackdoorCalls:    *r.BackdoorCalls,
	}
	if r.PostersDone != nil {
		c.PostersDone = *r.PostersDone
	}
	return c
}

// ReportPatch carries an admin edit; nil fields are left unchanged.
type ReportPatch struct {
	EmployeeName     *string `json:"employeeName" binding:"omitempty,min=1,max=128"`
	SubmissionDate   *string `json:"submissionDate" binding:"omitempty,datetime=2006-01-02"`
	NumberOfDials    *int    `json:"numberOfDials" binding:"omitempty,min=0"`
	ConnectedCalls   *int    `json:"connectedCalls" binding:"omitempty,min=0"`
	PositiveProspect *int    `json:"positiveProspect" binding:"omitempty,min=0"`
	DeadCalls        *int    `json:"deadCalls" binding:"omitempty,min=0"`
	Demos            *int    `json:"demos" binding:"omitempty,min=0"`
	Admission        *int    `json:"admission" binding:"omitempty,min=0"`
	ClientVisit      *int    `json:"clientVisit" binding:"omitempty,min=0"`
	ClientClosing    *int    `json:"clientClosing" binding:"omitempty,min=0"`
	BackdoorCalls    *int    `json:"backdoorCalls" binding:"omitempty,min=0"`
	PostersDone      *int    `json:"postersDone" binding:"omitempty,min=0"`
}

// Updates returns the column/value pairs set in the patch.
func (p ReportPatch) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	if p.EmployeeName != nil {
		m["employee_name"] = *p.EmployeeName
	}
	if p.SubmissionDate != nil {
		m["submission_date"] = *p.SubmissionDate
	}
	ints := []struct {
		col string
		v   *int
	}{
		{"number_of_dials", p.NumberOfDials},
		{"connected_calls", p.ConnectedCalls},
		{"positive_prospect", p.PositiveProspect},
		{"dead_calls", p.DeadCalls},
		{"demos", p.Demos},
		{"admission", p.Admission},
		{"client_visit", p.ClientVisit},
		{"client_closing", p.ClientClosing},
		{"backdoor_calls", p.BackdoorCalls},
		{"posters_done", p.PostersDone},
	}
	for _, f := range ints {
		if f.v != nil {
			m[f.col] = *f.v
		}
	}
	return m
}

// Passwords are capped at 72 bytes, the most bcrypt will hash.
type CreateEmployeeRequest struct {
	EmployeeID string `json:"employeeId" binding:"required,max=64"`
	Name       string `json:"name" binding:"required,max=128"`
	Password   string `json:"password" binding:"required,max=72"`
}

type UpdateEmployeeRequest struct {
	EmployeeID *string `json:"employeeId" binding:"omitempty,min=1,max=64"`
	Name       *string `json:"name" binding:"omitempty,min=1,max=128"`
	Password   *string `json:"password" binding:"omitempty,min=1,max=72"`
}

// ReportFilter narrows an admin report query. Zero values mean "no filter".
type ReportFilter struct {
	EmployeeID string
	StartDate  string
	EndDate    string
	Limit      int
	Offset     int
}

type ReportPage struct {
	Reports []DailyReport `json:"reports"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
}

type ReportSummary struct {
	Reports int64 `json:"reports"`
	Counters
}

type TodayStatus struct {
	Date      string       `json:"date"`
	Submitted bool         `json:"submitted"`
	Report    *DailyReport `json:"report,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

// EmployeeImportRow is one account read from an uploaded employee list.
// Line is the 1-based row number in the file.
type EmployeeImportRow struct {
	Line int
	CreateEmployeeRequest
}

type ImportSkip struct {
	Line       int    `json:"line"`
	EmployeeID string `json:"employeeId"`
	Reason     string `json:"reason"`
}

type ImportResult struct {
	Total    int          `json:"total"`
	Imported int          `json:"imported"`
	Skipped  []ImportSkip `json:"skipped"`
}
