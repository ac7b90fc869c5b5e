package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"daily-report/internal/logger"
	"daily-report/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
)

// EmployeeSheetHeader is the first row of an employee import file.
var EmployeeSheetHeader = []string{"Employee ID", "Name", "Password"}

// importValidator checks rows against the same binding tags the JSON API uses.
var importValidator = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// ReadEmployeeSheet parses an uploaded employee list. format is "csv" or
// "xlsx"; the header row and blank rows are skipped.
func ReadEmployeeSheet(r io.Reader, format string) ([]model.EmployeeImportRow, error) {
	var records [][]string
	switch format {
	case "csv":
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		recs, err := cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImportFile, err)
		}
		records = recs
	case "xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImportFile, err)
		}
		defer f.Close()
		recs, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImportFile, err)
		}
		records = recs
	default:
		return nil, fmt.Errorf("%w: format %q", ErrImportFile, format)
	}

	var rows []model.EmployeeImportRow
	for i, rec := range records {
		if i == 0 {
			continue
		}
		cell := func(j int) string {
			if j < len(rec) {
				return strings.TrimSpace(rec[j])
			}
			return ""
		}
		if cell(0) == "" && cell(1) == "" && cell(2) == "" {
			continue
		}
		rows = append(rows, model.EmployeeImportRow{
			Line: i + 1,
			CreateEmployeeRequest: model.CreateEmployeeRequest{
				EmployeeID: cell(0),
				Name:       cell(1),
				Password:   cell(2),
			},
		})
	}
	return rows, nil
}

// Import creates an account per row. Invalid rows and taken employee ids are
// skipped and reported; any other failure aborts the import.
func (s *EmployeeService) Import(ctx context.Context, rows []model.EmployeeImportRow) (*model.ImportResult, error) {
	res := &model.ImportResult{Total: len(rows), Skipped: []model.ImportSkip{}}
	for _, row := range rows {
		skip := func(reason string) {
			res.Skipped = append(res.Skipped, model.ImportSkip{Line: row.Line, EmployeeID: row.EmployeeID, Reason: reason})
		}
		if err := importValidator.Struct(row.CreateEmployeeRequest); err != nil {
			skip(rowProblem(err))
			continue
		}
		_, err := s.Create(ctx, row.CreateEmployeeRequest)
		if errors.Is(err, ErrEmployeeIDTaken) {
			skip("employee id already exists")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("import line %d: %w", row.Line, err)
		}
		res.Imported++
	}
	logger.Info("employee.import", "total", res.Total, "imported", res.Imported, "skipped", len(res.Skipped))
	return res, nil
}

var importColumns = map[string]string{
	"EmployeeID": "employee id",
	"Name":       "name",
	"Password":   "password",
}

func rowProblem(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "invalid row"
	}
	col := importColumns[ve[0].Field()]
	if ve[0].Tag() == "required" {
		return col + " is missing"
	}
	return col + " is too long"
}
