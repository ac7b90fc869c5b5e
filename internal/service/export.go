package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"daily-report/internal/model"

	"github.com/xuri/excelize/v2"
)

// ExportHeader is the fixed column order of every export format.
var ExportHeader = []string{
	"Date",
	"Employee ID",
	"Employee Name",
	"Dials",
	"Connected Calls",
	"Positive Prospect",
	"Dead Calls",
	"Demos",
	"Admission",
	"Client Visit",
	"Client Closing",
	"Backdoor Calls",
	"Posters Done",
}

const exportSheet = "Reports"

func exportRow(r model.DailyReport) []string {
	c := r.Counters
	return []string{
		r.SubmissionDate,
		r.EmployeeID,
		r.EmployeeName,
		strconv.Itoa(c.NumberOfDials),
		strconv.Itoa(c.ConnectedCalls),
		strconv.Itoa(c.PositiveProspect),
		strconv.Itoa(c.DeadCalls),
		strconv.Itoa(c.Demos),
		strconv.Itoa(c.Admission),
		strconv.Itoa(c.ClientVisit),
		strconv.Itoa(c.ClientClosing),
		strconv.Itoa(c.BackdoorCalls),
		strconv.Itoa(c.PostersDone),
	}
}

func WriteCSV(w io.Writer, reports []model.DailyReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range reports {
		if err := cw.Write(exportRow(r)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook with the export columns. Counter
// cells are numeric.
func WriteXLSX(w io.Writer, reports []model.DailyReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(ExportHeader))
	for i, h := range ExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, r := range reports {
		c := r.Counters
		row := []interface{}{
			r.SubmissionDate, r.EmployeeID, r.EmployeeName,
			c.NumberOfDials, c.ConnectedCalls, c.PositiveProspect, c.DeadCalls,
			c.Demos, c.Admission, c.ClientVisit, c.ClientClosing, c.BackdoorCalls,
			c.PostersDone,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write xlsx row: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
