package admin

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"torque-lite-pro/internal/session"
)

// BuildSessionsXLSX renders the cached sessions as a spreadsheet: one summary
// sheet plus one readings sheet listing every measurement of every session.
func BuildSessionsXLSX(sessions []*session.Session) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "sessions"
	readingsSheet := "readings"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(readingsSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Session")
	_ = f.SetCellValue(summarySheet, "B1", "Vehicle")
	_ = f.SetCellValue(summarySheet, "C1", "Email")
	_ = f.SetCellValue(summarySheet, "D1", "App Version")
	_ = f.SetCellValue(summarySheet, "E1", "Last Seen")
	_ = f.SetCellValue(summarySheet, "F1", "Readings")
	for i, sess := range sessions {
		row := i + 2
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), sess.ID)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), sess.Profile.Name)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), sess.Profile.Email)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), sess.Profile.AppVersion)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("E%d", row), sess.LastSeen.Format(time.RFC3339))
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("F%d", row), len(sess.Values))
	}

	_ = f.SetCellValue(readingsSheet, "A1", "Session")
	_ = f.SetCellValue(readingsSheet, "B1", "Key")
	_ = f.SetCellValue(readingsSheet, "C1", "Name")
	_ = f.SetCellValue(readingsSheet, "D1", "Unit")
	_ = f.SetCellValue(readingsSheet, "E1", "Value")
	row := 2
	for _, sess := range sessions {
		for _, key := range sortedValueKeys(sess) {
			meta := sess.Meta[key]
			_ = f.SetCellValue(readingsSheet, fmt.Sprintf("A%d", row), sess.ID)
			_ = f.SetCellValue(readingsSheet, fmt.Sprintf("B%d", row), key)
			_ = f.SetCellValue(readingsSheet, fmt.Sprintf("C%d", row), meta.Name)
			_ = f.SetCellValue(readingsSheet, fmt.Sprintf("D%d", row), meta.Unit)
			_ = f.SetCellValue(readingsSheet, fmt.Sprintf("E%d", row), sess.Values[key])
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildVehicleReportPDF renders a one-page readings report for a vehicle's
// latest snapshot.
func BuildVehicleReportPDF(vehicleID string, sess *session.Session) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Vehicle Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Vehicle: %s", vehicleID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Name: %s", sess.Profile.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Session: %s", sess.ID))
	pdf.Ln(5)
	if sess.Profile.AppVersion != "" {
		pdf.Cell(0, 6, fmt.Sprintf("App Version: %s", sess.Profile.AppVersion))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Last Seen: %s", sess.LastSeen.Format(time.RFC3339)))
	pdf.Ln(8)

	// Readings table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 6, "Measurement", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Value", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Unit", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, key := range sortedValueKeys(sess) {
		meta := sess.Meta[key]
		name := meta.Name
		if name == "" {
			name = key
		}
		pdf.CellFormat(70, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, formatReading(sess.Values[key]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, meta.Unit, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sortedValueKeys(sess *session.Session) []string {
	keys := make([]string, 0, len(sess.Values))
	for key := range sess.Values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func formatReading(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.2f", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
