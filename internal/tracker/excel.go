// Package tracker records successfully sent applications to a durable,
// append-only log: an Excel workbook on disk, optionally mirrored to a
// Google Sheet.
package tracker

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/mmshah/job-apply-agent/internal/models"
)

// Fixed tracker schema; one row per successful send
var columns = []string{"Job Title", "Email Address", "Date Applied", "Status"}

const (
	sheetName = "Sheet1"

	// StatusSent is the status every recorded row carries
	StatusSent = "Sent"

	// TimeLayout is the human-readable timestamp format of Date Applied
	TimeLayout = "2006-01-02 15:04:05"
)

// ExcelTracker appends rows to a workbook on disk. Each append reads the
// full existing sheet and rewrites the workbook; fine for a personal
// job-search log, not for high write volume. Appends are serialized so two
// simultaneous send completions cannot interleave the read-modify-write.
type ExcelTracker struct {
	path string
	mu   sync.Mutex
}

// NewExcelTracker creates a tracker writing to the given workbook path.
// The workbook is created with the header row on first append.
func NewExcelTracker(path string) *ExcelTracker {
	return &ExcelTracker{
		path: path,
	}
}

// Path returns the workbook location (for the download endpoint)
func (t *ExcelTracker) Path() string {
	return t.path
}

// Append adds one row to the workbook. I/O failures are logged and reported
// in the message; they never propagate as errors past this boundary.
func (t *ExcelTracker) Append(row models.TrackerRow) (bool, string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, err := t.readRows()
	if err != nil {
		log.Printf("Error reading tracker: %v", err)
		return false, fmt.Sprintf("Error reading tracker: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return false, fmt.Sprintf("Error preparing tracker: %v", err)
	}

	for col, header := range columns {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	f.SetColWidth(sheetName, "A", "B", 30)
	f.SetColWidth(sheetName, "C", "D", 20)

	existing = append(existing, []string{row.JobTitle, row.EmailAddress, row.DateApplied, row.Status})
	for i, r := range existing {
		for col, value := range r {
			cell := fmt.Sprintf("%s%d", string(rune('A'+col)), i+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	if err := f.SaveAs(t.path); err != nil {
		log.Printf("Error saving tracker: %v", err)
		return false, fmt.Sprintf("Error saving tracker: %v", err)
	}

	return true, "Application recorded to tracker"
}

// readRows loads all data rows (header excluded) from the workbook, or nil
// when the workbook does not exist yet.
func (t *ExcelTracker) readRows() ([][]string, error) {
	if _, err := os.Stat(t.path); os.IsNotExist(err) {
		return nil, nil
	}

	f, err := excelize.OpenFile(t.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tracker workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracker rows: %w", err)
	}

	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}
