package tracker

import (
	"context"
	"log"
	"time"

	"github.com/mmshah/job-apply-agent/internal/models"
)

// Recorder writes one log entry per successful send: always to the Excel
// workbook, and to the Google Sheets mirror when one is configured. The
// workbook write alone decides success; a mirror failure is only logged.
type Recorder struct {
	excel  *ExcelTracker
	sheets *SheetsMirror
	now    func() time.Time
}

// NewRecorder creates a recorder. The sheets mirror may be nil.
func NewRecorder(excel *ExcelTracker, sheets *SheetsMirror) *Recorder {
	return &Recorder{
		excel:  excel,
		sheets: sheets,
		now:    time.Now,
	}
}

// Record appends {jobTitle, recipient, now, "Sent"} to the tracker. It never
// returns an error; failures come back as success=false with a message the
// caller can show to the user.
func (r *Recorder) Record(jobTitle, recipient string) (bool, string) {
	row := models.TrackerRow{
		JobTitle:     jobTitle,
		EmailAddress: recipient,
		DateApplied:  r.now().Format(TimeLayout),
		Status:       StatusSent,
	}

	if r.sheets != nil {
		if err := r.sheets.Append(context.Background(), row); err != nil {
			log.Printf("Google Sheets mirror failed: %v", err)
		} else {
			log.Printf("Application mirrored to Google Sheet")
		}
	}

	return r.excel.Append(row)
}
