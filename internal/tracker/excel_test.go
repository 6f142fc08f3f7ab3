package tracker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mmshah/job-apply-agent/internal/models"
)

func writeGarbage(path string) error {
	return os.WriteFile(path, []byte("not a zip archive"), 0o644)
}

func readWorkbook(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	return rows
}

// TestAppend_CreatesWorkbookWithHeader tests first append on an absent file
func TestAppend_CreatesWorkbookWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.xlsx")
	tracker := NewExcelTracker(path)

	ok, msg := tracker.Append(models.TrackerRow{
		JobTitle:     "Go Engineer",
		EmailAddress: "hr@example.com",
		DateApplied:  "2026-08-31 10:00:00",
		Status:       StatusSent,
	})
	if !ok {
		t.Fatalf("Append failed: %s", msg)
	}

	rows := readWorkbook(t, path)
	if len(rows) != 2 {
		t.Fatalf("workbook has %d rows, want header + 1", len(rows))
	}
	for i, want := range columns {
		if rows[0][i] != want {
			t.Errorf("header column %d = %q, want %q", i, rows[0][i], want)
		}
	}
	want := []string{"Go Engineer", "hr@example.com", "2026-08-31 10:00:00", "Sent"}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Errorf("row column %d = %q, want %q", i, rows[1][i], cell)
		}
	}
}

// TestAppend_PreservesExistingRows tests that two appends yield two rows in
// call order with the existing data intact.
func TestAppend_PreservesExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.xlsx")
	tracker := NewExcelTracker(path)

	first := models.TrackerRow{
		JobTitle:     "Backend Engineer",
		EmailAddress: "jobs@first.example",
		DateApplied:  "2026-08-30 09:15:00",
		Status:       StatusSent,
	}
	second := models.TrackerRow{
		JobTitle:     "Platform Engineer",
		EmailAddress: "talent@second.example",
		DateApplied:  "2026-08-31 14:30:00",
		Status:       StatusSent,
	}

	if ok, msg := tracker.Append(first); !ok {
		t.Fatalf("first Append failed: %s", msg)
	}
	if ok, msg := tracker.Append(second); !ok {
		t.Fatalf("second Append failed: %s", msg)
	}

	rows := readWorkbook(t, path)
	if len(rows) != 3 {
		t.Fatalf("workbook has %d rows, want header + 2", len(rows))
	}
	if rows[1][0] != "Backend Engineer" || rows[2][0] != "Platform Engineer" {
		t.Errorf("rows out of call order: %q then %q", rows[1][0], rows[2][0])
	}
	if rows[2][1] != "talent@second.example" {
		t.Errorf("second row email = %q, want talent@second.example", rows[2][1])
	}
}

// TestAppend_UnreadableWorkbookReportsFailure tests that corruption is
// reported without touching the existing file.
func TestAppend_UnreadableWorkbookReportsFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.xlsx")
	if err := writeGarbage(path); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tracker := NewExcelTracker(path)
	ok, msg := tracker.Append(models.TrackerRow{
		JobTitle:     "Go Engineer",
		EmailAddress: "hr@example.com",
		DateApplied:  "2026-08-31 10:00:00",
		Status:       StatusSent,
	})
	if ok {
		t.Fatal("Append succeeded on a corrupt workbook")
	}
	if msg == "" {
		t.Error("failure message is empty")
	}
}

// TestRecord_FillsTimestampAndStatus tests the row the recorder builds
func TestRecord_FillsTimestampAndStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.xlsx")
	recorder := NewRecorder(NewExcelTracker(path), nil)
	recorder.now = func() time.Time {
		return time.Date(2026, 8, 31, 16, 45, 30, 0, time.UTC)
	}

	ok, msg := recorder.Record("Site Reliability Engineer", "sre-jobs@example.com")
	if !ok {
		t.Fatalf("Record failed: %s", msg)
	}

	rows := readWorkbook(t, path)
	if len(rows) != 2 {
		t.Fatalf("workbook has %d rows, want header + 1", len(rows))
	}
	want := []string{"Site Reliability Engineer", "sre-jobs@example.com", "2026-08-31 16:45:30", "Sent"}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Errorf("column %d = %q, want %q", i, rows[1][i], cell)
		}
	}
}
