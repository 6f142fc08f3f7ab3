package tracker

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mmshah/job-apply-agent/internal/models"
)

// SheetsMirror appends tracker rows to a Google Sheet so the log survives
// redeployments of the host. It is best-effort: the workbook on disk remains
// the source of truth.
type SheetsMirror struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetsMirror authenticates with a service-account credential (JSON key)
// and targets the given spreadsheet ID. The spreadsheet must be shared with
// the service account's email.
func NewSheetsMirror(ctx context.Context, credentialsJSON []byte, spreadsheetID string) (*SheetsMirror, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &SheetsMirror{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// Append adds one row at the bottom of the sheet
func (m *SheetsMirror) Append(ctx context.Context, row models.TrackerRow) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{
			{row.JobTitle, row.EmailAddress, row.DateApplied, row.Status},
		},
	}

	_, err := m.service.Spreadsheets.Values.
		Append(m.spreadsheetID, "A:D", values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to Google Sheet: %w", err)
	}

	return nil
}
