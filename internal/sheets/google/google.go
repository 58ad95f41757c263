// Package google appends exported transaction snapshots to a Google
// spreadsheet using Service Account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fundtrackr/internal/core"
	ports "fundtrackr/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ports.ExportSink = (*Client)(nil)

// NewFromEnv creates a Sheets sink from environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Auth: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME (default "Transactions").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Transactions"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case serviceAccountJSON != "":
		return gsheet.NewService(ctx,
			goption.WithCredentialsJSON([]byte(serviceAccountJSON)),
			goption.WithScopes(gsheet.SpreadsheetsScope))
	case serviceAccountFile != "":
		return gsheet.NewService(ctx,
			goption.WithCredentialsFile(serviceAccountFile),
			goption.WithScopes(gsheet.SpreadsheetsScope))
	default:
		// Application Default Credentials as the last resort.
		return gsheet.NewService(ctx, goption.WithScopes(gsheet.SpreadsheetsScope))
	}
}

// AppendSnapshot appends one row per transaction using the CSV column
// set and returns the updated range reference.
func (c *Client) AppendSnapshot(ctx context.Context, txs []core.Transaction) (string, error) {
	values := make([][]any, 0, len(txs))
	for _, t := range txs {
		values = append(values, []any{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			t.Amount.String(),
			t.Date.Format("2006-01-02"),
			t.Category,
			string(t.Kind),
		})
	}

	rangeRef := c.sheetName + "!A:F"
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rangeRef, &gsheet.ValueRange{
		Values: values,
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append snapshot: %w", err)
	}

	ref := rangeRef
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		ref = resp.Updates.UpdatedRange
	}

	slog.InfoContext(ctx, "Snapshot appended to spreadsheet",
		"spreadsheet_id", c.spreadsheetID,
		"sheet", c.sheetName,
		"rows", len(values),
		"range", ref)

	return ref, nil
}
