package ports

import (
	"context"

	"cargahoraria/domain/schedule"
)

// SheetSource provides read-only access to the sheets of one schedule
// workbook. Implementations never modify the workbook.
type SheetSource interface {
	// Path identifies the workbook (file path or name)
	Path() string

	// Sheets lists sheet names in workbook order
	Sheets(ctx context.Context) ([]string, error)

	// ReadSheet returns the raw table of one sheet. An unknown sheet name is
	// reported as a SHEET_NOT_FOUND AppError, an unreadable workbook as
	// WORKBOOK_UNREADABLE.
	ReadSheet(ctx context.Context, sheet string) (*schedule.RawTable, error)
}
