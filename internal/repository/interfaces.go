package repository

import (
	"context"

	"google.golang.org/api/sheets/v4"

	"github.com/limbo/moodlog/pkg/entity"
)

type EntriesRepositoryI interface {
	// Appends a single mood entry as a new spreadsheet row
	Append(ctx context.Context, entry *entity.MoodEntry) error
	// Reads every logged entry from the spreadsheet. Rows with
	// unparseable timestamps are skipped
	FetchAll(ctx context.Context) ([]entity.MoodEntry, error)
}

// ValuesConnection narrows the sheets values API to the two calls the
// repository makes, so tests can substitute a fake.
type ValuesConnection interface {
	Append(ctx context.Context, spreadsheetID, readRange string, vr *sheets.ValueRange) error
	Get(ctx context.Context, spreadsheetID, readRange string) (*sheets.ValueRange, error)
}

type SheetsConfig interface {
	CredentialsFile() string
	SpreadsheetID() string
	ReadRange() string
}

type SheetsCfg struct {
	Credentials string
	Spreadsheet string
	Range       string
}

func (sc *SheetsCfg) CredentialsFile() string { return sc.Credentials }
func (sc *SheetsCfg) SpreadsheetID() string   { return sc.Spreadsheet }
func (sc *SheetsCfg) ReadRange() string       { return sc.Range }
