package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	errorvalues "github.com/limbo/moodlog/internal/error_values"
	"github.com/limbo/moodlog/pkg/entity"
)

// Row layout contract with the spreadsheet: three columns, fixed order.
const timestampLayout = "2006-01-02 15:04:05"

type EntriesRepository struct {
	conn        ValuesConnection
	spreadsheet string
	readRange   string
	loc         *time.Location
}

// valuesService adapts the generated sheets client to ValuesConnection.
type valuesService struct {
	values *sheets.SpreadsheetsValuesService
}

func (vs *valuesService) Append(ctx context.Context, spreadsheetID, readRange string, vr *sheets.ValueRange) error {
	_, err := vs.values.Append(spreadsheetID, readRange, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (vs *valuesService) Get(ctx context.Context, spreadsheetID, readRange string) (*sheets.ValueRange, error) {
	return vs.values.Get(spreadsheetID, readRange).Context(ctx).Do()
}

func NewEntriesRepo(cfg SheetsConfig, loc *time.Location) *EntriesRepository {
	svc, err := sheets.NewService(context.Background(),
		option.WithCredentialsFile(cfg.CredentialsFile()),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		log.Fatal("creating sheets service for entriesRepo error: " + err.Error())
	}
	return &EntriesRepository{
		conn:        &valuesService{values: svc.Spreadsheets.Values},
		spreadsheet: cfg.SpreadsheetID(),
		readRange:   cfg.ReadRange(),
		loc:         loc,
	}
}

func NewEntriesRepoWithConn(conn ValuesConnection, cfg SheetsConfig, loc *time.Location) *EntriesRepository {
	return &EntriesRepository{
		conn:        conn,
		spreadsheet: cfg.SpreadsheetID(),
		readRange:   cfg.ReadRange(),
		loc:         loc,
	}
}

func (er *EntriesRepository) Append(ctx context.Context, entry *entity.MoodEntry) error {
	vr := &sheets.ValueRange{
		Values: [][]any{{
			entry.Timestamp.In(er.loc).Format(timestampLayout),
			entry.Mood,
			entry.Note,
		}},
	}
	if err := er.conn.Append(ctx, er.spreadsheet, er.readRange, vr); err != nil {
		return fmt.Errorf("%w: appending entry row: %s", errorvalues.ErrStoreUnavailable, err.Error())
	}
	return nil
}

func (er *EntriesRepository) FetchAll(ctx context.Context) ([]entity.MoodEntry, error) {
	vr, err := er.conn.Get(ctx, er.spreadsheet, er.readRange)
	if err != nil {
		return nil, fmt.Errorf("%w: reading entry rows: %s", errorvalues.ErrStoreUnavailable, err.Error())
	}
	entries := make([]entity.MoodEntry, 0)
	if vr == nil || len(vr.Values) < 2 {
		return entries, nil
	}
	// First row is the header
	for _, row := range vr.Values[1:] {
		if len(row) < 2 {
			continue
		}
		ts, ok := row[0].(string)
		if !ok {
			continue
		}
		stamp, err := time.ParseInLocation(timestampLayout, ts, er.loc)
		if err != nil {
			continue
		}
		e := entity.MoodEntry{
			Timestamp: stamp,
			Mood:      fmt.Sprint(row[1]),
		}
		if len(row) > 2 {
			e.Note = fmt.Sprint(row[2])
		}
		entries = append(entries, e)
	}
	return entries, nil
}
