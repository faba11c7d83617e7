package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	errorvalues "github.com/limbo/moodlog/internal/error_values"
	"github.com/limbo/moodlog/internal/repository"
	"github.com/limbo/moodlog/pkg/entity"
)

// KnownMoods is the fixed selection the form offers
var KnownMoods = []string{"😊", "😠", "😕", "🎉"}

// MoodColors matches chart bars to moods
var MoodColors = map[string]string{
	"🎉": "darkgreen",
	"😊": "lightgreen",
	"😕": "lightcoral",
	"😠": "darkred",
}

type MoodsService struct {
	repo   repository.EntriesRepositoryI
	policy GranularityPolicy
	loc    *time.Location
	now    func() time.Time
}

func NewMoodsService(entriesRepo repository.EntriesRepositoryI, loc *time.Location) *MoodsService {
	if entriesRepo == nil {
		log.Fatal("provided nil entriesRepo")
	}
	if loc == nil {
		loc = time.Local
	}
	return &MoodsService{
		repo:   entriesRepo,
		policy: DefaultGranularityPolicy,
		loc:    loc,
		now:    time.Now,
	}
}

// NewMoodsServiceWithClock pins the timestamp source, for tests
func NewMoodsServiceWithClock(entriesRepo repository.EntriesRepositoryI, loc *time.Location, now func() time.Time) *MoodsService {
	ms := NewMoodsService(entriesRepo, loc)
	ms.now = now
	return ms
}

func (ms *MoodsService) LogMood(ctx context.Context, req *LogMoodRequest) (*entity.MoodEntry, error) {
	if err := validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			for _, fieldErr := range vErrs {
				if fieldErr.Field() == "Note" {
					return nil, errorvalues.ErrNoteTooLong
				}
			}
			return nil, errorvalues.ErrUnknownMood
		}
		return nil, errors.New("validating log request error: " + err.Error())
	}
	entry := entity.MoodEntry{
		Timestamp: ms.now().In(ms.loc),
		Mood:      req.Mood,
		Note:      req.Note,
	}
	if err := ms.repo.Append(ctx, &entry); err != nil {
		if errors.Is(err, errorvalues.ErrStoreUnavailable) {
			return nil, err
		}
		return nil, errors.New("entries repository error: " + err.Error())
	}
	return &entry, nil
}

func (ms *MoodsService) Overview(ctx context.Context, rng entity.DateRange) (*OverviewResult, error) {
	entries, err := ms.repo.FetchAll(ctx)
	if err != nil {
		if errors.Is(err, errorvalues.ErrStoreUnavailable) {
			return nil, err
		}
		return nil, errors.New("entries repository error: " + err.Error())
	}
	result, err := Aggregate(entries, rng, ms.policy)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, b := range result.Buckets {
		for _, c := range b.Counts {
			total += c
		}
	}
	return &OverviewResult{
		Range:  rng,
		Result: result,
		Colors: MoodColors,
		Total:  total,
	}, nil
}
