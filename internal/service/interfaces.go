package service

import (
	"context"

	"github.com/limbo/moodlog/pkg/entity"
)

type LogMoodRequest struct {
	Mood string `validate:"required,known_mood"`
	Note string `validate:"max=256"`
}

type OverviewResult struct {
	Range  entity.DateRange         `json:"range"`
	Result *entity.AggregatedResult `json:"result"`
	Colors map[string]string        `json:"colors"`
	Total  int                      `json:"total"`
}

type MoodsServiceI interface {
	// Validates the selection, stamps the current time and appends a row to the entry store
	LogMood(ctx context.Context, req *LogMoodRequest) (*entity.MoodEntry, error)
	// Fetches every entry and aggregates the ones inside rng into chart-ready buckets
	Overview(ctx context.Context, rng entity.DateRange) (*OverviewResult, error)
}
