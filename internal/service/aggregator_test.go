package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errorvalues "github.com/limbo/moodlog/internal/error_values"
	"github.com/limbo/moodlog/internal/service"
	"github.com/limbo/moodlog/pkg/entity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func totalCounts(res *entity.AggregatedResult) int {
	total := 0
	for _, b := range res.Buckets {
		for _, c := range b.Counts {
			total += c
		}
	}
	return total
}

func TestAggregateTwoDayScenario(t *testing.T) {
	entries := []entity.MoodEntry{
		{Timestamp: at(2024, time.January, 1, 9), Mood: "😊"},
		{Timestamp: at(2024, time.January, 1, 18), Mood: "😠", Note: "bad day"},
		{Timestamp: at(2024, time.January, 2, 10), Mood: "😊"},
	}
	rng := entity.DateRange{Start: day(2024, time.January, 1), End: day(2024, time.January, 2)}
	res, err := service.Aggregate(entries, rng, service.DefaultGranularityPolicy)
	require.NoError(t, err)
	assert.Equal(t, entity.GranularityDay, res.Granularity)
	require.Len(t, res.Buckets, 2)
	assert.Equal(t, "Jan 1", res.Buckets[0].Label)
	assert.Equal(t, map[string]int{"😊": 1, "😠": 1}, res.Buckets[0].Counts)
	assert.Equal(t, "Jan 2", res.Buckets[1].Label)
	assert.Equal(t, map[string]int{"😊": 1}, res.Buckets[1].Counts)
}

func TestAggregateInvalidRange(t *testing.T) {
	rng := entity.DateRange{Start: day(2024, time.March, 2), End: day(2024, time.March, 1)}
	_, err := service.Aggregate(nil, rng, service.DefaultGranularityPolicy)
	assert.ErrorIs(t, err, errorvalues.ErrInvalidRange)
}

func TestAggregateEmptyEntriesSingleDay(t *testing.T) {
	rng := entity.DateRange{Start: day(2024, time.March, 1), End: day(2024, time.March, 1)}
	res, err := service.Aggregate([]entity.MoodEntry{}, rng, service.DefaultGranularityPolicy)
	require.NoError(t, err)
	require.Len(t, res.Buckets, 1)
	assert.Equal(t, "Mar 1", res.Buckets[0].Label)
	assert.Empty(t, res.Buckets[0].Counts)
}

func TestAggregateExcludesOutOfRange(t *testing.T) {
	entries := []entity.MoodEntry{
		{Timestamp: at(2024, time.January, 1, 12), Mood: "😊"},
		{Timestamp: at(2024, time.January, 5, 12), Mood: "😕"},
		{Timestamp: at(2024, time.January, 9, 12), Mood: "🎉"},
	}
	rng := entity.DateRange{Start: day(2024, time.January, 2), End: day(2024, time.January, 8)}
	res, err := service.Aggregate(entries, rng, service.DefaultGranularityPolicy)
	require.NoError(t, err)
	assert.Equal(t, 1, totalCounts(res))
	assert.Len(t, res.Buckets, 7)
}

func TestAggregateSumInvariant(t *testing.T) {
	entries := make([]entity.MoodEntry, 0)
	moods := []string{"😊", "😠", "😕", "🎉"}
	// One entry every 11 hours across two months
	for ts := at(2024, time.February, 1, 0); ts.Before(at(2024, time.April, 1, 0)); ts = ts.Add(11 * time.Hour) {
		entries = append(entries, entity.MoodEntry{Timestamp: ts, Mood: moods[len(entries)%len(moods)]})
	}
	rng := entity.DateRange{Start: day(2024, time.February, 10), End: day(2024, time.March, 20)}
	res, err := service.Aggregate(entries, rng, service.DefaultGranularityPolicy)
	require.NoError(t, err)

	inRange := 0
	for _, e := range entries {
		d := day(e.Timestamp.Year(), e.Timestamp.Month(), e.Timestamp.Day())
		if !d.Before(rng.Start) && !d.After(rng.End) {
			inRange++
		}
	}
	assert.Equal(t, inRange, totalCounts(res))
}

func TestAggregateBucketsContiguous(t *testing.T) {
	ranges := []entity.DateRange{
		{Start: day(2024, time.January, 3), End: day(2024, time.January, 3)},
		{Start: day(2024, time.January, 3), End: day(2024, time.January, 31)},
		{Start: day(2024, time.March, 6), End: day(2024, time.May, 20)},
		{Start: day(2024, time.February, 10), End: day(2024, time.November, 2)},
		{Start: day(2023, time.June, 15), End: day(2025, time.February, 1)},
	}
	for _, rng := range ranges {
		res, err := service.Aggregate(nil, rng, service.DefaultGranularityPolicy)
		require.NoError(t, err)
		require.NotEmpty(t, res.Buckets)
		assert.Equal(t, rng.Start, res.Buckets[0].Start)
		assert.Equal(t, rng.End, res.Buckets[len(res.Buckets)-1].End)
		for i := 1; i < len(res.Buckets); i++ {
			assert.Equal(t, res.Buckets[i-1].End.AddDate(0, 0, 1), res.Buckets[i].Start,
				"gap or overlap between buckets %d and %d", i-1, i)
		}
	}
}

func TestAggregateWeekLabels(t *testing.T) {
	// Wed Mar 6 through Mon May 20 2024, 76 days -> weekly buckets
	rng := entity.DateRange{Start: day(2024, time.March, 6), End: day(2024, time.May, 20)}
	res, err := service.Aggregate(nil, rng, service.DefaultGranularityPolicy)
	require.NoError(t, err)
	assert.Equal(t, entity.GranularityWeek, res.Granularity)
	// Clipped first bucket is still labeled by its week's Monday
	assert.Equal(t, "Week of 2024-03-04", res.Buckets[0].Label)
	assert.Equal(t, day(2024, time.March, 10), res.Buckets[0].End)
	assert.Equal(t, "Week of 2024-03-11", res.Buckets[1].Label)
}

func TestAggregateMonthLabels(t *testing.T) {
	rng := entity.DateRange{Start: day(2024, time.February, 10), End: day(2024, time.November, 2)}
	res, err := service.Aggregate(nil, rng, service.DefaultGranularityPolicy)
	require.NoError(t, err)
	assert.Equal(t, entity.GranularityMonth, res.Granularity)
	require.Len(t, res.Buckets, 10)
	assert.Equal(t, "Feb 2024", res.Buckets[0].Label)
	assert.Equal(t, day(2024, time.February, 29), res.Buckets[0].End)
	assert.Equal(t, "Nov 2024", res.Buckets[9].Label)
	assert.Equal(t, day(2024, time.November, 2), res.Buckets[9].End)
}

func TestAggregateLongRangeYearly(t *testing.T) {
	// 400-day range touches two years
	rng := entity.DateRange{Start: day(2023, time.June, 1), End: day(2024, time.July, 5)}
	res, err := service.Aggregate(nil, rng, service.DefaultGranularityPolicy)
	require.NoError(t, err)
	assert.Equal(t, entity.GranularityYear, res.Granularity)
	require.Len(t, res.Buckets, 2)
	assert.Equal(t, "2023", res.Buckets[0].Label)
	assert.Equal(t, "2024", res.Buckets[1].Label)
}

func TestGranularityMonotonicInSpan(t *testing.T) {
	rank := map[entity.Granularity]int{
		entity.GranularityDay:   0,
		entity.GranularityWeek:  1,
		entity.GranularityMonth: 2,
		entity.GranularityYear:  3,
	}
	prev := -1
	for span := 1; span <= 500; span++ {
		got := rank[service.DefaultGranularityPolicy.Pick(span)]
		assert.GreaterOrEqual(t, got, prev, "granularity got finer at span %d", span)
		prev = got
	}
}
