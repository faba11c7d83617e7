package service

import (
	"sort"
	"time"

	errorvalues "github.com/limbo/moodlog/internal/error_values"
	"github.com/limbo/moodlog/pkg/entity"
)

// GranularityRule maps range spans up to MaxSpanDays (inclusive) onto a
// bucket granularity. Rules are matched in order; spans beyond the last
// rule fall through to year buckets.
type GranularityRule struct {
	MaxSpanDays int
	Granularity entity.Granularity
}

type GranularityPolicy []GranularityRule

var DefaultGranularityPolicy = GranularityPolicy{
	{MaxSpanDays: 31, Granularity: entity.GranularityDay},
	{MaxSpanDays: 90, Granularity: entity.GranularityWeek},
	{MaxSpanDays: 365, Granularity: entity.GranularityMonth},
}

func (gp GranularityPolicy) Pick(spanDays int) entity.Granularity {
	for _, rule := range gp {
		if spanDays <= rule.MaxSpanDays {
			return rule.Granularity
		}
	}
	return entity.GranularityYear
}

// Aggregate buckets the entries whose calendar date falls inside rng into
// contiguous groups of the granularity the policy picks for the range span.
// Buckets partition the whole range, so empty ones still show up as zero
// bars; the first and last bucket are clipped to the range when it starts or
// ends mid-week, mid-month or mid-year.
func Aggregate(entries []entity.MoodEntry, rng entity.DateRange, policy GranularityPolicy) (*entity.AggregatedResult, error) {
	start := dateOnly(rng.Start)
	end := dateOnly(rng.End)
	if start.After(end) {
		return nil, errorvalues.ErrInvalidRange
	}
	span := int(end.Sub(start)/(24*time.Hour)) + 1
	gran := policy.Pick(span)
	buckets := makeBuckets(gran, start, end)
	for _, e := range entries {
		d := dateOnly(e.Timestamp)
		if d.Before(start) || d.After(end) {
			continue
		}
		i := sort.Search(len(buckets), func(i int) bool { return buckets[i].Start.After(d) }) - 1
		buckets[i].Counts[e.Mood]++
	}
	return &entity.AggregatedResult{
		Granularity: gran,
		Buckets:     buckets,
	}, nil
}

// dateOnly drops the time of day, keeping the calendar date the timestamp
// has in its own location. Bucket math runs on UTC midnights.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func makeBuckets(gran entity.Granularity, start, end time.Time) []entity.Bucket {
	buckets := make([]entity.Bucket, 0)
	for cur := start; !cur.After(end); {
		next := nextBoundary(gran, cur)
		last := next.AddDate(0, 0, -1)
		if last.After(end) {
			last = end
		}
		buckets = append(buckets, entity.Bucket{
			Label:  bucketLabel(gran, cur),
			Start:  cur,
			End:    last,
			Counts: make(map[string]int),
		})
		cur = next
	}
	return buckets
}

func nextBoundary(gran entity.Granularity, cur time.Time) time.Time {
	switch gran {
	case entity.GranularityDay:
		return cur.AddDate(0, 0, 1)
	case entity.GranularityWeek:
		return weekStart(cur).AddDate(0, 0, 7)
	case entity.GranularityMonth:
		return time.Date(cur.Year(), cur.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	default:
		return time.Date(cur.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

// weekStart gives the Monday of the week containing d
func weekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func bucketLabel(gran entity.Granularity, bucketStart time.Time) string {
	switch gran {
	case entity.GranularityDay:
		return bucketStart.Format("Jan 2")
	case entity.GranularityWeek:
		// Clipped first buckets are still labeled by their week's Monday
		return "Week of " + weekStart(bucketStart).Format("2006-01-02")
	case entity.GranularityMonth:
		return bucketStart.Format("Jan 2006")
	default:
		return bucketStart.Format("2006")
	}
}
