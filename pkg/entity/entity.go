package entity

import (
	"time"
)

type MoodEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Mood      string    `json:"mood"`
	Note      string    `json:"note,omitempty"`
}

// DateRange is an inclusive calendar-date interval. Start and End are
// midnight-normalized; a single-day selection has Start == End.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// Bucket is one chart bar group. Counts holds only the moods actually
// observed inside the bucket, keyed by mood symbol.
type Bucket struct {
	Label  string         `json:"label"`
	Start  time.Time      `json:"start"`
	End    time.Time      `json:"end"`
	Counts map[string]int `json:"counts"`
}

type AggregatedResult struct {
	Granularity Granularity `json:"granularity"`
	Buckets     []Bucket    `json:"buckets"`
}

type RefreshMode string

const (
	RefreshOnSubmit RefreshMode = "on_submit"
	RefreshInterval RefreshMode = "interval"
)

type RefreshSettings struct {
	Mode  RefreshMode `json:"mode"`
	Unit  string      `json:"unit,omitempty"`
	Every int         `json:"every,omitempty"`
}
