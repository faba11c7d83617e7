package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/limbo/moodlog/internal/service"
	"github.com/limbo/moodlog/pkg/entity"
)

var refreshUnits = map[string]time.Duration{
	"seconds": time.Second,
	"minutes": time.Minute,
	"hours":   time.Hour,
}

type Snapshot struct {
	Result    *service.OverviewResult `json:"result"`
	FetchedAt time.Time               `json:"fetched_at"`
}

// Refresher owns the chart refresh lifecycle: it remembers the last selected
// date range and its overview snapshot, and in interval mode re-fetches them
// on a ticker. Reconfiguring replaces the ticker goroutine. A refresh
// triggered by a submission holds busy for its whole round, so ticker ticks
// arriving meanwhile are skipped instead of piling up behind it.
type Refresher struct {
	moods service.MoodsServiceI

	busy sync.Mutex // held across a fetch-and-aggregate round

	mu       sync.Mutex // guards the fields below
	settings entity.RefreshSettings
	rng      entity.DateRange
	hasRange bool
	snapshot *Snapshot
	cancel   context.CancelFunc
}

func NewRefresher(moods service.MoodsServiceI) *Refresher {
	return &Refresher{
		moods:    moods,
		settings: entity.RefreshSettings{Mode: entity.RefreshOnSubmit},
	}
}

// Configure replaces the refresh mode. Switching to interval mode starts a
// new ticker goroutine; any previous one is cancelled first.
func (rf *Refresher) Configure(settings entity.RefreshSettings) error {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if settings.Mode != entity.RefreshOnSubmit && settings.Mode != entity.RefreshInterval {
		return errors.New("unknown refresh mode")
	}
	if rf.cancel != nil {
		rf.cancel()
		rf.cancel = nil
	}
	if settings.Mode == entity.RefreshInterval {
		unit, ok := refreshUnits[settings.Unit]
		if !ok {
			return errors.New("unknown refresh unit")
		}
		if settings.Every < 1 || settings.Every > 60 {
			return errors.New("refresh magnitude out of 1..60")
		}
		ctx, cancel := context.WithCancel(context.Background())
		rf.cancel = cancel
		go rf.loop(ctx, time.Duration(settings.Every)*unit)
	}
	rf.settings = settings
	return nil
}

func (rf *Refresher) Settings() entity.RefreshSettings {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	return rf.settings
}

// LastRange reports the most recently refreshed selection, if any.
func (rf *Refresher) LastRange() (entity.DateRange, bool) {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	return rf.rng, rf.hasRange
}

func (rf *Refresher) LastSnapshot() *Snapshot {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	return rf.snapshot
}

// Refresh synchronously fetches and aggregates rng, remembering it as the
// current selection. Submissions and overview requests come through here.
func (rf *Refresher) Refresh(ctx context.Context, rng entity.DateRange) (*Snapshot, error) {
	rf.busy.Lock()
	defer rf.busy.Unlock()
	return rf.refresh(ctx, rng)
}

func (rf *Refresher) Stop() {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if rf.cancel != nil {
		rf.cancel()
		rf.cancel = nil
	}
}

func (rf *Refresher) loop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rf.tick(ctx)
		}
	}
}

func (rf *Refresher) tick(ctx context.Context) {
	// An in-flight submission refresh wins over the tick
	if !rf.busy.TryLock() {
		return
	}
	defer rf.busy.Unlock()
	rf.mu.Lock()
	rng, ok := rf.rng, rf.hasRange
	rf.mu.Unlock()
	if !ok {
		return
	}
	rf.refresh(ctx, rng)
}

func (rf *Refresher) refresh(ctx context.Context, rng entity.DateRange) (*Snapshot, error) {
	result, err := rf.moods.Overview(ctx, rng)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Result:    result,
		FetchedAt: time.Now(),
	}
	rf.mu.Lock()
	rf.rng = rng
	rf.hasRange = true
	rf.snapshot = snap
	rf.mu.Unlock()
	return snap, nil
}
