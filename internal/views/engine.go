// Package views derives the expiring-soon and search views from the item
// snapshot. The derived lists are pure functions of (items, threshold,
// search text); the engine only decides when to recompute them.
package views

import (
	"sort"
	"sync"
	"time"

	"github.com/pantryterm/pantry/internal/models"
	"github.com/pantryterm/pantry/internal/util"
)

// DefaultSearchDebounce is how long the engine waits after the last
// keystroke before committing a search.
const DefaultSearchDebounce = 100 * time.Millisecond

// Snapshot is an atomic view over the derived lists. Slices are copies;
// callers may hold or mutate them freely.
type Snapshot struct {
	Items         []*models.Item
	ExpiringSoon  []*models.Item
	SearchResults []*models.Item
	SearchText    string
	Threshold     int
}

// Engine recomputes derived views on explicit triggers: SetItems and
// SetThreshold synchronously, SetSearchText after a debounce interval.
// A generation counter discards stale debounced commits so an old search
// can never overwrite a newer one.
type Engine struct {
	clock    *util.Clock
	debounce time.Duration

	mu            sync.Mutex
	items         []*models.Item
	threshold     int
	searchText    string // committed search text
	expiringSoon  []*models.Item
	searchResults []*models.Item

	searchGen   uint64
	searchTimer *time.Timer

	subscribers []func(Snapshot)
}

// NewEngine creates a view engine with the given initial threshold.
func NewEngine(clock *util.Clock, threshold int) *Engine {
	e := &Engine{
		clock:     clock,
		debounce:  DefaultSearchDebounce,
		threshold: threshold,
	}
	e.recomputeLocked()
	return e
}

// SetDebounce overrides the search debounce interval. Zero commits
// searches synchronously.
func (e *Engine) SetDebounce(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.debounce = d
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// committed recompute.
func (e *Engine) Subscribe(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subscribers = append(e.subscribers, fn)
}

// SetItems replaces the input items and recomputes immediately.
func (e *Engine) SetItems(items []*models.Item) {
	e.mu.Lock()
	e.items = make([]*models.Item, len(items))
	copy(e.items, items)
	e.recomputeLocked()
	snap := e.snapshotLocked()
	subs := e.subscribers
	e.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// SetThreshold replaces the expiring-soon threshold and recomputes
// immediately. Values below one are clamped.
func (e *Engine) SetThreshold(days int) {
	if days < 1 {
		days = 1
	}

	e.mu.Lock()
	e.threshold = days
	e.recomputeLocked()
	snap := e.snapshotLocked()
	subs := e.subscribers
	e.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// SetSearchText schedules a debounced search commit. Rapid successive
// calls collapse into one recompute for the final text; an in-flight
// commit for older text is discarded by the generation check.
func (e *Engine) SetSearchText(text string) {
	e.mu.Lock()

	e.searchGen++
	gen := e.searchGen

	if e.searchTimer != nil {
		e.searchTimer.Stop()
		e.searchTimer = nil
	}

	if e.debounce <= 0 {
		e.commitSearchLocked(text)
		snap := e.snapshotLocked()
		subs := e.subscribers
		e.mu.Unlock()
		for _, fn := range subs {
			fn(snap)
		}
		return
	}

	e.searchTimer = time.AfterFunc(e.debounce, func() {
		e.commitSearch(gen, text)
	})
	e.mu.Unlock()
}

// commitSearch applies a debounced search if it is still the latest one.
func (e *Engine) commitSearch(gen uint64, text string) {
	e.mu.Lock()
	if gen != e.searchGen {
		// A newer search superseded this one while it waited.
		e.mu.Unlock()
		return
	}
	e.commitSearchLocked(text)
	snap := e.snapshotLocked()
	subs := e.subscribers
	e.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (e *Engine) commitSearchLocked(text string) {
	e.searchText = text
	e.searchResults = e.computeSearchLocked()
}

// Snapshot returns the current derived views as copies.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// SearchText returns the committed search text.
func (e *Engine) SearchText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.searchText
}

// Threshold returns the current threshold.
func (e *Engine) Threshold() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.threshold
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Items:         copyItems(e.items),
		ExpiringSoon:  copyItems(e.expiringSoon),
		SearchResults: copyItems(e.searchResults),
		SearchText:    e.searchText,
		Threshold:     e.threshold,
	}
}

func (e *Engine) recomputeLocked() {
	e.expiringSoon = e.computeExpiringLocked()
	e.searchResults = e.computeSearchLocked()
}

// computeExpiringLocked filters items due within the threshold and sorts
// them soonest first. Ties keep their snapshot order.
func (e *Engine) computeExpiringLocked() []*models.Item {
	now := e.clock.Now()

	var out []*models.Item
	for _, item := range e.items {
		if d, ok := item.DaysLeft(now); ok && d <= e.threshold {
			out = append(out, item)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpirationDate.Before(*out[j].ExpirationDate)
	})
	return out
}

func (e *Engine) computeSearchLocked() []*models.Item {
	if e.searchText == "" {
		return copyItems(e.items)
	}

	var out []*models.Item
	for _, item := range e.items {
		if item.MatchesSearch(e.searchText) {
			out = append(out, item)
		}
	}
	return out
}

func copyItems(items []*models.Item) []*models.Item {
	out := make([]*models.Item, len(items))
	copy(out, items)
	return out
}
