// Package inventory owns the authoritative in-memory item collection and
// keeps it in step with the persistent store.
package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/pantryterm/pantry/internal/config"
	"github.com/pantryterm/pantry/internal/models"
	"github.com/pantryterm/pantry/internal/repository"
	"github.com/pantryterm/pantry/internal/util"
)

// Service provides item operations over a snapshot of the store.
// All reads are served from memory; mutations write through to SQLite and
// then adjust the snapshot, so a failed write never leaves a phantom item.
type Service struct {
	db          *sql.DB
	items       *repository.ItemRepository
	idGenerator *util.IDGenerator
	clock       *util.Clock
	sortOrder   config.SortOrder

	mu       sync.RWMutex
	snapshot []*models.Item

	subscribers []func([]*models.Item)

	reminders  ReminderScheduler
	thresholds ThresholdSource
}

// NewService creates a new inventory service.
func NewService(db *sql.DB, clock *util.Clock, sortOrder config.SortOrder) *Service {
	if sortOrder == "" {
		sortOrder = config.SortOrderExpirationDesc
	}
	return &Service{
		db:          db,
		items:       repository.NewItemRepository(db),
		idGenerator: util.NewIDGenerator(),
		clock:       clock,
		sortOrder:   sortOrder,
	}
}

// AttachReminders wires a reminder scheduler into item mutations. Without
// it the service runs fine and simply schedules nothing.
func (s *Service) AttachReminders(sched ReminderScheduler, thresholds ThresholdSource) {
	s.reminders = sched
	s.thresholds = thresholds
}

// Subscribe registers a callback invoked with a copy of the snapshot after
// every committed change. Callbacks run synchronously on the mutating
// goroutine; keep them cheap.
func (s *Service) Subscribe(fn func(items []*models.Item)) {
	s.subscribers = append(s.subscribers, fn)
}

// Load performs the initial read from the store. On failure the snapshot
// stays empty and the application keeps running in a degraded state.
func (s *Service) Load(ctx context.Context) error {
	return s.Reload(ctx)
}

// Reload re-reads all items from the store and applies the sort policy.
// When the store is unavailable the previous snapshot is kept.
func (s *Service) Reload(ctx context.Context) error {
	items, err := s.items.List(ctx)
	if err != nil {
		slog.Error("reloading items failed, keeping previous snapshot", "error", err)
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}

	s.sortItems(items)

	s.mu.Lock()
	s.snapshot = items
	s.mu.Unlock()

	s.notifySubscribers()
	return nil
}

// Items returns a copy of the current snapshot.
func (s *Service) Items() []*models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Item, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// Get returns the snapshot item with the given ID.
func (s *Service) Get(id string) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.snapshot {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, models.ErrNotFound
}

// Count returns the number of items in the snapshot.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshot)
}

// Add validates the input, persists a new item, and appends it to the
// snapshot.
func (s *Service) Add(ctx context.Context, input AddItemInput) (*models.Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	item := &models.Item{
		ID:             s.idGenerator.NewID(),
		Title:          strings.TrimSpace(input.Title),
		Quantity:       input.Quantity,
		Note:           input.Note,
		ExpirationDate: input.ExpirationDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.items.Insert(ctx, nil, item); err != nil {
		return nil, fmt.Errorf("adding item: %w", err)
	}

	s.mu.Lock()
	s.snapshot = append(s.snapshot, item)
	s.mu.Unlock()

	s.scheduleReminders(item)
	s.notifySubscribers()

	slog.Info("item added", "id", item.ID, "title", item.Title)
	return item, nil
}

// Replace overwrites an existing item's fields in place, preserving its
// position in the snapshot. Returns models.ErrNotFound for unknown IDs.
func (s *Service) Replace(ctx context.Context, id string, input UpdateItemInput) (*models.Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.RUnlock()
		return nil, models.ErrNotFound
	}
	existing := s.snapshot[idx]
	s.mu.RUnlock()

	updated := &models.Item{
		ID:             existing.ID,
		Title:          strings.TrimSpace(input.Title),
		Quantity:       input.Quantity,
		Note:           input.Note,
		ExpirationDate: input.ExpirationDate,
		CreatedAt:      existing.CreatedAt,
		UpdatedAt:      s.clock.Now().UTC(),
	}

	if err := s.items.Update(ctx, nil, updated); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("replacing item: %w", err)
	}

	s.mu.Lock()
	// Position may have shifted under a concurrent mutation; find it again.
	if idx = s.indexOfLocked(id); idx >= 0 {
		s.snapshot[idx] = updated
	}
	s.mu.Unlock()

	if s.reminders != nil {
		s.reminders.CancelFor(updated.ID)
	}
	s.scheduleReminders(updated)
	s.notifySubscribers()

	return updated, nil
}

// Remove deletes a single item.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, nil, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		return fmt.Errorf("removing item: %w", err)
	}

	s.mu.Lock()
	if idx := s.indexOfLocked(id); idx >= 0 {
		s.snapshot = append(s.snapshot[:idx], s.snapshot[idx+1:]...)
	}
	s.mu.Unlock()

	if s.reminders != nil {
		s.reminders.CancelFor(id)
	}
	s.notifySubscribers()

	slog.Info("item removed", "id", id)
	return nil
}

// RemoveMany deletes the given items best-effort: a failure on one ID does
// not stop the rest. The joined error reports every failed ID.
func (s *Service) RemoveMany(ctx context.Context, ids []string) error {
	var errs []error
	removed := 0

	for _, id := range ids {
		if err := s.items.Delete(ctx, nil, id); err != nil {
			errs = append(errs, fmt.Errorf("removing %s: %w", id, err))
			continue
		}

		s.mu.Lock()
		if idx := s.indexOfLocked(id); idx >= 0 {
			s.snapshot = append(s.snapshot[:idx], s.snapshot[idx+1:]...)
		}
		s.mu.Unlock()

		if s.reminders != nil {
			s.reminders.CancelFor(id)
		}
		removed++
	}

	if removed > 0 {
		s.notifySubscribers()
	}

	if len(errs) > 0 {
		slog.Warn("bulk remove partially failed", "requested", len(ids), "removed", removed)
		return errors.Join(errs...)
	}

	slog.Info("bulk remove complete", "removed", removed)
	return nil
}

// indexOfLocked returns the snapshot index for an ID. Callers hold s.mu.
func (s *Service) indexOfLocked(id string) int {
	for i, item := range s.snapshot {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// sortItems applies the configured sort policy in place.
func (s *Service) sortItems(items []*models.Item) {
	switch s.sortOrder {
	case config.SortOrderInsertion:
		// Repository list order is already insertion order.
	default:
		// Latest expirations first; items without a date sink to the end.
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].ExpirationDate, items[j].ExpirationDate
			switch {
			case a == nil && b == nil:
				return false
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.After(*b)
			}
		})
	}
}

func (s *Service) scheduleReminders(item *models.Item) {
	if s.reminders == nil {
		return
	}
	threshold := 5
	if s.thresholds != nil {
		threshold = s.thresholds.ThresholdDays()
	}
	s.reminders.ScheduleFor(item, threshold)
}

func (s *Service) notifySubscribers() {
	if len(s.subscribers) == 0 {
		return
	}
	items := s.Items()
	for _, fn := range s.subscribers {
		fn(items)
	}
}
