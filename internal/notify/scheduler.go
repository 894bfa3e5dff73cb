// Package notify schedules local expiry reminders. Each item with an
// expiration date gets two reminders: one when it enters the expiring-soon
// window and one on the expiration day itself. A cron job sweeps due
// reminders and hands them to the delivery callback.
package notify

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pantryterm/pantry/internal/expiry"
	"github.com/pantryterm/pantry/internal/models"
	"github.com/pantryterm/pantry/internal/util"
)

// Kind distinguishes the two reminders scheduled per item.
type Kind string

const (
	KindExpiring Kind = "expiring"
	KindExpired  Kind = "expired"
)

// Reminder is a pending local notification for an item.
type Reminder struct {
	ItemID string
	Title  string
	Kind   Kind
	At     time.Time
}

// Message returns the user-facing reminder text.
func (r Reminder) Message() string {
	switch r.Kind {
	case KindExpired:
		return fmt.Sprintf("%s has expired", r.Title)
	default:
		return fmt.Sprintf("%s is expiring soon", r.Title)
	}
}

// Service keeps per-item reminders and sweeps them on a cron schedule.
// It implements the inventory package's ReminderScheduler interface.
type Service struct {
	clock *util.Clock
	hour  int

	mu        sync.Mutex
	reminders map[string][]Reminder

	cron    *cron.Cron
	entryID cron.EntryID

	deliver func(Reminder)
}

// NewService creates a reminder service. hour is the local hour at which
// reminders fire.
func NewService(clock *util.Clock, hour int) *Service {
	return &Service{
		clock:     clock,
		hour:      hour,
		reminders: make(map[string][]Reminder),
		cron:      cron.New(),
		deliver: func(r Reminder) {
			slog.Info("reminder", "item_id", r.ItemID, "kind", r.Kind, "message", r.Message())
		},
	}
}

// OnDeliver replaces the delivery callback. The default logs the reminder.
func (s *Service) OnDeliver(fn func(Reminder)) {
	if fn != nil {
		s.deliver = fn
	}
}

// Start begins the daily reminder sweep.
func (s *Service) Start() error {
	spec := fmt.Sprintf("0 %d * * *", s.hour)
	id, err := s.cron.AddFunc(spec, s.sweep)
	if err != nil {
		return fmt.Errorf("registering reminder sweep: %w", err)
	}
	s.entryID = id
	s.cron.Start()

	slog.Info("reminder scheduler started", "hour", s.hour)
	return nil
}

// Stop halts the sweep. Pending reminders stay queued.
func (s *Service) Stop() {
	s.cron.Stop()
	slog.Info("reminder scheduler stopped")
}

// ScheduleFor queues both reminders for an item. Items without an
// expiration date, or already expired ones, get nothing.
func (s *Service) ScheduleFor(item *models.Item, thresholdDays int) {
	if item.ExpirationDate == nil {
		return
	}
	if d, ok := expiry.DaysUntil(item.ExpirationDate, s.clock.Now()); !ok || d <= 0 {
		return
	}

	expiresAt := atHour(*item.ExpirationDate, s.hour)
	warnAt := atHour(item.ExpirationDate.AddDate(0, 0, -thresholdDays), s.hour)

	var queued []Reminder
	if warnAt.After(s.clock.Now()) {
		queued = append(queued, Reminder{
			ItemID: item.ID,
			Title:  item.Title,
			Kind:   KindExpiring,
			At:     warnAt,
		})
	}
	queued = append(queued, Reminder{
		ItemID: item.ID,
		Title:  item.Title,
		Kind:   KindExpired,
		At:     expiresAt,
	})

	s.mu.Lock()
	s.reminders[item.ID] = queued
	s.mu.Unlock()
}

// CancelFor drops all reminders for an item.
func (s *Service) CancelFor(itemID string) {
	s.mu.Lock()
	delete(s.reminders, itemID)
	s.mu.Unlock()
}

// CancelAll drops every pending reminder.
func (s *Service) CancelAll() {
	s.mu.Lock()
	s.reminders = make(map[string][]Reminder)
	s.mu.Unlock()
}

// RescheduleAll rebuilds the queue from scratch, typically after the
// threshold changes or the inventory reloads.
func (s *Service) RescheduleAll(items []*models.Item, thresholdDays int) {
	s.CancelAll()
	for _, item := range items {
		s.ScheduleFor(item, thresholdDays)
	}
}

// Pending returns the queued reminders for an item, soonest first.
func (s *Service) Pending(itemID string) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Reminder, len(s.reminders[itemID]))
	copy(out, s.reminders[itemID])
	return out
}

// PendingCount returns the total number of queued reminders.
func (s *Service) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, rs := range s.reminders {
		n += len(rs)
	}
	return n
}

// Due returns reminders whose time has passed without removing them.
func (s *Service) Due(now time.Time) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Reminder
	for _, rs := range s.reminders {
		for _, r := range rs {
			if !r.At.After(now) {
				due = append(due, r)
			}
		}
	}
	return due
}

// sweep delivers and removes all due reminders.
func (s *Service) sweep() {
	now := s.clock.Now()

	s.mu.Lock()
	var fired []Reminder
	for id, rs := range s.reminders {
		var keep []Reminder
		for _, r := range rs {
			if !r.At.After(now) {
				fired = append(fired, r)
			} else {
				keep = append(keep, r)
			}
		}
		if len(keep) == 0 {
			delete(s.reminders, id)
		} else {
			s.reminders[id] = keep
		}
	}
	s.mu.Unlock()

	for _, r := range fired {
		s.deliver(r)
	}
}

// atHour returns the given day at the configured delivery hour.
func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
