// Package settings manages persisted user preferences: the expiring-soon
// threshold and the display theme.
package settings

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/pantryterm/pantry/internal/config"
	"github.com/pantryterm/pantry/internal/models"
	"github.com/pantryterm/pantry/internal/repository"
)

const (
	keyThresholdDays = "expiry_threshold_days"
	keyTheme         = "theme"

	// DefaultThresholdDays is restored by ResetDefaults.
	DefaultThresholdDays = 5
	// MinThresholdDays is the lowest accepted threshold.
	MinThresholdDays = 1
)

// DefaultTheme is restored by ResetDefaults.
const DefaultTheme = config.ThemeSystem

// Service provides read/write access to persisted settings. Values are
// cached in memory; the settings table is the source of truth across runs.
type Service struct {
	db   *sql.DB
	repo *repository.SettingsRepository

	mu        sync.RWMutex
	threshold int
	theme     config.Theme

	onThreshold []func(int)
	onTheme     []func(config.Theme)
}

// NewService creates a settings service seeded with config defaults.
// Call Load before use to pick up persisted values.
func NewService(db *sql.DB, cfg *config.Config) *Service {
	threshold := cfg.Tracker.ExpiryThresholdDays
	if threshold < MinThresholdDays {
		threshold = DefaultThresholdDays
	}
	theme := cfg.Display.Theme
	if theme == "" {
		theme = DefaultTheme
	}

	return &Service{
		db:        db,
		repo:      repository.NewSettingsRepository(db),
		threshold: threshold,
		theme:     theme,
	}
}

// Load reads persisted settings, keeping the config-seeded values for any
// key that has never been written.
func (s *Service) Load(ctx context.Context) error {
	if value, ok, err := s.repo.Get(ctx, keyThresholdDays); err != nil {
		return fmt.Errorf("loading threshold: %w", err)
	} else if ok {
		n, err := strconv.Atoi(value)
		if err != nil || n < MinThresholdDays {
			slog.Warn("ignoring invalid persisted threshold", "value", value)
		} else {
			s.mu.Lock()
			s.threshold = n
			s.mu.Unlock()
		}
	}

	if value, ok, err := s.repo.Get(ctx, keyTheme); err != nil {
		return fmt.Errorf("loading theme: %w", err)
	} else if ok {
		theme := config.Theme(value)
		switch theme {
		case config.ThemeLight, config.ThemeDark, config.ThemeSystem:
			s.mu.Lock()
			s.theme = theme
			s.mu.Unlock()
		default:
			slog.Warn("ignoring invalid persisted theme", "value", value)
		}
	}

	return nil
}

// ThresholdDays returns the current expiring-soon threshold.
func (s *Service) ThresholdDays() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.threshold
}

// Theme returns the current display theme.
func (s *Service) Theme() config.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// OnThresholdChange registers a callback fired after the threshold is
// persisted. Derived views and reminder rescheduling hang off this.
func (s *Service) OnThresholdChange(fn func(days int)) {
	s.onThreshold = append(s.onThreshold, fn)
}

// OnThemeChange registers a callback fired after the theme is persisted.
func (s *Service) OnThemeChange(fn func(theme config.Theme)) {
	s.onTheme = append(s.onTheme, fn)
}

// SetThresholdDays validates, persists, and announces a new threshold.
func (s *Service) SetThresholdDays(ctx context.Context, days int) error {
	if days < MinThresholdDays {
		return &models.ValidationError{
			Field:  "threshold",
			Reason: fmt.Sprintf("must be at least %d day", MinThresholdDays),
		}
	}

	if err := s.repo.Set(ctx, nil, keyThresholdDays, strconv.Itoa(days)); err != nil {
		return fmt.Errorf("persisting threshold: %w", err)
	}

	s.mu.Lock()
	s.threshold = days
	s.mu.Unlock()

	slog.Info("threshold updated", "days", days)
	s.fireThreshold(days)
	return nil
}

// SetTheme validates, persists, and announces a new theme.
func (s *Service) SetTheme(ctx context.Context, theme config.Theme) error {
	switch theme {
	case config.ThemeLight, config.ThemeDark, config.ThemeSystem:
	default:
		return &models.ValidationError{Field: "theme", Reason: "must be light, dark, or system"}
	}

	if err := s.repo.Set(ctx, nil, keyTheme, string(theme)); err != nil {
		return fmt.Errorf("persisting theme: %w", err)
	}

	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()

	slog.Info("theme updated", "theme", theme)
	s.fireTheme(theme)
	return nil
}

// ResetDefaults restores the default threshold and theme in one
// transaction, then fires both change hooks.
func (s *Service) ResetDefaults(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning reset transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.repo.Set(ctx, tx, keyThresholdDays, strconv.Itoa(DefaultThresholdDays)); err != nil {
		return fmt.Errorf("resetting threshold: %w", err)
	}
	if err := s.repo.Set(ctx, tx, keyTheme, string(DefaultTheme)); err != nil {
		return fmt.Errorf("resetting theme: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reset: %w", err)
	}

	s.mu.Lock()
	s.threshold = DefaultThresholdDays
	s.theme = DefaultTheme
	s.mu.Unlock()

	slog.Info("settings reset to defaults")
	s.fireThreshold(DefaultThresholdDays)
	s.fireTheme(DefaultTheme)
	return nil
}

func (s *Service) fireThreshold(days int) {
	for _, fn := range s.onThreshold {
		fn(days)
	}
}

func (s *Service) fireTheme(theme config.Theme) {
	for _, fn := range s.onTheme {
		fn(theme)
	}
}
