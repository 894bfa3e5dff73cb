// Package config provides configuration management for Pantry.
// Configurations are loaded from TOML files with XDG-compliant paths.
package config

import (
	"errors"
	"fmt"
)

// Config holds the complete application configuration.
type Config struct {
	Tracker   TrackerConfig   `toml:"tracker"`
	Display   DisplayConfig   `toml:"display"`
	Logging   LoggingConfig   `toml:"logging"`
	Database  DatabaseConfig  `toml:"database"`
	Reminders RemindersConfig `toml:"reminders"`
	Barcode   BarcodeConfig   `toml:"barcode"`
}

// TrackerConfig contains inventory behavior settings. The expiry threshold
// here is only the initial value; once the settings table holds a value the
// persisted one wins.
type TrackerConfig struct {
	ExpiryThresholdDays int       `toml:"expiry_threshold_days"`
	SortOrder           SortOrder `toml:"sort_order"`
	SearchDebounceMS    int       `toml:"search_debounce_ms"`
}

// SortOrder controls how the item list is ordered after a reload.
type SortOrder string

const (
	SortOrderExpirationDesc SortOrder = "expiration_desc"
	SortOrderInsertion      SortOrder = "insertion"
)

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	Theme      Theme  `toml:"theme"`
	DateFormat string `toml:"date_format"`
	TimeFormat string `toml:"time_format"`
}

// Theme selects the terminal color palette.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level      LogLevel `toml:"level"`
	File       string   `toml:"file"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// DatabaseConfig controls SQLite database settings.
type DatabaseConfig struct {
	Path                string `toml:"path"`
	BackupIntervalHours int    `toml:"backup_interval_hours"`
	BackupRetentionDays int    `toml:"backup_retention_days"`
}

// RemindersConfig controls local expiry reminders.
type RemindersConfig struct {
	Enabled bool `toml:"enabled"`
	// Hour is the local hour (0-23) at which reminders fire.
	Hour int `toml:"hour"`
}

// BarcodeConfig controls the UPC lookup client.
type BarcodeConfig struct {
	Enabled        bool   `toml:"enabled"`
	BaseURL        string `toml:"base_url"`
	AppID          string `toml:"app_id"`
	AppKey         string `toml:"app_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Tracker.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tracker: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	if err := c.Reminders.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("reminders: %w", err))
	}

	if err := c.Barcode.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("barcode: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the tracker configuration is valid.
func (t *TrackerConfig) Validate() error {
	var errs []error

	if t.ExpiryThresholdDays < 1 {
		errs = append(errs, errors.New("expiry_threshold_days must be at least 1"))
	}

	validOrders := map[SortOrder]bool{
		SortOrderExpirationDesc: true,
		SortOrderInsertion:      true,
	}

	if !validOrders[t.SortOrder] && t.SortOrder != "" {
		errs = append(errs, fmt.Errorf("invalid sort_order: %s", t.SortOrder))
	}

	if t.SearchDebounceMS < 0 {
		errs = append(errs, errors.New("search_debounce_ms must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	var errs []error

	validThemes := map[Theme]bool{
		ThemeLight:  true,
		ThemeDark:   true,
		ThemeSystem: true,
	}

	if !validThemes[d.Theme] && d.Theme != "" {
		errs = append(errs, fmt.Errorf("invalid theme: %s", d.Theme))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	var errs []error

	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		errs = append(errs, fmt.Errorf("invalid log level: %s", l.Level))
	}

	if l.MaxSizeMB < 0 {
		errs = append(errs, errors.New("max_size_mb must be non-negative"))
	}

	if l.MaxBackups < 0 {
		errs = append(errs, errors.New("max_backups must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	var errs []error

	if d.Path == "" {
		errs = append(errs, errors.New("path is required"))
	}

	if d.BackupIntervalHours < 0 {
		errs = append(errs, errors.New("backup_interval_hours must be non-negative"))
	}

	if d.BackupRetentionDays < 0 {
		errs = append(errs, errors.New("backup_retention_days must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the reminders configuration is valid.
func (r *RemindersConfig) Validate() error {
	if r.Hour < 0 || r.Hour > 23 {
		return errors.New("hour must be between 0 and 23")
	}
	return nil
}

// Validate checks that the barcode configuration is valid.
func (b *BarcodeConfig) Validate() error {
	var errs []error

	if b.Enabled && b.BaseURL == "" {
		errs = append(errs, errors.New("base_url is required when barcode lookup is enabled"))
	}

	if b.TimeoutSeconds < 0 {
		errs = append(errs, errors.New("timeout_seconds must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Tracker: TrackerConfig{
			ExpiryThresholdDays: 5,
			SortOrder:           SortOrderExpirationDesc,
			SearchDebounceMS:    100,
		},
		Display: DisplayConfig{
			Theme:      ThemeSystem,
			DateFormat: "2006-01-02",
			TimeFormat: "15:04:05",
		},
		Logging: LoggingConfig{
			Level:      LogLevelInfo,
			File:       "logs/pantry.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
		Database: DatabaseConfig{
			Path:                "pantry.db",
			BackupIntervalHours: 24,
			BackupRetentionDays: 30,
		},
		Reminders: RemindersConfig{
			Enabled: true,
			Hour:    12,
		},
		Barcode: BarcodeConfig{
			Enabled:        false,
			BaseURL:        "https://api.edamam.com",
			TimeoutSeconds: 15,
		},
	}
}
