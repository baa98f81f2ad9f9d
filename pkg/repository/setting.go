package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newspulse/pkg/domain"
)

const filterKey = "filter"

// SettingRepository handles setting-related database operations
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting value, empty string if not set
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// SetSetting stores a setting value
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	return withRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
			return fmt.Errorf("set setting: %w", err)
		}
		return nil
	})
}

// LoadFilter returns the stored user filter, false if none saved yet
func (r *SettingRepository) LoadFilter(ctx context.Context) (domain.Filter, bool, error) {
	value, err := r.GetSetting(ctx, filterKey)
	if err != nil {
		return domain.Filter{}, false, err
	}
	if value == "" {
		return domain.Filter{}, false, nil
	}
	var f domain.Filter
	if err := json.Unmarshal([]byte(value), &f); err != nil {
		return domain.Filter{}, false, fmt.Errorf("decode filter: %w", err)
	}
	return f, true, nil
}

// SaveFilter stores the user filter
func (r *SettingRepository) SaveFilter(ctx context.Context, f domain.Filter) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode filter: %w", err)
	}
	return r.SetSetting(ctx, filterKey, string(data))
}
