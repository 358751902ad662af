package db

import (
	"fmt"
	"log/slog"
)

// Default settings values.
var defaultSettings = map[string]string{
	"board_width":     "4",
	"board_height":    "4",
	"max_sessions":    "256",
	"session_ttl_min": "120",
	"leaderboard_max": "100",
}

// GetSetting retrieves a single setting value by key, returning the default if not set.
func (d *DB) GetSetting(key string) (string, error) {
	slog.Debug("getting setting", "key", key)

	var value string
	err := d.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if defVal, ok := defaultSettings[key]; ok {
			slog.Debug("setting not found, returning default", "key", key, "default", defVal)
			return defVal, nil
		}
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}

	return value, nil
}

// SetSetting upserts a setting key-value pair.
func (d *DB) SetSetting(key, value string) error {
	_, err := d.conn.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}

	slog.Info("setting updated", "key", key, "value", value)
	return nil
}

// GetAllSettings retrieves all settings, filling in defaults for missing keys.
func (d *DB) GetAllSettings() (map[string]string, error) {
	result := make(map[string]string)
	for k, v := range defaultSettings {
		result[k] = v
	}

	rows, err := d.conn.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting row: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate setting rows: %w", err)
	}

	slog.Debug("settings loaded", "count", len(result))
	return result, nil
}
