package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"daftar/internal/core"
)

// GetSetting returns the stored value for a key, or "" when the key is absent.
func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w: %w", key, core.ErrUpstream, err)
	}
	return value, nil
}

func (r *SQLiteRepository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w: %w", key, core.ErrUpstream, err)
	}
	return nil
}

// PurgeAll wipes every entity table in one transaction. Settings and templates
// survive a reset; only ledger data is dropped.
func (r *SQLiteRepository) PurgeAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin purge: %w: %w", core.ErrUpstream, err)
	}
	defer tx.Rollback()

	for _, table := range []string{"expenses", "employees"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("purge %s: %w: %w", table, core.ErrUpstream, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit purge: %w: %w", core.ErrUpstream, err)
	}

	slog.WarnContext(ctx, "All ledger data purged")
	return nil
}
