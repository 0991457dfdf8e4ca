package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// KVBackend implements localstore.Backend over the kv_entries table.
type KVBackend struct {
	db *DB
}

// NewKVBackend creates a new KVBackend
func NewKVBackend(db *DB) *KVBackend {
	return &KVBackend{db: db}
}

// GetItem reads the raw stored string for key.
func (b *KVBackend) GetItem(key string) (string, bool, error) {
	var value string
	err := b.db.QueryRow(`SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read kv entry: %w", err)
	}
	return value, true, nil
}

// SetItem writes value under key, replacing any previous entry.
func (b *KVBackend) SetItem(key, value string) error {
	_, err := b.db.Exec(`
		INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to write kv entry: %w", err)
	}
	return nil
}

// RemoveItem deletes the entry under key if present.
func (b *KVBackend) RemoveItem(key string) error {
	if _, err := b.db.Exec(`DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove kv entry: %w", err)
	}
	return nil
}
