package localstore

import (
	"encoding/json"
	"log/slog"
)

// malformedSentinel is the literal string some writers leave behind when they
// serialize a missing value. It reads as absent, never as a parse error.
const malformedSentinel = "undefined"

// Backend is the raw string-keyed durable store underneath the adapter.
type Backend interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// Store wraps a Backend with JSON encoding and defensive parsing. Storage and
// codec failures degrade to absent/no-op and are logged, never returned.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// New creates a Store. A nil backend is valid: every operation becomes a
// no-op and Get always reports absent.
func New(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{backend: backend, logger: logger}
}

// Get reads the value stored under key into dest. It reports false if the key
// is missing, holds the malformed sentinel, or fails to decode.
func (s *Store) Get(key string, dest any) bool {
	if s.backend == nil {
		return false
	}

	raw, ok, err := s.backend.GetItem(key)
	if err != nil {
		s.logger.Warn("localstore read failed", "key", key, "error", err)
		return false
	}
	if !ok || raw == malformedSentinel {
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.Warn("localstore decode failed", "key", key, "error", err)
		return false
	}
	return true
}

// Set encodes value and writes it under key. Nil values are skipped so a
// previously persisted value is never clobbered by an absent one.
func (s *Store) Set(key string, value any) {
	if s.backend == nil || value == nil {
		return
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("localstore encode failed", "key", key, "error", err)
		return
	}

	if err := s.backend.SetItem(key, string(encoded)); err != nil {
		s.logger.Warn("localstore write failed", "key", key, "error", err)
	}
}

// Remove deletes the entry under key if present.
func (s *Store) Remove(key string) {
	if s.backend == nil {
		return
	}
	if err := s.backend.RemoveItem(key); err != nil {
		s.logger.Warn("localstore remove failed", "key", key, "error", err)
	}
}
