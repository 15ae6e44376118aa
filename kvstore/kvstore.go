// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package kvstore is durable per-session string→string storage backed by the
// SQL database. Values are stored as text with no schema versioning; numeric
// values are written as decimal or integer strings and coerced in SQL for
// atomic increments, so concurrent writers never lose an update to a
// read-then-write race.
package kvstore

import (
	"database/sql"
	"fmt"
	"strconv"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get reads a key. The second return is false when the key was never set.
func (s *Store) Get(token, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`
		SELECT value FROM kv WHERE session_token = $1 AND key = $2
	`, token, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read kv %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes a key unconditionally (upsert).
func (s *Store) Set(token, key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (session_token, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_token, key) DO UPDATE SET value = $4
	`, token, key, value, value)
	if err != nil {
		return fmt.Errorf("failed to write kv %s: %w", key, err)
	}
	return nil
}

// SetIfAbsent writes a key only when it has no value yet and returns the
// winning value either way. This is the primitive idempotent one-time
// generation is built on.
func (s *Store) SetIfAbsent(token, key, value string) (string, error) {
	_, err := s.db.Exec(`
		INSERT INTO kv (session_token, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_token, key) DO NOTHING
	`, token, key, value)
	if err != nil {
		return "", fmt.Errorf("failed to write kv %s: %w", key, err)
	}
	winner, ok, err := s.Get(token, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("kv %s missing after insert", key)
	}
	return winner, nil
}

// AddFloat atomically adds delta to a decimal-string key, creating it at
// delta when absent, and returns the new value.
func (s *Store) AddFloat(token, key string, delta float64) (float64, error) {
	var value string
	err := s.db.QueryRow(`
		INSERT INTO kv (session_token, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_token, key)
		DO UPDATE SET value = CAST(CAST(kv.value AS REAL) + $4 AS TEXT)
		RETURNING value
	`, token, key, strconv.FormatFloat(delta, 'f', -1, 64), delta).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("failed to increment kv %s: %w", key, err)
	}
	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("kv %s holds non-numeric value %q: %w", key, value, err)
	}
	return out, nil
}

// AddInt atomically adds delta to an integer-string key, creating it at
// delta when absent, and returns the new value.
func (s *Store) AddInt(token, key string, delta int) (int, error) {
	var value string
	err := s.db.QueryRow(`
		INSERT INTO kv (session_token, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_token, key)
		DO UPDATE SET value = CAST(CAST(kv.value AS INTEGER) + $4 AS TEXT)
		RETURNING value
	`, token, key, strconv.Itoa(delta), delta).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("failed to increment kv %s: %w", key, err)
	}
	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("kv %s holds non-integer value %q: %w", key, value, err)
	}
	return out, nil
}
