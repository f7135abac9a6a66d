package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const createStateTable = `CREATE TABLE IF NOT EXISTS app_state (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// KV reads and writes JSON documents by key. Each Put is a single
// upsert statement, so one logical state update is never partially
// visible to a later Get.
type KV struct {
	db *sql.DB
}

// Get unmarshals the value stored under key into out. The boolean
// reports whether a usable value was found: a missing key or a value
// that no longer unmarshals both return (false, nil), leaving out at
// its caller-provided default. Startup must never fail on bad state.
func (kv *KV) Get(ctx context.Context, key string, out any) (bool, error) {
	var raw string
	err := kv.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// Corrupt stored value: fall back to the default.
		return false, nil
	}
	return true, nil
}

// Put stores v under key, replacing any previous value.
func (kv *KV) Put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = kv.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Delete removes a key. Missing keys are not an error.
func (kv *KV) Delete(ctx context.Context, key string) error {
	if _, err := kv.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Clear removes all stored state. Used by the reset command.
func (kv *KV) Clear(ctx context.Context) error {
	if _, err := kv.db.ExecContext(ctx, `DELETE FROM app_state`); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}
