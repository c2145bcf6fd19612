// Package cache implements a time-bounded cache layered over the persistent
// store. The cache is policy-agnostic: every read names its own maximum age,
// so call sites choose how stale a value they tolerate.
package cache

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/killallgit/player-core/internal/store"
)

// Entry is the stored shape of every cached value.
type Entry struct {
	Value     json.RawMessage `json:"value"`
	Timestamp time.Time       `json:"timestamp"`
}

// TTLCache caches JSON-serializable values in a Store with per-read expiry.
type TTLCache struct {
	store store.Store
	now   func() time.Time
}

// New creates a TTLCache over the given store.
func New(s store.Store) *TTLCache {
	return &TTLCache{store: s, now: time.Now}
}

// Key builds a cache key from an operation name and its arguments.
// Arguments are trimmed and lowercased so trivially different spellings of
// the same query share an entry.
func Key(operation string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, operation)
	for _, arg := range args {
		normalized := strings.ToLower(strings.TrimSpace(arg))
		parts = append(parts, strings.ReplaceAll(normalized, " ", "+"))
	}
	return strings.Join(parts, "_")
}

// Get unmarshals the cached value for key into dest if the entry exists and
// is younger than maxAge. An expired entry is treated as absent and deleted
// so it never satisfies a later read.
func (c *TTLCache) Get(key string, maxAge time.Duration, dest any) bool {
	raw, exists, err := c.store.Get(key)
	if err != nil {
		log.Printf("[WARN] Cache read for %s failed: %v", key, err)
		return false
	}
	if !exists {
		return false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		log.Printf("[WARN] Dropping corrupt cache entry %s: %v", key, err)
		_ = c.store.Remove(key)
		return false
	}

	if c.now().Sub(entry.Timestamp) >= maxAge {
		_ = c.store.Remove(key)
		return false
	}

	if err := json.Unmarshal(entry.Value, dest); err != nil {
		log.Printf("[WARN] Dropping unreadable cache entry %s: %v", key, err)
		_ = c.store.Remove(key)
		return false
	}
	return true
}

// Set stores value under key with the current timestamp.
func (c *TTLCache) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling cache value for %s: %w", key, err)
	}
	entry, err := json.Marshal(Entry{Value: raw, Timestamp: c.now()})
	if err != nil {
		return fmt.Errorf("marshaling cache entry for %s: %w", key, err)
	}
	return c.store.Set(key, entry)
}

// Clear removes every entry whose key starts with one of the given prefixes.
// Keys outside the prefixes (playback session records) are left alone.
func (c *TTLCache) Clear(prefixes ...string) error {
	keys, err := c.store.Keys()
	if err != nil {
		return fmt.Errorf("listing cache keys: %w", err)
	}

	removed := 0
	for _, key := range keys {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				if err := c.store.Remove(key); err != nil {
					return err
				}
				removed++
				break
			}
		}
	}
	log.Printf("[INFO] Cleared %d cache entries for prefixes %v", removed, prefixes)
	return nil
}
