package storage

import (
	"encoding/json"
	"strconv"

	"github.com/hammamikhairi/tomatick/internal/domain"
	"github.com/hammamikhairi/tomatick/internal/logger"
)

// Typed wraps a Store with typed accessors. Malformed stored values
// read as absent (the fallback is returned) and are logged; they never
// propagate as errors to the caller.
type Typed struct {
	store domain.Store
	log   *logger.Logger
}

// NewTyped wraps store with typed accessors.
func NewTyped(store domain.Store, log *logger.Logger) *Typed {
	return &Typed{store: store, log: log}
}

// Store exposes the underlying raw store.
func (t *Typed) Store() domain.Store { return t.store }

// GetInt reads an integer, returning fallback when absent or malformed.
func (t *Typed) GetInt(key string, fallback int) int {
	raw, ok := t.store.Get(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		t.log.Warn("storage: key %s holds %q, not an int", key, raw)
		return fallback
	}
	return n
}

// SetInt stores an integer.
func (t *Typed) SetInt(key string, value int) {
	t.store.Set(key, strconv.Itoa(value))
}

// GetBool reads a boolean, returning fallback when absent or malformed.
func (t *Typed) GetBool(key string, fallback bool) bool {
	raw, ok := t.store.Get(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		t.log.Warn("storage: key %s holds %q, not a bool", key, raw)
		return fallback
	}
	return b
}

// SetBool stores a boolean.
func (t *Typed) SetBool(key string, value bool) {
	t.store.Set(key, strconv.FormatBool(value))
}

// GetString reads a string, returning fallback when absent.
func (t *Typed) GetString(key, fallback string) string {
	raw, ok := t.store.Get(key)
	if !ok {
		return fallback
	}
	return raw
}

// SetString stores a string.
func (t *Typed) SetString(key, value string) {
	t.store.Set(key, value)
}

// GetJSON unmarshals a stored JSON document into out. Returns false
// when the key is absent or the document is corrupt (logged). Callers
// pass a zero value and fall back to defaults on false.
func (t *Typed) GetJSON(key string, out any) bool {
	raw, ok := t.store.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		t.log.Warn("storage: key %s holds corrupt JSON: %v", key, err)
		return false
	}
	return true
}

// SetJSON marshals value and stores it. Serialization failures are
// logged and the write is dropped.
func (t *Typed) SetJSON(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		t.log.Error("storage: marshaling %s: %v", key, err)
		return
	}
	t.store.Set(key, string(data))
}

// Remove deletes a key.
func (t *Typed) Remove(key string) {
	t.store.Remove(key)
}

// Clear wipes the whole store.
func (t *Typed) Clear() {
	t.store.Clear()
}
