// Package history keeps the recent-search list: most-recent-first,
// deduplicated by term, capped, and persisted through a small key-value
// abstraction so the TUI and tests can pick their own backend.
package history

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"
)

// storageKey is the single durable key holding the JSON-serialized list.
const storageKey = "searchHistory"

// DefaultLimit is the maximum number of entries kept when the caller does
// not configure one.
const DefaultLimit = 5

// ErrNotFound is returned by KV backends when the key has never been
// written. The store treats it as an empty history, not a failure.
var ErrNotFound = errors.New("history: key not found")

// Entry is one recorded search.
type Entry struct {
	Term        string    `json:"term"`
	Timestamp   time.Time `json:"timestamp"`
	ResultCount int       `json:"result_count"`
}

// KV is the durable backend contract. Implementations may persist
// asynchronously; the store's in-memory list is authoritative for callers
// either way.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Store holds the recent-search list.
type Store struct {
	kv      KV
	limit   int
	entries []Entry
}

// NewStore loads existing history from kv. Corrupt or missing data fails
// soft: the store starts empty and logs the problem. limit <= 0 selects
// DefaultLimit.
func NewStore(kv KV, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	s := &Store{kv: kv, limit: limit}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := s.kv.Get(storageKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("history: loading %q: %v", storageKey, err)
		}
		return
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("history: corrupt %q payload, starting empty: %v", storageKey, err)
		return
	}
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	s.entries = entries
}

// Load returns a copy of the current history, most recent first.
func (s *Store) Load() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Record prepends a search to the history and persists the result. A blank
// term is a no-op. Re-searching an existing term (case-sensitive exact
// match) moves it to the front with a fresh timestamp and result count.
func (s *Store) Record(term string, resultCount int) []Entry {
	if strings.TrimSpace(term) == "" {
		return s.Load()
	}

	kept := make([]Entry, 0, len(s.entries)+1)
	kept = append(kept, Entry{
		Term:        term,
		Timestamp:   time.Now(),
		ResultCount: resultCount,
	})
	for _, e := range s.entries {
		if e.Term == term {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) > s.limit {
		kept = kept[:s.limit]
	}
	s.entries = kept

	s.persist()
	return s.Load()
}

// Clear empties both the in-memory list and the persisted key.
func (s *Store) Clear() error {
	s.entries = nil
	if err := s.kv.Delete(storageKey); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func (s *Store) persist() {
	data, err := json.Marshal(s.entries)
	if err != nil {
		log.Printf("history: encoding entries: %v", err)
		return
	}
	if err := s.kv.Set(storageKey, data); err != nil {
		// The in-memory list stays authoritative; keep operating without
		// durable history.
		log.Printf("history: persisting %q: %v", storageKey, err)
	}
}
