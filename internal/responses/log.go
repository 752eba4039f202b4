package responses

import (
	"encoding/json"
	"sync"

	"github.com/janambabi/Forgive-Me/internal/kv"
	"github.com/janambabi/Forgive-Me/internal/telemetry"
)

// Log is the ordered collection of records plus its persisted mirror.
// Newest record first. The in-memory sequence is authoritative for the
// session; the mirror is best effort and its failures are swallowed.
type Log struct {
	mu       sync.Mutex
	store    kv.Store
	key      string
	notifier Notifier
	logger   *telemetry.JSONLogger
	records  []Record
}

func NewLog(store kv.Store, key string, notifier Notifier, logger *telemetry.JSONLogger) *Log {
	return &Log{
		store:    store,
		key:      key,
		notifier: notifier,
		logger:   logger,
	}
}

// Load reads the persisted mirror once at startup. Malformed content
// degrades to an empty log; a record with a missing or mistyped name is
// kept with the name coerced to "".
func (l *Log) Load() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = nil
	raw, ok, err := l.store.Get(l.key)
	if err != nil {
		l.logger.Error("responses.load_failed", map[string]any{"error": err.Error()})
		return
	}
	if !ok || raw == "" {
		return
	}
	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		l.logger.Warn("responses.mirror_malformed", map[string]any{"error": err.Error()})
		return
	}
	l.records = records
}

// Append inserts the record at the head, persists the full collection,
// and fires the optional notification. It never fails to the caller.
func (l *Log) Append(rec Record) {
	l.mu.Lock()
	if len(l.records) > 0 && rec.ID <= l.records[0].ID {
		rec.ID = l.records[0].ID + 1
	}
	l.records = append([]Record{rec}, l.records...)
	l.persistLocked()
	l.mu.Unlock()

	if l.notifier != nil {
		go l.notifier.Notify(rec)
	}
}

// All returns a head-first snapshot; later appends do not mutate it.
func (l *Log) All() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Record(nil), l.records...)
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Clear discards all records and erases the mirror. Without confirmation
// it is a no-op. Reports whether anything was cleared.
func (l *Log) Clear(confirmed bool) bool {
	if !confirmed {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
	if err := l.store.Delete(l.key); err != nil {
		l.logger.Error("responses.mirror_erase_failed", map[string]any{"error": err.Error()})
	}
	return true
}

func (l *Log) persistLocked() {
	body, err := json.Marshal(l.records)
	if err != nil {
		l.logger.Error("responses.persist_failed", map[string]any{"error": err.Error()})
		return
	}
	if err := l.store.Set(l.key, string(body)); err != nil {
		l.logger.Error("responses.persist_failed", map[string]any{"error": err.Error()})
	}
}
