package kv

// Store is a minimal named-slot store. Values are opaque strings; the
// responses package keeps its persisted mirror in a single slot.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
