package client

import (
	"encoding/json"

	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

// Store is the local durable queue of pending records plus a small lookup
// cache for offline dropdowns. The capture service writes, the sync engine
// reads and deletes, administrative discard deletes; all on the same
// goroutine-safe handle.
type Store interface {
	// Put persists a new pending record and returns its generated temp id.
	Put(kind pending.Kind, fields map[string]any, attachments map[string][]byte) (string, error)
	// ListAll returns all pending records of one kind, newest first.
	// Zero records is an empty slice, not an error.
	ListAll(kind pending.Kind) ([]*pending.Record, error)
	// Remove deletes one record. Removing a missing id is not an error.
	Remove(kind pending.Kind, tempID string) error
	// Clear deletes every record of one kind.
	Clear(kind pending.Kind) error

	// SaveLookupSet replaces the named cache entry wholesale.
	SaveLookupSet(name string, items json.RawMessage) error
	// GetLookupSet returns the named cache entry, or nil when missing or
	// unreadable. It never fails.
	GetLookupSet(name string) json.RawMessage

	// Durable reports whether records survive a process restart.
	Durable() bool

	Close() error
}
