package client

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

// MemoryStore is the fallback when the durable store fails to initialize.
// Captures still work but are lost on exit; the app surfaces a warning when
// it is in use.
type MemoryStore struct {
	mu      sync.Mutex
	records map[pending.Kind]map[string]*pending.Record
	lookups map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[pending.Kind]map[string]*pending.Record),
		lookups: make(map[string]json.RawMessage),
	}
}

func (m *MemoryStore) Put(kind pending.Kind, fields map[string]any, attachments map[string][]byte) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown kind %q", kind)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.records[kind] == nil {
		m.records[kind] = make(map[string]*pending.Record)
	}

	now := time.Now()
	tempID := fmt.Sprintf("%s-%d-%s", kind, now.UnixMilli(), uuid.NewString()[:8])
	for m.records[kind][tempID] != nil {
		tempID = fmt.Sprintf("%s-%d-%s", kind, now.UnixMilli(), uuid.NewString()[:8])
	}

	var atts map[string][]byte
	for slot, data := range attachments {
		if data == nil {
			continue
		}
		if atts == nil {
			atts = make(map[string][]byte)
		}
		atts[slot] = data
	}

	m.records[kind][tempID] = &pending.Record{
		TempID:      tempID,
		Kind:        kind,
		CreatedAt:   now,
		Fields:      fields,
		Attachments: atts,
	}
	return tempID, nil
}

func (m *MemoryStore) ListAll(kind pending.Kind) ([]*pending.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]*pending.Record, 0, len(m.records[kind]))
	for _, rec := range m.records[kind] {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].TempID > records[j].TempID
	})
	return records, nil
}

func (m *MemoryStore) Remove(kind pending.Kind, tempID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records[kind], tempID)
	return nil
}

func (m *MemoryStore) Clear(kind pending.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[kind] = nil
	return nil
}

func (m *MemoryStore) SaveLookupSet(name string, items json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups[name] = items
	return nil
}

func (m *MemoryStore) GetLookupSet(name string) json.RawMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups[name]
}

func (m *MemoryStore) Durable() bool {
	return false
}

func (m *MemoryStore) Close() error {
	return nil
}
