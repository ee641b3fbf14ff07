package client

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

func TestSQLiteStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pending.db")

	store, err := NewSQLiteStore(path, testLogger())
	require.NoError(t, err)

	fields := map[string]any{
		"company_id":  "acme",
		"area":        "paint-shop",
		"description": "oil leak near press 3",
		"status":      "open",
	}
	attachments := map[string][]byte{
		"before": []byte("jpeg-bytes"),
	}

	tempID, err := store.Put(pending.KindCard, fields, attachments)
	require.NoError(t, err)
	require.NotEmpty(t, tempID)
	require.NoError(t, store.Close())

	// Reopen against the same file: the capture must still be there.
	store, err = NewSQLiteStore(path, testLogger())
	require.NoError(t, err)
	defer store.Close()

	records, err := store.ListAll(pending.KindCard)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, tempID, rec.TempID)
	assert.Equal(t, pending.KindCard, rec.Kind)
	assert.Equal(t, "acme", rec.CompanyID())
	assert.Equal(t, "oil leak near press 3", rec.Fields["description"])
	assert.Equal(t, []byte("jpeg-bytes"), rec.Attachments["before"])
}

func TestSQLiteStoreOrdering(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "pending.db"), testLogger())
	require.NoError(t, err)
	defer store.Close()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := store.Put(pending.KindCard, map[string]any{"description": "d"}, nil)
		require.NoError(t, err)
		ids = append(ids, id)
		time.Sleep(2 * time.Millisecond)
	}

	records, err := store.ListAll(pending.KindCard)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Newest first.
	assert.Equal(t, ids[2], records[0].TempID)
	assert.Equal(t, ids[0], records[2].TempID)
}

func TestSQLiteStoreRemove(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "pending.db"), testLogger())
	require.NoError(t, err)
	defer store.Close()

	id, err := store.Put(pending.KindAudit, map[string]any{"area": "warehouse"}, nil)
	require.NoError(t, err)

	require.NoError(t, store.Remove(pending.KindAudit, id))

	records, err := store.ListAll(pending.KindAudit)
	require.NoError(t, err)
	assert.Empty(t, records)

	// Removing again, or removing an id that never existed, is a no-op.
	assert.NoError(t, store.Remove(pending.KindAudit, id))
	assert.NoError(t, store.Remove(pending.KindAudit, "card-0-deadbeef"))
}

func TestSQLiteStoreKindsIsolated(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "pending.db"), testLogger())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Put(pending.KindCard, map[string]any{"description": "card"}, nil)
	require.NoError(t, err)
	_, err = store.Put(pending.KindAudit, map[string]any{"area": "audit"}, nil)
	require.NoError(t, err)

	require.NoError(t, store.Clear(pending.KindCard))

	cards, err := store.ListAll(pending.KindCard)
	require.NoError(t, err)
	assert.Empty(t, cards)

	audits, err := store.ListAll(pending.KindAudit)
	require.NoError(t, err)
	assert.Len(t, audits, 1)
}

func TestSQLiteStoreLookupSets(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "pending.db"), testLogger())
	require.NoError(t, err)
	defer store.Close()

	assert.Nil(t, store.GetLookupSet("companies"))

	first := json.RawMessage(`[{"id":"acme","name":"Acme"}]`)
	require.NoError(t, store.SaveLookupSet("companies", first))
	assert.JSONEq(t, string(first), string(store.GetLookupSet("companies")))

	// Save replaces wholesale.
	second := json.RawMessage(`[{"id":"globex","name":"Globex"}]`)
	require.NoError(t, store.SaveLookupSet("companies", second))
	assert.JSONEq(t, string(second), string(store.GetLookupSet("companies")))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	assert.False(t, store.Durable())

	id, err := store.Put(pending.KindCard, map[string]any{"description": "d"}, map[string][]byte{"before": {1}})
	require.NoError(t, err)

	records, err := store.ListAll(pending.KindCard)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].TempID)

	require.NoError(t, store.Remove(pending.KindCard, id))
	records, err = store.ListAll(pending.KindCard)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTempIDFormat(t *testing.T) {
	id := newTempID(pending.KindCard, time.Now())
	assert.Regexp(t, `^card-\d+-[0-9a-f]{8}$`, id)

	other := newTempID(pending.KindCard, time.Now())
	assert.NotEqual(t, id, other)
}
