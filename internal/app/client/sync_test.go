package client

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/card"
	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

func newTestEngine(t *testing.T, gw *fakeGateway) (*Engine, Store) {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "pending.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	view := NewView(store, gw, testLogger())
	engine := NewEngine(store, gw, view, func() string { return "acme" }, testLogger())
	return engine, store
}

func TestSyncAllDrainsQueue(t *testing.T) {
	gw := &fakeGateway{}
	engine, store := newTestEngine(t, gw)
	ctx := context.Background()

	_, err := store.Put(pending.KindCard, map[string]any{
		"company_id":  "acme",
		"area":        "assembly",
		"description": "loose guard rail",
		"status":      "open",
	}, map[string][]byte{"before": []byte("img")})
	require.NoError(t, err)

	result, err := engine.SyncAll(ctx, pending.KindCard)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Equal(t, 1, gw.cardCount())
	assert.Equal(t, 1, gw.uploadCount())

	// Uploaded records leave the queue.
	records, err := store.ListAll(pending.KindCard)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSyncAllEmptyQueue(t *testing.T) {
	gw := &fakeGateway{}
	engine, _ := newTestEngine(t, gw)

	result, err := engine.SyncAll(context.Background(), pending.KindCard)
	require.NoError(t, err)
	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)
}

func TestSyncAllPartialFailure(t *testing.T) {
	gw := &fakeGateway{}
	gw.onCreateCard = func(_ int, req card.CreateRequest) (card.Card, error) {
		if req.Description == "poison" {
			return card.Card{}, errors.New("insert rejected")
		}
		return card.Card{ID: 1, Description: req.Description}, nil
	}

	engine, store := newTestEngine(t, gw)
	ctx := context.Background()

	okID, err := store.Put(pending.KindCard, map[string]any{"description": "fine", "status": "open"}, nil)
	require.NoError(t, err)
	badID, err := store.Put(pending.KindCard, map[string]any{"description": "poison", "status": "open"}, nil)
	require.NoError(t, err)

	result, err := engine.SyncAll(ctx, pending.KindCard)
	require.NoError(t, err)

	// One failure never aborts the batch.
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, badID, result.Errors[0].TempID)

	// The failed record stays queued for the next pass; the good one is gone.
	records, err := store.ListAll(pending.KindCard)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, badID, records[0].TempID)

	for _, rec := range records {
		assert.NotEqual(t, okID, rec.TempID)
	}
}

func TestSyncAllUploadFailureKeepsRecord(t *testing.T) {
	gw := &fakeGateway{}
	gw.onUpload = func(string) (string, error) {
		return "", errors.New("blob store down")
	}
	engine, store := newTestEngine(t, gw)

	id, err := store.Put(pending.KindCard,
		map[string]any{"description": "d", "status": "open"},
		map[string][]byte{"before": []byte("img")})
	require.NoError(t, err)

	result, err := engine.SyncAll(context.Background(), pending.KindCard)
	require.NoError(t, err)

	assert.Equal(t, 0, result.SuccessCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, id, result.Errors[0].TempID)

	// Nothing reached the gateway's insert path.
	assert.Equal(t, 0, gw.cardCount())

	records, err := store.ListAll(pending.KindCard)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSyncAllSingleFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	gw := &fakeGateway{}
	gw.onCreateCard = func(int, card.CreateRequest) (card.Card, error) {
		close(started)
		<-release
		return card.Card{ID: 1}, nil
	}

	engine, store := newTestEngine(t, gw)
	ctx := context.Background()

	_, err := store.Put(pending.KindCard, map[string]any{"description": "d", "status": "open"}, nil)
	require.NoError(t, err)

	done := make(chan *pending.SyncResult, 1)
	go func() {
		result, err := engine.SyncAll(ctx, pending.KindCard)
		require.NoError(t, err)
		done <- result
	}()

	<-started

	// A second pass for the same kind while the first is mid-flight is a
	// guarded no-op.
	_, err = engine.SyncAll(ctx, pending.KindCard)
	assert.ErrorIs(t, err, ErrSyncInFlight)

	close(release)
	result := <-done
	assert.Equal(t, 1, result.SuccessCount)

	// Once the pass finished the flag is down again.
	_, err = engine.SyncAll(ctx, pending.KindCard)
	assert.NoError(t, err)
}

func TestSyncScopeFallback(t *testing.T) {
	var got string
	gw := &fakeGateway{}
	gw.onCreateCard = func(_ int, req card.CreateRequest) (card.Card, error) {
		got = req.CompanyID
		return card.Card{ID: 1}, nil
	}
	engine, store := newTestEngine(t, gw)

	// No company on the record itself: the engine falls back to the
	// session scope.
	_, err := store.Put(pending.KindCard, map[string]any{"description": "d", "status": "open"}, nil)
	require.NoError(t, err)

	result, err := engine.SyncAll(context.Background(), pending.KindCard)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, "acme", got)
}

func TestSyncScopeUnresolved(t *testing.T) {
	gw := &fakeGateway{}
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "pending.db"), testLogger())
	require.NoError(t, err)
	defer store.Close()

	view := NewView(store, gw, testLogger())
	engine := NewEngine(store, gw, view, func() string { return "" }, testLogger())

	id, err := store.Put(pending.KindCard, map[string]any{"description": "d", "status": "open"}, nil)
	require.NoError(t, err)

	result, err := engine.SyncAll(context.Background(), pending.KindCard)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, id, result.Errors[0].TempID)
	assert.Contains(t, result.Errors[0].Message, "company scope unresolved")

	// The record waits until a scope exists.
	records, err := store.ListAll(pending.KindCard)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSyncEverything(t *testing.T) {
	gw := &fakeGateway{}
	engine, store := newTestEngine(t, gw)

	_, err := store.Put(pending.KindCard, map[string]any{"description": "d", "status": "open"}, nil)
	require.NoError(t, err)
	_, err = store.Put(pending.KindAudit, map[string]any{
		"area":    "warehouse",
		"auditor": "mk",
		"entries": `[{"category":"sort","question":"q","score":4}]`,
	}, nil)
	require.NoError(t, err)

	results := engine.SyncEverything(context.Background())
	require.Len(t, results, len(pending.Kinds))

	total := 0
	for _, r := range results {
		total += r.SuccessCount
		assert.Equal(t, 0, r.ErrorCount)
	}
	assert.Equal(t, 2, total)
	assert.False(t, engine.LastSync().IsZero())
}
