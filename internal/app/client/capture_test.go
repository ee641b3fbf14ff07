package client

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/audit"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/card"
	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

type captureFixture struct {
	capture *Capture
	store   Store
	view    *View
	gw      *fakeGateway
	online  bool
}

func newCaptureFixture(t *testing.T, gw *fakeGateway) *captureFixture {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "pending.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f := &captureFixture{store: store, gw: gw, online: true}
	f.view = NewView(store, gw, testLogger())
	f.capture = NewCapture(store, gw, f.view,
		func() bool { return f.online },
		func() string { return "acme" },
		testLogger())
	return f
}

func validCardInput() card.Input {
	return card.Input{
		Area:        "assembly",
		Description: "missing machine guard",
		Responsible: "jp",
		Status:      card.StatusOpen,
	}
}

func TestSubmitCardOnline(t *testing.T) {
	f := newCaptureFixture(t, &fakeGateway{})

	result, err := f.capture.SubmitCard(context.Background(), validCardInput(), map[string][]byte{
		card.SlotBefore: []byte("img"),
	})
	require.NoError(t, err)

	assert.False(t, result.Offline)
	assert.True(t, result.Durable)
	require.NotNil(t, result.Card)
	assert.Equal(t, "acme", result.Card.CompanyID)
	assert.NotEmpty(t, result.Card.BeforePhotoURL)

	// Online captures never touch the local queue.
	records, err := f.store.ListAll(pending.KindCard)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSubmitCardOffline(t *testing.T) {
	f := newCaptureFixture(t, &fakeGateway{})
	f.online = false

	result, err := f.capture.SubmitCard(context.Background(), validCardInput(), map[string][]byte{
		card.SlotBefore: []byte("img"),
	})
	require.NoError(t, err)

	assert.True(t, result.Offline)
	assert.True(t, result.Durable)
	assert.NotEmpty(t, result.TempID)

	// Nothing went over the wire.
	assert.Equal(t, 0, f.gw.cardCount())
	assert.Equal(t, 0, f.gw.uploadCount())

	records, err := f.store.ListAll(pending.KindCard)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, result.TempID, records[0].TempID)
	assert.Equal(t, "acme", records[0].CompanyID())
}

func TestSubmitCardClosedRequiresEvidence(t *testing.T) {
	tests := []struct {
		name        string
		attachments map[string][]byte
		wantErr     bool
	}{
		{"no evidence", nil, true},
		{"before only", map[string][]byte{card.SlotBefore: []byte("a")}, true},
		{"after only", map[string][]byte{card.SlotAfter: []byte("b")}, true},
		{"both", map[string][]byte{card.SlotBefore: []byte("a"), card.SlotAfter: []byte("b")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCaptureFixture(t, &fakeGateway{})
			in := validCardInput()
			in.Status = card.StatusClosed

			_, err := f.capture.SubmitCard(context.Background(), in, tt.attachments)
			if tt.wantErr {
				require.ErrorIs(t, err, pending.ErrValidation)
				// Rejected before any write, local or remote.
				assert.Equal(t, 0, f.gw.cardCount())
				assert.Equal(t, 0, f.gw.uploadCount())
				records, lerr := f.store.ListAll(pending.KindCard)
				require.NoError(t, lerr)
				assert.Empty(t, records)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSubmitCardUploadFailureAborts(t *testing.T) {
	gw := &fakeGateway{}
	gw.onUpload = func(string) (string, error) {
		return "", errors.New("blob store down")
	}
	f := newCaptureFixture(t, gw)

	_, err := f.capture.SubmitCard(context.Background(), validCardInput(), map[string][]byte{
		card.SlotBefore: []byte("img"),
	})
	require.ErrorIs(t, err, pending.ErrUpload)

	// No half-created remote record.
	assert.Equal(t, 0, gw.cardCount())
}

func TestSubmitCardScopeUnresolved(t *testing.T) {
	gw := &fakeGateway{}
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "pending.db"), testLogger())
	require.NoError(t, err)
	defer store.Close()

	view := NewView(store, gw, testLogger())
	capture := NewCapture(store, gw, view,
		func() bool { return true },
		func() string { return "" },
		testLogger())

	_, err = capture.SubmitCard(context.Background(), validCardInput(), nil)
	require.ErrorIs(t, err, pending.ErrScopeUnresolved)
}

func TestSubmitCardValidation(t *testing.T) {
	f := newCaptureFixture(t, &fakeGateway{})

	in := validCardInput()
	in.Description = ""
	_, err := f.capture.SubmitCard(context.Background(), in, nil)
	require.ErrorIs(t, err, pending.ErrValidation)

	in = validCardInput()
	in.Area = ""
	_, err = f.capture.SubmitCard(context.Background(), in, nil)
	require.ErrorIs(t, err, pending.ErrValidation)

	in = validCardInput()
	in.Status = "paused"
	_, err = f.capture.SubmitCard(context.Background(), in, nil)
	require.ErrorIs(t, err, pending.ErrValidation)
}

func TestUpdateCardOfflineRejected(t *testing.T) {
	f := newCaptureFixture(t, &fakeGateway{})
	f.online = false

	err := f.capture.UpdateCard(context.Background(), 1, card.UpdateRequest{}, nil)
	require.ErrorIs(t, err, pending.ErrValidation)
}

func TestUpdateCardCloseRequiresEvidence(t *testing.T) {
	gw := &fakeGateway{}
	f := newCaptureFixture(t, gw)
	ctx := context.Background()

	// Create a card with before-evidence only, then load it into the view.
	result, err := f.capture.SubmitCard(ctx, validCardInput(), map[string][]byte{
		card.SlotBefore: []byte("img"),
	})
	require.NoError(t, err)
	require.NoError(t, f.view.Refresh(ctx))

	closed := string(card.StatusClosed)
	err = f.capture.UpdateCard(ctx, result.Card.ID, card.UpdateRequest{Status: &closed}, nil)
	require.ErrorIs(t, err, pending.ErrValidation)

	// Supplying the missing after-photo in the same update closes it.
	err = f.capture.UpdateCard(ctx, result.Card.ID, card.UpdateRequest{Status: &closed}, map[string][]byte{
		card.SlotAfter: []byte("img2"),
	})
	require.NoError(t, err)

	got, ok := f.view.FindCard(result.Card.ID)
	require.True(t, ok)
	assert.Equal(t, card.StatusClosed, got.Status)
	assert.NotEmpty(t, got.AfterPhotoURL)
}

func TestSubmitAudit(t *testing.T) {
	f := newCaptureFixture(t, &fakeGateway{})
	ctx := context.Background()

	req := audit.CreateRequest{
		Area:    "warehouse",
		Auditor: "mk",
		Entries: []audit.EntryInput{
			{Category: audit.CategorySort, Question: "floor clear of unneeded items", Score: 4},
			{Category: audit.CategoryShine, Question: "equipment clean", Score: 3},
		},
	}

	result, err := f.capture.SubmitAudit(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, result.Audit)
	assert.Equal(t, "acme", result.Audit.CompanyID)
	assert.InDelta(t, 3.5, result.Audit.Score, 0.001)

	// Offline goes to the queue instead.
	f.online = false
	result, err = f.capture.SubmitAudit(ctx, req)
	require.NoError(t, err)
	assert.True(t, result.Offline)

	records, err := f.store.ListAll(pending.KindAudit)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSubmitAuditValidation(t *testing.T) {
	f := newCaptureFixture(t, &fakeGateway{})

	_, err := f.capture.SubmitAudit(context.Background(), audit.CreateRequest{
		Area: "warehouse",
	})
	require.ErrorIs(t, err, pending.ErrValidation)

	_, err = f.capture.SubmitAudit(context.Background(), audit.CreateRequest{
		Area: "warehouse",
		Entries: []audit.EntryInput{
			{Category: audit.CategorySort, Question: "q", Score: 9},
		},
	})
	require.ErrorIs(t, err, pending.ErrValidation)
}
