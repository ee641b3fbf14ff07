package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/audit"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/card"
	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

// ErrSyncInFlight is returned when a pass for the same kind is already
// running; the caller treats it as a no-op.
var ErrSyncInFlight = errors.New("sync already running for this kind")

// Engine drains the local store one kind at a time: upload attachments,
// insert the structured record, delete locally only on confirmed success.
// One record's failure never aborts the batch.
type Engine struct {
	store   Store
	gateway Gateway
	view    *View
	scope   func() string
	log     *slog.Logger

	mu   sync.Mutex
	busy map[pending.Kind]bool

	lastMu   sync.Mutex
	lastSync time.Time
}

func NewEngine(store Store, gateway Gateway, view *View, scope func() string, log *slog.Logger) *Engine {
	return &Engine{
		store:   store,
		gateway: gateway,
		view:    view,
		scope:   scope,
		log:     log.With("component", "sync_engine"),
		busy:    make(map[pending.Kind]bool),
	}
}

// SyncAll runs one full pass for the kind. At most one pass per kind is in
// flight: concurrent callers get ErrSyncInFlight and no side effects.
func (e *Engine) SyncAll(ctx context.Context, kind pending.Kind) (*pending.SyncResult, error) {
	e.mu.Lock()
	if e.busy[kind] {
		e.mu.Unlock()
		return nil, ErrSyncInFlight
	}
	e.busy[kind] = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.busy[kind] = false
		e.mu.Unlock()
	}()

	start := time.Now()
	result := &pending.SyncResult{Kind: kind}

	records, err := e.store.ListAll(kind)
	if err != nil {
		return nil, fmt.Errorf("list pending records: %w", err)
	}

	if len(records) == 0 {
		e.log.Debug("nothing to sync", "kind", kind)
		result.Duration = time.Since(start)
		return result, nil
	}

	e.log.Info("sync pass started", "kind", kind, "pending", len(records))

	for _, rec := range records {
		if err := e.syncOne(ctx, rec); err != nil {
			// Record stays queued untouched; it retries on the next pass.
			e.log.Warn("record failed to sync", "temp_id", rec.TempID, "error", err)
			result.AddError(rec.TempID, err)
			continue
		}

		if err := e.store.Remove(rec.Kind, rec.TempID); err != nil {
			// Uploaded but not removed: it would double-insert next pass.
			// Surface loudly; the user can discard the duplicate.
			e.log.Error("failed to remove synced record", "temp_id", rec.TempID, "error", err)
			result.AddError(rec.TempID, fmt.Errorf("uploaded but not removed locally: %w", err))
			continue
		}

		result.SuccessCount++
	}

	// Unconditional refetch so inserted records appear under their
	// server-assigned identifiers, whatever the batch outcome was.
	if err := e.view.Refresh(ctx); err != nil {
		e.log.Warn("refetch after sync failed", "error", err)
	}

	e.lastMu.Lock()
	e.lastSync = time.Now()
	e.lastMu.Unlock()

	result.Duration = time.Since(start)
	e.log.Info("sync pass finished",
		"kind", kind,
		"uploaded", result.SuccessCount,
		"failed", result.ErrorCount,
		"duration", result.Duration,
	)
	return result, nil
}

func (e *Engine) syncOne(ctx context.Context, rec *pending.Record) error {
	companyID := rec.CompanyID()
	if companyID == "" {
		companyID = e.scope()
	}
	if companyID == "" {
		return pending.ErrScopeUnresolved
	}

	urls := make(map[string]string, len(rec.Attachments))
	for slot, data := range rec.Attachments {
		if data == nil {
			continue
		}
		url, err := e.gateway.UploadAttachment(ctx, newObjectName(rec.Kind, slot), data, "image/jpeg")
		if err != nil {
			return fmt.Errorf("%w: slot %q: %v", pending.ErrUpload, slot, err)
		}
		urls[slot] = url
	}

	switch rec.Kind {
	case pending.KindCard:
		req := card.RequestFromFields(rec.Fields)
		req.CompanyID = companyID
		req.BeforePhotoURL = urls[card.SlotBefore]
		req.AfterPhotoURL = urls[card.SlotAfter]
		if _, err := e.gateway.CreateCard(ctx, req); err != nil {
			return fmt.Errorf("%w: %v", pending.ErrRemoteWrite, err)
		}
	case pending.KindAudit:
		req, err := audit.RequestFromFields(rec.Fields)
		if err != nil {
			return err
		}
		req.CompanyID = companyID
		if _, err := e.gateway.CreateAudit(ctx, req); err != nil {
			return fmt.Errorf("%w: %v", pending.ErrRemoteWrite, err)
		}
	default:
		return fmt.Errorf("unknown kind %q", rec.Kind)
	}

	return nil
}

// SyncEverything runs one pass per kind and returns the results in kind
// order. A busy kind is skipped, not an error.
func (e *Engine) SyncEverything(ctx context.Context) []*pending.SyncResult {
	results := make([]*pending.SyncResult, 0, len(pending.Kinds))
	for _, kind := range pending.Kinds {
		result, err := e.SyncAll(ctx, kind)
		if err != nil {
			if !errors.Is(err, ErrSyncInFlight) {
				e.log.Warn("sync pass failed", "kind", kind, "error", err)
			}
			continue
		}
		results = append(results, result)
	}
	return results
}

// LastSync returns when a pass last completed, zero if never.
func (e *Engine) LastSync() time.Time {
	e.lastMu.Lock()
	defer e.lastMu.Unlock()
	return e.lastSync
}
