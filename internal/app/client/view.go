package client

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/audit"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/card"
	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

// View filters over the remote collections.
const (
	ViewActive  = "active"
	ViewHistory = "history"
	ViewAll     = "all"
)

// CardItem is one row of the merged collection: either a confirmed card or
// a pending capture, tagged with its provenance.
type CardItem struct {
	card.Card
	IsOffline bool   `json:"is_offline"`
	TempID    string `json:"temp_id,omitempty"`
}

// AuditItem mirrors CardItem for audits.
type AuditItem struct {
	audit.Audit
	IsOffline bool   `json:"is_offline"`
	TempID    string `json:"temp_id,omitempty"`
}

// View merges local-pending and remote-confirmed records into the single
// ordered collection the UI renders: pending block first (newest-created
// first), then the remote records in gateway order. A request generation
// counter drops stale list responses so a slow old query can never clobber
// a newer one.
type View struct {
	store   Store
	gateway Gateway
	log     *slog.Logger

	mu           sync.Mutex
	filter       string
	gen          uint64
	remoteCards  []card.Card
	remoteAudits []audit.Audit
}

func NewView(store Store, gateway Gateway, log *slog.Logger) *View {
	return &View{
		store:   store,
		gateway: gateway,
		log:     log.With("component", "view"),
		filter:  ViewActive,
	}
}

func (v *View) Filter() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// SetFilter switches the remote view and refreshes. A refresh already in
// flight for the old filter is superseded.
func (v *View) SetFilter(ctx context.Context, filter string) error {
	switch filter {
	case ViewActive, ViewHistory, ViewAll:
	default:
		return fmt.Errorf("unknown view filter %q", filter)
	}

	v.mu.Lock()
	v.filter = filter
	v.mu.Unlock()

	return v.Refresh(ctx)
}

// Refresh fetches the remote collections. Last request wins: the result is
// committed only if no newer refresh was issued while this one was in
// flight.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	filter := v.filter
	v.mu.Unlock()

	cards, err := v.gateway.ListCards(ctx, filter)
	if err != nil {
		return fmt.Errorf("list cards: %w", err)
	}
	audits, err := v.gateway.ListAudits(ctx, filter)
	if err != nil {
		return fmt.Errorf("list audits: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		v.log.Debug("stale list response dropped", "gen", gen, "current", v.gen)
		return nil
	}
	v.remoteCards = cards
	v.remoteAudits = audits
	return nil
}

// Cards returns the merged collection. Pending records are read from the
// store on every call, so an offline capture is visible the moment Put
// returns and disappears exactly when the sync engine removes it.
func (v *View) Cards() ([]CardItem, error) {
	pendingRecs, err := v.store.ListAll(pending.KindCard)
	if err != nil {
		return nil, fmt.Errorf("list pending cards: %w", err)
	}

	v.mu.Lock()
	remote := v.remoteCards
	v.mu.Unlock()

	items := make([]CardItem, 0, len(pendingRecs)+len(remote))
	for _, rec := range pendingRecs {
		c, err := card.FromPending(rec)
		if err != nil {
			return nil, err
		}
		// Local previews until the real URLs exist.
		if _, ok := rec.Attachments[card.SlotBefore]; ok {
			c.BeforePhotoURL = localPreviewURL(rec.TempID, card.SlotBefore)
		}
		if _, ok := rec.Attachments[card.SlotAfter]; ok {
			c.AfterPhotoURL = localPreviewURL(rec.TempID, card.SlotAfter)
		}
		items = append(items, CardItem{Card: c, IsOffline: true, TempID: rec.TempID})
	}
	for _, c := range remote {
		items = append(items, CardItem{Card: c})
	}
	return items, nil
}

// Audits returns the merged audit collection, pending first.
func (v *View) Audits() ([]AuditItem, error) {
	pendingRecs, err := v.store.ListAll(pending.KindAudit)
	if err != nil {
		return nil, fmt.Errorf("list pending audits: %w", err)
	}

	v.mu.Lock()
	remote := v.remoteAudits
	v.mu.Unlock()

	items := make([]AuditItem, 0, len(pendingRecs)+len(remote))
	for _, rec := range pendingRecs {
		req, err := audit.RequestFromFields(rec.Fields)
		if err != nil {
			return nil, err
		}
		items = append(items, AuditItem{
			Audit: audit.Audit{
				CompanyID: req.CompanyID,
				Area:      req.Area,
				Auditor:   req.Auditor,
				Score:     audit.Score(req.Entries),
				AuditedAt: rec.CreatedAt,
				CreatedAt: rec.CreatedAt,
			},
			IsOffline: true,
			TempID:    rec.TempID,
		})
	}
	for _, a := range remote {
		items = append(items, AuditItem{Audit: a})
	}
	return items, nil
}

// PatchCard applies an optimistic in-memory patch to a confirmed card. It
// is the update-side reconciliation strategy: the identity is known, so no
// refetch is needed.
func (v *View) PatchCard(id int, apply func(*card.Card)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.remoteCards {
		if v.remoteCards[i].ID == id {
			apply(&v.remoteCards[i])
			return
		}
	}
}

// FindCard looks a confirmed card up in the last committed remote result.
func (v *View) FindCard(id int) (card.Card, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, c := range v.remoteCards {
		if c.ID == id {
			return c, true
		}
	}
	return card.Card{}, false
}

func localPreviewURL(tempID, slot string) string {
	return fmt.Sprintf("local://%s/%s", tempID, slot)
}
