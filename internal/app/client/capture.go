package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/audit"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/card"
	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

// SubmitResult reports where a capture ended up.
type SubmitResult struct {
	// TempID is set for offline captures; empty when written straight to
	// the gateway.
	TempID  string
	Offline bool
	// Durable is false when the in-memory fallback store took the record:
	// it will not survive a restart and the caller must warn the user.
	Durable bool
	// Card is the confirmed record for an online card create.
	Card *card.Card
	// Audit is the confirmed record for an online audit create.
	Audit *audit.Audit
}

// Capture builds a pending record from user input and routes it by
// connectivity: straight to the gateway when online, into the local store
// when not. Validation and scope resolution happen before any I/O.
type Capture struct {
	store   Store
	gateway Gateway
	view    *View
	online  func() bool
	scope   func() string
	log     *slog.Logger
}

func NewCapture(store Store, gateway Gateway, view *View, online func() bool, scope func() string, log *slog.Logger) *Capture {
	return &Capture{
		store:   store,
		gateway: gateway,
		view:    view,
		online:  online,
		scope:   scope,
		log:     log.With("component", "capture"),
	}
}

// SubmitCard captures a new improvement card. Attachments are keyed by
// evidence slot; nil or empty blobs count as absent.
func (c *Capture) SubmitCard(ctx context.Context, in card.Input, attachments map[string][]byte) (*SubmitResult, error) {
	hasEvidence := func(slot string) bool {
		return len(attachments[slot]) > 0
	}
	if err := in.Validate(hasEvidence); err != nil {
		return nil, err
	}

	if in.CompanyID == "" {
		in.CompanyID = c.scope()
	}
	if in.CompanyID == "" {
		return nil, fmt.Errorf("%w: pick a company before saving", pending.ErrScopeUnresolved)
	}

	if !c.online() {
		return c.captureOffline(pending.KindCard, in.Fields(), attachments)
	}

	req := card.RequestFromFields(in.Fields())

	// Each upload is an independent call; the first failure aborts the
	// whole submit so no partial remote record exists.
	for slot, data := range attachments {
		if len(data) == 0 {
			continue
		}
		url, err := c.gateway.UploadAttachment(ctx, newObjectName(pending.KindCard, slot), data, "image/jpeg")
		if err != nil {
			return nil, fmt.Errorf("%w: slot %q: %v", pending.ErrUpload, slot, err)
		}
		switch slot {
		case card.SlotBefore:
			req.BeforePhotoURL = url
		case card.SlotAfter:
			req.AfterPhotoURL = url
		}
	}

	created, err := c.gateway.CreateCard(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pending.ErrRemoteWrite, err)
	}

	// New records get a server-assigned card number, so a full refetch
	// replaces optimistic guessing.
	if err := c.view.Refresh(ctx); err != nil {
		c.log.Warn("refetch after create failed", "error", err)
	}

	return &SubmitResult{Durable: true, Card: &created}, nil
}

// UpdateCard patches an existing confirmed card. Updates are online only;
// offline edits of remote records are rejected so concurrent-edit
// conflicts cannot arise.
func (c *Capture) UpdateCard(ctx context.Context, id int, req card.UpdateRequest, attachments map[string][]byte) error {
	if !c.online() {
		return fmt.Errorf("%w: editing an existing card requires a connection", pending.ErrValidation)
	}

	existing, ok := c.view.FindCard(id)
	if !ok {
		return fmt.Errorf("card %d not loaded", id)
	}

	for slot, data := range attachments {
		if len(data) == 0 {
			continue
		}
		url, err := c.gateway.UploadAttachment(ctx, newObjectName(pending.KindCard, slot), data, "image/jpeg")
		if err != nil {
			return fmt.Errorf("%w: slot %q: %v", pending.ErrUpload, slot, err)
		}
		switch slot {
		case card.SlotBefore:
			req.BeforePhotoURL = &url
		case card.SlotAfter:
			req.AfterPhotoURL = &url
		}
	}

	if req.Status != nil && card.Status(*req.Status) == card.StatusClosed {
		before := existing.BeforePhotoURL
		if req.BeforePhotoURL != nil {
			before = *req.BeforePhotoURL
		}
		after := existing.AfterPhotoURL
		if req.AfterPhotoURL != nil {
			after = *req.AfterPhotoURL
		}
		if before == "" || after == "" {
			return fmt.Errorf("%w: closing a card requires before and after evidence", pending.ErrValidation)
		}
	}

	if err := c.gateway.UpdateCard(ctx, id, req); err != nil {
		return fmt.Errorf("%w: %v", pending.ErrRemoteWrite, err)
	}

	// The identity is known, so patch in place instead of refetching.
	c.view.PatchCard(id, func(cc *card.Card) {
		applyCardUpdate(cc, req)
	})
	return nil
}

// SubmitAudit captures a new 5S audit with its checklist entries.
func (c *Capture) SubmitAudit(ctx context.Context, req audit.CreateRequest) (*SubmitResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.CompanyID == "" {
		req.CompanyID = c.scope()
	}
	if req.CompanyID == "" {
		return nil, fmt.Errorf("%w: pick a company before saving", pending.ErrScopeUnresolved)
	}

	if !c.online() {
		fields, err := req.Fields()
		if err != nil {
			return nil, err
		}
		return c.captureOffline(pending.KindAudit, fields, nil)
	}

	created, err := c.gateway.CreateAudit(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pending.ErrRemoteWrite, err)
	}

	if err := c.view.Refresh(ctx); err != nil {
		c.log.Warn("refetch after create failed", "error", err)
	}

	return &SubmitResult{Durable: true, Audit: &created}, nil
}

func (c *Capture) captureOffline(kind pending.Kind, fields map[string]any, attachments map[string][]byte) (*SubmitResult, error) {
	tempID, err := c.store.Put(kind, fields, attachments)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pending.ErrStorageUnavailable, err)
	}

	c.log.Info("captured offline", "kind", kind, "temp_id", tempID, "durable", c.store.Durable())

	return &SubmitResult{
		TempID:  tempID,
		Offline: true,
		Durable: c.store.Durable(),
	}, nil
}

// newObjectName never reuses a name: a collision in object storage would
// overwrite unrelated data.
func newObjectName(kind pending.Kind, slot string) string {
	return fmt.Sprintf("%s/%s-%s.jpg", kind, uuid.NewString(), slot)
}

func applyCardUpdate(c *card.Card, req card.UpdateRequest) {
	if req.Area != nil {
		c.Area = *req.Area
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Responsible != nil {
		c.Responsible = *req.Responsible
	}
	if req.Status != nil {
		c.Status = card.Status(*req.Status)
	}
	if req.BeforePhotoURL != nil {
		c.BeforePhotoURL = *req.BeforePhotoURL
	}
	if req.AfterPhotoURL != nil {
		c.AfterPhotoURL = *req.AfterPhotoURL
	}
}
