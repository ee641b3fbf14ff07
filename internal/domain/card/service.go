package card

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

type Servicer interface {
	List(ctx context.Context, companyID, view string) ([]Card, error)
	Create(ctx context.Context, companyID string, req CreateRequest) (Card, error)
	Update(ctx context.Context, companyID string, id int, req UpdateRequest) (Card, error)
	Delete(ctx context.Context, companyID string, id int) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "card_service"),
	}
}

func (s *Service) List(ctx context.Context, companyID, view string) ([]Card, error) {
	return s.repo.List(ctx, companyID, view)
}

// Create validates the capture server-side too: offline clients are not
// the only writers, and the evidence rule must hold at the source of
// truth.
func (s *Service) Create(ctx context.Context, companyID string, req CreateRequest) (Card, error) {
	in := Input{
		CompanyID:   companyID,
		Area:        req.Area,
		Description: req.Description,
		Responsible: req.Responsible,
		Status:      Status(req.Status),
		DueDate:     req.DueDate,
	}
	hasEvidence := func(slot string) bool {
		switch slot {
		case SlotBefore:
			return req.BeforePhotoURL != ""
		case SlotAfter:
			return req.AfterPhotoURL != ""
		}
		return false
	}
	if err := in.Validate(hasEvidence); err != nil {
		return Card{}, err
	}

	now := time.Now()
	c := Card{
		CompanyID:      companyID,
		Area:           req.Area,
		Description:    req.Description,
		Responsible:    req.Responsible,
		Status:         Status(req.Status),
		OpenedAt:       now,
		BeforePhotoURL: req.BeforePhotoURL,
		AfterPhotoURL:  req.AfterPhotoURL,
		CreatedAt:      now,
	}
	if c.Status == "" {
		c.Status = StatusOpen
	}
	if c.Status == StatusClosed {
		c.ClosedAt = &now
	}
	if req.DueDate != "" {
		due, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			return Card{}, fmt.Errorf("%w: bad due date %q", pending.ErrValidation, req.DueDate)
		}
		c.DueDate = &due
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return Card{}, err
	}

	s.log.Info("card created",
		"id", created.ID, "card_no", created.CardNo, "company_id", companyID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, companyID string, id int, req UpdateRequest) (Card, error) {
	c, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return Card{}, err
	}

	wasClosed := c.Status == StatusClosed
	applyUpdate(&c, req)

	switch c.Status {
	case StatusOpen, StatusClosed:
	default:
		return Card{}, fmt.Errorf("%w: unknown status %q", pending.ErrValidation, c.Status)
	}

	if c.Status == StatusClosed {
		if c.BeforePhotoURL == "" || c.AfterPhotoURL == "" {
			return Card{}, fmt.Errorf("%w: closing a card requires before and after evidence", pending.ErrValidation)
		}
		if !wasClosed {
			now := time.Now()
			c.ClosedAt = &now
		}
	} else {
		c.ClosedAt = nil
	}

	if err := s.repo.Update(ctx, companyID, c); err != nil {
		return Card{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, companyID string, id int) error {
	return s.repo.Delete(ctx, companyID, id)
}

func applyUpdate(c *Card, req UpdateRequest) {
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
		c.Status = Status(*req.Status)
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			c.DueDate = nil
		} else if due, err := time.Parse(time.RFC3339, *req.DueDate); err == nil {
			c.DueDate = &due
		}
	}
	if req.BeforePhotoURL != nil {
		c.BeforePhotoURL = *req.BeforePhotoURL
	}
	if req.AfterPhotoURL != nil {
		c.AfterPhotoURL = *req.AfterPhotoURL
	}
}
