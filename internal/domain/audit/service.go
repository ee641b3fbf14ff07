package audit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

type Servicer interface {
	List(ctx context.Context, companyID, view string) ([]Audit, error)
	Get(ctx context.Context, companyID string, id int) (Audit, error)
	Create(ctx context.Context, companyID string, req CreateRequest) (Audit, error)
	Delete(ctx context.Context, companyID string, id int) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "audit_service"),
	}
}

func (s *Service) List(ctx context.Context, companyID, view string) ([]Audit, error) {
	return s.repo.List(ctx, companyID, view)
}

func (s *Service) Get(ctx context.Context, companyID string, id int) (Audit, error) {
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) Delete(ctx context.Context, companyID string, id int) error {
	return s.repo.Delete(ctx, companyID, id)
}

func (s *Service) Create(ctx context.Context, companyID string, req CreateRequest) (Audit, error) {
	if err := req.Validate(); err != nil {
		return Audit{}, err
	}

	auditedAt := time.Now()
	if req.AuditedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.AuditedAt)
		if err != nil {
			return Audit{}, fmt.Errorf("%w: bad audited_at %q", pending.ErrValidation, req.AuditedAt)
		}
		auditedAt = parsed
	}

	a := Audit{
		CompanyID: companyID,
		Area:      req.Area,
		Auditor:   req.Auditor,
		Score:     Score(req.Entries),
		AuditedAt: auditedAt,
		CreatedAt: time.Now(),
	}
	for _, e := range req.Entries {
		a.Entries = append(a.Entries, Entry{
			Category: e.Category,
			Question: e.Question,
			Score:    e.Score,
			Comment:  e.Comment,
		})
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return Audit{}, err
	}

	s.log.Info("audit created",
		"id", created.ID, "company_id", companyID, "entries", len(created.Entries), "score", created.Score)
	return created, nil
}
