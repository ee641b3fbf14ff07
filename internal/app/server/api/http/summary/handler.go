package summary

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/middleware/auth"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/report"
)

type Handler struct {
	repo       report.Repository
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(repo report.Repository, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		repo:       repo,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.summaryOp(), h.summary)
}

func (h *Handler) summary(ctx context.Context, input *summaryInput) (*summaryOutput, error) {
	identity, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	companyID := identity.CompanyID
	if identity.Admin && input.CompanyID != "" {
		companyID = input.CompanyID
	}

	s, err := h.repo.Summary(ctx, companyID)
	if err != nil {
		h.log.Error("failed to build summary", "company_id", companyID, "error", err)
		return nil, huma.Error500InternalServerError("failed to build summary")
	}

	return &summaryOutput{Body: *s}, nil
}
