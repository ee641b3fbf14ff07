package company

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/middleware/auth"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/company"
)

type Handler struct {
	repo       company.Repository
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(repo company.Repository, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		repo:       repo,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
}

func (h *Handler) list(ctx context.Context, _ *listInput) (*listOutput, error) {
	if _, ok := auth.GetIdentity(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	companies, err := h.repo.List(ctx)
	if err != nil {
		h.log.Error("failed to list companies", "error", err)
		return nil, huma.Error500InternalServerError("failed to list companies")
	}

	return &listOutput{
		Body: company.ListResponse{Companies: companies},
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	identity, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !identity.Admin {
		return nil, huma.Error403Forbidden("admin only")
	}

	if err := h.repo.Create(ctx, company.Company{ID: input.Body.ID, Name: input.Body.Name}); err != nil {
		h.log.Error("failed to create company", "id", input.Body.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to create company")
	}

	return &createOutput{Body: statusResponse{Status: "Ok"}}, nil
}
