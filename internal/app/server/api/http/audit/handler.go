package audit

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/middleware/auth"
	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/metrics"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/audit"
	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

type Handler struct {
	service    audit.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service audit.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	identity, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	audits, err := h.service.List(ctx, identity.CompanyID, input.View)
	if err != nil {
		h.log.Error("failed to list audits", "error", err)
		return nil, huma.Error500InternalServerError("failed to list audits")
	}

	return &listOutput{
		Body: audit.ListResponse{Audits: audits},
	}, nil
}

func (h *Handler) get(ctx context.Context, input *getInput) (*auditOutput, error) {
	identity, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	a, err := h.service.Get(ctx, identity.CompanyID, input.ID)
	if err != nil {
		if errors.Is(err, audit.ErrNotFound) {
			return nil, huma.Error404NotFound("audit not found")
		}
		h.log.Error("failed to get audit", "id", input.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to get audit")
	}

	return &auditOutput{Body: a}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*auditOutput, error) {
	identity, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	companyID := identity.CompanyID
	if identity.Admin && input.Body.CompanyID != "" {
		companyID = input.Body.CompanyID
	}
	if companyID == "" {
		return nil, huma.Error422UnprocessableEntity("no company scope")
	}

	created, err := h.service.Create(ctx, companyID, input.Body)
	if err != nil {
		if errors.Is(err, pending.ErrValidation) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		h.log.Error("failed to create audit", "error", err)
		return nil, huma.Error500InternalServerError("failed to create audit")
	}

	metrics.AuditsCreated.Inc()
	return &auditOutput{Body: created}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*statusOutput, error) {
	identity, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, identity.CompanyID, input.ID); err != nil {
		if errors.Is(err, audit.ErrNotFound) {
			return nil, huma.Error404NotFound("audit not found")
		}
		h.log.Error("failed to delete audit", "id", input.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to delete audit")
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}
