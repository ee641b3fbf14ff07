package card

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/api/http/middleware/auth"
	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/metrics"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/card"
	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

type Handler struct {
	service    card.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service card.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	identity, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	cards, err := h.service.List(ctx, identity.CompanyID, input.View)
	if err != nil {
		h.log.Error("failed to list cards", "error", err)
		return nil, huma.Error500InternalServerError("failed to list cards")
	}

	return &listOutput{
		Body: card.ListResponse{Cards: cards},
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*cardOutput, error) {
	identity, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	// Admins may insert on behalf of another tenant; everyone else is
	// pinned to their own.
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
		h.log.Error("failed to create card", "error", err)
		return nil, huma.Error500InternalServerError("failed to create card")
	}

	metrics.CardsCreated.Inc()
	return &cardOutput{Body: created}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*cardOutput, error) {
	identity, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	updated, err := h.service.Update(ctx, identity.CompanyID, input.ID, input.Body)
	if err != nil {
		switch {
		case errors.Is(err, card.ErrNotFound):
			return nil, huma.Error404NotFound("card not found")
		case errors.Is(err, pending.ErrValidation):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		h.log.Error("failed to update card", "id", input.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to update card")
	}

	return &cardOutput{Body: updated}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*statusOutput, error) {
	identity, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, identity.CompanyID, input.ID); err != nil {
		if errors.Is(err, card.ErrNotFound) {
			return nil, huma.Error404NotFound("card not found")
		}
		h.log.Error("failed to delete card", "id", input.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to delete card")
	}

	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}
