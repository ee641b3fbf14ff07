package user

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/session"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/user"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	userID, err := h.service.Register(ctx, input.Body.Login, input.Body.Password, input.Body.CompanyID)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrLoginTaken):
			return nil, huma.Error409Conflict("login already taken")
		case errors.Is(err, user.ErrInvalidInput):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		h.log.Error("registration failed", "login", input.Body.Login, "error", err)
		return nil, huma.Error500InternalServerError("registration failed")
	}

	return &registerOutput{
		Body: RegisterResponse{ID: userID, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return nil, huma.Error401Unauthorized("invalid credentials")
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("failed to create session", "user_id", u.ID, "error", err)
		return nil, huma.Error500InternalServerError("failed to create session")
	}

	return &loginOutput{
		Body: LoginResponse{
			Token:     token,
			CompanyID: u.CompanyID,
		},
	}, nil
}
