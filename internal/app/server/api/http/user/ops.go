package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-register",
		Method:      http.MethodPost,
		Path:        "/api/auth/register",
		Summary:     "Register a user",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Authenticate and receive a session token",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}
