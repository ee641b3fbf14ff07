package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health check endpoint",
		Description: "Reports whether the service and its database are reachable",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}
