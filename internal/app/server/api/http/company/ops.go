package company

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "companies-list",
		Method:      http.MethodGet,
		Path:        "/api/companies",
		Summary:     "List companies",
		Tags:        []string{"companies"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "companies-create",
		Method:      http.MethodPost,
		Path:        "/api/companies",
		Summary:     "Create or rename a company",
		Tags:        []string{"companies"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
