package audit

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "audits-list",
		Method:      http.MethodGet,
		Path:        "/api/audits",
		Summary:     "List 5S audits",
		Tags:        []string{"audits"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "audits-get",
		Method:      http.MethodGet,
		Path:        "/api/audits/{id}",
		Summary:     "Get one audit with its entries",
		Tags:        []string{"audits"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "audits-delete",
		Method:      http.MethodDelete,
		Path:        "/api/audits/{id}",
		Summary:     "Delete a 5S audit",
		Tags:        []string{"audits"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "audits-create",
		Method:      http.MethodPost,
		Path:        "/api/audits",
		Summary:     "Create a 5S audit",
		Description: "Inserts the audit and its checklist entries atomically.",
		Tags:        []string{"audits"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
