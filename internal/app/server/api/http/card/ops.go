package card

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-list",
		Method:      http.MethodGet,
		Path:        "/api/cards",
		Summary:     "List improvement cards",
		Tags:        []string{"cards"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-create",
		Method:      http.MethodPost,
		Path:        "/api/cards",
		Summary:     "Create an improvement card",
		Description: "Inserts a card and assigns its per-company card number.",
		Tags:        []string{"cards"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-update",
		Method:      http.MethodPut,
		Path:        "/api/cards/{id}",
		Summary:     "Update an improvement card",
		Tags:        []string{"cards"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-delete",
		Method:      http.MethodDelete,
		Path:        "/api/cards/{id}",
		Summary:     "Delete an improvement card",
		Tags:        []string{"cards"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
