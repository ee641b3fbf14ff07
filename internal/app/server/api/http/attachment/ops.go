package attachment

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) uploadOp() huma.Operation {
	return huma.Operation{
		OperationID: "attachments-upload",
		Method:      http.MethodPost,
		Path:        "/api/attachments",
		Summary:     "Upload an evidence photo",
		Description: "Stores the blob and returns the URL to reference from a card.",
		Tags:        []string{"attachments"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
