package summary

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) summaryOp() huma.Operation {
	return huma.Operation{
		OperationID: "summary-get",
		Method:      http.MethodGet,
		Path:        "/api/summary",
		Summary:     "KPI summary for the caller's company",
		Tags:        []string{"summary"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
