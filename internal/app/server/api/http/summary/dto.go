package summary

import (
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/report"
)

type summaryInput struct {
	CompanyID string `query:"company_id" doc:"Admin-only override of the tenant to report on"`
}

type summaryOutput struct {
	Body report.Summary
}
