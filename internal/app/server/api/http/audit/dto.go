package audit

import (
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/audit"
)

type listInput struct {
	View string `query:"view" enum:"active,history,all" default:"all" doc:"active = audited in the last 30 days, history = older, all = everything"`
}

type listOutput struct {
	Body audit.ListResponse
}

type getInput struct {
	ID int `path:"id" example:"1" doc:"Audit ID"`
}

type createInput struct {
	Body audit.CreateRequest
}

type auditOutput struct {
	Body audit.Audit
}

type deleteInput struct {
	ID int `path:"id" example:"1" doc:"Audit ID"`
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status" example:"Ok"`
}
