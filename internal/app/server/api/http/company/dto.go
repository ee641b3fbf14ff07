package company

import (
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/company"
)

type listInput struct{}

type listOutput struct {
	Body company.ListResponse
}

type createRequest struct {
	ID   string `json:"id" minLength:"1" doc:"Stable company identifier"`
	Name string `json:"name" minLength:"1" doc:"Display name"`
}

type createInput struct {
	Body createRequest
}

type createOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
}
