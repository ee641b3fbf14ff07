package card

import (
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/card"
)

type listInput struct {
	View string `query:"view" enum:"active,history,all" default:"all" doc:"Which slice of the collection to return"`
}

type listOutput struct {
	Body card.ListResponse
}

type createInput struct {
	Body card.CreateRequest
}

type cardOutput struct {
	Body card.Card
}

type updateInput struct {
	ID   int `path:"id" example:"1" doc:"Card ID"`
	Body card.UpdateRequest
}

type deleteInput struct {
	ID int `path:"id" example:"1" doc:"Card ID"`
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status"`
}
