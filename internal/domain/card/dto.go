package card

import (
	"fmt"
	"time"

	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

// CreateRequest is the wire shape for inserting a card. This is the only
// place card fields map to their snake_case wire names; the sync engine and
// capture service never see them.
type CreateRequest struct {
	CompanyID      string `json:"company_id"`
	Area           string `json:"area"`
	Description    string `json:"description"`
	Responsible    string `json:"responsible,omitempty"`
	Status         string `json:"status"`
	DueDate        string `json:"due_date,omitempty"`
	BeforePhotoURL string `json:"before_photo_url,omitempty"`
	AfterPhotoURL  string `json:"after_photo_url,omitempty"`
}

// UpdateRequest patches an existing card. Only set fields are applied.
type UpdateRequest struct {
	Area           *string `json:"area,omitempty"`
	Description    *string `json:"description,omitempty"`
	Responsible    *string `json:"responsible,omitempty"`
	Status         *string `json:"status,omitempty"`
	DueDate        *string `json:"due_date,omitempty"`
	BeforePhotoURL *string `json:"before_photo_url,omitempty"`
	AfterPhotoURL  *string `json:"after_photo_url,omitempty"`
}

// ListResponse is the gateway's card listing.
type ListResponse struct {
	Cards []Card `json:"cards"`
}

// RequestFromFields rebuilds a create request from the opaque pending field
// map. Unknown keys are ignored; missing required keys surface later as a
// gateway validation error rather than being guessed here.
func RequestFromFields(fields map[string]any) CreateRequest {
	str := func(key string) string {
		v, _ := fields[key].(string)
		return v
	}
	return CreateRequest{
		CompanyID:   str(pending.FieldCompanyID),
		Area:        str("area"),
		Description: str("description"),
		Responsible: str("responsible"),
		Status:      str("status"),
		DueDate:     str("due_date"),
	}
}

// FromPending maps a pending record into the display shape so the merged
// view renders offline captures alongside confirmed cards.
func FromPending(rec *pending.Record) (Card, error) {
	if rec.Kind != pending.KindCard {
		return Card{}, fmt.Errorf("pending record %s is not a card", rec.TempID)
	}
	req := RequestFromFields(rec.Fields)
	c := Card{
		CompanyID:   req.CompanyID,
		Area:        req.Area,
		Description: req.Description,
		Responsible: req.Responsible,
		Status:      Status(req.Status),
		OpenedAt:    rec.CreatedAt,
		CreatedAt:   rec.CreatedAt,
	}
	if req.DueDate != "" {
		if due, err := time.Parse(time.RFC3339, req.DueDate); err == nil {
			c.DueDate = &due
		}
	}
	return c, nil
}
