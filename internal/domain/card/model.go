package card

import (
	"time"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Evidence slots a card must carry before it can be closed.
const (
	SlotBefore = "before"
	SlotAfter  = "after"
)

// Card is a 5S improvement card as confirmed by the gateway. CardNo is the
// per-company sequence number assigned server-side on insert; clients never
// set it.
type Card struct {
	ID             int        `json:"id"`
	CardNo         int        `json:"card_no"`
	CompanyID      string     `json:"company_id"`
	Area           string     `json:"area"`
	Description    string     `json:"description"`
	Responsible    string     `json:"responsible"`
	Status         Status     `json:"status"`
	OpenedAt       time.Time  `json:"opened_at"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
	BeforePhotoURL string     `json:"before_photo_url,omitempty"`
	AfterPhotoURL  string     `json:"after_photo_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (c *Card) IsClosed() bool {
	return c.Status == StatusClosed
}
