package card

import (
	"fmt"

	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

// Input is what a capture carries before the card has a server identity.
type Input struct {
	CompanyID   string
	Area        string
	Description string
	Responsible string
	Status      Status
	DueDate     string // RFC 3339 date, optional
}

// Validate enforces the capture preconditions: required fields, a known
// status, and the evidence rule that a card cannot be submitted closed
// unless both before and after attachments are present. hasEvidence reports
// whether the named slot carries a non-empty attachment or URL.
func (in *Input) Validate(hasEvidence func(slot string) bool) error {
	if in.Area == "" {
		return fmt.Errorf("%w: area is required", pending.ErrValidation)
	}
	if in.Description == "" {
		return fmt.Errorf("%w: description is required", pending.ErrValidation)
	}
	switch in.Status {
	case "", StatusOpen, StatusClosed:
	default:
		return fmt.Errorf("%w: unknown status %q", pending.ErrValidation, in.Status)
	}
	if in.Status == StatusClosed {
		if !hasEvidence(SlotBefore) || !hasEvidence(SlotAfter) {
			return fmt.Errorf("%w: closing a card requires before and after evidence", pending.ErrValidation)
		}
	}
	return nil
}

// Fields flattens the input into the opaque pending-record field map.
func (in *Input) Fields() map[string]any {
	status := in.Status
	if status == "" {
		status = StatusOpen
	}
	f := map[string]any{
		"area":        in.Area,
		"description": in.Description,
		"responsible": in.Responsible,
		"status":      string(status),
	}
	if in.CompanyID != "" {
		f[pending.FieldCompanyID] = in.CompanyID
	}
	if in.DueDate != "" {
		f["due_date"] = in.DueDate
	}
	return f
}
