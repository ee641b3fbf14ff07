package audit

import (
	"encoding/json"
	"fmt"

	"github.com/Reinvik/nexus-lean-sub000/internal/pending"
)

// EntryInput is one checklist answer as captured.
type EntryInput struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Score    int    `json:"score"`
	Comment  string `json:"comment,omitempty"`
}

// CreateRequest is the wire shape for inserting an audit. Entries are
// inserted as child rows of the created audit server-side.
type CreateRequest struct {
	CompanyID string       `json:"company_id"`
	Area      string       `json:"area"`
	Auditor   string       `json:"auditor,omitempty"`
	AuditedAt string       `json:"audited_at,omitempty"`
	Entries   []EntryInput `json:"entries"`
}

// ListResponse is the gateway's audit listing.
type ListResponse struct {
	Audits []Audit `json:"audits"`
}

// Validate enforces the capture preconditions for a new audit.
func (r *CreateRequest) Validate() error {
	if r.Area == "" {
		return fmt.Errorf("%w: area is required", pending.ErrValidation)
	}
	if len(r.Entries) == 0 {
		return fmt.Errorf("%w: an audit needs at least one entry", pending.ErrValidation)
	}
	for i, e := range r.Entries {
		if e.Question == "" {
			return fmt.Errorf("%w: entry %d has no question", pending.ErrValidation, i)
		}
		if e.Score < 0 || e.Score > 5 {
			return fmt.Errorf("%w: entry %d score %d out of range 0..5", pending.ErrValidation, i, e.Score)
		}
	}
	return nil
}

// Fields flattens the request into the opaque pending field map. Entries
// ride along as a JSON array under a single key so the store stays
// kind-agnostic.
func (r *CreateRequest) Fields() (map[string]any, error) {
	entries, err := json.Marshal(r.Entries)
	if err != nil {
		return nil, fmt.Errorf("marshal entries: %w", err)
	}
	f := map[string]any{
		"area":    r.Area,
		"auditor": r.Auditor,
		"entries": string(entries),
	}
	if r.CompanyID != "" {
		f[pending.FieldCompanyID] = r.CompanyID
	}
	if r.AuditedAt != "" {
		f["audited_at"] = r.AuditedAt
	}
	return f, nil
}

// RequestFromFields rebuilds a create request from the pending field map.
func RequestFromFields(fields map[string]any) (CreateRequest, error) {
	str := func(key string) string {
		v, _ := fields[key].(string)
		return v
	}
	req := CreateRequest{
		CompanyID: str(pending.FieldCompanyID),
		Area:      str("area"),
		Auditor:   str("auditor"),
		AuditedAt: str("audited_at"),
	}
	if raw := str("entries"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Entries); err != nil {
			return req, fmt.Errorf("unmarshal entries: %w", err)
		}
	}
	return req, nil
}

// Score averages the entry scores; zero entries score zero.
func Score(entries []EntryInput) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Score
	}
	return float64(sum) / float64(len(entries))
}
