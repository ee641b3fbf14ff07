package audit

import (
	"time"
)

// Categories of the 5S checklist an entry belongs to.
const (
	CategorySort        = "sort"
	CategorySetInOrder  = "set_in_order"
	CategoryShine       = "shine"
	CategoryStandardize = "standardize"
	CategorySustain     = "sustain"
)

// Audit is a completed 5S audit with its checklist entries.
type Audit struct {
	ID        int       `json:"id"`
	CompanyID string    `json:"company_id"`
	Area      string    `json:"area"`
	Auditor   string    `json:"auditor"`
	Score     float64   `json:"score"`
	AuditedAt time.Time `json:"audited_at"`
	Entries   []Entry   `json:"entries,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry is one checklist question's result, a child row of its audit.
type Entry struct {
	ID       int    `json:"id"`
	AuditID  int    `json:"audit_id"`
	Category string `json:"category"`
	Question string `json:"question"`
	Score    int    `json:"score"`
	Comment  string `json:"comment,omitempty"`
}
