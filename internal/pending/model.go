package pending

import (
	"time"
)

// Kind selects the remote collection a pending record targets.
type Kind string

const (
	KindCard  Kind = "card"
	KindAudit Kind = "audit"
)

// Kinds lists every kind a sync pass can drain.
var Kinds = []Kind{KindCard, KindAudit}

func (k Kind) Valid() bool {
	return k == KindCard || k == KindAudit
}

// FieldCompanyID is the one field the sync engine inspects; everything
// else in Fields passes through opaque.
const FieldCompanyID = "company_id"

// Record is a locally captured entry that has not been confirmed by the
// gateway. It exists only while unsynced: a successful upload deletes it,
// it is never flipped to a synced state in place.
type Record struct {
	TempID      string            `json:"temp_id"`
	Kind        Kind              `json:"kind"`
	CreatedAt   time.Time         `json:"created_at"`
	Fields      map[string]any    `json:"fields"`
	Attachments map[string][]byte `json:"attachments,omitempty"`
}

// CompanyID returns the record's tenant scope, empty if unresolved.
func (r *Record) CompanyID() string {
	v, ok := r.Fields[FieldCompanyID]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
