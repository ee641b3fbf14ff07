package audit

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("audit not found")

// Repository persists audits with their entries. Create inserts the audit
// and all child entries in one transaction; a failed entry insert rolls the
// whole audit back.
type Repository interface {
	List(ctx context.Context, companyID, view string) ([]Audit, error)
	Get(ctx context.Context, companyID string, id int) (Audit, error)
	Create(ctx context.Context, a Audit) (Audit, error)
	Delete(ctx context.Context, companyID string, id int) error
}
