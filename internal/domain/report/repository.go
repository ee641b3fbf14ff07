package report

import (
	"context"
)

type Repository interface {
	Summary(ctx context.Context, companyID string) (*Summary, error)
}
