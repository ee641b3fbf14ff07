package card

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("card not found")

// Repository is the persistence contract. Every method is scoped by
// company: a tenant can never see or touch another tenant's cards.
type Repository interface {
	List(ctx context.Context, companyID, view string) ([]Card, error)
	Get(ctx context.Context, companyID string, id int) (Card, error)
	// Create assigns the id and the per-company card number.
	Create(ctx context.Context, c Card) (Card, error)
	Update(ctx context.Context, companyID string, c Card) error
	Delete(ctx context.Context, companyID string, id int) error
}
