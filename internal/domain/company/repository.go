package company

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("company not found")

type Repository interface {
	List(ctx context.Context) ([]Company, error)
	Create(ctx context.Context, c Company) error
}
