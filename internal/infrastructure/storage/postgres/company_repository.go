package postgres

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/company"
)

type CompanyRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewCompanyRepository(db *Storage, log *slog.Logger) *CompanyRepository {
	return &CompanyRepository{
		db:  db,
		log: log.With("component", "company_repository"),
	}
}

func (r *CompanyRepository) List(ctx context.Context) ([]company.Company, error) {
	rows, err := r.db.Pool().Query(ctx,
		`SELECT id, name FROM companies ORDER BY name`)
	if err != nil {
		r.log.Error("failed to list companies", "error", err)
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]company.Company, 0)
	for rows.Next() {
		var c company.Company
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *CompanyRepository) Create(ctx context.Context, c company.Company) error {
	_, err := r.db.Pool().Exec(ctx,
		`INSERT INTO companies (id, name) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
		c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}
