package postgres

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/report"
)

type ReportRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewReportRepository(db *Storage, log *slog.Logger) *ReportRepository {
	return &ReportRepository{
		db:  db,
		log: log.With("component", "report_repository"),
	}
}

func (r *ReportRepository) Summary(ctx context.Context, companyID string) (*report.Summary, error) {
	s := &report.Summary{
		CompanyID:    companyID,
		CardsPerArea: make(map[string]int),
	}

	err := r.db.Pool().QueryRow(ctx,
		`SELECT
		   COUNT(*) FILTER (WHERE status = 'open'),
		   COUNT(*) FILTER (WHERE status = 'closed')
		 FROM cards WHERE company_id = $1`,
		companyID).Scan(&s.OpenCards, &s.ClosedCards)
	if err != nil {
		return nil, fmt.Errorf("card counts: %w", err)
	}

	err = r.db.Pool().QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(score), 0)
		 FROM audits WHERE company_id = $1`,
		companyID).Scan(&s.AuditCount, &s.AvgAuditScore)
	if err != nil {
		return nil, fmt.Errorf("audit stats: %w", err)
	}

	rows, err := r.db.Pool().Query(ctx,
		`SELECT area, COUNT(*) FROM cards
		 WHERE company_id = $1 GROUP BY area`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("cards per area: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var area string
		var count int
		if err := rows.Scan(&area, &count); err != nil {
			return nil, fmt.Errorf("scan area count: %w", err)
		}
		s.CardsPerArea[area] = count
	}
	return s, rows.Err()
}
