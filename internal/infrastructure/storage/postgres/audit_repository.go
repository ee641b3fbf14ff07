package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/audit"
)

type AuditRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewAuditRepository(db *Storage, log *slog.Logger) *AuditRepository {
	return &AuditRepository{
		db:  db,
		log: log.With("component", "audit_repository"),
	}
}

// Audits have no open/closed state, so the view filter partitions them by
// recency instead: active is the last 30 days, history everything older.
const activeAuditWindow = 30 * 24 * time.Hour

// auditViewClause maps a view to its audited_at predicate. An unknown or
// empty view means no filter.
func auditViewClause(view string) (string, bool) {
	switch view {
	case "active":
		return " AND audited_at >= $2", true
	case "history":
		return " AND audited_at < $2", true
	}
	return "", false
}

func (r *AuditRepository) List(ctx context.Context, companyID, view string) ([]audit.Audit, error) {
	query := `SELECT id, company_id, area, auditor, score, audited_at, created_at
	          FROM audits WHERE company_id = $1`
	args := []any{companyID}

	if clause, ok := auditViewClause(view); ok {
		query += clause
		args = append(args, time.Now().Add(-activeAuditWindow))
	}
	query += ` ORDER BY audited_at DESC, id DESC`

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list audits", "company_id", companyID, "error", err)
		return nil, fmt.Errorf("list audits: %w", err)
	}
	defer rows.Close()

	audits := make([]audit.Audit, 0)
	for rows.Next() {
		var a audit.Audit
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Area, &a.Auditor,
			&a.Score, &a.AuditedAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		audits = append(audits, a)
	}
	return audits, rows.Err()
}

func (r *AuditRepository) Get(ctx context.Context, companyID string, id int) (audit.Audit, error) {
	var a audit.Audit
	err := r.db.Pool().QueryRow(ctx,
		`SELECT id, company_id, area, auditor, score, audited_at, created_at
		 FROM audits WHERE id = $1 AND company_id = $2`,
		id, companyID).Scan(&a.ID, &a.CompanyID, &a.Area, &a.Auditor,
		&a.Score, &a.AuditedAt, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return a, audit.ErrNotFound
		}
		return a, fmt.Errorf("get audit: %w", err)
	}

	rows, err := r.db.Pool().Query(ctx,
		`SELECT id, audit_id, category, question, score, comment
		 FROM audit_entries WHERE audit_id = $1 ORDER BY id`,
		a.ID)
	if err != nil {
		return a, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(&e.ID, &e.AuditID, &e.Category, &e.Question, &e.Score, &e.Comment); err != nil {
			return a, fmt.Errorf("scan audit entry: %w", err)
		}
		a.Entries = append(a.Entries, e)
	}
	return a, rows.Err()
}

// Delete removes the audit; entries go with it via ON DELETE CASCADE.
func (r *AuditRepository) Delete(ctx context.Context, companyID string, id int) error {
	tag, err := r.db.Pool().Exec(ctx,
		`DELETE FROM audits WHERE id = $1 AND company_id = $2`,
		id, companyID)
	if err != nil {
		return fmt.Errorf("delete audit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return audit.ErrNotFound
	}
	return nil
}

// Create inserts the audit and its entries in one transaction.
func (r *AuditRepository) Create(ctx context.Context, a audit.Audit) (audit.Audit, error) {
	tx, err := r.db.Pool().Begin(ctx)
	if err != nil {
		return a, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO audits (company_id, area, auditor, score, audited_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		a.CompanyID, a.Area, a.Auditor, a.Score, a.AuditedAt, a.CreatedAt).Scan(&a.ID)
	if err != nil {
		return a, fmt.Errorf("insert audit: %w", err)
	}

	for i := range a.Entries {
		a.Entries[i].AuditID = a.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO audit_entries (audit_id, category, question, score, comment)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			a.ID, a.Entries[i].Category, a.Entries[i].Question,
			a.Entries[i].Score, a.Entries[i].Comment).Scan(&a.Entries[i].ID)
		if err != nil {
			return a, fmt.Errorf("insert audit entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return a, fmt.Errorf("commit: %w", err)
	}
	return a, nil
}
