package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/card"
)

type CardRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewCardRepository(db *Storage, log *slog.Logger) *CardRepository {
	return &CardRepository{
		db:  db,
		log: log.With("component", "card_repository"),
	}
}

const cardColumns = `id, card_no, company_id, area, description, responsible, status,
	opened_at, due_date, closed_at, before_photo_url, after_photo_url, created_at`

func (r *CardRepository) List(ctx context.Context, companyID, view string) ([]card.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE company_id = $1`
	switch view {
	case "active":
		query += ` AND status = 'open'`
	case "history":
		query += ` AND status = 'closed'`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Pool().Query(ctx, query, companyID)
	if err != nil {
		r.log.Error("failed to list cards", "company_id", companyID, "error", err)
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	cards := make([]card.Card, 0)
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *CardRepository) Get(ctx context.Context, companyID string, id int) (card.Card, error) {
	row := r.db.Pool().QueryRow(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = $1 AND company_id = $2`,
		id, companyID)

	c, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c, card.ErrNotFound
		}
		r.log.Error("failed to get card", "id", id, "error", err)
		return c, fmt.Errorf("get card: %w", err)
	}
	return c, nil
}

// Create inserts the card with the next per-company card number. The
// counter row is locked inside the transaction so concurrent inserts for
// the same company never collide.
func (r *CardRepository) Create(ctx context.Context, c card.Card) (card.Card, error) {
	tx, err := r.db.Pool().Begin(ctx)
	if err != nil {
		return c, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO card_counters (company_id, last_no) VALUES ($1, 1)
		 ON CONFLICT (company_id) DO UPDATE SET last_no = card_counters.last_no + 1
		 RETURNING last_no`,
		c.CompanyID).Scan(&c.CardNo)
	if err != nil {
		return c, fmt.Errorf("next card number: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO cards (card_no, company_id, area, description, responsible, status,
		                    opened_at, due_date, closed_at, before_photo_url, after_photo_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		c.CardNo, c.CompanyID, c.Area, c.Description, c.Responsible, c.Status,
		c.OpenedAt, c.DueDate, c.ClosedAt, c.BeforePhotoURL, c.AfterPhotoURL, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		return c, fmt.Errorf("insert card: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return c, fmt.Errorf("commit: %w", err)
	}
	return c, nil
}

func (r *CardRepository) Update(ctx context.Context, companyID string, c card.Card) error {
	tag, err := r.db.Pool().Exec(ctx,
		`UPDATE cards
		 SET area = $1, description = $2, responsible = $3, status = $4,
		     due_date = $5, closed_at = $6, before_photo_url = $7, after_photo_url = $8
		 WHERE id = $9 AND company_id = $10`,
		c.Area, c.Description, c.Responsible, c.Status,
		c.DueDate, c.ClosedAt, c.BeforePhotoURL, c.AfterPhotoURL,
		c.ID, companyID)
	if err != nil {
		r.log.Error("failed to update card", "id", c.ID, "error", err)
		return fmt.Errorf("update card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return card.ErrNotFound
	}
	return nil
}

func (r *CardRepository) Delete(ctx context.Context, companyID string, id int) error {
	tag, err := r.db.Pool().Exec(ctx,
		`DELETE FROM cards WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return card.ErrNotFound
	}
	return nil
}

func scanCard(row pgx.Row) (card.Card, error) {
	var c card.Card
	err := row.Scan(&c.ID, &c.CardNo, &c.CompanyID, &c.Area, &c.Description, &c.Responsible,
		&c.Status, &c.OpenedAt, &c.DueDate, &c.ClosedAt,
		&c.BeforePhotoURL, &c.AfterPhotoURL, &c.CreatedAt)
	return c, err
}
