package postgres

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/session"
)

type SessionRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewSessionRepository(db *Storage, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log.With("component", "session_repository"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.Pool().Exec(ctx,
		`INSERT INTO sessions (user_id, token_hash, expires_at)
		 VALUES ($1, $2, $3)`,
		userID, tokenHash, expiresAt)
	return err
}

func (r *SessionRepository) Validate(ctx context.Context, tokenHash string) (session.Identity, error) {
	var id session.Identity
	err := r.db.Pool().QueryRow(ctx,
		`SELECT u.id, COALESCE(u.company_id, ''), u.is_admin
		 FROM sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.token_hash = $1 AND s.expires_at > NOW()`,
		tokenHash).Scan(&id.UserID, &id.CompanyID, &id.Admin)
	if err != nil {
		return id, fmt.Errorf("invalid session")
	}
	return id, nil
}
