package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/user"
)

type UserRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewUserRepository(db *Storage, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.With("component", "user_repository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, login, passwordHash, companyID string) (int, error) {
	var id int
	err := r.db.Pool().QueryRow(ctx,
		`INSERT INTO users (login, password_hash, company_id)
		 VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING id`,
		login, passwordHash, companyID).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, user.ErrLoginTaken
		}
		r.log.Error("failed to create user", "login", login, "error", err)
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (user.User, error) {
	var u user.User
	err := r.db.Pool().QueryRow(ctx,
		`SELECT id, login, password_hash, COALESCE(company_id, ''), is_admin, created_at
		 FROM users
		 WHERE login = $1`,
		login).Scan(&u.ID, &u.Login, &u.Password, &u.CompanyID, &u.Admin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return u, user.ErrNotFound
		}
		r.log.Error("failed to find user", "login", login, "error", err)
		return u, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}
