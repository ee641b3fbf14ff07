package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

const sessionTTL = 24 * time.Hour

// Identity is what a valid token resolves to. CompanyID is the tenant
// scope every record-bearing request is filtered by.
type Identity struct {
	UserID    int
	CompanyID string
	Admin     bool
}

type Repository interface {
	Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error
	Validate(ctx context.Context, tokenHash string) (Identity, error)
}

type Servicer interface {
	Create(ctx context.Context, userID int) (string, error)
	Validate(ctx context.Context, token string) (Identity, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "session_service"),
	}
}

// Create issues an opaque token. Only its hash is stored.
func (s *Service) Create(ctx context.Context, userID int) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	token := base64.URLEncoding.EncodeToString(tokenBytes)
	tokenHash := sha256.Sum256([]byte(token))

	expiresAt := time.Now().Add(sessionTTL)
	if err := s.repo.Create(ctx, userID, hex.EncodeToString(tokenHash[:]), expiresAt); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return token, nil
}

func (s *Service) Validate(ctx context.Context, token string) (Identity, error) {
	tokenHash := sha256.Sum256([]byte(token))
	return s.repo.Validate(ctx, hex.EncodeToString(tokenHash[:]))
}
