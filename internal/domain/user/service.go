package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, login, password, companyID string) (int, error)
	Authenticate(ctx context.Context, login, password string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With("component", "user_service"),
	}
}

func (s *Service) Register(ctx context.Context, login, password, companyID string) (int, error) {
	if err := s.validator.ValidateRegister(login, password); err != nil {
		s.log.Debug("registration validation failed", "login", login, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, login, string(hash), companyID)
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (User, error) {
	if err := s.validator.ValidateLogin(login); err != nil {
		return User{}, ErrInvalidAuth
	}

	u, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		return u, ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return u, ErrInvalidAuth
	}

	return u, nil
}
