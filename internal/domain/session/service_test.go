package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockRepository) Validate(ctx context.Context, tokenHash string) (Identity, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(Identity), args.Error(1)
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	var storedHash string
	mockRepo.On("Create", mock.Anything, 42, mock.MatchedBy(func(hash string) bool {
		storedHash = hash
		return len(hash) == 64 // hex-encoded sha256
	}), mock.MatchedBy(func(expiresAt time.Time) bool {
		return expiresAt.After(time.Now())
	})).Return(nil)

	token, err := service.Create(context.Background(), 42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// The stored hash must match the issued token, never the token itself
	sum := sha256.Sum256([]byte(token))
	assert.Equal(t, hex.EncodeToString(sum[:]), storedHash)
	assert.NotEqual(t, token, storedHash)

	mockRepo.AssertExpectations(t)
}

func TestService_Create_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Create", mock.Anything, 42, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(errors.New("database error"))

	_, err := service.Create(context.Background(), 42)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
}

func TestService_Validate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	token := "opaque-token"
	sum := sha256.Sum256([]byte(token))
	identity := Identity{UserID: 42, CompanyID: "acme", Admin: false}

	mockRepo.On("Validate", mock.Anything, hex.EncodeToString(sum[:])).Return(identity, nil)

	got, err := service.Validate(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, identity, got)

	mockRepo.AssertExpectations(t)
}

func TestService_Validate_Invalid(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Validate", mock.Anything, mock.AnythingOfType("string")).
		Return(Identity{}, errors.New("invalid session"))

	_, err := service.Validate(context.Background(), "expired-token")
	assert.Error(t, err)

	mockRepo.AssertExpectations(t)
}
