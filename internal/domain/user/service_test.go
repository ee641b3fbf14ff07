package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, login, passwordHash, companyID string) (int, error) {
	args := m.Called(ctx, login, passwordHash, companyID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) FindByLogin(ctx context.Context, login string) (User, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(User), args.Error(1)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, NewValidator(), slog.Default())
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	login := "testuser"
	password := "testpassword123"

	// The exact hash is unpredictable, so only check it is non-empty
	mockRepo.On("Create", mock.Anything, login, mock.MatchedBy(func(hash string) bool {
		return hash != ""
	}), "acme").Return(123, nil)

	userID, err := service.Register(context.Background(), login, password, "acme")
	assert.NoError(t, err)
	assert.Equal(t, 123, userID)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("Create", mock.Anything, "testuser", mock.AnythingOfType("string"), "").
		Return(0, errors.New("database error"))

	_, err := service.Register(context.Background(), "testuser", "testpassword123", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
}

func TestService_Register_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		login    string
		password string
	}{
		{name: "login too short", login: "ab", password: "password123"},
		{name: "login with invalid character", login: "user name", password: "password123"},
		{name: "password too short", login: "testuser", password: "p1"},
		{name: "password without digits", login: "testuser", password: "passwordonly"},
		{name: "password without letters", login: "testuser", password: "12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newTestService(mockRepo)

			_, err := service.Register(context.Background(), tt.login, tt.password, "")
			assert.ErrorIs(t, err, ErrInvalidInput)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_Authenticate_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	login := "testuser"
	password := "testpassword123"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)

	u := User{
		ID:        123,
		Login:     login,
		Password:  string(hash),
		CompanyID: "acme",
	}

	mockRepo.On("FindByLogin", mock.Anything, login).Return(u, nil)

	authUser, err := service.Authenticate(context.Background(), login, password)
	assert.NoError(t, err)
	assert.Equal(t, u, authUser)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_UserNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("FindByLogin", mock.Anything, "nonexistent").Return(User{}, errors.New("no rows"))

	_, err := service.Authenticate(context.Background(), "nonexistent", "testpassword123")
	assert.Error(t, err)
	assert.Equal(t, ErrNotFound, err)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_InvalidPassword(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("correctpassword1"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	u := User{
		ID:       123,
		Login:    "testuser",
		Password: string(hash),
	}

	mockRepo.On("FindByLogin", mock.Anything, "testuser").Return(u, nil)

	_, err = service.Authenticate(context.Background(), "testuser", "wrongpassword1")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidAuth, err)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_InvalidHash(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	u := User{
		ID:       123,
		Login:    "testuser",
		Password: "invalidhash", // not a bcrypt hash
	}

	mockRepo.On("FindByLogin", mock.Anything, "testuser").Return(u, nil)

	_, err := service.Authenticate(context.Background(), "testuser", "testpassword123")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidAuth, err)

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_BadLoginSkipsLookup(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	_, err := service.Authenticate(context.Background(), "", "testpassword123")
	assert.Equal(t, ErrInvalidAuth, err)
	mockRepo.AssertNotCalled(t, "FindByLogin", mock.Anything, mock.Anything)
}
