package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/ammarmusa/travel-app-backend/internal/entity"
	"github.com/ammarmusa/travel-app-backend/internal/platform/logger"
	"github.com/ammarmusa/travel-app-backend/internal/port/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func newAuthUseCase(users *MockUserRepository, maxUsers int64) *AuthUseCase {
	return NewAuthUseCase(users, testJWTSecret, 30*time.Minute, maxUsers, logger.NewLogger())
}

func TestRegister_Success(t *testing.T) {
	users := new(MockUserRepository)
	uc := newAuthUseCase(users, 3)

	users.On("Count", mock.Anything).Return(int64(1), nil).Once()
	users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User"), "s3cret").
		Return("user-1", nil).Once()

	user, err := uc.Register(context.Background(), "Aigerim", "aigerim@example.com", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "user", user.Role)
	users.AssertExpectations(t)
}

func TestRegister_CapReached(t *testing.T) {
	users := new(MockUserRepository)
	uc := newAuthUseCase(users, 3)

	users.On("Count", mock.Anything).Return(int64(3), nil).Once()

	_, err := uc.Register(context.Background(), "Late Comer", "late@example.com", "pw")

	assert.ErrorIs(t, err, ErrRegistrationClosed)
	users.AssertNotCalled(t, "Create")
}

func TestRegister_UnlimitedWhenCapDisabled(t *testing.T) {
	users := new(MockUserRepository)
	uc := newAuthUseCase(users, 0)

	users.On("Create", mock.Anything, mock.Anything, "pw").Return("user-9", nil).Once()

	_, err := uc.Register(context.Background(), "Anyone", "anyone@example.com", "pw")

	require.NoError(t, err)
	users.AssertNotCalled(t, "Count")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	uc := newAuthUseCase(users, 0)

	users.On("Create", mock.Anything, mock.Anything, "pw").
		Return("", repository.ErrDuplicateEmail).Once()

	_, err := uc.Register(context.Background(), "Dup", "dup@example.com", "pw")

	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestRegister_MissingFields(t *testing.T) {
	users := new(MockUserRepository)
	uc := newAuthUseCase(users, 0)

	_, err := uc.Register(context.Background(), "", "a@example.com", "pw")

	assert.ErrorIs(t, err, ErrInvalidInput)
	users.AssertNotCalled(t, "Create")
}

func TestLogin_IssuesTokenWithUserIDClaim(t *testing.T) {
	users := new(MockUserRepository)
	uc := newAuthUseCase(users, 0)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "aigerim@example.com").Return(&entity.User{
		ID:             "user-1",
		Email:          "aigerim@example.com",
		HashedPassword: string(hash),
	}, nil).Once()

	signed, err := uc.Login(context.Background(), "aigerim@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims := &accessTokenClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "aigerim@example.com", claims.Subject)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	uc := newAuthUseCase(users, 0)

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "a@example.com").Return(&entity.User{
		ID:             "user-1",
		HashedPassword: string(hash),
	}, nil).Once()

	_, err = uc.Login(context.Background(), "a@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	uc := newAuthUseCase(users, 0)

	users.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, repository.ErrNotFound).Once()

	_, err := uc.Login(context.Background(), "ghost@example.com", "pw")

	// A missing account reads exactly like a wrong password.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

func TestProfile_NotFound(t *testing.T) {
	users := new(MockUserRepository)
	uc := newAuthUseCase(users, 0)

	users.On("GetByID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound).Once()

	_, err := uc.Profile(context.Background(), "ghost")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}
