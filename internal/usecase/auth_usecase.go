package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ammarmusa/travel-app-backend/internal/entity"
	"github.com/ammarmusa/travel-app-backend/internal/platform/logger"
	"github.com/ammarmusa/travel-app-backend/internal/port/repository"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrRegistrationClosed is returned once the configured user cap is reached.
	ErrRegistrationClosed = errors.New("maximum user limit reached, registration is closed")
)

// accessTokenClaims is the JWT payload issued on login. The middleware parses
// the same shape on every protected request.
type accessTokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type AuthUseCase struct {
	users     repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	maxUsers  int64
	logger    *logger.Logger
}

func NewAuthUseCase(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration, maxUsers int64, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		maxUsers:  maxUsers,
		logger:    log.Named("AuthUseCase"),
	}
}

func (uc *AuthUseCase) Register(ctx context.Context, fullName, email, password string) (*entity.User, error) {
	if fullName == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: full_name, email and password are required", ErrInvalidInput)
	}

	if uc.maxUsers > 0 {
		count, err := uc.users.Count(ctx)
		if err != nil {
			uc.logger.Error("Failed to count users", zap.Error(err))
			return nil, fmt.Errorf("AuthUseCase.Register: %w", err)
		}
		if count >= uc.maxUsers {
			return nil, ErrRegistrationClosed
		}
	}

	user := &entity.User{
		FullName:  fullName,
		Email:     email,
		Role:      "user",
		CreatedAt: time.Now().UTC(),
	}

	id, err := uc.users.Create(ctx, user, password)
	if err != nil {
		if !errors.Is(err, repository.ErrDuplicateEmail) {
			uc.logger.Error("Failed to create user in repository", zap.Error(err), zap.String("email", email))
		}
		return nil, fmt.Errorf("AuthUseCase.Register: %w", err)
	}
	user.ID = id

	return user, nil
}

// Login verifies the credentials and issues a signed bearer token. A missing
// account and a wrong password are indistinguishable to the caller.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		uc.logger.Error("Failed to get user by email", zap.Error(err))
		return "", fmt.Errorf("AuthUseCase.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := accessTokenClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		uc.logger.Error("Failed to sign access token", zap.Error(err))
		return "", fmt.Errorf("AuthUseCase.Login: failed to sign token: %w", err)
	}

	uc.logger.Info("User logged in", zap.String("user_id", user.ID))
	return signed, nil
}

func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to get user by id", zap.Error(err), zap.String("user_id", userID))
		}
		return nil, fmt.Errorf("AuthUseCase.Profile: %w", err)
	}
	return user, nil
}
