package repository

import (
	"context"

	"github.com/ammarmusa/travel-app-backend/internal/entity"
)

// UserRepository persists accounts. Create receives the plain password and is
// responsible for hashing it before storage.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User, password string) (string, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}
