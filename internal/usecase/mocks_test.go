package usecase

import (
	"context"

	"github.com/ammarmusa/travel-app-backend/internal/entity"
	"github.com/stretchr/testify/mock"
)

type MockWishlistRepository struct {
	mock.Mock
}

func (m *MockWishlistRepository) Create(ctx context.Context, wishlist *entity.Wishlist) (string, error) {
	args := m.Called(ctx, wishlist)
	return args.String(0), args.Error(1)
}

func (m *MockWishlistRepository) GetByID(ctx context.Context, id string) (*entity.Wishlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Wishlist), args.Error(1)
}

func (m *MockWishlistRepository) GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Wishlist, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Wishlist), args.Error(1)
}

func (m *MockWishlistRepository) List(ctx context.Context) ([]*entity.Wishlist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Wishlist), args.Error(1)
}

func (m *MockWishlistRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Wishlist, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Wishlist), args.Error(1)
}

func (m *MockWishlistRepository) UpdateFields(ctx context.Context, id, ownerID string, patch *entity.WishlistPatch) error {
	args := m.Called(ctx, id, ownerID, patch)
	return args.Error(0)
}

func (m *MockWishlistRepository) Delete(ctx context.Context, id, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockWishlistRepository) PushActivity(ctx context.Context, wishlistID, ownerID string, activity *entity.Activity) error {
	args := m.Called(ctx, wishlistID, ownerID, activity)
	return args.Error(0)
}

func (m *MockWishlistRepository) UpdateActivity(ctx context.Context, wishlistID, ownerID, activityID string, patch *entity.ActivityPatch) error {
	args := m.Called(ctx, wishlistID, ownerID, activityID, patch)
	return args.Error(0)
}

func (m *MockWishlistRepository) PullActivity(ctx context.Context, wishlistID, ownerID, activityID string) error {
	args := m.Called(ctx, wishlistID, ownerID, activityID)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User, password string) (string, error) {
	args := m.Called(ctx, user, password)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// stubExtractor returns a fixed coordinate pair regardless of the link.
type stubExtractor struct {
	lat *float64
	lng *float64
}

func (s *stubExtractor) Extract(ctx context.Context, link string) (*float64, *float64) {
	return s.lat, s.lng
}

func float64Ptr(v float64) *float64 { return &v }
