package repository

import (
	"context"

	"github.com/ammarmusa/travel-app-backend/internal/entity"
)

// WishlistRepository persists wishlist aggregates. Every mutating operation
// that takes an ownerID includes it in the match filter, so an ownership
// mismatch is indistinguishable from a missing document (ErrNotFound).
// Each call maps to a single atomic document-store operation.
type WishlistRepository interface {
	Create(ctx context.Context, wishlist *entity.Wishlist) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Wishlist, error)
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Wishlist, error)
	List(ctx context.Context) ([]*entity.Wishlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Wishlist, error)
	UpdateFields(ctx context.Context, id, ownerID string, patch *entity.WishlistPatch) error
	Delete(ctx context.Context, id, ownerID string) error

	PushActivity(ctx context.Context, wishlistID, ownerID string, activity *entity.Activity) error
	UpdateActivity(ctx context.Context, wishlistID, ownerID, activityID string, patch *entity.ActivityPatch) error
	PullActivity(ctx context.Context, wishlistID, ownerID, activityID string) error
}
