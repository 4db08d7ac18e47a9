package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ammarmusa/travel-app-backend/internal/entity"
	"github.com/ammarmusa/travel-app-backend/internal/platform/logger"
	"github.com/ammarmusa/travel-app-backend/internal/platform/metrics"
	"github.com/ammarmusa/travel-app-backend/internal/port/cache"
	"github.com/ammarmusa/travel-app-backend/internal/port/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActivityUseCase mutates the activity list embedded in a wishlist. Every
// operation is scoped by (wishlistID, principalID); an ownership mismatch is
// reported as not-found, same as a missing parent.
type ActivityUseCase struct {
	repo      repository.WishlistRepository
	publisher EventPublisher
	cacheRepo cache.CacheRepository
	metrics   *metrics.Manager
	logger    *logger.Logger
}

func NewActivityUseCase(
	repo repository.WishlistRepository,
	publisher EventPublisher,
	cacheRepo cache.CacheRepository,
	mm *metrics.Manager,
	log *logger.Logger,
) *ActivityUseCase {
	return &ActivityUseCase{
		repo:      repo,
		publisher: publisher,
		cacheRepo: cacheRepo,
		metrics:   mm,
		logger:    log.Named("ActivityUseCase"),
	}
}

type AddActivityInput struct {
	Name        string
	Cost        float64
	IsCompleted bool
}

func (uc *ActivityUseCase) Add(ctx context.Context, wishlistID, principalID string, input AddActivityInput) (*entity.Wishlist, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: activity name is required", ErrInvalidInput)
	}
	if input.Cost < 0 {
		return nil, fmt.Errorf("%w: activity cost cannot be negative", ErrInvalidInput)
	}

	activity := &entity.Activity{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Cost:        input.Cost,
		IsCompleted: input.IsCompleted,
	}

	if err := uc.repo.PushActivity(ctx, wishlistID, principalID, activity); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to push activity in repository", zap.Error(err), zap.String("wishlist_id", wishlistID))
		}
		return nil, fmt.Errorf("ActivityUseCase.Add: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.ActivitiesAddedTotal.Inc()
	}

	return uc.refresh(ctx, wishlistID, principalID)
}

type UpdateActivityInput struct {
	Name        *string
	Cost        *float64
	IsCompleted *bool
}

func (uc *ActivityUseCase) Update(ctx context.Context, wishlistID, principalID, activityID string, input UpdateActivityInput) (*entity.Wishlist, error) {
	if input.Name != nil && *input.Name == "" {
		return nil, fmt.Errorf("%w: activity name cannot be empty", ErrInvalidInput)
	}
	if input.Cost != nil && *input.Cost < 0 {
		return nil, fmt.Errorf("%w: activity cost cannot be negative", ErrInvalidInput)
	}

	patch := &entity.ActivityPatch{
		Name:        input.Name,
		Cost:        input.Cost,
		IsCompleted: input.IsCompleted,
	}

	if patch.IsEmpty() {
		// Nothing to apply; still verify existence and ownership of the parent.
		wishlist, err := uc.repo.GetByIDForOwner(ctx, wishlistID, principalID)
		if err != nil {
			return nil, fmt.Errorf("ActivityUseCase.Update: %w", err)
		}
		return wishlist, nil
	}

	if err := uc.repo.UpdateActivity(ctx, wishlistID, principalID, activityID, patch); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to update activity in repository",
				zap.Error(err), zap.String("wishlist_id", wishlistID), zap.String("activity_id", activityID))
		}
		return nil, fmt.Errorf("ActivityUseCase.Update: %w", err)
	}

	return uc.refresh(ctx, wishlistID, principalID)
}

func (uc *ActivityUseCase) Remove(ctx context.Context, wishlistID, principalID, activityID string) (*entity.Wishlist, error) {
	if err := uc.repo.PullActivity(ctx, wishlistID, principalID, activityID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to pull activity in repository",
				zap.Error(err), zap.String("wishlist_id", wishlistID), zap.String("activity_id", activityID))
		}
		return nil, fmt.Errorf("ActivityUseCase.Remove: %w", err)
	}

	return uc.refresh(ctx, wishlistID, principalID)
}

// refresh re-reads the parent after a mutation, drops the stale cache entry
// and announces the change.
func (uc *ActivityUseCase) refresh(ctx context.Context, wishlistID, principalID string) (*entity.Wishlist, error) {
	wishlist, err := uc.repo.GetByIDForOwner(ctx, wishlistID, principalID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload wishlist after activity mutation: %w", err)
	}

	if uc.cacheRepo != nil {
		key := wishlistCacheKey(wishlistID)
		if delErr := uc.cacheRepo.Delete(ctx, key); delErr != nil {
			uc.logger.Warn("Failed to delete wishlist from cache", zap.Error(delErr), zap.String("key", key))
		}
	}

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishWishlistUpdated(ctx, wishlist); errPub != nil {
			uc.logger.Warn("Failed to publish wishlist updated event", zap.Error(errPub), zap.String("wishlist_id", wishlistID))
		}
	}

	return wishlist, nil
}
