package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ammarmusa/travel-app-backend/internal/entity"
	"github.com/ammarmusa/travel-app-backend/internal/platform/logger"
	"github.com/ammarmusa/travel-app-backend/internal/platform/metrics"
	"github.com/ammarmusa/travel-app-backend/internal/port/cache"
	"github.com/ammarmusa/travel-app-backend/internal/port/repository"
	"go.uber.org/zap"
)

var (
	// ErrInvalidInput marks validation failures that must never reach the store.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingLocation is returned when a wishlist is created with neither
	// an explicit coordinate pair nor a map link.
	ErrMissingLocation = fmt.Errorf("%w: either latitude/longitude or google_maps_url is required", ErrInvalidInput)
)

// CoordinateExtractor recovers a coordinate pair from a map link. It never
// fails; an unusable link yields a nil pair.
type CoordinateExtractor interface {
	Extract(ctx context.Context, link string) (*float64, *float64)
}

// EventPublisher notifies other systems about wishlist changes. Publishing is
// best-effort; failures are logged, never surfaced to the caller.
type EventPublisher interface {
	PublishWishlistCreated(ctx context.Context, wishlist *entity.Wishlist) error
	PublishWishlistUpdated(ctx context.Context, wishlist *entity.Wishlist) error
	PublishWishlistDeleted(ctx context.Context, wishlistID string) error
}

type WishlistUseCase struct {
	repo      repository.WishlistRepository
	extractor CoordinateExtractor
	publisher EventPublisher
	cacheRepo cache.CacheRepository
	metrics   *metrics.Manager
	logger    *logger.Logger
}

func NewWishlistUseCase(
	repo repository.WishlistRepository,
	extractor CoordinateExtractor,
	publisher EventPublisher,
	cacheRepo cache.CacheRepository,
	mm *metrics.Manager,
	log *logger.Logger,
) *WishlistUseCase {
	return &WishlistUseCase{
		repo:      repo,
		extractor: extractor,
		publisher: publisher,
		cacheRepo: cacheRepo,
		metrics:   mm,
		logger:    log.Named("WishlistUseCase"),
	}
}

func wishlistCacheKey(id string) string {
	return fmt.Sprintf("wishlist:%s", id)
}

const wishlistCacheTTL = 5 * time.Minute

type CreateWishlistInput struct {
	Name          string
	Description   string
	Status        entity.WishlistStatus
	Latitude      *float64
	Longitude     *float64
	GoogleMapsURL string
}

func (uc *WishlistUseCase) Create(ctx context.Context, principalID string, input CreateWishlistInput) (*entity.Wishlist, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.Status == "" {
		input.Status = entity.StatusWishlist
	}
	if !entity.ValidStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, input.Status)
	}

	hasCoordinates := input.Latitude != nil && input.Longitude != nil
	hasURL := input.GoogleMapsURL != ""
	if !hasCoordinates && !hasURL {
		return nil, ErrMissingLocation
	}

	wishlist := &entity.Wishlist{
		OwnerID:       principalID,
		Name:          input.Name,
		Description:   input.Description,
		Status:        input.Status,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		GoogleMapsURL: input.GoogleMapsURL,
		SourceType:    entity.SourceManual,
		Activities:    []entity.Activity{},
		CreatedAt:     time.Now().UTC(),
	}

	if hasURL {
		// A failed extraction does not block creation; it just leaves the
		// coordinates empty.
		lat, lng := uc.extractor.Extract(ctx, input.GoogleMapsURL)
		wishlist.Latitude = lat
		wishlist.Longitude = lng
		wishlist.SourceType = entity.SourceDerivedFromLink
		uc.countExtraction(lat != nil)
	}

	createdID, err := uc.repo.Create(ctx, wishlist)
	if err != nil {
		uc.logger.Error("Failed to create wishlist in repository", zap.Error(err), zap.String("owner_id", principalID))
		return nil, fmt.Errorf("WishlistUseCase.Create: %w", err)
	}
	wishlist.ID = createdID

	if uc.metrics != nil {
		uc.metrics.WishlistsCreatedTotal.Inc()
	}
	uc.cacheSet(ctx, wishlist)

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishWishlistCreated(ctx, wishlist); errPub != nil {
			uc.logger.Warn("Failed to publish wishlist created event", zap.Error(errPub), zap.String("wishlist_id", wishlist.ID))
		}
	}

	return wishlist, nil
}

// ListAll returns every wishlist across all owners; the endpoint is a shared
// "explore" list rather than a private one.
func (uc *WishlistUseCase) ListAll(ctx context.Context) ([]*entity.Wishlist, error) {
	wishlists, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list wishlists from repository", zap.Error(err))
		return nil, fmt.Errorf("WishlistUseCase.ListAll: %w", err)
	}
	return wishlists, nil
}

func (uc *WishlistUseCase) ListMine(ctx context.Context, principalID string) ([]*entity.Wishlist, error) {
	wishlists, err := uc.repo.ListByOwner(ctx, principalID)
	if err != nil {
		uc.logger.Error("Failed to list owner wishlists from repository", zap.Error(err), zap.String("owner_id", principalID))
		return nil, fmt.Errorf("WishlistUseCase.ListMine: %w", err)
	}
	return wishlists, nil
}

// Get does not enforce ownership; plain reads by id are open to any
// authenticated caller.
func (uc *WishlistUseCase) Get(ctx context.Context, id string) (*entity.Wishlist, error) {
	if uc.cacheRepo != nil {
		key := wishlistCacheKey(id)
		cachedBytes, err := uc.cacheRepo.Get(ctx, key)
		if err == nil {
			var fromCache entity.Wishlist
			if unmarshalErr := json.Unmarshal(cachedBytes, &fromCache); unmarshalErr == nil {
				return &fromCache, nil
			}
			if delErr := uc.cacheRepo.Delete(ctx, key); delErr != nil {
				uc.logger.Warn("Failed to delete corrupted data from cache", zap.String("key", key), zap.Error(delErr))
			}
		} else if !errors.Is(err, cache.ErrNotFound) {
			uc.logger.Warn("Failed to get wishlist from cache", zap.Error(err), zap.String("key", key))
		}
	}

	wishlist, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to get wishlist by ID from repository", zap.Error(err), zap.String("wishlist_id", id))
		}
		return nil, fmt.Errorf("WishlistUseCase.Get: %w", err)
	}

	uc.cacheSet(ctx, wishlist)
	return wishlist, nil
}

type UpdateWishlistInput struct {
	Name          *string
	Description   *string
	Status        *entity.WishlistStatus
	Latitude      *float64
	Longitude     *float64
	GoogleMapsURL *string
}

func (uc *WishlistUseCase) Update(ctx context.Context, id, principalID string, input UpdateWishlistInput) (*entity.Wishlist, error) {
	if input.Name != nil && *input.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if input.Status != nil && !entity.ValidStatus(*input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *input.Status)
	}

	patch := &entity.WishlistPatch{
		Name:          input.Name,
		Description:   input.Description,
		Status:        input.Status,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		GoogleMapsURL: input.GoogleMapsURL,
	}

	// A new map link overrides any coordinates supplied alongside it.
	if input.GoogleMapsURL != nil && *input.GoogleMapsURL != "" {
		lat, lng := uc.extractor.Extract(ctx, *input.GoogleMapsURL)
		patch.Latitude = lat
		patch.Longitude = lng
		patch.ReplaceCoordinates = true
		sourceType := entity.SourceDerivedFromLink
		patch.SourceType = &sourceType
		uc.countExtraction(lat != nil)
	}

	if patch.IsEmpty() {
		// Nothing to apply; still verify existence and ownership.
		wishlist, err := uc.repo.GetByIDForOwner(ctx, id, principalID)
		if err != nil {
			return nil, fmt.Errorf("WishlistUseCase.Update: %w", err)
		}
		return wishlist, nil
	}

	if err := uc.repo.UpdateFields(ctx, id, principalID, patch); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to update wishlist in repository", zap.Error(err), zap.String("wishlist_id", id))
		}
		return nil, fmt.Errorf("WishlistUseCase.Update: %w", err)
	}

	wishlist, err := uc.repo.GetByIDForOwner(ctx, id, principalID)
	if err != nil {
		return nil, fmt.Errorf("WishlistUseCase.Update: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.WishlistUpdatesTotal.Inc()
	}
	uc.cacheInvalidate(ctx, id)

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishWishlistUpdated(ctx, wishlist); errPub != nil {
			uc.logger.Warn("Failed to publish wishlist updated event", zap.Error(errPub), zap.String("wishlist_id", id))
		}
	}

	return wishlist, nil
}

func (uc *WishlistUseCase) Delete(ctx context.Context, id, principalID string) error {
	if err := uc.repo.Delete(ctx, id, principalID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to delete wishlist from repository", zap.Error(err), zap.String("wishlist_id", id))
		}
		return fmt.Errorf("WishlistUseCase.Delete: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.WishlistDeletesTotal.Inc()
	}
	uc.cacheInvalidate(ctx, id)

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishWishlistDeleted(ctx, id); errPub != nil {
			uc.logger.Warn("Failed to publish wishlist deleted event", zap.Error(errPub), zap.String("wishlist_id", id))
		}
	}
	return nil
}

func (uc *WishlistUseCase) cacheSet(ctx context.Context, wishlist *entity.Wishlist) {
	if uc.cacheRepo == nil || wishlist == nil {
		return
	}
	data, err := json.Marshal(wishlist)
	if err != nil {
		uc.logger.Warn("Failed to marshal wishlist for caching", zap.Error(err), zap.String("wishlist_id", wishlist.ID))
		return
	}
	key := wishlistCacheKey(wishlist.ID)
	if err := uc.cacheRepo.Set(ctx, key, data, wishlistCacheTTL); err != nil {
		uc.logger.Warn("Failed to set wishlist in cache", zap.Error(err), zap.String("key", key))
	}
}

func (uc *WishlistUseCase) cacheInvalidate(ctx context.Context, id string) {
	if uc.cacheRepo == nil {
		return
	}
	key := wishlistCacheKey(id)
	if err := uc.cacheRepo.Delete(ctx, key); err != nil {
		uc.logger.Warn("Failed to delete wishlist from cache", zap.Error(err), zap.String("key", key))
	}
}

func (uc *WishlistUseCase) countExtraction(matched bool) {
	if uc.metrics == nil {
		return
	}
	outcome := "no_match"
	if matched {
		outcome = "matched"
	}
	uc.metrics.LinkExtractionsTotal.WithLabelValues(outcome).Inc()
}
