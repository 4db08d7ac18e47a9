package usecase

import (
	"context"
	"testing"

	"github.com/ammarmusa/travel-app-backend/internal/entity"
	"github.com/ammarmusa/travel-app-backend/internal/platform/logger"
	"github.com/ammarmusa/travel-app-backend/internal/port/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newActivityUseCase(repo *MockWishlistRepository) *ActivityUseCase {
	return NewActivityUseCase(repo, nil, nil, nil, logger.NewLogger())
}

func TestActivityAdd_GeneratesIDAndReturnsParent(t *testing.T) {
	repo := new(MockWishlistRepository)
	uc := newActivityUseCase(repo)

	var captured *entity.Activity
	repo.On("PushActivity", mock.Anything, "wl-1", "user-1", mock.AnythingOfType("*entity.Activity")).
		Run(func(args mock.Arguments) {
			captured = args.Get(3).(*entity.Activity)
		}).Return(nil).Once()
	parent := &entity.Wishlist{ID: "wl-1", OwnerID: "user-1"}
	repo.On("GetByIDForOwner", mock.Anything, "wl-1", "user-1").Return(parent, nil).Once()

	wishlist, err := uc.Add(context.Background(), "wl-1", "user-1", AddActivityInput{
		Name: "Hike the canyon",
		Cost: 25.0,
	})

	require.NoError(t, err)
	assert.Equal(t, parent, wishlist)
	require.NotNil(t, captured)
	assert.NotEmpty(t, captured.ID)
	assert.Equal(t, "Hike the canyon", captured.Name)
	repo.AssertExpectations(t)
}

func TestActivityAdd_DistinctIDs(t *testing.T) {
	repo := new(MockWishlistRepository)
	uc := newActivityUseCase(repo)

	var ids []string
	repo.On("PushActivity", mock.Anything, "wl-1", "user-1", mock.AnythingOfType("*entity.Activity")).
		Run(func(args mock.Arguments) {
			ids = append(ids, args.Get(3).(*entity.Activity).ID)
		}).Return(nil).Twice()
	repo.On("GetByIDForOwner", mock.Anything, "wl-1", "user-1").
		Return(&entity.Wishlist{ID: "wl-1"}, nil).Twice()

	_, err := uc.Add(context.Background(), "wl-1", "user-1", AddActivityInput{Name: "First"})
	require.NoError(t, err)
	_, err = uc.Add(context.Background(), "wl-1", "user-1", AddActivityInput{Name: "Second"})
	require.NoError(t, err)

	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestActivityAdd_NameRequired(t *testing.T) {
	repo := new(MockWishlistRepository)
	uc := newActivityUseCase(repo)

	_, err := uc.Add(context.Background(), "wl-1", "user-1", AddActivityInput{Cost: 10})

	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "PushActivity")
}

func TestActivityAdd_NegativeCostRejected(t *testing.T) {
	repo := new(MockWishlistRepository)
	uc := newActivityUseCase(repo)

	_, err := uc.Add(context.Background(), "wl-1", "user-1", AddActivityInput{Name: "x", Cost: -1})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestActivityAdd_ParentNotFound(t *testing.T) {
	repo := new(MockWishlistRepository)
	uc := newActivityUseCase(repo)

	repo.On("PushActivity", mock.Anything, "missing", "user-1", mock.Anything).
		Return(repository.ErrNotFound).Once()

	_, err := uc.Add(context.Background(), "missing", "user-1", AddActivityInput{Name: "x"})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActivityUpdate_AppliesPatch(t *testing.T) {
	repo := new(MockWishlistRepository)
	uc := newActivityUseCase(repo)

	done := true
	repo.On("UpdateActivity", mock.Anything, "wl-1", "user-1", "act-1", mock.MatchedBy(func(p *entity.ActivityPatch) bool {
		return p.IsCompleted != nil && *p.IsCompleted && p.Name == nil && p.Cost == nil
	})).Return(nil).Once()
	repo.On("GetByIDForOwner", mock.Anything, "wl-1", "user-1").
		Return(&entity.Wishlist{ID: "wl-1"}, nil).Once()

	_, err := uc.Update(context.Background(), "wl-1", "user-1", "act-1", UpdateActivityInput{
		IsCompleted: &done,
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestActivityUpdate_EmptyPatchOnlyVerifiesOwnership(t *testing.T) {
	repo := new(MockWishlistRepository)
	uc := newActivityUseCase(repo)

	parent := &entity.Wishlist{ID: "wl-1", OwnerID: "user-1"}
	repo.On("GetByIDForOwner", mock.Anything, "wl-1", "user-1").Return(parent, nil).Once()

	wishlist, err := uc.Update(context.Background(), "wl-1", "user-1", "act-1", UpdateActivityInput{})

	require.NoError(t, err)
	assert.Equal(t, parent, wishlist)
	repo.AssertNotCalled(t, "UpdateActivity")
}

func TestActivityUpdate_UnknownActivity(t *testing.T) {
	repo := new(MockWishlistRepository)
	uc := newActivityUseCase(repo)

	name := "Renamed"
	repo.On("UpdateActivity", mock.Anything, "wl-1", "user-1", "ghost", mock.Anything).
		Return(repository.ErrNotFound).Once()

	_, err := uc.Update(context.Background(), "wl-1", "user-1", "ghost", UpdateActivityInput{Name: &name})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActivityRemove_UnknownActivity(t *testing.T) {
	repo := new(MockWishlistRepository)
	uc := newActivityUseCase(repo)

	repo.On("PullActivity", mock.Anything, "wl-1", "user-1", "ghost").
		Return(repository.ErrNotFound).Once()

	_, err := uc.Remove(context.Background(), "wl-1", "user-1", "ghost")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActivityRemove_ReturnsRefreshedParent(t *testing.T) {
	repo := new(MockWishlistRepository)
	uc := newActivityUseCase(repo)

	repo.On("PullActivity", mock.Anything, "wl-1", "user-1", "act-1").Return(nil).Once()
	parent := &entity.Wishlist{ID: "wl-1", Activities: []entity.Activity{}}
	repo.On("GetByIDForOwner", mock.Anything, "wl-1", "user-1").Return(parent, nil).Once()

	wishlist, err := uc.Remove(context.Background(), "wl-1", "user-1", "act-1")

	require.NoError(t, err)
	assert.Equal(t, parent, wishlist)
	repo.AssertExpectations(t)
}
