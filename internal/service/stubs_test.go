package service

import (
	"context"

	"loopcraft/internal/models"

	"github.com/google/uuid"
)

type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uuid.UUID) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context) ([]models.User, error)
	searchFn        func(context.Context, uuid.UUID, string) ([]models.User, error)
	deleteCascadeFn func(context.Context, uuid.UUID) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) Search(ctx context.Context, excludeID uuid.UUID, query string) ([]models.User, error) {
	return s.searchFn(ctx, excludeID, query)
}
func (s *userRepoStub) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return s.deleteCascadeFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(context.Context, *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, id uuid.UUID) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		listFn:          func(context.Context) ([]models.User, error) { return nil, nil },
		searchFn:        func(context.Context, uuid.UUID, string) ([]models.User, error) { return nil, nil },
		deleteCascadeFn: func(context.Context, uuid.UUID) error { return nil },
	}
}

type followRepoStub struct {
	createFn         func(context.Context, *models.Follow) error
	existsFn         func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	deleteFn         func(context.Context, uuid.UUID, uuid.UUID) error
	followersFn      func(context.Context, uuid.UUID) ([]models.Follow, error)
	followingFn      func(context.Context, uuid.UUID) ([]models.Follow, error)
	countFollowersFn func(context.Context, uuid.UUID) (int64, error)
	countFollowingFn func(context.Context, uuid.UUID) (int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	return s.existsFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followingID uuid.UUID) error {
	return s.deleteFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uuid.UUID) ([]models.Follow, error) {
	return s.followersFn(ctx, userID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uuid.UUID) ([]models.Follow, error) {
	return s.followingFn(ctx, userID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:         func(context.Context, *models.Follow) error { return nil },
		existsFn:         func(context.Context, uuid.UUID, uuid.UUID) (bool, error) { return false, nil },
		deleteFn:         func(context.Context, uuid.UUID, uuid.UUID) error { return nil },
		followersFn:      func(context.Context, uuid.UUID) ([]models.Follow, error) { return nil, nil },
		followingFn:      func(context.Context, uuid.UUID) ([]models.Follow, error) { return nil, nil },
		countFollowersFn: func(context.Context, uuid.UUID) (int64, error) { return 0, nil },
		countFollowingFn: func(context.Context, uuid.UUID) (int64, error) { return 0, nil },
	}
}

type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	getByUserFn     func(context.Context, uuid.UUID) ([]models.Post, error)
	allFn           func(context.Context) ([]models.Post, error)
	excludingUserFn func(context.Context, uuid.UUID) ([]models.Post, error)
	followingFeedFn func(context.Context, uuid.UUID) ([]models.Post, error)
	exploreFeedFn   func(context.Context, uuid.UUID) ([]models.Post, error)
	deleteFn        func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	return s.getByUserFn(ctx, userID)
}
func (s *postRepoStub) All(ctx context.Context) ([]models.Post, error) {
	return s.allFn(ctx)
}
func (s *postRepoStub) ExcludingUser(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	return s.excludingUserFn(ctx, userID)
}
func (s *postRepoStub) FollowingFeed(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	return s.followingFeedFn(ctx, userID)
}
func (s *postRepoStub) ExploreFeed(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	return s.exploreFeedFn(ctx, userID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:        func(context.Context, *models.Post) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getByUserFn:     func(context.Context, uuid.UUID) ([]models.Post, error) { return nil, nil },
		allFn:           func(context.Context) ([]models.Post, error) { return nil, nil },
		excludingUserFn: func(context.Context, uuid.UUID) ([]models.Post, error) { return nil, nil },
		followingFeedFn: func(context.Context, uuid.UUID) ([]models.Post, error) { return nil, nil },
		exploreFeedFn:   func(context.Context, uuid.UUID) ([]models.Post, error) { return nil, nil },
		deleteFn:        func(context.Context, uint) error { return nil },
	}
}

type patternRepoStub struct {
	createFn        func(context.Context, *models.Pattern) error
	getByIDFn       func(context.Context, uint) (*models.Pattern, error)
	getByUserFn     func(context.Context, uuid.UUID) ([]models.Pattern, error)
	allFn           func(context.Context) ([]models.Pattern, error)
	excludingUserFn func(context.Context, uuid.UUID) ([]models.Pattern, error)
	followingFeedFn func(context.Context, uuid.UUID) ([]models.Pattern, error)
	exploreFeedFn   func(context.Context, uuid.UUID) ([]models.Pattern, error)
	searchFn        func(context.Context, uuid.UUID, string) ([]models.Pattern, error)
	deleteFn        func(context.Context, uint) error
}

func (s *patternRepoStub) Create(ctx context.Context, pattern *models.Pattern) error {
	return s.createFn(ctx, pattern)
}
func (s *patternRepoStub) GetByID(ctx context.Context, id uint) (*models.Pattern, error) {
	return s.getByIDFn(ctx, id)
}
func (s *patternRepoStub) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Pattern, error) {
	return s.getByUserFn(ctx, userID)
}
func (s *patternRepoStub) All(ctx context.Context) ([]models.Pattern, error) {
	return s.allFn(ctx)
}
func (s *patternRepoStub) ExcludingUser(ctx context.Context, userID uuid.UUID) ([]models.Pattern, error) {
	return s.excludingUserFn(ctx, userID)
}
func (s *patternRepoStub) FollowingFeed(ctx context.Context, userID uuid.UUID) ([]models.Pattern, error) {
	return s.followingFeedFn(ctx, userID)
}
func (s *patternRepoStub) ExploreFeed(ctx context.Context, userID uuid.UUID) ([]models.Pattern, error) {
	return s.exploreFeedFn(ctx, userID)
}
func (s *patternRepoStub) Search(ctx context.Context, userID uuid.UUID, query string) ([]models.Pattern, error) {
	return s.searchFn(ctx, userID, query)
}
func (s *patternRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPatternRepo() *patternRepoStub {
	return &patternRepoStub{
		createFn:        func(context.Context, *models.Pattern) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Pattern, error) { return &models.Pattern{ID: id}, nil },
		getByUserFn:     func(context.Context, uuid.UUID) ([]models.Pattern, error) { return nil, nil },
		allFn:           func(context.Context) ([]models.Pattern, error) { return nil, nil },
		excludingUserFn: func(context.Context, uuid.UUID) ([]models.Pattern, error) { return nil, nil },
		followingFeedFn: func(context.Context, uuid.UUID) ([]models.Pattern, error) { return nil, nil },
		exploreFeedFn:   func(context.Context, uuid.UUID) ([]models.Pattern, error) { return nil, nil },
		searchFn:        func(context.Context, uuid.UUID, string) ([]models.Pattern, error) { return nil, nil },
		deleteFn:        func(context.Context, uint) error { return nil },
	}
}

type inventoryRepoStub struct {
	createFn      func(context.Context, *models.InventoryItem) error
	getByIDFn     func(context.Context, uint) (*models.InventoryItem, error)
	getByUserFn   func(context.Context, uuid.UUID) ([]models.InventoryItem, error)
	deleteOwnedFn func(context.Context, uint, uuid.UUID) error
}

func (s *inventoryRepoStub) Create(ctx context.Context, item *models.InventoryItem) error {
	return s.createFn(ctx, item)
}
func (s *inventoryRepoStub) GetByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	return s.getByIDFn(ctx, id)
}
func (s *inventoryRepoStub) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.InventoryItem, error) {
	return s.getByUserFn(ctx, userID)
}
func (s *inventoryRepoStub) DeleteOwned(ctx context.Context, id uint, userID uuid.UUID) error {
	return s.deleteOwnedFn(ctx, id, userID)
}

func noopInventoryRepo() *inventoryRepoStub {
	return &inventoryRepoStub{
		createFn:      func(context.Context, *models.InventoryItem) error { return nil },
		getByIDFn:     func(_ context.Context, id uint) (*models.InventoryItem, error) { return &models.InventoryItem{ID: id}, nil },
		getByUserFn:   func(context.Context, uuid.UUID) ([]models.InventoryItem, error) { return nil, nil },
		deleteOwnedFn: func(context.Context, uint, uuid.UUID) error { return nil },
	}
}

// identity is the no-op image resolver used where URLs are irrelevant.
func identity(path string) string { return path }
