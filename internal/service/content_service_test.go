package service

import (
	"context"
	"testing"

	"loopcraft/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentService(postRepo *postRepoStub, patternRepo *patternRepoStub, inventoryRepo *inventoryRepoStub, userRepo *userRepoStub) *ContentService {
	if postRepo == nil {
		postRepo = noopPostRepo()
	}
	if patternRepo == nil {
		patternRepo = noopPatternRepo()
	}
	if inventoryRepo == nil {
		inventoryRepo = noopInventoryRepo()
	}
	if userRepo == nil {
		userRepo = noopUserRepo()
	}
	return NewContentService(postRepo, patternRepo, inventoryRepo, userRepo)
}

func TestContentService_CreatePost(t *testing.T) {
	t.Parallel()

	t.Run("caption only", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		postRepo := noopPostRepo()
		var created *models.Post
		postRepo.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 42
			created = p
			return nil
		}
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: userID, Caption: created.Caption, User: models.User{ID: userID, Username: "alice"}}, nil
		}
		svc := newContentService(postRepo, nil, nil, nil)

		view, err := svc.CreatePost(context.Background(), CreatePostInput{
			UserID:  userID,
			Caption: "blocking day",
		}, identity)
		require.NoError(t, err)
		assert.Equal(t, uint(42), view.ID)
		assert.Equal(t, "blocking day", view.Caption)
		assert.Equal(t, "alice", view.UserInfo.Username)
	})

	t.Run("empty post is rejected", func(t *testing.T) {
		t.Parallel()
		svc := newContentService(nil, nil, nil, nil)
		_, err := svc.CreatePost(context.Background(), CreatePostInput{
			UserID:  uuid.New(),
			Caption: "   ",
		}, identity)
		assertValidationError(t, err)
	})

	t.Run("unknown linked pattern", func(t *testing.T) {
		t.Parallel()
		patternRepo := noopPatternRepo()
		patternRepo.getByIDFn = func(_ context.Context, id uint) (*models.Pattern, error) {
			return nil, models.NewNotFoundError("Pattern", id)
		}
		svc := newContentService(nil, patternRepo, nil, nil)

		patternID := uint(9)
		_, err := svc.CreatePost(context.Background(), CreatePostInput{
			UserID:    uuid.New(),
			Caption:   "wip",
			PatternID: &patternID,
		}, identity)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestContentService_DeletePost(t *testing.T) {
	t.Parallel()
	owner := uuid.New()
	stranger := uuid.New()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: owner}, nil
	}
	deleted := false
	postRepo.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}
	svc := newContentService(postRepo, nil, nil, nil)

	t.Run("someone else's post looks missing", func(t *testing.T) {
		err := svc.DeletePost(context.Background(), stranger, 1)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.False(t, deleted)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.DeletePost(context.Background(), owner, 1))
		assert.True(t, deleted)
	})
}

func TestContentService_CreatePattern(t *testing.T) {
	t.Parallel()

	t.Run("valid pattern", func(t *testing.T) {
		t.Parallel()
		creator := uuid.New()
		patternRepo := noopPatternRepo()
		patternRepo.createFn = func(_ context.Context, p *models.Pattern) error {
			p.ID = 7
			return nil
		}
		patternRepo.getByIDFn = func(_ context.Context, id uint) (*models.Pattern, error) {
			return &models.Pattern{
				ID:         id,
				CreatorID:  creator,
				Name:       "Octopus",
				Difficulty: models.DifficultyIntermediate,
				Creator:    models.User{ID: creator, Username: "alice"},
			}, nil
		}
		svc := newContentService(nil, patternRepo, nil, nil)

		view, err := svc.CreatePattern(context.Background(), CreatePatternInput{
			CreatorID:  creator,
			Name:       "Octopus",
			Difficulty: models.DifficultyIntermediate,
		}, identity)
		require.NoError(t, err)
		assert.Equal(t, uint(7), view.ID)
		assert.Equal(t, models.DifficultyIntermediate, view.Difficulty)
	})

	t.Run("blank name", func(t *testing.T) {
		t.Parallel()
		svc := newContentService(nil, nil, nil, nil)
		_, err := svc.CreatePattern(context.Background(), CreatePatternInput{
			CreatorID:  uuid.New(),
			Name:       "  ",
			Difficulty: models.DifficultyBeginner,
		}, identity)
		assertValidationError(t, err)
	})

	t.Run("difficulty outside the enum", func(t *testing.T) {
		t.Parallel()
		svc := newContentService(nil, nil, nil, nil)
		_, err := svc.CreatePattern(context.Background(), CreatePatternInput{
			CreatorID:  uuid.New(),
			Name:       "Octopus",
			Difficulty: "impossible",
		}, identity)
		assertValidationError(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Fields, "difficulty")
	})
}

func TestContentService_DeletePattern(t *testing.T) {
	t.Parallel()
	owner := uuid.New()

	patternRepo := noopPatternRepo()
	patternRepo.getByIDFn = func(_ context.Context, id uint) (*models.Pattern, error) {
		return &models.Pattern{ID: id, CreatorID: owner}, nil
	}
	svc := newContentService(nil, patternRepo, nil, nil)

	err := svc.DeletePattern(context.Background(), uuid.New(), 3)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	require.NoError(t, svc.DeletePattern(context.Background(), owner, 3))
}

func TestContentService_CreateInventoryItem(t *testing.T) {
	t.Parallel()

	t.Run("valid item", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		inventoryRepo := noopInventoryRepo()
		inventoryRepo.createFn = func(_ context.Context, item *models.InventoryItem) error {
			item.ID = 5
			return nil
		}
		inventoryRepo.getByIDFn = func(_ context.Context, id uint) (*models.InventoryItem, error) {
			return &models.InventoryItem{
				ID:       id,
				UserID:   userID,
				Name:     "merino dk",
				ItemType: models.ItemTypeYarn,
				User:     models.User{ID: userID, Username: "alice"},
			}, nil
		}
		svc := newContentService(nil, nil, inventoryRepo, nil)

		view, err := svc.CreateInventoryItem(context.Background(), CreateInventoryItemInput{
			UserID:   userID,
			Name:     "merino dk",
			ItemType: models.ItemTypeYarn,
		}, identity)
		require.NoError(t, err)
		assert.Equal(t, uint(5), view.ID)
		assert.Equal(t, models.ItemTypeYarn, view.ItemType)
	})

	t.Run("item type outside the enum", func(t *testing.T) {
		t.Parallel()
		svc := newContentService(nil, nil, nil, nil)
		_, err := svc.CreateInventoryItem(context.Background(), CreateInventoryItemInput{
			UserID:   uuid.New(),
			Name:     "mystery",
			ItemType: "fabric",
		}, identity)
		assertValidationError(t, err)
	})
}

func TestContentService_UserFeedsRequireExistingUser(t *testing.T) {
	t.Parallel()
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := newContentService(nil, nil, nil, userRepo)
	ctx := context.Background()
	target := uuid.New()

	var appErr *models.AppError

	_, err := svc.UserPosts(ctx, target, identity)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	_, err = svc.UserPatterns(ctx, target, identity)
	require.ErrorAs(t, err, &appErr)

	_, err = svc.UserInventory(ctx, target, identity)
	require.ErrorAs(t, err, &appErr)
}
