package repository

import (
	"context"
	"errors"

	"loopcraft/internal/models"
	"loopcraft/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// feedOrder is the deterministic ordering shared by every feed query: newest
// first, with the row id breaking created_at ties.
const feedOrder = "created_at DESC, id DESC"

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Post, error)
	All(ctx context.Context) ([]models.Post, error)
	ExcludingUser(ctx context.Context, userID uuid.UUID) ([]models.Post, error)
	FollowingFeed(ctx context.Context, userID uuid.UUID) ([]models.Post, error)
	ExploreFeed(ctx context.Context, userID uuid.UUID) ([]models.Post, error)
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// followeeIDs builds the subquery selecting every user that userID follows.
func (r *postRepository) followeeIDs(userID uuid.UUID) *gorm.DB {
	return r.db.Model(&models.Follow{}).
		Select("following_id").
		Where("follower_id = ?", userID)
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Pattern").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	observability.FeedQueriesTotal.WithLabelValues("profile", "post").Inc()
	return r.find(ctx, r.db.Where("user_id = ?", userID))
}

func (r *postRepository) All(ctx context.Context) ([]models.Post, error) {
	observability.FeedQueriesTotal.WithLabelValues("all", "post").Inc()
	return r.find(ctx, r.db)
}

func (r *postRepository) ExcludingUser(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	observability.FeedQueriesTotal.WithLabelValues("excluding_user", "post").Inc()
	return r.find(ctx, r.db.Where("user_id <> ?", userID))
}

// FollowingFeed returns posts owned by userID or by anyone userID follows.
func (r *postRepository) FollowingFeed(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	observability.FeedQueriesTotal.WithLabelValues("following", "post").Inc()
	return r.find(ctx, r.db.Where(
		"user_id = ? OR user_id IN (?)", userID, r.followeeIDs(userID),
	))
}

// ExploreFeed is the complement of FollowingFeed over other users' posts:
// nothing owned by userID, nothing owned by a followee.
func (r *postRepository) ExploreFeed(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	observability.FeedQueriesTotal.WithLabelValues("explore", "post").Inc()
	return r.find(ctx, r.db.Where(
		"user_id <> ? AND user_id NOT IN (?)", userID, r.followeeIDs(userID),
	))
}

func (r *postRepository) find(ctx context.Context, q *gorm.DB) ([]models.Post, error) {
	var posts []models.Post
	err := q.WithContext(ctx).
		Preload("User").
		Preload("Pattern").
		Order(feedOrder).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", id)
		}
		return models.NewInternalError(err)
	}
	return nil
}
