package repository

import (
	"context"
	"errors"
	"strings"

	"loopcraft/internal/models"
	"loopcraft/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// difficultyOrder ranks patterns from easiest to hardest. A CASE expression
// keeps the ordering portable between PostgreSQL and the SQLite test driver;
// unknown values sort last.
const difficultyOrder = `CASE difficulty
	WHEN 'beginner' THEN 0
	WHEN 'advanced_beginner' THEN 1
	WHEN 'intermediate' THEN 2
	WHEN 'advanced' THEN 3
	WHEN 'expert' THEN 4
	ELSE 5 END, id ASC`

// PatternRepository defines the interface for pattern data operations
type PatternRepository interface {
	Create(ctx context.Context, pattern *models.Pattern) error
	GetByID(ctx context.Context, id uint) (*models.Pattern, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Pattern, error)
	All(ctx context.Context) ([]models.Pattern, error)
	ExcludingUser(ctx context.Context, userID uuid.UUID) ([]models.Pattern, error)
	FollowingFeed(ctx context.Context, userID uuid.UUID) ([]models.Pattern, error)
	ExploreFeed(ctx context.Context, userID uuid.UUID) ([]models.Pattern, error)
	Search(ctx context.Context, userID uuid.UUID, query string) ([]models.Pattern, error)
	Delete(ctx context.Context, id uint) error
}

// patternRepository implements PatternRepository
type patternRepository struct {
	db *gorm.DB
}

// NewPatternRepository creates a new pattern repository
func NewPatternRepository(db *gorm.DB) PatternRepository {
	return &patternRepository{db: db}
}

func (r *patternRepository) followeeIDs(userID uuid.UUID) *gorm.DB {
	return r.db.Model(&models.Follow{}).
		Select("following_id").
		Where("follower_id = ?", userID)
}

func (r *patternRepository) Create(ctx context.Context, pattern *models.Pattern) error {
	if err := r.db.WithContext(ctx).Create(pattern).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *patternRepository) GetByID(ctx context.Context, id uint) (*models.Pattern, error) {
	var pattern models.Pattern
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Images").
		First(&pattern, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Pattern", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &pattern, nil
}

func (r *patternRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Pattern, error) {
	observability.FeedQueriesTotal.WithLabelValues("profile", "pattern").Inc()
	return r.find(ctx, r.db.Where("creator_id = ?", userID), feedOrder)
}

func (r *patternRepository) All(ctx context.Context) ([]models.Pattern, error) {
	observability.FeedQueriesTotal.WithLabelValues("all", "pattern").Inc()
	return r.find(ctx, r.db, feedOrder)
}

func (r *patternRepository) ExcludingUser(ctx context.Context, userID uuid.UUID) ([]models.Pattern, error) {
	observability.FeedQueriesTotal.WithLabelValues("excluding_user", "pattern").Inc()
	return r.find(ctx, r.db.Where("creator_id <> ?", userID), feedOrder)
}

// FollowingFeed returns patterns created by userID or by anyone userID follows.
func (r *patternRepository) FollowingFeed(ctx context.Context, userID uuid.UUID) ([]models.Pattern, error) {
	observability.FeedQueriesTotal.WithLabelValues("following", "pattern").Inc()
	return r.find(ctx, r.db.Where(
		"creator_id = ? OR creator_id IN (?)", userID, r.followeeIDs(userID),
	), feedOrder)
}

// ExploreFeed returns patterns created by neither userID nor any followee.
func (r *patternRepository) ExploreFeed(ctx context.Context, userID uuid.UUID) ([]models.Pattern, error) {
	observability.FeedQueriesTotal.WithLabelValues("explore", "pattern").Inc()
	return r.find(ctx, r.db.Where(
		"creator_id <> ? AND creator_id NOT IN (?)", userID, r.followeeIDs(userID),
	), feedOrder)
}

// Search matches other users' patterns whose name or description contains the
// query, case-insensitively, ordered easiest difficulty first.
func (r *patternRepository) Search(ctx context.Context, userID uuid.UUID, query string) ([]models.Pattern, error) {
	observability.FeedQueriesTotal.WithLabelValues("search", "pattern").Inc()
	needle := "%" + strings.ToLower(query) + "%"
	q := r.db.
		Where("creator_id <> ?", userID).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	return r.find(ctx, q, difficultyOrder)
}

func (r *patternRepository) find(ctx context.Context, q *gorm.DB, order string) ([]models.Pattern, error) {
	var patterns []models.Pattern
	err := q.WithContext(ctx).
		Preload("Creator").
		Preload("Images").
		Order(order).
		Find(&patterns).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return patterns, nil
}

func (r *patternRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pattern_id = ?", id).Delete(&models.PatternImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pattern_id = ?", id).Delete(&models.SavedPattern{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).Where("pattern_id = ?", id).
			Update("pattern_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Pattern{}, id)
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
			return models.NewNotFoundError("Pattern", id)
		}
		return models.NewInternalError(err)
	}
	return nil
}
