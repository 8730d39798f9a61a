package service

import (
	"context"

	"loopcraft/internal/models"
	"loopcraft/internal/observability"
	"loopcraft/internal/repository"

	"github.com/google/uuid"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow creates an edge from follower to target. Self-follows are rejected
// and duplicate edges surface as a conflict.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uuid.UUID) (*models.Follow, error) {
	if followerID == targetID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}

	// Confirm the target exists so a bad id reads as 404, not a broken edge.
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	follow := &models.Follow{
		FollowerID:  followerID,
		FollowingID: targetID,
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}
	observability.FollowEdgesCreated.Inc()
	return follow, nil
}

// Unfollow removes the edge from follower to target if present.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uuid.UUID) error {
	return s.followRepo.Delete(ctx, followerID, targetID)
}

// Followers lists the users following userID, newest edge first.
func (s *FollowService) Followers(ctx context.Context, userID uuid.UUID, resolve func(string) string) ([]models.FollowEdgeView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	follows, err := s.followRepo.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.NewFollowerViews(follows, resolve), nil
}

// Following lists the users userID follows, newest edge first.
func (s *FollowService) Following(ctx context.Context, userID uuid.UUID, resolve func(string) string) ([]models.FollowEdgeView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	follows, err := s.followRepo.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.NewFollowingViews(follows, resolve), nil
}
