package service

import (
	"context"

	"loopcraft/internal/cache"
	"loopcraft/internal/models"
	"loopcraft/internal/repository"
	"loopcraft/internal/validation"

	"github.com/google/uuid"
)

type UserService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	patternRepo repository.PatternRepository
	followRepo  repository.FollowRepository
}

// UpdateProfileInput carries partial profile updates. A nil field is left
// untouched; a pointer to the empty string clears the field.
type UpdateProfileInput struct {
	UserID   uuid.UUID
	Name     *string
	Username *string
	Bio      *string
	Link     *string
	Avatar   *string
}

func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	patternRepo repository.PatternRepository,
	followRepo repository.FollowRepository,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		patternRepo: patternRepo,
		followRepo:  followRepo,
	}
}

// GetUserByID fetches a user, serving repeated lookups from the cache.
func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := cache.CacheAside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		u, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// Search finds other users by name or username and returns their public views.
func (s *UserService) Search(ctx context.Context, callerID uuid.UUID, query string, resolve func(string) string) ([]models.UserInfo, error) {
	users, err := s.userRepo.Search(ctx, callerID, query)
	if err != nil {
		return nil, err
	}
	views := make([]models.UserInfo, 0, len(users))
	for i := range users {
		views = append(views, models.NewUserInfo(&users[i], resolve))
	}
	return views, nil
}

// GetProfile assembles the profile page for target as seen by viewer: the
// user's details, their posts and patterns newest first, and follow counts.
func (s *UserService) GetProfile(ctx context.Context, viewerID, targetID uuid.UUID, resolve func(string) string) (*models.ProfileView, error) {
	user, err := s.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.GetByUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	patterns, err := s.patternRepo.GetByUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	followers, err := s.followRepo.CountFollowers(ctx, targetID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, targetID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerID != uuid.Nil && viewerID != targetID {
		isFollowing, err = s.followRepo.Exists(ctx, viewerID, targetID)
		if err != nil {
			return nil, err
		}
	}

	return &models.ProfileView{
		UserInfo:       models.NewUserInfo(user, resolve),
		Posts:          models.NewPostViews(posts, resolve),
		Patterns:       models.NewPatternViews(patterns, resolve),
		FollowersCount: followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
	}, nil
}

// UpdateProfile applies the fields present in the input and returns the
// updated user. Absent fields are no-ops.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxNameLen = 100
	const maxBioLen = 500
	const maxLinkLen = 200

	if in.Name != nil {
		if len(*in.Name) > maxNameLen {
			return nil, models.NewFieldValidationError("name", "Name too long (max 100 characters)")
		}
		user.Name = *in.Name
	}
	if in.Username != nil {
		if *in.Username != user.Username {
			if err := validateUsernameChange(*in.Username); err != nil {
				return nil, err
			}
			user.Username = *in.Username
		}
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewFieldValidationError("bio", "Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}
	if in.Link != nil {
		if len(*in.Link) > maxLinkLen {
			return nil, models.NewFieldValidationError("link", "Link too long (max 200 characters)")
		}
		user.Link = *in.Link
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, cache.UserKey(user.ID))

	return user, nil
}

func validateUsernameChange(username string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return models.NewFieldValidationError("username", err.Error())
	}
	return nil
}

// DeleteAccount removes the user and everything they own.
func (s *UserService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.UserKey(id))
	return nil
}
