package service

import (
	"context"
	"strings"

	"loopcraft/internal/models"
	"loopcraft/internal/repository"

	"github.com/google/uuid"
)

// ContentService owns posts, patterns and inventory items: creation,
// feed selection and view shaping.
type ContentService struct {
	postRepo      repository.PostRepository
	patternRepo   repository.PatternRepository
	inventoryRepo repository.InventoryRepository
	userRepo      repository.UserRepository
}

type CreatePostInput struct {
	UserID    uuid.UUID
	Image     string
	PatternID *uint
	Caption   string
}

type CreatePatternInput struct {
	CreatorID   uuid.UUID
	Name        string
	Description string
	Difficulty  models.Difficulty
	Image       string
}

type CreateInventoryItemInput struct {
	UserID      uuid.UUID
	Name        string
	Description string
	ItemType    models.ItemType
	Image       string
}

func NewContentService(
	postRepo repository.PostRepository,
	patternRepo repository.PatternRepository,
	inventoryRepo repository.InventoryRepository,
	userRepo repository.UserRepository,
) *ContentService {
	return &ContentService{
		postRepo:      postRepo,
		patternRepo:   patternRepo,
		inventoryRepo: inventoryRepo,
		userRepo:      userRepo,
	}
}

// CreatePost stores a new post for the given user. A linked pattern must exist.
func (s *ContentService) CreatePost(ctx context.Context, in CreatePostInput, resolve func(string) string) (*models.PostView, error) {
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}
	if in.PatternID != nil {
		if _, err := s.patternRepo.GetByID(ctx, *in.PatternID); err != nil {
			return nil, err
		}
	}
	if in.Image == "" && strings.TrimSpace(in.Caption) == "" {
		return nil, models.NewValidationError("A post needs an image or a caption")
	}

	post := &models.Post{
		UserID:    in.UserID,
		Image:     in.Image,
		PatternID: in.PatternID,
		Caption:   in.Caption,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload with the owning user for view shaping.
	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	view := models.NewPostView(created, resolve)
	return &view, nil
}

func (s *ContentService) GetPost(ctx context.Context, id uint, resolve func(string) string) (*models.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := models.NewPostView(post, resolve)
	return &view, nil
}

func (s *ContentService) AllPosts(ctx context.Context, resolve func(string) string) ([]models.PostView, error) {
	posts, err := s.postRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewPostViews(posts, resolve), nil
}

func (s *ContentService) PostsExcludingUser(ctx context.Context, userID uuid.UUID, resolve func(string) string) ([]models.PostView, error) {
	posts, err := s.postRepo.ExcludingUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.NewPostViews(posts, resolve), nil
}

func (s *ContentService) FollowingPosts(ctx context.Context, userID uuid.UUID, resolve func(string) string) ([]models.PostView, error) {
	posts, err := s.postRepo.FollowingFeed(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.NewPostViews(posts, resolve), nil
}

func (s *ContentService) ExplorePosts(ctx context.Context, userID uuid.UUID, resolve func(string) string) ([]models.PostView, error) {
	posts, err := s.postRepo.ExploreFeed(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.NewPostViews(posts, resolve), nil
}

// UserPosts lists a user's own posts, newest first. Unknown users read as 404.
func (s *ContentService) UserPosts(ctx context.Context, targetID uuid.UUID, resolve func(string) string) ([]models.PostView, error) {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}
	posts, err := s.postRepo.GetByUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return models.NewPostViews(posts, resolve), nil
}

// DeletePost removes a post owned by caller, along with its engagement rows.
func (s *ContentService) DeletePost(ctx context.Context, callerID uuid.UUID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != callerID {
		return models.NewNotFoundError("Post", postID)
	}
	return s.postRepo.Delete(ctx, postID)
}

// CreatePattern stores a new pattern. The difficulty must be one of the
// closed enum values.
func (s *ContentService) CreatePattern(ctx context.Context, in CreatePatternInput, resolve func(string) string) (*models.PatternView, error) {
	if _, err := s.userRepo.GetByID(ctx, in.CreatorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewFieldValidationError("name", "Name is required")
	}
	if !in.Difficulty.Valid() {
		return nil, models.NewFieldValidationError("difficulty", "Invalid difficulty")
	}

	pattern := &models.Pattern{
		CreatorID:   in.CreatorID,
		Name:        in.Name,
		Description: in.Description,
		Difficulty:  in.Difficulty,
		Image:       in.Image,
	}
	if err := s.patternRepo.Create(ctx, pattern); err != nil {
		return nil, err
	}

	created, err := s.patternRepo.GetByID(ctx, pattern.ID)
	if err != nil {
		return nil, err
	}
	view := models.NewPatternView(created, resolve)
	return &view, nil
}

func (s *ContentService) GetPattern(ctx context.Context, id uint, resolve func(string) string) (*models.PatternView, error) {
	pattern, err := s.patternRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := models.NewPatternView(pattern, resolve)
	return &view, nil
}

func (s *ContentService) AllPatterns(ctx context.Context, resolve func(string) string) ([]models.PatternView, error) {
	patterns, err := s.patternRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewPatternViews(patterns, resolve), nil
}

func (s *ContentService) PatternsExcludingUser(ctx context.Context, userID uuid.UUID, resolve func(string) string) ([]models.PatternView, error) {
	patterns, err := s.patternRepo.ExcludingUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.NewPatternViews(patterns, resolve), nil
}

func (s *ContentService) FollowingPatterns(ctx context.Context, userID uuid.UUID, resolve func(string) string) ([]models.PatternView, error) {
	patterns, err := s.patternRepo.FollowingFeed(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.NewPatternViews(patterns, resolve), nil
}

func (s *ContentService) ExplorePatterns(ctx context.Context, userID uuid.UUID, resolve func(string) string) ([]models.PatternView, error) {
	patterns, err := s.patternRepo.ExploreFeed(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.NewPatternViews(patterns, resolve), nil
}

func (s *ContentService) UserPatterns(ctx context.Context, targetID uuid.UUID, resolve func(string) string) ([]models.PatternView, error) {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}
	patterns, err := s.patternRepo.GetByUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return models.NewPatternViews(patterns, resolve), nil
}

// SearchPatterns matches other users' patterns by name or description,
// easiest difficulty first. An empty query matches everything except the
// caller's own patterns.
func (s *ContentService) SearchPatterns(ctx context.Context, userID uuid.UUID, query string, resolve func(string) string) ([]models.PatternView, error) {
	patterns, err := s.patternRepo.Search(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	return models.NewPatternViews(patterns, resolve), nil
}

// DeletePattern removes a pattern owned by caller, detaching any posts that
// reference it.
func (s *ContentService) DeletePattern(ctx context.Context, callerID uuid.UUID, patternID uint) error {
	pattern, err := s.patternRepo.GetByID(ctx, patternID)
	if err != nil {
		return err
	}
	if pattern.CreatorID != callerID {
		return models.NewNotFoundError("Pattern", patternID)
	}
	return s.patternRepo.Delete(ctx, patternID)
}

// CreateInventoryItem stores a stash item for the given user.
func (s *ContentService) CreateInventoryItem(ctx context.Context, in CreateInventoryItemInput, resolve func(string) string) (*models.InventoryView, error) {
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewFieldValidationError("name", "Name is required")
	}
	if !in.ItemType.Valid() {
		return nil, models.NewFieldValidationError("item_type", "Invalid item type")
	}

	item := &models.InventoryItem{
		UserID:      in.UserID,
		Name:        in.Name,
		Description: in.Description,
		ItemType:    in.ItemType,
		Image:       in.Image,
	}
	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	item, err := s.inventoryRepo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	view := models.NewInventoryView(item, resolve)
	return &view, nil
}

// UserInventory lists a user's stash, newest first.
func (s *ContentService) UserInventory(ctx context.Context, targetID uuid.UUID, resolve func(string) string) ([]models.InventoryView, error) {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}
	items, err := s.inventoryRepo.GetByUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return models.NewInventoryViews(items, resolve), nil
}

// DeleteInventoryItem removes an item owned by caller. Items owned by others
// are reported as missing.
func (s *ContentService) DeleteInventoryItem(ctx context.Context, callerID uuid.UUID, itemID uint) error {
	return s.inventoryRepo.DeleteOwned(ctx, itemID, callerID)
}
