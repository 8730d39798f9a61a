package server

import (
	"strconv"

	"loopcraft/internal/middleware"
	"loopcraft/internal/models"
	"loopcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllPosts handles GET /api/posts
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	posts, err := s.contentService.AllPosts(c.UserContext(), s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, posts)
}

// GetPostsExcludingUser handles GET /api/posts/exclude_user
func (s *Server) GetPostsExcludingUser(c *fiber.Ctx) error {
	posts, err := s.contentService.PostsExcludingUser(c.UserContext(), currentUserID(c), s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, posts)
}

// GetFollowingPosts handles GET /api/posts/following
func (s *Server) GetFollowingPosts(c *fiber.Ctx) error {
	posts, err := s.contentService.FollowingPosts(c.UserContext(), currentUserID(c), s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, posts)
}

// GetExplorePosts handles GET /api/posts/explore
func (s *Server) GetExplorePosts(c *fiber.Ctx) error {
	posts, err := s.contentService.ExplorePosts(c.UserContext(), currentUserID(c), s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, posts)
}

// CreatePost handles POST /api/posts/create_post (multipart form)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	imagePath, err := s.formImage(c, "image")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var patternID *uint
	if raw := c.FormValue("pattern"); raw != "" {
		parsed, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			return models.RespondWithError(c,
				models.NewFieldValidationError("pattern", "Invalid pattern ID"))
		}
		id := uint(parsed)
		patternID = &id
	}

	view, err := s.contentService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:    userID,
		Image:     imagePath,
		PatternID: patternID,
		Caption:   c.FormValue("caption"),
	}, s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post created", "post_id", view.ID)

	return dataResponse(c, fiber.StatusCreated, view)
}

// GetUserPosts handles GET /api/posts/user_posts/:id
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	targetID, err := s.parseUserID(c, "id")
	if err != nil {
		return nil
	}
	posts, err := s.contentService.UserPosts(c.UserContext(), targetID, s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	post, err := s.contentService.GetPost(c.UserContext(), id, s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.contentService.DeletePost(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"message": "Post deleted"})
}
