package server

import (
	"loopcraft/internal/middleware"
	"loopcraft/internal/models"
	"loopcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllPatterns handles GET /api/patterns
func (s *Server) GetAllPatterns(c *fiber.Ctx) error {
	patterns, err := s.contentService.AllPatterns(c.UserContext(), s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, patterns)
}

// GetPatternsExcludingUser handles GET /api/patterns/exclude_user
func (s *Server) GetPatternsExcludingUser(c *fiber.Ctx) error {
	patterns, err := s.contentService.PatternsExcludingUser(c.UserContext(), currentUserID(c), s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, patterns)
}

// GetFollowingPatterns handles GET /api/patterns/following
func (s *Server) GetFollowingPatterns(c *fiber.Ctx) error {
	patterns, err := s.contentService.FollowingPatterns(c.UserContext(), currentUserID(c), s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, patterns)
}

// GetExplorePatterns handles GET /api/patterns/explore
func (s *Server) GetExplorePatterns(c *fiber.Ctx) error {
	patterns, err := s.contentService.ExplorePatterns(c.UserContext(), currentUserID(c), s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, patterns)
}

// SearchPatterns handles GET /api/patterns/search_patterns?search_query=
func (s *Server) SearchPatterns(c *fiber.Ctx) error {
	patterns, err := s.contentService.SearchPatterns(
		c.UserContext(), currentUserID(c), searchQuery(c), s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, patterns)
}

// CreatePattern handles POST /api/patterns/create_pattern (multipart form)
func (s *Server) CreatePattern(c *fiber.Ctx) error {
	imagePath, err := s.formImage(c, "image")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	view, err := s.contentService.CreatePattern(c.UserContext(), service.CreatePatternInput{
		CreatorID:   currentUserID(c),
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Difficulty:  models.Difficulty(c.FormValue("difficulty")),
		Image:       imagePath,
	}, s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "pattern created", "pattern_id", view.ID)

	return dataResponse(c, fiber.StatusCreated, view)
}

// GetUserPatterns handles GET /api/patterns/user_patterns/:id
func (s *Server) GetUserPatterns(c *fiber.Ctx) error {
	targetID, err := s.parseUserID(c, "id")
	if err != nil {
		return nil
	}
	patterns, err := s.contentService.UserPatterns(c.UserContext(), targetID, s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, patterns)
}

// GetPattern handles GET /api/patterns/:id
func (s *Server) GetPattern(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	pattern, err := s.contentService.GetPattern(c.UserContext(), id, s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, pattern)
}

// DeletePattern handles DELETE /api/patterns/:id
func (s *Server) DeletePattern(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.contentService.DeletePattern(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"message": "Pattern deleted"})
}
