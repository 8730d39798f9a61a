package server

import (
	"loopcraft/internal/middleware"
	"loopcraft/internal/models"
	"loopcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	tokens, err := s.authService.GenerateTokens(user)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered",
		"user_id", user.ID, "username", user.Username)

	return dataResponse(c, fiber.StatusCreated, fiber.Map{
		"tokens": tokens,
		"user":   models.NewUserInfo(user, s.resolveImage),
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	tokens, err := s.authService.GenerateTokens(user)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return dataResponse(c, fiber.StatusOK, fiber.Map{
		"tokens": tokens,
		"user":   models.NewUserInfo(user, s.resolveImage),
	})
}

// RefreshToken handles POST /api/auth/token/refresh
func (s *Server) RefreshToken(c *fiber.Ctx) error {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.BodyParser(&req); err != nil || req.Refresh == "" {
		return models.RespondWithError(c, models.NewValidationError("Refresh token required"))
	}

	access, err := s.authService.Refresh(c.UserContext(), req.Refresh)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return dataResponse(c, fiber.StatusOK, fiber.Map{"access": access})
}

// Logout handles POST /api/auth/logout by revoking the presented token.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.authService.Logout(c.UserContext(), currentClaims(c))
	return dataResponse(c, fiber.StatusOK, fiber.Map{"message": "Logged out"})
}
