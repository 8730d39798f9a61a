package server

import (
	"loopcraft/internal/middleware"
	"loopcraft/internal/models"
	"loopcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	views := make([]models.UserInfo, 0, len(users))
	for i := range users {
		views = append(views, models.NewUserInfo(&users[i], s.resolveImage))
	}
	return dataResponse(c, fiber.StatusOK, views)
}

// SearchUsers handles GET /api/users/search?search_query=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	users, err := s.userService.Search(c.UserContext(), currentUserID(c), searchQuery(c), s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, users)
}

// GetUserProfile handles GET /api/users/profile/:id. The route is public;
// a valid bearer token, when present, personalizes IsFollowing.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	targetID, err := s.parseUserID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := middleware.OptionalUserID(c)
	profile, err := s.userService.GetProfile(c.UserContext(), viewerID, targetID, s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, profile)
}

// UpdateUser handles PUT /api/users/update_user (multipart form).
// Absent form fields leave the profile untouched.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	in := service.UpdateProfileInput{UserID: currentUserID(c)}

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	field := func(name string) *string {
		values, ok := form.Value[name]
		if !ok || len(values) == 0 {
			return nil
		}
		return &values[0]
	}
	in.Name = field("name")
	in.Username = field("username")
	in.Bio = field("bio")
	in.Link = field("link")

	if avatarPath, imgErr := s.formImage(c, "avatar"); imgErr != nil {
		return models.RespondWithError(c, imgErr)
	} else if avatarPath != "" {
		in.Avatar = &avatarPath
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, models.NewUserInfo(user, s.resolveImage))
}

// DeleteAccount handles DELETE /api/users/me
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if err := s.userService.DeleteAccount(c.UserContext(), userID); err != nil {
		return models.RespondWithError(c, err)
	}

	// The account is gone; its tokens should stop working too.
	s.authService.Logout(c.UserContext(), currentClaims(c))

	middleware.Logger.InfoContext(c.UserContext(), "account deleted", "user_id", userID)

	return dataResponse(c, fiber.StatusOK, fiber.Map{"message": "Account deleted"})
}

// FollowUser handles POST /api/users/follow/:id
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseUserID(c, "id")
	if err != nil {
		return nil
	}
	follow, err := s.followService.Follow(c.UserContext(), currentUserID(c), targetID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusCreated, fiber.Map{
		"id":        follow.ID,
		"following": follow.FollowingID,
	})
}

// UnfollowUser handles DELETE /api/users/follow/:id
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseUserID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.followService.Unfollow(c.UserContext(), currentUserID(c), targetID); err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"message": "Unfollowed"})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	targetID, err := s.parseUserID(c, "id")
	if err != nil {
		return nil
	}
	followers, err := s.followService.Followers(c.UserContext(), targetID, s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, followers)
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	targetID, err := s.parseUserID(c, "id")
	if err != nil {
		return nil
	}
	following, err := s.followService.Following(c.UserContext(), targetID, s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, following)
}
