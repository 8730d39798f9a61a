package server

import (
	"loopcraft/internal/models"
	"loopcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyInventory handles GET /api/inventory
func (s *Server) GetMyInventory(c *fiber.Ctx) error {
	items, err := s.contentService.UserInventory(c.UserContext(), currentUserID(c), s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, items)
}

// GetUserInventory handles GET /api/inventory/user/:id
func (s *Server) GetUserInventory(c *fiber.Ctx) error {
	targetID, err := s.parseUserID(c, "id")
	if err != nil {
		return nil
	}
	items, err := s.contentService.UserInventory(c.UserContext(), targetID, s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, items)
}

// CreateInventoryItem handles POST /api/inventory (multipart form)
func (s *Server) CreateInventoryItem(c *fiber.Ctx) error {
	imagePath, err := s.formImage(c, "image")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	view, err := s.contentService.CreateInventoryItem(c.UserContext(), service.CreateInventoryItemInput{
		UserID:      currentUserID(c),
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		ItemType:    models.ItemType(c.FormValue("item_type")),
		Image:       imagePath,
	}, s.resolveImage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusCreated, view)
}

// DeleteInventoryItem handles DELETE /api/inventory/:id
func (s *Server) DeleteInventoryItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.contentService.DeleteInventoryItem(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"message": "Item deleted"})
}
