package server

import (
	"errors"
	"io"
	"mime/multipart"

	"loopcraft/internal/models"
	"loopcraft/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// dataResponse writes a payload wrapped in the standard {"data": ...} envelope.
func dataResponse(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}

// currentUserID returns the authenticated caller's ID from request locals.
// Routes using this must sit behind the auth middleware.
func currentUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals("userID").(uuid.UUID)
	return id
}

// currentClaims returns the validated JWT claims the auth middleware stored.
func currentClaims(c *fiber.Ctx) jwt.MapClaims {
	claims, _ := c.Locals("claims").(jwt.MapClaims)
	return claims
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseUserID extracts a route parameter as a user UUID, writing a 400
// response on failure like parseID.
func (s *Server) parseUserID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid user ID"))
		return uuid.Nil, errResponseWritten
	}
	return id, nil
}

// searchQuery returns the search term from the query string. The documented
// parameter is search_query; q is kept as a shorter alias.
func searchQuery(c *fiber.Ctx) string {
	if q := c.Query("search_query"); q != "" {
		return q
	}
	return c.Query("q")
}

// resolveImage is the image URL resolver passed into view builders.
func (s *Server) resolveImage(path string) string {
	return s.imageService.Resolve(path)
}

// formImage reads an optional multipart file field and stores it, returning
// the stored relative path. A missing field returns an empty path and no error.
func (s *Server) formImage(c *fiber.Ctx, field string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	content, err := readMultipartFile(fileHeader)
	if err != nil {
		return "", models.NewValidationError("Could not read uploaded file")
	}
	return s.imageService.Store(service.StoreImageInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
