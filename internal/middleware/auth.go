// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"loopcraft/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	cfg *config.Config
	rdb *redis.Client
)

// InitMiddleware initializes authentication middleware with the given config
// and Redis client (used for the logout token denylist; may be nil).
func InitMiddleware(c *config.Config, r *redis.Client) {
	cfg = c
	rdb = r
}

// DenylistToken marks a token's jti as revoked until its expiry.
func DenylistToken(ctx context.Context, jti string, until time.Time) error {
	if rdb == nil || jti == "" {
		return nil
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, "denylist:"+jti, "1", ttl).Err()
}

func isDenylisted(ctx context.Context, jti string) bool {
	if rdb == nil || jti == "" {
		return false
	}
	n, err := rdb.Exists(ctx, "denylist:"+jti).Result()
	if err != nil {
		// Fail-open: an unreachable denylist must not lock everyone out
		return false
	}
	return n > 0
}

// parseUserToken validates tokenString and returns the authenticated user ID
// together with the token's claims.
func parseUserToken(c *fiber.Ctx, tokenString string) (uuid.UUID, jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "loopcraft-api" {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "loopcraft-client" {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token structure - missing subject")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	// Refresh tokens are only good for the refresh endpoint
	if typ, _ := claims["type"].(string); typ == "refresh" {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token cannot be used for access")
	}

	if jti, _ := claims["jti"].(string); isDenylisted(c.UserContext(), jti) {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusUnauthorized, "Token has been revoked")
	}

	return userID, claims, nil
}

// TokenRevoked reports whether a token's jti is on the logout denylist.
func TokenRevoked(ctx context.Context, jti string) bool {
	return isDenylisted(ctx, jti)
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid authorization header format",
		})
	}

	userID, claims, err := parseUserToken(c, parts[1])
	if err != nil {
		msg := "Invalid or expired token"
		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			msg = ferr.Message
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
	}

	// Store user ID and claims in context
	c.Locals("userID", userID)
	c.Locals("claims", claims)

	return c.Next()
}

// OptionalUserID attempts to extract the caller's ID from the Authorization
// header but does not enforce it. Public routes use it to personalize output.
func OptionalUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return uuid.Nil, false
	}

	userID, _, err := parseUserToken(c, parts[1])
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}
