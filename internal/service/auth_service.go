// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"loopcraft/internal/config"
	"loopcraft/internal/middleware"
	"loopcraft/internal/models"
	"loopcraft/internal/repository"
	"loopcraft/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = time.Hour * 24
	refreshTokenTTL = time.Hour * 24 * 7

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type AuthService struct {
	userRepo repository.UserRepository
	config   *config.Config
}

type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// TokenPair is the access/refresh token set handed out on register and login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, config: cfg}
}

// Register creates a new account and returns the stored user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)

	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Username, email, and password are required")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewFieldValidationError("username", err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewFieldValidationError("email", err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewFieldValidationError("password", err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the matching user. Invalid email and
// invalid password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if !user.IsActive {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// GenerateTokens signs a fresh access/refresh pair for the user.
func (s *AuthService) GenerateTokens(user *models.User) (*TokenPair, error) {
	access, err := s.signToken(user, tokenTypeAccess, accessTokenTTL)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	refresh, err := s.signToken(user, tokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) signToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"type":     tokenType,
		"iss":      "loopcraft-api",
		"aud":      "loopcraft-client",
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// Refresh validates a refresh token and mints a new access token for its user.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parseRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return "", models.NewUnauthorizedError("Invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", models.NewUnauthorizedError("Invalid refresh token")
	}
	if !user.IsActive {
		return "", models.NewUnauthorizedError("Invalid refresh token")
	}

	access, err := s.signToken(user, tokenTypeAccess, accessTokenTTL)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return access, nil
}

func (s *AuthService) parseRefreshToken(ctx context.Context, tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(s.config.JWTSecret), nil
	},
		jwt.WithIssuer("loopcraft-api"),
		jwt.WithAudience("loopcraft-client"),
	)
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid refresh token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid refresh token")
	}
	if typ, _ := claims["type"].(string); typ != tokenTypeRefresh {
		return nil, models.NewUnauthorizedError("Invalid refresh token")
	}
	if jti, _ := claims["jti"].(string); middleware.TokenRevoked(ctx, jti) {
		return nil, models.NewUnauthorizedError("Invalid refresh token")
	}
	return claims, nil
}

// Logout revokes the token behind the given claims. Revocation lasts until the
// token would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims jwt.MapClaims) {
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return
	}
	until := time.Now().Add(refreshTokenTTL)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		until = exp.Time
	}
	_ = middleware.DenylistToken(ctx, jti, until)
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *AuthService) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
