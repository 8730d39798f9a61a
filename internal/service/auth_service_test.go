package service

import (
	"context"
	"testing"

	"loopcraft/internal/middleware"
	"loopcraft/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func parseTestToken(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("valid input stores a hashed password", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var created *models.User
		repo.createFn = func(_ context.Context, u *models.User) error {
			created = u
			return nil
		}
		svc := NewAuthService(repo, testConfig())

		user, err := svc.Register(context.Background(), RegisterInput{
			Name:     "Alice",
			Username: "alice",
			Email:    "  Alice@Example.COM ",
			Password: "hunter2passw0rd",
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "alice@example.com", user.Email, "email is normalized")
		assert.True(t, user.IsActive)
		assert.NotEqual(t, "hunter2passw0rd", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter2passw0rd")))
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), testConfig())
		_, err := svc.Register(context.Background(), RegisterInput{Username: "alice"})
		assertValidationError(t, err)
	})

	t.Run("invalid username", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), testConfig())
		_, err := svc.Register(context.Background(), RegisterInput{
			Username: "a!",
			Email:    "a@example.com",
			Password: "hunter2passw0rd",
		})
		assertValidationError(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Fields, "username")
	})

	t.Run("weak password", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), testConfig())
		_, err := svc.Register(context.Background(), RegisterInput{
			Username: "alice",
			Email:    "a@example.com",
			Password: "short",
		})
		assertValidationError(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Fields, "password")
	})

	t.Run("duplicate email surfaces as conflict", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.createFn = func(context.Context, *models.User) error {
			return models.NewConflictError("a user with this email already exists")
		}
		svc := NewAuthService(repo, testConfig())
		_, err := svc.Register(context.Background(), RegisterInput{
			Username: "alice",
			Email:    "a@example.com",
			Password: "hunter2passw0rd",
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2passw0rd"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		Password: string(hashed),
		IsActive: true,
	}

	repoWith := func(u *models.User) *userRepoStub {
		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
			if u != nil && email == u.Email {
				clone := *u
				return &clone, nil
			}
			return nil, models.NewNotFoundError("User", email)
		}
		return repo
	}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(repoWith(stored), testConfig())
		user, err := svc.Login(context.Background(), "Alice@Example.com", "hunter2passw0rd")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(repoWith(stored), testConfig())
		_, err := svc.Login(context.Background(), "ghost@example.com", "hunter2passw0rd")
		assertUnauthorized(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(repoWith(stored), testConfig())
		_, err := svc.Login(context.Background(), "alice@example.com", "not-the-password")
		assertUnauthorized(t, err)
	})

	t.Run("deactivated account", func(t *testing.T) {
		t.Parallel()
		inactive := *stored
		inactive.IsActive = false
		svc := NewAuthService(repoWith(&inactive), testConfig())
		_, err := svc.Login(context.Background(), "alice@example.com", "hunter2passw0rd")
		assertUnauthorized(t, err)
	})
}

func TestAuthService_GenerateTokens(t *testing.T) {
	t.Parallel()
	svc := NewAuthService(noopUserRepo(), testConfig())
	user := &models.User{ID: uuid.New(), Username: "alice", IsActive: true}

	pair, err := svc.GenerateTokens(user)
	require.NoError(t, err)

	access := parseTestToken(t, pair.Access)
	assert.Equal(t, "access", access["type"])
	assert.Equal(t, user.ID.String(), access["sub"])
	assert.Equal(t, "alice", access["username"])
	assert.Equal(t, "loopcraft-api", access["iss"])
	assert.Equal(t, "loopcraft-client", access["aud"])
	assert.NotEmpty(t, access["jti"])

	refresh := parseTestToken(t, pair.Refresh)
	assert.Equal(t, "refresh", refresh["type"])
	assert.Greater(t, refresh["exp"].(float64), access["exp"].(float64),
		"refresh tokens outlive access tokens")
}

func TestAuthService_Refresh(t *testing.T) {
	t.Parallel()
	user := &models.User{ID: uuid.New(), Username: "alice", IsActive: true}
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		if id == user.ID {
			clone := *user
			return &clone, nil
		}
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewAuthService(repo, testConfig())

	pair, err := svc.GenerateTokens(user)
	require.NoError(t, err)

	t.Run("refresh token mints a new access token", func(t *testing.T) {
		access, err := svc.Refresh(context.Background(), pair.Refresh)
		require.NoError(t, err)
		claims := parseTestToken(t, access)
		assert.Equal(t, "access", claims["type"])
		assert.Equal(t, user.ID.String(), claims["sub"])
	})

	t.Run("access token is rejected", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), pair.Access)
		assertUnauthorized(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), "not.a.token")
		assertUnauthorized(t, err)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  user.ID.String(),
			"type": "refresh",
			"iss":  "loopcraft-api",
			"aud":  "loopcraft-client",
		})
		signed, err := forged.SignedString([]byte("wrong-secret"))
		require.NoError(t, err)
		_, err = svc.Refresh(context.Background(), signed)
		assertUnauthorized(t, err)
	})

	t.Run("deactivated user cannot refresh", func(t *testing.T) {
		inactive := &models.User{ID: uuid.New(), Username: "gone", IsActive: false}
		inactiveRepo := noopUserRepo()
		inactiveRepo.getByIDFn = func(context.Context, uuid.UUID) (*models.User, error) {
			clone := *inactive
			return &clone, nil
		}
		inactiveSvc := NewAuthService(inactiveRepo, testConfig())
		inactivePair, err := inactiveSvc.GenerateTokens(inactive)
		require.NoError(t, err)
		_, err = inactiveSvc.Refresh(context.Background(), inactivePair.Refresh)
		assertUnauthorized(t, err)
	})
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	t.Parallel()
	user := &models.User{ID: uuid.New(), Username: "alice", IsActive: true}
	repo := noopUserRepo()
	repo.getByIDFn = func(context.Context, uuid.UUID) (*models.User, error) {
		clone := *user
		return &clone, nil
	}
	svc := NewAuthService(repo, testConfig())

	pair, err := svc.GenerateTokens(user)
	require.NoError(t, err)
	claims := parseTestToken(t, pair.Refresh)

	// Works before logout.
	_, err = svc.Refresh(context.Background(), pair.Refresh)
	require.NoError(t, err)

	svc.Logout(context.Background(), claims)

	jti, _ := claims["jti"].(string)
	assert.True(t, middleware.TokenRevoked(context.Background(), jti))

	_, err = svc.Refresh(context.Background(), pair.Refresh)
	assertUnauthorized(t, err)
}
