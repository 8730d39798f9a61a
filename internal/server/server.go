// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"time"

	"loopcraft/internal/bootstrap"
	"loopcraft/internal/config"
	"loopcraft/internal/middleware"
	"loopcraft/internal/repository"
	"loopcraft/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo      repository.UserRepository
	postRepo      repository.PostRepository
	patternRepo   repository.PatternRepository
	inventoryRepo repository.InventoryRepository
	followRepo    repository.FollowRepository

	authService    *service.AuthService
	userService    *service.UserService
	contentService *service.ContentService
	followService  *service.FollowService
	imageService   *service.ImageService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and a miniredis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	patternRepo := repository.NewPatternRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	followRepo := repository.NewFollowRepository(db)

	prom := middleware.InitMetrics("loopcraft-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		postRepo:       postRepo,
		patternRepo:    patternRepo,
		inventoryRepo:  inventoryRepo,
		followRepo:     followRepo,
	}

	server.authService = service.NewAuthService(userRepo, cfg)
	server.userService = service.NewUserService(userRepo, postRepo, patternRepo, followRepo)
	server.contentService = service.NewContentService(postRepo, patternRepo, inventoryRepo, userRepo)
	server.followService = service.NewFollowService(followRepo, userRepo)
	server.imageService = service.NewImageService(cfg)

	middleware.InitMiddleware(cfg, redisClient)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// OpenTelemetry request spans
	app.Use(middleware.TracingMiddleware())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Loopcraft Backend Metrics Dashboard",
	}))

	// Uploaded media
	app.Static("/media", s.imageService.UploadDir())

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/token/refresh", s.RefreshToken)
	auth.Post("/logout", middleware.AuthRequired, s.Logout)

	// Post routes. The list and per-user reads are public; feeds keyed to the
	// caller and all writes require a bearer token.
	posts := api.Group("/posts")
	posts.Get("/", s.GetAllPosts)
	posts.Get("/exclude_user", middleware.AuthRequired, s.GetPostsExcludingUser)
	posts.Get("/following", middleware.AuthRequired, s.GetFollowingPosts)
	posts.Get("/explore", middleware.AuthRequired, s.GetExplorePosts)
	posts.Post("/create_post", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_post"), s.CreatePost)
	posts.Get("/user_posts/:id", s.GetUserPosts)
	posts.Get("/:id", middleware.AuthRequired, s.GetPost)
	posts.Delete("/:id", middleware.AuthRequired, s.DeletePost)

	// Pattern routes. Browsing is public, same split as posts.
	patterns := api.Group("/patterns")
	patterns.Get("/", s.GetAllPatterns)
	patterns.Get("/exclude_user", middleware.AuthRequired, s.GetPatternsExcludingUser)
	patterns.Get("/following", middleware.AuthRequired, s.GetFollowingPatterns)
	patterns.Get("/explore", middleware.AuthRequired, s.GetExplorePatterns)
	patterns.Get("/search_patterns", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 30, time.Minute, "search_patterns"), s.SearchPatterns)
	patterns.Post("/create_pattern", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_pattern"), s.CreatePattern)
	patterns.Get("/user_patterns/:id", s.GetUserPatterns)
	patterns.Get("/:id", s.GetPattern)
	patterns.Delete("/:id", middleware.AuthRequired, s.DeletePattern)

	// User routes. Profiles and edge listings are public; the profile handler
	// picks up an optional bearer identity to personalize IsFollowing.
	users := api.Group("/users")
	users.Get("/", middleware.AuthRequired, s.GetAllUsers)
	users.Get("/search", middleware.AuthRequired, s.SearchUsers)
	users.Get("/profile/:id", s.GetUserProfile)
	users.Put("/update_user", middleware.AuthRequired, s.UpdateUser)
	users.Delete("/me", middleware.AuthRequired, s.DeleteAccount)
	users.Post("/follow/:id", middleware.AuthRequired, s.FollowUser)
	users.Delete("/follow/:id", middleware.AuthRequired, s.UnfollowUser)
	users.Get("/:id/followers", s.GetFollowers)
	users.Get("/:id/following", s.GetFollowing)

	// Inventory routes
	inventory := api.Group("/inventory", middleware.AuthRequired)
	inventory.Get("/", s.GetMyInventory)
	inventory.Get("/user/:id", s.GetUserInventory)
	inventory.Post("/", s.CreateInventoryItem)
	inventory.Delete("/:id", s.DeleteInventoryItem)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}
