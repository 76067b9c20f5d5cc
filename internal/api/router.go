package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/codefolio/portfolio-api/docs"
	"github.com/codefolio/portfolio-api/internal/api/handler"
	"github.com/codefolio/portfolio-api/internal/api/middleware"
	"github.com/codefolio/portfolio-api/internal/core/service"
	"github.com/codefolio/portfolio-api/internal/infrastructure/auth"
	mongodb "github.com/codefolio/portfolio-api/internal/infrastructure/db/mongo"
	redisdb "github.com/codefolio/portfolio-api/internal/infrastructure/db/redis"
)

// Deps bundles the shared infrastructure the router wires together.
type Deps struct {
	Mongo      *mongo.Database
	Redis      *redis.Client
	Provider   *auth.Client
	Cookies    auth.CookieCodec
	SessionTTL time.Duration
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portfolio"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Dependencies ---
	profiles := mongodb.NewProfileRepository(deps.Mongo)
	sessions := redisdb.NewSessionStore(deps.Redis)
	events := service.NewAuthEventHub()

	blogService := service.NewBlogService(mongodb.NewBlogRepository(deps.Mongo), deps.Logger)
	projectService := service.NewProjectService(mongodb.NewProjectRepository(deps.Mongo), deps.Logger)

	sessionHandler := handler.NewSessionHandler(deps.Provider, profiles, sessions, deps.Cookies, events, deps.SessionTTL, deps.Logger)
	blogHandler := handler.NewBlogHandler(blogService)
	projectHandler := handler.NewProjectHandler(projectService)
	userHandler := handler.NewUserHandler(profiles)

	// --- Edge access gate ---
	gate := middleware.NewAccessGate(deps.Provider, profiles, deps.Cookies, middleware.DefaultRouteTable(), deps.Logger)
	e.Use(gate.Middleware())

	// --- Auth routes ---
	e.GET("/api/auth/session", sessionHandler.Session)
	e.POST("/api/auth/signin", sessionHandler.SignIn)
	e.POST("/api/auth/signout", sessionHandler.SignOut)

	// --- Public content routes ---
	e.GET("/api/blog", blogHandler.List)
	e.GET("/api/blog/:slug", blogHandler.Get)
	e.GET("/api/projects", projectHandler.List)
	e.GET("/api/projects/:slug", projectHandler.Get)

	// --- Admin routes (behind the gate) ---
	admin := e.Group("/api/admin")
	admin.GET("/blog", blogHandler.ListAll)
	admin.POST("/blog", blogHandler.Create)
	admin.PUT("/blog/:slug", blogHandler.Update)
	admin.DELETE("/blog/:slug", blogHandler.Delete)
	admin.GET("/projects", projectHandler.ListAll)
	admin.POST("/projects", projectHandler.Create)
	admin.PUT("/projects/:slug", projectHandler.Update)
	admin.DELETE("/projects/:slug", projectHandler.Delete)
	admin.PUT("/users/role", userHandler.UpdateRole)

	// --- Operational routes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis, func(ctx context.Context) error {
		return deps.Provider.Ping(ctx)
	})

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
