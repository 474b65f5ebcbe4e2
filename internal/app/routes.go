package app

import (
	"net/http"

	"minifeed/internal/auth"
	"minifeed/internal/cache"
	"minifeed/internal/config"
	"minifeed/internal/handlers"
	"minifeed/internal/logging"
	"minifeed/internal/metrics"
	"minifeed/internal/repo"
	"minifeed/internal/service"
	"minifeed/internal/view"

	_ "minifeed/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Deps are the stores the routes are built on.
type Deps struct {
	Users    repo.UserRepo
	Content  repo.ContentRepo
	Sessions *auth.Sessions
	Metrics  *metrics.Metrics
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, logger *zap.Logger, d Deps) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	api := r.Group("/api/v1", logging.RequestLogger(logger))

	cookie := handlers.CookieOptions{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL.Duration(),
		Secure: cfg.Session.Secure,
	}
	requireSession := auth.RequireSession(d.Sessions, cookie.Name)
	optionalSession := auth.OptionalSession(d.Sessions, cookie.Name)

	userSvc := service.NewUserService(d.Users, logger, d.Metrics)
	authHandler := handlers.NewAuthHandler(d.Sessions, userSvc, cookie)
	registerAuthRoutes(api, authHandler, requireSession)

	var feedCache *cache.FeedCache
	if cfg.Cache.Enabled {
		feedCache = cache.NewFeedCache()
	}
	assembler := view.NewAssembler(d.Users, d.Content)
	feedSvc := service.NewFeedService(d.Content, assembler, feedCache, logger, d.Metrics)
	postHandler := handlers.NewPostHandler(feedSvc, userSvc)
	registerPostRoutes(api, postHandler, requireSession, optionalSession)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "minifeed",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"metrics": "/metrics",
			"api":     "/api/v1",
			"feed":    "/api/v1/posts",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler, requireSession gin.HandlerFunc) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", requireSession, h.Me)
}

func registerPostRoutes(api *gin.RouterGroup, h *handlers.PostHandler, requireSession, optionalSession gin.HandlerFunc) {
	api.GET("/posts", optionalSession, h.List)
	api.POST("/posts", requireSession, h.Create)
	api.GET("/posts/:id/comments", h.ListComments)
	api.POST("/posts/:id/comments", requireSession, h.CreateComment)
}
