package app

import (
	"context"
	"time"

	"minifeed/internal/auth"
	"minifeed/internal/config"
	"minifeed/internal/metrics"
	"minifeed/internal/repo"
	"minifeed/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App owns the in-memory stores and the HTTP router built on them.
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics

	users    *repo.MemUserRepo
	content  *repo.MemContentRepo
	sessions *auth.Sessions

	router *gin.Engine
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	a := &App{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics.New(),
		users:    repo.NewMemUserRepo(),
		sessions: auth.NewBinder[string](),
	}
	a.content = repo.NewMemContentRepo(a.users, utils.SystemClock)
	a.metrics.RegisterSizes(metrics.Sizes{
		Users:    a.users.Count,
		Posts:    func() int { return a.content.Stats().Posts },
		Comments: func() int { return a.content.Stats().Comments },
		Sessions: a.sessions.Len,
	})

	a.router = a.newRouter()
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// Close flushes the logger. State is process-lifetime only, so nothing else needs releasing.
func (a *App) Close(ctx context.Context) error {
	_ = ctx
	_ = a.logger.Sync()
	return nil
}

func (a *App) newRouter() *gin.Engine {
	if a.cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(a.metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Cookie", "HX-Request", "X-Partial", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	Setup(r, a.cfg, a.logger, Deps{
		Users:    a.users,
		Content:  a.content,
		Sessions: a.sessions,
		Metrics:  a.metrics,
	})
	return r
}
