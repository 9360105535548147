package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/primowater/deliveryform/internal/api/handlers"
	"github.com/primowater/deliveryform/internal/api/middleware"
	"github.com/primowater/deliveryform/internal/config"
	"github.com/primowater/deliveryform/internal/metrics"
	"github.com/primowater/deliveryform/internal/repository"
	"github.com/primowater/deliveryform/internal/session"
	"github.com/primowater/deliveryform/internal/web"
)

// Dependencies are the services the routes are wired to
type Dependencies struct {
	Forms       handlers.FormService
	Submissions handlers.SubmissionService
	Repos       *repository.Repositories
	Sessions    *session.Store
	Metrics     *metrics.Metrics
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, deps Dependencies, logger *zap.Logger) (*gin.Engine, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.RegisterValidators()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(deps.Metrics, logger))

	router.GET("/health", handlers.HandleHealth())
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	router.StaticFS("/static", http.FS(web.Static()))

	secure := cfg.Session.CookieSecure
	sessions := middleware.SessionMiddleware(deps.Sessions, secure)

	// Order page, every load starts a fresh form
	router.GET("/", middleware.NewPageSession(deps.Sessions, secure), handlers.HandleOrderPage(logger))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/catalog", handlers.HandleCatalog())
		v1.POST("/quote", handlers.HandleQuote(deps.Forms))
		v1.POST("/validate/costco", handlers.HandleValidateCostco(deps.Forms))

		// Session routes
		formRoutes := v1.Group("")
		formRoutes.Use(sessions)
		{
			formRoutes.GET("/form", handlers.HandleGetForm())
			formRoutes.POST("/form/fields", handlers.HandleApplyField(deps.Forms, logger))
			formRoutes.POST("/orders/submit", handlers.HandleSubmit(deps.Submissions, logger))
		}

		// Admin routes
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware(cfg.Admin.APIKeyHash, logger))
		{
			adminRoutes.GET("/submissions", handlers.HandleListSubmissions(deps.Repos, logger))
			adminRoutes.GET("/submissions/:id", handlers.HandleGetSubmission(deps.Repos, logger))
		}
	}

	return router, nil
}

// loggingMiddleware logs HTTP requests and records their metrics
func loggingMiddleware(m *metrics.Metrics, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(method, route, status, elapsed)

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
		)
	}
}
