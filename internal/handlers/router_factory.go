package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"lazverb/internal/config"
	"lazverb/internal/middleware"
	"lazverb/internal/observability"
	"lazverb/internal/serviceinterfaces"
	"lazverb/internal/services"
)

// RouterDeps are the services behind the HTTP API. Catalog and Dictionary may be nil.
type RouterDeps struct {
	Conjugation services.ConjugationServiceInterface
	Catalog     services.CatalogServiceInterface
	Dictionary  serviceinterfaces.Lifecycle
}

// requestLogger logs each request at a level chosen by its status code
func requestLogger(logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		fields := map[string]interface{}{
			"http.method":      c.Request.Method,
			"http.path":        c.Request.URL.Path,
			"http.query":       c.Request.URL.RawQuery,
			"http.status_code": statusCode,
			"http.latency_ms":  latency.Milliseconds(),
			"http.client_ip":   c.ClientIP(),
			"http.user_agent":  c.Request.UserAgent(),
		}
		if len(c.Errors) > 0 {
			fields["http.error"] = c.Errors.String()
		}

		switch {
		case statusCode >= 500:
			fields["http.error_type"] = "server_error"
			var err error
			if last := c.Errors.Last(); last != nil {
				err = last.Err
			}
			logger.Error(c.Request.Context(), "HTTP request failed", err, fields)
		case statusCode >= 400:
			fields["http.error_type"] = "client_error"
			logger.Warn(c.Request.Context(), "HTTP request warning", fields)
		default:
			logger.Info(c.Request.Context(), "HTTP request", fields)
		}
	}
}

// NewRouter creates the gin engine with all the necessary middleware and routes
func NewRouter(cfg *config.Config, deps RouterDeps, logger *observability.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if cfg.IsTest {
		gin.SetMode(gin.TestMode)
	} else if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorRecoveryMiddleware(logger, nil))
	router.Use(requestLogger(logger))

	metaHandler := NewMetaHandler(deps.Dictionary)

	// Health check endpoint (defined before tracing)
	router.GET("/health", metaHandler.Health)

	// Disable automatic redirection for trailing slashes, which is better for APIs
	router.RedirectTrailingSlash = false

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept-Language", middleware.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "PUT", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	store := cookie.NewStore([]byte(cfg.Server.SessionSecret))
	sessionOpts := sessions.Options{
		Path:     config.SessionPath,
		MaxAge:   int(config.SessionMaxAge.Seconds()),
		HttpOnly: config.SessionHTTPOnly,
		Secure:   config.SessionSecure,
	}
	if cfg.Server.Debug || cfg.IsTest {
		sessionOpts.SameSite = http.SameSiteDefaultMode
	} else {
		sessionOpts.SameSite = http.SameSiteLaxMode
		sessionOpts.Secure = true
	}
	store.Options(sessionOpts)
	router.Use(sessions.Sessions(config.SessionName, store))

	// Tracing after sessions so spans can carry the session region preference
	router.Use(observability.GinMiddlewareWithErrorHandling("lazverb")...)

	secureConfig := secure.DefaultConfig()
	secureConfig.SSLRedirect = false
	secureConfig.IsDevelopment = cfg.IsTest
	secureConfig.ContentSecurityPolicy = config.DefaultCSP
	router.Use(secure.New(secureConfig))

	conjugationHandler := NewConjugationHandler(deps.Conjugation, logger)
	verbHandler := NewVerbHandler(deps.Conjugation, deps.Catalog, logger)
	preferencesHandler := NewPreferencesHandler(logger)

	v1 := router.Group("/v1")
	{
		v1.GET("/conjugate", conjugationHandler.Conjugate)
		v1.GET("/verbs", verbHandler.ListVerbs)
		v1.GET("/verbs/:infinitive", verbHandler.GetVerb)
		v1.GET("/meta", metaHandler.Meta)

		preferences := v1.Group("/preferences")
		{
			preferences.GET("/region", preferencesHandler.GetRegion)
			preferences.PUT("/region", preferencesHandler.PutRegion)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		StandardizeHTTPError(c, http.StatusNotFound, "Not found", c.Request.URL.Path)
	})

	// Automatic route listing at root path
	routeListing := NewRouteListingHandler("lazverb")
	routeListing.CollectRoutes(router)
	router.GET("/", routeListing.GetRouteListingJSON)

	return router
}
