// api/router/router.go

package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dev-mohitbeniwal/intervene/api/controller"
	"github.com/dev-mohitbeniwal/intervene/api/middleware"
)

// HealthCheck probes one dependency. A failing critical check turns the
// health endpoint into a 503; other failures only mark it degraded.
type HealthCheck struct {
	Name     string
	Critical bool
	Ping     func(ctx context.Context) error
}

type Options struct {
	Authenticator     middleware.Authenticator
	Limiter           middleware.Limiter
	RateLimitRequests int
	RateLimitDuration time.Duration
	AllowedOrigins    []string
	Checks            []HealthCheck
}

func SetupRouter(controllers *controller.Controllers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	if opts.Limiter != nil && opts.RateLimitRequests > 0 {
		router.Use(middleware.RateLimiter(opts.Limiter, opts.RateLimitRequests, opts.RateLimitDuration))
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/health", health(opts.Checks))

	controllers.Auth.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.BearerAuth(opts.Authenticator))

	controllers.Auth.RegisterRoutes(protected)
	controllers.User.RegisterRoutes(protected)
	controllers.Student.RegisterRoutes(protected)
	controllers.Intervention.RegisterRoutes(protected)
	controllers.Comment.RegisterRoutes(protected)
	controllers.Audit.RegisterRoutes(protected)
	if controllers.Assignment != nil {
		controllers.Assignment.RegisterRoutes(protected)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.ExposeHeaders = []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Duration"}
	return cfg
}

func health(checks []HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 2*time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		results := make(map[string]string, len(checks))
		for _, check := range checks {
			if err := check.Ping(ctx); err != nil {
				results[check.Name] = "unavailable"
				status = "degraded"
				if check.Critical {
					status = "unavailable"
					code = http.StatusServiceUnavailable
				}
				continue
			}
			results[check.Name] = "ok"
		}

		c.JSON(code, gin.H{
			"status":    status,
			"checks":    results,
			"timestamp": time.Now().UTC(),
		})
	}
}
