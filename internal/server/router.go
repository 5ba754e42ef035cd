// Package server assembles the gin engine: middleware chain and routes.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/doctors-portal/internal/auth"
	"github.com/harentsoaR/doctors-portal/internal/handlers"
	"github.com/harentsoaR/doctors-portal/internal/middleware"
)

type Options struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires h behind the auth gates. authz resolves roles for the
// admin-only routes.
func NewRouter(h *handlers.Handler, authz *auth.Authorizer, opts Options, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	r.Use(middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).Limit())

	requireToken := middleware.AuthMiddleware(h.Tokens, logger)
	requireAdmin := middleware.AdminMiddleware(authz)

	r.GET("/", h.Home)
	r.GET("/service", h.ListServices)
	r.GET("/available", h.GetAvailable)
	r.GET("/admin/:email", h.CheckAdmin)
	r.PUT("/user/:email", h.UpsertUser)

	authed := r.Group("/")
	authed.Use(requireToken)
	{
		authed.GET("/booking", h.GetBookings)
		authed.POST("/booking", h.CreateBooking)
		authed.GET("/user", h.ListUsers)
		authed.POST("/auth/logout", h.Logout)
	}

	admin := r.Group("/")
	admin.Use(requireToken, requireAdmin)
	{
		admin.PUT("/user/admin/:email", h.MakeAdmin)
		admin.GET("/doctor", h.ListDoctors)
		admin.POST("/doctor", h.AddDoctor)
		admin.DELETE("/doctor/:email", h.DeleteDoctor)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
