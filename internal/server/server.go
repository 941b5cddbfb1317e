package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nutribook/internal/auth"
	"nutribook/internal/blockedslot"
	"nutribook/internal/booking"
	"nutribook/internal/config"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
}

func New(cfg *config.Config, bookings booking.Service, blocked blockedslot.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), corsMiddleware(), RequestLoggingMiddleware(), MetricsMiddleware())

	bookingHandler := booking.NewHandler(bookings)
	blockedHandler := blockedslot.NewHandler(blocked)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	staffOnly := auth.RequireRole(auth.RoleDietitian, auth.RoleAdmin)

	api := router.Group("/api")
	api.Use(authMiddleware)
	{
		bookingsGroup := api.Group("/bookings")
		bookingsGroup.POST("", RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst), bookingHandler.Reserve)
		bookingsGroup.GET("/me", bookingHandler.ListMine)
		bookingsGroup.GET("/user/:userID", bookingHandler.ListForUser)
		bookingsGroup.GET("/:bookingID", bookingHandler.GetBooking)
		bookingsGroup.PATCH("/:bookingID/status", bookingHandler.UpdateStatus)

		dietitians := api.Group("/dietitians/:dietitianID")
		dietitians.GET("/bookings", staffOnly, bookingHandler.ListForDietitian)
		dietitians.GET("/slots", bookingHandler.Availability)
		dietitians.GET("/stats", staffOnly, bookingHandler.Stats)
		dietitians.GET("/blocked-slots", blockedHandler.List)
		dietitians.POST("/blocked-slots", staffOnly, blockedHandler.Add)
		dietitians.DELETE("/blocked-slots/:blockID", staffOnly, blockedHandler.Remove)
	}

	return &Server{
		router: router,
		config: cfg,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
