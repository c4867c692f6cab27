package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/martijn/clientreg/docs"
	"github.com/martijn/clientreg/internal/api/dto"
	"github.com/martijn/clientreg/internal/api/handler"
	"github.com/martijn/clientreg/internal/api/middleware"
	"github.com/martijn/clientreg/internal/core/repository"
	"github.com/martijn/clientreg/pkg/config"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const serviceName = "client-management-api"

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	log    logrus.FieldLogger
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, log logrus.FieldLogger, clientRepo repository.ClientRepository) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandlerMiddleware(log))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	clientHandler := handler.NewClientHandler(clientRepo)
	phoneHandler := handler.NewPhoneHandler(clientRepo)

	handler.RegisterClientRoutes(router, clientHandler, phoneHandler)

	// Health check
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:  "ok",
			Service: serviceName,
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Server{
		router: router,
		config: cfg,
		log:    log,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := s.config.Addr()

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	s.log.WithField("addr", addr).Info("Starting HTTP server")
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
