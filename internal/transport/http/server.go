// Package http provides the HTTP server implementation for the chat service.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hakivo/chatd/internal/config"
	"github.com/hakivo/chatd/internal/service"
	v1 "github.com/hakivo/chatd/internal/transport/http/v1"
)

// NewServer creates and configures the HTTP server. It handles the chat
// stream, session retrieval, and health checks.
func NewServer(svc *service.Service, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	v1Handler := v1.NewHandler(svc, cfg)
	v1Handler.RegisterRoutes(e)

	return e
}
