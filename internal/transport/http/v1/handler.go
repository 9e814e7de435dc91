// Package v1 provides HTTP handlers for the chat API.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hakivo/chatd/internal/config"
	"github.com/hakivo/chatd/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
	config  *config.Config
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service, cfg *config.Config) *Handler {
	return &Handler{
		service: service,
		config:  cfg,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/chat", h.Chat)
	e.GET("/api/sessions/:session_id/messages", h.GetSessionMessages)
	e.GET("/api/sessions/:session_id/events", h.GetSessionEvents)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
