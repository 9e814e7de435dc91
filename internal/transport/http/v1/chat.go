package v1

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hakivo/chatd/internal/domain"
	"github.com/hakivo/chatd/internal/sse"
)

// Chat handles the streaming chat endpoint.
// POST /api/chat
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Messages array is required"})
	}
	if len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Messages array is required"})
	}
	if req.LastMessage().Role != domain.RoleUser {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Last message must be from user"})
	}

	ctx := c.Request().Context()
	if allowed, reason := h.service.Authorize(ctx, &req); !allowed {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Request not permitted", "reason": reason})
	}

	if h.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.RequestTimeout)
		defer cancel()
	}

	w, err := sse.NewWriter(c.Response())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	// Errors past this point are reported in-band on the stream; the
	// response status is already committed.
	if err := h.service.Chat(ctx, w, &req); err != nil {
		c.Logger().Errorf("chat stream ended with error: %v", err)
	}
	return nil
}
