// Package api provides the HTTP surface of the chat service.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"turbochat/service"
)

// Handler handles HTTP requests.
type Handler struct {
	svc *service.Service
}

// NewHandler creates a new handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/v1/conversations", h.ListConversations)
	e.POST("/v1/conversations", h.CreateConversation)
	e.GET("/v1/conversations/:id", h.GetConversation)
	e.DELETE("/v1/conversations/:id", h.DeleteConversation)
	e.PUT("/v1/conversations/:id/activate", h.ActivateConversation)

	e.POST("/v1/conversations/:id/messages", h.SendMessage)
	e.PATCH("/v1/conversations/:id/messages/:index", h.EditMessage)
	e.DELETE("/v1/conversations/:id/messages/:index", h.DeleteMessage)

	e.GET("/v1/settings", h.GetSettings)
	e.PUT("/v1/settings", h.UpdateSettings)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
