package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"turbochat/store"
)

// ListConversations returns all conversations, most recent first, without
// message bodies.
// GET /v1/conversations
func (h *Handler) ListConversations(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversations": h.svc.ListConversations(),
		"active_id":     h.svc.ActiveConversationID(),
	})
}

// CreateConversation allocates a fresh conversation and makes it active.
// POST /v1/conversations
func (h *Handler) CreateConversation(c echo.Context) error {
	conv, err := h.svc.CreateConversation()
	if err != nil {
		log.Printf("ERROR: failed to create conversation: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create conversation"})
	}
	return c.JSON(http.StatusCreated, conv)
}

// GetConversation returns a single conversation including messages and memory.
// GET /v1/conversations/:id
func (h *Handler) GetConversation(c echo.Context) error {
	conv, err := h.svc.GetConversation(c.Param("id"))
	if err == store.ErrNotFound {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
	}
	if err != nil {
		log.Printf("ERROR: failed to get conversation: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get conversation"})
	}
	return c.JSON(http.StatusOK, conv)
}

// DeleteConversation removes a conversation and reports which one is active
// afterwards.
// DELETE /v1/conversations/:id
func (h *Handler) DeleteConversation(c echo.Context) error {
	active, err := h.svc.DeleteConversation(c.Param("id"))
	if err == store.ErrNotFound {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
	}
	if err != nil {
		log.Printf("ERROR: failed to delete conversation: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete conversation"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"active": active,
	})
}

// ActivateConversation selects a conversation. Unknown ids are a no-op, the
// response reports whichever conversation ends up active.
// PUT /v1/conversations/:id/activate
func (h *Handler) ActivateConversation(c echo.Context) error {
	if err := h.svc.SetActiveConversation(c.Param("id")); err != nil {
		log.Printf("ERROR: failed to activate conversation: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to activate conversation"})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"active_id": h.svc.ActiveConversationID(),
	})
}
