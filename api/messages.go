package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"turbochat/domain"
	"turbochat/service"
	"turbochat/store"
)

// SendRequest is the body of a send call.
type SendRequest struct {
	Text       string             `json:"text"`
	Attachment *domain.Attachment `json:"attachment,omitempty"`
}

// SendMessage runs one user turn. A completion failure still returns 200:
// the error is recorded in the conversation as an error-role message and the
// already-appended user message stands.
// POST /v1/conversations/:id/messages
func (h *Handler) SendMessage(c echo.Context) error {
	id := c.Param("id")

	var req SendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	msg, err := h.svc.Send(c.Request().Context(), id, req.Text, req.Attachment)
	switch err {
	case nil:
	case service.ErrEmptyMessage:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is empty"})
	case service.ErrNoAPIKey:
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "api key not configured"})
	case service.ErrBusy:
		return c.JSON(http.StatusConflict, map[string]string{"error": "send already in flight"})
	case store.ErrNotFound:
		return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
	default:
		log.Printf("ERROR: send failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "send failed"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversation_id": id,
		"message":         msg,
	})
}

// EditRequest is the body of an edit call.
type EditRequest struct {
	Content string `json:"content"`
}

// EditMessage replaces the content of the message at the given index.
// PATCH /v1/conversations/:id/messages/:index
func (h *Handler) EditMessage(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid message index"})
	}

	var req EditRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	switch err := h.svc.EditMessage(c.Param("id"), index, req.Content); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case store.ErrNotFound:
		return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
	case store.ErrIndexOutOfRange:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message index out of range"})
	default:
		log.Printf("ERROR: edit failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "edit failed"})
	}
}

// DeleteMessage removes the message at the given index; later indices shift
// down by one.
// DELETE /v1/conversations/:id/messages/:index
func (h *Handler) DeleteMessage(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid message index"})
	}

	switch err := h.svc.DeleteMessage(c.Param("id"), index); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case store.ErrNotFound:
		return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
	case store.ErrIndexOutOfRange:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message index out of range"})
	default:
		log.Printf("ERROR: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
}
