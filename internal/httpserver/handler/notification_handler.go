package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mobilecare/internal/notification"
)

type NotificationHandler struct {
	workflow *notification.Workflow
	logger   *zap.Logger
}

func NewNotificationHandler(workflow *notification.Workflow, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		workflow: workflow,
		logger:   logger,
	}
}

func (h *NotificationHandler) list(c *gin.Context) {
	items := h.workflow.Items()
	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"selected":      h.workflow.Selected(),
		"count":         len(items),
	})
}

// List handles GET /notifications: refetch, then render the fresh
// projection.
func (h *NotificationHandler) List(c *gin.Context) {
	if err := h.workflow.FetchAll(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	h.list(c)
}

// ToggleSelect handles POST /notifications/:id/select. Selection is
// local state only, so the response is the current view, no refetch.
func (h *NotificationHandler) ToggleSelect(c *gin.Context) {
	h.workflow.ToggleSelect(c.Param("id"))
	h.list(c)
}

// MarkRead handles POST /notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.workflow.MarkAsRead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	h.list(c)
}

// DeleteOne handles DELETE /notifications/:id.
func (h *NotificationHandler) DeleteOne(c *gin.Context) {
	if err := h.workflow.DeleteOne(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	h.list(c)
}

// DeleteSelected handles POST /notifications/delete-selected.
func (h *NotificationHandler) DeleteSelected(c *gin.Context) {
	if err := h.workflow.DeleteSelected(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	h.list(c)
}

// DeleteAll handles DELETE /notifications.
func (h *NotificationHandler) DeleteAll(c *gin.Context) {
	if err := h.workflow.DeleteAll(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	h.list(c)
}
