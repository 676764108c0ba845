package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mobilecare/internal/api"
	"mobilecare/internal/session"
)

type DashboardHandler struct {
	client *api.Client
	store  session.Store
	logger *zap.Logger
}

func NewDashboardHandler(client *api.Client, store session.Store, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Stats handles GET /dashboard.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.client.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	organization := h.store.Organization()
	if organization == "" {
		organization = "Problem Solver"
	}

	c.JSON(http.StatusOK, gin.H{
		"organization": organization,
		"stats":        stats,
	})
}
