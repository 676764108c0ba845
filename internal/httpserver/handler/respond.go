package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mobilecare/internal/api"
)

// respondError maps the client's typed errors onto shell responses:
// validation failures are the caller's fault, backend error statuses
// pass through, transport failures are a bad gateway.
func respondError(c *gin.Context, err error) {
	var validationErr *api.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		return
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{"error": "platform backend unreachable"})
}
