package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mobilecare/internal/gate"
	"mobilecare/internal/session"
)

// Protected aborts with a redirect before any handler runs when the
// gate says so, so protected payloads are never written for a
// logged-out request.
func Protected(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d := gate.Protected(store.Token()); d.Redirects() {
			c.Redirect(http.StatusFound, d.Path())
			c.Abort()
			return
		}
		c.Next()
	}
}

// PublicOnly sends signed-in users to the dashboard instead of
// rendering visitor views.
func PublicOnly(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d := gate.PublicOnly(store.Token()); d.Redirects() {
			c.Redirect(http.StatusFound, d.Path())
			c.Abort()
			return
		}
		c.Next()
	}
}
