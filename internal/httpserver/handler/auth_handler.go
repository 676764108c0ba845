package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mobilecare/internal/api"
	"mobilecare/internal/gate"
	"mobilecare/internal/session"
)

type AuthHandler struct {
	client *api.Client
	store  session.Store
	logger *zap.Logger
}

func NewAuthHandler(client *api.Client, store session.Store, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Signin handles POST /signin: exchanges credentials for a token and
// writes the full session record (token, userId, loginTime) in one go.
// The organization display cache is filled from the profile on a
// best-effort basis; a failure there does not fail the sign-in.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	res, err := h.client.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("Sign-in failed", zap.String("email", req.Email), zap.Error(err))
		respondError(c, err)
		return
	}

	if err := h.store.SetSession(res.Token, res.UserID); err != nil {
		h.logger.Error("Failed to persist session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist session"})
		return
	}

	if profile, err := h.client.Profile(c.Request.Context(), res.UserID); err != nil {
		h.logger.Warn("Failed to fetch profile for organization cache", zap.Error(err))
	} else if profile.Organization != "" {
		if err := h.store.SetOrganization(profile.Organization); err != nil {
			h.logger.Warn("Failed to cache organization", zap.Error(err))
		}
	}

	h.logger.Info("User signed in", zap.String("user_id", res.UserID))
	c.JSON(http.StatusOK, gin.H{"userId": res.UserID})
}

// Signout handles POST /signout: wipes the local session and sends the
// user back to the splash view.
func (h *AuthHandler) Signout(c *gin.Context) {
	if err := h.store.Clear(); err != nil {
		h.logger.Error("Failed to clear session on sign-out", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Splash is the public landing payload. The organization name shown in
// the sidebar falls back to a default, same as the original shell.
func (h *AuthHandler) Splash(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":   "7 Empire Mobile Care",
		"signin": gate.SignInPath,
	})
}
