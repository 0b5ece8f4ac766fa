package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/baha1115/restau-suria-frontend/internal/session"
	"github.com/baha1115/restau-suria-frontend/internal/upstream"
	"github.com/baha1115/restau-suria-frontend/pkg/config"
	"github.com/baha1115/restau-suria-frontend/pkg/response"
)

// AuthHandler handles sign-in, sign-out and session refresh
type AuthHandler struct {
	sessions *session.Manager
	api      *upstream.Client
	cookies  config.SessionConfig
	features config.FeatureConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(sessions *session.Manager, api *upstream.Client, cookies config.SessionConfig, features config.FeatureConfig) *AuthHandler {
	return &AuthHandler{sessions: sessions, api: api, cookies: cookies, features: features}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// sessionView is what the browser learns about its session. The upstream
// token never leaves the server.
type sessionView struct {
	User     upstream.User `json:"user"`
	LastSlug string        `json:"lastSlug,omitempty"`
}

func viewOf(sess *session.Session) sessionView {
	return sessionView{User: sess.User, LastSlug: sess.LastSlug}
}

// Login handles credential sign-in
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	sess, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondUpstream(c, err)
		return
	}

	h.setSessionCookie(c, sess.ID)
	c.JSON(http.StatusOK, response.Success(viewOf(sess)))
}

// Register handles account self-signup when the feature is enabled
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	if !h.features.Registration {
		c.JSON(http.StatusNotFound, response.FeatureDisabled())
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	sess, err := h.sessions.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondUpstream(c, err)
		return
	}

	h.setSessionCookie(c, sess.ID)
	c.JSON(http.StatusCreated, response.Success(viewOf(sess)))
}

// Logout destroys the local session. Signing out never calls the upstream
// and succeeds even without a session.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(h.cookies.CookieName); err == nil && id != "" {
		if err := h.sessions.Logout(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, response.InternalError("Failed to sign out"))
			return
		}
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, response.Success(gin.H{"signedOut": true}))
}

// Session revalidates the current session against the upstream profile.
// An upstream rejection destroys the session; a transient upstream outage
// serves the cached profile so a flaky network cannot sign the user out.
// GET /api/v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	sess, ok := SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized("No active session"))
		return
	}

	refreshed, err := h.sessions.Refresh(c.Request.Context(), sess)
	if err != nil {
		if errors.Is(err, session.ErrSessionInvalid) {
			h.clearSessionCookie(c)
			c.JSON(http.StatusUnauthorized, response.Error(response.ErrCodeSessionExpired, "Session expired, please sign in again"))
			return
		}
		c.JSON(http.StatusOK, response.Success(viewOf(sess)))
		return
	}

	c.JSON(http.StatusOK, response.Success(viewOf(refreshed)))
}

// ForgotPassword requests a reset email when the feature is enabled
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	if !h.features.PasswordReset {
		c.JSON(http.StatusNotFound, response.FeatureDisabled())
		return
	}

	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if err := h.api.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondUpstream(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"sent": true}))
}

// ResetPassword redeems a reset token when the feature is enabled
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	if !h.features.PasswordReset {
		c.JSON(http.StatusNotFound, response.FeatureDisabled())
		return
	}

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if err := h.api.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		respondUpstream(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"reset": true}))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, id string) {
	maxAge := int(h.cookies.TTL / time.Second)
	c.SetCookie(h.cookies.CookieName, id, maxAge, "/", h.cookies.CookieDomain, h.cookies.CookieSecure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.cookies.CookieName, "", -1, "/", h.cookies.CookieDomain, h.cookies.CookieSecure, true)
}
