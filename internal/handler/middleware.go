package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baha1115/restau-suria-frontend/internal/session"
	"github.com/baha1115/restau-suria-frontend/pkg/config"
	"github.com/baha1115/restau-suria-frontend/pkg/logger"
	"github.com/baha1115/restau-suria-frontend/pkg/response"
)

const (
	sessionContextKey = "console_session"
	visitorContextKey = "console_visitor"

	// VisitorCookieName identifies an anonymous menu visitor for cart scoping
	VisitorCookieName = "rs_visitor"

	visitorCookieMaxAge = 30 * 24 * int(time.Hour/time.Second)
)

// Middleware bundles the request-scoped concerns shared by all route groups
type Middleware struct {
	sessions *session.Manager
	cookies  config.SessionConfig
}

// NewMiddleware creates the middleware set
func NewMiddleware(sessions *session.Manager, cookies config.SessionConfig) *Middleware {
	return &Middleware{sessions: sessions, cookies: cookies}
}

// RequestLogger tags every request with an ID and writes one access log line
func (m *Middleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// Sessions resolves the session cookie and stores the session on the
// context. A missing or expired cookie is not an error here; the guards
// decide which routes require one.
func (m *Middleware) Sessions() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(m.cookies.CookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		sess, err := m.sessions.Resolve(c.Request.Context(), id)
		if err != nil {
			c.Next()
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// Visitor assigns a stable anonymous identity for cart scoping. Signed-in
// users reuse their session ID so their cart follows the sign-in.
func (m *Middleware) Visitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, ok := SessionFrom(c); ok {
			c.Set(visitorContextKey, sess.ID)
			c.Next()
			return
		}

		id, err := c.Cookie(VisitorCookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(VisitorCookieName, id, visitorCookieMaxAge, "/", m.cookies.CookieDomain, m.cookies.CookieSecure, true)
		}
		c.Set(visitorContextKey, id)
		c.Next()
	}
}

// RequireAuth rejects requests without a resolved session
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Authentication required"))
			return
		}
		c.Next()
	}
}

// RequireManager admits owners and admins into the management subtree
func (m *Middleware) RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Authentication required"))
			return
		}
		if !sess.CanManageRestaurant() {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Forbidden("Restaurant management access required"))
			return
		}
		c.Next()
	}
}

// RequireAdmin admits admins only
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Authentication required"))
			return
		}
		if !sess.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Forbidden("Admin access required"))
			return
		}
		c.Next()
	}
}

// SessionFrom returns the session resolved for this request, if any
func SessionFrom(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

// VisitorFrom returns the cart identity for this request
func VisitorFrom(c *gin.Context) string {
	return c.GetString(visitorContextKey)
}
