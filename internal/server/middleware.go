package server

import (
	"fmt"
	"net/http"
	"time"

	model "freight-exchange/internal/models"
	"freight-exchange/services/exchange/helpers"
	"freight-exchange/utils"

	"github.com/gin-gonic/gin"
)

// Identity headers are set by the authenticating proxy in front of the server
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserRole  = "X-User-Role"
	HeaderSessionID = "X-Session-Id"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
		"user_id": helpers.CallerFrom(c).Identity,
	})
}

// IdentityMiddleware stores the caller described by the identity headers.
// Browsers cannot set headers on a websocket upgrade, so the session id may
// also come from the "session" query parameter.
func IdentityMiddleware(c *gin.Context) {
	caller := model.Caller{
		Identity:  c.GetHeader(HeaderUserID),
		SessionID: c.GetHeader(HeaderSessionID),
	}
	if caller.SessionID == "" {
		caller.SessionID = c.Query("session")
	}

	if raw := c.GetHeader(HeaderUserRole); raw != "" {
		role, err := model.ParseRole(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid identity: %w", err), "invalid role header")
			utils.Warn("IdentityMiddleware: rejected role", map[string]any{"role": raw, "path": c.Request.URL.Path})
			return
		}
		caller.Role = role
	}

	c.Set(helpers.CallerKey, caller)
	c.Next()
}
