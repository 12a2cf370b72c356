package handler

import (
	"time"

	"freight-exchange/internal/exchangeerrors"
	"freight-exchange/internal/realtime"
	"freight-exchange/services/exchange/helpers"
	"freight-exchange/utils"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
)

// SessionRegistry tracks live sessions
type SessionRegistry interface {
	Register(identity, sessionID string, conn realtime.Conn)
	UnregisterConn(identity, sessionID string, conn realtime.Conn)
}

// WSOptions configures accepted sockets
type WSOptions struct {
	// OriginPatterns are host patterns allowed to open a socket cross-origin
	OriginPatterns []string
	QueueSize      int
	WriteTimeout   time.Duration
}

// WSHandler upgrades callers to live sessions
type WSHandler struct {
	registry SessionRegistry
	opts     WSOptions
}

// NewWSHandler creates a websocket handler registering into registry
func NewWSHandler(registry SessionRegistry, opts WSOptions) *WSHandler {
	return &WSHandler{registry: registry, opts: opts}
}

// ConnectHandler handles GET /ws. Each tab must name its own session; the
// session stays registered until the socket closes.
func (h *WSHandler) ConnectHandler(c *gin.Context) {
	caller := helpers.CallerFrom(c)
	if caller.Identity == "" {
		helpers.HandleServiceError(c, "ConnectHandler", "open session", exchangeerrors.ErrMissingIdentity, nil)
		return
	}
	if caller.SessionID == "" {
		helpers.HandleServiceError(c, "ConnectHandler", "open session", exchangeerrors.ErrMissingSession,
			map[string]any{"user_id": caller.Identity})
		return
	}

	ws, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: h.opts.OriginPatterns,
	})
	if err != nil {
		// Accept already wrote the response
		c.Abort()
		utils.Warn("ConnectHandler: websocket upgrade failed", map[string]any{
			"user_id": caller.Identity,
			"error":   err.Error(),
		})
		return
	}

	conn := realtime.NewWSConn(ws, h.opts.QueueSize, h.opts.WriteTimeout)
	h.registry.Register(caller.Identity, caller.SessionID, conn)
	defer h.registry.UnregisterConn(caller.Identity, caller.SessionID, conn)

	fields := map[string]any{"user_id": caller.Identity, "session_id": caller.SessionID}
	helpers.LogSuccess("ConnectHandler", "session opened", fields)

	if err := conn.Run(c.Request.Context()); err != nil {
		fields["error"] = err.Error()
		utils.Debug("ConnectHandler: session ended with error", fields)
	}
	helpers.LogSuccess("ConnectHandler", "session closed", fields)
}
