package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"yof-server/internal/auth"
	"yof-server/internal/config"
	"yof-server/internal/dispatch"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsChatRequest struct {
	Messages []dispatch.Message `json:"messages"`
}

// WSChatHandler runs coaching turns over a WebSocket. The client sends
// a JSON message list per turn and receives the same event stream the
// SSE endpoint produces. Browsers cannot set headers on WebSocket
// upgrades, so the token may come via query parameter.
func WSChatHandler(cfg *config.Config, d *dispatch.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "missing JWT"}})
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")
		claims, err := auth.ParseJWT(cfg.Server.JWTSecret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "invalid JWT"}})
			return
		}

		conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			config.Logger.Warnw("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		for {
			var req wsChatRequest
			if err := conn.ReadJSON(&req); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					config.Logger.Warnw("websocket read failed", "userId", claims.UserID, "error", err)
				}
				return
			}
			if len(req.Messages) == 0 {
				if err := conn.WriteJSON(dispatch.Event{Type: dispatch.EventError, Content: "messages must not be empty"}); err != nil {
					return
				}
				continue
			}

			events := make(chan dispatch.Event, 16)
			go d.Run(c.Request.Context(), claims.UserID, claims.Username, req.Messages, events)

			for event := range events {
				if err := conn.WriteJSON(event); err != nil {
					config.Logger.Warnw("websocket write failed", "userId", claims.UserID, "error", err)
					return
				}
			}
		}
	}
}
