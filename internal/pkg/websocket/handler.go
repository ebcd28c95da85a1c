package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/camnote/internal/app/models/dto"
)

// Handler upgrades authenticated requests to session change streams
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to session changes
// @Description Upgrades to a WebSocket that receives a message whenever the caller's account signs in or out. Pass the access token as the token query parameter.
// @Tags session, websocket
// @Produce json
// @Param token query string true "Access token"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: token missing or invalid"
// @Router /ws/session [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	accountID := c.GetString("userID")
	if accountID == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "로그인이 필요합니다.")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("accountID", accountID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:        h.hub,
		conn:       conn,
		send:       make(chan []byte, 16),
		accountID:  accountID,
		remoteAddr: conn.RemoteAddr().String(),
		logger:     h.logger,
	}
	if !h.hub.join(client) {
		h.logger.Warn().Str("accountID", accountID).Msg("Session hub stopped, closing WebSocket")
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
		_ = conn.Close()
		return
	}
	client.start()

	h.logger.Info().
		Str("accountID", accountID).
		Str("remoteAddr", client.remoteAddr).
		Msg("WebSocket connection established")
}
