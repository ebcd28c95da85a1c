package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
	pingInterval = idleTimeout * 9 / 10

	// peers only answer pings, so anything larger is abuse
	readLimit = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Client is one open session stream of an account
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	accountID  string
	remoteAddr string
	logger     zerolog.Logger
}

func (c *Client) start() {
	go c.deliver()
	go c.watchPeer()
}

// watchPeer drains inbound frames until the peer disconnects or stops
// answering pings, then hands the client back to the hub.
func (c *Client) watchPeer() {
	defer func() {
		c.hub.leave(c)
		_ = c.conn.Close()
	}()

	extend := func(string) error { return c.conn.SetReadDeadline(time.Now().Add(idleTimeout)) }
	c.conn.SetReadLimit(readLimit)
	_ = extend("")
	c.conn.SetPongHandler(extend)

	for {
		_, _, err := c.conn.ReadMessage()
		if err == nil {
			continue
		}
		log := c.logger.With().Str("accountID", c.accountID).Logger()
		if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			log.Warn().Err(err).Msg("Unexpected WebSocket close")
		} else {
			log.Debug().Err(err).Msg("WebSocket closed")
		}
		return
	}
}

// deliver writes each queued event as its own text frame and keeps the
// connection alive with pings. A closed send channel ends the stream.
func (c *Client) deliver() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
