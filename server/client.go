package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"explbot/bot"
	"explbot/db"
	"explbot/errors"
)

// WebSocket timeout constants following Gorilla best practices
// See: https://github.com/gorilla/websocket/blob/master/examples/chat/client.go
const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = 54 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// Client is one connected WebSocket chat session.
type Client struct {
	id        string
	conn      *websocket.Conn
	send      chan *bot.Response
	server    *Server
	closeOnce sync.Once
}

// commandMessage is the inbound WebSocket frame.
type commandMessage struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// handleWebSocket upgrades an HTTP request into a chat session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnw("WebSocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		id:     uuid.NewString(),
		conn:   conn,
		send:   make(chan *bot.Response, 8),
		server: s,
	}
	s.registerClient(client)

	s.wg.Add(2)
	go client.writePump()
	go client.readPump()
}

// checkOrigin validates the Origin header against the configured allow
// list. An empty list allows everything (local development).
func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.allowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range s.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// readPump reads command frames and dispatches them to the bot handler.
// One goroutine per connection; all reads happen here.
func (c *Client) readPump() {
	defer func() {
		c.server.unregisterClient(c)
		c.close()
		c.server.wg.Done()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg commandMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.server.logger.Warnw("WebSocket read failed",
					"client_id", c.id,
					"error", err,
				)
			}
			return
		}

		resp, err := c.server.handler.Handle(c.server.ctx, msg.User, msg.Text)
		if err != nil {
			// All writes go through the send channel so writePump stays
			// the single writer on the connection
			if errors.IsInvalidRequestError(err) {
				resp = &bot.Response{Text: err.Error()}
			} else if db.IsDatabaseClosed(err) {
				// The pool closes during graceful shutdown while sessions
				// are still draining
				resp = &bot.Response{Text: "shutting down"}
			} else {
				c.server.logger.Errorw("Command failed",
					"client_id", c.id,
					"user", msg.User,
					"error", err,
				)
				resp = &bot.Response{Text: "command failed"}
			}
		}

		select {
		case c.send <- resp:
		case <-c.server.ctx.Done():
			return
		}
	}
}

// writePump delivers responses and keepalive pings. One goroutine per
// connection; all writes happen here.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
		c.server.wg.Done()
	}()

	for {
		select {
		case resp, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.writeJSON(resp); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.server.ctx.Done():
			return
		}
	}
}

// writeJSON writes one frame under the write deadline.
func (c *Client) writeJSON(v interface{}) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// close tears the connection down once.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.conn.Close()
	})
}
