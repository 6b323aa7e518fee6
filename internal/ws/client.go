package ws

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/menuhq/pos-admin/internal/auth"
	"github.com/menuhq/pos-admin/internal/enum"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10 // must fire before pongWait expires

	// Terminals only send pongs and close frames.
	maxMessageSize = 512
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers and terminals connect from many origins; the token decides access.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Client is one terminal subscribed to an outlet's menu feed.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	outletID uuid.UUID
	send     chan []byte
}

var (
	errMissingToken = errors.New("missing token")
	errBadToken     = errors.New("invalid token")
	errBadOutlet    = errors.New("invalid outlet id")
	errOutletDenied = errors.New("outlet access denied")
)

// authorizeOutlet checks the ?token= access token against the {oid} path
// parameter. Owners may follow any outlet.
func authorizeOutlet(r *http.Request, jwtSecret string) (uuid.UUID, int, error) {
	token := r.URL.Query().Get("token")
	if token == "" {
		return uuid.Nil, http.StatusUnauthorized, errMissingToken
	}
	claims, err := auth.ValidateToken(jwtSecret, token)
	if err != nil {
		return uuid.Nil, http.StatusUnauthorized, errBadToken
	}
	outletID, err := uuid.Parse(chi.URLParam(r, "oid"))
	if err != nil {
		return uuid.Nil, http.StatusBadRequest, errBadOutlet
	}
	if claims.Role != enum.UserRoleOwner && claims.OutletID != outletID {
		return uuid.Nil, http.StatusForbidden, errOutletDenied
	}
	return outletID, http.StatusOK, nil
}

// ServeWS upgrades GET /ws/outlets/{oid}/menu?token=JWT onto the outlet's feed.
func ServeWS(hub *Hub, jwtSecret string, w http.ResponseWriter, r *http.Request) {
	outletID, status, err := authorizeOutlet(r, jwtSecret)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Str("outlet_id", outletID.String()).Msg("websocket upgrade")
		return
	}

	c := &Client{hub: hub, conn: conn, outletID: outletID, send: make(chan []byte, sendBuffer)}
	if !hub.add(c) {
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// readPump drains the connection so pongs and close frames are processed.
// The feed is one-way: anything a terminal sends is discarded.
func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err == nil {
			continue
		}
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
			log.Warn().Err(err).Str("outlet_id", c.outletID.String()).Msg("websocket closed unexpectedly")
		}
		return
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.writeBatch(msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// writeBatch sends first plus whatever else is already queued as one
// newline-separated text frame.
func (c *Client) writeBatch(first []byte) error {
	w, err := c.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	if err := writeQueued(w, first, c.send); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func writeQueued(w io.Writer, first []byte, queue chan []byte) error {
	if _, err := w.Write(first); err != nil {
		return err
	}
	for n := len(queue); n > 0; n-- {
		msg, ok := <-queue
		if !ok {
			return nil
		}
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
		if _, err := w.Write(msg); err != nil {
			return err
		}
	}
	return nil
}
