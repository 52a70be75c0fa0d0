package ws

import (
	"time"

	"clinic-agenda/internal/domain/event"
	"clinic-agenda/internal/tenancy"

	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"
)

const (
	sendBufferSize = 256
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Conn abstracts a websocket connection for testability.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one socket of an authenticated member
type Client struct {
	ID    string
	Scope tenancy.Scope
	Send  chan []byte
	rooms []string
	conn  Conn
}

func NewClient(scope tenancy.Scope, conn Conn) *Client {
	return &Client{
		ID:    uuid.NewString(),
		Scope: scope,
		Send:  make(chan []byte, sendBufferSize),
		rooms: []string{ownRoom(scope)},
		conn:  conn,
	}
}

// enqueue drops the frame when the client buffer is full. Send must not be closed yet.
func (c *Client) enqueue(frame []byte) {
	select {
	case c.Send <- frame:
	default:
	}
}

// writePump writes queued frames until Send is closed
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	deadline, hasDeadline := c.conn.(interface{ SetWriteDeadline(time.Time) error })
	for {
		select {
		case frame, ok := <-c.Send:
			if hasDeadline {
				deadline.SetWriteDeadline(time.Now().Add(writeWait))
			}
			if !ok {
				c.conn.WriteMessage(gorillawebsocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(gorillawebsocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			if hasDeadline {
				deadline.SetWriteDeadline(time.Now().Add(writeWait))
			}
			if err := c.conn.WriteMessage(gorillawebsocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func ownRoom(scope tenancy.Scope) string {
	return event.RoomForUser(scope.UserID)
}
