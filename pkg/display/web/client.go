package web

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/pixel8/pkg/utils"
)

// Client is a browser connected to the hub.
type Client struct {
	mu       sync.RWMutex
	hub      *hub
	conn     *websocket.Conn
	Send     chan []byte
	ID       uint8
	Metadata struct {
		RemoteAddr string
		UserAgent  string
		Username   string
	}
	avgLatency  uint16
	connectedAt time.Time
}

// latency returns the rolling average round trip time in
// milliseconds.
func (c *Client) latency() uint16 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.avgLatency
}

// identity encodes the client metadata as sent in client lists.
func (c *Client) identity() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var data []byte
	data = append(data, c.Metadata.RemoteAddr...)
	data = append(data, 0)
	data = append(data, c.Metadata.UserAgent...)
	data = append(data, 0)
	data = append(data, c.Metadata.Username...)
	data = append(data, 0)
	data = append(data, c.ID)
	return data
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case SystemMessage:
			if len(message) < 3 {
				continue
			}
			c.hub.mu.Lock()
			switch message[1] {
			case Compression:
				c.hub.compression = message[2] == 1
			case CompressionLevel:
				c.hub.compressionLevel = utils.Clamp(0, int(message[2]), 11)
			case FrameSkipping:
				c.hub.frameSkipping = message[2] == 1
			case FrameCaching:
				c.hub.frameCaching = message[2] == 1
			case RegisterUsername:
				c.mu.Lock()
				c.Metadata.Username = string(message[2:])
				c.mu.Unlock()
				c.hub.mu.Unlock()

				id := c.identity()
				c.hub.sendTo(c, append([]byte{ClientInfo, RegisterUsername, 0xFF}, id...))
				c.hub.sendAllButClient(c, append([]byte{ClientInfo, RegisterUsername}, id...))
				continue
			}
			c.hub.mu.Unlock()

			c.hub.sendAllButClient(c, append([]byte{ClientInfo, message[1]}, message[2:]...))
		case PlayerMessage:
			if len(message) < 2 {
				continue
			}
			c.hub.player.control(c, message[1])
		case KeepAlive:
		case Closing:
			return
		}
	}
}

func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.Send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			c.hub.leave(c)
			// drain until the hub closes Send
			for range c.Send {
			}
			return
		}

		if rtt, err := roundTrip(c.conn.UnderlyingConn()); err == nil {
			c.mu.Lock()
			c.avgLatency = ((c.avgLatency * 9) + uint16(rtt.Milliseconds())) / 10
			c.mu.Unlock()
		}
	}

	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
