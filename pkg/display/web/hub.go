package web

import (
	"context"
	"encoding/binary"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/pixel8/internal/types"
	"github.com/thelolagemann/pixel8/pkg/emulator"
	"github.com/thelolagemann/pixel8/pkg/log"
)

// outbound is a message queued for delivery by the hub. A message
// with a recipient goes to that client only, otherwise it goes to
// every client except the one excluded.
type outbound struct {
	to, except *Client
	data       []byte
}

type hub struct {
	clients map[*Client]bool
	player  *Player

	broadcast            chan outbound
	register, unregister chan *Client
	done                 chan struct{}

	compression      bool
	compressionLevel int
	frameSkipping    bool
	frameCaching     bool
	currentID        uint8

	server *http.Server
	log    log.Logger

	mu sync.Mutex
}

func newHub(logger log.Logger) *hub {
	return &hub{
		clients:          make(map[*Client]bool),
		broadcast:        make(chan outbound, 64),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		done:             make(chan struct{}),
		compression:      true,
		compressionLevel: 7,
		frameSkipping:    true,
		frameCaching:     true,
		log:              logger,
	}
}

// run serves websocket clients on addr and delivers messages to
// them until stop is called.
func (w *hub) run(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(wr http.ResponseWriter, r *http.Request) {
		wr.Header().Set("Access-Control-Allow-Origin", "*")

		conn, err := upgrader.Upgrade(wr, r, nil)
		if err != nil {
			w.log.Errorf("web: upgrading connection from %s: %v", r.RemoteAddr, err)
			return
		}

		c := w.newClient(conn, r)
		select {
		case w.register <- c:
		case <-w.done:
			conn.Close()
			return
		}

		go c.ReadPump()
		go c.WritePump()
	})

	w.server = &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := w.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.log.Errorf("web: serving %s: %v", addr, err)
		}
	}()
	w.log.Infof("web: listening on %s", addr)

	// periodic latency updates
	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-w.done:
			for c := range w.clients {
				close(c.Send)
				delete(w.clients, c)
			}
			return nil
		case c := <-w.register:
			w.clients[c] = true
			w.welcome(c)
		case c := <-w.unregister:
			if _, ok := w.clients[c]; !ok {
				continue
			}
			close(c.Send)
			delete(w.clients, c)

			// notify connected clients that this client has disconnected
			w.deliver(outbound{data: []byte{ClientClosing, c.ID}})
		case msg := <-w.broadcast:
			w.deliver(msg)
		case <-t.C:
			var data []byte
			for c := range w.clients {
				latencyBuf := make([]byte, 2)
				binary.LittleEndian.PutUint16(latencyBuf, c.latency())
				data = append(data, c.ID)
				data = append(data, latencyBuf...)
			}
			w.deliver(outbound{data: append([]byte{ServerInfo}, data...)})
		}
	}
}

// welcome sends a newly registered client the hub settings, the
// list of other clients and the current frame.
func (w *hub) welcome(c *Client) {
	w.mu.Lock()
	settings := []byte{ClientInfo, ClientInfo, w.info(), uint8(w.compressionLevel)}
	w.mu.Unlock()
	w.deliver(outbound{to: c, data: settings})

	var data []byte
	for cl := range w.clients {
		if c == cl {
			continue // skip self
		}
		data = append(data, cl.identity()...)
		data = append(data, '\n')
	}
	if len(data) > 0 {
		// remove last newline to avoid issues with JS
		data = data[:len(data)-1]
	}
	w.deliver(outbound{to: c, data: append([]byte{ClientListSync}, data...)})

	for _, msg := range w.player.sync() {
		w.deliver(outbound{to: c, data: msg})
	}

	// inform everyone else of the new client
	w.deliver(outbound{except: c, data: append([]byte{ClientInfo, RegisterUsername}, c.identity()...)})
}

// deliver must only be called from run, which owns the clients and
// their Send channels.
func (w *hub) deliver(msg outbound) {
	send := func(c *Client) {
		select {
		case c.Send <- msg.data:
		default:
			// too slow to keep up
			close(c.Send)
			delete(w.clients, c)
		}
	}

	if msg.to != nil {
		if w.clients[msg.to] {
			send(msg.to)
		}
		return
	}
	for c := range w.clients {
		if c != msg.except {
			send(c)
		}
	}
}

func (w *hub) queue(msg outbound) {
	select {
	case w.broadcast <- msg:
	case <-w.done:
	}
}

// sendAll queues a message for every client.
func (w *hub) sendAll(message []byte) {
	w.queue(outbound{data: message})
}

// sendTo queues a message for a single client.
func (w *hub) sendTo(client *Client, message []byte) {
	w.queue(outbound{to: client, data: message})
}

// sendAllButClient sends a message to all connected clients except
// the one specified. Used for events such as username registration,
// where the client is the one that initiated the event, so is already
// aware of the registered username.
func (w *hub) sendAllButClient(client *Client, message []byte) {
	w.queue(outbound{except: client, data: message})
}

// leave unregisters a client, if the hub is still running.
func (w *hub) leave(c *Client) {
	select {
	case w.unregister <- c:
	case <-w.done:
	}
}

// stop shuts down the server and disconnects every client.
func (w *hub) stop() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	if w.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return w.server.Shutdown(ctx)
}

// info returns a byte of information containing the emulator
// status and hub settings. The byte is constructed as follows:
//
//	Bit 0: Emulator running
//	Bit 1: Emulator paused
//	Bit 2: Compression enabled
//	Bit 3: Frame skipping enabled
//	Bit 4: Frame caching enabled
//	Bit 5: Emulator halted on an error
//
// The caller must hold w.mu.
func (w *hub) info() byte {
	info := uint8(0)
	if w.player != nil && w.player.emu != nil {
		switch w.player.emu.Status() {
		case emulator.Running:
			info |= types.Bit0
		case emulator.Paused:
			info |= types.Bit1
		case emulator.Errored:
			info |= types.Bit5
		}
	}

	if w.compression {
		info |= types.Bit2
	}
	if w.frameSkipping {
		info |= types.Bit3
	}
	if w.frameCaching {
		info |= types.Bit4
	}

	return info
}

// newClient creates a new client for conn.
func (w *hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.currentID++

	c := &Client{
		hub:         w,
		conn:        conn,
		Send:        make(chan []byte, 256),
		ID:          w.currentID,
		connectedAt: time.Now(),
	}
	c.Metadata.RemoteAddr = r.RemoteAddr
	c.Metadata.UserAgent = r.Header.Get("User-Agent")
	return c
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
