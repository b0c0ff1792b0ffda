// Package web provides a display driver that streams frames over
// websockets to browser clients. Frames are sent as RGBA, optionally
// brotli compressed, and deduplicated against a cache that clients
// mirror.
package web

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/thelolagemann/pixel8/pkg/display"
	"github.com/thelolagemann/pixel8/pkg/display/event"
	"github.com/thelolagemann/pixel8/pkg/log"
)

func init() {
	driver := &webDriver{log: log.New()}
	display.Install("web", driver, []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &driver.addr,
			Type:        "string",
			Description: "The address the websocket server listens on",
		},
	})
}

type webDriver struct {
	addr string
	emu  display.Emulator
	log  log.Logger
	hub  *hub
}

func (w *webDriver) Initialize(emu display.Emulator) {
	w.emu = emu
}

// Start serves clients until the emulator closes its channels.
func (w *webDriver) Start(frames <-chan []byte, events <-chan event.Event) error {
	w.hub = newHub(w.log)
	w.hub.player = newPlayer(w.hub, w.emu, w.log)

	errs := make(chan error, 1)
	go func() { errs <- w.hub.run(w.addr) }()

	for frames != nil || events != nil {
		select {
		case f, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			w.hub.player.handleFrame(f)
		case e, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if msg := w.eventMessage(e); msg != nil {
				w.hub.sendAll(msg)
			}
		}
	}

	return errors.Join(w.hub.stop(), <-errs)
}

// eventMessage encodes an emulator event for clients, or returns
// nil for events clients have no use for.
func (w *webDriver) eventMessage(e event.Event) []byte {
	switch e.Type {
	case event.Title:
		title, _ := e.Data.(string)
		return append([]byte{EmulatorInfo, InfoTitle}, title...)
	case event.Halted:
		var reason string
		if err, ok := e.Data.(error); ok {
			reason = err.Error()
		}
		return append([]byte{EmulatorInfo, InfoHalted}, reason...)
	case event.Sound:
		on, _ := e.Data.(bool)
		b := byte(0)
		if on {
			b = 1
		}
		return []byte{EmulatorInfo, InfoSound, b}
	case event.FrameTime:
		buf := make([]byte, 4)
		if d, ok := e.Data.(time.Duration); ok {
			binary.LittleEndian.PutUint32(buf, uint32(d.Microseconds()))
		}
		return append([]byte{EmulatorInfo, InfoFrameTime}, buf...)
	}
	return nil
}

func (w *webDriver) Stop() error {
	if w.hub == nil {
		return nil
	}
	return w.hub.stop()
}
