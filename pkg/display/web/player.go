package web

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/thelolagemann/pixel8/internal/ppu"
	"github.com/thelolagemann/pixel8/pkg/display"
	"github.com/thelolagemann/pixel8/pkg/log"
)

// frameCacheSize is the number of encoded frames mirrored by clients.
const frameCacheSize = 64

// playerActions maps the controls a client may send to the host
// actions they perform.
var playerActions = map[PlayerEvent]display.Action{
	PausePlay:    display.ActionTogglePause,
	Step:         display.ActionStep,
	Reset:        display.ActionReset,
	CyclePalette: display.ActionCyclePalette,
	SaveState:    display.ActionSaveState,
	LoadState:    display.ActionLoadState,
}

// Player encodes the frames of the emulator for the hub's clients
// and applies the controls they send.
type Player struct {
	hub *hub
	emu display.Emulator
	log log.Logger

	frameCache    *cache
	currentFrame  []byte
	framesSkipped int

	mu sync.Mutex
}

func newPlayer(h *hub, emu display.Emulator, logger log.Logger) *Player {
	return &Player{
		hub:          h,
		emu:          emu,
		log:          logger,
		frameCache:   newCache(frameCacheSize),
		currentFrame: make([]byte, ppu.ScreenWidth*ppu.ScreenHeight*4),
	}
}

// handleFrame converts an RGB frame to RGBA and sends it to every
// client, either as encoded data or as the index of an identical
// frame they already hold.
func (p *Player) handleFrame(f []byte) {
	p.hub.mu.Lock()
	compression, level := p.hub.compression, p.hub.compressionLevel
	skipping, caching := p.hub.frameSkipping, p.hub.frameCaching
	p.hub.mu.Unlock()

	messages := p.encode(f, compression, level, skipping, caching)
	for _, msg := range messages {
		p.hub.sendAll(msg)
	}
}

func (p *Player) encode(f []byte, compression bool, level int, skipping, caching bool) [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	dirtied := false
	for i := 0; i < ppu.ScreenHeight*ppu.ScreenWidth; i++ {
		r, g, b := f[i*3], f[i*3+1], f[i*3+2]
		if p.currentFrame[i*4] != r || p.currentFrame[i*4+1] != g || p.currentFrame[i*4+2] != b {
			dirtied = true
		}

		p.currentFrame[i*4] = r
		p.currentFrame[i*4+1] = g
		p.currentFrame[i*4+2] = b
		p.currentFrame[i*4+3] = 255
	}

	if !dirtied && skipping {
		p.framesSkipped++
		return nil
	}

	var messages [][]byte
	if p.framesSkipped > 0 && skipping {
		skipBuf := make([]byte, 4)
		binary.LittleEndian.PutUint32(skipBuf, uint32(p.framesSkipped))
		messages = append(messages, append([]byte{FrameSkip}, skipBuf...))
		p.framesSkipped = 0
	}

	output := append([]byte(nil), p.currentFrame...)
	if compression {
		var err error
		output, err = cbrotli.Encode(p.currentFrame, cbrotli.WriterOptions{
			Quality: level,
		})
		if err != nil {
			p.log.Errorf("web: compressing frame: %v", err)
			return messages
		}
	}

	p.frameCache.Lock()
	defer p.frameCache.Unlock()
	p.frameCache.enabled = caching

	cacheBuf := make([]byte, 2)
	hash := xxhash.Sum64(output)
	if idx := p.frameCache.index(hash); idx != -1 {
		binary.LittleEndian.PutUint16(cacheBuf, uint16(idx))
		return append(messages, append([]byte{FrameCache}, cacheBuf...))
	}

	binary.LittleEndian.PutUint16(cacheBuf, uint16(p.frameCache.add(hash, output)))
	header := []byte{Frame, cacheBuf[0], cacheBuf[1], 0}
	if compression {
		header[3] = 1
	}
	return append(messages, append(header, output...))
}

// sync returns the messages that bring a new client up to date
// with the current frame and frame cache.
func (p *Player) sync() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	frameData, err := cbrotli.Encode(p.currentFrame, cbrotli.WriterOptions{
		Quality: 9,
	})
	if err != nil {
		p.log.Errorf("web: compressing sync frame: %v", err)
		return nil
	}
	messages := [][]byte{append([]byte{FrameSync}, frameData...)}

	p.frameCache.RLock()
	defer p.frameCache.RUnlock()

	var data []byte
	for i, c := range p.frameCache.cache {
		if len(c.data) == 0 {
			continue
		}

		// calculate length of cache item and index
		var length, idx = make([]byte, 4), make([]byte, 2)
		binary.LittleEndian.PutUint32(length, uint32(len(c.data)))
		binary.LittleEndian.PutUint16(idx, uint16(i))

		data = append(data, length...)
		data = append(data, idx...)
		data = append(data, c.data...)
	}

	return append(messages, append([]byte{FrameCacheSync}, data...))
}

// control applies a control sent by c and informs the other clients
// of it.
func (p *Player) control(c *Client, e PlayerEvent) {
	action, ok := playerActions[e]
	if !ok {
		p.log.Errorf("web: client %d sent unknown control %d", c.ID, e)
		return
	}
	if err := display.Perform(p.emu, action, nil); err != nil {
		p.log.Errorf("web: client %d: %v", c.ID, err)
		p.hub.sendTo(c, append([]byte{PlayerInfo, e, 0}, err.Error()...))
		return
	}

	p.hub.mu.Lock()
	info := p.hub.info()
	p.hub.mu.Unlock()
	p.hub.sendAll([]byte{PlayerInfo, e, 1, info})
}
