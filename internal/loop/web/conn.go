package web

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tomz197/brainrots/internal/loop/session"
	"github.com/tomz197/brainrots/internal/object"
)

// Message types on the wire.
const (
	MsgInput    = "input"    // browser -> host: held directions
	MsgReset    = "reset"    // browser -> host: restart the session
	MsgSnapshot = "snapshot" // host -> browser: one frame
	MsgShutdown = "shutdown" // host -> browser: host is stopping
)

// Envelope wraps every websocket message.
type Envelope struct {
	Type  string            `json:"type"`
	Input *object.Input     `json:"input,omitempty"`
	Data  *session.Snapshot `json:"data,omitempty"`
}

// conn owns one browser's session. The reader stores the latest input, run
// ticks the session and queues snapshots, writer drains the queue.
type conn struct {
	ws   *websocket.Conn
	sess *session.Session
	send chan []byte
	done chan struct{} // Closed when the reader exits
	log  *zap.Logger

	mu    sync.Mutex
	input object.Input
	reset bool
}

func newConn(ws *websocket.Conn, bounds object.Bounds, rng object.Rand, log *zap.Logger) *conn {
	opts := []session.Option{session.WithLogger(log)}
	if rng != nil {
		opts = append(opts, session.WithRand(rng))
	}
	return &conn{
		ws:   ws,
		sess: session.New(bounds, opts...),
		send: make(chan []byte, 8),
		done: make(chan struct{}),
		log:  log,
	}
}

func (c *conn) reader() {
	defer func() {
		close(c.done)
		c.ws.Close()
	}()

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("websocket read error", zap.Error(err))
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.log.Debug("bad message", zap.Error(err))
			continue
		}

		c.mu.Lock()
		switch env.Type {
		case MsgInput:
			if env.Input != nil {
				c.input = *env.Input
			}
		case MsgReset:
			c.reset = true
		default:
			c.log.Debug("unknown message type", zap.String("type", env.Type))
		}
		c.mu.Unlock()
	}
}

// run ticks the session at the frame rate until the reader exits or ctx ends.
func (c *conn) run(ctx context.Context, frameTime time.Duration) {
	defer func() {
		close(c.send)
		c.log.Info("player disconnected",
			zap.Int("score", c.sess.Score()),
			zap.Int("collected", c.sess.Collected()),
		)
	}()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-c.done:
			return
		case <-ctx.Done():
			c.queueWait(Envelope{Type: MsgShutdown}, time.Second)
			return
		case now := <-ticker.C:
			c.mu.Lock()
			in, reset := c.input, c.reset
			c.reset = false
			c.mu.Unlock()

			if reset {
				c.sess.Reset()
				c.log.Debug("session restarted")
			}
			deltaMs := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now

			snap := c.sess.Tick(deltaMs, in)
			c.queue(Envelope{Type: MsgSnapshot, Data: &snap})
		}
	}
}

// queue drops the message when the browser falls behind. Snapshots are
// full state, so the next one supersedes it.
func (c *conn) queue(env Envelope) {
	b, ok := c.marshal(env)
	if !ok {
		return
	}
	select {
	case c.send <- b:
	default:
	}
}

// queueWait blocks until the message is queued, the browser is gone or
// timeout passes.
func (c *conn) queueWait(env Envelope, timeout time.Duration) {
	b, ok := c.marshal(env)
	if !ok {
		return
	}
	select {
	case c.send <- b:
	case <-c.done:
	case <-time.After(timeout):
	}
}

func (c *conn) marshal(env Envelope) ([]byte, bool) {
	b, err := json.Marshal(env)
	if err != nil {
		c.log.Error("marshal message", zap.Error(err))
		return nil, false
	}
	return b, true
}

func (c *conn) writer() {
	defer c.ws.Close()
	for msg := range c.send {
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
