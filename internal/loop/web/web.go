// Package web serves the game to browsers: an HTML canvas page plus a
// websocket that streams session snapshots and receives key state.
package web

import (
	"context"
	_ "embed"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tomz197/brainrots/internal/loop/config"
	"github.com/tomz197/brainrots/internal/object"
)

//go:embed index.html
var htmlPage string

// Options configures the web host.
type Options struct {
	Bounds  object.Bounds // Zero means the default world size
	FPS     int           // Zero means config.ClientTargetFPS
	Seed    int64         // Non-zero seeds every connection's session identically
	SSHHost string        // Shown on the page as the terminal alternative
	Logger  *zap.Logger
}

// Handler routes the page, the websocket endpoint and a health check.
type Handler struct {
	ctx       context.Context
	mux       *http.ServeMux
	opts      Options
	frameTime time.Duration
	page      string
	upgrader  websocket.Upgrader
	log       *zap.Logger
}

// NewHandler creates the web host. Connections are told to shut down and
// closed when ctx is cancelled.
func NewHandler(ctx context.Context, opts Options) *Handler {
	if opts.Bounds.Width <= 0 || opts.Bounds.Height <= 0 {
		opts.Bounds = object.Bounds{Width: config.WorldWidth, Height: config.WorldHeight}
	}
	if opts.FPS <= 0 {
		opts.FPS = config.ClientTargetFPS
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	h := &Handler{
		ctx:       ctx,
		mux:       http.NewServeMux(),
		opts:      opts,
		frameTime: time.Second / time.Duration(opts.FPS),
		page:      strings.ReplaceAll(htmlPage, "{{.SSHHost}}", opts.SSHHost),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  2048,
			WriteBufferSize: 8192,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: opts.Logger,
	}
	h.mux.HandleFunc("/", h.servePage)
	h.mux.HandleFunc("/ws", h.serveWS)
	h.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(h.page))
}

func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	var rng object.Rand
	if h.opts.Seed != 0 {
		rng = rand.New(rand.NewSource(h.opts.Seed))
	}
	c := newConn(ws, h.opts.Bounds, rng, h.log.With(zap.String("remote", r.RemoteAddr)))

	c.log.Info("player connected")
	go c.writer()
	go c.run(h.ctx, h.frameTime)
	c.reader()
}
