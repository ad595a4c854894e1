package signal

import (
	"context"
	"errors"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/JasonCastel/ChatIRC/internal/app"
	"github.com/JasonCastel/ChatIRC/internal/app/route"
	"github.com/JasonCastel/ChatIRC/internal/config"
	"github.com/JasonCastel/ChatIRC/internal/core"
	"github.com/JasonCastel/ChatIRC/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

// ChatWSController owns the WebSocket side of the protocol: upgrading
// connections, pumping frames, decoding inbound envelopes into router
// calls, and fanning outbound events back out. It is the Broadcaster
// the router delivers through.
type ChatWSController struct {
	Registry *app.Registry
	Router   *route.Router

	cfg     *config.Config
	origins *originPolicy
}

func NewChatWSController(cfg *config.Config, reg *app.Registry) *ChatWSController {
	return &ChatWSController{
		Registry: reg,
		cfg:      cfg,
		origins:  newOriginPolicy(cfg.AllowedOrigins),
	}
}

type WsChatConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsChatConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsChatConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

// HandleChat upgrades the request and starts the session lifecycle. The
// session id is minted here, once per connection, and stays stable until
// the connection terminates.
func (ctl *ChatWSController) HandleChat(ctx context.Context, c *gin.Context) {
	upgrader := websocket.Upgrader{CheckOrigin: ctl.origins.check}
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.cfg.ReadLimit)

	sid := domain.SessionID(uuid.NewString())
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("new WS connection")

	conn := &WsChatConn{
		conn: ws,
		send: make(chan core.Frame, ctl.cfg.SendBuffer),
	}

	ctx, cancel := context.WithCancel(ctx)
	if err := ctl.Router.Connect(sid, conn, cancel); err != nil {
		conn.Close()
		cancel()
		return
	}

	go ctl.writePump(ctx, sid, conn)
	go ctl.readPump(ctx, sid, conn)
}
