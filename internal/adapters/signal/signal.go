package signal

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/dkeye/Live/internal/app/chat"
	"github.com/dkeye/Live/internal/app/orch"
	"github.com/dkeye/Live/internal/auth"
	"github.com/dkeye/Live/internal/config"
	"github.com/dkeye/Live/internal/core"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Settings struct {
	ReadLimit  int64
	SendBuffer int
	PingPeriod time.Duration
	WriteWait  time.Duration
	ChatRate   float64
	ChatBurst  int
}

func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		ReadLimit:  cfg.WS.ReadLimit,
		SendBuffer: cfg.WS.SendBuffer,
		PingPeriod: cfg.WS.PingPeriod,
		WriteWait:  cfg.WS.WriteWait,
		ChatRate:   cfg.Chat.Rate,
		ChatBurst:  cfg.Chat.Burst,
	}
}

func (s Settings) pongWait() time.Duration {
	return s.PingPeriod * 10 / 9
}

type SignalWSController struct {
	Orch *orch.Orchestrator
	Turn *chat.Turn

	settings Settings
	limiter  *ChatRateLimiter
	validate *validator.Validate
}

func NewSignalWSController(o *orch.Orchestrator, turn *chat.Turn, s Settings) *SignalWSController {
	return &SignalWSController{
		Orch:     o,
		Turn:     turn,
		settings: s,
		limiter:  NewChatRateLimiter(s.ChatRate, s.ChatBurst),
		validate: newValidator(),
	}
}

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type WsSignalConn struct {
	id   core.ConnID
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool

	// turnMu lets one chat turn stream at a time on this connection.
	turnMu sync.Mutex
}

var _ core.SignalConnection = (*WsSignalConn)(nil)

func (c *WsSignalConn) ID() core.ConnID { return c.id }

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
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

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	identity, _ := auth.UserIDFromContext(c)
	token := c.GetString("client_token")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	conn := &WsSignalConn{
		id:   core.ConnID(uuid.NewString()),
		conn: ws,
		send: make(chan core.Frame, ctl.settings.SendBuffer),
	}
	log.Info().Str("module", "signal").Str("conn", string(conn.id)).Str("client_token", token).Str("user", string(identity)).Msg("new WS connection")

	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Connect(conn, identity, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, conn)
}
