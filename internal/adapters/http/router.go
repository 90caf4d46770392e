package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dkeye/Live/internal/adapters/rtc"
	"github.com/dkeye/Live/internal/adapters/signal"
	"github.com/dkeye/Live/internal/app/chat"
	"github.com/dkeye/Live/internal/app/orch"
	"github.com/dkeye/Live/internal/auth"
	"github.com/dkeye/Live/internal/config"
	"github.com/dkeye/Live/internal/domain"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const clientTokenKey = "ct"

// ClientTokenMiddleware gives every browser a stable anonymous token kept
// in the session cookie. It only tags logs; identity comes from auth.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(clientTokenKey).(string)
		if token == "" {
			token = uuid.NewString()
			session.Set(clientTokenKey, token)
			if err := session.Save(); err != nil {
				log.Warn().Err(err).Str("module", "adapters.http").Msg("save client token")
			}
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("module", "adapters.http").
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator, turn *chat.Turn) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(requestLogger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("LiveSessions", store))
	r.Use(ClientTokenMiddleware())
	r.Use(auth.Middleware(cfg.JWTSecret))

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")

	api.GET("/sessions", func(c *gin.Context) {
		list := o.ActiveSessions()
		if list == nil {
			list = []domain.Session{}
		}
		c.JSON(http.StatusOK, gin.H{"sessions": list})
	})

	api.GET("/sessions/:id", func(c *gin.Context) {
		s, ok := o.Session(domain.SessionID(c.Param("id")))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found or has ended"})
			return
		}
		c.JSON(http.StatusOK, s)
	})

	iceConfig := rtc.ICEConfiguration(cfg.RTC.ICEServers)
	api.GET("/rtc/config", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": iceConfig.ICEServers})
	})

	ctrl := signal.NewSignalWSController(o, turn, signal.SettingsFrom(cfg))
	api.GET("/ws", func(c *gin.Context) {
		ctrl.HandleSignal(ctx, c)
	})

	return r
}
