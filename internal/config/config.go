package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Mode       string `mapstructure:"mode"`
	Port       int    `mapstructure:"port"`
	LogLevel   string `mapstructure:"log_level"`
	StaticPath string `mapstructure:"static_path"`
	Secret     string `mapstructure:"secret"`
	JWTSecret  string `mapstructure:"jwt_secret"`

	WS   WSConfig   `mapstructure:"ws"`
	Live LiveConfig `mapstructure:"live"`
	Chat ChatConfig `mapstructure:"chat"`
	RTC  RTCConfig  `mapstructure:"rtc"`
}

type WSConfig struct {
	ReadLimit  int64         `mapstructure:"read_limit"`
	SendBuffer int           `mapstructure:"send_buffer"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	WriteWait  time.Duration `mapstructure:"write_wait"`
}

type LiveConfig struct {
	Authorize                bool   `mapstructure:"authorize"`
	PruneViewersOnDisconnect bool   `mapstructure:"prune_viewers_on_disconnect"`
	EndOnOwnerDisconnect     bool   `mapstructure:"end_on_owner_disconnect"`
	Backpressure             string `mapstructure:"backpressure"`
}

type ChatConfig struct {
	ChunkDelay time.Duration `mapstructure:"chunk_delay"`
	Rate       float64       `mapstructure:"rate"`
	Burst      int           `mapstructure:"burst"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Model      string        `mapstructure:"model"`
	APIKey     string        `mapstructure:"api_key"`
}

type ICEServer struct {
	URLs       []string `mapstructure:"urls"`
	Username   string   `mapstructure:"username"`
	Credential string   `mapstructure:"credential"`
}

type RTCConfig struct {
	ICEServers []ICEServer `mapstructure:"ice_servers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("static_path", "./web")
	v.SetDefault("secret", "change-me")
	v.SetDefault("jwt_secret", "")

	// Chat attachments travel inside socket frames.
	v.SetDefault("ws.read_limit", 5<<20)
	v.SetDefault("ws.send_buffer", 256)
	v.SetDefault("ws.ping_period", "54s")
	v.SetDefault("ws.write_wait", "5s")

	v.SetDefault("live.authorize", true)
	v.SetDefault("live.prune_viewers_on_disconnect", false)
	v.SetDefault("live.end_on_owner_disconnect", false)
	v.SetDefault("live.backpressure", "kick")

	v.SetDefault("chat.chunk_delay", "30ms")
	v.SetDefault("chat.rate", 1.0)
	v.SetDefault("chat.burst", 3)
	v.SetDefault("chat.timeout", "60s")
	v.SetDefault("chat.model", "gemini-2.0-flash-lite")
	v.SetDefault("chat.api_key", "")

	v.SetDefault("rtc.ice_servers", []map[string]any{
		{"urls": []string{"stun:stun.l.google.com:19302"}},
	})
}

// Load reads config/config.<CONFIG_ENV>.yaml, then LIVE_* environment
// variables, then any flags that were set explicitly.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix("live")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	env := v.GetString("config-env")
	if env == "" {
		env = os.Getenv("CONFIG_ENV")
	}
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)
	v.SetConfigFile(fileName)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Bool("authorize", cfg.Live.Authorize).Msg("config ready")
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.WS.SendBuffer <= 0 {
		return fmt.Errorf("ws.send_buffer must be positive")
	}
	if c.WS.PingPeriod <= 0 || c.WS.WriteWait <= 0 {
		return fmt.Errorf("ws.ping_period and ws.write_wait must be positive")
	}
	switch c.Live.Backpressure {
	case "kick", "drop":
	default:
		return fmt.Errorf("live.backpressure must be one of kick|drop, got %q", c.Live.Backpressure)
	}
	return nil
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}
