package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Server Server
	Logger Logger
	API    API
	Socket Socket
	Creds  Creds
	Toast  Toast
}

// Server is the configuration for the local status endpoint
type Server struct {
	Host string `env:"STATUS_HOST" envDefault:"127.0.0.1"`
	Port int    `env:"STATUS_PORT" envDefault:"8090"`
	Mode string `env:"STATUS_MODE" envDefault:"release"`
}

// Logger is the configuration for the logger
type Logger struct {
	Level        string `env:"LOGGER_LEVEL" envDefault:"info"`
	Mode         string `env:"LOGGER_MODE" envDefault:"production"`
	Encoding     string `env:"LOGGER_ENCODING" envDefault:"json"`
	ColorEnabled bool   `env:"LOGGER_COLOR_ENABLED" envDefault:"true"`
}

// API is the configuration for the portal HTTP API
type API struct {
	BaseURL string        `env:"API_BASE_URL" envDefault:"https://portal.campus.edu"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
}

// Socket is the configuration for the real-time connection
type Socket struct {
	URL              string        `env:"SOCKET_URL" envDefault:"wss://portal.campus.edu/ws"`
	HandshakeTimeout time.Duration `env:"SOCKET_HANDSHAKE_TIMEOUT" envDefault:"10s"`
	RetryDelay       time.Duration `env:"SOCKET_RETRY_DELAY" envDefault:"3s"`
	BackoffBase      time.Duration `env:"SOCKET_BACKOFF_BASE" envDefault:"1s"`
	BackoffCeiling   time.Duration `env:"SOCKET_BACKOFF_CEILING" envDefault:"30s"`
	MaxAttempts      int           `env:"SOCKET_MAX_ATTEMPTS" envDefault:"5"`
	PingInterval     time.Duration `env:"SOCKET_PING_INTERVAL" envDefault:"30s"`
	PongWait         time.Duration `env:"SOCKET_PONG_WAIT" envDefault:"60s"`
	WriteWait        time.Duration `env:"SOCKET_WRITE_WAIT" envDefault:"10s"`
}

// Creds is the configuration for the credential storage chain
type Creds struct {
	ServiceName string `env:"CREDS_SERVICE_NAME" envDefault:"campus-notify"`
	TokenFile   string `env:"CREDS_TOKEN_FILE" envDefault:""`
	CookieFile  string `env:"CREDS_COOKIE_FILE" envDefault:""`
	CookieName  string `env:"CREDS_COOKIE_NAME" envDefault:"campus_auth_token"`
	StateFile   string `env:"CREDS_STATE_FILE" envDefault:""`
}

// Toast is the configuration for the notification sinks
type Toast struct {
	Duration        time.Duration `env:"TOAST_DURATION" envDefault:"8s"`
	DesktopEnabled  bool          `env:"DESKTOP_ENABLED" envDefault:"true"`
	DesktopAppName  string        `env:"DESKTOP_APP_NAME" envDefault:"Campus Portal"`
	DesktopIconPath string        `env:"DESKTOP_ICON_PATH" envDefault:""`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		fmt.Printf("Error loading configuration: %v", err)
		return nil, err
	}
	return cfg, nil
}
