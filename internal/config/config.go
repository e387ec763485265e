package config

import (
	"fmt"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/samber/lo"
)

// Config aggregates every configuration section of the service.
type Config struct {
	Server      ServerConfig
	Logging     LoggingConfig
	Account     AccountConfig
	NilDB       NilDBConfig
	Supabase    SupabaseConfig
	Privy       PrivyConfig
	ClientState ClientStateConfig
	Web         WebConfig
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config
	cfg.Server = server

	sections := []struct {
		name string
		dst  any
	}{
		{"logging", &cfg.Logging},
		{"account", &cfg.Account},
		{"nildb", &cfg.NilDB},
		{"supabase", &cfg.Supabase},
		{"privy", &cfg.Privy},
		{"client state", &cfg.ClientState},
		{"web", &cfg.Web},
	}
	for _, s := range sections {
		if _, err := env.UnmarshalFromEnviron(s.dst); err != nil {
			return nil, fmt.Errorf("load %s config: %w", s.name, err)
		}
	}

	cfg.Supabase.URL = strings.TrimRight(strings.TrimSpace(cfg.Supabase.URL), "/")
	cfg.Privy.APIURL = strings.TrimRight(strings.TrimSpace(cfg.Privy.APIURL), "/")

	return &cfg, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr              string
	Port              string        `env:"PORT,default=8080"`
	ReadHeaderTimeout time.Duration `env:"SERVER_READ_HEADER_TIMEOUT,default=5s"`
	IdleTimeout       time.Duration `env:"SERVER_IDLE_TIMEOUT,default=120s"`
	ShutdownTimeout   time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=10s"`
}

// loadServerConfig resolves the listen address from PORT.
func loadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("load server config: %w", err)
	}

	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "8080"
	}

	switch {
	case strings.Contains(port, " "):
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	case strings.Contains(port, ":"):
		// ":8080" or "127.0.0.1:8080"
		cfg.Addr = port
	default:
		cfg.Addr = ":" + port
	}
	return cfg, nil
}

// LoggingConfig selects the logger backend and metadata.
type LoggingConfig struct {
	Env       string `env:"APP_ENV,default=dev"`
	Version   string `env:"APP_VERSION,default=dev"`
	Backend   string `env:"LOG_BACKEND"`
	Debug     bool   `env:"LOG_DEBUG,default=false"`
	AddSource bool   `env:"LOG_ADD_SOURCE,default=false"`
}

// AccountConfig carries the values used to address account records.
type AccountConfig struct {
	// Salt is the UUID namespace for name-based record keys.
	Salt        string `env:"SALT"`
	AdminAPIKey string `env:"ADMIN_API_KEY"`
}

// NilDBConfig describes the nilDB cluster and its collections.
type NilDBConfig struct {
	NodeURLs             string        `env:"NILDB_NODE_URLS"`
	APIToken             string        `env:"NILDB_API_TOKEN"`
	UserCollectionID     string        `env:"USER_COLLECTION_ID"`
	ChatsCollectionID    string        `env:"CHATS_COLLECTION_ID"`
	MessagesCollectionID string        `env:"MESSAGES_COLLECTION_ID"`
	Timeout              time.Duration `env:"NILDB_TIMEOUT,default=15s"`
}

// Nodes returns the configured node base URLs.
func (c NilDBConfig) Nodes() []string {
	return splitList(c.NodeURLs)
}

// Enabled reports whether at least one node is configured.
func (c NilDBConfig) Enabled() bool {
	return len(c.Nodes()) > 0
}

// SupabaseConfig holds admin and token verification credentials.
type SupabaseConfig struct {
	URL            string `env:"SUPABASE_URL"`
	ServiceRoleKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`
	JWTSecret      string `env:"SUPABASE_JWT_SECRET"`
}

// AdminEnabled reports whether account deletion credentials are present.
func (c SupabaseConfig) AdminEnabled() bool {
	return c.URL != "" && c.ServiceRoleKey != ""
}

// PrivyConfig holds app credentials and the token verification key.
type PrivyConfig struct {
	AppID           string `env:"PRIVY_APP_ID"`
	AppSecret       string `env:"PRIVY_APP_SECRET"`
	APIURL          string `env:"PRIVY_API_URL,default=https://api.privy.io"`
	VerificationKey string `env:"PRIVY_VERIFICATION_KEY"`
}

// AdminEnabled reports whether account deletion credentials are present.
func (c PrivyConfig) AdminEnabled() bool {
	return c.AppID != "" && c.AppSecret != ""
}

// ClientStateConfig describes the storage tiers of the client state store.
type ClientStateConfig struct {
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB,default=0"`
	SessionTTL    time.Duration `env:"CLIENT_SESSION_TTL,default=12h"`
}

// WebConfig covers browser facing settings.
type WebConfig struct {
	AllowedOrigins    string `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:3000"`
	UTMPersonaMapPath string `env:"UTM_PERSONA_MAP_PATH"`
}

// Origins returns the CORS allow list.
func (c WebConfig) Origins() []string {
	return splitList(c.AllowedOrigins)
}

func splitList(raw string) []string {
	parts := lo.Map(strings.Split(raw, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Compact(parts)
}
