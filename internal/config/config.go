package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	GatewayModeREST  = "rest"
	GatewayModeLocal = "local"
)

type Config struct {
	ListenAddr string
	LogLevel   string

	GatewayMode   string
	GatewayURL    string
	GatewayAPIKey string
	DatabaseURL   string

	BootstrapAdminEmail    string
	BootstrapAdminPassword string

	SessionSecret []byte
	SessionCookie string
	CookieSecure  bool
	ViewIdleMin   int

	KafkaBrokers       []string
	ProductEventsTopic string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		ListenAddr: EnvDefault("LISTEN_ADDR", ":8080"),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		GatewayMode:   strings.ToLower(EnvDefault("GATEWAY_MODE", GatewayModeREST)),
		GatewayURL:    os.Getenv("GATEWAY_URL"),
		GatewayAPIKey: os.Getenv("GATEWAY_API_KEY"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		BootstrapAdminEmail:    os.Getenv("BOOTSTRAP_ADMIN_EMAIL"),
		BootstrapAdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),

		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),
		SessionCookie: EnvDefault("SESSION_COOKIE", "user"),
		CookieSecure:  EnvBoolDefault("COOKIE_SECURE", true),
		ViewIdleMin:   EnvIntDefault("VIEW_IDLE_MINUTES", 30),

		KafkaBrokers:       CSV(os.Getenv("KAFKA_BROKERS")),
		ProductEventsTopic: EnvDefault("PRODUCT_EVENTS_TOPIC", "product_events"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.SessionSecret) == 0 {
		return fmt.Errorf("missing required env SESSION_SECRET")
	}
	switch c.GatewayMode {
	case GatewayModeREST:
		if c.GatewayURL == "" {
			return fmt.Errorf("missing required env GATEWAY_URL")
		}
	case GatewayModeLocal:
		if c.DatabaseURL == "" {
			return fmt.Errorf("missing required env DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown GATEWAY_MODE %q", c.GatewayMode)
	}
	return nil
}

func (c *Config) SearchEnabled() bool { return c.ESURL != "" }

func (c *Config) EventsEnabled() bool { return len(c.KafkaBrokers) > 0 }

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
