package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr         string
	DatabasePath string

	AppEnv                string
	WSAllowedOrigins      []string
	DevWebSocketsAllowAll bool
}

// LoadFromEnv resolves configuration from the environment. BACKEND_ADDR wins
// over PORT; everything has a workable default so the service starts with an
// empty environment.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		Addr:         os.Getenv("BACKEND_ADDR"),
		DatabasePath: os.Getenv("DATABASE_PATH"),
		AppEnv:       strings.TrimSpace(os.Getenv("APP_ENV")),
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "deck.db"
	}

	if cfg.Addr == "" {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			// If PORT is a bare port, accept ":<port>". If it already includes host, keep it.
			if strings.Contains(port, ":") {
				cfg.Addr = port
			} else {
				cfg.Addr = ":" + port
			}
		}
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	if v := os.Getenv("WS_ALLOWED_ORIGINS"); v != "" {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.WSAllowedOrigins = append(cfg.WSAllowedOrigins, p)
			}
		}
	}

	if v := strings.TrimSpace(os.Getenv("DEV_WEBSOCKETS_ALLOW_ALL")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DevWebSocketsAllowAll = b
		}
	}

	return cfg, nil
}
