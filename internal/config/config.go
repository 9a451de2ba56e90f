package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port       string
	RedisAddr  string
	SessionTTL time.Duration
}

func Load() Config {
	return Config{
		Port:       getenv("PORT", "3000"),
		RedisAddr:  getenv("REDIS_ADDR", "localhost:6379"),
		SessionTTL: getenvHours("SESSION_TTL_HOURS", 72),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvHours(k string, def int) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Hour
		}
	}
	return time.Duration(def) * time.Hour
}
