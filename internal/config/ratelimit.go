package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig drives the fixed-window request limiter.  The window and
// quota use the same variable names the deployed client configuration already
// relies on.
type RateLimitConfig struct {
	Enabled bool
	Window  time.Duration // length of each counting window
	Max     int           // requests allowed per window
	Prefix  string        // redis key prefix
}

// LoadRateLimitConfig reads the limiter settings from the environment,
// clamping nonsensical values to safe defaults.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Window:  time.Duration(envInt("RATE_LIMIT_WINDOW_MS", 60_000)) * time.Millisecond,
		Max:     envInt("RATE_LIMIT_MAX", 100),
		Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Max < 1 {
		cfg.Max = 1
	}
	return cfg
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}
