package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the server configuration, loaded from the environment.
type Config struct {
	Addr             string
	BaseURL          string
	AutoplayDelay    time.Duration
	Sensitivity      float64
	MobileBreakpoint float64
}

// Load reads configuration from the environment, applying defaults and
// validating the tunables that are parsed rather than clamped.
func Load() (Config, error) {
	c := Config{
		Addr:             ":" + envOr("PORT", "8080"),
		BaseURL:          strings.TrimRight(os.Getenv("BASE_URL"), "/"),
		AutoplayDelay:    3 * time.Second,
		Sensitivity:      200,
		MobileBreakpoint: 768,
	}

	if v := os.Getenv("AUTOPLAY_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid AUTOPLAY_DELAY %q: %w", v, err)
		}
		c.AutoplayDelay = d
	}
	if v := os.Getenv("SENSITIVITY"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SENSITIVITY %q: %w", v, err)
		}
		c.Sensitivity = f
	}
	if v := os.Getenv("MOBILE_BREAKPOINT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MOBILE_BREAKPOINT %q: %w", v, err)
		}
		c.MobileBreakpoint = f
	}

	return c, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
