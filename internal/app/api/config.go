package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultMinUserAge applies when MIN_USER_AGE is not set.
const DefaultMinUserAge = 18

// Config carries environment-driven settings for the API process.
type Config struct {
	Port        string
	PostgresDSN string
	MinUserAge  int
}

// LoadConfig reads environment variables, applies defaults, and validates
// basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        envDefault("PORT", "8080"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		MinUserAge:  DefaultMinUserAge,
	}
	if raw := strings.TrimSpace(os.Getenv("MIN_USER_AGE")); raw != "" {
		years, err := strconv.Atoi(raw)
		if err != nil || years <= 0 {
			return Config{}, fmt.Errorf("MIN_USER_AGE must be a positive integer")
		}
		cfg.MinUserAge = years
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
