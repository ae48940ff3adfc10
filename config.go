package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	PowerURL     string
	PowerTimeout time.Duration
	PowerEnabled bool
	StacURL      string
	StacTimeout  time.Duration
}

// mustConfig loads a .env file when present, then reads settings from the
// environment with defaults. Panics on unparseable durations.
func mustConfig() Config {
	_ = godotenv.Load()

	return Config{
		Port:         getenv("PORT", "8080"),
		PowerURL:     getenv("POWER_URL", "https://power.larc.nasa.gov"),
		PowerTimeout: mustDuration("POWER_TIMEOUT", "8s"),
		PowerEnabled: getenv("POWER_ENABLED", "true") != "false",
		StacURL:      getenv("STAC_URL", "https://planetarycomputer.microsoft.com"),
		StacTimeout:  mustDuration("STAC_TIMEOUT", "5s"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustDuration(k, def string) time.Duration {
	v := getenv(k, def)
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		panic(fmt.Sprintf("invalid %s: %q", k, v))
	}
	return d
}
