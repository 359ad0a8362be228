package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type APIConfig struct {
	Addr        string
	ContentPath string
	Seed        int64
}

type SimConfig struct {
	ContentPath string
	TickEvery   time.Duration
	MaxTicks    int
	Seed        int64
	RunOnce     bool
}

type CLIConfig struct {
	APIBaseURL string
}

// LoadAPIFromEnv reads the API server configuration. A .env file is loaded
// first when present; real environment variables win.
func LoadAPIFromEnv() APIConfig {
	_ = godotenv.Load()

	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("MOGUL_API_ADDR", ":8080")
	}
	return APIConfig{
		Addr:        addr,
		ContentPath: strings.TrimSpace(os.Getenv("MOGUL_CONTENT")),
		Seed:        envInt64Default("MOGUL_SEED", 0),
	}
}

func LoadSimFromEnv() SimConfig {
	_ = godotenv.Load()

	return SimConfig{
		ContentPath: strings.TrimSpace(os.Getenv("MOGUL_CONTENT")),
		TickEvery:   envDurationDefault("MOGUL_TICK_EVERY", time.Second),
		MaxTicks:    int(envInt64Default("MOGUL_MAX_TICKS", 100_000)),
		Seed:        envInt64Default("MOGUL_SEED", 0),
		RunOnce:     envBoolDefault("MOGUL_SIM_RUN_ONCE", false),
	}
}

func LoadCLIFromEnv() CLIConfig {
	_ = godotenv.Load()

	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("MGL_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
