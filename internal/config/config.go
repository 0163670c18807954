package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port     string
	DBDriver string
	DBDSN    string
	DBSeed   bool
	LogFile  string
	LogLevel string

	CORSOrigins     string
	SlotMinutes     int
	RateLimitPerMin int
	BodyLimitBytes  int
}

var drivers = map[string]bool{"sqlite": true, "postgres": true, "mysql": true, "memory": true}

func Load() (Config, error) {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		DBDriver:    strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DBDSN:       getenv("DB_DSN", "tablefinder.db"), // sqlite file in working dir
		LogFile:     os.Getenv("LOG_FILE"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		CORSOrigins: getenv("CORS_ORIGINS", "*"),
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DBDSN = url
	}
	if !drivers[cfg.DBDriver] {
		return Config{}, fmt.Errorf("invalid DB_DRIVER %q (want sqlite, postgres, mysql or memory)", cfg.DBDriver)
	}

	seed, err := strconv.ParseBool(getenv("DB_SEED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid DB_SEED: %w", err)
	}
	cfg.DBSeed = seed

	if cfg.SlotMinutes, err = intEnv("SLOT_MINUTES", 0, 0); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitPerMin, err = intEnv("RATE_LIMIT_PER_MIN", 60, 1); err != nil {
		return Config{}, err
	}
	if cfg.BodyLimitBytes, err = intEnv("BODY_LIMIT_BYTES", 1<<20, 1); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the fiber listen address.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func intEnv(k string, def, min int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < min {
		return 0, fmt.Errorf("invalid %s %q (want integer >= %d)", k, v, min)
	}
	return n, nil
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
