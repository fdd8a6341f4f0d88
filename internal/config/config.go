package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	// Scheduler tuning. Zero values keep the calibrated defaults.
	TargetRetention float64
	DecayExponent   float64
	LapsePenalty    float64
	SeedStability   float64

	// Mastery ladder cutoffs in days of stability.
	FragileCutoff    float64
	DevelopingCutoff float64
	SolidCutoff      float64
	MasteredCutoff   float64

	// Background refresh workers for mastery stats.
	StatsWorkerCount int
	StatsQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:     envOr("ADDR", ":8080"),
		DBPath:   envOr("DB_PATH", "file:memora.db"),
		LogLevel: envOr("LOG_LEVEL", "INFO"),

		TargetRetention: envFloatOr("TARGET_RETENTION", 0),
		DecayExponent:   envFloatOr("DECAY_EXPONENT", 0),
		LapsePenalty:    envFloatOr("LAPSE_PENALTY", 0),
		SeedStability:   envFloatOr("SEED_STABILITY", 0),

		FragileCutoff:    envFloatOr("FRAGILE_CUTOFF", 0),
		DevelopingCutoff: envFloatOr("DEVELOPING_CUTOFF", 0),
		SolidCutoff:      envFloatOr("SOLID_CUTOFF", 0),
		MasteredCutoff:   envFloatOr("MASTERED_CUTOFF", 0),

		StatsWorkerCount: envIntOr("STATS_WORKER_COUNT", 1),
		StatsQueueSize:   envIntOr("STATS_QUEUE_SIZE", 32),
	}
}

// Validate checks the loaded configuration, collecting every problem into one
// error so a misconfigured deployment reports all mistakes at once. Scheduler
// and mastery tunables are validated by their own constructors; this covers
// only the server-level settings.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not a valid level", c.LogLevel))
	}
	if c.StatsWorkerCount <= 0 {
		problems = append(problems, "STATS_WORKER_COUNT must be positive")
	}
	if c.StatsQueueSize <= 0 {
		problems = append(problems, "STATS_QUEUE_SIZE must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
