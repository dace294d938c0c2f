package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/yepeleya/jig-projet/auth"
	"github.com/yepeleya/jig-projet/scoring"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	AdminKey      string
	JuryTokenSalt string
	IPHashSalt    string
	RedisURL      string
	LogLevel      slog.Level

	Weights scoring.Weights
	Scale   scoring.Scale
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var logLevel string

	fs := flag.NewFlagSet("jig-projet", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.RedisURL, "redis", "", "Redis URL for the ranking cache (empty disables it)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key (prefer env)")
	fs.StringVar(&cfg.JuryTokenSalt, "jury-salt", "", "Jury token salt (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Voter IP hash salt (prefer env, derived from the jury salt if unset)")

	// Scoring; NaN marks "not given on the command line"
	nan := math.NaN()
	juryWeight := fs.Float64("jury-weight", nan, "Jury weight in the final score")
	publicWeight := fs.Float64("public-weight", nan, "Public weight in the final score")
	scoreMin := fs.Float64("score-min", nan, "Lowest accepted vote value")
	scoreMax := fs.Float64("score-max", nan, "Highest accepted vote value")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", logLevel)
		}
	}

	// Secrets - MUST be provided
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}

	if cfg.JuryTokenSalt == "" {
		cfg.JuryTokenSalt = os.Getenv("JURY_TOKEN_SALT")
	}
	if cfg.JuryTokenSalt == "" {
		return Config{}, errors.New("JURY_TOKEN_SALT required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = auth.DeriveKey(cfg.JuryTokenSalt, "ip-hash")
	}

	var err error
	if cfg.Weights.Jury, err = floatSetting(*juryWeight, "JURY_WEIGHT", scoring.DefaultWeights.Jury); err != nil {
		return Config{}, err
	}
	if cfg.Weights.Public, err = floatSetting(*publicWeight, "PUBLIC_WEIGHT", scoring.DefaultWeights.Public); err != nil {
		return Config{}, err
	}
	if cfg.Scale.Min, err = floatSetting(*scoreMin, "SCORE_MIN", scoring.DefaultScale.Min); err != nil {
		return Config{}, err
	}
	if cfg.Scale.Max, err = floatSetting(*scoreMax, "SCORE_MAX", scoring.DefaultScale.Max); err != nil {
		return Config{}, err
	}

	if _, err := scoring.NewAggregator(cfg.Weights, cfg.Scale); err != nil {
		return Config{}, fmt.Errorf("invalid scoring settings: %w", err)
	}

	return cfg, nil
}

// floatSetting resolves flag, then env, then default.
func floatSetting(flagValue float64, env string, def float64) (float64, error) {
	if !math.IsNaN(flagValue) {
		return flagValue, nil
	}
	raw := strings.TrimSpace(os.Getenv(env))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", env)
	}
	return v, nil
}
