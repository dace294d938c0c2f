/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKey: Shared secret for admin routes (required)
  - JuryTokenSalt: Secret for jury token HMAC (required)
  - IPHashSalt: Key for hashing public voter IPs (derived from JuryTokenSalt when unset)
  - RedisURL: Ranking cache; empty disables caching
  - LogLevel: slog level (default: info)
  - Weights: Jury/public weights of the final score (default: 0.7/0.3)
  - Scale: Accepted vote value range (default: 1-10)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-redis          Redis URL
	-log-level      Log level
	-admin-key      Admin key
	-jury-salt      Jury token salt
	-ip-salt        Voter IP hash salt
	-jury-weight    Jury weight
	-public-weight  Public weight
	-score-min      Lowest vote value
	-score-max      Highest vote value

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	REDIS_URL       → -redis
	LOG_LEVEL       → -log-level
	ADMIN_KEY       → -admin-key
	JURY_TOKEN_SALT → -jury-salt
	IP_HASH_SALT    → -ip-salt
	JURY_WEIGHT     → -jury-weight
	PUBLIC_WEIGHT   → -public-weight
	SCORE_MIN       → -score-min
	SCORE_MAX       → -score-max

CLI flags take precedence over environment variables. main loads a .env
file into the environment before parsing.

# Validation

ParseFlags returns an error if required values are missing or if the
weights and scale would be rejected by scoring.NewAggregator.
*/
package cliparse
