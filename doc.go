/*
Package main provides the entry point for the contest scoring API server.

Projects are scored by a jury and by the public. Each class's average is
weighted (70/30 by default) into a final score, and projects are ranked
either by that score or by vote count.

# Starting the Server

A .env file in the working directory is loaded first, then flags and
environment variables are read:

	DATABASE_URL=file:jig.db ADMIN_KEY=... JURY_TOKEN_SALT=... go run .

	go run . -t postgres -d "postgres://..." -admin-key ... -jury-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - ADMIN_KEY (-admin-key): Value expected in the X-Admin-Key header
  - JURY_TOKEN_SALT (-jury-salt): Secret for jury token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - REDIS_URL (-redis): Ranking cache, disabled when empty
  - LOG_LEVEL (-log-level): debug, info, warn, error
  - JURY_WEIGHT, PUBLIC_WEIGHT: Class weights (default: 0.7, 0.3)
  - SCORE_MIN, SCORE_MAX: Accepted vote range (default: 1 to 10)

# Architecture

  - scoring: Pure score aggregation and ranking
  - handlers: HTTP request handlers (projects, jury, voting, results)
  - router: chi route definitions
  - middleware: CORS, logging, metrics, JSON helpers
  - metrics: Prometheus collectors
  - cache: Redis ranking cache
  - models: Request/response types
  - auth: Token generation and validation
  - db: Connections, schema, and score storage
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
