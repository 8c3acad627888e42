// Package pg manages the PostgreSQL connection pool and schema migrations.
//
// Connect builds a pgxpool with retry so the service survives a database that
// is still starting; Migrate applies the goose migrations from the configured
// directory through the same pool. Healthcheck returns a probe for readiness
// endpoints.
//
// Config fields are populated from environment variables via
// github.com/caarlos0/env.
package pg
