// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// Environment flag values recognised by the application. The bypass token
// short-circuit in the authentication middleware is reachable only under
// [EnvDev] and [EnvTest].
const (
	EnvDev  = "dev"
	EnvTest = "test"
	EnvProd = "prod"
)

// Defaults applied to any field left unset by every configuration source.
// The JWT secret and the default admin credentials are development
// conveniences; production deployments must override them via environment.
const (
	DefaultEnvironment     = EnvDev
	DefaultJWTSecret       = "dev_secret_key_for_testing_only"
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
	DefaultBypassToken     = "KISPACE_TEST_TOKEN"
	DefaultDBDriver        = "sqlite3"
	DefaultDBDSN           = "database.db"
	DefaultHTTPAddress     = ":8080"
	DefaultStaticDir       = "dist"
	DefaultRequestTimeout  = 30 * time.Second
)

// StructuredConfig is the top-level configuration container for the
// application. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the running environment.
	App App `envPrefix:"APP_"`

	// Auth holds the token signing secret, token lifetimes, and the
	// non-production bypass token.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds the relational database connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network addresses, timeouts, CORS origins, and the
	// static frontend directory.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Environment is the running-environment flag: "dev", "test" or "prod".
	// It gates the test bypass token and must be "prod" in production.
	// Env: APP_ENV
	Environment string `env:"ENV"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Auth holds token lifecycle and credential verification settings.
type Auth struct {
	// JWTSecret is the HMAC-SHA256 key used to sign and verify bearer
	// tokens. Must be kept confidential and overridden outside dev.
	// Env: AUTH_JWT_SECRET_KEY
	JWTSecret string `env:"JWT_SECRET_KEY"`

	// AccessTokenTTL is how long an access token stays valid (e.g. "15m").
	// Env: AUTH_ACCESS_TOKEN_TTL
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL"`

	// RefreshTokenTTL is how long a refresh token stays valid (e.g. "168h").
	// Env: AUTH_REFRESH_TOKEN_TTL
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL"`

	// BypassToken is the fixed string that authenticates as the seed user
	// (id 1) when the environment is dev or test. It is never consulted
	// in prod.
	// Env: AUTH_BYPASS_TOKEN
	BypassToken string `env:"BYPASS_TOKEN"`
}

// Storage holds connection settings for the relational database backend.
type Storage struct {
	// Driver selects the database backend: "sqlite3" or "pgx".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DB_DRIVER"`

	// DSN is the data source name: a file path for sqlite3 or a
	// postgres:// URI for pgx.
	// Env: STORAGE_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the optional TCP address for the gRPC health server.
	// Left empty, no gRPC server is started.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AllowedOrigins is the CORS allow-list. "*" allows every origin.
	// Env: SERVER_ALLOWED_ORIGINS (comma-separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// StaticDir is the directory holding the built single-page frontend.
	// Env: SERVER_STATIC_DIR
	StaticDir string `env:"STATIC_DIR"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// defaults returns a config populated with every built-in fallback value.
// It is merged last so that any explicitly configured field wins.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Environment: DefaultEnvironment,
		},
		Auth: Auth{
			JWTSecret:       DefaultJWTSecret,
			AccessTokenTTL:  DefaultAccessTokenTTL,
			RefreshTokenTTL: DefaultRefreshTokenTTL,
			BypassToken:     DefaultBypassToken,
		},
		Storage: Storage{
			Driver: DefaultDBDriver,
			DSN:    DefaultDBDSN,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
			AllowedOrigins: []string{"*"},
			StaticDir:      DefaultStaticDir,
		},
	}
}
