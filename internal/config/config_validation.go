// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.App.Environment {
	case EnvDev, EnvTest, EnvProd:
	default:
		return ErrInvalidEnvironment
	}

	if cfg.Auth.JWTSecret == "" || cfg.Auth.AccessTokenTTL <= 0 || cfg.Auth.RefreshTokenTTL <= 0 {
		return ErrInvalidAuthConfigs
	}

	switch cfg.Storage.Driver {
	case "sqlite3", "pgx":
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

// IsProduction reports whether the running environment is flagged as
// production. The authentication middleware uses this to keep the bypass
// token unreachable outside dev and test.
func (cfg *StructuredConfig) IsProduction() bool {
	return cfg.App.Environment == EnvProd
}
