// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
	"strings"

	"github.com/kispace/kispace-server/internal/config"
	"github.com/kispace/kispace-server/internal/logger"
	"github.com/kispace/kispace-server/internal/utils"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token
// and resolves it to a full user record, which is stored in the request
// context under [utils.UserCtxKey] before delegating to the next handler.
//
// Resolution happens in two steps:
//  1. When the environment is dev or test and the token equals the
//     configured bypass constant, the request is attributed to the bypass
//     account without any JWT verification. The bypass path is never
//     consulted in production.
//  2. Otherwise the token is validated as a JWT via
//     [service.AuthService.ResolveToken] and its subject is loaded from the
//     store.
//
// Every rejection — missing header, malformed header, invalid or expired
// token, deleted subject — produces the same 401 response with a
// "WWW-Authenticate: Bearer" header and one constant body, so that callers
// cannot probe which stage failed.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			writeUnauthorized(w)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Warn().Err(err).Send()
			writeUnauthorized(w)
			return
		}

		ctx := r.Context()

		if h.bypassAllowed() && tokenString == h.bypassToken {
			user, err := h.services.AuthService.BypassUser(ctx)
			if err != nil {
				log.Err(err).Msg("bypass token presented but bypass account is missing")
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.UserToContext(ctx, user)))
			return
		}

		user, err := h.services.AuthService.ResolveToken(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("token rejected")
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.UserToContext(ctx, user)))
	})
}

// bypassAllowed reports whether the development bypass token may be honored.
func (h *Handler) bypassAllowed() bool {
	return (h.environment == config.EnvDev || h.environment == config.EnvTest) && h.bypassToken != ""
}

// writeUnauthorized sends the constant 401 response shared by every
// authentication failure.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	_, _ = utils.WriteError(w, unauthorizedMessage, http.StatusUnauthorized)
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
